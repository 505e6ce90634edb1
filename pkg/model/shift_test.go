package model

import "testing"

func TestShiftsConflict_Matrix(t *testing.T) {
	tests := []struct {
		existing  Shift
		requested Shift
		conflict  bool
	}{
		{ShiftMorning, ShiftMorning, true},
		{ShiftMorning, ShiftAfternoon, false},
		{ShiftMorning, ShiftFullDay, true},
		{ShiftAfternoon, ShiftMorning, false},
		{ShiftAfternoon, ShiftAfternoon, true},
		{ShiftAfternoon, ShiftFullDay, true},
		{ShiftFullDay, ShiftMorning, true},
		{ShiftFullDay, ShiftAfternoon, true},
		{ShiftFullDay, ShiftFullDay, true},
	}

	for _, tt := range tests {
		if got := ShiftsConflict(tt.existing, tt.requested); got != tt.conflict {
			t.Errorf("ShiftsConflict(%s, %s) = %v, want %v", tt.existing, tt.requested, got, tt.conflict)
		}
	}
}

func TestShiftsConflict_Symmetric(t *testing.T) {
	shifts := []Shift{ShiftMorning, ShiftAfternoon, ShiftFullDay}
	for _, a := range shifts {
		for _, b := range shifts {
			if ShiftsConflict(a, b) != ShiftsConflict(b, a) {
				t.Errorf("conflict relation not symmetric for (%s, %s)", a, b)
			}
		}
	}
}

func TestShift_Valid(t *testing.T) {
	for _, s := range []Shift{ShiftMorning, ShiftAfternoon, ShiftFullDay} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
		if s.Interval() == "" {
			t.Errorf("expected %s to have an interval label", s)
		}
	}
	if Shift("evening").Valid() {
		t.Error("expected unknown shift to be invalid")
	}
}
