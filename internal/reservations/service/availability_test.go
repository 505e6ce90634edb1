package service

import (
	"parkeo/pkg/model"
	"testing"
)

func reservations(entries ...*model.Reservation) []*model.Reservation {
	return entries
}

func res(id string, start, end string, shift model.Shift, status model.ReservationStatus) *model.Reservation {
	startDate, _ := model.ParseDate(start)
	endDate, _ := model.ParseDate(end)
	return &model.Reservation{
		ID:        id,
		SpaceID:   model.SpaceID(1),
		StartDate: startDate,
		EndDate:   endDate,
		Shift:     shift,
		Status:    status,
	}
}

func TestIsAvailable(t *testing.T) {
	start, _ := model.ParseDate("2026-09-10")
	end, _ := model.ParseDate("2026-09-12")

	tests := []struct {
		name     string
		shift    model.Shift
		existing []*model.Reservation
		exclude  string
		want     bool
	}{
		{
			name:     "no reservations",
			shift:    model.ShiftFullDay,
			existing: nil,
			want:     true,
		},
		{
			name:  "morning and afternoon coexist",
			shift: model.ShiftAfternoon,
			existing: reservations(
				res("a", "2026-09-10", "2026-09-12", model.ShiftMorning, model.StatusActive),
			),
			want: true,
		},
		{
			name:  "same shift on overlapping days",
			shift: model.ShiftMorning,
			existing: reservations(
				res("a", "2026-09-12", "2026-09-14", model.ShiftMorning, model.StatusActive),
			),
			want: false,
		},
		{
			name:  "full day blocks morning",
			shift: model.ShiftMorning,
			existing: reservations(
				res("a", "2026-09-11", "2026-09-11", model.ShiftFullDay, model.StatusActive),
			),
			want: false,
		},
		{
			name:  "adjacent ranges do not touch",
			shift: model.ShiftFullDay,
			existing: reservations(
				res("a", "2026-09-13", "2026-09-15", model.ShiftFullDay, model.StatusActive),
			),
			want: true,
		},
		{
			name:  "single shared boundary day conflicts",
			shift: model.ShiftFullDay,
			existing: reservations(
				res("a", "2026-09-12", "2026-09-15", model.ShiftFullDay, model.StatusActive),
			),
			want: false,
		},
		{
			name:  "released reservation never blocks",
			shift: model.ShiftFullDay,
			existing: reservations(
				res("a", "2026-09-10", "2026-09-12", model.ShiftFullDay, model.StatusReleased),
				res("b", "2026-09-10", "2026-09-12", model.ShiftFullDay, model.StatusCancelled),
			),
			want: true,
		},
		{
			name:  "own reservation is excluded",
			shift: model.ShiftMorning,
			existing: reservations(
				res("self", "2026-09-10", "2026-09-12", model.ShiftMorning, model.StatusActive),
			),
			exclude: "self",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAvailable(start, end, tt.shift, tt.existing, tt.exclude)
			if got != tt.want {
				t.Errorf("isAvailable() = %v, want %v", got, tt.want)
			}

			// The verdict must not depend on the order records come back
			// from the store.
			reversed := make([]*model.Reservation, 0, len(tt.existing))
			for i := len(tt.existing) - 1; i >= 0; i-- {
				reversed = append(reversed, tt.existing[i])
			}
			if got := isAvailable(start, end, tt.shift, reversed, tt.exclude); got != tt.want {
				t.Errorf("isAvailable() with reversed input = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailabilityForDay(t *testing.T) {
	tests := []struct {
		name     string
		existing []*model.Reservation
		want     model.ShiftAvailability
	}{
		{
			name:     "empty day",
			existing: nil,
			want:     model.ShiftAvailability{Morning: true, Afternoon: true, FullDay: true},
		},
		{
			name: "morning taken",
			existing: reservations(
				res("a", "2026-09-10", "2026-09-10", model.ShiftMorning, model.StatusActive),
			),
			want: model.ShiftAvailability{Morning: false, Afternoon: true, FullDay: false},
		},
		{
			name: "afternoon taken",
			existing: reservations(
				res("a", "2026-09-10", "2026-09-10", model.ShiftAfternoon, model.StatusActive),
			),
			want: model.ShiftAvailability{Morning: true, Afternoon: false, FullDay: false},
		},
		{
			name: "full day taken",
			existing: reservations(
				res("a", "2026-09-10", "2026-09-10", model.ShiftFullDay, model.StatusActive),
			),
			want: model.ShiftAvailability{Morning: false, Afternoon: false, FullDay: false},
		},
		{
			name: "both half days taken",
			existing: reservations(
				res("a", "2026-09-10", "2026-09-10", model.ShiftMorning, model.StatusActive),
				res("b", "2026-09-10", "2026-09-10", model.ShiftAfternoon, model.StatusActive),
			),
			want: model.ShiftAvailability{Morning: false, Afternoon: false, FullDay: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := availabilityForDay(tt.existing); got != tt.want {
				t.Errorf("availabilityForDay() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
