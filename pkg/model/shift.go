package model

// Shift is the sub-interval of a working day a reservation occupies.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftFullDay   Shift = "full_day"
)

// Wall-clock labels for each shift. The working day is 8:00-20:00.
var shiftIntervals = map[Shift]string{
	ShiftMorning:   "8:00-14:00",
	ShiftAfternoon: "14:00-20:00",
	ShiftFullDay:   "8:00-20:00",
}

func (s Shift) Valid() bool {
	_, ok := shiftIntervals[s]
	return ok
}

// Interval returns the wall-clock label for the shift, e.g. "8:00-14:00".
func (s Shift) Interval() string {
	return shiftIntervals[s]
}

// ShiftsConflict reports whether two shifts cannot coexist on the same
// space and day. Morning and afternoon partition the day and may coexist;
// a full-day shift conflicts with everything, including another full day.
// The relation is symmetric.
func ShiftsConflict(existing, requested Shift) bool {
	if existing == ShiftFullDay || requested == ShiftFullDay {
		return true
	}
	return existing == requested
}
