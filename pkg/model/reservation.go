package model

import "time"

type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusReleased  ReservationStatus = "released"
	StatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == StatusReleased || s == StatusCancelled
}

// Reservation is an allocation of one parking space to one user over an
// inclusive range of calendar dates, for a given shift.
type Reservation struct {
	ID               string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID           string            `json:"user_id" bson:"user_id" validate:"required,min=1,max=100"`
	SpaceID          string            `json:"space_id" bson:"space_id" validate:"required"`
	SpaceNumber      int               `json:"space_number" bson:"space_number" validate:"required,min=1"`
	StartDate        time.Time         `json:"start_date" bson:"start_date" validate:"required"`
	EndDate          time.Time         `json:"end_date" bson:"end_date" validate:"required"`
	Shift            Shift             `json:"shift" bson:"shift" validate:"required,oneof=morning afternoon full_day"`
	Status           ReservationStatus `json:"status" bson:"status" validate:"required,oneof=active released cancelled"`
	RequiresDocument bool              `json:"requires_document" bson:"requires_document"`
	DocumentID       string            `json:"document_id,omitempty" bson:"document_id,omitempty"`
	Version          int               `json:"-" bson:"version"`
	CreatedAt        time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt        time.Time         `json:"updated_at" bson:"updated_at" validate:"omitempty"`
	ReleasedAt       *time.Time        `json:"released_at,omitempty" bson:"released_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// SpanDays is the inclusive length of the reservation in whole days.
func (r *Reservation) SpanDays() int {
	return SpanDays(r.StartDate, r.EndDate)
}

// CoversDate reports whether the given calendar date falls inside the
// reservation's inclusive date range.
func (r *Reservation) CoversDate(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(r.StartDate)) && !d.After(Day(r.EndDate))
}

// Overlaps reports whether the reservation shares at least one calendar
// day with the [start, end] candidate window.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return RangesOverlap(start, end, r.StartDate, r.EndDate)
}

// ReservationUpdate carries the partially-specified fields of an in-place
// update. Nil / empty fields keep their current value.
type ReservationUpdate struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Shift     Shift      `json:"shift,omitempty" validate:"omitempty,oneof=morning afternoon full_day"`
}
