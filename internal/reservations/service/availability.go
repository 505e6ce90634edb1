package service

import (
	"parkeo/pkg/model"
	"time"
)

// isAvailable decides whether a candidate period and shift fit between the
// existing reservations of one space. Released and cancelled records never
// block; excludeID lets an update ignore the reservation it is replacing.
// Pure function of its inputs, order of existing does not matter.
func isAvailable(start, end time.Time, shift model.Shift, existing []*model.Reservation, excludeID string) bool {
	for _, res := range existing {
		if res.ID == excludeID {
			continue
		}
		if res.Status != model.StatusActive {
			continue
		}
		if !res.Overlaps(start, end) {
			continue
		}
		if model.ShiftsConflict(res.Shift, shift) {
			return false
		}
	}
	return true
}

// availabilityForDay folds the reservations covering one date into the
// per-shift availability flags of a single space.
func availabilityForDay(reservations []*model.Reservation) model.ShiftAvailability {
	availability := model.ShiftAvailability{
		Morning:   true,
		Afternoon: true,
		FullDay:   true,
	}

	for _, res := range reservations {
		if res.Status != model.StatusActive {
			continue
		}
		switch res.Shift {
		case model.ShiftMorning:
			availability.Morning = false
			availability.FullDay = false
		case model.ShiftAfternoon:
			availability.Afternoon = false
			availability.FullDay = false
		case model.ShiftFullDay:
			availability.Morning = false
			availability.Afternoon = false
			availability.FullDay = false
		}
	}

	return availability
}
