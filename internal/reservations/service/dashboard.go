package service

import (
	"context"
	apperrors "parkeo/pkg/errors"
	"parkeo/pkg/model"
	"time"
)

// BuildDashboard merges the space inventory with the active reservations
// covering one date. Entries come back ordered by space number; a space
// with no reservations reports every shift available.
func (s *reservationService) BuildDashboard(ctx context.Context, date time.Time) ([]*model.DashboardEntry, error) {
	if date.IsZero() {
		return nil, apperrors.InvalidInput("Dashboard date is required")
	}

	spaces, err := s.spaceRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Store("Failed to list parking spaces", err)
	}

	reservations, err := s.repo.FindActiveOnDate(ctx, date)
	if err != nil {
		return nil, apperrors.Store("Failed to read reservations for dashboard", err)
	}

	bySpace := make(map[string][]*model.Reservation, len(spaces))
	for _, res := range reservations {
		bySpace[res.SpaceID] = append(bySpace[res.SpaceID], res)
	}

	entries := make([]*model.DashboardEntry, 0, len(spaces))
	for _, space := range spaces {
		covering := bySpace[space.ID]
		if covering == nil {
			covering = []*model.Reservation{}
		}
		entries = append(entries, &model.DashboardEntry{
			Space:        *space,
			Reservations: covering,
			IsAvailable:  availabilityForDay(covering),
		})
	}

	return entries, nil
}
