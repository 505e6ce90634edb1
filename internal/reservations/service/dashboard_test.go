package service

import (
	"context"
	"parkeo/pkg/model"
	"testing"
	"time"
)

func testSpaces(numbers ...int) []*model.ParkingSpace {
	spaces := make([]*model.ParkingSpace, 0, len(numbers))
	for _, n := range numbers {
		spaces = append(spaces, &model.ParkingSpace{ID: model.SpaceID(n), Number: n, Active: true})
	}
	return spaces
}

func TestBuildDashboard_EmptyDayAllAvailable(t *testing.T) {
	spaceRepo := &mockSpaceRepository{
		findAllFunc: func(ctx context.Context) ([]*model.ParkingSpace, error) {
			return testSpaces(1, 2, 3), nil
		},
	}
	svc := newTestService(&mockReservationRepository{}, spaceRepo, &mockDocumentRepository{})

	entries, err := svc.BuildDashboard(context.Background(), date(2026, 9, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Space.Number != i+1 {
			t.Errorf("entry %d: expected space %d, got %d", i, i+1, entry.Space.Number)
		}
		if entry.Reservations == nil || len(entry.Reservations) != 0 {
			t.Errorf("entry %d: expected empty reservation list, got %v", i, entry.Reservations)
		}
		want := model.ShiftAvailability{Morning: true, Afternoon: true, FullDay: true}
		if entry.IsAvailable != want {
			t.Errorf("entry %d: expected all shifts available, got %+v", i, entry.IsAvailable)
		}
	}
}

func TestBuildDashboard_MergesReservationsPerSpace(t *testing.T) {
	day := date(2026, 9, 10)
	occupied := &model.Reservation{
		ID:          "res-1",
		UserID:      "user-1",
		SpaceID:     model.SpaceID(2),
		SpaceNumber: 2,
		StartDate:   day,
		EndDate:     day,
		Shift:       model.ShiftMorning,
		Status:      model.StatusActive,
	}

	spaceRepo := &mockSpaceRepository{
		findAllFunc: func(ctx context.Context) ([]*model.ParkingSpace, error) {
			return testSpaces(1, 2), nil
		},
	}
	repo := &mockReservationRepository{
		findActiveOnDateFunc: func(ctx context.Context, d time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{occupied}, nil
		},
	}
	svc := newTestService(repo, spaceRepo, &mockDocumentRepository{})

	entries, err := svc.BuildDashboard(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	free := entries[0]
	if len(free.Reservations) != 0 {
		t.Errorf("space 1 should have no reservations, got %d", len(free.Reservations))
	}
	if !free.IsAvailable.FullDay {
		t.Error("space 1 should be fully available")
	}

	taken := entries[1]
	if len(taken.Reservations) != 1 || taken.Reservations[0].ID != "res-1" {
		t.Errorf("space 2 should carry res-1, got %v", taken.Reservations)
	}
	want := model.ShiftAvailability{Morning: false, Afternoon: true, FullDay: false}
	if taken.IsAvailable != want {
		t.Errorf("space 2 availability = %+v, want %+v", taken.IsAvailable, want)
	}
}

func TestBuildDashboard_ZeroDate(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockSpaceRepository{}, &mockDocumentRepository{})

	if _, err := svc.BuildDashboard(context.Background(), time.Time{}); err == nil {
		t.Fatal("expected error for zero date")
	}
}
