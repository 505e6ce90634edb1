package service

import (
	"context"
	"errors"
	"fmt"
	reserrors "parkeo/internal/reservations/errors"
	"parkeo/internal/reservations/events"
	"parkeo/internal/reservations/repository"
	"parkeo/internal/reservations/validator"
	"parkeo/pkg/config"
	apperrors "parkeo/pkg/errors"
	"parkeo/pkg/model"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation, doc *model.DocumentUpload) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetUserReservations(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	GetSpaceReservations(ctx context.Context, spaceNumber int, date time.Time) ([]*model.Reservation, error)
	CheckAvailability(ctx context.Context, spaceNumber int, start, end time.Time, shift model.Shift) (bool, error)
	Update(ctx context.Context, id string, userID string, updates *model.ReservationUpdate) error
	Release(ctx context.Context, id string, userID string) error
	Cancel(ctx context.Context, id string, userID string) error
	BuildDashboard(ctx context.Context, date time.Time) ([]*model.DashboardEntry, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	spaceRepo repository.SpaceRepository
	lockRepo  repository.ReservationLockRepository
	docRepo   repository.DocumentRepository
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	spaceRepo repository.SpaceRepository,
	lockRepo repository.ReservationLockRepository,
	docRepo repository.DocumentRepository,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		spaceRepo: spaceRepo,
		lockRepo:  lockRepo,
		docRepo:   docRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation, doc *model.DocumentUpload) error {
	s.applyDefaults(reservation)

	// Bounds first, so an out-of-range space number is reported as bad
	// input rather than as a field validation failure.
	if err := s.checkSpaceNumber(reservation.SpaceNumber); err != nil {
		return err
	}
	if err := s.admitPeriod(reservation, false); err != nil {
		return err
	}
	if err := s.validate(reservation); err != nil {
		return err
	}
	if err := s.checkDocumentRule(reservation, doc); err != nil {
		return err
	}

	space, err := s.lookupSpace(ctx, reservation.SpaceNumber)
	if err != nil {
		return err
	}
	reservation.SpaceID = space.ID

	// Acquire advisory lock to serialize admission per space
	lockID, err := s.acquireSpaceLock(ctx, space.ID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSpaceLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release space lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindActiveBySpace(sessCtx, space.ID)
		if err != nil {
			return apperrors.Store("Failed to read existing reservations", err)
		}
		if !isAvailable(reservation.StartDate, reservation.EndDate, reservation.Shift, existing, "") {
			return apperrors.Conflict(fmt.Sprintf(
				"space %d is already reserved for an overlapping period and shift", reservation.SpaceNumber))
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Store("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation",
			"space_id", space.ID,
			"user_id", reservation.UserID,
			"error", err,
		)
		return err
	}

	if doc != nil {
		if err := s.storeDocument(ctx, reservation, doc); err != nil {
			return err
		}
	}

	s.publish(ctx, events.TypeCreated, reservation)
	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"space_id", reservation.SpaceID,
		"user_id", reservation.UserID,
		"start_date", reservation.StartDate,
		"end_date", reservation.EndDate,
		"shift", reservation.Shift,
	)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Store("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count user reservations", "user_id", userID, "error", errCount)
			errCount = apperrors.Store("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list user reservations", "user_id", userID, "error", errFind)
			errFind = apperrors.Store("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) GetSpaceReservations(ctx context.Context, spaceNumber int, date time.Time) ([]*model.Reservation, error) {
	space, err := s.lookupSpace(ctx, spaceNumber)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.FindActiveBySpaceOnDate(ctx, space.ID, date)
	if err != nil {
		return nil, apperrors.Store("Failed to retrieve space reservations", err)
	}
	return reservations, nil
}

// CheckAvailability answers a point-in-time query. It reads outside any
// lock or transaction; only Create and Update re-check under the lock.
func (s *reservationService) CheckAvailability(ctx context.Context, spaceNumber int, start, end time.Time, shift model.Shift) (bool, error) {
	if !shift.Valid() {
		return false, apperrors.InvalidInput("Shift must be one of: morning, afternoon, full_day")
	}
	if end.Before(start) {
		return false, apperrors.InvalidInput("End date must not be before start date")
	}

	space, err := s.lookupSpace(ctx, spaceNumber)
	if err != nil {
		return false, err
	}

	existing, err := s.repo.FindActiveBySpace(ctx, space.ID)
	if err != nil {
		return false, apperrors.Store("Failed to read existing reservations", err)
	}

	return isAvailable(start, end, shift, existing, ""), nil
}

func (s *reservationService) Update(ctx context.Context, id string, userID string, updates *model.ReservationUpdate) error {
	existing, err := s.ownedActiveReservation(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)

	// Period rules only re-apply when the dates move. A shift-only update
	// of a reservation already underway must not trip the past-start rule;
	// an unchanged start date is likewise exempt from it.
	if updates.StartDate != nil || updates.EndDate != nil {
		if err := s.admitPeriod(merged, updates.StartDate == nil); err != nil {
			return err
		}
		if err := s.checkDocumentRule(merged, nil); err != nil {
			return err
		}
	}
	if err := s.validate(merged); err != nil {
		return err
	}

	lockID, err := s.acquireSpaceLock(ctx, merged.SpaceID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSpaceLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release space lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindActiveBySpace(sessCtx, merged.SpaceID)
		if err != nil {
			return apperrors.Store("Failed to read existing reservations", err)
		}
		if !isAvailable(merged.StartDate, merged.EndDate, merged.Shift, current, merged.ID) {
			return apperrors.Conflict(fmt.Sprintf(
				"space %d is already reserved for an overlapping period and shift", merged.SpaceNumber))
		}
		if err := s.repo.Update(sessCtx, merged); err != nil {
			if errors.Is(err, reserrors.ErrVersionMismatch) {
				return apperrors.Conflict("Reservation was modified concurrently, retry the update")
			}
			return apperrors.Store("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return err
	}

	s.publish(ctx, events.TypeUpdated, merged)
	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return nil
}

// Release ends an active reservation today, keeping the days already
// elapsed and freeing the rest.
func (s *reservationService) Release(ctx context.Context, id string, userID string) error {
	reservation, err := s.ownedActiveReservation(ctx, id, userID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	today := model.Day(now)
	if today.Before(model.Day(reservation.StartDate)) {
		return apperrors.Conflict("Reservation has not started yet, cancel it instead")
	}
	if err := s.repo.Release(ctx, id, today, now); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.Conflict("Reservation is no longer active")
		}
		return apperrors.Store("Failed to release reservation", err)
	}

	reservation.Status = model.StatusReleased
	reservation.EndDate = today
	reservation.ReleasedAt = &now

	s.publish(ctx, events.TypeReleased, reservation)
	s.cfg.Log.Info("Reservation released", "id", id, "end_date", today)
	return nil
}

// Cancel voids an active reservation entirely, freeing every day it held.
func (s *reservationService) Cancel(ctx context.Context, id string, userID string) error {
	reservation, err := s.ownedActiveReservation(ctx, id, userID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.repo.Cancel(ctx, id, now); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.Conflict("Reservation is no longer active")
		}
		return apperrors.Store("Failed to cancel reservation", err)
	}

	reservation.Status = model.StatusCancelled
	reservation.CancelledAt = &now

	s.publish(ctx, events.TypeCancelled, reservation)
	s.cfg.Log.Info("Reservation cancelled", "id", id)
	return nil
}

// --- Helpers ---

func (s *reservationService) applyDefaults(r *model.Reservation) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = model.StatusActive
	}
	if r.SpaceID == "" && r.SpaceNumber > 0 {
		r.SpaceID = model.SpaceID(r.SpaceNumber)
	}
	if !r.StartDate.IsZero() {
		r.StartDate = model.Day(r.StartDate)
	}
	if !r.EndDate.IsZero() {
		r.EndDate = model.Day(r.EndDate)
	}
}

func (s *reservationService) validate(r *model.Reservation) error {
	if err := s.validator.Validate(r); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Invalid reservation input", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *reservationService) admitPeriod(r *model.Reservation, keepsStart bool) error {
	if pe := validator.ValidatePeriod(r.StartDate, r.EndDate, s.now(), validator.PeriodRules{
		MaxSpanDays:      s.cfg.MaxReservationDays,
		MaxAdvanceMonths: s.cfg.MaxAdvanceMonths,
		AllowPastStart:   keepsStart,
	}); pe != nil {
		return apperrors.Validation(pe.Message, map[string]any{"reason": pe.Reason})
	}
	r.RequiresDocument = r.SpanDays() > s.cfg.DocumentThresholdDays
	return nil
}

// checkDocumentRule enforces the long-stay document requirement. The doc
// argument is the upload accompanying a create; updates rely on the
// already attached document reference.
func (s *reservationService) checkDocumentRule(r *model.Reservation, doc *model.DocumentUpload) error {
	if !r.RequiresDocument {
		return nil
	}
	if doc == nil && r.DocumentID == "" {
		return apperrors.DocumentRequired(fmt.Sprintf(
			"Reservations longer than %d days require a supporting document", s.cfg.DocumentThresholdDays))
	}
	if doc != nil {
		if err := s.validator.ValidateDocument(doc); err != nil {
			return apperrors.Validation("Invalid document upload", map[string]any{"error": err.Error()})
		}
	}
	return nil
}

func (s *reservationService) checkSpaceNumber(number int) error {
	if number < 1 || number > s.cfg.SpaceCount {
		return apperrors.InvalidInput(fmt.Sprintf(
			"Space number must be between 1 and %d", s.cfg.SpaceCount))
	}
	return nil
}

func (s *reservationService) lookupSpace(ctx context.Context, number int) (*model.ParkingSpace, error) {
	if err := s.checkSpaceNumber(number); err != nil {
		return nil, err
	}

	space, err := s.spaceRepo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, reserrors.ErrSpaceNotFound) {
			return nil, apperrors.NotFoundWithID("Parking space", model.SpaceID(number))
		}
		return nil, apperrors.Store("Failed to look up parking space", err)
	}
	if !space.Active {
		return nil, apperrors.Conflict(fmt.Sprintf("Space %d is deactivated", number))
	}
	return space, nil
}

// ownedActiveReservation loads a reservation and checks the caller may
// mutate it. A foreign reservation is reported as unauthorized, not as
// missing, so the caller learns the id exists but is not theirs.
func (s *reservationService) ownedActiveReservation(ctx context.Context, id string, userID string) (*model.Reservation, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, apperrors.Unauthorized("Reservation belongs to another user")
	}
	if reservation.Status.Terminal() {
		return nil, apperrors.Conflict(fmt.Sprintf("Reservation is already %s", reservation.Status))
	}
	return reservation, nil
}

func (s *reservationService) mergeUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.StartDate != nil {
		merged.StartDate = model.Day(*updates.StartDate)
	}
	if updates.EndDate != nil {
		merged.EndDate = model.Day(*updates.EndDate)
	}
	if updates.Shift != "" {
		merged.Shift = updates.Shift
	}

	return &merged
}

func (s *reservationService) acquireSpaceLock(ctx context.Context, spaceID string) (string, error) {
	lockID := fmt.Sprintf("space_lock_%s", spaceID)
	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.AdmissionLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("Space is being reserved by another request, try again")
		}
		return "", apperrors.Store("Failed to acquire space lock", err)
	}
	return lockID, nil
}

func (s *reservationService) releaseSpaceLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// storeDocument persists the upload after the reservation committed. If
// the document cannot be stored or linked, the reservation is rolled back
// by a compensating delete so no half-admitted long stay survives.
func (s *reservationService) storeDocument(ctx context.Context, reservation *model.Reservation, upload *model.DocumentUpload) error {
	doc := &model.Document{
		ID:            uuid.NewString(),
		FileName:      upload.FileName,
		FileSize:      int64(len(upload.Content)),
		UserID:        reservation.UserID,
		ReservationID: reservation.ID,
		Content:       upload.Content,
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		s.compensateCreate(ctx, reservation.ID)
		return apperrors.Store("Failed to store reservation document", err)
	}

	if err := s.repo.AttachDocument(ctx, reservation.ID, doc.ID); err != nil {
		if delErr := s.docRepo.Delete(ctx, doc.ID); delErr != nil {
			s.cfg.Log.Error("Failed to remove orphaned document", "document_id", doc.ID, "error", delErr)
		}
		s.compensateCreate(ctx, reservation.ID)
		return apperrors.Store("Failed to link reservation document", err)
	}

	reservation.DocumentID = doc.ID
	return nil
}

func (s *reservationService) compensateCreate(ctx context.Context, reservationID string) {
	if err := s.repo.Delete(ctx, reservationID); err != nil {
		s.cfg.Log.Error("Failed to roll back reservation after document failure",
			"id", reservationID,
			"error", err,
		)
	}
}

func (s *reservationService) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	if err := s.publisher.Publish(ctx, eventType, reservation); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"id", reservation.ID,
			"error", err,
		)
	}
}
