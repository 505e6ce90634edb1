package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"parkeo/internal/reservations/validator"
	apperrors "parkeo/pkg/errors"
	httputil "parkeo/pkg/http"
	"parkeo/pkg/logger"
	"parkeo/pkg/model"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockReservationService struct {
	createFunc            func(ctx context.Context, r *model.Reservation, doc *model.DocumentUpload) error
	buildDashboardFunc    func(ctx context.Context, date time.Time) ([]*model.DashboardEntry, error)
	checkAvailabilityFunc func(ctx context.Context, spaceNumber int, start, end time.Time, shift model.Shift) (bool, error)
}

func (m *mockReservationService) Create(ctx context.Context, r *model.Reservation, doc *model.DocumentUpload) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r, doc)
	}
	return nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	return nil, apperrors.NotFoundWithID("Reservation", id)
}

func (m *mockReservationService) GetUserReservations(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	return []*model.Reservation{}, 0, nil
}

func (m *mockReservationService) GetSpaceReservations(ctx context.Context, spaceNumber int, date time.Time) ([]*model.Reservation, error) {
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) CheckAvailability(ctx context.Context, spaceNumber int, start, end time.Time, shift model.Shift) (bool, error) {
	if m.checkAvailabilityFunc != nil {
		return m.checkAvailabilityFunc(ctx, spaceNumber, start, end, shift)
	}
	return true, nil
}

func (m *mockReservationService) Update(ctx context.Context, id string, userID string, updates *model.ReservationUpdate) error {
	return nil
}

func (m *mockReservationService) Release(ctx context.Context, id string, userID string) error {
	return nil
}

func (m *mockReservationService) Cancel(ctx context.Context, id string, userID string) error {
	return nil
}

func (m *mockReservationService) BuildDashboard(ctx context.Context, date time.Time) ([]*model.DashboardEntry, error) {
	if m.buildDashboardFunc != nil {
		return m.buildDashboardFunc(ctx, date)
	}
	return []*model.DashboardEntry{}, nil
}

func testHandler(svc *mockReservationService) *ReservationHandler {
	return &ReservationHandler{
		service: svc,
		log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func testRouter(h *ReservationHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_MissingUserHeader(t *testing.T) {
	router := testRouter(testHandler(&mockReservationService{}))

	body := `{"space_number":5,"start_date":"2026-09-02","end_date":"2026-09-03","shift":"morning"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	var resp httputil.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected code %s, got %s", apperrors.CodeUnauthorized, resp.Code)
	}
}

func TestCreate_InvalidDateFormat(t *testing.T) {
	router := testRouter(testHandler(&mockReservationService{}))

	body := `{"space_number":5,"start_date":"02-09-2026","end_date":"2026-09-03","shift":"morning"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set(UserIDHeader, "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var resp httputil.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Details["reason"] != validator.ReasonInvalidDate {
		t.Errorf("expected reason %s, got %v", validator.ReasonInvalidDate, resp.Details["reason"])
	}
}

func TestCreate_PassesIdentityAndDates(t *testing.T) {
	var got *model.Reservation
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, r *model.Reservation, doc *model.DocumentUpload) error {
			got = r
			return nil
		},
	}
	router := testRouter(testHandler(svc))

	body := `{"space_number":5,"start_date":"2026-09-02","end_date":"2026-09-03","shift":"afternoon"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set(UserIDHeader, "user-9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got == nil {
		t.Fatal("expected service to receive a reservation")
	}
	if got.UserID != "user-9" {
		t.Errorf("expected user-9, got %s", got.UserID)
	}
	if got.Shift != model.ShiftAfternoon {
		t.Errorf("expected afternoon shift, got %s", got.Shift)
	}
	if got.StartDate.Format(model.DateLayout) != "2026-09-02" {
		t.Errorf("unexpected start date %s", got.StartDate)
	}
}

func TestCreate_ConflictPropagates(t *testing.T) {
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, r *model.Reservation, doc *model.DocumentUpload) error {
			return apperrors.Conflict("space 5 is already reserved for an overlapping period and shift")
		},
	}
	router := testRouter(testHandler(svc))

	body := `{"space_number":5,"start_date":"2026-09-02","end_date":"2026-09-03","shift":"morning"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set(UserIDHeader, "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestDashboard_DefaultsToToday(t *testing.T) {
	var gotDate time.Time
	svc := &mockReservationService{
		buildDashboardFunc: func(ctx context.Context, date time.Time) ([]*model.DashboardEntry, error) {
			gotDate = date
			return []*model.DashboardEntry{}, nil
		},
	}
	router := testRouter(testHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !gotDate.Equal(model.Day(time.Now())) {
		t.Errorf("expected today's date, got %s", gotDate)
	}
}

func TestCheckAvailability_QueryParameters(t *testing.T) {
	var gotNumber int
	var gotShift model.Shift
	svc := &mockReservationService{
		checkAvailabilityFunc: func(ctx context.Context, spaceNumber int, start, end time.Time, shift model.Shift) (bool, error) {
			gotNumber = spaceNumber
			gotShift = shift
			return false, nil
		},
	}
	router := testRouter(testHandler(svc))

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?space_number=7&start_date=2026-09-02&end_date=2026-09-03&shift=full_day", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotNumber != 7 || gotShift != model.ShiftFullDay {
		t.Errorf("expected space 7 full_day, got space %d %s", gotNumber, gotShift)
	}

	var resp struct {
		Data availabilityResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Available {
		t.Error("expected available=false in response")
	}
}

func TestRelease_RouteWiring(t *testing.T) {
	router := testRouter(testHandler(&mockReservationService{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/abc/release", nil)
	req.Header.Set(UserIDHeader, "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}
