package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"parkeo/internal/reservations/service"
	"parkeo/internal/reservations/validator"
	apperrors "parkeo/pkg/errors"
	httputil "parkeo/pkg/http"
	"parkeo/pkg/logger"
	"parkeo/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// UserIDHeader carries the caller identity. Requests without it are
// rejected on every reservation operation.
const UserIDHeader = "X-User-ID"

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

type createReservationRequest struct {
	SpaceNumber int                   `json:"space_number"`
	StartDate   string                `json:"start_date"`
	EndDate     string                `json:"end_date"`
	Shift       string                `json:"shift"`
	Document    *model.DocumentUpload `json:"document,omitempty"`
}

type updateReservationRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Shift     string  `json:"shift,omitempty"`
}

type availabilityResponse struct {
	SpaceNumber int    `json:"space_number"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Shift       string `json:"shift"`
	Available   bool   `json:"available"`
}

type dashboardResponse struct {
	Date   string                  `json:"date"`
	Spaces []*model.DashboardEntry `json:"spaces"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Create")
	if !ok {
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	startDate, ok := h.parseDate(w, req.StartDate, "start_date", "Create")
	if !ok {
		return
	}
	endDate, ok := h.parseDate(w, req.EndDate, "end_date", "Create")
	if !ok {
		return
	}

	reservation := &model.Reservation{
		UserID:      userID,
		SpaceNumber: req.SpaceNumber,
		StartDate:   startDate,
		EndDate:     endDate,
		Shift:       model.Shift(req.Shift),
	}

	if err := h.service.Create(r.Context(), reservation, req.Document); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetUserReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := h.requireUser(w, r, "GetUserReservations")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetUserReservations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reservations, total, err := h.service.GetUserReservations(r.Context(), userID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetUserReservations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetUserReservations", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) GetSpaceReservations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	number, err := strconv.Atoi(ps.ByName("number"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(
			fmt.Sprintf("invalid space number: %s", ps.ByName("number")))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSpaceReservations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	date, ok := h.parseDateParam(w, r, "GetSpaceReservations")
	if !ok {
		return
	}

	reservations, err := h.service.GetSpaceReservations(r.Context(), number, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSpaceReservations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSpaceReservations", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	number, err := strconv.Atoi(query.Get("space_number"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(
			fmt.Sprintf("invalid space_number parameter: %s", query.Get("space_number")))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	startDate, ok := h.parseDate(w, query.Get("start_date"), "start_date", "CheckAvailability")
	if !ok {
		return
	}
	endDate, ok := h.parseDate(w, query.Get("end_date"), "end_date", "CheckAvailability")
	if !ok {
		return
	}
	shift := model.Shift(query.Get("shift"))

	available, err := h.service.CheckAvailability(r.Context(), number, startDate, endDate, shift)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{
		SpaceNumber: number,
		StartDate:   startDate.Format(model.DateLayout),
		EndDate:     endDate.Format(model.DateLayout),
		Shift:       string(shift),
		Available:   available,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Update")
	if !ok {
		return
	}
	id := ps.ByName("id")

	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updates := &model.ReservationUpdate{Shift: model.Shift(req.Shift)}
	if req.StartDate != nil {
		startDate, ok := h.parseDate(w, *req.StartDate, "start_date", "Update")
		if !ok {
			return
		}
		updates.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, ok := h.parseDate(w, *req.EndDate, "end_date", "Update")
		if !ok {
			return
		}
		updates.EndDate = &endDate
	}

	if err := h.service.Update(r.Context(), id, userID, updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Release(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Release")
	if !ok {
		return
	}

	if err := h.service.Release(r.Context(), ps.ByName("id"), userID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Release", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := h.requireUser(w, r, "Cancel")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), ps.ByName("id"), userID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, ok := h.parseDateParam(w, r, "Dashboard")
	if !ok {
		return
	}

	entries, err := h.service.BuildDashboard(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Dashboard", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dashboardResponse{
		Date:   date.Format(model.DateLayout),
		Spaces: entries,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Dashboard", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.GetUserReservations)
	router.GET("/api/v1/reservations/:id", h.GetByID)
	router.PATCH("/api/v1/reservations/:id", h.Update)
	router.POST("/api/v1/reservations/:id/release", h.Release)
	router.DELETE("/api/v1/reservations/:id", h.Cancel)
	router.GET("/api/v1/spaces/:number/reservations", h.GetSpaceReservations)
	router.GET("/api/v1/availability", h.CheckAvailability)
	router.GET("/api/v1/dashboard", h.Dashboard)
}

// --- Helpers ---

func (h *ReservationHandler) requireUser(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized(UserIDHeader+" header is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", op, "operation", "WriteError", "error", writeErr)
		}
		return "", false
	}
	return userID, true
}

func (h *ReservationHandler) parseDate(w http.ResponseWriter, raw string, field string, op string) (time.Time, bool) {
	date, err := model.ParseDate(raw)
	if err != nil {
		pe := validator.InvalidDate(field)
		if writeErr := httputil.WriteError(w, apperrors.Validation(pe.Message, map[string]any{
			"reason": pe.Reason,
		})); writeErr != nil {
			h.log.Error("failed to write error response", "handler", op, "operation", "WriteError", "error", writeErr)
		}
		return time.Time{}, false
	}
	return date, true
}

// parseDateParam reads the optional date query parameter, defaulting to
// today.
func (h *ReservationHandler) parseDateParam(w http.ResponseWriter, r *http.Request, op string) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return model.Day(time.Now()), true
	}
	return h.parseDate(w, raw, "date", op)
}
