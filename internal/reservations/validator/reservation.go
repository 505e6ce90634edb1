package validator

import (
	"errors"
	"fmt"
	"parkeo/pkg/logger"
	"parkeo/pkg/model"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Period rejection reasons, in the order the rules are checked. The first
// failing rule wins.
const (
	ReasonInvalidDate    = "INVALID_DATE"
	ReasonPastDate       = "PAST_DATE"
	ReasonTooFarAhead    = "TOO_FAR_AHEAD"
	ReasonEndBeforeStart = "END_BEFORE_START"
	ReasonSpanTooLong    = "SPAN_TOO_LONG"
)

// PeriodError is a machine-distinguishable period rule failure.
type PeriodError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// PeriodRules holds the calendar limits for a candidate reservation.
type PeriodRules struct {
	MaxSpanDays      int
	MaxAdvanceMonths int

	// AllowPastStart admits a start date that has already elapsed. An
	// update to a reservation that is underway keeps its original start
	// date; only a changed start date must lie in the future.
	AllowPastStart bool
}

// ValidatePeriod checks a candidate date range against the booking
// calendar rules. Pure and deterministic given now; returns nil when the
// period is admissible.
func ValidatePeriod(start, end, now time.Time, rules PeriodRules) *PeriodError {
	if start.IsZero() || end.IsZero() {
		return &PeriodError{
			Reason:  ReasonInvalidDate,
			Message: "start_date and end_date must be valid calendar dates",
		}
	}

	today := model.Day(now)
	startDay := model.Day(start)
	endDay := model.Day(end)

	if startDay.Before(today) && !rules.AllowPastStart {
		return &PeriodError{
			Reason:  ReasonPastDate,
			Message: "start_date cannot be in the past",
		}
	}

	horizon := today.AddDate(0, rules.MaxAdvanceMonths, 0)
	if startDay.After(horizon) {
		return &PeriodError{
			Reason:  ReasonTooFarAhead,
			Message: fmt.Sprintf("start_date cannot be more than %d month(s) ahead", rules.MaxAdvanceMonths),
		}
	}

	if endDay.Before(startDay) {
		return &PeriodError{
			Reason:  ReasonEndBeforeStart,
			Message: "end_date must not be before start_date",
		}
	}

	if span := model.SpanDays(startDay, endDay); span > rules.MaxSpanDays {
		return &PeriodError{
			Reason:  ReasonSpanTooLong,
			Message: fmt.Sprintf("reservation spans %d days, maximum is %d", span, rules.MaxSpanDays),
		}
	}

	return nil
}

// InvalidDate builds the rule-1 failure for dates that do not even parse.
// Used by the HTTP adapter, which owns wire-format parsing.
func InvalidDate(field string) *PeriodError {
	return &PeriodError{
		Reason:  ReasonInvalidDate,
		Message: fmt.Sprintf("%s must be a valid calendar date (%s)", field, model.DateLayout),
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ReservationValidator) Validate(res *model.Reservation) error {
	if err := v.validate.Struct(res); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !res.Shift.Valid() {
		return ValidationErrors{
			ValidationError{
				Field:   "Shift",
				Message: "shift must be one of: morning, afternoon, full_day",
			},
		}
	}

	return nil
}

func (v *ReservationValidator) ValidateUpdate(update *model.ReservationUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.StartDate == nil && update.EndDate == nil && update.Shift == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "ReservationUpdate",
				Message: "at least one of start_date, end_date or shift must be provided",
			},
		}
	}

	return nil
}

func (v *ReservationValidator) ValidateDocument(doc *model.DocumentUpload) error {
	if err := v.validate.Struct(doc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
