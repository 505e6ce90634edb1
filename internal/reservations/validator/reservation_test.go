package validator

import (
	"parkeo/pkg/logger"
	"parkeo/pkg/model"
	"testing"
	"time"
)

var testRules = PeriodRules{
	MaxSpanDays:      7,
	MaxAdvanceMonths: 1,
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidatePeriod(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start      time.Time
		end        time.Time
		wantReason string
	}{
		{
			name:       "zero start date",
			start:      time.Time{},
			end:        date(2026, 9, 3),
			wantReason: ReasonInvalidDate,
		},
		{
			name:       "start in the past",
			start:      date(2026, 8, 31),
			end:        date(2026, 9, 3),
			wantReason: ReasonPastDate,
		},
		{
			name:       "start today is allowed",
			start:      date(2026, 9, 1),
			end:        date(2026, 9, 1),
			wantReason: "",
		},
		{
			name:       "start beyond one month horizon",
			start:      date(2026, 10, 2),
			end:        date(2026, 10, 3),
			wantReason: ReasonTooFarAhead,
		},
		{
			name:       "start exactly on the horizon",
			start:      date(2026, 10, 1),
			end:        date(2026, 10, 1),
			wantReason: "",
		},
		{
			name:       "end before start",
			start:      date(2026, 9, 10),
			end:        date(2026, 9, 9),
			wantReason: ReasonEndBeforeStart,
		},
		{
			name:       "span of eight days",
			start:      date(2026, 9, 1),
			end:        date(2026, 9, 8),
			wantReason: ReasonSpanTooLong,
		},
		{
			name:       "span of seven days",
			start:      date(2026, 9, 1),
			end:        date(2026, 9, 7),
			wantReason: "",
		},
		{
			name:       "past start wins over end before start",
			start:      date(2026, 8, 20),
			end:        date(2026, 8, 10),
			wantReason: ReasonPastDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePeriod(tt.start, tt.end, now, testRules)
			if tt.wantReason == "" {
				if got != nil {
					t.Fatalf("expected period to be valid, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected reason %s, got nil", tt.wantReason)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("expected reason %s, got %s", tt.wantReason, got.Reason)
			}
		})
	}
}

func TestValidatePeriod_AllowPastStart(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	rules := PeriodRules{
		MaxSpanDays:      7,
		MaxAdvanceMonths: 1,
		AllowPastStart:   true,
	}

	// A reservation underway keeps its elapsed start date.
	if got := ValidatePeriod(date(2026, 8, 30), date(2026, 9, 4), now, rules); got != nil {
		t.Fatalf("expected elapsed start to be admitted, got %v", got)
	}

	// The remaining rules still apply.
	if got := ValidatePeriod(date(2026, 8, 30), date(2026, 8, 29), now, rules); got == nil || got.Reason != ReasonEndBeforeStart {
		t.Fatalf("expected END_BEFORE_START, got %v", got)
	}
	if got := ValidatePeriod(date(2026, 8, 30), date(2026, 9, 7), now, rules); got == nil || got.Reason != ReasonSpanTooLong {
		t.Fatalf("expected SPAN_TOO_LONG, got %v", got)
	}
}

func TestValidatePeriod_ClockComponentIgnored(t *testing.T) {
	// Late in the evening, a reservation starting "today" must still pass.
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if got := ValidatePeriod(start, start, now, testRules); got != nil {
		t.Fatalf("expected period to be valid, got %v", got)
	}
}

func TestValidate_Reservation(t *testing.T) {
	v := NewReservationValidator(testLogger())

	valid := &model.Reservation{
		UserID:      "user-1",
		SpaceID:     model.SpaceID(3),
		SpaceNumber: 3,
		StartDate:   date(2026, 9, 2),
		EndDate:     date(2026, 9, 3),
		Shift:       model.ShiftMorning,
		Status:      model.StatusActive,
	}
	if err := v.Validate(valid); err != nil {
		t.Fatalf("expected reservation to be valid, got %v", err)
	}

	missingUser := *valid
	missingUser.UserID = ""
	if err := v.Validate(&missingUser); err == nil {
		t.Error("expected validation error for missing user id")
	}

	badShift := *valid
	badShift.Shift = "night"
	if err := v.Validate(&badShift); err == nil {
		t.Error("expected validation error for unknown shift")
	}
}

func TestValidateUpdate_Empty(t *testing.T) {
	v := NewReservationValidator(testLogger())

	if err := v.ValidateUpdate(&model.ReservationUpdate{}); err == nil {
		t.Error("expected validation error for empty update")
	}

	start := date(2026, 9, 5)
	if err := v.ValidateUpdate(&model.ReservationUpdate{StartDate: &start}); err != nil {
		t.Errorf("expected update with start date to be valid, got %v", err)
	}
}

func TestValidateDocument(t *testing.T) {
	v := NewReservationValidator(testLogger())

	if err := v.ValidateDocument(&model.DocumentUpload{FileName: "permit.pdf", Content: []byte("x")}); err != nil {
		t.Errorf("expected document to be valid, got %v", err)
	}
	if err := v.ValidateDocument(&model.DocumentUpload{FileName: "permit.pdf"}); err == nil {
		t.Error("expected validation error for empty content")
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}
