package validator

import (
	"errors"
	"strings"
	"testing"

	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

func newValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(10, log)
}

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		Restaurant: "la-piazza",
		Date:       "2024-07-01",
		Time:       "18:00",
		Guests:     2,
		Name:       "Jo",
		Email:      "jo@x.com",
	}
}

func TestValidate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name        string
		mutate      func(*model.BookingRequest)
		wantError   bool
		wantField   string
		wantMissing bool
	}{
		{
			name:   "valid request",
			mutate: func(*model.BookingRequest) {},
		},
		{
			name:   "guests omitted",
			mutate: func(r *model.BookingRequest) { r.Guests = 0 },
		},
		{
			name:        "missing date",
			mutate:      func(r *model.BookingRequest) { r.Date = "" },
			wantError:   true,
			wantField:   "date",
			wantMissing: true,
		},
		{
			name:        "missing name",
			mutate:      func(r *model.BookingRequest) { r.Name = "" },
			wantError:   true,
			wantField:   "name",
			wantMissing: true,
		},
		{
			name:      "date in wrong layout",
			mutate:    func(r *model.BookingRequest) { r.Date = "01/07/2024" },
			wantError: true,
			wantField: "date",
		},
		{
			name:      "impossible calendar date",
			mutate:    func(r *model.BookingRequest) { r.Date = "2024-02-30" },
			wantError: true,
			wantField: "date",
		},
		{
			name:      "time out of range",
			mutate:    func(r *model.BookingRequest) { r.Time = "24:00" },
			wantError: true,
			wantField: "time",
		},
		{
			name:      "time without leading zero",
			mutate:    func(r *model.BookingRequest) { r.Time = "9:30" },
			wantError: true,
			wantField: "time",
		},
		{
			name:      "bad email",
			mutate:    func(r *model.BookingRequest) { r.Email = "not-an-email" },
			wantError: true,
			wantField: "email",
		},
		{
			name:      "too many guests",
			mutate:    func(r *model.BookingRequest) { r.Guests = 11 },
			wantError: true,
			wantField: "guests",
		},
		{
			name:      "negative guests",
			mutate:    func(r *model.BookingRequest) { r.Guests = -1 },
			wantError: true,
			wantField: "guests",
		},
		{
			name:      "note too long",
			mutate:    func(r *model.BookingRequest) { r.Note = strings.Repeat("x", 501) },
			wantError: true,
			wantField: "note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := v.Validate(&req)

			if !tt.wantError {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", verrs[0].Field, tt.wantField)
			}
			if verrs.MissingRequired() != tt.wantMissing {
				t.Errorf("MissingRequired() = %v, want %v", verrs.MissingRequired(), tt.wantMissing)
			}
		})
	}
}

func TestValidateReschedule(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name      string
		req       model.RescheduleRequest
		wantError bool
	}{
		{name: "valid", req: model.RescheduleRequest{Date: "2024-07-01", Time: "18:30"}},
		{name: "missing time", req: model.RescheduleRequest{Date: "2024-07-01"}, wantError: true},
		{name: "missing both", req: model.RescheduleRequest{}, wantError: true},
		{name: "bad date", req: model.RescheduleRequest{Date: "tomorrow", Time: "18:30"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateReschedule(&tt.req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateReschedule() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidationErrors_Details(t *testing.T) {
	v := newValidator()
	req := validRequest()
	req.Email = ""
	req.Time = ""

	var verrs ValidationErrors
	if !errors.As(v.Validate(&req), &verrs) {
		t.Fatal("expected ValidationErrors")
	}

	fields, ok := verrs.Details()["fields"].(map[string]any)
	if !ok {
		t.Fatalf("Details() = %v", verrs.Details())
	}
	if fields["email"] != "email is required" {
		t.Errorf("email detail = %v", fields["email"])
	}
	if fields["time"] != "time is required" {
		t.Errorf("time detail = %v", fields["time"])
	}
}
