package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

const (
	tagRequired     = "required"
	tagCalendarDate = "calendar_date"
	tagClockTime    = "clock_time"
	tagPartySize    = "party_size"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"-"`
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

// MissingRequired reports whether any field failed only because it was
// absent.
func (v ValidationErrors) MissingRequired() bool {
	for _, err := range v {
		if err.Tag == tagRequired {
			return true
		}
	}
	return false
}

// Details is the map attached to the 400 response body.
func (v ValidationErrors) Details() map[string]any {
	fields := make(map[string]any, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return map[string]any{"fields": fields}
}

type BookingValidator struct {
	validate *validator.Validate
	capacity int
	logger   *logger.Logger
}

// NewBookingValidator registers the booking tags. party_size accepts
// 1..capacity guests.
func NewBookingValidator(capacity int, log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	bv := &BookingValidator{
		validate: v,
		capacity: capacity,
		logger:   log,
	}

	if err := v.RegisterValidation(tagCalendarDate, validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation(tagClockTime, validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation(tagPartySize, bv.validatePartySize); err != nil {
		log.Fatal("Failed to register 'party_size' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully", "capacity_per_slot", capacity)

	return bv
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	return model.IsTimeOfDay(fl.Field().String())
}

func (v *BookingValidator) validatePartySize(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= int64(v.capacity)
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	return v.check(req)
}

func (v *BookingValidator) ValidateReschedule(req *model.RescheduleRequest) error {
	return v.check(req)
}

func (v *BookingValidator) check(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case tagRequired:
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case tagCalendarDate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case tagClockTime:
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		case tagPartySize:
			message = fmt.Sprintf("%s must be between 1 and %d", err.Field(), v.capacity)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Message: message,
		})
	}

	return validationErrors
}
