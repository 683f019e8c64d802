package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "tabletime/internal/bookings/errors"
	"tabletime/internal/bookings/events"
	"tabletime/internal/bookings/repository"
	"tabletime/internal/bookings/validator"
	apperrors "tabletime/pkg/errors"
	"tabletime/pkg/logger"
	"tabletime/pkg/model"
	"tabletime/pkg/sanitizer"
)

const (
	MsgTransientFault    = "Temporary server error. Please try again."
	MsgMissingFields     = "Missing required fields."
	MsgInvalidBooking    = "Invalid booking details."
	MsgMissingDateTime   = "Missing date/time"
	MsgInvalidDateTime   = "Invalid date/time"
	MsgUnknownRestaurant = "Please choose a restaurant."
	MsgNotASlot          = "Selected time is not an available slot."
	MsgOutsideHorizon    = "Selected date is outside the booking window."
	MsgSlotUnavailable   = "Selected time slot is no longer available."

	maxCodeAttempts = 5
	defaultGuests   = 1
)

// RestaurantChecker tells the booking engine which ids accept bookings.
type RestaurantChecker interface {
	IsBookable(id string) bool
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	Search(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	Cancel(ctx context.Context, code string) error
	Reschedule(ctx context.Context, code string, req *model.RescheduleRequest) (*model.Booking, error)
}

type bookingService struct {
	// mu serializes every mutation so the slot check and the write that
	// follows it see the same collection.
	mu sync.Mutex

	repo        repository.BookingRepository
	restaurants RestaurantChecker
	validator   *validator.BookingValidator
	template    model.SlotTemplate
	log         *logger.Logger

	faults      FaultPolicy
	clock       func() time.Time
	location    *time.Location
	horizonDays int
	newCode     CodeGenerator
	publisher   events.Publisher
}

type Option func(*bookingService)

func WithFaultPolicy(policy FaultPolicy) Option {
	return func(s *bookingService) { s.faults = policy }
}

func WithClock(clock func() time.Time) Option {
	return func(s *bookingService) { s.clock = clock }
}

func WithLocation(loc *time.Location) Option {
	return func(s *bookingService) { s.location = loc }
}

// WithHorizonDays limits bookings to [today, today+days]. Zero disables
// the check.
func WithHorizonDays(days int) Option {
	return func(s *bookingService) { s.horizonDays = days }
}

func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *bookingService) { s.newCode = gen }
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *bookingService) { s.publisher = publisher }
}

func NewBookingService(
	repo repository.BookingRepository,
	restaurants RestaurantChecker,
	validator *validator.BookingValidator,
	template model.SlotTemplate,
	log *logger.Logger,
	opts ...Option,
) BookingService {
	s := &bookingService{
		repo:        repo,
		restaurants: restaurants,
		validator:   validator,
		template:    template,
		log:         log,
		faults:      NoFaults,
		clock:       time.Now,
		location:    time.UTC,
		newCode:     NewBookingCode,
		publisher:   events.NewNoopPublisher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if s.faults() {
		s.log.Warn("Injected transient fault on booking create", "restaurant", req.Restaurant)
		return nil, apperrors.Transient(MsgTransientFault)
	}

	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return nil, validationError(err, MsgMissingFields, MsgInvalidBooking)
	}

	date, _ := model.ParseDate(req.Date)
	slot, _ := model.ParseTimeOfDay(req.Time)

	if !s.restaurants.IsBookable(req.Restaurant) {
		return nil, apperrors.Validation(MsgUnknownRestaurant, map[string]any{"restaurant": req.Restaurant})
	}
	if err := s.checkSlot(date, slot); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		Restaurant: req.Restaurant,
		Date:       date,
		Time:       slot,
		Guests:     req.Guests,
		Name:       req.Name,
		Email:      req.Email,
		Note:       req.Note,
	}
	s.applyDefaults(booking)

	if err := s.insert(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking created successfully",
		"code", booking.Code,
		"restaurant", booking.Restaurant,
		"date", booking.Date.String(),
		"time", booking.Time.String(),
		"guests", booking.Guests,
	)
	s.publish(ctx, model.BookingEvent{
		Type:       model.EventBookingCreated,
		Code:       booking.Code,
		Restaurant: booking.Restaurant,
		Date:       booking.Date,
		Time:       booking.Time,
		OccurredAt: booking.CreatedAt,
	})
	return booking, nil
}

// insert runs detached from the caller's cancellation: once a create passes
// validation it completes even if the client goes away.
func (s *bookingService) insert(ctx context.Context, booking *model.Booking) error {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.verifySlotFree(ctx, booking.Restaurant, booking.Date, booking.Time, ""); err != nil {
		return err
	}

	booking.CreatedAt = s.clock().UTC()
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		booking.Code = s.newCode()

		err := s.repo.Insert(ctx, booking)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bookingserrors.ErrDuplicateCode):
			s.log.Debug("Booking code collision, regenerating", "code", booking.Code, "attempt", attempt)
			continue
		case errors.Is(err, bookingserrors.ErrSlotTaken):
			return apperrors.Conflict(MsgSlotUnavailable)
		default:
			s.log.Error("Failed to create booking", "error", err)
			return apperrors.Internal("Failed to create booking", err)
		}
	}

	s.log.Error("Exhausted booking code attempts", "attempts", maxCodeAttempts)
	return apperrors.Internal("Failed to create booking", bookingserrors.ErrDuplicateCode)
}

// Search never rejects a filter. Store failures are the only error.
func (s *bookingService) Search(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	if filter.Email != nil {
		email := sanitizer.NormalizeEmail(*filter.Email)
		filter.Email = &email
	}

	bookings, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.log.Error("Failed to search bookings", "error", err)
		return nil, apperrors.Internal("Failed to search bookings", err)
	}

	s.log.Debug("Booking search completed", "count", len(bookings))
	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, code string) error {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	existing, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		err = s.repo.Delete(ctx, code)
	}
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", code)
		}
		s.log.Error("Failed to cancel booking", "code", code, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.log.Info("Booking cancelled successfully", "code", code)
	s.publish(ctx, model.BookingEvent{
		Type:       model.EventBookingCancelled,
		Code:       existing.Code,
		Restaurant: existing.Restaurant,
		Date:       existing.Date,
		Time:       existing.Time,
		OccurredAt: s.clock().UTC(),
	})
	return nil
}

// Reschedule checks existence before the payload so an unknown code is a
// 404 whatever the body holds. Like the other mutations it ignores the
// caller's cancellation.
func (s *bookingService) Reschedule(ctx context.Context, code string, req *model.RescheduleRequest) (*model.Booking, error) {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", code)
		}
		return nil, apperrors.Internal("Failed to load booking", err)
	}

	if err := s.validator.ValidateReschedule(req); err != nil {
		s.log.Warn("Reschedule validation failed", "code", code, "error", err)
		return nil, validationError(err, MsgMissingDateTime, MsgInvalidDateTime)
	}

	date, _ := model.ParseDate(req.Date)
	slot, _ := model.ParseTimeOfDay(req.Time)
	if err := s.checkSlot(date, slot); err != nil {
		return nil, err
	}
	if err := s.verifySlotFree(ctx, existing.Restaurant, date, slot, code); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSlot(ctx, code, date, slot); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", code)
		case errors.Is(err, bookingserrors.ErrSlotTaken):
			return nil, apperrors.Conflict(MsgSlotUnavailable)
		default:
			s.log.Error("Failed to reschedule booking", "code", code, "error", err)
			return nil, apperrors.Internal("Failed to reschedule booking", err)
		}
	}

	previousDate, previousTime := existing.Date, existing.Time
	existing.Date = date
	existing.Time = slot

	s.log.Info("Booking rescheduled successfully",
		"code", code,
		"from_date", previousDate.String(),
		"from_time", previousTime.String(),
		"to_date", date.String(),
		"to_time", slot.String(),
	)
	s.publish(ctx, model.BookingEvent{
		Type:         model.EventBookingRescheduled,
		Code:         existing.Code,
		Restaurant:   existing.Restaurant,
		Date:         date,
		Time:         slot,
		PreviousDate: &previousDate,
		PreviousTime: &previousTime,
		OccurredAt:   s.clock().UTC(),
	})
	return existing, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Restaurant = sanitizer.TrimAndNormalize(req.Restaurant)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Note = sanitizer.NormalizeNote(req.Note)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Guests <= 0 {
		b.Guests = defaultGuests
	}
}

func (s *bookingService) checkSlot(date model.Date, t model.TimeOfDay) error {
	if !s.template.Contains(t) {
		return apperrors.Validation(MsgNotASlot, map[string]any{"time": t.String()})
	}
	if s.horizonDays <= 0 {
		return nil
	}

	today := model.DateOf(s.clock().In(s.location))
	last := today.AddDays(s.horizonDays)
	if date.Before(today) || date.After(last) {
		return apperrors.Validation(MsgOutsideHorizon, map[string]any{
			"date":     date.String(),
			"earliest": today.String(),
			"latest":   last.String(),
		})
	}
	return nil
}

// verifySlotFree fails with a conflict when a booking other than skipCode
// holds the slot.
func (s *bookingService) verifySlotFree(ctx context.Context, restaurant string, date model.Date, t model.TimeOfDay, skipCode string) error {
	holder, err := s.repo.FindBySlot(ctx, restaurant, date, t)
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if holder.Code == skipCode {
		return nil
	}
	return apperrors.Conflict(MsgSlotUnavailable)
}

func (s *bookingService) publish(ctx context.Context, event model.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			"event_type", event.Type,
			"code", event.Code,
			"error", err,
		)
	}
}

func validationError(err error, missingMsg, invalidMsg string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(invalidMsg, map[string]any{"error": err.Error()})
	}
	if verrs.MissingRequired() {
		return apperrors.Validation(missingMsg, verrs.Details())
	}
	return apperrors.Validation(invalidMsg, verrs.Details())
}
