package service

import (
	"context"

	apperrors "tabletime/pkg/errors"
	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

// BookedTimesReader is the slice of the booking store availability needs.
type BookedTimesReader interface {
	BookedTimes(ctx context.Context, restaurant string, date model.Date) ([]model.TimeOfDay, error)
}

type AvailabilityService interface {
	FreeSlots(ctx context.Context, restaurantID string, date model.Date) ([]model.TimeOfDay, error)
	CapacityPerSlot() int
}

type availabilityService struct {
	bookings BookedTimesReader
	template model.SlotTemplate
	capacity int
	log      *logger.Logger
}

func NewAvailabilityService(bookings BookedTimesReader, template model.SlotTemplate, capacity int, log *logger.Logger) AvailabilityService {
	return &availabilityService{
		bookings: bookings,
		template: template,
		capacity: capacity,
		log:      log,
	}
}

// FreeSlots returns the template minus the times already booked for the
// restaurant on date, in template order. Restaurant ids are not checked
// against the directory; an unknown id simply has no bookings. The only
// error is a failing store.
func (s *availabilityService) FreeSlots(ctx context.Context, restaurantID string, date model.Date) ([]model.TimeOfDay, error) {
	slots := s.template.Slots()
	if restaurantID == "" || date.IsZero() {
		return slots, nil
	}

	booked, err := s.bookings.BookedTimes(ctx, restaurantID, date)
	if err != nil {
		s.log.Error("failed to load booked times",
			"restaurant", restaurantID,
			"date", date.String(),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to compute availability", err)
	}
	if len(booked) == 0 {
		return slots, nil
	}

	taken := make(map[model.TimeOfDay]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]model.TimeOfDay, 0, len(slots))
	for _, t := range slots {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}
	return free, nil
}

func (s *availabilityService) CapacityPerSlot() int {
	return s.capacity
}
