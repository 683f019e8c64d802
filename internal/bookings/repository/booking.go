package repository

import (
	"context"
	"sync"

	bookingserrors "tabletime/internal/bookings/errors"
	"tabletime/pkg/model"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *model.Booking) error
	FindByCode(ctx context.Context, code string) (*model.Booking, error)
	FindBySlot(ctx context.Context, restaurant string, date model.Date, t model.TimeOfDay) (*model.Booking, error)
	Search(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	BookedTimes(ctx context.Context, restaurant string, date model.Date) ([]model.TimeOfDay, error)
	UpdateSlot(ctx context.Context, code string, date model.Date, t model.TimeOfDay) error
	Delete(ctx context.Context, code string) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// memoryBookingRepository keeps bookings in insertion order for the life of
// the process. Every read hands out copies.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []*model.Booking
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{}
}

func (r *memoryBookingRepository) Insert(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Code == booking.Code {
			return bookingserrors.ErrDuplicateCode
		}
		if b.SameSlot(booking.Restaurant, booking.Date, booking.Time) {
			return bookingserrors.ErrSlotTaken
		}
	}

	stored := *booking
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *memoryBookingRepository) FindByCode(_ context.Context, code string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(code); i >= 0 {
		found := *r.bookings[i]
		return &found, nil
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *memoryBookingRepository) FindBySlot(_ context.Context, restaurant string, date model.Date, t model.TimeOfDay) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.SameSlot(restaurant, date, t) {
			found := *b
			return &found, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *memoryBookingRepository) Search(_ context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Booking{}
	for _, b := range r.bookings {
		if filter.Matches(b) {
			found := *b
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *memoryBookingRepository) BookedTimes(_ context.Context, restaurant string, date model.Date) ([]model.TimeOfDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var times []model.TimeOfDay
	for _, b := range r.bookings {
		if b.Restaurant == restaurant && b.Date == date {
			times = append(times, b.Time)
		}
	}
	return times, nil
}

// UpdateSlot moves a booking in place. The booking's own current slot does
// not count as taken.
func (r *memoryBookingRepository) UpdateSlot(_ context.Context, code string, date model.Date, t model.TimeOfDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(code)
	if i < 0 {
		return bookingserrors.ErrNotFound
	}
	target := r.bookings[i]

	for _, b := range r.bookings {
		if b.Code != code && b.SameSlot(target.Restaurant, date, t) {
			return bookingserrors.ErrSlotTaken
		}
	}

	target.Date = date
	target.Time = t
	return nil
}

func (r *memoryBookingRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(code)
	if i < 0 {
		return bookingserrors.ErrNotFound
	}
	r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
	return nil
}

func (r *memoryBookingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *memoryBookingRepository) Ping(_ context.Context) error {
	return nil
}

// indexOf must be called with the lock held.
func (r *memoryBookingRepository) indexOf(code string) int {
	for i, b := range r.bookings {
		if b.Code == code {
			return i
		}
	}
	return -1
}
