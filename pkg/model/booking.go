package model

import (
	"strings"
	"time"
)

type Booking struct {
	Code       string    `json:"code" bson:"code"`
	Restaurant string    `json:"restaurant" bson:"restaurant"`
	Date       Date      `json:"date" bson:"date"`
	Time       TimeOfDay `json:"time" bson:"time"`
	Guests     int       `json:"guests" bson:"guests"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Note       string    `json:"note" bson:"note"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// SameSlot reports whether b occupies the given (restaurant, date, time) triple.
func (b *Booking) SameSlot(restaurant string, date Date, t TimeOfDay) bool {
	return b.Restaurant == restaurant && b.Date == date && b.Time == t
}

// BookingRequest is the create payload as it arrives on the wire.
type BookingRequest struct {
	Restaurant string `json:"restaurant" validate:"required,max=100"`
	Date       string `json:"date" validate:"required,calendar_date"`
	Time       string `json:"time" validate:"required,clock_time"`
	Guests     int    `json:"guests" validate:"omitempty,party_size"`
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"required,calendar_date"`
	Time string `json:"time" validate:"required,clock_time"`
}

// BookingFilter fields left nil match every booking.
type BookingFilter struct {
	Date  *Date
	Email *string
}

func (f BookingFilter) Matches(b *Booking) bool {
	if f.Date != nil && b.Date != *f.Date {
		return false
	}
	if f.Email != nil && !strings.EqualFold(b.Email, *f.Email) {
		return false
	}
	return true
}

const (
	EventBookingCreated     = "booking.created"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingCancelled   = "booking.cancelled"
)

type BookingEvent struct {
	Type         string     `json:"eventType"`
	Code         string     `json:"code"`
	Restaurant   string     `json:"restaurant"`
	Date         Date       `json:"date"`
	Time         TimeOfDay  `json:"time"`
	PreviousDate *Date      `json:"previousDate,omitempty"`
	PreviousTime *TimeOfDay `json:"previousTime,omitempty"`
	OccurredAt   time.Time  `json:"occurredAt"`
}
