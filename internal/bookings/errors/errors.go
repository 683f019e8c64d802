package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken means another booking already holds the
	// (restaurant, date, time) triple.
	ErrSlotTaken = errors.New("time slot already booked")

	ErrDuplicateCode = errors.New("booking code already in use")
)
