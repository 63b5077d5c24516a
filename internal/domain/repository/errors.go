package repository

import "errors"

// Sentinel errors shared by repository implementations. Handlers map these to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientSeats is returned when an event does not have enough
	// available seats for the requested ticket count.
	ErrInsufficientSeats = errors.New("not enough available seats")

	// ErrTxConflict is returned when the booking transaction keeps losing
	// serialization conflicts after exhausting its retry budget. The request
	// may be retried by the caller.
	ErrTxConflict = errors.New("booking transaction conflict, retry")

	// ErrCapacityBelowBooked is returned when an event update would shrink
	// capacity below the number of seats already booked.
	ErrCapacityBelowBooked = errors.New("capacity below booked seats")

	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
)
