package entity

import "time"

// Event is a bookable occasion with a fixed capacity and a live seat counter.
// Invariant: 0 <= AvailableSeats <= Capacity, also under concurrent bookings.
type Event struct {
	ID             int64
	Name           string
	Description    string
	EventDate      time.Time
	Capacity       int
	AvailableSeats int
}

// BookedSeats returns the number of seats already committed to bookings.
func (e *Event) BookedSeats() int {
	return e.Capacity - e.AvailableSeats
}
