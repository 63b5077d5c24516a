package entity

import "time"

// Booking is a confirmed reservation of TicketsCount seats against one event
// by one user. Immutable once created.
type Booking struct {
	ID           int64
	UserID       int64
	EventID      int64
	BookingDate  time.Time
	TicketsCount int
}
