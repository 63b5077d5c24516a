package entity

import "time"

// NotificationLog is an audit record created after a booking's transaction
// committed, decoupled from the booking's own request path.
type NotificationLog struct {
	ID         int64
	BookingID  int64
	Message    string
	NotifiedAt time.Time
}
