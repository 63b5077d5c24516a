package repository

import (
	"context"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
)

// BookingRepository defines the interface for booking persistence.
//
// Book commits a booking row and the seat decrement as one atomic unit. For
// concurrent calls against the same event the check-and-decrement sequence is
// serializable: the committed ticket counts never exceed capacity and every
// call returns a definitive accept or reject.
type BookingRepository interface {
	Book(ctx context.Context, userID, eventID int64, ticketsCount int) (*entity.Booking, error)
	List(ctx context.Context, page, size int) ([]entity.Booking, int64, error)
}
