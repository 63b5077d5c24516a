package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

// BookingConfirmation is the human-readable message returned with a committed
// booking.
const BookingConfirmation = "Booking completed successfully."

// Dispatcher schedules the after-commit notification side effect for a
// booking. Implementations must not block the caller.
type Dispatcher interface {
	Dispatch(b *entity.Booking)
}

// BookingService commits bookings and schedules their notifications.
type BookingService struct {
	Repo     repository.BookingRepository
	Notifier Dispatcher
	Logger   *logrus.Logger
}

func NewBookingService(repo repository.BookingRepository, notifier Dispatcher, logger *logrus.Logger) *BookingService {
	return &BookingService{Repo: repo, Notifier: notifier, Logger: logger}
}

// Book reserves ticketsCount seats on the event for the requesting user. The
// seat check and decrement commit atomically with the booking row; the
// notification is scheduled only after that commit and never on a rollback.
func (s *BookingService) Book(ctx context.Context, user *entity.User, eventID int64, ticketsCount int) (*entity.Booking, error) {
	b, err := s.Repo.Book(ctx, user.ID, eventID, ticketsCount)
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"event_id":   b.EventID,
			"user_id":    b.UserID,
			"tickets":    b.TicketsCount,
		}).Info("booking committed")
	}

	if s.Notifier != nil {
		s.Notifier.Dispatch(b)
	}
	return b, nil
}

// List returns bookings in creation order with the total row count.
func (s *BookingService) List(ctx context.Context, page, size int) ([]entity.Booking, int64, error) {
	return s.Repo.List(ctx, page, size)
}
