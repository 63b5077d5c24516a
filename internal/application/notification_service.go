package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

// NotificationMessage is the fixed human-readable text persisted with every
// booking notification.
const NotificationMessage = "Notification sent"

// BookingNotification is the message published for a committed booking.
type BookingNotification struct {
	BookingID    int64     `json:"booking_id"`
	UserID       int64     `json:"user_id"`
	EventID      int64     `json:"event_id"`
	TicketsCount int       `json:"tickets_count"`
	BookingDate  time.Time `json:"booking_date"`
}

// NotificationService records a notification log entry for every committed
// booking. Dispatch runs off the request path: with a RabbitMQ publisher
// configured it hands the message to the notifications queue (consumed by the
// worker binary), otherwise a goroutine persists the row directly. Failures
// are logged and never surfaced to the booking caller.
type NotificationService struct {
	Repo            repository.NotificationLogRepository
	Pub             *helpers.RabbitPublisher
	Logger          *logrus.Logger
	DispatchTimeout time.Duration

	wg sync.WaitGroup
}

func NewNotificationService(repo repository.NotificationLogRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		Repo:            repo,
		Pub:             pub,
		Logger:          logger,
		DispatchTimeout: 5 * time.Second,
	}
}

// Dispatch schedules the notification for a committed booking and returns
// immediately. Callers must invoke it only after the booking transaction has
// durably committed.
func (s *NotificationService) Dispatch(b *entity.Booking) {
	msg := BookingNotification{
		BookingID:    b.ID,
		UserID:       b.UserID,
		EventID:      b.EventID,
		TicketsCount: b.TicketsCount,
		BookingDate:  b.BookingDate,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The caller's request context is already answered; use a fresh one.
		ctx, cancel := context.WithTimeout(context.Background(), s.DispatchTimeout)
		defer cancel()

		var err error
		if s.Pub != nil {
			err = s.Pub.PublishJSON(ctx, msg)
		} else {
			err = s.persist(ctx, msg)
		}
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("booking_id", msg.BookingID).Error("notification dispatch failed")
		}
	}()
}

// HandleMessage persists a notification log row for a queued booking
// notification. Used by the worker binary consuming the notifications queue.
func (s *NotificationService) HandleMessage(ctx context.Context, body []byte) error {
	var msg BookingNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode booking notification: %w", err)
	}
	return s.persist(ctx, msg)
}

func (s *NotificationService) persist(ctx context.Context, msg BookingNotification) error {
	n := &entity.NotificationLog{
		BookingID:  msg.BookingID,
		Message:    NotificationMessage,
		NotifiedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"booking_id": n.BookingID, "notification_id": n.ID}).Info("notification logged")
	}
	return nil
}

// List returns persisted notification logs, ordered by creation.
func (s *NotificationService) List(ctx context.Context, page, size int) ([]entity.NotificationLog, int64, error) {
	return s.Repo.List(ctx, page, size)
}

// Wait blocks until all in-flight dispatches have finished. Used on shutdown
// and in tests.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
