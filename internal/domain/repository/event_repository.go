package repository

import (
	"context"
	"time"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
)

// EventUpdate carries the mutable fields of an event update. AvailableSeats is
// not part of it: the repository reconciles the seat counter under a row lock.
type EventUpdate struct {
	Name        string
	Description string
	EventDate   time.Time
	Capacity    int
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	List(ctx context.Context, page, size int, sort string) ([]entity.Event, int64, error)
	Update(ctx context.Context, id int64, upd EventUpdate) (*entity.Event, error)
	Delete(ctx context.Context, id int64) error
}
