package repository

import (
	"context"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
)

// NotificationLogRepository defines the interface for notification log persistence.
type NotificationLogRepository interface {
	Create(ctx context.Context, n *entity.NotificationLog) error
	List(ctx context.Context, page, size int) ([]entity.NotificationLog, int64, error)
}
