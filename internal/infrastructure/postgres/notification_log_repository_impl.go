package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

type NotificationLogRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationLogRepository(pool *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{pool: pool}
}

func (r *NotificationLogRepository) Create(ctx context.Context, n *entity.NotificationLog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications_log (booking_id, notification_message, notified_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, n.BookingID, n.Message, n.NotifiedAt)

	if err := row.Scan(&n.ID); err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}

func (r *NotificationLogRepository) List(ctx context.Context, page, size int) ([]entity.NotificationLog, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications_log`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notification logs: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, notification_message, notified_at
		FROM notifications_log
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []entity.NotificationLog
	for rows.Next() {
		var n entity.NotificationLog
		if err := rows.Scan(&n.ID, &n.BookingID, &n.Message, &n.NotifiedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification log: %w", err)
		}
		logs = append(logs, n)
	}
	return logs, total, rows.Err()
}

var _ repository.NotificationLogRepository = (*NotificationLogRepository)(nil)
