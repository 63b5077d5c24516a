package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// BookingRepository persists bookings. Book runs the seat check-and-decrement
// as a serializable transaction with a row lock on the event, retrying a
// bounded number of times when the database aborts it with a serialization
// conflict.
type BookingRepository struct {
	pool       *pgxpool.Pool
	maxRetries int
	backoff    time.Duration
}

func NewBookingRepository(pool *pgxpool.Pool, maxRetries int, backoff time.Duration) *BookingRepository {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &BookingRepository{pool: pool, maxRetries: maxRetries, backoff: backoff}
}

// Book atomically creates a booking row and decrements the event's seat
// counter. Concurrent calls against the same event serialize on the row lock:
// each one sees either the pre- or post-state of every other committed
// booking, so the committed ticket counts can never exceed capacity.
//
// Returns repository.ErrNotFound when the event does not exist,
// repository.ErrInsufficientSeats when fewer seats remain than requested, and
// repository.ErrTxConflict when the retry budget is exhausted.
func (r *BookingRepository) Book(ctx context.Context, userID, eventID int64, ticketsCount int) (*entity.Booking, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff):
			}
		}

		b, err := r.bookOnce(ctx, userID, eventID, ticketsCount)
		if err == nil {
			return b, nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", repository.ErrTxConflict, lastErr)
}

func (r *BookingRepository) bookOnce(ctx context.Context, userID, eventID int64, ticketsCount int) (*entity.Booking, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Row-level exclusive lock: concurrent bookings for the same event block
	// here until the holder commits or rolls back.
	var available int
	err = tx.QueryRow(ctx, `
		SELECT available_seats
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if available < ticketsCount {
		return nil, repository.ErrInsufficientSeats
	}

	b := &entity.Booking{
		UserID:       userID,
		EventID:      eventID,
		BookingDate:  time.Now().UTC(),
		TicketsCount: ticketsCount,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, event_id, booking_date, tickets_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, b.UserID, b.EventID, b.BookingDate, b.TicketsCount).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE events SET available_seats = available_seats - $1 WHERE id = $2
	`, ticketsCount, eventID)
	if err != nil {
		return nil, fmt.Errorf("decrement available seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return b, nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

func (r *BookingRepository) List(ctx context.Context, page, size int) ([]entity.Booking, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, event_id, booking_date, tickets_count
		FROM bookings
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.EventID, &b.BookingDate, &b.TicketsCount); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
