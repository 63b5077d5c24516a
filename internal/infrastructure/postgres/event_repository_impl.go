package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

// Columns the event listing may be sorted on. Anything else falls back to id.
var eventSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"event_date": "event_date",
}

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, description, event_date, capacity, available_seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Description, e.EventDate, e.Capacity, e.AvailableSeats)

	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	e := &entity.Event{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, event_date, capacity, available_seats
		FROM events
		WHERE id = $1
	`, id)

	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.EventDate, &e.Capacity, &e.AvailableSeats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context, page, size int, sort string) ([]entity.Event, int64, error) {
	col, ok := eventSortColumns[sort]
	if !ok {
		col = "id"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, name, description, event_date, capacity, available_seats
		FROM events
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, col), size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.EventDate, &e.Capacity, &e.AvailableSeats); err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// Update rewrites the mutable event fields and reconciles the seat counter
// under a row lock, so an update applied while bookings are in flight cannot
// lose their seat decrements. Shrinking capacity below the number of already
// booked seats is rejected.
func (r *EventRepository) Update(ctx context.Context, id int64, upd repository.EventUpdate) (*entity.Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity, available int
	err = tx.QueryRow(ctx, `
		SELECT capacity, available_seats
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&capacity, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	booked := capacity - available
	if upd.Capacity < booked {
		return nil, repository.ErrCapacityBelowBooked
	}
	newAvailable := upd.Capacity - booked

	_, err = tx.Exec(ctx, `
		UPDATE events
		SET name = $1, description = $2, event_date = $3, capacity = $4, available_seats = $5
		WHERE id = $6
	`, upd.Name, upd.Description, upd.EventDate, upd.Capacity, newAvailable, id)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &entity.Event{
		ID:             id,
		Name:           upd.Name,
		Description:    upd.Description,
		EventDate:      upd.EventDate,
		Capacity:       upd.Capacity,
		AvailableSeats: newAvailable,
	}, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
