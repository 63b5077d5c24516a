package application

import (
	"context"
	"sync"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

// memStore backs the in-memory repositories used by the service tests. A
// single mutex covers every table so the booking check-and-decrement is atomic,
// matching the transactional contract of the real implementations.
type memStore struct {
	mu sync.Mutex

	users         map[int64]*entity.User
	events        map[int64]*entity.Event
	bookings      []entity.Booking
	notifications []entity.NotificationLog

	nextUserID    int64
	nextEventID   int64
	nextBookingID int64
	nextNotifID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[int64]*entity.User),
		events: make(map[int64]*entity.Event),
	}
}

func (s *memStore) addEvent(e entity.Event) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEventID++
	e.ID = s.nextEventID
	s.events[e.ID] = &e
	return e.ID
}

func (s *memStore) eventByID(id int64) entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.events[id]
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	r.store.nextUserID++
	u.ID = r.store.nextUserID
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memEventRepo struct{ store *memStore }

func (r *memEventRepo) Create(_ context.Context, e *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextEventID++
	e.ID = r.store.nextEventID
	cp := *e
	r.store.events[e.ID] = &cp
	return nil
}

func (r *memEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memEventRepo) List(_ context.Context, page, size int, _ string) ([]entity.Event, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]entity.Event, 0, len(r.store.events))
	for id := int64(1); id <= r.store.nextEventID; id++ {
		if e, ok := r.store.events[id]; ok {
			all = append(all, *e)
		}
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []entity.Event{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memEventRepo) Update(_ context.Context, id int64, upd repository.EventUpdate) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	booked := e.Capacity - e.AvailableSeats
	if upd.Capacity < booked {
		return nil, repository.ErrCapacityBelowBooked
	}
	e.Name = upd.Name
	e.Description = upd.Description
	e.EventDate = upd.EventDate
	e.Capacity = upd.Capacity
	e.AvailableSeats = upd.Capacity - booked
	cp := *e
	return &cp, nil
}

func (r *memEventRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.events, id)
	return nil
}

type memBookingRepo struct{ store *memStore }

func (r *memBookingRepo) Book(_ context.Context, userID, eventID int64, ticketsCount int) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if e.AvailableSeats < ticketsCount {
		return nil, repository.ErrInsufficientSeats
	}
	e.AvailableSeats -= ticketsCount
	r.store.nextBookingID++
	b := entity.Booking{
		ID:           r.store.nextBookingID,
		UserID:       userID,
		EventID:      eventID,
		TicketsCount: ticketsCount,
	}
	r.store.bookings = append(r.store.bookings, b)
	cp := b
	return &cp, nil
}

func (r *memBookingRepo) List(_ context.Context, page, size int) ([]entity.Booking, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := int64(len(r.store.bookings))
	start := page * size
	if start >= len(r.store.bookings) {
		return []entity.Booking{}, total, nil
	}
	end := start + size
	if end > len(r.store.bookings) {
		end = len(r.store.bookings)
	}
	out := make([]entity.Booking, end-start)
	copy(out, r.store.bookings[start:end])
	return out, total, nil
}

type memNotificationRepo struct{ store *memStore }

func (r *memNotificationRepo) Create(_ context.Context, n *entity.NotificationLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextNotifID++
	n.ID = r.store.nextNotifID
	r.store.notifications = append(r.store.notifications, *n)
	return nil
}

func (r *memNotificationRepo) List(_ context.Context, page, size int) ([]entity.NotificationLog, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := int64(len(r.store.notifications))
	start := page * size
	if start >= len(r.store.notifications) {
		return []entity.NotificationLog{}, total, nil
	}
	end := start + size
	if end > len(r.store.notifications) {
		end = len(r.store.notifications)
	}
	out := make([]entity.NotificationLog, end-start)
	copy(out, r.store.notifications[start:end])
	return out, total, nil
}
