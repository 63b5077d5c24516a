package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newBookingFixture() (*memStore, *BookingService, *NotificationService) {
	store := newMemStore()
	notifSvc := NewNotificationService(&memNotificationRepo{store: store}, nil, testLogger())
	bookingSvc := NewBookingService(&memBookingRepo{store: store}, notifSvc, testLogger())
	return store, bookingSvc, notifSvc
}

func TestBookDecrementsAvailableSeats(t *testing.T) {
	store, svc, notifSvc := newBookingFixture()
	eventID := store.addEvent(entity.Event{Name: "Concert", Capacity: 100, AvailableSeats: 100, EventDate: time.Now().Add(24 * time.Hour)})
	user := &entity.User{ID: 1, Username: "alice", Role: entity.RoleUser}

	b, err := svc.Book(context.Background(), user, eventID, 2)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.ID == 0 {
		t.Error("expected booking to be assigned an id")
	}
	if b.EventID != eventID || b.UserID != user.ID || b.TicketsCount != 2 {
		t.Errorf("unexpected booking: %+v", b)
	}

	if got := store.eventByID(eventID).AvailableSeats; got != 98 {
		t.Errorf("available seats = %d, want 98", got)
	}

	notifSvc.Wait()
	logs, total, err := notifSvc.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List notifications: %v", err)
	}
	if total != 1 || len(logs) != 1 {
		t.Fatalf("notification logs = %d (total %d), want 1", len(logs), total)
	}
	if logs[0].BookingID != b.ID {
		t.Errorf("notification booking id = %d, want %d", logs[0].BookingID, b.ID)
	}
	if logs[0].Message != NotificationMessage {
		t.Errorf("notification message = %q, want %q", logs[0].Message, NotificationMessage)
	}
}

func TestBookEventNotFound(t *testing.T) {
	_, svc, notifSvc := newBookingFixture()
	user := &entity.User{ID: 1, Username: "alice", Role: entity.RoleUser}

	_, err := svc.Book(context.Background(), user, 999, 1)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	notifSvc.Wait()
	_, total, _ := notifSvc.List(context.Background(), 0, 10)
	if total != 0 {
		t.Errorf("notification logs after failed booking = %d, want 0", total)
	}
}

func TestBookInsufficientSeatsLeavesStateUnchanged(t *testing.T) {
	store, svc, notifSvc := newBookingFixture()
	eventID := store.addEvent(entity.Event{Name: "Intimate Show", Capacity: 10, AvailableSeats: 1, EventDate: time.Now().Add(24 * time.Hour)})
	user := &entity.User{ID: 1, Username: "alice", Role: entity.RoleUser}

	_, err := svc.Book(context.Background(), user, eventID, 2)
	if !errors.Is(err, repository.ErrInsufficientSeats) {
		t.Fatalf("err = %v, want ErrInsufficientSeats", err)
	}

	if got := store.eventByID(eventID).AvailableSeats; got != 1 {
		t.Errorf("available seats = %d, want 1 (unchanged)", got)
	}
	_, total, _ := svc.List(context.Background(), 0, 10)
	if total != 0 {
		t.Errorf("bookings after rejection = %d, want 0", total)
	}

	notifSvc.Wait()
	_, total, _ = notifSvc.List(context.Background(), 0, 10)
	if total != 0 {
		t.Errorf("notification logs after rejection = %d, want 0", total)
	}
}

func TestBookConcurrentNeverOversells(t *testing.T) {
	store, svc, notifSvc := newBookingFixture()
	const capacity = 50
	const callers = 120
	eventID := store.addEvent(entity.Event{Name: "Flash Sale", Capacity: capacity, AvailableSeats: capacity, EventDate: time.Now().Add(24 * time.Hour)})

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	rejected := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			user := &entity.User{ID: id, Role: entity.RoleUser}
			_, err := svc.Book(context.Background(), user, eventID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, repository.ErrInsufficientSeats):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	if accepted != capacity {
		t.Errorf("accepted = %d, want %d", accepted, capacity)
	}
	if rejected != callers-capacity {
		t.Errorf("rejected = %d, want %d", rejected, callers-capacity)
	}
	if got := store.eventByID(eventID).AvailableSeats; got != 0 {
		t.Errorf("available seats = %d, want 0", got)
	}

	notifSvc.Wait()
	_, total, _ := notifSvc.List(context.Background(), 0, capacity*2)
	if total != capacity {
		t.Errorf("notification logs = %d, want one per committed booking (%d)", total, capacity)
	}
}

func TestBookingListPagination(t *testing.T) {
	store, svc, _ := newBookingFixture()
	eventID := store.addEvent(entity.Event{Name: "Concert", Capacity: 100, AvailableSeats: 100, EventDate: time.Now().Add(24 * time.Hour)})
	user := &entity.User{ID: 1, Role: entity.RoleUser}

	for _, n := range []int{3, 5} {
		if _, err := svc.Book(context.Background(), user, eventID, n); err != nil {
			t.Fatalf("Book(%d): %v", n, err)
		}
	}

	page, total, err := svc.List(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(page) != 1 {
		t.Fatalf("page len = %d, want 1", len(page))
	}
	if page[0].TicketsCount != 5 {
		t.Errorf("second booking tickets = %d, want 5", page[0].TicketsCount)
	}
}

// conflictRepo fails every booking with a retry-exhaustion conflict.
type conflictRepo struct{}

func (conflictRepo) Book(context.Context, int64, int64, int) (*entity.Booking, error) {
	return nil, repository.ErrTxConflict
}

func (conflictRepo) List(context.Context, int, int) ([]entity.Booking, int64, error) {
	return nil, 0, nil
}

func TestBookSurfacesConflictAndSkipsNotification(t *testing.T) {
	store := newMemStore()
	notifSvc := NewNotificationService(&memNotificationRepo{store: store}, nil, testLogger())
	svc := NewBookingService(conflictRepo{}, notifSvc, testLogger())

	_, err := svc.Book(context.Background(), &entity.User{ID: 1}, 1, 1)
	if !errors.Is(err, repository.ErrTxConflict) {
		t.Fatalf("err = %v, want ErrTxConflict", err)
	}

	notifSvc.Wait()
	_, total, _ := notifSvc.List(context.Background(), 0, 10)
	if total != 0 {
		t.Errorf("notification logs after conflict = %d, want 0", total)
	}
}
