package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"

	"github.com/google/uuid"
)

func newUser(t *testing.T, repo *repository.Repository, email string) *entity.User {
	t.Helper()

	now := time.Now().UTC()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func newEvent(t *testing.T, repo *repository.Repository, date time.Time, price float64) *entity.Event {
	t.Helper()

	now := time.Now().UTC()
	event := &entity.Event{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  "Concert",
		Venue: "Hall A",
		Date:  date,
		Price: price,
	}
	if err := repo.Event.Create(context.Background(), event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func newBooking(userID, eventID uuid.UUID, createdAt time.Time) *entity.Booking {
	return &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
		UserID:     userID,
		EventID:    eventID,
		Quantity:   1,
		TotalPrice: 10,
		Status:     entity.InitialBookingStatus,
	}
}

func TestUserEmailIsCaseInsensitive(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	created := newUser(t, repo, "Alice@Example.com")

	found, err := repo.User.FindByEmail(ctx, "alice@example.COM")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("FindByEmail returned %+v, want user %s", found, created.ID)
	}

	dup := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "ALICE@example.com"}
	if err := repo.User.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email err = %v, want ErrDuplicate", err)
	}
}

func TestFindMissingReturnsNil(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	if user, err := repo.User.FindByID(ctx, uuid.New()); user != nil || err != nil {
		t.Fatalf("FindByID user = %v, %v", user, err)
	}
	if event, err := repo.Event.FindByID(ctx, uuid.New()); event != nil || err != nil {
		t.Fatalf("FindByID event = %v, %v", event, err)
	}
	if booking, err := repo.Booking.FindByID(ctx, uuid.New()); booking != nil || err != nil {
		t.Fatalf("FindByID booking = %v, %v", booking, err)
	}
	if booking, err := repo.Booking.UpdateStatus(ctx, uuid.New(), entity.BookingStatusCancelled); booking != nil || err != nil {
		t.Fatalf("UpdateStatus unknown = %v, %v", booking, err)
	}
}

func TestEventsSortedByDateThenInsertion(t *testing.T) {
	repo := New().Repository()
	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	late := newEvent(t, repo, base.Add(48*time.Hour), 10)
	first := newEvent(t, repo, base, 10)
	second := newEvent(t, repo, base, 10)

	events, err := repo.Event.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}

	want := []uuid.UUID{first.ID, second.ID, late.ID}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("events[%d] = %s, want %s", i, events[i].ID, id)
		}
	}
}

func TestEventUpdateAndDelete(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	event := newEvent(t, repo, time.Now().UTC(), 10)

	event.Price = 25
	if err := repo.Event.Update(ctx, event); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.Event.FindByID(ctx, event.ID)
	if got.Price != 25 {
		t.Fatalf("price = %v, want 25", got.Price)
	}

	if err := repo.Event.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Event.Delete(ctx, event.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Event.Update(ctx, event); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update after delete err = %v, want ErrNotFound", err)
	}
}

func TestBookingsNewestFirstWithInsertionTieBreak(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	user := newUser(t, repo, "bob@example.com")
	event := newEvent(t, repo, time.Now().UTC(), 10)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := newBooking(user.ID, event.ID, at.Add(-time.Minute))
	tieA := newBooking(user.ID, event.ID, at)
	tieB := newBooking(user.ID, event.ID, at)

	for _, b := range []*entity.Booking{older, tieA, tieB} {
		if err := repo.Booking.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	details, err := repo.Booking.FindByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}

	want := []uuid.UUID{tieB.ID, tieA.ID, older.ID}
	for i, id := range want {
		if details[i].ID != id {
			t.Errorf("details[%d] = %s, want %s", i, details[i].ID, id)
		}
	}
}

func TestBookingsListedPerUser(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	alice := newUser(t, repo, "alice@example.com")
	bob := newUser(t, repo, "bob@example.com")
	event := newEvent(t, repo, time.Now().UTC(), 10)

	now := time.Now().UTC()
	for _, owner := range []uuid.UUID{alice.ID, bob.ID, alice.ID} {
		if err := repo.Booking.Create(ctx, newBooking(owner, event.ID, now)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	details, err := repo.Booking.FindByUserID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("alice has %d bookings, want 2", len(details))
	}
	for _, d := range details {
		if d.UserID != alice.ID {
			t.Fatalf("got booking owned by %s", d.UserID)
		}
	}

	all, err := repo.Booking.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FindAll = %d bookings, want 3", len(all))
	}
	for _, d := range all {
		if d.UserEmail == "" {
			t.Fatal("FindAll should join the owner's email")
		}
	}

	none, err := repo.Booking.FindByUserID(ctx, uuid.New())
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("unknown user = %v, %v; want empty slice", none, err)
	}
}

func TestBookingKeepsReferenceToDeletedEvent(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	user := newUser(t, repo, "carol@example.com")
	event := newEvent(t, repo, time.Now().UTC(), 10)

	booking := newBooking(user.ID, event.ID, time.Now().UTC())
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Event.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete event: %v", err)
	}

	detail, err := repo.Booking.FindByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if detail.Event != nil {
		t.Fatal("expected no event after deletion")
	}
	if detail.EventID != event.ID {
		t.Fatalf("EventID = %s, want retained %s", detail.EventID, event.ID)
	}
}

func TestBookingCreateRequiresUser(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	booking := newBooking(uuid.New(), uuid.New(), time.Now().UTC())
	if err := repo.Booking.Create(ctx, booking); err == nil {
		t.Fatal("expected error for unknown user")
	}

	all, _ := repo.Booking.FindAll(ctx)
	if len(all) != 0 {
		t.Fatalf("nothing should be persisted, got %d", len(all))
	}
}

func TestBookingCreateHonoursCancelledContext(t *testing.T) {
	repo := New().Repository()
	user := newUser(t, repo, "dave@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Booking.Create(ctx, newBooking(user.ID, uuid.New(), time.Now().UTC())); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	all, _ := repo.Booking.FindAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("nothing should be persisted, got %d", len(all))
	}
}

func TestUpdateStatusChangesOnlyStatus(t *testing.T) {
	store := New()
	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	repo := store.Repository()
	ctx := context.Background()

	user := newUser(t, repo, "erin@example.com")
	event := newEvent(t, repo, time.Now().UTC(), 10)
	booking := newBooking(user.ID, event.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != entity.BookingStatusCancelled {
		t.Fatalf("status = %q", updated.Status)
	}
	if !updated.UpdatedAt.Equal(fixed) {
		t.Fatalf("UpdatedAt = %v, want %v", updated.UpdatedAt, fixed)
	}
	if updated.TotalPrice != booking.TotalPrice || updated.Quantity != booking.Quantity || !updated.CreatedAt.Equal(booking.CreatedAt) {
		t.Fatalf("UpdateStatus changed other fields: %+v", updated)
	}
}

func TestConcurrentBookingsAllPersist(t *testing.T) {
	repo := New().Repository()
	ctx := context.Background()

	user := newUser(t, repo, "frank@example.com")
	event := newEvent(t, repo, time.Now().UTC(), 10)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Booking.Create(ctx, newBooking(user.ID, event.ID, time.Now().UTC()))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	details, err := repo.Booking.FindByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if len(details) != n {
		t.Fatalf("got %d bookings, want %d", len(details), n)
	}
}
