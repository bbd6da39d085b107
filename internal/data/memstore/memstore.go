// Package memstore is an in-process implementation of the repository
// interfaces. Every operation runs under one lock, so each insert or update
// is atomic and readers never observe a partial write.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]entity.User
	events   map[uuid.UUID]entity.Event
	bookings map[uuid.UUID]entity.Booking

	// insertion order, used to break created_at ties
	seq        int64
	eventSeq   map[uuid.UUID]int64
	bookingSeq map[uuid.UUID]int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:      make(map[uuid.UUID]entity.User),
		events:     make(map[uuid.UUID]entity.Event),
		bookings:   make(map[uuid.UUID]entity.Booking),
		eventSeq:   make(map[uuid.UUID]int64),
		bookingSeq: make(map[uuid.UUID]int64),
		now:        time.Now,
	}
}

// Repository exposes the store through the same interfaces as the Postgres repositories.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userStore{s},
		Event:   &eventStore{s},
		Booking: &bookingStore{s},
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// ==================== USERS ====================

type userStore struct{ s *Store }

func (r *userStore) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.ID]; exists {
		return fmt.Errorf("create user %s: %w", user.ID, repository.ErrDuplicate)
	}
	if r.s.findUserByEmail(user.Email) != nil {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
	}

	stored := *user
	stored.Email = strings.ToLower(user.Email)
	r.s.users[user.ID] = stored
	return nil
}

func (r *userStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.findUserByEmail(email), nil
}

func (r *userStore) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, repository.ErrNotFound)
	}
	if other := r.s.findUserByEmail(user.Email); other != nil && other.ID != user.ID {
		return fmt.Errorf("update user %s: %w", user.ID, repository.ErrDuplicate)
	}

	stored := *user
	stored.Email = strings.ToLower(user.Email)
	r.s.users[user.ID] = stored
	return nil
}

// caller holds the lock
func (s *Store) findUserByEmail(email string) *entity.User {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return &user
		}
	}
	return nil
}

// ==================== EVENTS ====================

type eventStore struct{ s *Store }

func (r *eventStore) Create(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.events[event.ID]; exists {
		return fmt.Errorf("create event %s: %w", event.ID, repository.ErrDuplicate)
	}

	r.s.events[event.ID] = *event
	r.s.eventSeq[event.ID] = r.s.nextSeq()
	return nil
}

func (r *eventStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	event, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	return &event, nil
}

func (r *eventStore) FindAll(ctx context.Context) ([]*entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]*entity.Event, 0, len(r.s.events))
	for _, event := range r.s.events {
		e := event
		events = append(events, &e)
	}

	slices.SortFunc(events, func(a, b *entity.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return compareInt64(r.s.eventSeq[a.ID], r.s.eventSeq[b.ID])
	})

	return events, nil
}

func (r *eventStore) Update(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.events[event.ID]
	if !ok {
		return fmt.Errorf("event %s: %w", event.ID, repository.ErrNotFound)
	}

	updated := *event
	updated.CreatedBy = current.CreatedBy
	updated.CreatedAt = current.CreatedAt
	r.s.events[event.ID] = updated
	return nil
}

func (r *eventStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}

	delete(r.s.events, id)
	delete(r.s.eventSeq, id)
	return nil
}

// ==================== BOOKINGS ====================

type bookingStore struct{ s *Store }

func (r *bookingStore) Create(ctx context.Context, booking *entity.Booking) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bookings[booking.ID]; exists {
		return fmt.Errorf("create booking %s: %w", booking.ID, repository.ErrDuplicate)
	}
	if _, ok := r.s.users[booking.UserID]; !ok {
		return fmt.Errorf("create booking %s: user %s does not exist", booking.ID, booking.UserID)
	}

	r.s.bookings[booking.ID] = *booking
	r.s.bookingSeq[booking.ID] = r.s.nextSeq()
	return nil
}

func (r *bookingStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.s.detail(booking), nil
}

func (r *bookingStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listBookings(func(b entity.Booking) bool { return b.UserID == userID }), nil
}

func (r *bookingStore) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listBookings(func(entity.Booking) bool { return true }), nil
}

func (r *bookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}

	booking.Status = status
	booking.UpdatedAt = r.s.now()
	r.s.bookings[id] = booking

	return &booking, nil
}

// caller holds the lock
func (s *Store) listBookings(keep func(entity.Booking) bool) []*entity.BookingDetail {
	details := []*entity.BookingDetail{}
	for _, booking := range s.bookings {
		if keep(booking) {
			details = append(details, s.detail(booking))
		}
	}

	// newest first, later insertions first on equal timestamps
	slices.SortFunc(details, func(a, b *entity.BookingDetail) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareInt64(s.bookingSeq[b.ID], s.bookingSeq[a.ID])
	})

	return details
}

// caller holds the lock
func (s *Store) detail(booking entity.Booking) *entity.BookingDetail {
	detail := &entity.BookingDetail{Booking: booking}

	if event, ok := s.events[booking.EventID]; ok {
		detail.Event = &event
	}
	if user, ok := s.users[booking.UserID]; ok {
		detail.UserName = user.Name
		detail.UserEmail = user.Email
	}

	return detail
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
