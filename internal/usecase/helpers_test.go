package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/memstore"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/token"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testSecret = "test-secret-0123456789abcdef"

type fixture struct {
	repo    *repository.Repository
	service *Service
	tokens  *token.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memstore.New().Repository()
	tokens := token.NewService(testSecret, "event-booking", time.Hour)

	return &fixture{
		repo:    repo,
		service: NewService(repo, tokens, zap.NewNop()),
		tokens:  tokens,
	}
}

// addUser stores a user directly, skipping password hashing.
func (f *fixture) addUser(t *testing.T, email string, isAdmin bool) utils.Identity {
	t.Helper()

	now := time.Now().UTC()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         email,
		Email:        email,
		PasswordHash: "unused",
		IsAdmin:      isAdmin,
	}
	if err := f.repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return utils.Identity{UserID: user.ID, Role: user.Role()}
}

func (f *fixture) addEvent(t *testing.T, admin utils.Identity, name string, price float64) *response.EventResponse {
	t.Helper()

	event, err := f.service.Event.CreateEvent(context.Background(), admin, &request.EventRequest{
		Name:  name,
		Venue: "Hall A",
		Date:  "2026-01-01T20:00",
		Price: &price,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func (f *fixture) bookingCount(t *testing.T) int {
	t.Helper()

	all, err := f.repo.Booking.FindAll(context.Background())
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	return len(all)
}

func bookingRequest(eventID string, quantity string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{EventID: eventID, Quantity: json.Number(quantity)}
}
