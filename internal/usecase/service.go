package usecase

import (
	"event-booking/internal/data/repository"
	"event-booking/pkg/token"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Event   EventService
	Booking BookingService
}

func NewService(repo *repository.Repository, tokens *token.Service, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, tokens, log),
		Event:   NewEventService(repo.Event, log),
		Booking: NewBookingService(repo, log),
	}
}
