package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-booking/internal/apperror"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	// Public endpoints
	GetEvents(ctx context.Context) ([]response.EventResponse, error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error)

	// Admin endpoints
	CreateEvent(ctx context.Context, identity utils.Identity, req *request.EventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type eventService struct {
	events repository.EventRepository
	log    *zap.Logger
}

func NewEventService(events repository.EventRepository, log *zap.Logger) EventService {
	return &eventService{
		events: events,
		log:    log.With(zap.String("service", "event")),
	}
}

// eventDateLayouts are tried in order. Layouts without a zone are read as UTC.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseEventDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (s *eventService) GetEvents(ctx context.Context) ([]response.EventResponse, error) {
	events, err := s.events.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get events", zap.Error(err))
		return nil, apperror.Storage("failed to get events", err)
	}

	return response.EventsToResponse(events), nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) CreateEvent(ctx context.Context, identity utils.Identity, req *request.EventRequest) (*response.EventResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	name := strings.TrimSpace(req.Name)
	venue := strings.TrimSpace(req.Venue)
	if name == "" || venue == "" {
		return nil, apperror.InvalidInput("name and venue must not be blank")
	}

	date, ok := parseEventDate(req.Date)
	if !ok {
		return nil, apperror.Validation(map[string]string{"date": "date must be a valid date or date-time"})
	}

	event := &entity.Event{
		Base:      entity.NewBase(time.Now()),
		Name:      name,
		Venue:     venue,
		Date:      date,
		Price:     entity.RoundCents(*req.Price),
		CreatedBy: identity.UserID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
		)
		return nil, apperror.Storage("failed to create event", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("name", event.Name),
		zap.String("created_by", identity.UserID.String()),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.EventUpdateRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Partial update: only supplied fields change
	if req.Name != nil {
		if event.Name = strings.TrimSpace(*req.Name); event.Name == "" {
			return nil, apperror.InvalidInput("name must not be blank")
		}
	}
	if req.Venue != nil {
		if event.Venue = strings.TrimSpace(*req.Venue); event.Venue == "" {
			return nil, apperror.InvalidInput("venue must not be blank")
		}
	}
	if req.Date != nil {
		date, ok := parseEventDate(*req.Date)
		if !ok {
			return nil, apperror.Validation(map[string]string{"date": "date must be a valid date or date-time"})
		}
		event.Date = date
	}
	if req.Price != nil {
		event.Price = entity.RoundCents(*req.Price)
	}
	event.Touch(time.Now())

	if err := s.events.Update(ctx, event); err != nil {
		// deleted between read and write
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("event not found")
		}
		s.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, apperror.Storage("failed to update event", err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return apperror.NotFound("event not found")
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("event not found")
		}
		s.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return apperror.Storage("failed to delete event", err)
	}

	// bookings keep pointing at the removed id and render without an event
	s.log.Info("Event deleted", zap.String("event_id", eventID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *eventService) findEvent(ctx context.Context, eventID string) (*entity.Event, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperror.NotFound("event not found")
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, apperror.Storage("failed to get event", err)
	}
	if event == nil {
		return nil, apperror.NotFound("event not found")
	}

	return event, nil
}
