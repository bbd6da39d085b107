package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type EventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Venue     string    `json:"venue"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:        event.ID.String(),
		Name:      event.Name,
		Venue:     event.Venue,
		Date:      event.Date,
		Price:     event.Price,
		CreatedBy: event.CreatedBy.String(),
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}
}

func EventsToResponse(events []*entity.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, event := range events {
		out[i] = EventToResponse(event)
	}
	return out
}
