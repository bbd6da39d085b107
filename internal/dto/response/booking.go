package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"userId"`
	EventID        string               `json:"eventId"`
	Quantity       int                  `json:"quantity"`
	TotalPrice     float64              `json:"totalPrice"`
	Status         entity.BookingStatus `json:"status"`
	Event          *EventResponse       `json:"event"`
	EventAvailable bool                 `json:"event_available"`
	User           *BookingUser         `json:"user,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// BookingUser is the owner projection shown to administrators.
type BookingUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func BookingToResponse(booking *entity.Booking, event *entity.Event) BookingResponse {
	resp := BookingResponse{
		ID:         booking.ID.String(),
		UserID:     booking.UserID.String(),
		EventID:    booking.EventID.String(),
		Quantity:   booking.Quantity,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}

	if event != nil {
		eventResp := EventToResponse(event)
		resp.Event = &eventResp
		resp.EventAvailable = true
	}

	return resp
}

func BookingDetailToResponse(detail *entity.BookingDetail, withUser bool) BookingResponse {
	resp := BookingToResponse(&detail.Booking, detail.Event)
	if withUser {
		resp.User = &BookingUser{
			Name:  detail.UserName,
			Email: detail.UserEmail,
		}
	}
	return resp
}
