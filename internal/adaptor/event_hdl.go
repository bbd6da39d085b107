package adaptor

import (
	"net/http"

	"event-booking/internal/dto/request"
	"event-booking/internal/usecase"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// GetEvents handles GET /api/events (public)
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetEvents(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEventByID handles GET /api/events/{id} (public)
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get event by ID")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// CreateEvent handles POST /api/events (admin only)
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(h.log, w, err, "create event")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "Event created", event)
}

// UpdateEvent handles PUT /api/events/{id} (admin only)
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(h.log, w, err, "update event")
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Event updated", event)
}

// DeleteEvent handles DELETE /api/events/{id} (admin only)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "Event removed", nil)
}
