package wire

import (
	"net/http"

	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/events", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", eventHandler.GetEvents)
		r.Get("/{id}", eventHandler.GetEventByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Admin(log))

			r.Post("/", eventHandler.CreateEvent)
			r.Put("/{id}", eventHandler.UpdateEvent)
			r.Delete("/{id}", eventHandler.DeleteEvent)
		})
	})
}
