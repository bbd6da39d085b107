package wire

import (
	"net/http"

	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(authenticate)

		// ==================== USER ROUTES ====================
		r.Get("/", bookingHandler.GetUserBookings)
		r.Post("/", bookingHandler.CreateBooking)

		// ==================== ADMIN ROUTES ====================
		// static /admin wins over /{id} in chi's tree
		r.With(middleware.Admin(log)).Get("/admin", bookingHandler.GetAllBookings)
		r.With(middleware.Admin(log)).Put("/{id}", bookingHandler.UpdateBookingStatus)

		r.Get("/{id}", bookingHandler.GetBookingByID)
	})
}
