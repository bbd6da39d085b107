package wire

import (
	"net/http"

	"event-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authenticate func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticate).Get("/auth/profile", authHandler.Profile)
}
