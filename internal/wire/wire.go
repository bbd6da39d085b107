// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"event-booking/internal/adaptor"
	"event-booking/internal/data/repository"
	"event-booking/internal/usecase"
	"event-booking/pkg/middleware"
	"event-booking/pkg/token"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := token.NewService(
		config.JWT.Secret,
		config.JWT.Issuer,
		time.Duration(config.JWT.ExpiryHours)*time.Hour,
	)

	return WiringWithTokens(repo, tokens, config, logger)
}

// WiringWithTokens is Wiring with a caller-supplied token service.
func WiringWithTokens(repo *repository.Repository, tokens *token.Service, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, tokens, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	authenticate := middleware.Authenticate(tokens, repo.User, logger)

	// Apply routes
	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, authenticate)
		wireEvent(r, handler.Event, authenticate, logger)
		wireBooking(r, handler.Booking, authenticate, logger)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
