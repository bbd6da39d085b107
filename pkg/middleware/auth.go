package middleware

import (
	"errors"
	"net/http"
	"strings"

	"event-booking/internal/apperror"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/pkg/token"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token and attaches the caller's identity to the request.
// The role comes from the stored user, so a demoted admin loses access before the token expires.
func Authenticate(tokens *token.Service, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, apperror.Unauthenticated("Missing authorization token"))
				return
			}

			scheme, raw, found := strings.Cut(strings.TrimSpace(authHeader), " ")
			raw = strings.TrimSpace(raw)
			if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				writeError(w, apperror.Unauthenticated("Invalid token format. Use: Bearer <token>"))
				return
			}

			// 2. Verify signature and expiry
			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					logger.Warn("Expired token", zap.String("path", r.URL.Path))
					writeError(w, apperror.Unauthenticated("Token has expired"))
					return
				}
				logger.Warn("Invalid token", zap.Error(err), zap.String("path", r.URL.Path))
				writeError(w, apperror.Unauthenticated("Invalid token"))
				return
			}

			// 3. Resolve the user behind the token
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err),
					zap.String("user_id", claims.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token for unknown user", zap.String("user_id", claims.UserID.String()))
				writeError(w, apperror.Unauthenticated("User no longer exists"))
				return
			}

			ctx := utils.SetIdentity(r.Context(), utils.Identity{
				UserID: user.ID,
				Role:   user.Role(),
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role does not satisfy role. It must run after Authenticate.
func RequireRole(role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				writeError(w, apperror.Unauthenticated("Authentication required"))
				return
			}

			if !identity.Role.Satisfies(role) {
				logger.Warn("Access denied",
					zap.String("user_id", identity.UserID.String()),
					zap.String("role", string(identity.Role)),
					zap.String("required", string(role)),
					zap.String("path", r.URL.Path))
				writeError(w, apperror.Forbidden("Admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin - middleware cek role admin
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, logger)
}

// writeError answers with the status of err's kind.
func writeError(w http.ResponseWriter, err *apperror.Error) {
	utils.ResponseError(w, err.Kind.HTTPStatus(), err.Message, nil)
}
