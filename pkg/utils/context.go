package utils

import (
	"context"

	"event-booking/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to a request by the auth middleware.
type Identity struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (i Identity) IsAdmin() bool {
	return i.Role == entity.RoleAdmin
}

func SetIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok || identity.UserID == uuid.Nil {
		return Identity{}, false
	}
	return identity, true
}
