package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the columns every table shares.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase returns a Base with a fresh random id, created and updated at now (in UTC).
func NewBase(now time.Time) Base {
	now = now.UTC()
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch moves UpdatedAt to now.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}
