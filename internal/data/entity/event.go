package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	Name      string    `db:"name"`
	Venue     string    `db:"venue"`
	Date      time.Time `db:"date"`
	Price     float64   `db:"price"`
	CreatedBy uuid.UUID `db:"created_by"`
}
