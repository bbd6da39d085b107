package entity

import "math"

// MaxAmount is the largest price or total a NUMERIC(12,2) column can hold.
const MaxAmount = 9999999999.99

// MaxQuantity caps the tickets in a single booking.
const MaxQuantity = 10000

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
