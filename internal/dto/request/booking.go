package request

import (
	"encoding/json"
	"math"
	"strconv"
)

// CreateBookingRequest keeps quantity as a raw number so that fractional or
// non-numeric input is rejected rather than truncated.
type CreateBookingRequest struct {
	EventID  string      `json:"eventId" validate:"required,uuid"`
	Quantity json.Number `json:"quantity"`
}

// QuantityValue returns the quantity as an int, or false when it is missing,
// not a number, or not a whole number.
func (r CreateBookingRequest) QuantityValue() (int, bool) {
	if r.Quantity == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(r.Quantity.String(), 10, 32); err == nil {
		return int(n), true
	}

	// accept 2.0 but not 2.5
	f, err := r.Quantity.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
