package entity

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// InitialBookingStatus is the status every new booking gets. There is no
// payment confirmation step, so bookings are confirmed on creation.
const InitialBookingStatus = BookingStatusConfirmed

// ParseBookingStatus accepts only the three known statuses, exactly as spelled.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

type Booking struct {
	Base
	UserID     uuid.UUID     `db:"user_id"`
	EventID    uuid.UUID     `db:"event_id"`
	Quantity   int           `db:"quantity"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}

// BookingDetail is a booking joined with its event and owner. Event is nil
// when the event has been deleted since the booking was made.
type BookingDetail struct {
	Booking
	Event     *Event
	UserName  string
	UserEmail string
}

// TotalPrice computes unit price times quantity, rounded to cents.
func TotalPrice(unitPrice float64, quantity int) float64 {
	return RoundCents(unitPrice * float64(quantity))
}
