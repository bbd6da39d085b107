package request

// EventRequest is the body of POST /api/events. Price is a pointer so that a
// free event (price 0) is distinguishable from a missing price.
type EventRequest struct {
	Name  string   `json:"name" validate:"required,max=200"`
	Venue string   `json:"venue" validate:"required,max=200"`
	Date  string   `json:"date" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0,lte=9999999999.99"`
}

type EventUpdateRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Venue *string  `json:"venue,omitempty" validate:"omitempty,min=1,max=200"`
	Date  *string  `json:"date,omitempty" validate:"omitempty,min=1"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lte=9999999999.99"`
}
