package model

import "time"

type Status string

const (
	// StatusConfirmed and StatusCancelled are the only stored statuses.
	// ACTIVE and COMPLETED are derived at read time from the stored status
	// and the clock; time passing never rewrites the stored field.
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	RoomID     string    `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	CheckIn    time.Time `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	Guests     int       `json:"guests" bson:"guests" validate:"required,min=1"`
	TotalPrice float64   `json:"total_price" bson:"total_price" validate:"required,gt=0"`
	Status     Status    `json:"status" bson:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
	Review     *Review   `json:"review,omitempty" bson:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`

	// EffectiveStatus is the presentation-time projection of Status against
	// the clock. Populated on reads, never persisted.
	EffectiveStatus Status `json:"effective_status,omitempty" bson:"-"`
}

type BookingInput struct {
	RoomID   string    `json:"room_id" validate:"required,mongodb"`
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
	Guests   int       `json:"guests" validate:"omitempty,min=1"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}
