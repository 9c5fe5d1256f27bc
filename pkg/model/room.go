package model

import "time"

const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeSuite  = "Suite"
)

type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment" validate:"required,min=1,max=2000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type Room struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Number        int       `json:"number" bson:"number" validate:"required,min=1"`
	Type          string    `json:"type" bson:"type" validate:"required,oneof=Single Double Suite"`
	PricePerNight float64   `json:"price_per_night" bson:"price_per_night" validate:"required,gt=0"`
	Amenities     []string  `json:"amenities" bson:"amenities" validate:"omitempty,dive,min=1,max=100"`
	Images        []string  `json:"images" bson:"images" validate:"omitempty,dive,url"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	Reviews       []Review  `json:"reviews,omitempty" bson:"reviews"`
	AverageRating float64   `json:"average_rating" bson:"average_rating"`
	TotalReviews  int       `json:"total_reviews" bson:"total_reviews"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type RoomUpdate struct {
	Type          string    `json:"type,omitempty" validate:"omitempty,oneof=Single Double Suite"`
	PricePerNight *float64  `json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	Amenities     *[]string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Images        *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsActive      *bool     `json:"is_active,omitempty"`
}

// RecomputeAggregates rederives the rating summary from the full review list.
// The derived fields are never patched incrementally, so they cannot drift
// from the list they summarize.
func (r *Room) RecomputeAggregates() {
	r.TotalReviews = len(r.Reviews)
	if r.TotalReviews == 0 {
		r.AverageRating = 0
		return
	}
	sum := 0
	for _, review := range r.Reviews {
		sum += review.Rating
	}
	r.AverageRating = float64(sum) / float64(r.TotalReviews)
}
