package model

import "time"

type ContactMessage struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Message   string    `json:"message" bson:"message" validate:"required,min=1,max=5000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
