package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role" validate:"required,oneof=USER ADMIN"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
