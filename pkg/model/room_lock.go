package model

import "time"

// RoomLock is an advisory lock serializing booking admission per room.
// Its _id is derived from the room id, so a unique-key violation on insert
// means another request is currently deciding an admission for the same room.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
