package domain

import "time"

// Journal is a single entry owned by exactly one user. OwnerID never changes
// after creation.
type Journal struct {
	ID        int64     `json:"id" bson:"_id"`
	OwnerID   int64     `json:"owner_id" bson:"owner_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
