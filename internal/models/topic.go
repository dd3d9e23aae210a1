package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topic is a forum post filed under a category.
type Topic struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	Category  string             `bson:"category"`
	Author    string             `bson:"author,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}
