package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vessel represents a fishing vessel owned by a user.
type Vessel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"` // "trawler", "longliner", "gillnetter", "purse_seiner"
	HomePort  string             `bson:"home_port,omitempty" json:"home_port,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
