package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginEvent is an append-only audit record written on every login.
type LoginEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	IP        string             `bson:"ip" json:"ip"`
}
