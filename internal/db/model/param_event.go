package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ParamEventCollection = "param_events"

// ParamEventDocument journals an administrative parameter change or
// reward-pool movement for audit purposes.
type ParamEventDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	EventType string             `bson:"event_type"`
	OldValue  string             `bson:"old_value,omitempty"`
	NewValue  string             `bson:"new_value"`
	Actor     string             `bson:"actor"`
	Timestamp time.Time          `bson:"timestamp"`
}
