package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notification kinds. Notifications are created only as side effects
// of these three actions.
const (
	NotificationTypeFollow  = "follow"
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification represents a single notification record.
type Notification struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	From      bson.ObjectID `bson:"from" json:"from"`
	To        bson.ObjectID `bson:"to" json:"to"`
	Type      string        `bson:"type" json:"type"`
	Read      bool          `bson:"read" json:"read"`
	CreatedAt time.Time     `bson:"createdAt" json:"created_at"`

	// Actor is the resolved sender summary, joined at read time.
	Actor *UserSummary `bson:"-" json:"actor,omitempty"`
}
