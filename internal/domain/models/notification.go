// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifyFeedback = "feedback"
	NotifyGoal     = "goal"
	NotifyReview   = "review"
	NotifyRequest  = "request"
	NotifySystem   = "system"
)

// Notification targets exactly one user (by UID). Records are created as a
// side effect of domain events and never mutated afterwards except for the
// Read flag.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  string             `bson:"user_id" json:"user_id"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`
	Type    string             `bson:"type" json:"type"`
	Read    bool               `bson:"read" json:"read"`

	RelatedItemID   string `bson:"related_item_id,omitempty" json:"related_item_id,omitempty"`
	RelatedItemType string `bson:"related_item_type,omitempty" json:"related_item_type,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Key returns the stable identity used by live projections.
func (n Notification) Key() string { return n.ID.Hex() }
