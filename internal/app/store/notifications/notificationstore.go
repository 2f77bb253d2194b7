// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the notifications collection name.
const Collection = "notifications"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var errNoUser = errors.New("notification user_id is required")

// Create inserts a notification with a minted id. Records are immutable
// after creation except for the read flag.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.UserID == "" {
		return models.Notification{}, errNoUser
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListByUser returns a user's notifications, newest first, through the
// indexed-or-scan query policy.
func (s *Store) ListByUser(ctx context.Context, uid string) ([]models.Notification, error) {
	out, err := livequery.FetchFiltered[models.Notification](ctx, s.c, "user_id", uid)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders notifications by creation time, newest first.
// Exported so the live-subscription path can apply the same order to
// snapshots it delivers.
func SortNewestFirst(ns []models.Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].CreatedAt.After(ns[j].CreatedAt)
	})
}

// MarkRead flips one notification's read flag, scoped to its owner so
// a user cannot touch someone else's notification. Marking a missing
// id matches nothing and is not an error.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID, uid string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": uid},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

// MarkAllRead flips every unread notification of a user and returns the
// number changed.
func (s *Store) MarkAllRead(ctx context.Context, uid string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": uid, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes one notification. Idempotent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
