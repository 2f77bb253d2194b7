// internal/app/store/feedback/feedbackstore.go
package feedbackstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pulsehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the feedbacks collection name.
const Collection = "feedbacks"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var (
	errNoEmployee = errors.New("feedback employee_id is required")
	errBadRating  = errors.New("rating must be between 0 and 5")
)

// Create inserts a feedback record with a minted id. Content is sanitized
// at the store boundary; created_at defaults to now. Requests (category
// "request-*") start with a pending request status.
func (s *Store) Create(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	if f.EmployeeID == "" {
		return models.Feedback{}, errNoEmployee
	}
	if f.Rating < 0 || f.Rating > 5 {
		return models.Feedback{}, errBadRating
	}

	f.ID = primitive.NewObjectID()
	f.Content = htmlsanitize.Sanitize(f.Content)
	f.RequestDescription = htmlsanitize.Sanitize(f.RequestDescription)
	if f.IsRequest() && f.RequestStatus == "" {
		f.RequestStatus = models.FeedbackRequestPending
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

// GetByID loads one feedback record. Not-found is (nil, nil).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var f models.Feedback
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByEmployee returns the employee's feedback through the
// indexed-or-scan query policy.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]models.Feedback, error) {
	return livequery.FetchFiltered[models.Feedback](ctx, s.c, "employee_id", employeeID)
}

// ListAll returns every feedback record, empty slice when none.
func (s *Store) ListAll(ctx context.Context) ([]models.Feedback, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Feedback{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges partial fields (e.g. flipping a request to responded).
// Feedback carries no updated_at; the merge is blind.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes one feedback record. Idempotent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByEmployee clears an employee's entire feedback list and returns
// the number removed.
func (s *Store) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
