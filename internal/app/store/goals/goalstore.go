// internal/app/store/goals/goalstore.go
package goalstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the goals collection name.
const Collection = "goals"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var (
	errNoEmployee = errors.New("goal employee_id is required")
	errBadStatus  = errors.New(`status must be "pending"|"in-progress"|"completed"|"overdue"`)
)

func validStatus(s string) bool {
	switch s {
	case models.GoalPending, models.GoalInProgress, models.GoalCompleted, models.GoalOverdue:
		return true
	}
	return false
}

// Create inserts a new goal with a minted id. Status defaults to pending;
// timestamps default to now when absent.
func (s *Store) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if g.EmployeeID == "" {
		return models.Goal{}, errNoEmployee
	}
	if g.Status == "" {
		g.Status = models.GoalPending
	}
	if !validStatus(g.Status) {
		return models.Goal{}, errBadStatus
	}

	g.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// GetByID loads one goal. Not-found is (nil, nil).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var g models.Goal
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByEmployee returns the employee's goals through the indexed-or-scan
// query policy.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]models.Goal, error) {
	return livequery.FetchFiltered[models.Goal](ctx, s.c, "employee_id", employeeID)
}

// ListAll returns every goal, empty slice when none.
func (s *Store) ListAll(ctx context.Context) ([]models.Goal, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Goal{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges partial fields and refreshes updated_at.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if st, ok := fields["status"].(string); ok && !validStatus(st) {
		return errBadStatus
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetStatus is the status-transition path used by "mark complete".
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.Update(ctx, id, bson.M{"status": status})
}

// Delete removes a goal. Idempotent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByEmployee removes every goal of one employee. Employee
// deletion does not call this; records are only cleared explicitly.
func (s *Store) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MarkOverdue flips open goals whose target date has passed to overdue.
// Returns the number of goals transitioned. Used by the background sweep.
func (s *Store) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"status":      bson.M{"$in": bson.A{models.GoalPending, models.GoalInProgress}},
			"target_date": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{"status": models.GoalOverdue, "updated_at": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
