// internal/app/store/metrics/metricstore.go
package metricstore

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

// Collection is the performance metrics collection name.
const Collection = "performance_metrics"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var errNoEmployee = errors.New("metric employee_id is required")

// Record appends a metric value. History is never overwritten: repeated
// records of the same metric coexist and readers resolve "latest wins" by
// Date.
func (s *Store) Record(ctx context.Context, m models.PerformanceMetric) (models.PerformanceMetric, error) {
	if m.EmployeeID == "" {
		return models.PerformanceMetric{}, errNoEmployee
	}
	m.ID = primitive.NewObjectID()
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.PerformanceMetric{}, err
	}
	return m, nil
}

// ListByEmployee returns the raw metric history through the
// indexed-or-scan query policy.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]models.PerformanceMetric, error) {
	return livequery.FetchFiltered[models.PerformanceMetric](ctx, s.c, "employee_id", employeeID)
}

// LatestByEmployee reduces the employee's history to the newest value per
// metric name.
func (s *Store) LatestByEmployee(ctx context.Context, employeeID string) (map[string]models.PerformanceMetric, error) {
	history, err := s.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return models.LatestMetrics(history), nil
}

// ListAll returns every metric record, empty slice when none.
func (s *Store) ListAll(ctx context.Context) ([]models.PerformanceMetric, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PerformanceMetric{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one metric record. Idempotent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByEmployee removes an employee's whole metric history. Employee
// deletion does not call this; history is only cleared explicitly.
func (s *Store) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
