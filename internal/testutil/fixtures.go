package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test account with the given parameters.
func (f *Fixtures) CreateUser(ctx context.Context, displayName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		UID:         "uid-" + uuid.New().String()[:8],
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleAdmin)
}

// CreateEmployeeUser creates a test employee-role account.
func (f *Fixtures) CreateEmployeeUser(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleEmployee)
}

// CreateEmployee creates a test employee record, optionally linked to an
// account uid (pass "" for an unlinked record).
func (f *Fixtures) CreateEmployee(ctx context.Context, name, userID string) models.Employee {
	f.t.Helper()

	now := time.Now().UTC()
	emp := models.Employee{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		NameCI:    text.Fold(name),
		Position:  "Engineer",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("employees").InsertOne(ctx, emp)
	if err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}

	return emp
}

// CreateGoal creates a test goal for the given employee.
func (f *Fixtures) CreateGoal(ctx context.Context, employeeID, title, status string) models.Goal {
	f.t.Helper()

	now := time.Now().UTC()
	target := now.Add(30 * 24 * time.Hour)
	goal := models.Goal{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Title:      title,
		Status:     status,
		TargetDate: &target,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("goals").InsertOne(ctx, goal)
	if err != nil {
		f.t.Fatalf("failed to create test goal: %v", err)
	}

	return goal
}

// CreateFeedback creates a test feedback entry for the given employee.
func (f *Fixtures) CreateFeedback(ctx context.Context, employeeID, category, content string) models.Feedback {
	f.t.Helper()

	fb := models.Feedback{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Category:   category,
		Content:    content,
		Rating:     4,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := f.db.Collection("feedbacks").InsertOne(ctx, fb)
	if err != nil {
		f.t.Fatalf("failed to create test feedback: %v", err)
	}

	return fb
}

// CreateNotification creates a test notification addressed to the uid.
func (f *Fixtures) CreateNotification(ctx context.Context, userID, title string) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      models.NotifySystem,
		Title:     title,
		Message:   "Test notification message",
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("notifications").InsertOne(ctx, n)
	if err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}

	return n
}

// CreateMetric creates a test performance metric record.
func (f *Fixtures) CreateMetric(ctx context.Context, employeeID string, metric string, value int, date time.Time) models.PerformanceMetric {
	f.t.Helper()

	m := models.PerformanceMetric{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Metric:     metric,
		Value:      value,
		Date:       date,
	}

	_, err := f.db.Collection("performance_metrics").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to create test metric: %v", err)
	}

	return m
}
