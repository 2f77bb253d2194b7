// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast. The single-field indexes here are exactly the ones the live-query
layer probes for; a missing one does not break queries (the full-scan
strategy covers it) but costs O(collection) per snapshot.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEmployees(ctx, db); err != nil {
		problems = append(problems, "employees: "+err.Error())
	}
	if err := ensureGoals(ctx, db); err != nil {
		problems = append(problems, "goals: "+err.Error())
	}
	if err := ensureFeedbacks(ctx, db); err != nil {
		problems = append(problems, "feedbacks: "+err.Error())
	}
	if err := ensureMetrics(ctx, db); err != nil {
		problems = append(problems, "performance_metrics: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// ensureIndexSet reconciles the desired indexes for one collection:
// reuse an existing index with the same key pattern, create the rest.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		if m.Options != nil && m.Options.Name != nil {
			desiredName = *m.Options.Name
		}
		desiredSig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[desiredSig]; ok {
			zap.L().Info("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", desiredSig))
			continue
		}

		start := time.Now()
		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("created_name", created),
			zap.String("keys", desiredSig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Identity-provider key; one account per uid.
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_uid"),
		},
		// Email must be unique across all users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Admin fan-out queries users by role at event time.
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
	})
}

func ensureEmployees(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("employees")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Account linkage lookup (profile resolution).
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_employees_user"),
		},
		// Leaderboard order.
		{
			Keys:    bson.D{{Key: "performance_score", Value: -1}},
			Options: options.Index().SetName("idx_employees_score"),
		},
		// Name prefix search + stable list order.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_employees_nameci__id"),
		},
		// Directory email pivot.
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_employees_email__id"),
		},
	})
}

func ensureGoals(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("goals")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_goals_employee"),
		},
		// Overdue sweep scans open goals by target date.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "target_date", Value: 1}},
			Options: options.Index().SetName("idx_goals_status_target"),
		},
	})
}

func ensureFeedbacks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("feedbacks")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_feedbacks_employee"),
		},
	})
}

func ensureMetrics(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("performance_metrics")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_metrics_employee"),
		},
		// Latest-wins reads per employee resolve by date.
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_metrics_employee_date"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notifications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_notifications_user"),
		},
		// Unread-badge counting.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("idx_notifications_user_read"),
		},
	})
}
