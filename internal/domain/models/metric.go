// internal/domain/models/metric.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerformanceMetric is one recorded value for a named metric of an
// employee. Recording never overwrites: multiple records for the same
// metric name coexist and consumers pick the one with the latest Date
// ("latest wins").
type PerformanceMetric struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	Metric     string             `bson:"metric" json:"metric"`
	Value      int                `bson:"value" json:"value"`
	Date       time.Time          `bson:"date" json:"date"`
}

// LatestMetrics reduces a metric history to the latest value per metric
// name. Records with equal dates keep the later element of the input.
func LatestMetrics(history []PerformanceMetric) map[string]PerformanceMetric {
	latest := make(map[string]PerformanceMetric, len(history))
	for _, m := range history {
		cur, ok := latest[m.Metric]
		if !ok || !m.Date.Before(cur.Date) {
			latest[m.Metric] = m
		}
	}
	return latest
}
