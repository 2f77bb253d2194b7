// internal/domain/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeMetrics holds the per-category scores shown on an employee's
// profile card. Values are percentages (0-100) derived from admin ratings
// by the scoring policy.
type EmployeeMetrics struct {
	Communication   int `bson:"communication" json:"communication"`
	TechnicalSkills int `bson:"technical_skills" json:"technical_skills"`
	Teamwork        int `bson:"teamwork" json:"teamwork"`
}

// Employee is a staff record. UserID links the record to a User by UID and
// may be empty for staff who have no login yet; relationships to goals,
// feedback, and metrics are denormalized string ids with no enforcement.
//
// PerformanceScore is 0-100 by convention only. A zero value renders as
// "N/A" in leaderboard output rather than a real score.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Position   string             `bson:"position" json:"position"`
	Department string             `bson:"department" json:"department"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL   string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`

	PerformanceScore int             `bson:"performance_score,omitempty" json:"performance_score,omitempty"`
	Metrics          EmployeeMetrics `bson:"metrics" json:"metrics"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
