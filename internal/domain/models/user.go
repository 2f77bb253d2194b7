// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an account known to the identity provider. The UID field is the
// identity provider's key for the account and is how the rest of the system
// addresses a person (notifications, employee linkage); the Mongo ObjectID
// is only the storage key.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID          string             `bson:"uid" json:"uid"`
	Email        string             `bson:"email" json:"email"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Role         string             `bson:"role" json:"role"` // admin | employee
	Active       bool               `bson:"active" json:"active"`
	PhotoURL     string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`

	LastLogin *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
