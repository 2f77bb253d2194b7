// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pulsehub/internal/app/system/normalize"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicate is returned when a user with the same uid or email
	// already exists.
	ErrDuplicate = errors.New("a user with this uid or email already exists")
	errBadRole   = errors.New(`role must be "admin"|"employee"`)
	errNoUID     = errors.New("uid is required")
)

// Create inserts a new user after normalizing and validating fields.
// Missing timestamps default to now; Active defaults to true for new
// accounts with no explicit deactivation.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.UID == "" {
		return models.User{}, errNoUID
	}

	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.DisplayName = normalize.Name(u.DisplayName)

	switch u.Role {
	case models.RoleAdmin, models.RoleEmployee:
	case "":
		u.Role = models.RoleEmployee
	default:
		return models.User{}, errBadRole
	}

	// New accounts start active; deactivation is an explicit update.
	u.Active = true

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByUID loads a user by identity-provider uid. Not-found is (nil, nil).
func (s *Store) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"uid": uid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Not-found is (nil, nil).
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAdmins returns every user with the admin role. Feedback-request
// fan-out queries this fresh at event time.
func (s *Store) ListAdmins(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every user record. Empty collection yields an empty
// slice, never nil.
func (s *Store) ListAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges partial fields into the user identified by uid without
// touching unspecified fields, and refreshes updated_at. The merge is
// blind: updating a missing uid matches nothing and is not an error.
func (s *Store) Update(ctx context.Context, uid string, fields bson.M) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicate
	}
	return err
}

// TouchLastLogin stamps the account's last_login.
func (s *Store) TouchLastLogin(ctx context.Context, uid string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": bson.M{
		"last_login": now,
		"updated_at": now,
	}})
	return err
}
