// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/normalize"
	"github.com/dalemusser/pulsehub/internal/app/system/paging"
	"github.com/dalemusser/pulsehub/internal/app/system/search"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the employees collection name, shared with the live-query
// layer and index setup.
const Collection = "employees"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var errNoName = errors.New("employee name is required")

// Create inserts a new staff record. The store mints the id and defaults
// created_at/updated_at to now when absent, so the returned record equals
// the input plus id and timestamps.
func (s *Store) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	e.Name = normalize.Name(e.Name)
	if e.Name == "" {
		return models.Employee{}, errNoName
	}
	e.ID = primitive.NewObjectID()
	e.NameCI = text.Fold(e.Name)
	e.Email = normalize.Email(e.Email)

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

// GetByID loads an employee. Not-found is (nil, nil), never an error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var e models.Employee
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByUserID resolves the employee linked to an account uid. The lookup
// runs through the indexed-or-full-scan query policy, so a missing
// user_id index degrades to a collection scan instead of failing.
// Not-found is (nil, nil).
func (s *Store) GetByUserID(ctx context.Context, uid string) (*models.Employee, error) {
	matches, err := livequery.FetchFiltered[models.Employee](ctx, s.c, "user_id", uid)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// ListAll returns every employee, name order, empty slice when none.
func (s *Store) ListAll(ctx context.Context) ([]models.Employee, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRanked returns every employee ordered by performance score,
// highest first, with name order breaking ties. Backed by the score
// index.
func (s *Store) ListRanked(ctx context.Context) ([]models.Employee, error) {
	sort := bson.D{{Key: "performance_score", Value: -1}, {Key: "name_ci", Value: 1}}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPage returns one directory page. The query term, when present,
// must already be normalized by the caller (folded name or lowercased
// email) and is matched as an anchored prefix on sortField. The keyset
// window and sort come from cfg; callers fetch PageSize+1 rows and trim
// with paging.TrimPage.
func (s *Store) SearchPage(ctx context.Context, term, sortField string, cfg paging.KeysetConfig) ([]models.Employee, error) {
	conds := []bson.M{}
	if term != "" {
		conds = append(conds, bson.M{sortField: search.PrefixRegex(term)})
	}
	if window := cfg.KeysetWindow(sortField); window != nil {
		conds = append(conds, window)
	}

	filter := bson.M{}
	switch len(conds) {
	case 1:
		filter = conds[0]
	case 2:
		filter = bson.M{"$and": conds}
	}

	find := options.Find()
	cfg.ApplyToFind(find, sortField)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges partial fields and refreshes updated_at. Unspecified
// fields are untouched. Updating a missing id matches nothing; the blind
// merge semantics mean that is not an error.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	if name, ok := fields["name"].(string); ok {
		name = normalize.Name(name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes the record. Idempotent: deleting a non-existent id is
// not an error. Goals and feedback referencing the employee are left in
// place (no cascade).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
