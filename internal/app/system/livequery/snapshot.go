// internal/app/system/livequery/snapshot.go
package livequery

import (
	"context"
	"fmt"

	"github.com/dalemusser/pulsehub/internal/app/system/storeerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Snapshotter produces the full current set of records matching one
// equality filter. Implementations trade server-side work for
// availability: IndexedQuery needs a configured index on the filter field,
// FullScanFilter works everywhere at O(collection) cost per call.
type Snapshotter[T any] interface {
	Snapshot(ctx context.Context) ([]T, error)
}

// IndexedQuery filters on the server, hinted at the single-field index so
// a missing index surfaces as a structured error instead of a silent
// collection scan.
type IndexedQuery[T any] struct {
	Coll  *mongo.Collection
	Field string
	Value string
}

func (q *IndexedQuery[T]) Snapshot(ctx context.Context) ([]T, error) {
	cur, err := q.Coll.Find(ctx, bson.M{q.Field: q.Value},
		options.Find().SetHint(bson.D{{Key: q.Field, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("indexed query on %s.%s: %w", q.Coll.Name(), q.Field, err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FullScanFilter fetches the entire collection and filters client-side.
// Used when the filter field has no server-side index.
type FullScanFilter[T any] struct {
	Coll  *mongo.Collection
	Field string
	Value string
}

func (q *FullScanFilter[T]) Snapshot(ctx context.Context) ([]T, error) {
	cur, err := q.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("full scan on %s: %w", q.Coll.Name(), err)
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		if sv, ok := cur.Current.Lookup(q.Field).StringValueOK(); !ok || sv != q.Value {
			continue
		}
		var rec T
		if err := bson.Unmarshal(cur.Current, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}

// CollectionScan fetches every record in the collection. Whole-collection
// subscriptions (admin list views) use it as their only strategy; there
// is no filter, so there is nothing to index.
type CollectionScan[T any] struct {
	Coll *mongo.Collection
}

func (q *CollectionScan[T]) Snapshot(ctx context.Context) ([]T, error) {
	cur, err := q.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("collection scan on %s: %w", q.Coll.Name(), err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HasFieldIndex reports whether the collection carries an index whose
// leading key is the given field.
func HasFieldIndex(ctx context.Context, coll *mongo.Collection, field string) (bool, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx struct {
			Key bson.D `bson:"key"`
		}
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if len(idx.Key) > 0 && idx.Key[0].Key == field {
			return true, nil
		}
	}
	return false, cur.Err()
}

// NewSnapshotter probes the collection and picks the strategy: indexed
// when the filter field is indexed, full scan otherwise. A probe failure
// counts as "index unavailable" rather than an error so that a flaky
// listIndexes round trip cannot take down a subscription the fallback
// could serve.
func NewSnapshotter[T any](ctx context.Context, coll *mongo.Collection, field, value string) Snapshotter[T] {
	indexed, err := HasFieldIndex(ctx, coll, field)
	if err != nil {
		zap.L().Warn("index probe failed, using full-scan strategy",
			zap.String("collection", coll.Name()),
			zap.String("field", field),
			zap.Error(err))
		indexed = false
	}
	if indexed {
		return &IndexedQuery[T]{Coll: coll, Field: field, Value: value}
	}
	zap.L().Info("filter field not indexed, using full-scan strategy",
		zap.String("collection", coll.Name()),
		zap.String("field", field))
	return &FullScanFilter[T]{Coll: coll, Field: field, Value: value}
}

// FetchFiltered returns one snapshot of the records matching field ==
// value. The indexed path runs first; an index-configuration error demotes
// the call to the full-scan path exactly once. A fallback failure
// propagates — there is no further degradation tier.
func FetchFiltered[T any](ctx context.Context, coll *mongo.Collection, field, value string) ([]T, error) {
	primary := &IndexedQuery[T]{Coll: coll, Field: field, Value: value}
	recs, err := primary.Snapshot(ctx)
	if err == nil {
		return recs, nil
	}
	if storeerr.Classify(err) != storeerr.KindIndexNotConfigured {
		return nil, err
	}

	zap.L().Warn("indexed query rejected, falling back to full scan",
		zap.String("collection", coll.Name()),
		zap.String("field", field),
		zap.Error(err))

	fallback := &FullScanFilter[T]{Coll: coll, Field: field, Value: value}
	return fallback.Snapshot(ctx)
}
