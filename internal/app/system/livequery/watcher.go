// internal/app/system/livequery/watcher.go
package livequery

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Watcher emits an event whenever any record in a collection changes. The
// event carries no payload: subscribers re-query their full matching set
// on every event (snapshot delivery, not diffs).
type Watcher interface {
	Watch(ctx context.Context, collection string) (<-chan struct{}, error)
}

// ChangeStreamWatcher drives MongoDB change streams, one per Watch call.
// The channel closes when the stream ends or the context is canceled.
type ChangeStreamWatcher struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewChangeStreamWatcher returns a Watcher over the given database.
func NewChangeStreamWatcher(db *mongo.Database, logger *zap.Logger) *ChangeStreamWatcher {
	return &ChangeStreamWatcher{DB: db, Log: logger}
}

func (w *ChangeStreamWatcher) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	stream, err := w.DB.Collection(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer func() {
			closeCtx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := stream.Close(closeCtx); err != nil {
				w.Log.Warn("change stream close failed",
					zap.String("collection", collection), zap.Error(err))
			}
		}()

		for stream.Next(ctx) {
			// Coalesce bursts: a pending event already forces a re-query.
			select {
			case events <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			w.Log.Error("change stream ended",
				zap.String("collection", collection), zap.Error(err))
		}
	}()

	return events, nil
}
