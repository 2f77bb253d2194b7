// internal/app/system/livequery/hub.go
package livequery

import (
	"context"
	"sync"

	"github.com/dalemusser/pulsehub/internal/app/system/storeerr"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Hub owns the live subscriptions of this process. Every subscription
// pairs an equality filter with a consumer callback; the hub re-delivers
// the full current matching set whenever the underlying collection
// changes. Delivery order across subscriptions is unspecified.
type Hub struct {
	db      *mongo.Database
	watcher Watcher
	log     *zap.Logger

	mu   sync.Mutex
	subs map[string]string // id -> collection, for teardown accounting
}

// NewHub creates a Hub backed by the given watcher. Production wiring
// passes a ChangeStreamWatcher; tests pass a fake.
func NewHub(db *mongo.Database, watcher Watcher, logger *zap.Logger) *Hub {
	return &Hub{
		db:      db,
		watcher: watcher,
		log:     logger,
		subs:    make(map[string]string),
	}
}

// Subscription is the handle returned by Subscribe. Unsubscribe is safe to
// call more than once; the owner must call it when the owning context is
// torn down or the listener leaks for the life of the process.
type Subscription struct {
	id     string
	cancel context.CancelFunc
	once   sync.Once
	remove func()
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() string { return s.id }

// Unsubscribe stops delivery and releases the underlying watch. Idempotent.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		s.remove()
	})
}

func (h *Hub) register(id, collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[id] = collection
	h.log.Info("live query subscribed",
		zap.String("subscription", id),
		zap.String("collection", collection),
		zap.Int("active", len(h.subs)))
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if coll, ok := h.subs[id]; ok {
		delete(h.subs, id)
		h.log.Info("live query unsubscribed",
			zap.String("subscription", id),
			zap.String("collection", coll),
			zap.Int("active", len(h.subs)))
	}
}

// Active returns the number of live subscriptions.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Subscribe delivers the full current set of records in collection whose
// Field equals value — immediately, and again after every collection
// change. The primary strategy is chosen by a capability probe; an
// index-configuration error demotes the subscription to the full-scan
// strategy at most once for its lifetime. fn is invoked sequentially from
// a single goroutine; a later snapshot always supersedes an earlier one.
// SubscribeAll is Subscribe without a filter: fn receives the entire
// collection on every change. There is no strategy selection since an
// unfiltered fetch cannot benefit from an index.
func SubscribeAll[T any](ctx context.Context, h *Hub, collection string, fn func([]T)) (*Subscription, error) {
	coll := h.db.Collection(collection)

	subCtx, cancel := context.WithCancel(ctx)

	events, err := h.watcher.Watch(subCtx, collection)
	if err != nil {
		cancel()
		return nil, err
	}

	snap := &CollectionScan[T]{Coll: coll}

	initial, err := snap.Snapshot(subCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{id: uuid.NewString(), cancel: cancel}
	sub.remove = func() { h.unregister(sub.id) }
	h.register(sub.id, collection)

	go func() {
		fn(initial)
		for range events {
			recs, err := snap.Snapshot(subCtx)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				h.log.Error("live query snapshot failed",
					zap.String("subscription", sub.id),
					zap.String("collection", collection),
					zap.Error(err))
				continue
			}
			fn(recs)
		}
	}()

	return sub, nil
}

func Subscribe[T any](ctx context.Context, h *Hub, collection, field, value string, fn func([]T)) (*Subscription, error) {
	coll := h.db.Collection(collection)

	subCtx, cancel := context.WithCancel(ctx)

	events, err := h.watcher.Watch(subCtx, collection)
	if err != nil {
		cancel()
		return nil, err
	}

	snap := NewSnapshotter[T](subCtx, coll, field, value)
	fellBack := false
	if _, isFullScan := snap.(*FullScanFilter[T]); isFullScan {
		fellBack = true
	}

	takeSnapshot := func() ([]T, error) {
		recs, err := snap.Snapshot(subCtx)
		if err == nil {
			return recs, nil
		}
		if fellBack || storeerr.Classify(err) != storeerr.KindIndexNotConfigured {
			return nil, err
		}
		h.log.Warn("live query primary strategy rejected, falling back to full scan",
			zap.String("collection", collection),
			zap.String("field", field),
			zap.Error(err))
		fellBack = true
		snap = &FullScanFilter[T]{Coll: coll, Field: field, Value: value}
		return snap.Snapshot(subCtx)
	}

	initial, err := takeSnapshot()
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{id: uuid.NewString(), cancel: cancel}
	sub.remove = func() { h.unregister(sub.id) }
	h.register(sub.id, collection)

	go func() {
		fn(initial)
		for range events {
			recs, err := takeSnapshot()
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				h.log.Error("live query snapshot failed",
					zap.String("subscription", sub.id),
					zap.String("collection", collection),
					zap.Error(err))
				continue
			}
			fn(recs)
		}
	}()

	return sub, nil
}
