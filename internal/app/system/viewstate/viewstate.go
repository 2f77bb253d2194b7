// internal/app/system/viewstate/viewstate.go
package viewstate

import (
	"sort"
	"sync"
)

// Keyed is anything a List can index. Records are keyed by their
// string identity, typically the hex form of the database id.
type Keyed interface {
	Key() string
}

/*
List holds a client-visible projection of a collection subset. Two
kinds of writes touch it:

  - ApplySnapshot replaces the whole projection with the latest
    authoritative set from a subscription. Snapshots always win over
    any local edit still in flight.

  - Remove, RemoveAll and Set apply an optimistic local mutation and
    return an undo closure. The caller runs the real store operation
    and, if it fails, invokes the closure to restore the previous
    state. An undo after a newer snapshot has arrived is a no-op.

All methods are safe for concurrent use.
*/
type List[T Keyed] struct {
	mu    sync.RWMutex
	items []T
	gen   uint64 // bumped by every mutation; undo closures check it
}

func NewList[T Keyed]() *List[T] {
	return &List[T]{}
}

// Items returns a copy of the current projection.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the current projection size.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get looks up one record by key.
func (l *List[T]) Get(key string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, it := range l.items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// ApplySnapshot replaces the projection with the given authoritative
// set. Pending undo closures minted before this call become no-ops.
func (l *List[T]) ApplySnapshot(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = cp
	l.gen++
}

// Remove drops one record optimistically and returns an undo that
// restores it at its original position.
func (l *List[T]) Remove(key string) (undo func(), removed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, it := range l.items {
		if it.Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return func() {}, false
	}

	prev := l.items[idx]
	l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
	l.gen++
	return l.undoAt(l.gen, func() {
		at := idx
		if at > len(l.items) {
			at = len(l.items)
		}
		l.items = append(l.items[:at], append([]T{prev}, l.items[at:]...)...)
	}), true
}

// RemoveAll clears the projection optimistically and returns an undo
// that restores the full previous contents.
func (l *List[T]) RemoveAll() (undo func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.items
	l.items = nil
	l.gen++
	return l.undoAt(l.gen, func() {
		l.items = prev
	})
}

// Set inserts or replaces one record optimistically and returns an
// undo that restores the prior state for that key.
func (l *List[T]) Set(item T) (undo func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := item.Key()
	for i, it := range l.items {
		if it.Key() == key {
			prev := l.items[i]
			l.items[i] = item
			l.gen++
			return l.undoAt(l.gen, func() {
				for j, cur := range l.items {
					if cur.Key() == key {
						l.items[j] = prev
						return
					}
				}
			})
		}
	}

	l.items = append(l.items, item)
	l.gen++
	return l.undoAt(l.gen, func() {
		for j, cur := range l.items {
			if cur.Key() == key {
				l.items = append(l.items[:j:j], l.items[j+1:]...)
				return
			}
		}
	})
}

// SortBy reorders the projection in place with a stable sort.
func (l *List[T]) SortBy(less func(a, b T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sort.SliceStable(l.items, func(i, j int) bool {
		return less(l.items[i], l.items[j])
	})
}

// undoAt wraps restore so it only fires while the list is still at the
// generation the mutation produced. A later snapshot or mutation makes
// the undo obsolete; rolling back then would resurrect stale data.
func (l *List[T]) undoAt(gen uint64, restore func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.gen != gen {
				return
			}
			restore()
			l.gen++
		})
	}
}
