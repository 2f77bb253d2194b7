// internal/app/system/provision/provision.go
package provision

import (
	"sync"
	"time"
)

// defaultLease bounds how long a provisioning claim blocks duplicates
// when the holder never releases it (crashed request, lost client).
const defaultLease = 30 * time.Second

/*
Guard serializes first-login provisioning per account. When a signed-in
user has no employee record yet, the handler creates one; without a
guard two concurrent requests for the same uid would both pass the
"missing" check and create duplicates. Acquire grants at most one
in-flight claim per uid; expired leases are reclaimable.
*/
type Guard struct {
	mu    sync.Mutex
	lease time.Duration
	held  map[string]time.Time // uid -> expiry
	now   func() time.Time
}

func NewGuard() *Guard {
	return &Guard{
		lease: defaultLease,
		held:  make(map[string]time.Time),
		now:   time.Now,
	}
}

// Acquire claims the provisioning slot for uid. It returns a release
// func and true on success, or nil and false when another request
// holds an unexpired claim.
func (g *Guard) Acquire(uid string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, exists := g.held[uid]; exists && now.Before(expiry) {
		return nil, false
	}
	g.held[uid] = now.Add(g.lease)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			delete(g.held, uid)
		})
	}, true
}

// Held reports whether uid currently has an unexpired claim.
func (g *Guard) Held(uid string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	expiry, exists := g.held[uid]
	return exists && g.now().Before(expiry)
}
