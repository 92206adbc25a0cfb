package httpform

import (
	"sync"
	"time"

	"github.com/goliatone/go-paramedit/pkg/store"
)

// Session table defaults. A session idle for longer than the TTL is dropped;
// when the table is full the least recently used session is evicted.
const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = 30 * time.Minute
)

// WithMaxSessions caps the number of live sessions. Non-positive values keep
// the default.
func WithMaxSessions(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.sessions.max = n
		}
	}
}

// WithSessionTTL sets how long an idle session is kept. Zero or negative
// disables expiry; the size cap still applies.
func WithSessionTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.sessions.ttl = ttl
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.sessions.now = now
		}
	}
}

// entry serialises access to one session; store.Session itself is not safe
// for concurrent use.
type entry struct {
	mu      sync.Mutex
	session *store.Session

	lastSeen time.Time // guarded by sessionTable.mu
}

type sessionTable struct {
	mu      sync.Mutex
	entries map[string]*entry
	max     int
	ttl     time.Duration
	now     func() time.Time
}

func newSessionTable() *sessionTable {
	return &sessionTable{
		entries: make(map[string]*entry),
		max:     DefaultMaxSessions,
		ttl:     DefaultSessionTTL,
		now:     time.Now,
	}
}

// add registers session under id and returns the ids dropped to make room.
func (t *sessionTable) add(id string, session *store.Session) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var dropped []string
	for key, e := range t.entries {
		if t.expired(e, now) {
			delete(t.entries, key)
			dropped = append(dropped, key)
		}
	}
	for len(t.entries) >= t.max {
		oldest := ""
		var oldestSeen time.Time
		for key, e := range t.entries {
			if oldest == "" || e.lastSeen.Before(oldestSeen) {
				oldest, oldestSeen = key, e.lastSeen
			}
		}
		delete(t.entries, oldest)
		dropped = append(dropped, oldest)
	}
	t.entries[id] = &entry{session: session, lastSeen: now}
	return dropped
}

// get returns the live entry for id and marks it as used.
func (t *sessionTable) get(id string) (*entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	now := t.now()
	if t.expired(e, now) {
		delete(t.entries, id)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

func (t *sessionTable) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	delete(t.entries, id)
	return ok
}

func (t *sessionTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *sessionTable) expired(e *entry, now time.Time) bool {
	return t.ttl > 0 && now.Sub(e.lastSeen) > t.ttl
}
