package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/launchdash/dashboard"
)

// sessionStore maps browser session IDs to dashboard sessions.
// Entries unused for longer than idle are evicted by sweep.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idle     time.Duration
	factory  func() *dashboard.Session
	now      func() time.Time
	onCount  func(n int)
}

type sessionEntry struct {
	session  *dashboard.Session
	lastSeen time.Time
}

func newSessionStore(idle time.Duration, factory func() *dashboard.Session) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*sessionEntry),
		idle:     idle,
		factory:  factory,
		now:      time.Now,
		onCount:  func(int) {},
	}
}

// get returns the session for id and refreshes its idle timer.
func (st *sessionStore) get(id string) (*dashboard.Session, bool) {
	if id == "" {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = st.now()
	return e.session, true
}

// create starts a new session with default controls.
func (st *sessionStore) create() (string, *dashboard.Session) {
	id := uuid.New().String()
	s := st.factory()

	st.mu.Lock()
	st.sessions[id] = &sessionEntry{session: s, lastSeen: st.now()}
	n := len(st.sessions)
	st.mu.Unlock()

	st.onCount(n)
	return id, s
}

// sweep removes idle sessions and returns how many were dropped.
func (st *sessionStore) sweep() int {
	st.mu.Lock()
	cutoff := st.now().Add(-st.idle)
	dropped := 0
	for id, e := range st.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			dropped++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if dropped > 0 {
		st.onCount(n)
	}
	return dropped
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// run sweeps periodically until ctx is done.
func (st *sessionStore) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.sweep()
		}
	}
}
