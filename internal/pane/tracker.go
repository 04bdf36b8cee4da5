package pane

import (
	"sync"
	"time"

	"tabmux/internal/layout"
)

// Tracker maps pane IDs to live sessions. It lives on the app model so
// sessions survive tab switches; the layout trees only hold IDs.
type Tracker struct {
	mu       sync.Mutex
	sessions map[layout.PaneID]*Session
	started  map[layout.PaneID]time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[layout.PaneID]*Session),
		started:  make(map[layout.PaneID]time.Time),
	}
}

// Add registers a session under its pane ID, replacing any previous
// entry for that ID.
func (t *Tracker) Add(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[s.ID] = s
	t.started[s.ID] = time.Now()
}

// Get returns the session for id, or nil.
func (t *Tracker) Get(id layout.PaneID) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[id]
}

// Remove closes and forgets the session for id. Unknown IDs are ignored.
func (t *Tracker) Remove(id layout.PaneID) {
	t.mu.Lock()
	s := t.sessions[id]
	delete(t.sessions, id)
	delete(t.started, id)
	t.mu.Unlock()
	if s != nil {
		_ = s.Close()
	}
}

// Len returns the number of tracked sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Prune closes and drops sessions whose shell has exited, returning
// their IDs so the caller can close the matching layout slots. Closing
// releases the PTY file even though the shell is already gone.
func (t *Tracker) Prune() []layout.PaneID {
	t.mu.Lock()
	var dead []layout.PaneID
	var sessions []*Session
	for id, s := range t.sessions {
		if s.Exited() {
			dead = append(dead, id)
			sessions = append(sessions, s)
			delete(t.sessions, id)
			delete(t.started, id)
		}
	}
	t.mu.Unlock()
	for _, s := range sessions {
		_ = s.Close()
	}
	return dead
}

// Uptime returns how long the session for id has been running, or zero
// for unknown IDs.
func (t *Tracker) Uptime(id layout.PaneID) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.started[id]
	if !ok {
		return 0
	}
	return time.Since(at)
}

// CloseAll tears down every session, for app shutdown.
func (t *Tracker) CloseAll() {
	t.mu.Lock()
	sessions := make([]*Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		sessions = append(sessions, s)
	}
	t.sessions = make(map[layout.PaneID]*Session)
	t.started = make(map[layout.PaneID]time.Time)
	t.mu.Unlock()
	for _, s := range sessions {
		_ = s.Close()
	}
}
