package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry owns every live POS session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Get returns the session with id and marks it active.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok {
		s.Touch()
	}
	return s, ok
}

// Create starts a new session with a fresh id.
func (r *Registry) Create() *Session {
	s := newSession(uuid.New(), r.now)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// GetOrCreate resolves id, creating a new session when it is unknown.
func (r *Registry) GetOrCreate(id uuid.UUID) (*Session, bool) {
	if id != uuid.Nil {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SweepIdle evicts sessions inactive for longer than maxIdle. Sessions in
// the middle of a checkout are kept. It returns the number evicted.
func (r *Registry) SweepIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if s.State() == CheckoutProcessing {
			continue
		}
		if s.LastActivity().Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
