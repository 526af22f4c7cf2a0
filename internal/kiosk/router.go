package kiosk

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-kiosk/internal/backend"
)

// Intent is a state mutation requested by a phase component. Components
// never write Session fields directly; they hand intents to the Router,
// which stays the sole transition authority.
type Intent interface {
	apply(s *Session)
}

// SetPhase switches the active phase. Transitions are unconditional -
// any component may request any phase.
type SetPhase struct {
	Next Phase
}

func (i SetPhase) apply(s *Session) {
	s.Phase = i.Next
}

// SetImage replaces the current photo. An empty Image clears it.
type SetImage struct {
	Image string
}

func (i SetImage) apply(s *Session) {
	s.Image = i.Image
}

// SetUser replaces the identified user profile.
type SetUser struct {
	User backend.UserProfile
}

func (i SetUser) apply(s *Session) {
	s.User = i.User
}

// Reset clears the whole session for the next customer: empty image,
// empty profile, back to the capture phase with a fresh session id.
type Reset struct{}

func (i Reset) apply(s *Session) {
	s.Image = ""
	s.User = backend.UserProfile{}
	s.Phase = PhaseCapture
	s.ID = uuid.New().String()
}

// Router owns the Session and applies intents emitted by phase
// components. It tracks a generation counter so that responses from
// calls issued against an older session state can be discarded instead
// of silently overwriting current state.
type Router struct {
	mu      sync.Mutex
	session Session
	gen     uint64
}

// NewRouter creates a Router in the initial capture phase with an empty
// session.
func NewRouter() *Router {
	return &Router{
		session: Session{
			ID:    uuid.New().String(),
			Phase: PhaseCapture,
		},
	}
}

// Session returns a copy of the current session state.
func (r *Router) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Generation returns the current session generation. Components record
// it before issuing a backend call and pass it back via ApplyAt.
func (r *Router) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Apply applies the given intents in order.
func (r *Router) Apply(intents ...Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applyLocked(intents)
}

// ApplyAt applies the given intents only if the session generation still
// matches gen. It reports whether the intents were applied; a false
// return means the session moved on while the caller was waiting and the
// response is stale.
func (r *Router) ApplyAt(gen uint64, intents ...Intent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.applyLocked(intents)
	return true
}

func (r *Router) applyLocked(intents []Intent) {
	for _, intent := range intents {
		intent.apply(&r.session)
		// Phase transitions invalidate outstanding requests.
		switch intent.(type) {
		case SetPhase, Reset:
			r.gen++
		}
	}
}
