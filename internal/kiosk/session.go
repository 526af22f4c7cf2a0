package kiosk

import "github.com/kozaktomas/face-kiosk/internal/backend"

// Phase is the top-level mode of the kiosk application. Exactly one phase
// is active at any time and it determines which component drives the UI.
type Phase int

const (
	PhaseCapture Phase = iota
	PhaseRegistration
	PhaseDashboard
)

func (p Phase) String() string {
	switch p {
	case PhaseCapture:
		return "capture"
	case PhaseRegistration:
		return "registration"
	case PhaseDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Session is the shared state owned by the Router and spanning phase
// transitions. Image holds the current photo as a PNG data URL, empty
// when nothing has been captured. User is the zero value until a face
// has been identified or registered.
type Session struct {
	ID    string
	Image string
	User  backend.UserProfile
	Phase Phase
}
