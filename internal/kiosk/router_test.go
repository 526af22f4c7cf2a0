package kiosk

import (
	"testing"

	"github.com/kozaktomas/face-kiosk/internal/backend"
)

func TestNewRouter_InitialState(t *testing.T) {
	router := NewRouter()

	sess := router.Session()
	if sess.Phase != PhaseCapture {
		t.Errorf("expected initial phase capture, got %v", sess.Phase)
	}
	if sess.Image != "" {
		t.Errorf("expected empty image, got '%s'", sess.Image)
	}
	if sess.User.Name != "" || sess.User.Phone != "" || sess.User.Email != "" {
		t.Errorf("expected empty profile, got %+v", sess.User)
	}
	if sess.ID == "" {
		t.Error("expected a session id")
	}
}

func TestApply_IntentsInOrder(t *testing.T) {
	router := NewRouter()
	user := backend.UserProfile{Name: "Alice", Phone: "555", Email: "a@x.com"}

	router.Apply(
		SetImage{Image: "roi"},
		SetUser{User: user},
		SetPhase{Next: PhaseDashboard},
	)

	sess := router.Session()
	if sess.Image != "roi" {
		t.Errorf("expected image 'roi', got '%s'", sess.Image)
	}
	if sess.User.Name != "Alice" {
		t.Errorf("expected user Alice, got '%s'", sess.User.Name)
	}
	if sess.Phase != PhaseDashboard {
		t.Errorf("expected phase dashboard, got %v", sess.Phase)
	}
}

func TestApply_PhaseChangeBumpsGeneration(t *testing.T) {
	router := NewRouter()
	before := router.Generation()

	router.Apply(SetImage{Image: "img"})
	if router.Generation() != before {
		t.Error("expected image update to keep the generation")
	}

	router.Apply(SetPhase{Next: PhaseRegistration})
	if router.Generation() == before {
		t.Error("expected phase change to bump the generation")
	}
}

func TestApplyAt_DiscardsStaleBatch(t *testing.T) {
	router := NewRouter()
	gen := router.Generation()

	// The session moves on while a request is in flight.
	router.Apply(SetPhase{Next: PhaseRegistration})

	applied := router.ApplyAt(gen, SetUser{User: backend.UserProfile{Name: "Stale"}}, SetPhase{Next: PhaseDashboard})

	if applied {
		t.Error("expected stale batch to be discarded")
	}
	sess := router.Session()
	if sess.User.Name != "" {
		t.Errorf("expected stale user not to be applied, got '%s'", sess.User.Name)
	}
	if sess.Phase != PhaseRegistration {
		t.Errorf("expected phase registration, got %v", sess.Phase)
	}
}

func TestApplyAt_AppliesCurrentBatch(t *testing.T) {
	router := NewRouter()
	gen := router.Generation()

	applied := router.ApplyAt(gen, SetImage{Image: "roi"}, SetPhase{Next: PhaseRegistration})

	if !applied {
		t.Error("expected current batch to be applied")
	}
	if router.Session().Phase != PhaseRegistration {
		t.Errorf("expected phase registration, got %v", router.Session().Phase)
	}
}

func TestReset_ClearsSession(t *testing.T) {
	router := NewRouter()
	firstID := router.Session().ID

	router.Apply(
		SetImage{Image: "roi"},
		SetUser{User: backend.UserProfile{Name: "Alice"}},
		SetPhase{Next: PhaseDashboard},
	)
	router.Apply(Reset{})

	sess := router.Session()
	if sess.Phase != PhaseCapture {
		t.Errorf("expected phase capture after reset, got %v", sess.Phase)
	}
	if sess.Image != "" {
		t.Errorf("expected image cleared, got '%s'", sess.Image)
	}
	if sess.User.Name != "" {
		t.Errorf("expected empty profile, got '%s'", sess.User.Name)
	}
	if sess.ID == firstID {
		t.Error("expected a fresh session id after reset")
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseCapture, "capture"},
		{PhaseRegistration, "registration"},
		{PhaseDashboard, "dashboard"},
		{Phase(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = '%s', want '%s'", tt.phase, got, tt.want)
		}
	}
}
