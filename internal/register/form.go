package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/kiosk"
)

// Draft placeholders shown before the customer edits a field.
const (
	PlaceholderName  = "Username"
	PlaceholderPhone = "User Phone Number"
	PlaceholderEmail = "Email"
)

// ErrNoImage is returned when the form is submitted without a captured
// photo in the session.
var ErrNoImage = errors.New("no captured image to register")

// Form collects the profile fields for a face the identity service did
// not recognize. Edits mutate the local draft only; nothing is persisted
// until Submit succeeds. Cancel discards the draft entirely.
type Form struct {
	router *kiosk.Router
	client *backend.Client
	draft  backend.DraftProfile
}

// NewForm creates a registration form with placeholder field values.
func NewForm(router *kiosk.Router, client *backend.Client) *Form {
	return &Form{
		router: router,
		client: client,
		draft:  placeholderDraft(),
	}
}

func placeholderDraft() backend.DraftProfile {
	return backend.DraftProfile{
		Name:  PlaceholderName,
		Phone: PlaceholderPhone,
		Email: PlaceholderEmail,
	}
}

// Draft returns the current draft values.
func (f *Form) Draft() backend.DraftProfile {
	return f.draft
}

func (f *Form) SetName(name string) {
	f.draft.Name = name
}

func (f *Form) SetPhone(phone string) {
	f.draft.Phone = phone
}

func (f *Form) SetEmail(email string) {
	f.draft.Email = email
}

// Submit sends the draft together with the captured photo to the
// registration service. On success the returned profile becomes the
// session user and the dashboard opens. A transport failure leaves the
// session unchanged so the customer stays on the form.
func (f *Form) Submit(ctx context.Context) error {
	sess := f.router.Session()
	if sess.Image == "" {
		return ErrNoImage
	}

	gen := f.router.Generation()
	user, err := f.client.Register(ctx, f.draft, sess.Image)
	if err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	f.router.ApplyAt(gen,
		kiosk.SetUser{User: *user},
		kiosk.SetPhase{Next: kiosk.PhaseDashboard},
	)
	return nil
}

// Cancel discards the draft and resets the session back to capture. No
// partial registration survives.
func (f *Form) Cancel() {
	f.draft = placeholderDraft()
	f.router.Apply(kiosk.Reset{})
}
