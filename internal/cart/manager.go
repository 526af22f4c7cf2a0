package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/config"
	"github.com/kozaktomas/face-kiosk/internal/kiosk"
)

// State is the dashboard sub-state: building the cart or showing the
// order confirmation panel. Leaving the dashboard entirely is delegated
// to the router.
type State int

const (
	Building State = iota
	Confirmed
)

// ErrEmptyCart is returned when an order is submitted with nothing in
// the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Manager owns the cart for the lifetime of the dashboard phase. The
// cart starts empty and is discarded when the customer leaves the
// dashboard, whether by cancelling or after a confirmed order.
type Manager struct {
	router         *kiosk.Router
	client         *backend.Client
	cart           Cart
	state          State
	confirmationID string
}

// NewManager creates a dashboard manager with an empty cart.
func NewManager(router *kiosk.Router, client *backend.Client) *Manager {
	return &Manager{
		router: router,
		client: client,
		cart:   Cart{},
		state:  Building,
	}
}

// AddItem adds a catalog item to the cart, replacing the owned cart with
// a fresh snapshot.
func (m *Manager) AddItem(item config.CatalogItem) {
	m.cart = m.cart.Add(item)
}

// Cart returns the current cart snapshot.
func (m *Manager) Cart() Cart {
	return m.cart
}

// State returns the current dashboard sub-state.
func (m *Manager) State() State {
	return m.state
}

// ConfirmationID returns the confirmed order id, empty while building.
func (m *Manager) ConfirmationID() string {
	return m.confirmationID
}

// Order submits the cart for the identified user. On success the
// confirmation id is stored and the dashboard switches to the
// confirmation panel. A transport failure leaves the cart and sub-state
// untouched so the customer can retry.
func (m *Manager) Order(ctx context.Context) error {
	if len(m.cart) == 0 {
		return ErrEmptyCart
	}

	sess := m.router.Session()
	confirmation, err := m.client.SubmitOrder(ctx, sess.User, m.cart)
	if err != nil {
		return fmt.Errorf("submitting order: %w", err)
	}

	m.confirmationID = confirmation.ID.String()
	m.state = Confirmed
	return nil
}

// NewOrder leaves the confirmation panel and fully resets the session
// for the next customer.
func (m *Manager) NewOrder() {
	m.confirmationID = ""
	m.cart = Cart{}
	m.state = Building
	m.router.Apply(kiosk.Reset{})
}

// Cancel abandons the cart and resets the session.
func (m *Manager) Cancel() {
	m.cart = Cart{}
	m.router.Apply(kiosk.Reset{})
}
