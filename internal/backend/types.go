package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserProfile is a customer record returned by the identity service.
// Profiles are read-only on the kiosk side except for the registration
// draft, which uses DraftProfile until the backend accepts it.
type UserProfile struct {
	Name    string        `json:"name"`
	Phone   string        `json:"phone"`
	Email   string        `json:"email"`
	History []OrderRecord `json:"history"`
}

// DraftProfile holds the editable fields collected during registration.
type DraftProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OrderRecord is one past order in a customer's history.
type OrderRecord struct {
	Date   string     `json:"date"`
	ID     FlexID     `json:"id"`
	Orders []LineItem `json:"orders"`
}

// LineItem is a single position of a past order.
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

// CartItem is one cart position sent with an order. Keyed by Name within
// a cart; Count is always at least 1.
type CartItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Count int     `json:"count"`
}

// ValidationResult is the identity service response for a captured photo.
// User is nil when the face was not recognized. ROI is the cropped face
// region as a data URL and replaces the full captured frame either way.
type ValidationResult struct {
	ROI  string       `json:"roi"`
	User *UserProfile `json:"user"`
}

// OrderConfirmation is returned by the order endpoint.
type OrderConfirmation struct {
	ID FlexID `json:"id"`
}

// FlexID decodes JSON ids that may arrive as either a string or a number.
// The legacy backend returns numeric order ids but string user-history ids.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("could not unmarshal id: %w", err)
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("could not unmarshal id: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}
