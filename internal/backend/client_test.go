package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestValidate_KnownUser(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/validate": func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got '%s'", ct)
			}
			var req map[string]string
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req["image"] != "photo-data" {
				t.Errorf("expected image 'photo-data', got '%s'", req["image"])
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"roi":"r1","user":{"name":"Alice","phone":"555","email":"a@x.com","history":[{"date":"1/1/21","id":7,"orders":[{"name":"Burger","price":10,"count":3}]}]}}`)
		},
	})

	result, err := client.Validate(context.Background(), "photo-data")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if result.ROI != "r1" {
		t.Errorf("expected roi 'r1', got '%s'", result.ROI)
	}
	if result.User == nil {
		t.Fatal("expected a user")
	}
	if result.User.Name != "Alice" {
		t.Errorf("expected user Alice, got '%s'", result.User.Name)
	}
	if len(result.User.History) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(result.User.History))
	}
	// Numeric ids must decode as well as string ones.
	if result.User.History[0].ID != "7" {
		t.Errorf("expected history id '7', got '%s'", result.User.History[0].ID)
	}
}

func TestValidate_UnknownUser(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/validate": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"roi":"r1","user":null}`)
		},
	})

	result, err := client.Validate(context.Background(), "photo-data")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if result.User != nil {
		t.Errorf("expected nil user, got %+v", result.User)
	}
	if result.ROI != "r1" {
		t.Errorf("expected roi 'r1', got '%s'", result.ROI)
	}
}

func TestRegister(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/newuser": func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				User  DraftProfile `json:"user"`
				Photo string       `json:"photo"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req.User.Name != "Alice" {
				t.Errorf("expected draft name Alice, got '%s'", req.User.Name)
			}
			if req.Photo != "photo-data" {
				t.Errorf("expected photo 'photo-data', got '%s'", req.Photo)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"user":{"name":"Alice","phone":"555","email":"a@x.com","history":[]}}`)
		},
	})

	draft := DraftProfile{Name: "Alice", Phone: "555", Email: "a@x.com"}
	user, err := client.Register(context.Background(), draft, "photo-data")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if user.Name != "Alice" || user.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestSubmitOrder(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/order": func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				User UserProfile         `json:"user"`
				Cart map[string]CartItem `json:"cart"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req.Cart["Burger"].Count != 3 {
				t.Errorf("expected Burger count 3, got %d", req.Cart["Burger"].Count)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id":12}`)
		},
	})

	cart := map[string]CartItem{
		"Burger": {Name: "Burger", Price: 10, Count: 3},
	}
	confirmation, err := client.SubmitOrder(context.Background(), UserProfile{Name: "Alice"}, cart)
	if err != nil {
		t.Fatalf("submit order failed: %v", err)
	}

	if confirmation.ID != "12" {
		t.Errorf("expected confirmation id '12', got '%s'", confirmation.ID)
	}
}

func TestClient_Non200Status(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/validate": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		},
	})

	_, err := client.Validate(context.Background(), "photo-data")
	if err == nil {
		t.Fatal("expected an error for status 500")
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	client := newTestClient(t, map[string]http.HandlerFunc{
		"/validate": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "not json at all")
		},
	})

	_, err := client.Validate(context.Background(), "photo-data")
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient("http://[::1"); err == nil {
		t.Error("expected an error for invalid URL")
	}
}

func TestFlexID_StringAndNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexID
	}{
		{"string id", `"abc"`, "abc"},
		{"number id", `42`, "42"},
		{"float id", `4.5`, "4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id FlexID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected '%s', got '%s'", tt.want, id)
			}
		})
	}
}
