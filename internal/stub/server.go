package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/camera"
	"github.com/kozaktomas/face-kiosk/internal/cart"
)

// Server is a development stand-in for the kiosk backend. It implements
// the validate/newuser/order contract with an in-memory user store and a
// geometric face crop instead of a recognition model, so the kiosk can
// run end to end without the real service.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      *userStore
}

// NewServer creates a stub backend server listening on host:port.
func NewServer(host string, port int) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		store:  newUserStore(),
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Post("/validate", s.handleValidate)
	r.Post("/newuser", s.handleNewUser)
	r.Post("/order", s.handleOrder)
	r.Get("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting stub backend on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down stub backend...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type validateRequest struct {
	Image string `json:"image"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	img, err := camera.DecodeDataURL(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image: "+err.Error())
		return
	}

	roi, err := cropROI(img)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not crop roi")
		return
	}

	respondJSON(w, http.StatusOK, backend.ValidationResult{
		ROI:  roi,
		User: s.store.current(),
	})
}

type newUserRequest struct {
	User  backend.DraftProfile `json:"user"`
	Photo string               `json:"photo"`
}

func (s *Server) handleNewUser(w http.ResponseWriter, r *http.Request) {
	var req newUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !strings.Contains(req.User.Email, "@") {
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if _, err := camera.DecodeDataURL(req.Photo); err != nil {
		respondError(w, http.StatusBadRequest, "invalid photo: "+err.Error())
		return
	}

	user := s.store.add(req.User)
	respondJSON(w, http.StatusOK, map[string]*backend.UserProfile{
		"user": user,
	})
}

type orderRequest struct {
	User backend.UserProfile `json:"user"`
	Cart cart.Cart           `json:"cart"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The legacy backend answers an empty cart with the literal id
	// "None" instead of rejecting it.
	if len(req.Cart) == 0 {
		respondJSON(w, http.StatusOK, map[string]string{"id": "None"})
		return
	}

	items := make([]backend.LineItem, 0, len(req.Cart))
	for _, entry := range req.Cart {
		items = append(items, backend.LineItem{
			Name:  entry.Name,
			Price: entry.Price,
			Count: entry.Count,
		})
	}

	date := time.Now().Format("02/01/06")
	id := s.store.appendOrder(req.User.Email, date, items)

	respondJSON(w, http.StatusOK, map[string]int{"id": id})
}
