package stub

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// userStore keeps registered users in memory, keyed like the legacy
// backend by the local part of the email address. Nothing survives a
// restart; the stub never persists anything.
type userStore struct {
	mu          sync.Mutex
	users       map[string]*backend.UserProfile
	lastKey     string
	nextOrderID int
}

func newUserStore() *userStore {
	return &userStore{
		users: make(map[string]*backend.UserProfile),
	}
}

// userKey derives the storage key from an email address: the local part,
// lowercased and with diacritics removed (e.g. "Jiří@x.com" -> "jiri").
func userKey(email string) string {
	local, _, _ := strings.Cut(email, "@")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	local, _, _ = transform.String(t, local)
	return strings.ToLower(local)
}

// add registers a user and marks it as the most recent registration.
func (s *userStore) add(draft backend.DraftProfile) *backend.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(draft.Email)
	user := &backend.UserProfile{
		Name:    draft.Name,
		Phone:   draft.Phone,
		Email:   draft.Email,
		History: []backend.OrderRecord{},
	}
	s.users[key] = user
	s.lastKey = key
	return user
}

// current returns the most recently registered user, or nil when the
// store is empty. The stub has no recognition model, so "most recent"
// stands in for a face match during development.
func (s *userStore) current() *backend.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastKey == "" {
		return nil
	}
	return s.users[s.lastKey]
}

// appendOrder records an order in the user's history and returns the new
// order id. Unknown users still get an id; there is just no history to
// append to.
func (s *userStore) appendOrder(email, date string, items []backend.LineItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextOrderID
	s.nextOrderID++

	if user, ok := s.users[userKey(email)]; ok {
		user.History = append(user.History, backend.OrderRecord{
			Date:   date,
			ID:     backend.FlexID(strconv.Itoa(id)),
			Orders: items,
		})
	}
	return id
}
