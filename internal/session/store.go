// Package session holds the client's bearer token and tells interested parties
// when it changes.
package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Event is delivered to listeners after every Save or Clear.
type Event struct {
	Authenticated bool
	Token         string
}

// Listener receives auth-state change events.
type Listener func(Event)

// Store is the single source of truth for "is a user currently authenticated".
// It is safe for concurrent use. Listeners run synchronously on the goroutine
// that changed the state, after the backend write has succeeded.
type Store struct {
	backend Backend
	log     zerolog.Logger

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	redirect  func()
}

// Option configures a Store.
type Option func(*Store)

// WithLogoutRedirect sets the hook Logout runs after clearing the token,
// typically sending the user back to the login view.
func WithLogoutRedirect(fn func()) Option {
	return func(s *Store) {
		s.redirect = fn
	}
}

// WithLogger sets the logger used for state-change debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore wraps a backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		log:       zerolog.Nop(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored bearer token. A backend read failure is reported as
// absence and logged; use Load to observe the error itself.
func (s *Store) Token() (string, bool) {
	token, ok, err := s.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("session read failed")
		return "", false
	}
	return token, ok
}

// Load returns the stored bearer token along with any storage error.
func (s *Store) Load() (string, bool, error) {
	token, ok, err := s.backend.Get(TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("load session token: %w", err)
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Save persists the token and notifies listeners.
func (s *Store) Save(token string) error {
	if token == "" {
		return fmt.Errorf("save session token: empty token")
	}
	if err := s.backend.Set(TokenKey, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	s.log.Debug().Msg("session token saved")
	s.notify(Event{Authenticated: true, Token: token})
	return nil
}

// Clear removes the token (and refresh token) and notifies listeners.
func (s *Store) Clear() error {
	if err := s.backend.Delete(TokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	if err := s.backend.Delete(RefreshKey); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	s.log.Debug().Msg("session token cleared")
	s.notify(Event{Authenticated: false})
	return nil
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// Logout clears the session and then runs the redirect hook. There is no
// server-side invalidation.
func (s *Store) Logout() error {
	if err := s.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	redirect := s.redirect
	s.mu.Unlock()
	if redirect != nil {
		redirect()
	}
	return nil
}

// RefreshToken returns the stored refresh token, if any.
func (s *Store) RefreshToken() (string, bool, error) {
	token, ok, err := s.backend.Get(RefreshKey)
	if err != nil {
		return "", false, fmt.Errorf("load refresh token: %w", err)
	}
	return token, ok && token != "", nil
}

// SaveRefreshToken stores the refresh token. Listeners are not notified since
// the authenticated state does not change.
func (s *Store) SaveRefreshToken(token string) error {
	if err := s.backend.Set(RefreshKey, token); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}
