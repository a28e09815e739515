// Package auth implements the credential lifecycle: the token store holding
// app- and user-level bearer credentials, and the app-token acquisition flow.
package auth

import (
	"sync"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/timeutil"
)

// Store holds at most one live credential per kind. It is safe for
// concurrent use; credentials are replaced wholesale, never mutated.
//
// The store is owned by the application root and injected into the flows
// that need it; there is no package-level instance.
type Store struct {
	mu    sync.RWMutex
	clock timeutil.Clock
	app   domain.Credential
	user  domain.Credential
}

// NewStore creates an empty credential store.
func NewStore(clock timeutil.Clock) *Store {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Store{clock: clock}
}

// SetApp replaces the app-level credential with a fresh one.
func (s *Store) SetApp(value string) domain.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = domain.Credential{Kind: domain.AppToken, Value: value, AcquiredAt: s.clock.Now()}
	return s.app
}

// Restore installs a previously persisted credential as-is, keeping its
// original acquisition time.
func (s *Store) Restore(cred domain.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch cred.Kind {
	case domain.AppToken:
		s.app = cred
	case domain.UserToken:
		s.user = cred
	}
}

// SetUser replaces the user-level credential with a fresh one.
func (s *Store) SetUser(value string) domain.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = domain.Credential{Kind: domain.UserToken, Value: value, AcquiredAt: s.clock.Now()}
	return s.user
}

// ClearUser drops the user credential (logout). The app credential survives.
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = domain.Credential{}
}

// Clear drops every credential (explicit invalidation).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = domain.Credential{}
	s.user = domain.Credential{}
}

// Best returns the credential to authorize with: the user token if present
// and non-empty, otherwise the app token, otherwise none. Callers with no
// credential must fail fast rather than send an unauthenticated request.
func (s *Store) Best() (domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.user.Empty() {
		return s.user, true
	}
	if !s.app.Empty() {
		return s.app, true
	}
	return domain.Credential{}, false
}

// App returns the current app credential, if any.
func (s *Store) App() (domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.app.Empty() {
		return domain.Credential{}, false
	}
	return s.app, true
}
