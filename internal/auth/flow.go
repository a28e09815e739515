package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/logger"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/storage"
)

// flightKey is the singleflight key for app-token acquisition; there is
// only one app token, so all callers share one in-flight request.
const flightKey = "app-token"

// TokenEndpoint is the upstream call that exchanges the shared secret for
// a raw token response body.
type TokenEndpoint interface {
	AppToken(ctx context.Context, secret string) ([]byte, error)
}

// Flow acquires the app-level credential. It is a state machine
// (idle → loading → succeeded | failed) whose outbound HTTP call is
// de-duplicated: concurrent callers while one acquisition is loading
// await the in-flight result instead of issuing a second request.
type Flow struct {
	endpoint TokenEndpoint
	store    *Store
	persist  storage.Store
	secret   string
	log      *logger.Logger

	group singleflight.Group

	mu    sync.Mutex
	state domain.RequestState
}

// NewFlow creates an app-token acquisition flow. persist may be nil when
// the credential should not survive restarts.
func NewFlow(endpoint TokenEndpoint, store *Store, persist storage.Store, secret string, log *logger.Logger) *Flow {
	if log == nil {
		log = logger.Nop()
	}
	return &Flow{
		endpoint: endpoint,
		store:    store,
		persist:  persist,
		secret:   secret,
		log:      log.WithFlow("auth"),
		state:    domain.RequestState{Phase: domain.PhaseIdle},
	}
}

// State returns the current lifecycle state of the flow.
func (f *Flow) State() domain.RequestState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// AcquireAppToken obtains an app token from the upstream endpoint and
// stores it as the app-level credential, fully replacing any prior value.
// Exactly one HTTP request is outstanding at a time regardless of how many
// callers arrive; trailing callers receive the shared result.
func (f *Flow) AcquireAppToken(ctx context.Context) (domain.Credential, error) {
	f.setState(domain.RequestState{Phase: domain.PhaseLoading})

	value, err, shared := f.group.Do(flightKey, func() (interface{}, error) {
		return f.fetchToken(ctx)
	})
	if err != nil {
		f.setState(domain.RequestState{Phase: domain.PhaseFailed, Message: err.Error()})
		return domain.Credential{}, err
	}

	token := value.(string)
	cred := f.store.SetApp(token)
	f.setState(domain.RequestState{Phase: domain.PhaseSucceeded})
	f.persistCredential(ctx, cred)

	f.log.Info().Bool("shared", shared).Msg("App token acquired")
	return cred, nil
}

// RestorePersisted loads a previously persisted app credential into the
// store, if one exists. Missing state is not an error.
func (f *Flow) RestorePersisted(ctx context.Context) bool {
	if f.persist == nil {
		return false
	}
	data, err := f.persist.Get(ctx, storage.KeyAppToken)
	if err != nil {
		return false
	}
	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.Empty() {
		return false
	}
	f.store.Restore(cred)
	f.log.Info().Time("acquired_at", cred.AcquiredAt).Msg("Restored persisted app token")
	return true
}

// fetchToken performs the single outbound token request and extraction.
func (f *Flow) fetchToken(ctx context.Context) (string, error) {
	body, err := f.endpoint.AppToken(ctx, f.secret)
	if err != nil {
		return "", err
	}
	return ExtractToken(body)
}

// persistCredential saves the credential best-effort; persistence failures
// are logged, not surfaced, since the in-memory credential is already live.
func (f *Flow) persistCredential(ctx context.Context, cred domain.Credential) {
	if f.persist == nil {
		return
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return
	}
	if err := f.persist.Set(ctx, storage.KeyAppToken, data); err != nil {
		f.log.Warn().Err(err).Msg("Failed to persist app token")
	}
}

// setState replaces the flow state under lock.
func (f *Flow) setState(s domain.RequestState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// tokenResponse covers the known shapes of the token endpoint's payload.
type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	Data        struct {
		Token string `json:"token"`
	} `json:"data"`
}

// tokenExtractors are tried in priority order; the first non-empty field wins.
var tokenExtractors = []func(tokenResponse) string{
	func(r tokenResponse) string { return r.Token },
	func(r tokenResponse) string { return r.AccessToken },
	func(r tokenResponse) string { return r.Data.Token },
}

// ExtractToken pulls the bearer token out of a 2xx token response body,
// checking the known field locations in priority order: token,
// access_token, data.token. Returns ErrTokenMissing when none is present.
func ExtractToken(body []byte) (string, error) {
	var decoded tokenResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: unparseable auth response", domain.ErrTokenMissing)
	}
	for _, extract := range tokenExtractors {
		if token := extract(decoded); token != "" {
			return token, nil
		}
	}
	return "", domain.ErrTokenMissing
}
