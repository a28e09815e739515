package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// Relay is a configurable stand-in for the vendor relay. It serves the
// token, search, and airports endpoints over httptest and is configured
// with the builder pattern: delays, errors, and canned payloads.
type Relay struct {
	mu sync.Mutex

	secret       string
	token        string
	results      []domain.RawItinerary
	searchStatus int
	tokenStatus  int
	tokenBody    []byte
	airports     []byte

	tokenCalls  int
	searchCalls int

	server *httptest.Server
}

// NewRelay creates a relay stub that accepts the given secret and issues
// the given bearer token.
func NewRelay(secret, token string) *Relay {
	return &Relay{
		secret:       secret,
		token:        token,
		searchStatus: http.StatusOK,
		tokenStatus:  http.StatusOK,
	}
}

// WithResults configures the search endpoint's result payload.
func (r *Relay) WithResults(results []domain.RawItinerary) *Relay {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = results
	return r
}

// WithSearchStatus forces the search endpoint to answer with the given status.
func (r *Relay) WithSearchStatus(status int) *Relay {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchStatus = status
	return r
}

// WithTokenBody overrides the token endpoint's 2xx body, for exercising
// the extraction fallbacks.
func (r *Relay) WithTokenBody(body []byte) *Relay {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokenBody = body
	return r
}

// WithAirports configures the airports endpoint's data payload.
func (r *Relay) WithAirports(data []byte) *Relay {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.airports = data
	return r
}

// Start brings the relay up and returns its base URL.
func (r *Relay) Start() string {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/app/token", r.handleToken)
	mux.HandleFunc("/api/flights/search", r.handleSearch)
	mux.HandleFunc("/api/settings/airports", r.handleAirports)
	r.server = httptest.NewServer(mux)
	return r.server.URL
}

// Close shuts the relay down.
func (r *Relay) Close() {
	if r.server != nil {
		r.server.Close()
	}
}

// TokenCalls reports how many token requests the relay has served.
func (r *Relay) TokenCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokenCalls
}

// SearchCalls reports how many search requests the relay has served.
func (r *Relay) SearchCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searchCalls
}

func (r *Relay) handleToken(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.tokenCalls++
	status := r.tokenStatus
	body := r.tokenBody
	secret := r.secret
	token := r.token
	r.mu.Unlock()

	var in struct {
		AppSecret string `json:"appSecret"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.AppSecret != secret {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.WriteHeader(status)
	if body != nil {
		w.Write(body)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (r *Relay) handleSearch(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.searchCalls++
	status := r.searchStatus
	results := r.results
	token := r.token
	r.mu.Unlock()

	if req.Header.Get("Authorization") != "Bearer "+token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		w.Write([]byte("relay error"))
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
}

func (r *Relay) handleAirports(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	data := r.airports
	r.mu.Unlock()

	if data == nil {
		data = []byte(`[]`)
	}
	w.Write([]byte(`{"data":` + strings.TrimSpace(string(data)) + `}`))
}
