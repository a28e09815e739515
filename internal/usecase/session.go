package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/faresight/flight-result-pipeline/internal/auth"
	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/logger"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/storage"
)

// SearchClient is the upstream call that executes a search with a bearer
// credential.
type SearchClient interface {
	Search(ctx context.Context, criteria domain.SearchCriteria, cred domain.Credential) ([]domain.RawItinerary, error)
}

// FormInput is the raw user-form input a search starts from, before it is
// normalized into domain.SearchCriteria.
type FormInput struct {
	// FromCode and ToCode are the 3-letter airport codes.
	FromCode string `json:"fromCode"`
	ToCode   string `json:"toCode"`

	// DepartureDate is required; ReturnDate only for round trips.
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`

	// TripType is a human label ("one way", "round trip").
	TripType string `json:"tripType,omitempty"`

	// Traveller counts per type. Adults defaults to 1.
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	// ClassLabel is the human cabin label (e.g., "Premium Economy").
	ClassLabel string `json:"classLabel,omitempty"`

	// PreferredAirline optionally restricts results to one carrier.
	PreferredAirline string `json:"preferredAirline,omitempty"`

	// APIID selects the upstream vendor API variant; 0 uses the default.
	APIID int `json:"apiId,omitempty"`
}

// SessionConfig holds the session's fixed settings.
type SessionConfig struct {
	// TargetCurrency is preferred during price extraction.
	TargetCurrency string `env:"SEARCH_TARGET_CURRENCY" envDefault:"BDT"`

	// DefaultAPIID is used when the form does not specify one.
	DefaultAPIID int `env:"SEARCH_DEFAULT_API_ID" envDefault:"1"`
}

// Session owns one logical "current search": its request lifecycle, the
// criteria snapshot, the enriched result set, the derived bounds, and the
// user-adjustable filter/sort state.
//
// A new search pre-empts the previous one: it starts a new loading cycle
// without cancelling the older HTTP call, and every issued search carries a
// monotonically increasing sequence number. A completion whose sequence is
// lower than the highest already applied is discarded, so results apply in
// issue order even when responses arrive out of order.
type Session struct {
	tokens  *auth.Store
	client  SearchClient
	persist storage.Store
	log     *logger.Logger
	cfg     SessionConfig

	mu       sync.Mutex
	state    domain.RequestState
	nextSeq  uint64
	applied  uint64
	snapshot *domain.SearchCriteria
	raw      []domain.RawItinerary
	enriched []domain.EnrichedItinerary
	bounds   domain.Bounds
	filters  domain.FilterState
	sortKey  domain.SortKey
}

// NewSession creates a search session. persist may be nil when the last
// criteria and filter defaults should not survive restarts.
func NewSession(tokens *auth.Store, client SearchClient, persist storage.Store, cfg SessionConfig, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TargetCurrency == "" {
		cfg.TargetCurrency = "BDT"
	}
	if cfg.DefaultAPIID == 0 {
		cfg.DefaultAPIID = 1
	}
	return &Session{
		tokens:  tokens,
		client:  client,
		persist: persist,
		log:     log.WithFlow("search"),
		cfg:     cfg,
		state:   domain.RequestState{Phase: domain.PhaseIdle},
		sortKey: domain.SortBest,
	}
}

// BuildCriteria validates the form input and normalizes it into the
// criteria shape sent upstream. Violations return a wrapped ErrValidation
// without reaching the network.
func (s *Session) BuildCriteria(in FormInput) (domain.SearchCriteria, error) {
	if err := validateForm(in); err != nil {
		return domain.SearchCriteria{}, err
	}

	tripType := domain.ParseTripType(in.TripType)
	if tripType == domain.TripOneWay && in.ReturnDate != "" {
		tripType = domain.TripRoundTrip
	}

	legs := []domain.OriginDestinationOption{{
		DepartureAirport: in.FromCode,
		ArrivalAirport:   in.ToCode,
		FlyDate:          in.DepartureDate,
	}}
	if tripType == domain.TripRoundTrip {
		legs = append(legs, domain.OriginDestinationOption{
			DepartureAirport: in.ToCode,
			ArrivalAirport:   in.FromCode,
			FlyDate:          in.ReturnDate,
		})
	}

	adults := in.Adults
	if adults < 1 {
		adults = 1
	}
	passengers := []domain.PassengerQuantity{
		{PassengerType: domain.PassengerAdult, Quantity: adults},
	}
	if in.Children > 0 {
		passengers = append(passengers, domain.PassengerQuantity{PassengerType: domain.PassengerChild, Quantity: in.Children})
	}
	if in.Infants > 0 {
		passengers = append(passengers, domain.PassengerQuantity{PassengerType: domain.PassengerInfant, Quantity: in.Infants})
	}

	apiID := in.APIID
	if apiID == 0 {
		apiID = s.cfg.DefaultAPIID
	}

	criteria := domain.SearchCriteria{
		TripType:                 tripType,
		OriginDestinationOptions: legs,
		Passengers:               passengers,
		CabinClass:               domain.MapClassToCabinClass(in.ClassLabel),
		PreferredAirline:         in.PreferredAirline,
		APIID:                    apiID,
	}
	if err := criteria.Validate(); err != nil {
		return domain.SearchCriteria{}, err
	}
	return criteria, nil
}

// validateForm fails fast on missing or malformed required fields.
func validateForm(in FormInput) error {
	if !domain.ValidAirportCode(in.FromCode) {
		return fmt.Errorf("%w: fromCode must be a non-empty 3-letter code, got %q", domain.ErrValidation, in.FromCode)
	}
	if !domain.ValidAirportCode(in.ToCode) {
		return fmt.Errorf("%w: toCode must be a non-empty 3-letter code, got %q", domain.ErrValidation, in.ToCode)
	}
	if in.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", domain.ErrValidation)
	}
	if !domain.ValidDate(in.DepartureDate) {
		return fmt.Errorf("%w: departureDate must be YYYY-MM-DD, got %q", domain.ErrValidation, in.DepartureDate)
	}
	tripType := domain.ParseTripType(in.TripType)
	if tripType == domain.TripRoundTrip && in.ReturnDate == "" {
		return fmt.Errorf("%w: returnDate is required for round trips", domain.ErrValidation)
	}
	if in.ReturnDate != "" && !domain.ValidDate(in.ReturnDate) {
		return fmt.Errorf("%w: returnDate must be YYYY-MM-DD, got %q", domain.ErrValidation, in.ReturnDate)
	}
	return nil
}

// Search normalizes the form input and issues a search. Validation and
// missing-credential failures return before any network call.
func (s *Session) Search(ctx context.Context, in FormInput) error {
	criteria, err := s.BuildCriteria(in)
	if err != nil {
		return err
	}
	return s.run(ctx, criteria)
}

// ShiftDeparture rebuilds the last snapshot with only the departure date
// moved by days and re-issues the search. All other fields carry over.
func (s *Session) ShiftDeparture(ctx context.Context, days int) error {
	return s.shift(ctx, days, domain.SearchCriteria.ShiftedDeparture)
}

// ShiftReturn rebuilds the last snapshot with only the return date moved
// by days and re-issues the search. Only valid for round trips.
func (s *Session) ShiftReturn(ctx context.Context, days int) error {
	return s.shift(ctx, days, domain.SearchCriteria.ShiftedReturn)
}

// shift applies a date-shift transform to the snapshot and re-issues.
func (s *Session) shift(ctx context.Context, days int, transform func(domain.SearchCriteria, int) (domain.SearchCriteria, error)) error {
	s.mu.Lock()
	snapshot := s.snapshot
	s.mu.Unlock()

	if snapshot == nil {
		return fmt.Errorf("%w: no previous search to shift", domain.ErrValidation)
	}
	shifted, err := transform(*snapshot, days)
	if err != nil {
		return err
	}
	return s.run(ctx, shifted)
}

// run executes one search cycle: credential check, sequence assignment,
// the upstream call, and ordered completion.
func (s *Session) run(ctx context.Context, criteria domain.SearchCriteria) error {
	cred, ok := s.tokens.Best()
	if !ok {
		err := fmt.Errorf("%w: no credential available", domain.ErrUnauthorized)
		s.mu.Lock()
		s.state = domain.RequestState{Phase: domain.PhaseFailed, Message: err.Error()}
		s.mu.Unlock()
		return err
	}

	seq := s.begin()
	raw, err := s.client.Search(ctx, criteria, cred)
	return s.complete(ctx, seq, criteria, raw, err)
}

// begin assigns the next sequence number and enters the loading phase.
// A newer call pre-empts: it starts a fresh loading cycle even while an
// older call is still in flight.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.state = domain.RequestState{Phase: domain.PhaseLoading}
	return s.nextSeq
}

// complete applies a search completion in sequence order. Completions older
// than the highest already applied are discarded without touching state, so
// a slow early response can never overwrite a newer result.
func (s *Session) complete(ctx context.Context, seq uint64, criteria domain.SearchCriteria, raw []domain.RawItinerary, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		s.log.Debug().
			Uint64("seq", seq).
			Uint64("applied", s.applied).
			Msg("Discarded stale search completion")
		return err
	}
	s.applied = seq

	if err != nil {
		s.state = domain.RequestState{Phase: domain.PhaseFailed, Message: err.Error()}
		return err
	}

	snapshot := criteria.Clone()
	s.snapshot = &snapshot
	s.raw = raw
	s.enriched = Enrich(raw, s.cfg.TargetCurrency)

	bounds := ComputeBounds(s.enriched)
	if !bounds.Equal(s.bounds) {
		s.filters = domain.DefaultFilterState(bounds)
	}
	s.bounds = bounds
	s.state = domain.RequestState{Phase: domain.PhaseSucceeded}

	s.log.Info().
		Uint64("seq", seq).
		Int("results", len(raw)).
		Msg("Search applied")

	s.persistState(ctx, snapshot)
	return nil
}

// persistState saves the criteria snapshot and filter defaults best-effort.
func (s *Session) persistState(ctx context.Context, snapshot domain.SearchCriteria) {
	if s.persist == nil {
		return
	}
	if data, err := json.Marshal(snapshot); err == nil {
		if err := s.persist.Set(ctx, storage.KeyLastCriteria, data); err != nil {
			s.log.Warn().Err(err).Msg("Failed to persist last criteria")
		}
	}
	if data, err := json.Marshal(s.filters); err == nil {
		if err := s.persist.Set(ctx, storage.KeyFilterDefaults, data); err != nil {
			s.log.Warn().Err(err).Msg("Failed to persist filter defaults")
		}
	}
}

// RestoreLastCriteria loads the persisted criteria snapshot, if any, so
// date-shift re-searches work across restarts. Missing state is not an error.
func (s *Session) RestoreLastCriteria(ctx context.Context) bool {
	if s.persist == nil {
		return false
	}
	data, err := s.persist.Get(ctx, storage.KeyLastCriteria)
	if err != nil {
		return false
	}
	var criteria domain.SearchCriteria
	if err := json.Unmarshal(data, &criteria); err != nil || criteria.Validate() != nil {
		return false
	}

	s.mu.Lock()
	s.snapshot = &criteria
	s.mu.Unlock()
	return true
}

// State returns the current search lifecycle state.
func (s *Session) State() domain.RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the criteria of the last applied search, if any.
func (s *Session) Snapshot() (domain.SearchCriteria, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return domain.SearchCriteria{}, false
	}
	return s.snapshot.Clone(), true
}

// Bounds returns the global bounds of the current enriched set.
func (s *Session) Bounds() domain.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// Filters returns the current filter state.
func (s *Session) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filter state after checking range invariants.
func (s *Session) SetFilters(f domain.FilterState) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
	return nil
}

// SortKey returns the current sort key.
func (s *Session) SortKey() domain.SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortKey
}

// SetSortKey replaces the sort key; unknown values fall back to best.
func (s *Session) SetSortKey(k domain.SortKey) {
	s.mu.Lock()
	if !k.IsValid() {
		k = domain.SortBest
	}
	s.sortKey = k
	s.mu.Unlock()
}

// Results computes the filtered, sorted view of the current enriched set.
// Callers should check State first; an empty slice is returned while no
// search has succeeded.
func (s *Session) Results() []domain.EnrichedItinerary {
	s.mu.Lock()
	enriched := s.enriched
	filters := s.filters
	key := s.sortKey
	s.mu.Unlock()

	return View(enriched, filters, key)
}
