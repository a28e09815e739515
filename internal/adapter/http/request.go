package http

import (
	"fmt"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/usecase"
)

// SearchRequest is the request body for flight search.
// Field-level validation happens in the session; binding failures and
// structural problems are rejected here.
type SearchRequest struct {
	// FromCode and ToCode are 3-letter IATA airport codes.
	FromCode string `json:"fromCode"`
	ToCode   string `json:"toCode"`

	// DepartureDate is required (YYYY-MM-DD); ReturnDate only for round trips.
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`

	// TripType is a human label: "one way", "round trip", "multi city".
	TripType string `json:"tripType,omitempty"`

	// Traveller counts. Adults defaults to 1.
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	// Class is the human cabin label (e.g., "Premium Economy").
	Class string `json:"class,omitempty"`

	// PreferredAirline optionally restricts results to one carrier.
	PreferredAirline string `json:"preferredAirline,omitempty"`

	// APIID selects the upstream vendor API variant.
	APIID int `json:"apiId,omitempty"`

	// SortBy selects the result ordering: best, cheapest, fastest.
	SortBy string `json:"sortBy,omitempty"`
}

// ToFormInput converts the request to the session's form input.
func (r *SearchRequest) ToFormInput() usecase.FormInput {
	return usecase.FormInput{
		FromCode:         r.FromCode,
		ToCode:           r.ToCode,
		DepartureDate:    r.DepartureDate,
		ReturnDate:       r.ReturnDate,
		TripType:         r.TripType,
		Adults:           r.Adults,
		Children:         r.Children,
		Infants:          r.Infants,
		ClassLabel:       r.Class,
		PreferredAirline: r.PreferredAirline,
		APIID:            r.APIID,
	}
}

// Shiftable legs.
const (
	LegDeparture = "departure"
	LegReturn    = "return"
)

// ShiftRequest is the request body for a date-shift re-search.
type ShiftRequest struct {
	// Leg is "departure" or "return".
	Leg string `json:"leg"`

	// Days is the shift delta, typically +1 or -1.
	Days int `json:"days"`
}

// Validate checks the shift parameters.
func (r *ShiftRequest) Validate() error {
	if r.Leg != LegDeparture && r.Leg != LegReturn {
		return fmt.Errorf("%w: leg must be %q or %q, got %q", domain.ErrValidation, LegDeparture, LegReturn, r.Leg)
	}
	if r.Days == 0 {
		return fmt.Errorf("%w: days must be non-zero", domain.ErrValidation)
	}
	return nil
}

// FiltersRequest is the request body for replacing the filter state.
type FiltersRequest struct {
	PriceRange       domain.PriceRange  `json:"priceRange"`
	LayoverHourRange domain.HourRange   `json:"layoverHourRange"`
	StopBuckets      domain.StopBuckets `json:"stopBuckets"`
	SelectedAirlines []string           `json:"selectedAirlines,omitempty"`
}

// ToFilterState converts the request to the domain filter state.
func (r *FiltersRequest) ToFilterState() domain.FilterState {
	return domain.FilterState{
		PriceRange:       r.PriceRange,
		LayoverHourRange: r.LayoverHourRange,
		StopBuckets:      r.StopBuckets,
		SelectedAirlines: r.SelectedAirlines,
	}
}

// SortRequest is the request body for changing the sort key.
type SortRequest struct {
	SortBy string `json:"sortBy"`
}
