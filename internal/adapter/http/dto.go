package http

import (
	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// ViewDTO is the response payload for every view-returning endpoint:
// the search lifecycle state, the criteria snapshot, the global bounds,
// the active filters, and the filtered sorted results.
type ViewDTO struct {
	State    domain.RequestState `json:"state"`
	Criteria *CriteriaDTO        `json:"criteria,omitempty"`
	Bounds   BoundsDTO           `json:"bounds"`
	Filters  domain.FilterState  `json:"filters"`
	SortBy   string              `json:"sortBy"`
	Results  []ItineraryDTO      `json:"results"`
}

// CriteriaDTO echoes the criteria snapshot of the last applied search.
type CriteriaDTO struct {
	TripType   string   `json:"tripType"`
	Legs       []LegDTO `json:"legs"`
	Adults     int      `json:"adults"`
	Children   int      `json:"children"`
	Infants    int      `json:"infants"`
	CabinClass string   `json:"cabinClass"`
}

// LegDTO is one leg of the criteria snapshot.
type LegDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

// BoundsDTO carries the global bounds and the per-carrier cheapest index.
type BoundsDTO struct {
	PriceMin          float64               `json:"priceMin"`
	PriceMax          float64               `json:"priceMax"`
	LayoverHourMax    int                   `json:"layoverHourMax"`
	CheapestByAirline []domain.AirlinePrice `json:"cheapestByAirline"`
}

// ItineraryDTO is one enriched itinerary in the view.
type ItineraryDTO struct {
	ResultID        string   `json:"resultId"`
	Price           PriceDTO `json:"price"`
	DurationMinutes int      `json:"durationMinutes"`
	Stops           int      `json:"stops"`
	LayoverMinutes  int      `json:"layoverMinutes"`
	Airlines        []string `json:"airlines"`
}

// PriceDTO is the canonical price of an itinerary.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ToViewDTO assembles the view payload from session state.
func ToViewDTO(
	state domain.RequestState,
	snapshot func() (domain.SearchCriteria, bool),
	bounds domain.Bounds,
	filters domain.FilterState,
	sortKey domain.SortKey,
	results []domain.EnrichedItinerary,
) *ViewDTO {
	dto := &ViewDTO{
		State: state,
		Bounds: BoundsDTO{
			PriceMin:          bounds.PriceMin,
			PriceMax:          bounds.PriceMax,
			LayoverHourMax:    bounds.LayoverHourMax,
			CheapestByAirline: bounds.CheapestByAirline,
		},
		Filters: filters,
		SortBy:  string(sortKey),
		Results: make([]ItineraryDTO, len(results)),
	}
	if criteria, ok := snapshot(); ok {
		dto.Criteria = toCriteriaDTO(criteria)
	}
	for i, e := range results {
		dto.Results[i] = toItineraryDTO(e)
	}
	return dto
}

// toCriteriaDTO converts a criteria snapshot to its response shape.
func toCriteriaDTO(c domain.SearchCriteria) *CriteriaDTO {
	dto := &CriteriaDTO{
		TripType:   string(c.TripType),
		CabinClass: string(c.CabinClass),
		Legs:       make([]LegDTO, len(c.OriginDestinationOptions)),
	}
	for i, leg := range c.OriginDestinationOptions {
		dto.Legs[i] = LegDTO{
			From: leg.DepartureAirport,
			To:   leg.ArrivalAirport,
			Date: leg.FlyDate,
		}
	}
	for _, p := range c.Passengers {
		switch p.PassengerType {
		case domain.PassengerAdult:
			dto.Adults = p.Quantity
		case domain.PassengerChild:
			dto.Children = p.Quantity
		case domain.PassengerInfant:
			dto.Infants = p.Quantity
		}
	}
	return dto
}

// toItineraryDTO converts an enriched itinerary to its response shape.
// Unpriced itineraries never reach the view, so the price is always finite.
func toItineraryDTO(e domain.EnrichedItinerary) ItineraryDTO {
	return ItineraryDTO{
		ResultID:        e.Itinerary.ResultID,
		Price:           PriceDTO{Amount: e.Price.Total, Currency: e.Price.Currency},
		DurationMinutes: e.DurationMinutes,
		Stops:           e.Stops,
		LayoverMinutes:  e.LayoverMinutes,
		Airlines:        e.AirlineCodes,
	}
}
