// Package domain contains the core entities and rules of the flight search
// result pipeline: search criteria, raw and enriched itineraries, credential
// and filter state. Entities are vendor-agnostic and carry no I/O.
package domain

import "math"

// Money is an amount in a single currency.
type Money struct {
	// Currency is the ISO 4217 currency code (e.g., "BDT", "USD").
	Currency string `json:"currency"`

	// Amount is the numeric value.
	Amount float64 `json:"amount"`
}

// FareBrand is one branded fare offering attached to an itinerary.
// Brands may be present without a sellable total fare.
type FareBrand struct {
	// Name is the vendor's brand label (e.g., "Saver", "Flex").
	Name string `json:"brandName"`

	// Currency is the currency of the brand's total fare.
	Currency string `json:"currency"`

	// TotalFare is the brand's sellable total; nil when not offered.
	TotalFare *float64 `json:"totalFare"`
}

// PassengerFare is one per-passenger-type fare line on an itinerary.
type PassengerFare struct {
	// Type labels the fare line; "FARE" marks the reference fare.
	Type string `json:"type"`

	// Currency is the currency of this fare line.
	Currency string `json:"currency"`

	// Total is the fare amount for this line.
	Total float64 `json:"total"`
}

// Segment is one flown leg within an itinerary (single takeoff/landing pair).
// The upstream shape is only partially stable, so every field is optional
// and decoded defensively.
type Segment struct {
	// Airline is the IATA code of the marketing carrier.
	Airline string `json:"airline"`

	// OperatedBy is the IATA code of the operating carrier, when different.
	OperatedBy string `json:"operatedBy"`

	// FlightNumber is the carrier's flight number.
	FlightNumber string `json:"flightNumber"`

	// DepartureAirport and ArrivalAirport are IATA airport codes.
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`

	// DepartureTime and ArrivalTime are vendor-formatted timestamps.
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`

	// ElapsedMinutes is the flown time of this segment in minutes.
	ElapsedMinutes int `json:"elapsedTime"`

	// LayoverMinutes is the ground time before the next segment, in minutes.
	LayoverMinutes float64 `json:"layoverTime"`
}

// RawItinerary is one priced flight option as returned by the vendor search
// API. It is treated as read-only input and never mutated; derivation happens
// in the enrichment step.
type RawItinerary struct {
	// ResultID is the vendor's identifier for this result.
	ResultID string `json:"resultID"`

	// ValidatingCarrier is the IATA code of the ticketing airline.
	ValidatingCarrier string `json:"validatingCarrier"`

	// StopCount is the itinerary-level stop count, when provided.
	StopCount *int `json:"stopCount"`

	// TotalStops is the segment-derived total stop count, when provided.
	TotalStops *int `json:"totalStops"`

	// DurationLabel is a human journey duration like "1d 2h 30m",
	// used as a fallback when segment elapsed times are absent.
	DurationLabel string `json:"journeyDuration"`

	// TotalFare is the top-level fare, when provided.
	TotalFare *Money `json:"totalFare"`

	// FareBrands lists branded fare offerings.
	FareBrands []FareBrand `json:"fareBrands"`

	// PassengerFares lists per-passenger-type fare lines.
	PassengerFares []PassengerFare `json:"passengerFares"`

	// Directions groups segments per flight direction; the first direction
	// is the outbound journey.
	Directions [][]Segment `json:"directions"`
}

// Price is the canonical price derived for an itinerary.
// An undefined price has a NaN total and empty currency; such itineraries
// cannot be range-tested and are excluded from filtering.
type Price struct {
	// Currency is the ISO 4217 code, empty when undefined.
	Currency string `json:"currency"`

	// Total is the amount; NaN when undefined.
	Total float64 `json:"total"`
}

// Defined reports whether the price carries a usable finite total.
func (p Price) Defined() bool {
	return !math.IsNaN(p.Total) && !math.IsInf(p.Total, 0)
}

// UndefinedPrice is the sentinel for itineraries whose price could not be
// extracted by any strategy.
func UndefinedPrice() Price {
	return Price{Total: math.NaN()}
}

// EnrichedItinerary pairs a raw itinerary with the comparable scalar fields
// derived from it. The enriched set is recomputed in full whenever the raw
// result set changes; entries are never partially updated.
type EnrichedItinerary struct {
	// Itinerary is the raw upstream record.
	Itinerary RawItinerary `json:"itinerary"`

	// Price is the canonical price, preferring the target currency.
	Price Price `json:"price"`

	// DurationMinutes is the total journey duration in minutes.
	DurationMinutes int `json:"durationMinutes"`

	// Stops is the number of stops (0 = nonstop).
	Stops int `json:"stops"`

	// LayoverMinutes is the total ground time between segments in minutes.
	LayoverMinutes int `json:"layoverMinutes"`

	// AirlineCodes is the deduplicated set of operating and validating
	// carrier codes, sorted for determinism.
	AirlineCodes []string `json:"airlineCodes"`
}

// HasAirline reports whether the itinerary involves the given carrier code.
func (e EnrichedItinerary) HasAirline(code string) bool {
	for _, c := range e.AirlineCodes {
		if c == code {
			return true
		}
	}
	return false
}
