// Package testutil provides shared builders and helpers for unit and
// integration tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// ItineraryBuilder assembles raw itineraries for tests with the builder
// pattern, so scenarios read as data instead of struct literals.
type ItineraryBuilder struct {
	it domain.RawItinerary
}

// NewItinerary starts a builder for a raw itinerary with the given result ID.
func NewItinerary(id string) *ItineraryBuilder {
	return &ItineraryBuilder{it: domain.RawItinerary{ResultID: id}}
}

// WithValidatingCarrier sets the ticketing airline code.
func (b *ItineraryBuilder) WithValidatingCarrier(code string) *ItineraryBuilder {
	b.it.ValidatingCarrier = code
	return b
}

// WithBrandFare appends a branded fare offering.
func (b *ItineraryBuilder) WithBrandFare(name, currency string, total float64) *ItineraryBuilder {
	b.it.FareBrands = append(b.it.FareBrands, domain.FareBrand{
		Name: name, Currency: currency, TotalFare: &total,
	})
	return b
}

// WithPassengerFare appends a per-passenger-type fare line.
func (b *ItineraryBuilder) WithPassengerFare(fareType, currency string, total float64) *ItineraryBuilder {
	b.it.PassengerFares = append(b.it.PassengerFares, domain.PassengerFare{
		Type: fareType, Currency: currency, Total: total,
	})
	return b
}

// WithTotalFare sets the top-level fare.
func (b *ItineraryBuilder) WithTotalFare(currency string, amount float64) *ItineraryBuilder {
	b.it.TotalFare = &domain.Money{Currency: currency, Amount: amount}
	return b
}

// WithStops sets the itinerary-level stop count.
func (b *ItineraryBuilder) WithStops(n int) *ItineraryBuilder {
	b.it.StopCount = &n
	return b
}

// WithDurationLabel sets the human journey duration label.
func (b *ItineraryBuilder) WithDurationLabel(label string) *ItineraryBuilder {
	b.it.DurationLabel = label
	return b
}

// WithDirection appends one flight direction made of the given segments.
func (b *ItineraryBuilder) WithDirection(segments ...domain.Segment) *ItineraryBuilder {
	b.it.Directions = append(b.it.Directions, segments)
	return b
}

// Build returns the assembled raw itinerary.
func (b *ItineraryBuilder) Build() domain.RawItinerary {
	return b.it
}

// Segment builds a segment with the fields most tests care about.
func Segment(airline string, elapsedMinutes int, layoverMinutes float64) domain.Segment {
	return domain.Segment{
		Airline:        airline,
		ElapsedMinutes: elapsedMinutes,
		LayoverMinutes: layoverMinutes,
	}
}

// DhakaCoxsBazarPair is the canonical two-result fixture: a cheap fast
// nonstop and a pricier one-stop on the DAC-CXB route.
func DhakaCoxsBazarPair() []domain.RawItinerary {
	return []domain.RawItinerary{
		NewItinerary("nonstop-bg").
			WithValidatingCarrier("BG").
			WithBrandFare("Basic", "BDT", 8650).
			WithStops(0).
			WithDirection(Segment("BG", 75, 0)).
			Build(),
		NewItinerary("onestop-bs").
			WithValidatingCarrier("BS").
			WithBrandFare("Basic", "BDT", 10700).
			WithStops(1).
			WithDirection(Segment("BS", 70, 55), Segment("BS", 60, 0)).
			Build(),
	}
}

// MustMarshal marshals v or fails the test.
func MustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

// MustUnmarshal unmarshals data into v or fails the test.
func MustUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}
