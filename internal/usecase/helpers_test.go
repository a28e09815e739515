package usecase

import (
	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// fptr returns a pointer to the given float.
func fptr(v float64) *float64 { return &v }

// iptr returns a pointer to the given int.
func iptr(v int) *int { return &v }

// rawBuilder assembles raw itineraries for enrichment tests.
type rawBuilder struct {
	it domain.RawItinerary
}

func newRaw(id string) *rawBuilder {
	return &rawBuilder{it: domain.RawItinerary{ResultID: id}}
}

func (b *rawBuilder) validating(code string) *rawBuilder {
	b.it.ValidatingCarrier = code
	return b
}

func (b *rawBuilder) brand(name, currency string, total *float64) *rawBuilder {
	b.it.FareBrands = append(b.it.FareBrands, domain.FareBrand{
		Name: name, Currency: currency, TotalFare: total,
	})
	return b
}

func (b *rawBuilder) passengerFare(fareType, currency string, total float64) *rawBuilder {
	b.it.PassengerFares = append(b.it.PassengerFares, domain.PassengerFare{
		Type: fareType, Currency: currency, Total: total,
	})
	return b
}

func (b *rawBuilder) totalFare(currency string, amount float64) *rawBuilder {
	b.it.TotalFare = &domain.Money{Currency: currency, Amount: amount}
	return b
}

func (b *rawBuilder) stops(n int) *rawBuilder {
	b.it.StopCount = iptr(n)
	return b
}

func (b *rawBuilder) totalStops(n int) *rawBuilder {
	b.it.TotalStops = iptr(n)
	return b
}

func (b *rawBuilder) durationLabel(label string) *rawBuilder {
	b.it.DurationLabel = label
	return b
}

func (b *rawBuilder) direction(segments ...domain.Segment) *rawBuilder {
	b.it.Directions = append(b.it.Directions, segments)
	return b
}

func (b *rawBuilder) build() domain.RawItinerary { return b.it }

// seg is shorthand for a segment with the fields these tests care about.
func seg(airline string, elapsed int, layover float64) domain.Segment {
	return domain.Segment{Airline: airline, ElapsedMinutes: elapsed, LayoverMinutes: layover}
}

// enrichedItem assembles an already-enriched itinerary for view and
// bounds tests.
func enrichedItem(id string, price float64, duration, stops, layover int, airlines ...string) domain.EnrichedItinerary {
	return domain.EnrichedItinerary{
		Itinerary:       domain.RawItinerary{ResultID: id},
		Price:           domain.Price{Currency: "BDT", Total: price},
		DurationMinutes: duration,
		Stops:           stops,
		LayoverMinutes:  layover,
		AirlineCodes:    airlines,
	}
}

// unpricedItem is an enriched itinerary whose price extraction failed.
func unpricedItem(id string) domain.EnrichedItinerary {
	return domain.EnrichedItinerary{
		Itinerary: domain.RawItinerary{ResultID: id},
		Price:     domain.UndefinedPrice(),
	}
}

// ids projects a result list onto its result identifiers.
func ids(items []domain.EnrichedItinerary) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Itinerary.ResultID
	}
	return out
}
