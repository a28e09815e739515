package usecase

import (
	"math"
	"sort"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// ComputeBounds derives the global extremes of an enriched result set:
// floor/ceil price bounds over the finite totals, the maximum layover in
// whole hours, and the per-carrier cheapest-price index.
//
// Behavior:
//   - Pure; the input is never mutated
//   - No finite price at all degenerates to the 1-unit range [0, 1]
//   - LayoverHourMax is never below 1
//   - The airline index is sorted ascending by price (ties by code)
func ComputeBounds(enriched []domain.EnrichedItinerary) domain.Bounds {
	priceMin := math.Inf(1)
	priceMax := math.Inf(-1)
	maxLayover := 0
	cheapest := make(map[string]float64)

	for _, e := range enriched {
		if e.LayoverMinutes > maxLayover {
			maxLayover = e.LayoverMinutes
		}
		if !e.Price.Defined() {
			continue
		}
		if e.Price.Total < priceMin {
			priceMin = e.Price.Total
		}
		if e.Price.Total > priceMax {
			priceMax = e.Price.Total
		}
		for _, code := range e.AirlineCodes {
			if known, ok := cheapest[code]; !ok || e.Price.Total < known {
				cheapest[code] = e.Price.Total
			}
		}
	}

	bounds := domain.Bounds{
		PriceMin:          0,
		PriceMax:          1,
		LayoverHourMax:    1,
		CheapestByAirline: airlineIndex(cheapest),
	}
	if !math.IsInf(priceMin, 1) {
		bounds.PriceMin = math.Floor(priceMin)
		bounds.PriceMax = math.Ceil(priceMax)
	}
	if hours := domain.LayoverHours(maxLayover); hours > 1 {
		bounds.LayoverHourMax = hours
	}
	return bounds
}

// airlineIndex flattens the cheapest-price map into a slice sorted
// ascending by price, breaking ties by carrier code.
func airlineIndex(cheapest map[string]float64) []domain.AirlinePrice {
	index := make([]domain.AirlinePrice, 0, len(cheapest))
	for code, price := range cheapest {
		index = append(index, domain.AirlinePrice{Code: code, Price: price})
	}
	sort.Slice(index, func(i, j int) bool {
		if index[i].Price != index[j].Price {
			return index[i].Price < index[j].Price
		}
		return index[i].Code < index[j].Code
	})
	return index
}
