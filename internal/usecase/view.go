package usecase

import (
	"sort"
	"strings"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// Composite score weights for the "best" ordering. Stops dominate, then
// duration, then price as the tie-break.
const (
	bestWeightDuration = 500
	bestWeightStops    = 100000
)

// View computes the filtered, sorted presentation of the enriched set.
//
// Behavior:
//   - Pure and deterministic; identical inputs yield identical output
//   - Filtering is applied before sorting
//   - The sort is stable: ties retain encounter order
//   - Itineraries with an undefined price are always excluded, since they
//     cannot be range-tested
//   - Reserved sort keys fall back to the best comparator
func View(enriched []domain.EnrichedItinerary, filters domain.FilterState, key domain.SortKey) []domain.EnrichedItinerary {
	airlineSet := filters.AirlineSet()

	result := make([]domain.EnrichedItinerary, 0, len(enriched))
	for _, e := range enriched {
		if keeps(e, filters, airlineSet) {
			result = append(result, e)
		}
	}

	sort.SliceStable(result, comparator(result, key))
	return result
}

// keeps is the per-itinerary keep predicate; every check must pass.
func keeps(e domain.EnrichedItinerary, filters domain.FilterState, airlineSet map[string]struct{}) bool {
	if !e.Price.Defined() || !filters.PriceRange.Contains(e.Price.Total) {
		return false
	}
	if !filters.StopBuckets.Allows(e.Stops) {
		return false
	}
	if !filters.LayoverHourRange.Contains(domain.LayoverHours(e.LayoverMinutes)) {
		return false
	}
	if airlineSet != nil && !hasSelectedAirline(e, airlineSet) {
		return false
	}
	return true
}

// hasSelectedAirline reports whether at least one of the itinerary's
// carrier codes is in the selection (case-insensitive).
func hasSelectedAirline(e domain.EnrichedItinerary, set map[string]struct{}) bool {
	for _, code := range e.AirlineCodes {
		if _, ok := set[strings.ToUpper(code)]; ok {
			return true
		}
	}
	return false
}

// comparator returns the less function for the given sort key.
func comparator(items []domain.EnrichedItinerary, key domain.SortKey) func(i, j int) bool {
	switch key {
	case domain.SortCheapest:
		return func(i, j int) bool {
			return items[i].Price.Total < items[j].Price.Total
		}
	case domain.SortFastest:
		return func(i, j int) bool {
			return items[i].DurationMinutes < items[j].DurationMinutes
		}
	default:
		// SortBest, plus the reserved keys pending defined comparators.
		return func(i, j int) bool {
			return bestScore(items[i]) < bestScore(items[j])
		}
	}
}

// bestScore is the composite ordering score for the "best" sort:
// price + duration*500 + stops*100000, ascending.
func bestScore(e domain.EnrichedItinerary) float64 {
	return e.Price.Total +
		float64(e.DurationMinutes)*bestWeightDuration +
		float64(e.Stops)*bestWeightStops
}
