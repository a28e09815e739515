// Package usecase implements the search result pipeline: request
// orchestration, itinerary enrichment, bounds derivation, and the
// deterministic filter/sort view.
package usecase

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// Enrich derives the comparable scalar fields for every raw itinerary:
// canonical price (preferring the target currency), total duration, stop
// count, total layover, and the carrier code set.
//
// Behavior:
//   - Pure and deterministic; the raw input is never mutated
//   - Re-run in full on every new raw result set (no incremental update)
//   - Itineraries whose price cannot be extracted get an undefined price
//     and are later excluded from filtering
func Enrich(raw []domain.RawItinerary, targetCurrency string) []domain.EnrichedItinerary {
	result := make([]domain.EnrichedItinerary, len(raw))
	for i, it := range raw {
		result[i] = domain.EnrichedItinerary{
			Itinerary:       it,
			Price:           PickPrice(it, targetCurrency),
			DurationMinutes: durationMinutes(it),
			Stops:           stopCount(it),
			LayoverMinutes:  layoverMinutes(it),
			AirlineCodes:    airlineCodes(it),
		}
	}
	return result
}

// priceExtractor tries to derive a price from a raw itinerary.
// It returns ok=false when the strategy does not apply.
type priceExtractor func(it domain.RawItinerary, target string) (domain.Price, bool)

// priceExtractors are tried in priority order; the first defined result wins.
var priceExtractors = []priceExtractor{
	brandFarePrice,
	referenceFarePrice,
	totalFarePrice,
}

// PickPrice extracts the canonical price for an itinerary.
//
// Priority order, first match wins:
//  1. a fare brand in the target currency with a non-nil total fare
//  2. a passenger reference fare ("FARE" line, case-insensitive) in the
//     target currency
//  3. the top-level total fare with its own currency
//
// If no strategy applies, the price is undefined (NaN total, empty currency).
func PickPrice(it domain.RawItinerary, targetCurrency string) domain.Price {
	for _, extract := range priceExtractors {
		if price, ok := extract(it, targetCurrency); ok {
			return price
		}
	}
	return domain.UndefinedPrice()
}

// brandFarePrice matches a fare brand in the target currency with a
// sellable total.
func brandFarePrice(it domain.RawItinerary, target string) (domain.Price, bool) {
	for _, brand := range it.FareBrands {
		if brand.Currency == target && brand.TotalFare != nil {
			return domain.Price{Currency: brand.Currency, Total: *brand.TotalFare}, true
		}
	}
	return domain.Price{}, false
}

// referenceFarePrice matches a passenger fare line of type FARE
// (case-insensitive) in the target currency.
func referenceFarePrice(it domain.RawItinerary, target string) (domain.Price, bool) {
	for _, fare := range it.PassengerFares {
		if fare.Currency == target && strings.EqualFold(fare.Type, "FARE") {
			return domain.Price{Currency: fare.Currency, Total: fare.Total}, true
		}
	}
	return domain.Price{}, false
}

// totalFarePrice falls back to the itinerary's top-level total fare.
func totalFarePrice(it domain.RawItinerary, _ string) (domain.Price, bool) {
	if it.TotalFare == nil {
		return domain.Price{}, false
	}
	return domain.Price{Currency: it.TotalFare.Currency, Total: it.TotalFare.Amount}, true
}

// durationLabelRegex captures the optional day, hour, and minute components
// of labels like "1d 2h 30m".
var durationLabelRegex = regexp.MustCompile(`^\s*(?:(\d+)d)?\s*(?:(\d+)h)?\s*(?:(\d+)m)?\s*$`)

// durationMinutes sums the elapsed minutes of the first flight direction.
// When that sum is zero or segments are absent, it falls back to parsing
// the human duration label.
func durationMinutes(it domain.RawItinerary) int {
	total := 0
	if len(it.Directions) > 0 {
		for _, seg := range it.Directions[0] {
			total += seg.ElapsedMinutes
		}
	}
	if total > 0 {
		return total
	}
	return ParseDurationLabel(it.DurationLabel)
}

// ParseDurationLabel parses a "<d>d <h>h <m>m" label into total minutes.
// Each component is optional and defaults to 0; malformed or empty labels
// yield 0.
func ParseDurationLabel(label string) int {
	m := durationLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	mins := atoiOrZero(m[3])
	return days*24*60 + hours*60 + mins
}

// atoiOrZero converts a captured digit group, treating absence as 0.
func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// stopCount prefers the itinerary-level stop count, then the
// segment-derived total stops, then 0.
func stopCount(it domain.RawItinerary) int {
	if it.StopCount != nil {
		return *it.StopCount
	}
	if it.TotalStops != nil {
		return *it.TotalStops
	}
	return 0
}

// layoverMinutes sums the layover minutes of every segment.
// Non-finite values are treated as 0.
func layoverMinutes(it domain.RawItinerary) int {
	total := 0.0
	for _, dir := range it.Directions {
		for _, seg := range dir {
			v := seg.LayoverMinutes
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			total += v
		}
	}
	return int(total)
}

// airlineCodes unions the validating carrier code with every segment's
// marketing and operating carrier codes, deduplicated and sorted.
func airlineCodes(it domain.RawItinerary) []string {
	set := make(map[string]struct{})
	add := func(code string) {
		code = strings.TrimSpace(code)
		if code != "" {
			set[code] = struct{}{}
		}
	}

	add(it.ValidatingCarrier)
	for _, dir := range it.Directions {
		for _, seg := range dir {
			add(seg.Airline)
			add(seg.OperatedBy)
		}
	}

	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
