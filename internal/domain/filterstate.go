package domain

import (
	"fmt"
	"math"
	"strings"
)

// SortKey defines the available result orderings.
type SortKey string

// Sort keys. Only best, cheapest, and fastest have defined comparators;
// the remaining keys are reserved and fall back to best's comparator.
const (
	SortBest           SortKey = "best"
	SortCheapest       SortKey = "cheapest"
	SortFastest        SortKey = "fastest"
	SortEarliest       SortKey = "earliest"
	SortEarlyDeparture SortKey = "earlyDeparture"
	SortLateDeparture  SortKey = "lateDeparture"
	SortEarlyArrival   SortKey = "earlyArrival"
	SortLateArrival    SortKey = "lateArrival"
)

// IsValid checks if the sort key is a known value.
func (k SortKey) IsValid() bool {
	switch k {
	case SortBest, SortCheapest, SortFastest, SortEarliest,
		SortEarlyDeparture, SortLateDeparture, SortEarlyArrival, SortLateArrival:
		return true
	default:
		return false
	}
}

// ParseSortKey converts a string to a SortKey.
// Returns SortBest if the string is empty or unknown.
func ParseSortKey(s string) SortKey {
	key := SortKey(s)
	if key.IsValid() {
		return key
	}
	return SortBest
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls within the range, inclusive.
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// HourRange is an inclusive whole-hour interval.
type HourRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether h falls within the range, inclusive.
func (r HourRange) Contains(h int) bool {
	return h >= r.Min && h <= r.Max
}

// StopBuckets enables or disables result buckets by stop count.
type StopBuckets struct {
	// Nonstop keeps itineraries with 0 stops.
	Nonstop bool `json:"nonstop"`

	// One keeps itineraries with exactly 1 stop.
	One bool `json:"one"`

	// TwoPlus keeps itineraries with 2 or more stops.
	TwoPlus bool `json:"twoPlus"`
}

// Allows reports whether an itinerary with the given stop count falls into
// an enabled bucket.
func (b StopBuckets) Allows(stops int) bool {
	switch {
	case stops == 0:
		return b.Nonstop
	case stops == 1:
		return b.One
	default:
		return b.TwoPlus
	}
}

// FilterState is the user-adjustable filter configuration applied to the
// enriched result set. Ranges reset to freshly computed global bounds
// whenever a new search's bounds differ from the previous ones.
type FilterState struct {
	// PriceRange keeps itineraries whose price falls inside it.
	PriceRange PriceRange `json:"priceRange"`

	// LayoverHourRange keeps itineraries whose total layover, rounded up
	// to whole hours, falls inside it.
	LayoverHourRange HourRange `json:"layoverHourRange"`

	// StopBuckets keeps itineraries whose stop bucket is enabled.
	StopBuckets StopBuckets `json:"stopBuckets"`

	// SelectedAirlines, when non-empty, keeps only itineraries involving
	// at least one selected carrier code.
	SelectedAirlines []string `json:"selectedAirlines,omitempty"`
}

// Validate checks the min<=max invariants of both ranges.
func (f *FilterState) Validate() error {
	if f.PriceRange.Min > f.PriceRange.Max {
		return fmt.Errorf("%w: price range min %.2f exceeds max %.2f", ErrValidation, f.PriceRange.Min, f.PriceRange.Max)
	}
	if f.LayoverHourRange.Min > f.LayoverHourRange.Max {
		return fmt.Errorf("%w: layover hour range min %d exceeds max %d", ErrValidation, f.LayoverHourRange.Min, f.LayoverHourRange.Max)
	}
	return nil
}

// AirlineSet builds a case-insensitive lookup set of the selected airlines.
func (f *FilterState) AirlineSet() map[string]struct{} {
	if len(f.SelectedAirlines) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(f.SelectedAirlines))
	for _, code := range f.SelectedAirlines {
		set[strings.ToUpper(code)] = struct{}{}
	}
	return set
}

// AirlinePrice is the cheapest known price for one carrier code.
type AirlinePrice struct {
	// Code is the IATA carrier code.
	Code string `json:"code"`

	// Price is the cheapest finite price involving this carrier.
	Price float64 `json:"price"`
}

// Bounds holds the global extremes of an enriched result set. They seed the
// filter defaults after every successful search.
type Bounds struct {
	// PriceMin is the floor of the lowest finite price.
	PriceMin float64 `json:"priceMin"`

	// PriceMax is the ceiling of the highest finite price.
	PriceMax float64 `json:"priceMax"`

	// LayoverHourMax is the ceiling of the longest layover in hours, at least 1.
	LayoverHourMax int `json:"layoverHourMax"`

	// CheapestByAirline is the per-carrier cheapest price index, ascending
	// by price. Display only; it does not feed the filter predicate.
	CheapestByAirline []AirlinePrice `json:"cheapestByAirline"`
}

// Equal reports whether two bounds cover the same ranges.
// The airline index is display-only and does not participate.
func (b Bounds) Equal(other Bounds) bool {
	return b.PriceMin == other.PriceMin &&
		b.PriceMax == other.PriceMax &&
		b.LayoverHourMax == other.LayoverHourMax
}

// DefaultFilterState builds a filter state that shows everything currently
// available under the given bounds: full price range, full layover range,
// all stop buckets enabled, no airline selection.
func DefaultFilterState(b Bounds) FilterState {
	return FilterState{
		PriceRange:       PriceRange{Min: b.PriceMin, Max: b.PriceMax},
		LayoverHourRange: HourRange{Min: 0, Max: b.LayoverHourMax},
		StopBuckets:      StopBuckets{Nonstop: true, One: true, TwoPlus: true},
	}
}

// LayoverHours converts layover minutes to whole hours, rounding up.
func LayoverHours(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(float64(minutes) / 60.0))
}
