package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TripType identifies the journey shape of a search.
type TripType string

// Supported trip types.
const (
	TripOneWay    TripType = "OneWay"
	TripRoundTrip TripType = "RoundTrip"
	TripMultiCity TripType = "MultiCity"
)

// CabinClass is the service tier requested for a search.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy        CabinClass = "Economy"
	CabinPremiumEconomy CabinClass = "PremiumEconomy"
	CabinBusiness       CabinClass = "Business"
	CabinFirst          CabinClass = "First"
)

// PassengerType identifies a traveller category.
type PassengerType string

// Supported passenger types.
const (
	PassengerAdult  PassengerType = "Adult"
	PassengerChild  PassengerType = "Child"
	PassengerInfant PassengerType = "Infant"
)

// PassengerQuantity is the number of travellers of one type.
type PassengerQuantity struct {
	PassengerType PassengerType `json:"passengerType"`
	Quantity      int           `json:"quantity"`
}

// OriginDestinationOption is one leg request within a search:
// where to fly from, where to, and on what date.
type OriginDestinationOption struct {
	// DepartureAirport is the IATA code of the departure airport (e.g., "DAC").
	DepartureAirport string `json:"departureAirport"`

	// ArrivalAirport is the IATA code of the arrival airport (e.g., "CXB").
	ArrivalAirport string `json:"arrivalAirport"`

	// FlyDate is the desired travel date in YYYY-MM-DD format.
	FlyDate string `json:"flyDate"`
}

// SearchCriteria is the normalized request body sent to the vendor search
// endpoint. It is kept as an immutable snapshot after each successful search
// so date-shift re-searches can reuse unspecified fields.
type SearchCriteria struct {
	// TripType is the journey shape (one-way, round-trip, multi-city).
	TripType TripType `json:"tripType"`

	// OriginDestinationOptions is the ordered list of leg requests.
	// Exactly 1 entry for one-way; 2 for round-trip, where the second
	// entry's airports are the reverse of the first.
	OriginDestinationOptions []OriginDestinationOption `json:"originDestinationOptions"`

	// Passengers lists traveller quantities per passenger type.
	Passengers []PassengerQuantity `json:"passengers"`

	// CabinClass is the requested service tier.
	CabinClass CabinClass `json:"cabinClass"`

	// PreferredAirline optionally restricts results to one carrier.
	PreferredAirline string `json:"preferredAirline,omitempty"`

	// APIID selects the upstream vendor API variant.
	APIID int `json:"apiId"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidAirportCode reports whether code is a well-formed 3-letter IATA code.
func ValidAirportCode(code string) bool {
	return airportCodeRegex.MatchString(code)
}

// ValidDate reports whether date is a well-formed, parseable YYYY-MM-DD date.
func ValidDate(date string) bool {
	if !dateRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// Validate checks the structural invariants of the criteria.
// Returns a wrapped ErrValidation error on the first violation.
func (c *SearchCriteria) Validate() error {
	switch c.TripType {
	case TripOneWay:
		if len(c.OriginDestinationOptions) != 1 {
			return fmt.Errorf("%w: one-way search requires exactly 1 leg, got %d", ErrValidation, len(c.OriginDestinationOptions))
		}
	case TripRoundTrip:
		if len(c.OriginDestinationOptions) != 2 {
			return fmt.Errorf("%w: round-trip search requires exactly 2 legs, got %d", ErrValidation, len(c.OriginDestinationOptions))
		}
		out, back := c.OriginDestinationOptions[0], c.OriginDestinationOptions[1]
		if out.DepartureAirport != back.ArrivalAirport || out.ArrivalAirport != back.DepartureAirport {
			return fmt.Errorf("%w: return leg airports must be the reverse of the outbound leg", ErrValidation)
		}
	case TripMultiCity:
		if len(c.OriginDestinationOptions) < 1 {
			return fmt.Errorf("%w: multi-city search requires at least 1 leg", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown trip type %q", ErrValidation, c.TripType)
	}

	for i, leg := range c.OriginDestinationOptions {
		if !ValidAirportCode(leg.DepartureAirport) {
			return fmt.Errorf("%w: leg %d departure airport must be a 3-letter IATA code, got %q", ErrValidation, i, leg.DepartureAirport)
		}
		if !ValidAirportCode(leg.ArrivalAirport) {
			return fmt.Errorf("%w: leg %d arrival airport must be a 3-letter IATA code, got %q", ErrValidation, i, leg.ArrivalAirport)
		}
		if !ValidDate(leg.FlyDate) {
			return fmt.Errorf("%w: leg %d fly date must be YYYY-MM-DD, got %q", ErrValidation, i, leg.FlyDate)
		}
	}

	for _, p := range c.Passengers {
		if p.Quantity < 0 {
			return fmt.Errorf("%w: %s quantity must be non-negative, got %d", ErrValidation, p.PassengerType, p.Quantity)
		}
	}

	return nil
}

// Clone returns a deep copy of the criteria. Snapshots are never mutated;
// derived criteria (date shifts) are built on a clone.
func (c SearchCriteria) Clone() SearchCriteria {
	out := c
	out.OriginDestinationOptions = make([]OriginDestinationOption, len(c.OriginDestinationOptions))
	copy(out.OriginDestinationOptions, c.OriginDestinationOptions)
	out.Passengers = make([]PassengerQuantity, len(c.Passengers))
	copy(out.Passengers, c.Passengers)
	return out
}

// ShiftedDeparture returns a copy of the criteria with only the outbound
// leg's date moved by the given number of days. All other fields are
// carried over unchanged.
func (c SearchCriteria) ShiftedDeparture(days int) (SearchCriteria, error) {
	return c.shiftLeg(0, days)
}

// ShiftedReturn returns a copy of the criteria with only the return leg's
// date moved by the given number of days. Only valid for round trips.
func (c SearchCriteria) ShiftedReturn(days int) (SearchCriteria, error) {
	if c.TripType != TripRoundTrip {
		return SearchCriteria{}, fmt.Errorf("%w: return date shift requires a round-trip search", ErrValidation)
	}
	return c.shiftLeg(1, days)
}

// shiftLeg rebuilds the criteria with leg i's date moved by days.
func (c SearchCriteria) shiftLeg(i, days int) (SearchCriteria, error) {
	if i >= len(c.OriginDestinationOptions) {
		return SearchCriteria{}, fmt.Errorf("%w: no leg %d in criteria", ErrValidation, i)
	}
	shifted, err := shiftDate(c.OriginDestinationOptions[i].FlyDate, days)
	if err != nil {
		return SearchCriteria{}, err
	}
	out := c.Clone()
	out.OriginDestinationOptions[i].FlyDate = shifted
	return out, nil
}

// shiftDate moves a YYYY-MM-DD date by the given number of days.
func shiftDate(date string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%w: cannot shift malformed date %q", ErrValidation, date)
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}

// MapClassToCabinClass maps a human cabin label to a CabinClass using
// case-insensitive substring matching. Unrecognized or empty labels
// default to economy.
func MapClassToCabinClass(label string) CabinClass {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "business"):
		return CabinBusiness
	case strings.Contains(l, "first"):
		return CabinFirst
	case strings.Contains(l, "premium"):
		return CabinPremiumEconomy
	default:
		return CabinEconomy
	}
}

// ParseTripType maps a human trip-type label to a TripType.
// Unrecognized or empty labels default to one-way.
func ParseTripType(label string) TripType {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "round"), strings.Contains(l, "return"):
		return TripRoundTrip
	case strings.Contains(l, "multi"):
		return TripMultiCity
	default:
		return TripOneWay
	}
}
