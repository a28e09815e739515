package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapClassToCabinClass(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  CabinClass
	}{
		{name: "empty defaults to economy", label: "", want: CabinEconomy},
		{name: "economy label", label: "Economy", want: CabinEconomy},
		{name: "premium economy", label: "Premium Economy", want: CabinPremiumEconomy},
		{name: "premium shorthand", label: "premium", want: CabinPremiumEconomy},
		{name: "business", label: "Business", want: CabinBusiness},
		{name: "business uppercase", label: "BUSINESS", want: CabinBusiness},
		{name: "business class phrasing", label: "Business Class", want: CabinBusiness},
		{name: "first", label: "First", want: CabinFirst},
		{name: "first class lowercase", label: "first class", want: CabinFirst},
		{name: "unknown defaults to economy", label: "coach", want: CabinEconomy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapClassToCabinClass(tt.label))
		})
	}
}

func TestParseTripType(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  TripType
	}{
		{name: "empty defaults to one-way", label: "", want: TripOneWay},
		{name: "one way", label: "one way", want: TripOneWay},
		{name: "round trip", label: "round trip", want: TripRoundTrip},
		{name: "roundtrip compact", label: "roundtrip", want: TripRoundTrip},
		{name: "return phrasing", label: "Return", want: TripRoundTrip},
		{name: "multi city", label: "Multi City", want: TripMultiCity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTripType(tt.label))
		})
	}
}

func oneWayCriteria() SearchCriteria {
	return SearchCriteria{
		TripType: TripOneWay,
		OriginDestinationOptions: []OriginDestinationOption{
			{DepartureAirport: "DAC", ArrivalAirport: "CXB", FlyDate: "2025-09-21"},
		},
		Passengers: []PassengerQuantity{{PassengerType: PassengerAdult, Quantity: 1}},
		CabinClass: CabinEconomy,
		APIID:      1,
	}
}

func roundTripCriteria() SearchCriteria {
	c := oneWayCriteria()
	c.TripType = TripRoundTrip
	c.OriginDestinationOptions = append(c.OriginDestinationOptions, OriginDestinationOption{
		DepartureAirport: "CXB", ArrivalAirport: "DAC", FlyDate: "2025-09-28",
	})
	return c
}

func TestSearchCriteriaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchCriteria)
		wantErr bool
	}{
		{name: "valid one-way", mutate: func(c *SearchCriteria) {}, wantErr: false},
		{
			name: "one-way with two legs",
			mutate: func(c *SearchCriteria) {
				c.OriginDestinationOptions = append(c.OriginDestinationOptions, c.OriginDestinationOptions[0])
			},
			wantErr: true,
		},
		{
			name:    "lowercase airport code",
			mutate:  func(c *SearchCriteria) { c.OriginDestinationOptions[0].DepartureAirport = "dac" },
			wantErr: true,
		},
		{
			name:    "malformed date",
			mutate:  func(c *SearchCriteria) { c.OriginDestinationOptions[0].FlyDate = "21-09-2025" },
			wantErr: true,
		},
		{
			name:    "impossible date",
			mutate:  func(c *SearchCriteria) { c.OriginDestinationOptions[0].FlyDate = "2025-02-30" },
			wantErr: true,
		},
		{
			name:    "negative passenger quantity",
			mutate:  func(c *SearchCriteria) { c.Passengers[0].Quantity = -1 },
			wantErr: true,
		},
		{
			name:    "unknown trip type",
			mutate:  func(c *SearchCriteria) { c.TripType = "Charter" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := oneWayCriteria()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchCriteriaValidateRoundTrip(t *testing.T) {
	t.Run("valid round trip", func(t *testing.T) {
		c := roundTripCriteria()
		assert.NoError(t, c.Validate())
	})

	t.Run("return leg not reversed", func(t *testing.T) {
		c := roundTripCriteria()
		c.OriginDestinationOptions[1].ArrivalAirport = "CGP"
		err := c.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("round trip with one leg", func(t *testing.T) {
		c := roundTripCriteria()
		c.OriginDestinationOptions = c.OriginDestinationOptions[:1]
		assert.Error(t, c.Validate())
	})
}

func TestShiftedDeparture(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantDate string
	}{
		{name: "plus one day", days: 1, wantDate: "2025-09-22"},
		{name: "minus one day", days: -1, wantDate: "2025-09-20"},
		{name: "crosses month boundary", days: 10, wantDate: "2025-10-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := roundTripCriteria()
			shifted, err := original.ShiftedDeparture(tt.days)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDate, shifted.OriginDestinationOptions[0].FlyDate)

			// Every other field carries over unchanged.
			assert.Equal(t, original.OriginDestinationOptions[1], shifted.OriginDestinationOptions[1])
			assert.Equal(t, original.Passengers, shifted.Passengers)
			assert.Equal(t, original.CabinClass, shifted.CabinClass)
			assert.Equal(t, original.APIID, shifted.APIID)

			// The original snapshot is untouched.
			assert.Equal(t, "2025-09-21", original.OriginDestinationOptions[0].FlyDate)
		})
	}
}

func TestShiftedReturn(t *testing.T) {
	t.Run("shifts only the return leg", func(t *testing.T) {
		original := roundTripCriteria()
		shifted, err := original.ShiftedReturn(1)
		require.NoError(t, err)

		assert.Equal(t, "2025-09-29", shifted.OriginDestinationOptions[1].FlyDate)
		assert.Equal(t, "2025-09-21", shifted.OriginDestinationOptions[0].FlyDate)
	})

	t.Run("rejected for one-way", func(t *testing.T) {
		c := oneWayCriteria()
		_, err := c.ShiftedReturn(1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestClone(t *testing.T) {
	original := roundTripCriteria()
	clone := original.Clone()

	clone.OriginDestinationOptions[0].FlyDate = "2030-01-01"
	clone.Passengers[0].Quantity = 9

	assert.Equal(t, "2025-09-21", original.OriginDestinationOptions[0].FlyDate)
	assert.Equal(t, 1, original.Passengers[0].Quantity)
}
