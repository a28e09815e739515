package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  SortKey
	}{
		{name: "cheapest", input: "cheapest", want: SortCheapest},
		{name: "fastest", input: "fastest", want: SortFastest},
		{name: "best", input: "best", want: SortBest},
		{name: "reserved key is kept", input: "earlyDeparture", want: SortEarlyDeparture},
		{name: "empty defaults to best", input: "", want: SortBest},
		{name: "unknown defaults to best", input: "shiniest", want: SortBest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSortKey(tt.input))
		})
	}
}

func TestStopBucketsAllows(t *testing.T) {
	tests := []struct {
		name    string
		buckets StopBuckets
		stops   int
		want    bool
	}{
		{name: "nonstop enabled", buckets: StopBuckets{Nonstop: true}, stops: 0, want: true},
		{name: "nonstop disabled", buckets: StopBuckets{One: true, TwoPlus: true}, stops: 0, want: false},
		{name: "one stop enabled", buckets: StopBuckets{One: true}, stops: 1, want: true},
		{name: "one stop disabled", buckets: StopBuckets{Nonstop: true}, stops: 1, want: false},
		{name: "two stops in twoPlus", buckets: StopBuckets{TwoPlus: true}, stops: 2, want: true},
		{name: "three stops in twoPlus", buckets: StopBuckets{TwoPlus: true}, stops: 3, want: true},
		{name: "twoPlus disabled", buckets: StopBuckets{Nonstop: true, One: true}, stops: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.buckets.Allows(tt.stops))
		})
	}
}

func TestFilterStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   FilterState
		wantErr bool
	}{
		{
			name: "valid ranges",
			state: FilterState{
				PriceRange:       PriceRange{Min: 100, Max: 200},
				LayoverHourRange: HourRange{Min: 0, Max: 5},
			},
			wantErr: false,
		},
		{
			name: "inverted price range",
			state: FilterState{
				PriceRange:       PriceRange{Min: 300, Max: 200},
				LayoverHourRange: HourRange{Min: 0, Max: 5},
			},
			wantErr: true,
		},
		{
			name: "inverted layover range",
			state: FilterState{
				PriceRange:       PriceRange{Min: 100, Max: 200},
				LayoverHourRange: HourRange{Min: 6, Max: 5},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultFilterState(t *testing.T) {
	bounds := Bounds{PriceMin: 8650, PriceMax: 10700, LayoverHourMax: 3}

	state := DefaultFilterState(bounds)

	assert.Equal(t, PriceRange{Min: 8650, Max: 10700}, state.PriceRange)
	assert.Equal(t, HourRange{Min: 0, Max: 3}, state.LayoverHourRange)
	assert.Equal(t, StopBuckets{Nonstop: true, One: true, TwoPlus: true}, state.StopBuckets)
	assert.Empty(t, state.SelectedAirlines)
}

func TestLayoverHours(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{name: "zero", minutes: 0, want: 0},
		{name: "negative treated as zero", minutes: -10, want: 0},
		{name: "under an hour rounds up", minutes: 30, want: 1},
		{name: "exactly one hour", minutes: 60, want: 1},
		{name: "just over an hour", minutes: 61, want: 2},
		{name: "several hours", minutes: 150, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LayoverHours(tt.minutes))
		})
	}
}

func TestBoundsEqual(t *testing.T) {
	base := Bounds{PriceMin: 100, PriceMax: 200, LayoverHourMax: 2}

	assert.True(t, base.Equal(Bounds{PriceMin: 100, PriceMax: 200, LayoverHourMax: 2}))
	assert.False(t, base.Equal(Bounds{PriceMin: 100, PriceMax: 250, LayoverHourMax: 2}))
	assert.False(t, base.Equal(Bounds{PriceMin: 100, PriceMax: 200, LayoverHourMax: 3}))

	// The airline index is display-only and does not affect equality.
	withIndex := base
	withIndex.CheapestByAirline = []AirlinePrice{{Code: "BG", Price: 100}}
	assert.True(t, base.Equal(withIndex))
}

func TestAirlineSet(t *testing.T) {
	t.Run("empty selection yields nil set", func(t *testing.T) {
		f := FilterState{}
		assert.Nil(t, f.AirlineSet())
	})

	t.Run("codes are upper-cased", func(t *testing.T) {
		f := FilterState{SelectedAirlines: []string{"bg", "BS"}}
		set := f.AirlineSet()
		_, hasBG := set["BG"]
		_, hasBS := set["BS"]
		assert.True(t, hasBG)
		assert.True(t, hasBS)
	})
}
