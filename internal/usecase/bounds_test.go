package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

func TestComputeBounds(t *testing.T) {
	t.Run("floor and ceil of the finite price extremes", func(t *testing.T) {
		bounds := ComputeBounds([]domain.EnrichedItinerary{
			enrichedItem("a", 8650.4, 75, 0, 0, "BG"),
			enrichedItem("b", 10700.6, 130, 1, 55, "BS"),
			unpricedItem("c"),
		})

		assert.Equal(t, float64(8650), bounds.PriceMin)
		assert.Equal(t, float64(10701), bounds.PriceMax)
	})

	t.Run("no finite price degenerates to unit range", func(t *testing.T) {
		bounds := ComputeBounds([]domain.EnrichedItinerary{unpricedItem("a")})

		assert.Equal(t, float64(0), bounds.PriceMin)
		assert.Equal(t, float64(1), bounds.PriceMax)
	})

	t.Run("empty input degenerates to unit range", func(t *testing.T) {
		bounds := ComputeBounds(nil)

		assert.Equal(t, float64(0), bounds.PriceMin)
		assert.Equal(t, float64(1), bounds.PriceMax)
		assert.Equal(t, 1, bounds.LayoverHourMax)
		assert.Empty(t, bounds.CheapestByAirline)
	})

	t.Run("layover hour max rounds up and never drops below one", func(t *testing.T) {
		short := ComputeBounds([]domain.EnrichedItinerary{
			enrichedItem("a", 100, 60, 0, 0, "BG"),
		})
		assert.Equal(t, 1, short.LayoverHourMax)

		long := ComputeBounds([]domain.EnrichedItinerary{
			enrichedItem("a", 100, 60, 1, 150, "BG"),
		})
		assert.Equal(t, 3, long.LayoverHourMax)
	})

	t.Run("unpriced itineraries still extend the layover bound", func(t *testing.T) {
		e := unpricedItem("a")
		e.LayoverMinutes = 200

		bounds := ComputeBounds([]domain.EnrichedItinerary{e})
		assert.Equal(t, 4, bounds.LayoverHourMax)
	})
}

func TestComputeBoundsAirlineIndex(t *testing.T) {
	bounds := ComputeBounds([]domain.EnrichedItinerary{
		enrichedItem("a", 10700, 130, 1, 55, "BS", "VQ"),
		enrichedItem("b", 8650, 75, 0, 0, "BG"),
		enrichedItem("c", 9100, 80, 0, 0, "VQ"),
	})

	// Cheapest price per carrier, ascending by price with code tie-break.
	assert.Equal(t, []domain.AirlinePrice{
		{Code: "BG", Price: 8650},
		{Code: "VQ", Price: 9100},
		{Code: "BS", Price: 10700},
	}, bounds.CheapestByAirline)
}

func TestComputeBoundsAirlineIndexTieBreak(t *testing.T) {
	bounds := ComputeBounds([]domain.EnrichedItinerary{
		enrichedItem("a", 9000, 75, 0, 0, "VQ", "BG"),
	})

	assert.Equal(t, []domain.AirlinePrice{
		{Code: "BG", Price: 9000},
		{Code: "VQ", Price: 9000},
	}, bounds.CheapestByAirline)
}
