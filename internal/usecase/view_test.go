package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faresight/flight-result-pipeline/internal/domain"
)

// openFilters passes everything priced within a wide range.
func openFilters() domain.FilterState {
	return domain.DefaultFilterState(domain.Bounds{
		PriceMin: 0, PriceMax: 1_000_000, LayoverHourMax: 100,
	})
}

func TestViewFiltering(t *testing.T) {
	items := []domain.EnrichedItinerary{
		enrichedItem("cheap-nonstop", 8650, 75, 0, 0, "BG"),
		enrichedItem("mid-onestop", 10700, 130, 1, 55, "BS"),
		enrichedItem("pricey-twostop", 15200, 300, 2, 240, "VQ"),
		unpricedItem("no-price"),
	}

	tests := []struct {
		name   string
		mutate func(*domain.FilterState)
		want   []string
	}{
		{
			name:   "open filters keep every priced itinerary",
			mutate: func(f *domain.FilterState) {},
			want:   []string{"cheap-nonstop", "mid-onestop", "pricey-twostop"},
		},
		{
			name:   "price range excludes outliers inclusively",
			mutate: func(f *domain.FilterState) { f.PriceRange = domain.PriceRange{Min: 8650, Max: 10700} },
			want:   []string{"cheap-nonstop", "mid-onestop"},
		},
		{
			name:   "stop buckets",
			mutate: func(f *domain.FilterState) { f.StopBuckets = domain.StopBuckets{Nonstop: true} },
			want:   []string{"cheap-nonstop"},
		},
		{
			name:   "layover hour ceiling",
			mutate: func(f *domain.FilterState) { f.LayoverHourRange = domain.HourRange{Min: 0, Max: 1} },
			want:   []string{"cheap-nonstop", "mid-onestop"},
		},
		{
			name:   "airline selection is case-insensitive",
			mutate: func(f *domain.FilterState) { f.SelectedAirlines = []string{"bs"} },
			want:   []string{"mid-onestop"},
		},
		{
			name: "empty result when nothing matches",
			mutate: func(f *domain.FilterState) {
				f.PriceRange = domain.PriceRange{Min: 1, Max: 2}
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := openFilters()
			tt.mutate(&filters)

			got := View(items, filters, domain.SortCheapest)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestViewSorting(t *testing.T) {
	// Real-shaped pair: one cheap fast nonstop, one pricier one-stop.
	nonstop := enrichedItem("nonstop", 8650, 75, 0, 0, "BG")
	onestop := enrichedItem("onestop", 10700, 130, 1, 55, "BS")
	items := []domain.EnrichedItinerary{onestop, nonstop}

	tests := []struct {
		name string
		key  domain.SortKey
		want []string
	}{
		{name: "cheapest", key: domain.SortCheapest, want: []string{"nonstop", "onestop"}},
		{name: "fastest", key: domain.SortFastest, want: []string{"nonstop", "onestop"}},
		{name: "best", key: domain.SortBest, want: []string{"nonstop", "onestop"}},
		{name: "reserved key falls back to best", key: domain.SortEarlyDeparture, want: []string{"nonstop", "onestop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := View(items, openFilters(), tt.key)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestViewBestPrefersFewerStops(t *testing.T) {
	// A one-stop itinerary that is much cheaper and faster still loses to
	// a nonstop under the composite score.
	nonstop := enrichedItem("nonstop", 50000, 200, 0, 0, "BG")
	onestop := enrichedItem("onestop", 9000, 150, 1, 60, "BS")

	got := View([]domain.EnrichedItinerary{onestop, nonstop}, openFilters(), domain.SortBest)
	assert.Equal(t, []string{"nonstop", "onestop"}, ids(got))
}

func TestViewStability(t *testing.T) {
	// Equal prices: the stable sort must retain encounter order.
	items := []domain.EnrichedItinerary{
		enrichedItem("first", 9000, 80, 0, 0, "BG"),
		enrichedItem("second", 9000, 80, 0, 0, "BS"),
		enrichedItem("third", 9000, 80, 0, 0, "VQ"),
	}

	got := View(items, openFilters(), domain.SortCheapest)
	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

func TestViewIdempotent(t *testing.T) {
	items := []domain.EnrichedItinerary{
		enrichedItem("b", 10700, 130, 1, 55, "BS"),
		enrichedItem("a", 8650, 75, 0, 0, "BG"),
	}
	filters := openFilters()

	first := View(items, filters, domain.SortBest)
	second := View(items, filters, domain.SortBest)

	assert.Equal(t, first, second)

	// Re-running over its own output changes nothing either.
	third := View(first, filters, domain.SortBest)
	assert.Equal(t, first, third)
}

func TestViewDoesNotMutateInput(t *testing.T) {
	items := []domain.EnrichedItinerary{
		enrichedItem("b", 10700, 130, 1, 55, "BS"),
		enrichedItem("a", 8650, 75, 0, 0, "BG"),
	}

	View(items, openFilters(), domain.SortCheapest)

	assert.Equal(t, "b", items[0].Itinerary.ResultID)
	assert.Equal(t, "a", items[1].Itinerary.ResultID)
}
