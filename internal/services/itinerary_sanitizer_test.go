package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/pkg/utils"
)

func testNorm() normalizedItineraryRequest {
	return normalizedItineraryRequest{
		Route:     "centro",
		Days:      2,
		Budget:    60,
		PartySize: 2,
		Language:  "ES/EN",
	}
}

func TestReconcileNilOutputFails(t *testing.T) {
	_, err := reconcileItinerary(nil, nil, testNorm())
	assert.ErrorIs(t, err, utils.ErrReconcileFailed)
}

// Items pointing at listings outside the inventory snapshot disappear
// without a trace, and the money reflects only what survived.
func TestReconcileDropsHallucinatedListings(t *testing.T) {
	real := makeListing("centro", "comida", "Mercado", 10)
	day := 1
	price := 10.0
	ghostPrice := 500.0
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{
			{
				Day:      &day,
				DayTheme: "Sabores",
				Items: []response_models.RawItineraryItem{
					{ListingID: real.ID.String(), Title: "Mercado", Category: "comida", PriceUSD: &price},
					{ListingID: "inventado-123", Title: "Restaurante Fantasma", Category: "comida", PriceUSD: &ghostPrice},
				},
			},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{real}, testNorm())
	require.NoError(t, err)

	require.Len(t, result.Itinerary, 1)
	require.Len(t, result.Itinerary[0].Items, 1)
	assert.Equal(t, real.ID.String(), result.Itinerary[0].Items[0].ListingID)
	assert.Equal(t, 10.0, result.EstimatePerPerson)
	assert.Equal(t, 20.0, result.EstimateTotal)
}

// An omitted price comes back from the listing row; an explicit zero is
// kept as a real free entry.
func TestReconcileBackfillsOmittedPrice(t *testing.T) {
	src := makeListing("centro", "artesania", "Taller", 12.50)
	zero := 0.0
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{
				{ListingID: src.ID.String(), PriceUSD: nil},
			}},
			{Items: []response_models.RawItineraryItem{
				{ListingID: src.ID.String(), PriceUSD: &zero},
			}},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)

	assert.Equal(t, 12.50, result.Itinerary[0].Items[0].PriceUSD)
	assert.Equal(t, 0.0, result.Itinerary[1].Items[0].PriceUSD)
	assert.Equal(t, 12.50, result.EstimatePerPerson)
	assert.Equal(t, 25.0, result.EstimateTotal)
}

func TestReconcileIgnoresModelArithmetic(t *testing.T) {
	src := makeListing("centro", "comida", "Mercado", 7.25)
	price := 7.25
	bogusPer := 999.0
	bogusTotal := 1.0
	raw := &response_models.RawItinerary{
		EstimatePerPerson: &bogusPer,
		EstimateTotal:     &bogusTotal,
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{
				{ListingID: src.ID.String(), PriceUSD: &price},
			}},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)
	assert.Equal(t, 7.25, result.EstimatePerPerson)
	assert.Equal(t, 14.50, result.EstimateTotal)
}

func TestReconcileRepairsItemFields(t *testing.T) {
	src := makeListing("centro", "historico", "Museo de la Ciudad", 6)
	src.DurationMin = 0
	src.MapsURL = "https://maps.example/museo"
	negDuration := -20
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{
				{
					ListingID:   src.ID.String(),
					Title:       "   ",
					Category:    "museos",
					Why:         "",
					DurationMin: &negDuration,
					Address:     "",
				},
			}},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)

	item := result.Itinerary[0].Items[0]
	assert.Equal(t, "Museo de la Ciudad", item.Title)
	assert.Equal(t, "historico", item.Category, "unknown category falls back to the listing's")
	assert.Equal(t, defaultWhy, item.Why)
	assert.Equal(t, 60, item.DurationMin)
	assert.Equal(t, "Calle Museo de la Ciudad", item.Address)
	require.NotNil(t, item.MapsURL)
	assert.Equal(t, "https://maps.example/museo", *item.MapsURL)
	assert.Nil(t, item.TiktokURL)
}

func TestReconcileBackfillsTopLevel(t *testing.T) {
	src := makeListing("centro", "comida", "Mercado", 5)
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{{ListingID: src.ID.String()}}},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)

	assert.Equal(t, "centro", result.Route)
	assert.Equal(t, 2, result.Days)
	assert.Equal(t, 60.0, result.Budget)
	assert.Equal(t, 2, result.PartySize)
	assert.Equal(t, "ES/EN", result.Language)
	assert.Equal(t, "Ruta Cultural: centro", result.PackageName)
	assert.Equal(t, defaultNarrative, result.Narrative)
	assert.Equal(t, defaultDayTheme, result.Itinerary[0].DayTheme)
	assert.Equal(t, 1, result.Itinerary[0].Day)
	assert.Equal(t, defaultPlanB, result.PlanB)
	assert.Equal(t, defaultSustainability, result.Sustainability)
}

func TestReconcileClipsAlternativeLists(t *testing.T) {
	src := makeListing("centro", "comida", "Mercado", 5)
	raw := &response_models.RawItinerary{
		PlanB:          []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		Sustainability: []string{"", "  ", "x"},
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{{ListingID: src.ID.String()}}},
		},
	}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)
	assert.Len(t, result.PlanB, maxAlternativeEntries)
	assert.Equal(t, []string{"x"}, result.Sustainability)
}

// Schema enforcement upstream is provider-dependent, so overstuffed days
// must be clipped here: 2-day trips keep at most 4 items per day, and the
// dropped surplus never reaches the money totals.
func TestReconcileEnforcesDayItemCap(t *testing.T) {
	var listings []db_models.Listing
	var rawItems []response_models.RawItineraryItem
	for i := 0; i < 6; i++ {
		l := makeListing("centro", "comida", "Spot", 10)
		listings = append(listings, l)
		rawItems = append(rawItems, response_models.RawItineraryItem{ListingID: l.ID.String()})
	}
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{{Items: rawItems}},
	}

	result, err := reconcileItinerary(raw, listings, testNorm())
	require.NoError(t, err)

	require.Len(t, result.Itinerary, 1)
	assert.Len(t, result.Itinerary[0].Items, 4)
	assert.Equal(t, 40.0, result.EstimatePerPerson, "clipped items are excluded from the sum")
	assert.Equal(t, 80.0, result.EstimateTotal)
}

// The ghost-drop runs before the cap: invalid references do not consume
// cap slots, so valid items behind them still make it in.
func TestReconcileCapCountsOnlySurvivingItems(t *testing.T) {
	var listings []db_models.Listing
	rawItems := []response_models.RawItineraryItem{
		{ListingID: "fantasma-1"},
		{ListingID: "fantasma-2"},
	}
	for i := 0; i < 4; i++ {
		l := makeListing("centro", "parque", "Mirador", 5)
		listings = append(listings, l)
		rawItems = append(rawItems, response_models.RawItineraryItem{ListingID: l.ID.String()})
	}
	raw := &response_models.RawItinerary{
		Itinerary: []response_models.RawItineraryDay{{Items: rawItems}},
	}

	result, err := reconcileItinerary(raw, listings, testNorm())
	require.NoError(t, err)
	assert.Len(t, result.Itinerary[0].Items, 4)
}

func TestReconcileClipsExcessDays(t *testing.T) {
	src := makeListing("centro", "historico", "Museo", 5)
	var rawDays []response_models.RawItineraryDay
	for i := 0; i < 20; i++ {
		rawDays = append(rawDays, response_models.RawItineraryDay{
			Items: []response_models.RawItineraryItem{{ListingID: src.ID.String()}},
		})
	}
	raw := &response_models.RawItinerary{Itinerary: rawDays}

	result, err := reconcileItinerary(raw, []db_models.Listing{src}, testNorm())
	require.NoError(t, err)

	assert.Len(t, result.Itinerary, 7)
	assert.LessOrEqual(t, result.Days, 7)
	assert.Equal(t, 35.0, result.EstimatePerPerson, "only kept days are summed")
}

// Reconciling a reconciled result must not change it: same items, same
// money, same defaults.
func TestReconcileIdempotent(t *testing.T) {
	listings := []db_models.Listing{
		makeListing("centro", "comida", "Mercado", 5),
		makeListing("centro", "historico", "Museo", 12.5),
	}
	price := 5.0
	raw := &response_models.RawItinerary{
		Route: "centro",
		Itinerary: []response_models.RawItineraryDay{
			{Items: []response_models.RawItineraryItem{
				{ListingID: listings[0].ID.String(), PriceUSD: &price},
				{ListingID: listings[1].ID.String()},
			}},
		},
	}

	first, err := reconcileItinerary(raw, listings, testNorm())
	require.NoError(t, err)

	// Round-trip the clean result through the raw shape and run it
	// through the sanitizer again.
	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	var reparsed response_models.RawItinerary
	require.NoError(t, json.Unmarshal(encoded, &reparsed))

	second, err := reconcileItinerary(&reparsed, listings, testNorm())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
