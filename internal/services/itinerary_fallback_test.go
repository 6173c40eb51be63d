package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rutaviva/internal/models/db_models"
)

func TestFallbackGreedyFillsBudget(t *testing.T) {
	listings := []db_models.Listing{
		makeListing("centro", "comida", "Almuerzo", 20),
		makeListing("centro", "historico", "Museo", 5),
		makeListing("centro", "parque", "Mirador", 15),
		makeListing("centro", "artesania", "Taller", 10),
	}
	svc := newTestService(listings, &stubPlanner{})
	norm := normalizedItineraryRequest{Route: "centro", Days: 1, Budget: 30, PartySize: 2, Language: "ES/EN"}

	result := svc.fallbackPlan(listings, norm, errors.New("provider down"))

	require.Len(t, result.Itinerary, 1)
	items := result.Itinerary[0].Items
	require.Len(t, items, 3)
	assert.Equal(t, 5.0, items[0].PriceUSD)
	assert.Equal(t, 10.0, items[1].PriceUSD)
	assert.Equal(t, 15.0, items[2].PriceUSD)
	assert.Equal(t, 30.0, result.EstimatePerPerson)
	assert.Equal(t, 60.0, result.EstimateTotal)
}

func TestFallbackBudgetCarriesAcrossDays(t *testing.T) {
	listings := []db_models.Listing{
		makeListing("centro", "comida", "Mercado", 10),
		makeListing("centro", "historico", "Museo", 25),
	}
	svc := newTestService(listings, &stubPlanner{})
	norm := normalizedItineraryRequest{Route: "centro", Days: 2, Budget: 30, PartySize: 1, Language: "ES/EN"}

	result := svc.fallbackPlan(listings, norm, nil)

	require.Len(t, result.Itinerary, 2)
	// Day 1 takes the 10; 25 more would blow the budget. Day 2 has 20
	// left, which again only fits the 10.
	require.Len(t, result.Itinerary[0].Items, 1)
	assert.Equal(t, 10.0, result.Itinerary[0].Items[0].PriceUSD)
	require.Len(t, result.Itinerary[1].Items, 1)
	assert.Equal(t, 10.0, result.Itinerary[1].Items[0].PriceUSD)
	assert.Equal(t, 20.0, result.EstimatePerPerson)
}

func TestFallbackRespectsDayItemCap(t *testing.T) {
	var listings []db_models.Listing
	for i := 0; i < 8; i++ {
		listings = append(listings, makeListing("centro", "parque", "Gratis", 0))
	}
	svc := newTestService(listings, &stubPlanner{})

	short := svc.fallbackPlan(listings, normalizedItineraryRequest{Route: "centro", Days: 1, Budget: 10, PartySize: 1, Language: "ES/EN"}, nil)
	assert.Len(t, short.Itinerary[0].Items, 4)

	long := svc.fallbackPlan(listings, normalizedItineraryRequest{Route: "centro", Days: 5, Budget: 10, PartySize: 1, Language: "ES/EN"}, nil)
	assert.Len(t, long.Itinerary[0].Items, 3)
}

func TestFallbackInterestFilter(t *testing.T) {
	listings := []db_models.Listing{
		makeListing("centro", "comida", "Mercado", 2),
		makeListing("centro", "comida", "Café", 3),
		makeListing("centro", "historico", "Museo", 1),
	}
	svc := newTestService(listings, &stubPlanner{})
	norm := normalizedItineraryRequest{Route: "centro", Days: 1, Budget: 50, PartySize: 1, Language: "ES/EN", Interests: []string{"comida"}}

	result := svc.fallbackPlan(listings, norm, nil)

	require.NotEmpty(t, result.Itinerary[0].Items)
	for _, item := range result.Itinerary[0].Items {
		assert.Equal(t, "comida", item.Category)
	}
}

// Interests that match nothing in inventory are ignored rather than
// producing empty days.
func TestFallbackIgnoresUnmatchableInterests(t *testing.T) {
	listings := []db_models.Listing{
		makeListing("centro", "comida", "Mercado", 2),
	}
	svc := newTestService(listings, &stubPlanner{})
	norm := normalizedItineraryRequest{Route: "centro", Days: 1, Budget: 50, PartySize: 1, Language: "ES/EN", Interests: []string{"parque"}}

	result := svc.fallbackPlan(listings, norm, nil)
	require.Len(t, result.Itinerary[0].Items, 1)
	assert.Equal(t, "Mercado", result.Itinerary[0].Items[0].Title)
}

func TestFallbackShapeAndDiagnostic(t *testing.T) {
	svc := newTestService(nil, &stubPlanner{})
	norm := normalizedItineraryRequest{Route: "centro", Days: 3, Budget: 40, PartySize: 4, Language: "EN"}

	result := svc.fallbackPlan(nil, norm, errors.New("planner transport failure: status 503"))

	assert.Equal(t, "centro", result.Route)
	assert.Equal(t, 3, result.Days)
	assert.Equal(t, 40.0, result.Budget)
	assert.Equal(t, 4, result.PartySize)
	assert.Equal(t, "EN", result.Language)
	assert.Equal(t, "Ruta Cultural: centro", result.PackageName)
	assert.Equal(t, "Modo fallback (sin IA): planner transport failure: status 503", result.Narrative)
	assert.Equal(t, defaultPlanB, result.PlanB)
	assert.Equal(t, defaultSustainability, result.Sustainability)

	require.Len(t, result.Itinerary, 3)
	for i, day := range result.Itinerary {
		assert.Equal(t, i+1, day.Day)
		assert.Equal(t, fallbackDayTheme, day.DayTheme)
		assert.Empty(t, day.Items)
	}
	assert.Equal(t, 0.0, result.EstimatePerPerson)
	assert.Equal(t, 0.0, result.EstimateTotal)
}

func TestFallbackTruncatesLongCause(t *testing.T) {
	svc := newTestService(nil, &stubPlanner{})
	cause := errors.New(strings.Repeat("x", 500))

	result := svc.fallbackPlan(nil, normalizedItineraryRequest{Route: "centro", Days: 1, PartySize: 1, Language: "ES/EN"}, cause)
	assert.LessOrEqual(t, len(result.Narrative), len("Modo fallback (sin IA): ")+fallbackCauseLimit+3)
	assert.True(t, strings.HasSuffix(result.Narrative, "..."))
}

func TestFallbackItemFieldDefaults(t *testing.T) {
	l := makeListing("centro", "Comida", "Picantería", 5)
	l.Address = ""
	l.TiktokURL = "https://tiktok.example/pica"
	svc := newTestService([]db_models.Listing{l}, &stubPlanner{})

	result := svc.fallbackPlan([]db_models.Listing{l}, normalizedItineraryRequest{Route: "centro", Days: 1, Budget: 10, PartySize: 1, Language: "ES/EN"}, nil)

	item := result.Itinerary[0].Items[0]
	assert.Equal(t, "comida", item.Category)
	assert.Equal(t, fallbackWhy, item.Why)
	assert.Equal(t, 60, item.DurationMin)
	assert.Equal(t, "-", item.Address)
	assert.Nil(t, item.MapsURL)
	require.NotNil(t, item.TiktokURL)
	assert.Equal(t, "https://tiktok.example/pica", *item.TiktokURL)
}
