package services

import (
	"math"
	"strings"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/pkg/utils"
)

const (
	defaultDayTheme  = "Ruta cultural optimizada"
	defaultWhy       = "Recomendado dentro de la ruta cultural."
	defaultNarrative = "Plan cultural listo para disfrutar."

	maxAlternativeEntries = 6
)

var defaultPlanB = []string{
	"Si llueve: prioriza talleres y museos bajo techo.",
	"Si está lleno: cambia por un spot similar cercano.",
}

var defaultSustainability = []string{
	"Compra local (directo a emprendimientos).",
	"Respeta la cultura: pide permiso antes de grabar.",
	"Evita saturar sitios pequeños en horas pico.",
}

// reconcileItinerary cross-references the model output against the
// inventory snapshot the model was shown. Items referencing a listing_id
// outside the snapshot are dropped silently, repairable fields are
// backfilled from ground truth, and all money figures are recomputed from
// item prices. The day list and each day's item list are clipped to their
// schema bounds here too: only the OpenAI path enforces the schema
// upstream, so the sanitizer is the gate that holds for every provider.
// Running it over its own output is a no-op.
func reconcileItinerary(
	raw *response_models.RawItinerary,
	candidates []db_models.Listing,
	norm normalizedItineraryRequest,
) (*response_models.ItineraryResult, error) {
	if raw == nil {
		return nil, utils.ErrReconcileFailed
	}

	byID := make(map[string]*db_models.Listing, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID.String()] = &candidates[i]
	}

	dayCap := maxItemsPerDay(norm.Days)
	days := make([]response_models.ItineraryDay, 0, len(raw.Itinerary))
	for _, rawDay := range raw.Itinerary {
		if len(days) == maxItineraryDays {
			break
		}
		items := make([]response_models.ItineraryItem, 0, len(rawDay.Items))
		for _, rawItem := range rawDay.Items {
			if len(items) == dayCap {
				break
			}
			src, ok := byID[strings.TrimSpace(rawItem.ListingID)]
			if !ok {
				// Hallucinated or stale reference, never surfaced.
				continue
			}
			items = append(items, repairItem(rawItem, src))
		}
		days = append(days, response_models.ItineraryDay{
			Day:      utils.PositiveInt(rawDay.Day, 1),
			DayTheme: utils.FirstNonBlank(rawDay.DayTheme, defaultDayTheme),
			Items:    items,
		})
	}

	perPerson := sumItineraryPrices(days)
	party := utils.BoundedInt(raw.PartySize, minPartySize, maxPartySize, norm.PartySize)

	return &response_models.ItineraryResult{
		Route:             utils.FirstNonBlank(raw.Route, norm.Route),
		Days:              utils.BoundedInt(raw.Days, minItineraryDays, maxItineraryDays, norm.Days),
		Budget:            utils.NonNegativeFloat(raw.Budget, norm.Budget),
		EstimatePerPerson: perPerson,
		EstimateTotal:     utils.Round2(perPerson * float64(party)),
		PartySize:         party,
		Language:          utils.FirstNonBlank(raw.Language, norm.Language),
		PackageName:       utils.FirstNonBlank(raw.PackageName, packageName(norm.Route)),
		Narrative:         utils.FirstNonBlank(raw.Narrative, defaultNarrative),
		PlanB:             clipOrDefault(raw.PlanB, defaultPlanB),
		Sustainability:    clipOrDefault(raw.Sustainability, defaultSustainability),
		Itinerary:         days,
	}, nil
}

// repairItem rebuilds a model item on top of its ground-truth listing.
// The model only keeps what it is allowed to author: title, why, theme
// text and an explicit non-null price. Everything else comes from the
// listing row.
func repairItem(rawItem response_models.RawItineraryItem, src *db_models.Listing) response_models.ItineraryItem {
	category := utils.NormalizeCategory(rawItem.Category)
	if !db_models.IsCategory(category) {
		category = utils.NormalizeCategory(src.Category)
		if !db_models.IsCategory(category) {
			category = db_models.Categories[0]
		}
	}

	srcPrice := src.PriceUSD
	if math.IsNaN(srcPrice) || srcPrice < 0 {
		srcPrice = 0
	}
	srcDuration := src.DurationMin
	if srcDuration <= 0 {
		srcDuration = 60
	}

	return response_models.ItineraryItem{
		ListingID:   src.ID.String(),
		Title:       utils.FirstNonBlank(rawItem.Title, src.Title, "Experiencia"),
		Category:    category,
		Why:         utils.FirstNonBlank(rawItem.Why, defaultWhy),
		PriceUSD:    utils.NonNegativeFloat(rawItem.PriceUSD, srcPrice),
		DurationMin: utils.PositiveInt(rawItem.DurationMin, srcDuration),
		Address:     utils.FirstNonBlank(rawItem.Address, src.Address, "-"),
		MapsURL:     coalesceLink(rawItem.MapsURL, src.MapsURL),
		TiktokURL:   coalesceLink(rawItem.TiktokURL, src.TiktokURL),
	}
}

func coalesceLink(raw *string, src string) *string {
	if raw != nil && strings.TrimSpace(*raw) != "" {
		return raw
	}
	return utils.StringOrNil(src)
}

func clipOrDefault(entries []string, fallback []string) []string {
	kept := make([]string, 0, maxAlternativeEntries)
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		kept = append(kept, entry)
		if len(kept) == maxAlternativeEntries {
			break
		}
	}
	if len(kept) == 0 {
		return append([]string{}, fallback...)
	}
	return kept
}

func packageName(route string) string {
	if route == "" || strings.EqualFold(route, RouteAll) {
		return "Ruta Cultural"
	}
	return "Ruta Cultural: " + route
}
