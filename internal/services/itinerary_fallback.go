package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/pkg/utils"
)

const (
	fallbackDayTheme = "Selección por presupuesto"
	fallbackWhy      = "Selección automática por presupuesto y categoría (sin IA)."

	fallbackCauseLimit = 120
)

// fallbackPlan builds an itinerary without the generation model: one
// shuffle for variety, then a cheapest-first greedy fill per day against
// whatever budget the earlier days left over. It cannot fail.
func (s *ItineraryService) fallbackPlan(
	candidates []db_models.Listing,
	norm normalizedItineraryRequest,
	cause error,
) *response_models.ItineraryResult {
	pool := make([]db_models.Listing, len(candidates))
	copy(pool, candidates)

	s.rngMu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.rngMu.Unlock()

	dayCap := maxItemsPerDay(norm.Days)
	budgetLeft := norm.Budget

	days := make([]response_models.ItineraryDay, 0, norm.Days)
	for d := 1; d <= norm.Days; d++ {
		items, dayTotal := pickDayItems(pool, norm.Interests, budgetLeft, dayCap)
		budgetLeft = math.Max(0, budgetLeft-dayTotal)
		days = append(days, response_models.ItineraryDay{
			Day:      d,
			DayTheme: fallbackDayTheme,
			Items:    items,
		})
	}

	perPerson := sumItineraryPrices(days)

	narrative := "Modo fallback (sin IA)"
	if cause != nil {
		narrative = fmt.Sprintf("Modo fallback (sin IA): %s", truncateMessage(cause.Error(), fallbackCauseLimit))
	}

	return &response_models.ItineraryResult{
		Route:             norm.Route,
		Days:              norm.Days,
		Budget:            norm.Budget,
		EstimatePerPerson: perPerson,
		EstimateTotal:     utils.Round2(perPerson * float64(norm.PartySize)),
		PartySize:         norm.PartySize,
		Language:          norm.Language,
		PackageName:       packageName(norm.Route),
		Narrative:         narrative,
		PlanB:             append([]string{}, defaultPlanB...),
		Sustainability:    append([]string{}, defaultSustainability...),
		Itinerary:         days,
	}
}

// pickDayItems fills one day: filter by interests when that leaves
// anything, walk cheapest-first, and take every listing that still fits
// under the remaining budget until the day cap is reached.
func pickDayItems(
	pool []db_models.Listing,
	interests []string,
	budgetLeft float64,
	maxItems int,
) ([]response_models.ItineraryItem, float64) {
	filtered := pool
	if len(interests) > 0 {
		matched := lo.Filter(pool, func(l db_models.Listing, _ int) bool {
			return lo.Contains(interests, utils.NormalizeCategory(l.Category))
		})
		// An interest filter that empties the pool is ignored rather
		// than producing an empty day.
		if len(matched) > 0 {
			filtered = matched
		}
	}

	picked := make([]response_models.ItineraryItem, 0, maxItems)
	total := 0.0
	for _, l := range sortListingsByPrice(filtered) {
		if len(picked) >= maxItems {
			break
		}
		price := listingPrice(l)
		if total+price <= budgetLeft {
			picked = append(picked, fallbackItem(l, price))
			total += price
		}
	}
	return picked, utils.Round2(total)
}

func fallbackItem(l db_models.Listing, price float64) response_models.ItineraryItem {
	category := utils.NormalizeCategory(l.Category)
	if !db_models.IsCategory(category) {
		category = db_models.Categories[0]
	}
	duration := l.DurationMin
	if duration <= 0 {
		duration = 60
	}

	return response_models.ItineraryItem{
		ListingID:   l.ID.String(),
		Title:       utils.FirstNonBlank(l.Title, "Experiencia"),
		Category:    category,
		Why:         fallbackWhy,
		PriceUSD:    price,
		DurationMin: duration,
		Address:     utils.FirstNonBlank(l.Address, "-"),
		MapsURL:     utils.StringOrNil(l.MapsURL),
		TiktokURL:   utils.StringOrNil(l.TiktokURL),
	}
}

func truncateMessage(msg string, limit int) string {
	msg = strings.TrimSpace(msg)
	if len(msg) <= limit {
		return msg
	}
	return msg[:limit] + "..."
}
