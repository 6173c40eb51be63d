package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/request_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/internal/repositories"
	"rutaviva/pkg/utils"
)

// RouteAll is the sentinel meaning "plan over the whole inventory". A
// blank route is treated the same way.
const RouteAll = "all"

const (
	minItineraryDays = 1
	maxItineraryDays = 7
	defaultDays      = 2

	minPartySize     = 1
	maxPartySize     = 10
	defaultPartySize = 2

	defaultBudget = 60.0

	defaultLanguage = "ES/EN"

	// Candidate cap keeps the prompt bounded no matter how large the
	// route's inventory grows.
	maxCandidates = 50

	firstAttemptTokens = 1000
	retryAttemptTokens = 800
)

// maxItemsPerDay keeps long trips from front-loading every day: short
// trips get 4 slots per day, longer ones 3.
func maxItemsPerDay(days int) int {
	if days <= 3 {
		return 4
	}
	return 3
}

type ItineraryServiceInterface interface {
	// BuildItinerary always returns a structurally complete itinerary.
	// Generation failures are converted into a fallback plan and
	// reported through the response's AIError field; the returned
	// error is reserved for inventory lookup failures.
	BuildItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryBuildResponse, error)
}

type ItineraryService struct {
	listingRepo repositories.ListingRepository
	planner     utils.PlannerClientInterface
	planCache   *cache.Cache

	// rng drives the fallback shuffle; guarded because rand.Rand is
	// not safe for concurrent use and builds may run in parallel.
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewItineraryService(
	listingRepo repositories.ListingRepository,
	planner utils.PlannerClientInterface,
	planCache *cache.Cache,
) ItineraryServiceInterface {
	return &ItineraryService{
		listingRepo: listingRepo,
		planner:     planner,
		planCache:   planCache,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// normalizedItineraryRequest is the clamped, validated form every
// downstream component consumes.
type normalizedItineraryRequest struct {
	Route     string
	Days      int
	Budget    float64
	PartySize int
	Interests []string
	Language  string
}

func normalizeItineraryRequest(req request_models.ItineraryRequest) normalizedItineraryRequest {
	days := req.Days
	if days == 0 {
		days = defaultDays
	}
	party := req.PartySize
	if party == 0 {
		party = defaultPartySize
	}

	budget := defaultBudget
	if req.BudgetPerPerson != nil && !math.IsNaN(*req.BudgetPerPerson) {
		budget = *req.BudgetPerPerson
	}
	if budget < 0 {
		budget = 0
	}

	interests := lo.FilterMap(req.Interests, func(raw string, _ int) (string, bool) {
		norm := utils.NormalizeCategory(raw)
		return norm, db_models.IsCategory(norm)
	})

	return normalizedItineraryRequest{
		Route:     strings.TrimSpace(req.Route),
		Days:      utils.ClampInt(days, minItineraryDays, maxItineraryDays),
		Budget:    budget,
		PartySize: utils.ClampInt(party, minPartySize, maxPartySize),
		Interests: interests,
		Language:  utils.FirstNonBlank(req.Language, defaultLanguage),
	}
}

func (s *ItineraryService) BuildItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryBuildResponse, error) {
	norm := normalizeItineraryRequest(req)

	candidates, err := s.resolveCandidates(ctx, norm.Route)
	if err != nil {
		log.Printf("itinerary: candidate lookup failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	cacheKey := planCacheKey(norm, candidates)
	if s.planCache != nil {
		if cached, ok := s.planCache.Get(cacheKey); ok {
			if result, ok := cached.(*response_models.ItineraryResult); ok {
				return &response_models.ItineraryBuildResponse{Result: result}, nil
			}
		}
	}

	raw, genErr := s.generateWithRetry(ctx, norm, candidates)
	if genErr == nil {
		result, recErr := reconcileItinerary(raw, candidates, norm)
		if recErr == nil {
			if s.planCache != nil {
				s.planCache.Set(cacheKey, result, cache.DefaultExpiration)
			}
			return &response_models.ItineraryBuildResponse{Result: result}, nil
		}
		genErr = recErr
	}

	log.Printf("itinerary: generation failed, using fallback planner: %v", genErr)
	result := s.fallbackPlan(candidates, norm, genErr)
	return &response_models.ItineraryBuildResponse{
		Result:  result,
		AIError: genErr.Error(),
	}, nil
}

func (s *ItineraryService) resolveCandidates(ctx context.Context, route string) ([]db_models.Listing, error) {
	if route == "" || strings.EqualFold(route, RouteAll) {
		return s.listingRepo.ListAll(ctx)
	}
	return s.listingRepo.ListByRoute(ctx, route)
}

const plannerSystemPromptFormat = `Eres un asistente para planificar rutas culturales sostenibles en Ecuador.
REGLAS DURAS:
1) NO inventes lugares.
2) SOLO usa listing_id de los candidatos.
3) Mantén el itinerario vendible: claro, logístico, realista.
4) Máximo %d items por día.
5) Si no hay intereses, mezcla categorías.
6) Escribe en el idioma indicado por user_language.
7) budget es por persona. estimate_per_person es la suma del plan por persona. estimate_total = estimate_per_person * party_size.`

const retryPromptSuffix = "\nSé más breve en narrative."

type plannerConstraints struct {
	MaxItemsPerDay int `json:"max_items_per_day"`
}

type plannerPayload struct {
	Route               string                          `json:"route"`
	Days                int                             `json:"days"`
	PartySize           int                             `json:"party_size"`
	BudgetUSDPerPerson  float64                         `json:"budget_usd_per_person"`
	UserLanguage        string                          `json:"user_language"`
	InterestsCategories []string                        `json:"interests_categories"`
	Candidates          []request_models.ListingSummary `json:"candidates"`
	Constraints         plannerConstraints              `json:"constraints"`
}

// generateWithRetry makes at most two generation calls: the full prompt,
// then once more with a brevity instruction and a smaller output budget.
// The schema and candidate set are identical on retry; only the narrative
// length shrinks.
func (s *ItineraryService) generateWithRetry(
	ctx context.Context,
	norm normalizedItineraryRequest,
	candidates []db_models.Listing,
) (*response_models.RawItinerary, error) {
	dayCap := maxItemsPerDay(norm.Days)
	schema := utils.BuildItinerarySchema(db_models.Categories, maxItineraryDays, dayCap)
	system := fmt.Sprintf(plannerSystemPromptFormat, dayCap)

	payload, err := json.Marshal(plannerPayload{
		Route:               norm.Route,
		Days:                norm.Days,
		PartySize:           norm.PartySize,
		BudgetUSDPerPerson:  norm.Budget,
		UserLanguage:        norm.Language,
		InterestsCategories: norm.Interests,
		Candidates:          slimCandidates(candidates),
		Constraints:         plannerConstraints{MaxItemsPerDay: dayCap},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload: %v", utils.ErrPlannerParse, err)
	}

	raw, err := s.planner.GenerateItinerary(ctx, system, string(payload), schema, firstAttemptTokens)
	if err == nil {
		return raw, nil
	}
	if errors.Is(err, utils.ErrPlannerMissingKey) {
		// Retrying cannot conjure a credential.
		return nil, err
	}

	log.Printf("itinerary: first generation attempt failed, retrying shorter: %v", err)
	raw, retryErr := s.planner.GenerateItinerary(ctx, system+retryPromptSuffix, string(payload), schema, retryAttemptTokens)
	if retryErr != nil {
		return nil, retryErr
	}
	return raw, nil
}

// slimCandidates reduces the ground-truth rows to the bounded, normalized
// shape the model is allowed to see. Pure transformation, caller order
// preserved.
func slimCandidates(listings []db_models.Listing) []request_models.ListingSummary {
	capped := listings
	if len(capped) > maxCandidates {
		capped = capped[:maxCandidates]
	}

	return lo.Map(capped, func(l db_models.Listing, _ int) request_models.ListingSummary {
		price := l.PriceUSD
		if math.IsNaN(price) || price < 0 {
			price = 0
		}
		duration := l.DurationMin
		if duration <= 0 {
			duration = 60
		}
		return request_models.ListingSummary{
			ID:          l.ID.String(),
			Title:       l.Title,
			Category:    utils.NormalizeCategory(l.Category),
			ShortDesc:   l.ShortDesc,
			PriceUSD:    price,
			DurationMin: duration,
			Address:     l.Address,
			MapsURL:     utils.StringOrNil(l.MapsURL),
			TiktokURL:   utils.StringOrNil(l.TiktokURL),
			Tags:        append([]string{}, l.Tags...),
		}
	})
}

func planCacheKey(norm normalizedItineraryRequest, candidates []db_models.Listing) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%.2f|%d|%s|%s", norm.Route, norm.Days, norm.Budget, norm.PartySize, norm.Language, strings.Join(norm.Interests, ","))
	for _, l := range candidates {
		fmt.Fprintf(h, "|%s:%.2f", l.ID, l.PriceUSD)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// sumItineraryPrices is the single accounting rule shared by the
// sanitizer and the fallback planner: per-person cost is the rounded sum
// of all item prices across all days.
func sumItineraryPrices(days []response_models.ItineraryDay) float64 {
	total := 0.0
	for _, day := range days {
		for _, item := range day.Items {
			total += item.PriceUSD
		}
	}
	return utils.Round2(total)
}

// sortListingsByPrice returns a cheapest-first copy, the greedy order the
// fallback planner walks.
func sortListingsByPrice(listings []db_models.Listing) []db_models.Listing {
	sorted := make([]db_models.Listing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return listingPrice(sorted[i]) < listingPrice(sorted[j])
	})
	return sorted
}

func listingPrice(l db_models.Listing) float64 {
	if math.IsNaN(l.PriceUSD) || l.PriceUSD < 0 {
		return 0
	}
	return l.PriceUSD
}
