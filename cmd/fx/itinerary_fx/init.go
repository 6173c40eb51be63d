package itinerary_fx

import (
	"log"
	"os"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"

	"rutaviva/internal/api/controllers"
	"rutaviva/internal/repositories"
	"rutaviva/internal/services"
	"rutaviva/pkg/utils"
)

var Module = fx.Provide(
	providePlannerClient, providePlanCache, provideItineraryService, provideItineraryController)

// providePlannerClient never aborts startup: a missing key degrades the
// itinerary endpoint to the fallback planner instead of taking the whole
// marketplace down with it.
func providePlannerClient() utils.PlannerClientInterface {
	provider := os.Getenv("PLANNER_PROVIDER")

	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if provider == "gemini" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = os.Getenv("GEMINI_MODEL")
	}

	client, err := utils.NewPlannerClient(provider, apiKey, model)
	if err != nil {
		log.Printf("Error initializing planner client: %v", err)
		return utils.NewOpenAIPlannerClient(apiKey, model)
	}
	return client
}

func providePlanCache() *cache.Cache {
	return cache.New(time.Hour, 2*time.Hour)
}

func provideItineraryService(
	listingRepo repositories.ListingRepository,
	planner utils.PlannerClientInterface,
	planCache *cache.Cache,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(listingRepo, planner, planCache)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
