package response_models

// RawItinerary is the generation model's output exactly as parsed, before
// cross-referencing against inventory. Numeric fields are pointers so a
// field the model omitted (or that schema enforcement nulled) is
// distinguishable from a legitimate zero — the sanitizer backfills nil
// from ground truth but keeps an explicit 0.
type RawItinerary struct {
	Route             string            `json:"route"`
	Days              *int              `json:"days"`
	Budget            *float64          `json:"budget"`
	EstimatePerPerson *float64          `json:"estimate_per_person"`
	EstimateTotal     *float64          `json:"estimate_total"`
	PartySize         *int              `json:"party_size"`
	Language          string            `json:"language"`
	PackageName       string            `json:"package_name"`
	Narrative         string            `json:"narrative"`
	PlanB             []string          `json:"plan_b"`
	Sustainability    []string          `json:"sustainability"`
	Itinerary         []RawItineraryDay `json:"itinerary"`
}

type RawItineraryDay struct {
	Day      *int               `json:"day"`
	DayTheme string             `json:"day_theme"`
	Items    []RawItineraryItem `json:"items"`
}

type RawItineraryItem struct {
	ListingID   string   `json:"listing_id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Why         string   `json:"why"`
	PriceUSD    *float64 `json:"price_usd"`
	DurationMin *int     `json:"duration_min"`
	Address     string   `json:"address"`
	MapsURL     *string  `json:"maps_url"`
	TiktokURL   *string  `json:"tiktok_url"`
}

// ItineraryResult is the one shape the caller always receives, whether it
// came from the generation path or the fallback planner. Money fields are
// recomputed from item prices, never trusted from the model.
type ItineraryResult struct {
	Route             string         `json:"route"`
	Days              int            `json:"days"`
	Budget            float64        `json:"budget"`
	EstimatePerPerson float64        `json:"estimate_per_person"`
	EstimateTotal     float64        `json:"estimate_total"`
	PartySize         int            `json:"party_size"`
	Language          string         `json:"language"`
	PackageName       string         `json:"package_name"`
	Narrative         string         `json:"narrative"`
	PlanB             []string       `json:"plan_b"`
	Sustainability    []string       `json:"sustainability"`
	Itinerary         []ItineraryDay `json:"itinerary"`
}

type ItineraryDay struct {
	Day      int             `json:"day"`
	DayTheme string          `json:"day_theme"`
	Items    []ItineraryItem `json:"items"`
}

type ItineraryItem struct {
	ListingID   string  `json:"listing_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Why         string  `json:"why"`
	PriceUSD    float64 `json:"price_usd"`
	DurationMin int     `json:"duration_min"`
	Address     string  `json:"address"`
	MapsURL     *string `json:"maps_url"`
	TiktokURL   *string `json:"tiktok_url"`
}

// ItineraryBuildResponse annotates the result with the generation error,
// if any. AIError being set does not mean the build failed; the result is
// still a complete itinerary from the fallback planner.
type ItineraryBuildResponse struct {
	Result  *ItineraryResult `json:"result"`
	AIError string           `json:"ai_error,omitempty"`
}
