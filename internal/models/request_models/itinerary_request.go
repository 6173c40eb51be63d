package request_models

// ItineraryRequest carries everything the planner needs for one build.
// Nothing here is persisted; it lives for the duration of a single call.
type ItineraryRequest struct {
	Route string `json:"route"`
	Days  int    `json:"days"`
	// Pointer so an omitted budget gets the default while an explicit
	// zero stays a zero-dollar plan.
	BudgetPerPerson *float64 `json:"budget_per_person"`
	PartySize       int      `json:"party_size"`
	Interests       []string `json:"interests"`
	Language        string   `json:"language"`
}

// ListingSummary is the slimmed candidate shape sent to the generation
// model: bounded, normalized, and with optional links as explicit nulls
// so the model cannot be handed a blank string to embellish.
type ListingSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	ShortDesc   string   `json:"short_desc"`
	PriceUSD    float64  `json:"price_usd"`
	DurationMin int      `json:"duration_min"`
	Address     string   `json:"address"`
	MapsURL     *string  `json:"maps_url"`
	TiktokURL   *string  `json:"tiktok_url"`
	Tags        []string `json:"tags"`
}
