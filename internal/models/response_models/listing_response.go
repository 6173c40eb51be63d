package response_models

type ListingResponse struct {
	ID              string   `json:"id"`
	MerchantID      string   `json:"merchant_id,omitempty"`
	Route           string   `json:"route"`
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	ShortDesc       string   `json:"short_desc"`
	PriceUSD        float64  `json:"price_usd"`
	DurationMin     int      `json:"duration_min"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	MapsURL         string   `json:"maps_url,omitempty"`
	ContactWhatsapp string   `json:"contact_whatsapp,omitempty"`
	TiktokURL       string   `json:"tiktok_url,omitempty"`
	Tags            []string `json:"tags"`
}

// MapMarker is one stop on the ordered map path for a route.
type MapMarker struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Great-circle distance from the previous marker on the path.
	LegKm float64 `json:"leg_km"`
}
