package request_models

type CreateListingRequest struct {
	Route           string   `json:"route" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	ShortDesc       string   `json:"short_desc" binding:"required"`
	PriceUSD        float64  `json:"price_usd"`
	DurationMin     int      `json:"duration_min"`
	Address         string   `json:"address" binding:"required"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	MapsURL         string   `json:"maps_url"`
	ContactWhatsapp string   `json:"contact_whatsapp"`
	TiktokURL       string   `json:"tiktok_url"`
	Tags            []string `json:"tags"`
}

type UpdateListingRequest struct {
	CreateListingRequest
}

type ListListingsQuery struct {
	Route    string `form:"route"`
	Category string `form:"category"`
	Q        string `form:"q"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=20"`
}
