package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category vocabulary for listings. Itinerary items are validated against
// this closed set; anything else is normalized back to the listing's own
// category.
var Categories = []string{"comida", "historico", "parque", "artesania"}

func IsCategory(normalized string) bool {
	for _, c := range Categories {
		if c == normalized {
			return true
		}
	}
	return false
}

// Listing is a merchant-owned bookable experience. The itinerary pipeline
// treats these rows as the ground truth every generated item must resolve
// against.
type Listing struct {
	BaseModel
	MerchantID uuid.UUID `gorm:"type:uuid;index"`

	Route     string `gorm:"index"`
	Category  string
	Title     string
	ShortDesc string

	PriceUSD    float64
	DurationMin int

	Address   string
	Latitude  float64
	Longitude float64

	MapsURL         string
	ContactWhatsapp string
	TiktokURL       string

	Tags pq.StringArray `gorm:"type:text[]"`

	Bookings []Booking `gorm:"foreignKey:ListingID"`
}
