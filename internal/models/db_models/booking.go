package db_models

import "github.com/google/uuid"

const (
	BookingStatusCreated = "CREATED"
	BookingStatusPaid    = "PAID"
	BookingStatusFailed  = "FAILED"
)

type Booking struct {
	BaseModel
	ListingID uuid.UUID `gorm:"type:uuid;index"`

	BuyerName  string
	BuyerEmail string

	AmountUSD     float64
	PaypalOrderID string `gorm:"uniqueIndex"`

	// CREATED | PAID | FAILED
	Status string
}
