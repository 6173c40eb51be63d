package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string

	Listings []Listing `gorm:"foreignKey:MerchantID"`
}
