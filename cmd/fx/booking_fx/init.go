package booking_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"rutaviva/internal/api/controllers"
	"rutaviva/internal/repositories"
	"rutaviva/internal/services"
)

var Module = fx.Provide(
	provideBookingRepo, provideBookingService, provideBookingController)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(
	listingRepo repositories.ListingRepository,
	bookingRepo repositories.BookingRepository,
) services.BookingServiceInterface {
	cfg := services.PayPalConfig{
		ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		Env:          os.Getenv("PAYPAL_ENV"),
	}
	return services.NewBookingService(listingRepo, bookingRepo, cfg)
}

func provideBookingController(bookingService services.BookingServiceInterface) *controllers.BookingController {
	return controllers.NewBookingController(bookingService)
}
