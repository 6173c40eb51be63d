package listing_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"rutaviva/internal/api/controllers"
	"rutaviva/internal/repositories"
	"rutaviva/internal/services"
)

var Module = fx.Provide(
	provideListingRepo, provideListingService, provideListingsController)

func provideListingRepo(db *gorm.DB) repositories.ListingRepository {
	return repositories.NewListingRepository(db)
}

func provideListingService(listingRepo repositories.ListingRepository) services.ListingServiceInterface {
	return services.NewListingService(listingRepo)
}

func provideListingsController(listingService services.ListingServiceInterface) *controllers.ListingsController {
	return controllers.NewListingsController(listingService)
}
