package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/request_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/internal/repositories"
	"rutaviva/pkg/utils"
)

type ListingServiceInterface interface {
	CreateListing(ctx context.Context, merchantID string, req request_models.CreateListingRequest) (string, error)
	UpdateListing(ctx context.Context, id string, req request_models.UpdateListingRequest) error
	DeleteListing(ctx context.Context, id string) error
	GetListingByID(ctx context.Context, id string) (*response_models.ListingResponse, error)
	ListListings(ctx context.Context, query request_models.ListListingsQuery) ([]response_models.ListingResponse, error)
	GetRoutes(ctx context.Context) ([]string, error)
	GetRouteMapPath(ctx context.Context, route string) ([]response_models.MapMarker, error)
}

type ListingService struct {
	listingRepo repositories.ListingRepository
}

func NewListingService(listingRepo repositories.ListingRepository) ListingServiceInterface {
	return &ListingService{listingRepo: listingRepo}
}

func (s *ListingService) CreateListing(ctx context.Context, merchantID string, req request_models.CreateListingRequest) (string, error) {
	merchant, err := uuid.Parse(merchantID)
	if err != nil {
		return "", utils.ErrInvalidInput
	}
	if err := validateListingInput(req); err != nil {
		return "", err
	}

	listing := listingFromRequest(req)
	listing.MerchantID = merchant

	id, err := s.listingRepo.Create(ctx, listing)
	if err != nil {
		log.Printf("Error creating listing: %v", err)
		return "", utils.ErrDatabaseError
	}
	return id.String(), nil
}

func (s *ListingService) UpdateListing(ctx context.Context, id string, req request_models.UpdateListingRequest) error {
	if err := validateListingInput(req.CreateListingRequest); err != nil {
		return err
	}

	existing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching listing: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrListingNotFound
	}

	existing.Route = strings.TrimSpace(req.Route)
	existing.Category = utils.NormalizeCategory(req.Category)
	existing.Title = req.Title
	existing.ShortDesc = req.ShortDesc
	existing.PriceUSD = req.PriceUSD
	existing.DurationMin = req.DurationMin
	existing.Address = req.Address
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.MapsURL = req.MapsURL
	existing.ContactWhatsapp = req.ContactWhatsapp
	existing.TiktokURL = req.TiktokURL
	existing.Tags = pq.StringArray(req.Tags)

	if err := s.listingRepo.Update(ctx, existing); err != nil {
		log.Printf("Error updating listing: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching listing: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrListingNotFound
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		log.Printf("Error deleting listing: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ListingService) GetListingByID(ctx context.Context, id string) (*response_models.ListingResponse, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching listing: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if listing == nil {
		return nil, utils.ErrListingNotFound
	}

	resp := listingToResponse(*listing)
	return &resp, nil
}

func (s *ListingService) ListListings(ctx context.Context, query request_models.ListListingsQuery) ([]response_models.ListingResponse, error) {
	if query.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	category := utils.NormalizeCategory(query.Category)
	if category != "" && !db_models.IsCategory(category) {
		return nil, utils.ErrInvalidInput
	}

	filter := repositories.ListingFilter{
		Route:    strings.TrimSpace(query.Route),
		Category: category,
		Query:    strings.TrimSpace(query.Q),
	}

	listings, err := s.listingRepo.List(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		log.Printf("Error listing listings: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return lo.Map(listings, func(l db_models.Listing, _ int) response_models.ListingResponse {
		return listingToResponse(l)
	}), nil
}

func (s *ListingService) GetRoutes(ctx context.Context) ([]string, error) {
	routes, err := s.listingRepo.DistinctRoutes(ctx)
	if err != nil {
		log.Printf("Error fetching routes: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return routes, nil
}

// GetRouteMapPath returns the route's geolocated listings ordered as a
// walkable path, nearest neighbor from the first stop, with per-leg
// great-circle distances.
func (s *ListingService) GetRouteMapPath(ctx context.Context, route string) ([]response_models.MapMarker, error) {
	listings, err := s.listingRepo.ListByRoute(ctx, route)
	if err != nil {
		log.Printf("Error fetching route listings: %v", err)
		return nil, utils.ErrDatabaseError
	}

	located := lo.Filter(listings, func(l db_models.Listing, _ int) bool {
		return l.Latitude != 0 || l.Longitude != 0
	})
	return sortMarkersByPath(located), nil
}

func validateListingInput(req request_models.CreateListingRequest) error {
	if !db_models.IsCategory(utils.NormalizeCategory(req.Category)) {
		return utils.ErrInvalidInput
	}
	if strings.TrimSpace(req.Route) == "" || strings.TrimSpace(req.Title) == "" {
		return utils.ErrInvalidInput
	}
	if req.PriceUSD < 0 || req.DurationMin < 0 {
		return utils.ErrInvalidInput
	}
	return nil
}

func listingFromRequest(req request_models.CreateListingRequest) *db_models.Listing {
	return &db_models.Listing{
		Route:           strings.TrimSpace(req.Route),
		Category:        utils.NormalizeCategory(req.Category),
		Title:           req.Title,
		ShortDesc:       req.ShortDesc,
		PriceUSD:        req.PriceUSD,
		DurationMin:     req.DurationMin,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MapsURL:         req.MapsURL,
		ContactWhatsapp: req.ContactWhatsapp,
		TiktokURL:       req.TiktokURL,
		Tags:            pq.StringArray(req.Tags),
	}
}

func listingToResponse(l db_models.Listing) response_models.ListingResponse {
	return response_models.ListingResponse{
		ID:              l.ID.String(),
		MerchantID:      l.MerchantID.String(),
		Route:           l.Route,
		Category:        l.Category,
		Title:           l.Title,
		ShortDesc:       l.ShortDesc,
		PriceUSD:        l.PriceUSD,
		DurationMin:     l.DurationMin,
		Address:         l.Address,
		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		MapsURL:         l.MapsURL,
		ContactWhatsapp: l.ContactWhatsapp,
		TiktokURL:       l.TiktokURL,
		Tags:            append([]string{}, l.Tags...),
	}
}
