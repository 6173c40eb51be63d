package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rutaviva/internal/models/request_models"
	"rutaviva/internal/services"
	"rutaviva/pkg/utils"
)

type ListingsController struct {
	listingService services.ListingServiceInterface
}

func NewListingsController(listingService services.ListingServiceInterface) *ListingsController {
	return &ListingsController{
		listingService: listingService,
	}
}

func (l *ListingsController) CreateListing(c *gin.Context) {
	merchantID := c.GetString("user_id")
	if merchantID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Merchant identity is required")
		return
	}

	var req request_models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid listing payload")
		return
	}

	id, err := l.listingService.CreateListing(c.Request.Context(), merchantID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Listing created successfully")
}

func (l *ListingsController) UpdateListing(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Listing ID is required")
		return
	}

	var req request_models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid listing payload")
		return
	}

	if err := l.listingService.UpdateListing(c.Request.Context(), listingID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Listing updated successfully")
}

func (l *ListingsController) DeleteListing(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Listing ID is required")
		return
	}

	if err := l.listingService.DeleteListing(c.Request.Context(), listingID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Listing deleted successfully")
}

func (l *ListingsController) GetListingByID(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Listing ID is required")
		return
	}

	listing, err := l.listingService.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, listing, "Listing fetched successfully")
}

func (l *ListingsController) ListListings(c *gin.Context) {
	var query request_models.ListListingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	listings, err := l.listingService.ListListings(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, listings, "Listings fetched successfully")
}

func (l *ListingsController) GetRoutes(c *gin.Context) {
	routes, err := l.listingService.GetRoutes(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, routes, "Routes fetched successfully")
}

func (l *ListingsController) GetRouteMapPath(c *gin.Context) {
	route := c.Param("route")
	if route == "" {
		utils.RespondError(c, http.StatusBadRequest, "Route is required")
		return
	}

	markers, err := l.listingService.GetRouteMapPath(c.Request.Context(), route)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, markers, "Route map path fetched successfully")
}
