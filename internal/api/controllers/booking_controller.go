package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rutaviva/internal/models/request_models"
	"rutaviva/internal/services"
	"rutaviva/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

func (b *BookingController) CreateOrder(c *gin.Context) {
	var req request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid order payload")
		return
	}

	order, err := b.bookingService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order created successfully")
}

func (b *BookingController) CaptureOrder(c *gin.Context) {
	var req request_models.CaptureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid capture payload")
		return
	}

	capture, err := b.bookingService.CaptureOrder(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, capture, "Order captured successfully")
}

func (b *BookingController) ListBookingsForListing(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Listing ID is required")
		return
	}

	bookings, err := b.bookingService.ListBookingsForListing(c.Request.Context(), listingID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}
