package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rutaviva/internal/models/request_models"
	"rutaviva/internal/services"
	"rutaviva/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// BuildItinerary responds 200 even when generation failed; in that case
// the body carries the fallback plan plus an ai_error diagnostic.
func (i *ItineraryController) BuildItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary request")
		return
	}

	resp, err := i.itineraryService.BuildItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary built successfully")
}
