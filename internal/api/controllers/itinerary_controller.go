package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/services"
	"tripgems/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	mapService       services.MapServiceInterface
}

func NewItineraryController(
	itineraryService services.ItineraryServiceInterface,
	mapService services.MapServiceInterface,
) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		mapService:       mapService,
	}
}

// PlanItinerary godoc
// @Summary Plan an itinerary
// @Description Score, select and route places of a city into a single-day itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body tour_models.UserPreferences true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) PlanItinerary(c *gin.Context) {
	var prefs tour_models.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := i.itineraryService.PlanItinerary(c.Request.Context(), prefs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary planned successfully")
}

// GetItinerary godoc
// @Summary Get a stored itinerary
// @Tags Itineraries
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	result, err := i.itineraryService.GetItinerary(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary fetched successfully")
}

// GetItineraryMap godoc
// @Summary Get a stored itinerary as GeoJSON
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.FeatureCollection
// @Router /itineraries/{id}/map [get]
func (i *ItineraryController) GetItineraryMap(c *gin.Context) {
	result, err := i.itineraryService.GetItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, i.mapService.ItineraryGeoJSON(result))
}
