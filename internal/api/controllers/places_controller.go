package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tripgems/internal/models/db_models"
	"tripgems/internal/models/request_models"
	"tripgems/internal/models/response_models"
	"tripgems/internal/models/tour_models"
	"tripgems/internal/services"
	"tripgems/pkg/utils"
)

type PlacesController struct {
	placeService services.PlaceServiceInterface
	mapService   services.MapServiceInterface
}

func NewPlacesController(placeService services.PlaceServiceInterface, mapService services.MapServiceInterface) *PlacesController {
	return &PlacesController{
		placeService: placeService,
		mapService:   mapService,
	}
}

// GetScoredPlaces godoc
// @Summary Rank the places of a city
// @Tags Places
// @Param city path string true "City name"
// @Param categories query string false "Comma separated categories"
// @Param policy query string false "standard or underground" default(standard)
// @Param limit query int false "Maximum places returned"
// @Success 200 {object} utils.APIResponse
// @Router /places/{city}/scored [get]
func (p *PlacesController) GetScoredPlaces(c *gin.Context) {
	var q request_models.PlacesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	city := c.Param("city")
	policy := tour_models.ParsePolicy(q.Policy)
	places, err := p.placeService.ScoredPlaces(c.Request.Context(), city, services.ParseCategoryList(q.Categories), policy, q.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ScoredPlacesResponse{
		City:   city,
		Policy: policy,
		Count:  len(places),
		Places: places,
	}, "Places scored successfully")
}

// GetHiddenGems godoc
// @Summary List hidden gems of a city
// @Description Well rated places with few reviews
// @Tags Places
// @Param city path string true "City name"
// @Param categories query string false "Comma separated categories"
// @Param min_reviews query int false "Minimum reviews" default(10)
// @Param max_reviews query int false "Maximum reviews" default(10000)
// @Param limit query int false "Maximum places returned"
// @Success 200 {object} utils.APIResponse
// @Router /places/{city}/gems [get]
func (p *PlacesController) GetHiddenGems(c *gin.Context) {
	var q request_models.GemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	city := c.Param("city")
	gems, err := p.placeService.HiddenGems(c.Request.Context(), city, services.ParseCategoryList(q.Categories), q.MinReviews, q.MaxReviews, q.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PlacesResponse{City: city, Count: len(gems), Places: gems}, "Hidden gems fetched successfully")
}

// GetTouristTraps godoc
// @Summary List likely tourist traps of a city
// @Description Popular places whose reviews spike in a few months of the year
// @Tags Places
// @Param city path string true "City name"
// @Param categories query string false "Comma separated categories"
// @Param min_polarity query number false "Minimum polarity" default(6)
// @Param min_reviews query int false "Minimum reviews" default(10)
// @Param max_reviews query int false "Maximum reviews" default(1000)
// @Success 200 {object} utils.APIResponse
// @Router /places/{city}/traps [get]
func (p *PlacesController) GetTouristTraps(c *gin.Context) {
	var q request_models.TrapsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	criteria := services.DefaultTrapCriteria()
	if _, ok := c.GetQuery("min_polarity"); ok {
		criteria.MinPolarity = q.MinPolarity
	}
	if q.MinReviews > 0 {
		criteria.MinReviews = q.MinReviews
	}
	if q.MaxReviews > 0 {
		criteria.MaxReviews = q.MaxReviews
	}

	city := c.Param("city")
	res, err := p.placeService.TouristTraps(c.Request.Context(), city, services.ParseCategoryList(q.Categories), criteria)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.TrapsResponse{
		City:     city,
		Count:    len(res.Places),
		Places:   res.Places,
		Warnings: res.Warnings,
	}, "Tourist traps fetched successfully")
}

// GetStoredPlaces godoc
// @Summary Read back persisted places of a city
// @Tags Places
// @Param city path string true "City name"
// @Param kind query string false "scored, gem or trap" default(gem)
// @Success 200 {object} utils.APIResponse
// @Router /places/{city}/stored [get]
func (p *PlacesController) GetStoredPlaces(c *gin.Context) {
	kind := db_models.PlaceKind(strings.ToLower(c.DefaultQuery("kind", string(db_models.PlaceKindGem))))

	rows, err := p.placeService.StoredPlaces(c.Request.Context(), c.Param("city"), kind)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "Stored places fetched successfully")
}

// GetPlacesMap godoc
// @Summary Get city places as GeoJSON
// @Tags Places
// @Produce json
// @Param city path string true "City name"
// @Param layer query string false "gems, scored or traps" default(gems)
// @Param categories query string false "Comma separated categories"
// @Success 200 {object} response_models.FeatureCollection
// @Router /places/{city}/map [get]
func (p *PlacesController) GetPlacesMap(c *gin.Context) {
	ctx := c.Request.Context()
	city := c.Param("city")
	categories := services.ParseCategoryList(c.Query("categories"))

	var records []tour_models.PlaceRecord
	switch strings.ToLower(c.DefaultQuery("layer", "gems")) {
	case "gems":
		gems, err := p.placeService.HiddenGems(ctx, city, categories, 0, 0, 0)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		records = gems
	case "scored":
		scored, err := p.placeService.ScoredPlaces(ctx, city, categories, tour_models.ParsePolicy(c.Query("policy")), 0)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		for _, s := range scored {
			records = append(records, s.PlaceRecord)
		}
	case "traps":
		res, err := p.placeService.TouristTraps(ctx, city, categories, services.DefaultTrapCriteria())
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		for _, t := range res.Places {
			records = append(records, t.PlaceRecord)
		}
	default:
		utils.RespondError(c, http.StatusBadRequest, "Unknown map layer")
		return
	}

	c.JSON(http.StatusOK, p.mapService.PlacesGeoJSON(records))
}
