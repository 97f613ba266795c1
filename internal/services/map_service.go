package services

import (
	"tripgems/internal/models/response_models"
	"tripgems/internal/models/tour_models"
)

// Marker colours for place layers.
var CategoryColors = map[tour_models.Category]string{
	tour_models.CategoryPOI:           "blue",
	tour_models.CategoryRestaurant:    "green",
	tour_models.CategoryAttraction:    "red",
	tour_models.CategoryAccommodation: "gray",
}

// Marker colours for itinerary layers.
const (
	colorEndpoint   = "red"
	colorRestaurant = "blue"
	colorVisited    = "green"
	colorUnvisited  = "gray"
	colorRoute      = "blue"
)

func CategoryColor(c tour_models.Category) string {
	if color, ok := CategoryColors[tour_models.ParseCategory(string(c))]; ok {
		return color
	}
	return "gray"
}

type MapServiceInterface interface {
	PlacesGeoJSON(places []tour_models.PlaceRecord) response_models.FeatureCollection
	ItineraryGeoJSON(res *response_models.ItineraryResult) response_models.FeatureCollection
}

type MapService struct{}

func NewMapService() MapServiceInterface {
	return &MapService{}
}

func point(lat, lng float64, props map[string]interface{}) response_models.GeoJSONFeature {
	return response_models.GeoJSONFeature{
		Type: "Feature",
		Geometry: response_models.GeoJSONGeometry{
			Type:        "Point",
			Coordinates: [2]float64{lng, lat},
		},
		Properties: props,
	}
}

// PlacesGeoJSON emits one marker per place; "weight" carries polarity for heat maps.
func (m *MapService) PlacesGeoJSON(places []tour_models.PlaceRecord) response_models.FeatureCollection {
	fc := response_models.FeatureCollection{Type: "FeatureCollection", Features: make([]response_models.GeoJSONFeature, 0, len(places))}
	for _, p := range places {
		fc.Features = append(fc.Features, point(p.Lat, p.Lng, map[string]interface{}{
			"id":         p.ID,
			"name":       p.Name,
			"category":   p.Category,
			"color":      CategoryColor(p.Category),
			"polarity":   p.PolarityValue(),
			"numReviews": p.ReviewCount(),
			"weight":     p.PolarityValue(),
		}))
	}
	return fc
}

func (m *MapService) ItineraryGeoJSON(res *response_models.ItineraryResult) response_models.FeatureCollection {
	fc := response_models.FeatureCollection{Type: "FeatureCollection", Features: make([]response_models.GeoJSONFeature, 0)}
	if res == nil {
		return fc
	}

	if len(res.Route) > 1 {
		fc.Features = append(fc.Features, response_models.GeoJSONFeature{
			Type: "Feature",
			Geometry: response_models.GeoJSONGeometry{
				Type:        "LineString",
				Coordinates: res.Route,
			},
			Properties: map[string]interface{}{"color": colorRoute, "weight": 5, "opacity": 0.8},
		})
	}

	visited := make(map[int]struct{})
	for _, st := range res.Steps {
		visited[st.LocationIndex] = struct{}{}

		color := colorVisited
		label := string(st.Category)
		switch {
		case st.Type == tour_models.StepStart:
			color, label = colorEndpoint, "Start"
		case st.Type == tour_models.StepEnd:
			color, label = colorEndpoint, "End"
		case st.Category.IsRestaurant():
			color = colorRestaurant
		}
		fc.Features = append(fc.Features, point(st.Lat, st.Lng, map[string]interface{}{
			"name":    st.Name,
			"label":   label,
			"type":    st.Type,
			"arrival": st.ArrivalClock,
			"color":   color,
			"visited": true,
		}))
	}

	if len(res.Locations) > 0 {
		for idx, loc := range res.Locations {
			if _, ok := visited[idx]; ok {
				continue
			}
			fc.Features = append(fc.Features, unvisitedPoint(loc.Lat, loc.Lng, loc.Name, loc.Category))
		}
		return fc
	}

	// Stored itineraries only keep the dropped stops.
	for _, d := range res.Dropped {
		fc.Features = append(fc.Features, unvisitedPoint(d.Lat, d.Lng, d.Name, d.Category))
	}
	return fc
}

func unvisitedPoint(lat, lng float64, name string, category tour_models.Category) response_models.GeoJSONFeature {
	return point(lat, lng, map[string]interface{}{
		"name":     name,
		"category": category,
		"color":    colorUnvisited,
		"visited":  false,
	})
}
