package services

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"tripgems/internal/models/tour_models"
)

// Selection is the outcome of candidate selection. Warnings are
// non-fatal conditions the caller should report.
type Selection struct {
	Places   []tour_models.ScoredPlace `json:"places"`
	Warnings []string                  `json:"warnings,omitempty"`
}

func (s Selection) RestaurantCount() int {
	n := 0
	for _, p := range s.Places {
		if p.Category.IsRestaurant() {
			n++
		}
	}
	return n
}

type SelectorServiceInterface interface {
	SelectTopLocations(places []tour_models.ScoredPlace, prefs tour_models.UserPreferences, n int) Selection
}

type SelectorService struct{}

func NewSelectorService() SelectorServiceInterface {
	return &SelectorService{}
}

func (s *SelectorService) SelectTopLocations(places []tour_models.ScoredPlace, prefs tour_models.UserPreferences, n int) Selection {
	filtered := make([]tour_models.ScoredPlace, 0, len(places))
	for _, p := range places {
		if p.PolarityValue() >= prefs.MinPolarity && p.ReviewCount() >= prefs.MinNumReviews {
			filtered = append(filtered, p)
		}
	}

	if n <= 0 {
		return Selection{Places: []tour_models.ScoredPlace{}}
	}

	if !prefs.WantsRestaurants() {
		return Selection{Places: topByScore(filtered, n)}
	}

	minRest, maxRest := prefs.RestaurantBounds()

	var restaurants, others []tour_models.ScoredPlace
	for _, p := range filtered {
		if p.Category.IsRestaurant() {
			restaurants = append(restaurants, p)
		} else {
			others = append(others, p)
		}
	}

	var sel Selection
	var chosen []tour_models.ScoredPlace
	if len(restaurants) < minRest {
		sel.addWarning(fmt.Sprintf("only %d restaurants available, which is less than the minimum required (%d)", len(restaurants), minRest))
		chosen = restaurants
	} else {
		chosen = topByScore(restaurants, maxRest)
	}
	if len(chosen) > n {
		chosen = chosen[:n]
	}

	remaining := n - len(chosen)
	chosen = append(chosen, topByScore(others, remaining)...)
	sel.Places = dedupeByID(chosen)

	if got := sel.RestaurantCount(); got < minRest {
		sel.addWarning(fmt.Sprintf("only %d restaurants selected, which is less than the desired minimum (%d)", got, minRest))
	}
	return sel
}

func (s *Selection) addWarning(msg string) {
	log.Warn().Msg(msg)
	s.Warnings = append(s.Warnings, msg)
}

// topByScore returns up to n places by descending score; ties keep input order.
func topByScore(places []tour_models.ScoredPlace, n int) []tour_models.ScoredPlace {
	if n <= 0 {
		return []tour_models.ScoredPlace{}
	}
	sorted := make([]tour_models.ScoredPlace, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func dedupeByID(places []tour_models.ScoredPlace) []tour_models.ScoredPlace {
	seen := make(map[string]struct{}, len(places))
	out := make([]tour_models.ScoredPlace, 0, len(places))
	for _, p := range places {
		if p.ID != "" {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
