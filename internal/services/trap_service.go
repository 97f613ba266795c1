package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"tripgems/internal/models/tour_models"
)

// TrapCriteria selects which places get their reviews inspected.
type TrapCriteria struct {
	MinPolarity float64
	MinReviews  int
	MaxReviews  int
	// Percentile of review variance a place must reach to count as a trap.
	Percentile float64
}

func DefaultTrapCriteria() TrapCriteria {
	return TrapCriteria{MinPolarity: 6, MinReviews: 10, MaxReviews: 1000, Percentile: 95}
}

func (c TrapCriteria) matches(p tour_models.PlaceRecord) bool {
	n := p.ReviewCount()
	return p.PolarityValue() >= c.MinPolarity && n >= c.MinReviews && n <= c.MaxReviews
}

type TrapResult struct {
	Places   []tour_models.TrapPlace
	Warnings []string
}

type TrapServiceInterface interface {
	DetectTraps(ctx context.Context, city string, categories []tour_models.Category, criteria TrapCriteria) TrapResult
}

type TrapService struct {
	ingestion   IngestionServiceInterface
	provider    PlacesProvider
	concurrency int
}

func NewTrapService(ingestion IngestionServiceInterface, provider PlacesProvider, concurrency int) TrapServiceInterface {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &TrapService{ingestion: ingestion, provider: provider, concurrency: concurrency}
}

type trapOutcome struct {
	place    *tour_models.TrapPlace
	warnings []string
}

func (s *TrapService) DetectTraps(ctx context.Context, city string, categories []tour_models.Category, criteria TrapCriteria) TrapResult {
	places := s.ingestion.FetchCityPlaces(ctx, city, categories)

	candidates := make([]tour_models.PlaceRecord, 0, len(places))
	for _, p := range places {
		if criteria.matches(p) {
			candidates = append(candidates, p)
		}
	}

	outcomes := make([]trapOutcome, len(candidates))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range candidates {
		g.Go(func() error {
			outcomes[i] = s.inspect(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	var res TrapResult
	inspected := make([]tour_models.TrapPlace, 0, len(outcomes))
	for _, o := range outcomes {
		res.Warnings = append(res.Warnings, o.warnings...)
		if o.place != nil {
			inspected = append(inspected, *o.place)
		}
	}

	// Variance is ranked within each category.
	byCategory := make(map[tour_models.Category][]tour_models.TrapPlace)
	var order []tour_models.Category
	for _, p := range inspected {
		if _, ok := byCategory[p.Category]; !ok {
			order = append(order, p.Category)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	res.Places = make([]tour_models.TrapPlace, 0, len(inspected))
	for _, cat := range order {
		res.Places = append(res.Places, SelectHighVariance(byCategory[cat], criteria.Percentile)...)
	}
	sort.SliceStable(res.Places, func(i, j int) bool {
		a, b := res.Places[i], res.Places[j]
		if a.ReviewCount() != b.ReviewCount() {
			return a.ReviewCount() > b.ReviewCount()
		}
		return a.PolarityValue() > b.PolarityValue()
	})

	log.Info().Str("city", city).Int("inspected", len(inspected)).Int("traps", len(res.Places)).Msg("tourist trap detection finished")
	return res
}

func (s *TrapService) inspect(ctx context.Context, p tour_models.PlaceRecord) trapOutcome {
	raw, err := s.provider.GetReviews(ctx, p.ID)
	if err != nil || len(raw) == 0 {
		msg := fmt.Sprintf("unexpected reviews format for place: %s", p.Name)
		log.Warn().Err(err).Str("place_id", p.ID).Msg(msg)
		return trapOutcome{warnings: []string{msg}}
	}

	monthly, warnings := MonthlyHistogram(raw)
	return trapOutcome{
		place: &tour_models.TrapPlace{
			PlaceRecord:    p,
			MonthlyReviews: monthly,
			ReviewVariance: PopulationVariance(monthly[:]),
		},
		warnings: warnings,
	}
}

// MonthlyHistogram counts reviews per calendar month using the month digits
// of the review timestamp (YYYY-MM...). Malformed entries are skipped.
func MonthlyHistogram(raw []json.RawMessage) ([12]int, []string) {
	var monthly [12]int
	var warnings []string

	for _, r := range raw {
		var review tour_models.Review
		if err := json.Unmarshal(r, &review); err != nil {
			warnings = append(warnings, fmt.Sprintf("unexpected review format: %s", string(r)))
			continue
		}
		if len(review.Time) < 7 {
			warnings = append(warnings, fmt.Sprintf("invalid timestamp format for review: %q", review.Time))
			continue
		}
		month, err := strconv.Atoi(review.Time[5:7])
		if err != nil || month < 1 || month > 12 {
			warnings = append(warnings, fmt.Sprintf("invalid month value in timestamp: %s", review.Time))
			continue
		}
		monthly[month-1]++
	}

	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	return monthly, warnings
}

func PopulationVariance(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return sq / float64(len(values))
}

// Percentile uses linear interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	frac := rank - float64(lo)
	return math.Min(sorted[lo]+(sorted[hi]-sorted[lo])*frac, sorted[hi])
}

// SelectHighVariance keeps places whose review variance reaches the
// given percentile of the group.
func SelectHighVariance(places []tour_models.TrapPlace, percentile float64) []tour_models.TrapPlace {
	if len(places) == 0 {
		return []tour_models.TrapPlace{}
	}
	variances := make([]float64, len(places))
	for i, p := range places {
		variances[i] = p.ReviewVariance
	}
	threshold := Percentile(variances, percentile)

	out := make([]tour_models.TrapPlace, 0, len(places))
	for _, p := range places {
		if p.ReviewVariance >= threshold {
			out = append(out, p)
		}
	}
	return out
}
