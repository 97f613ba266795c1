package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"tripgems/internal/models/tour_models"
	"tripgems/pkg/utils"
)

// PlacesProvider is the places API as seen by the rest of the service.
type PlacesProvider interface {
	GetPlaces(ctx context.Context, city string, category tour_models.Category) ([]tour_models.PlaceRecord, error)
	// GetReviews returns the raw review elements; callers decide what a
	// malformed element means.
	GetReviews(ctx context.Context, placeID string) ([]json.RawMessage, error)
}

type TourpediaClient struct {
	HTTP    *http.Client
	BaseURL string
	Cache   PlaceCache
}

func NewTourpediaClient(baseURL string, httpClient *http.Client, cache PlaceCache) *TourpediaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TourpediaClient{
		HTTP:    httpClient,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cache:   cache,
	}
}

type tourpediaPlace struct {
	ID         json.RawMessage `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Location   string          `json:"location"`
	Lat        *float64        `json:"lat"`
	Lng        *float64        `json:"lng"`
	Polarity   *float64        `json:"polarity"`
	NumReviews *float64        `json:"numReviews"`
}

// toRecord reports false for places without coordinates; they cannot be
// mapped or routed.
func (p tourpediaPlace) toRecord() (tour_models.PlaceRecord, bool) {
	if p.Lat == nil || p.Lng == nil {
		return tour_models.PlaceRecord{}, false
	}
	rec := tour_models.PlaceRecord{
		ID:       strings.Trim(string(p.ID), `"`),
		Name:     p.Name,
		Category: tour_models.ParseCategory(p.Category),
		Location: p.Location,
		Lat:      *p.Lat,
		Lng:      *p.Lng,
		Polarity: p.Polarity,
	}
	if p.NumReviews != nil {
		n := int(*p.NumReviews)
		rec.NumReviews = &n
	}
	return rec, true
}

func (c *TourpediaClient) GetPlaces(ctx context.Context, city string, category tour_models.Category) ([]tour_models.PlaceRecord, error) {
	key := placesCacheKey(city, string(category))

	body, cached := c.cacheGet(ctx, key)
	if !cached {
		q := url.Values{}
		q.Set("location", city)
		q.Set("category", string(category))

		var err error
		body, err = c.get(ctx, "/getPlaces", q)
		if err != nil {
			return nil, err
		}
	}

	var payload []tourpediaPlace
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode places for %s/%s: %v", utils.ErrUpstream, city, category, err)
	}

	if !cached {
		c.cacheSet(ctx, key, body)
	}

	out := make([]tour_models.PlaceRecord, 0, len(payload))
	for _, p := range payload {
		if rec, ok := p.toRecord(); ok {
			out = append(out, rec)
		}
	}
	if skipped := len(payload) - len(out); skipped > 0 {
		log.Warn().
			Str("city", city).
			Str("category", string(category)).
			Int("skipped", skipped).
			Msg("places without coordinates skipped")
	}
	return out, nil
}

func (c *TourpediaClient) GetReviews(ctx context.Context, placeID string) ([]json.RawMessage, error) {
	key := reviewsCacheKey(placeID)

	body, cached := c.cacheGet(ctx, key)
	if !cached {
		q := url.Values{}
		q.Set("placeId", placeID)

		var err error
		body, err = c.get(ctx, "/getReviewsByPlaceId", q)
		if err != nil {
			return nil, err
		}
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: reviews for place %s are not a list: %v", utils.ErrUpstream, placeID, err)
	}

	if !cached {
		c.cacheSet(ctx, key, body)
	}
	return payload, nil
}

func (c *TourpediaClient) get(ctx context.Context, path string, q url.Values) (body []byte, err error) {
	ctx, span := utils.StartSpan(ctx, "tourpedia"+path, attribute.String("http.query", q.Encode()))
	defer func() { utils.EndSpan(span, err) }()

	u := c.BaseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tourpedia http error: %v", utils.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: tourpedia bad status: %s", utils.ErrUpstream, resp.Status)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: tourpedia read body: %v", utils.ErrUpstream, err)
	}
	return bytes.TrimSpace(body), nil
}

func (c *TourpediaClient) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.Cache == nil {
		return nil, false
	}
	return c.Cache.Get(ctx, key)
}

func (c *TourpediaClient) cacheSet(ctx context.Context, key string, body []byte) {
	if c.Cache == nil {
		return
	}
	c.Cache.Set(ctx, key, body)
}

func logCacheError(err error, key, op string) {
	log.Warn().Err(err).Str("key", key).Str("op", op).Msg("place cache error")
}
