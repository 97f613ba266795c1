package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"tripgems/pkg/utils"
)

type OptimizationStep struct {
	Type     string     `json:"type"`
	ID       int        `json:"id"`
	Location [2]float64 `json:"location"`
	Arrival  int        `json:"arrival"`
	Duration int        `json:"duration"`
}

type OptimizationRoute struct {
	Vehicle int                `json:"vehicle"`
	Steps   []OptimizationStep `json:"steps"`
}

type OptimizationUnassigned struct {
	ID       int        `json:"id"`
	Location [2]float64 `json:"location"`
}

type OptimizationResponse struct {
	Code       int                      `json:"code"`
	Error      string                   `json:"error,omitempty"`
	Routes     []OptimizationRoute      `json:"routes"`
	Unassigned []OptimizationUnassigned `json:"unassigned"`
}

// RoutingClient talks to the vehicle-routing optimizer and the directions API.
type RoutingClient interface {
	Optimize(ctx context.Context, req *OptimizationRequest) (*OptimizationResponse, error)
	// Directions returns a [lng,lat] polyline through coords.
	Directions(ctx context.Context, profile string, coords [][2]float64) ([][2]float64, error)
}

type ORSClient struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewORSClient(baseURL, apiKey string, httpClient *http.Client) *ORSClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiKey == "" {
		log.Warn().Msg("ORS_API_KEY is empty, optimization requests will be rejected upstream")
	}
	return &ORSClient{
		HTTP:    httpClient,
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
	}
}

// Optimize never retries. Any failure, including a non-zero code in the
// payload, is reported as ErrNoFeasibleRoute.
func (c *ORSClient) Optimize(ctx context.Context, req *OptimizationRequest) (*OptimizationResponse, error) {
	body, status, err := c.post(ctx, "/optimization", req)
	if err != nil {
		log.Error().Err(err).Msg("ORS optimization transport error")
		return nil, fmt.Errorf("%w: %v", utils.ErrNoFeasibleRoute, err)
	}
	if status/100 != 2 {
		log.Error().Int("status", status).Str("body", string(body)).Msg("ORS optimization API error")
		return nil, fmt.Errorf("%w: optimizer status %d", utils.ErrNoFeasibleRoute, status)
	}

	var out OptimizationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode optimizer response: %v", utils.ErrNoFeasibleRoute, err)
	}
	if out.Code != 0 {
		log.Error().Int("code", out.Code).Str("error", out.Error).Msg("ORS optimization returned an error")
		return nil, fmt.Errorf("%w: optimizer code %d: %s", utils.ErrNoFeasibleRoute, out.Code, out.Error)
	}
	return &out, nil
}

func (c *ORSClient) Directions(ctx context.Context, profile string, coords [][2]float64) ([][2]float64, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: directions need at least two coordinates", utils.ErrInvalidInput)
	}

	payload := struct {
		Coordinates [][2]float64 `json:"coordinates"`
	}{Coordinates: coords}

	body, status, err := c.post(ctx, "/v2/directions/"+profile+"/geojson", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: directions: %v", utils.ErrUpstream, err)
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("%w: directions status %d", utils.ErrUpstream, status)
	}

	var geo struct {
		Features []struct {
			Geometry struct {
				Coordinates [][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, fmt.Errorf("%w: decode directions: %v", utils.ErrUpstream, err)
	}
	if len(geo.Features) == 0 {
		return nil, fmt.Errorf("%w: directions returned no features", utils.ErrUpstream)
	}
	return geo.Features[0].Geometry.Coordinates, nil
}

func (c *ORSClient) post(ctx context.Context, path string, payload interface{}) (body []byte, status int, err error) {
	ctx, span := utils.StartSpan(ctx, "ors"+path)
	defer func() {
		span.SetAttributes(attribute.Int("http.status_code", status))
		utils.EndSpan(span, err)
	}()

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
