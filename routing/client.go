// Package routing talks to the external directions provider that supplies
// distance and travel time between two address strings.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Estimate is one leg of a route. A zero Estimate means "no route found".
type Estimate struct {
	DistanceKm   float64 `json:"distance_km"`
	DurationMin  float64 `json:"duration_min"`
	DistanceText string  `json:"distance_text"`
	DurationText string  `json:"duration_text"`
}

// Provider resolves a one-way route between two addresses.
type Provider interface {
	Route(ctx context.Context, origin, destination string) (Estimate, error)
}

// Client calls a Google-Directions-style JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client with a bounded request timeout. A hung
// provider must not hang the assignment request with it.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// directionsResponse mirrors the fields we read from the provider payload
type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"` // meters
				Text  string  `json:"text"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
				Text  string  `json:"text"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route fetches a one-way leg. A reachable provider that finds no route
// yields a zero Estimate and no error; transport failures are errors.
func (c *Client) Route(ctx context.Context, origin, destination string) (Estimate, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json?"+q.Encode(), nil)
	if err != nil {
		return Estimate{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Estimate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("routing provider returned status %d", resp.StatusCode)
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Estimate{}, fmt.Errorf("decode routing response: %w", err)
	}

	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return Estimate{}, nil
	}
	leg := body.Routes[0].Legs[0]
	return Estimate{
		DistanceKm:   leg.Distance.Value / 1000,
		DurationMin:  leg.Duration.Value / 60,
		DistanceText: leg.Distance.Text,
		DurationText: leg.Duration.Text,
	}, nil
}
