// Package weather fetches current conditions for a fixed city and keeps the
// single current snapshot up to date.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	errx "krishi-sakhi-backend/internal/core/error"
)

// ErrNotConfigured is returned when the source URL or API key is missing.
var ErrNotConfigured = errors.New("weather source not configured")

// Reading is one normalized observation from the weather source.
type Reading struct {
	Temperature int
	Humidity    int
	Rainfall    float64
}

// Fetcher retrieves the current reading.
type Fetcher interface {
	Fetch(ctx context.Context) (Reading, error)
}

// Compile-time interface check.
var _ Fetcher = (*Client)(nil)

// Client talks to an OpenWeather-compatible "current weather" endpoint.
// The base URL is expected to end with the city query parameter, e.g.
// https://api.openweathermap.org/data/2.5/weather?q=
type Client struct {
	baseURL string
	apiKey  string
	city    string
	http    *http.Client
}

func NewClient(baseURL, apiKey, city string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		city:    city,
		http:    httpClient,
	}
}

type currentResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Rain map[string]float64 `json:"rain"`
}

func (c *Client) Fetch(ctx context.Context) (Reading, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return Reading{}, errx.New(ErrNotConfigured, http.StatusServiceUnavailable, "weather source not configured")
	}

	endpoint := c.baseURL + url.QueryEscape(c.city) + "&appid=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Reading{}, fmt.Errorf("building weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Reading{}, errx.WrapUpstream(err, "weather fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reading{}, errx.WrapUpstream(fmt.Errorf("unexpected status %d", resp.StatusCode), "weather fetch failed")
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Reading{}, errx.WrapUpstream(fmt.Errorf("decoding weather response: %w", err), "weather fetch failed")
	}
	if body.Main == nil {
		return Reading{}, errx.WrapUpstream(errors.New("response has no main section"), "weather fetch failed")
	}

	return Reading{
		Temperature: int(math.Round(body.Main.Temp)),
		Humidity:    int(math.Round(body.Main.Humidity)),
		Rainfall:    body.Rain["1h"],
	}, nil
}
