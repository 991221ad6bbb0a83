// Package gflights provides a client for the Google Flights scraper
// sidecar: a browser-automation service that, given an origin, destination
// and date, returns the flight offers rendered on the results page. The
// sidecar's page interaction is opaque to this module; only the request and
// response contract matters here.
package gflights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/milesrun/hubhop/internal/model"
)

const defaultBaseURL = "http://localhost:8233"

// searchRequest is the body for POST /search.
type searchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	Passengers    int    `json:"passengers"`
	Currency      string `json:"currency,omitempty"`
	AirlineFilter string `json:"airline_filter,omitempty"`
}

// searchResponse is the sidecar's response: offers grouped by the results
// page's category headings ("top_flights", "all_flights", ...).
type searchResponse struct {
	Categories map[string][]model.Offer `json:"categories"`
	Error      string                   `json:"error,omitempty"`
}

// Client queries the scraper sidecar. Each sidecar session holds a single
// browser page, so a Client must not be shared across concurrent callers;
// workers create their own via the factory.
type Client struct {
	baseURL       string
	currency      string
	airlineFilter string
	http          *http.Client
	limiter       *rate.Limiter
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom sidecar URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCurrency sets the currency the sidecar should request prices in.
func WithCurrency(currency string) Option {
	return func(c *Client) { c.currency = currency }
}

// WithAirlineFilter asks the sidecar to apply the results page's airline
// filter before extracting offers.
func WithAirlineFilter(airline string) Option {
	return func(c *Client) { c.airlineFilter = airline }
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// NewClient creates a sidecar client. Scrapes take seconds, so the default
// timeout is generous and the default rate limit conservative.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		currency: "INR",
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
		limiter: rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query fetches offers for one directed segment.
func (c *Client) Query(ctx context.Context, origin, destination, departureDate string, passengers int) (map[string][]model.Offer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "gflights: rate limit wait")
	}

	body, err := json.Marshal(searchRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		Passengers:    passengers,
		Currency:      c.currency,
		AirlineFilter: c.airlineFilter,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gflights: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "gflights: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "gflights: search %s-%s", origin, destination)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gflights: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("gflights: search %s-%s: status %d: %s",
			origin, destination, resp.StatusCode, truncate(string(data), 200))
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, eris.Wrap(err, "gflights: parse response")
	}
	if parsed.Error != "" {
		return nil, eris.Errorf("gflights: sidecar error: %s", parsed.Error)
	}
	if parsed.Categories == nil {
		return map[string][]model.Offer{}, nil
	}
	return parsed.Categories, nil
}

// Close ends the sidecar session for this client.
func (c *Client) Close() error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/close", nil)
	if err != nil {
		return eris.Wrap(err, "gflights: build close request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		// Session teardown is best-effort; the sidecar reaps idle sessions.
		return nil
	}
	resp.Body.Close()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s…", s[:n])
}
