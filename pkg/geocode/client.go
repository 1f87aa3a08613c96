// Package geocode wraps a Nominatim-compatible geocoding API for forward
// (address to point) and reverse (point to display address) lookups.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the hosted Nominatim-compatible endpoint.
const DefaultBaseURL = "https://geocode.maps.co"

// Client performs forward and reverse geocoding.
type Client interface {
	// Search geocodes a free-form address. A result with Matched=false means
	// the lookup ran but found nothing; that is not an error.
	Search(ctx context.Context, address string) (*SearchResult, error)

	// Reverse converts a point to a display address. An empty string means
	// the lookup ran but found nothing.
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// SearchResult holds the forward geocode output. Latitude and Longitude are
// in the API's (lat, lon) convention; callers storing (lon, lat) must swap.
type SearchResult struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	Matched     bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithAPIKey sets the api_key query parameter sent on every request.
func WithAPIKey(key string) Option {
	return func(g *geocoder) {
		g.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithTimeout bounds each lookup. An unbounded hang would otherwise block
// the requesting operation entirely.
func WithTimeout(d time.Duration) Option {
	return func(g *geocoder) {
		g.httpClient.Timeout = d
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

type geocoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a geocoding Client against the given base URL.
func NewClient(baseURL string, opts ...Option) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	g := &geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(1, 1), // free-tier default: 1 req/s
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
