package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// searchResponse is one entry of the JSON array returned by /search.
// Nominatim serializes coordinates as strings.
type searchResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search implements Client.
func (g *geocoder) Search(ctx context.Context, address string) (*SearchResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: search rate limit")
	}

	params := url.Values{"q": {address}}
	if g.apiKey != "" {
		params.Set("api_key", g.apiKey)
	}

	reqURL := g.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: search build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: search request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: search read body")
	}

	var results []searchResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "geocode: search parse response")
	}

	if len(results) == 0 {
		return &SearchResult{Matched: false}, nil
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: search parse lat %q", first.Lat)
	}
	lng, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: search parse lon %q", first.Lon)
	}

	return &SearchResult{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: first.DisplayName,
		Matched:     true,
	}, nil
}
