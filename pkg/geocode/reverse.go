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

// reverseResponse is the JSON object returned by /reverse. Nominatim reports
// an unresolvable point with an error field and 200 status.
type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse implements Client.
func (g *geocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "geocode: reverse rate limit")
	}

	params := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
	if g.apiKey != "" {
		params.Set("api_key", g.apiKey)
	}

	reqURL := g.baseURL + "/reverse?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "geocode: reverse build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "geocode: reverse request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("geocode: reverse returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "geocode: reverse read body")
	}

	var result reverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", eris.Wrap(err, "geocode: reverse parse response")
	}

	// "Unable to geocode" comes back as an error field, not a status code.
	if result.Error != "" {
		return "", nil
	}

	return result.DisplayName, nil
}
