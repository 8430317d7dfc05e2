package location

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// Client talks to the Google Places / Geocoding / Distance Matrix web
// services. When no API key is configured, or the upstream call fails, every
// method degrades to a deterministic mock response instead of surfacing the
// failure - location features must never take the core API down.
type Client struct {
	APIKey        string
	PlacesBaseURL string
	MapsBaseURL   string
	HTTP          *http.Client
}

// NewClientFromEnv builds a client from GOOGLE_PLACES_API_KEY. A missing key
// is allowed and simply pins the client to mock mode.
func NewClientFromEnv() *Client {
	key := os.Getenv("GOOGLE_PLACES_API_KEY")
	if key == "" {
		logrus.Warn("GOOGLE_PLACES_API_KEY not configured, location services will serve mock responses")
	}
	return &Client{
		APIKey:        key,
		PlacesBaseURL: "https://maps.googleapis.com/maps/api/place",
		MapsBaseURL:   "https://maps.googleapis.com/maps/api",
		HTTP:          &http.Client{Timeout: 10 * time.Second},
	}
}

// Autocomplete returns place suggestions for a partial address input.
func (cl *Client) Autocomplete(input string) map[string]any {
	if cl.APIKey == "" {
		return mockAutocomplete(input)
	}
	resp, err := cl.get(cl.PlacesBaseURL+"/autocomplete/json", url.Values{
		"input": {input},
		"key":   {cl.APIKey},
		"types": {"(cities)"},
	})
	if err != nil {
		logrus.WithError(err).WithField("input", input).Error("places autocomplete failed")
		return mockAutocomplete(input)
	}
	return resp
}

// PlaceDetails resolves a place id to its formatted address and coordinates.
func (cl *Client) PlaceDetails(placeID string) map[string]any {
	if cl.APIKey == "" {
		return mockPlaceDetails(placeID)
	}
	resp, err := cl.get(cl.PlacesBaseURL+"/details/json", url.Values{
		"place_id": {placeID},
		"key":      {cl.APIKey},
		"fields":   {"formatted_address,geometry,name,place_id"},
	})
	if err != nil {
		logrus.WithError(err).WithField("place_id", placeID).Error("places details failed")
		return mockPlaceDetails(placeID)
	}
	return resp
}

// NearbySearch lists places around "lat,lng" within radius metres.
func (cl *Client) NearbySearch(locationParam string, radiusMeters int) map[string]any {
	if cl.APIKey == "" {
		return mockNearbySearch()
	}
	resp, err := cl.get(cl.PlacesBaseURL+"/nearbysearch/json", url.Values{
		"location": {locationParam},
		"radius":   {fmt.Sprintf("%d", radiusMeters)},
		"key":      {cl.APIKey},
	})
	if err != nil {
		logrus.WithError(err).WithField("location", locationParam).Error("places nearby search failed")
		return mockNearbySearch()
	}
	return resp
}

// Geocode resolves a free-form address to coordinates.
func (cl *Client) Geocode(address string) map[string]any {
	if cl.APIKey == "" {
		return mockGeocode(address)
	}
	resp, err := cl.get(cl.MapsBaseURL+"/geocode/json", url.Values{
		"address": {address},
		"key":     {cl.APIKey},
	})
	if err != nil {
		logrus.WithError(err).WithField("address", address).Error("geocoding failed")
		return mockGeocode(address)
	}
	return resp
}

// Distance returns the driving distance/duration between two addresses.
func (cl *Client) Distance(origin, destination string) map[string]any {
	if cl.APIKey == "" {
		return mockDistance()
	}
	resp, err := cl.get(cl.MapsBaseURL+"/distancematrix/json", url.Values{
		"origins":      {origin},
		"destinations": {destination},
		"units":        {"imperial"},
		"key":          {cl.APIKey},
	})
	if err != nil {
		logrus.WithError(err).Error("distance matrix failed")
		return mockDistance()
	}
	return resp
}

func (cl *Client) get(endpoint string, params url.Values) (map[string]any, error) {
	resp, err := cl.HTTP.Get(endpoint + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mock responses keep the front-end functional in development environments
// without a billing-enabled Google account.

func mockAutocomplete(input string) map[string]any {
	return map[string]any{
		"status": "OK",
		"predictions": []map[string]any{
			{
				"description": input + ", WA, USA",
				"place_id":    "mock_place_id",
				"structured_formatting": map[string]any{
					"main_text":      input,
					"secondary_text": "WA, USA",
				},
			},
		},
	}
}

func mockPlaceDetails(placeID string) map[string]any {
	return map[string]any{
		"status": "OK",
		"result": map[string]any{
			"name":              "Sample Location",
			"place_id":          placeID,
			"formatted_address": "Sample Address, WA, USA",
			"geometry": map[string]any{
				"location": map[string]any{"lat": 47.6062, "lng": -122.3321},
			},
		},
	}
}

func mockNearbySearch() map[string]any {
	return map[string]any{"status": "OK", "results": []any{}}
}

func mockGeocode(address string) map[string]any {
	return map[string]any{
		"status": "OK",
		"results": []map[string]any{
			{
				"formatted_address": address,
				"geometry": map[string]any{
					"location": map[string]any{"lat": 47.6062, "lng": -122.3321},
				},
			},
		},
	}
}

func mockDistance() map[string]any {
	return map[string]any{
		"status": "OK",
		"rows": []map[string]any{
			{
				"elements": []map[string]any{
					{
						"status":   "OK",
						"distance": map[string]any{"text": "10.5 mi", "value": 16898},
						"duration": map[string]any{"text": "25 mins", "value": 1500},
					},
				},
			},
		},
	}
}
