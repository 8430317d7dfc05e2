package location

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeylessClientServesMocks(t *testing.T) {
	cl := &Client{HTTP: http.DefaultClient}

	resp := cl.Autocomplete("Seattle")
	assert.Equal(t, "OK", resp["status"])
	predictions := resp["predictions"].([]map[string]any)
	require.Len(t, predictions, 1)
	assert.Equal(t, "Seattle, WA, USA", predictions[0]["description"])

	details := cl.PlaceDetails("abc123")
	assert.Equal(t, "abc123", details["result"].(map[string]any)["place_id"])

	assert.Equal(t, "OK", cl.NearbySearch("47.6,-122.3", 5000)["status"])
	assert.Equal(t, "OK", cl.Geocode("123 Main St")["status"])
	assert.Equal(t, "OK", cl.Distance("a", "b")["status"])
}

func TestClientPassesThroughUpstreamResponse(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "OK",
			"predictions": []any{map[string]any{"description": "Boston, MA, USA"}},
		})
	}))
	defer srv.Close()

	cl := &Client{
		APIKey:        "test-key",
		PlacesBaseURL: srv.URL,
		MapsBaseURL:   srv.URL,
		HTTP:          srv.Client(),
	}

	resp := cl.Autocomplete("Boston")
	assert.Equal(t, "OK", resp["status"])
	assert.Equal(t, "/autocomplete/json", gotPath)
	assert.Equal(t, []string{"Boston"}, gotQuery["input"])
	assert.Equal(t, []string{"test-key"}, gotQuery["key"])

	predictions := resp["predictions"].([]any)
	require.Len(t, predictions, 1)
	assert.Equal(t, "Boston, MA, USA", predictions[0].(map[string]any)["description"])
}

func TestClientFallsBackOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cl := &Client{
		APIKey:        "test-key",
		PlacesBaseURL: srv.URL,
		MapsBaseURL:   srv.URL,
		HTTP:          srv.Client(),
	}

	// every method degrades to its mock rather than erroring
	assert.Equal(t, "OK", cl.Autocomplete("Seattle")["status"])
	assert.Equal(t, "OK", cl.PlaceDetails("abc")["status"])
	assert.Equal(t, "OK", cl.Geocode("123 Main St")["status"])

	dist := cl.Distance("a", "b")
	rows := dist["rows"].([]map[string]any)
	require.Len(t, rows, 1)
}
