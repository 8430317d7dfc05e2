package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect/internal/config"
	"careconnect/internal/models"
)

func TestHealthCheck(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestPublicStats(t *testing.T) {
	r := setupTest(t)

	caregiver, _ := createCaregiverWithRate(t, "cg@example.com", 25.00)
	seeker := createUser(t, "Seeker", "cs@example.com", "care_seeker")

	// only approved+active caregivers count
	_, pending := createCaregiverWithRate(t, "pending@example.com", 30.00)
	require.NoError(t, config.DB.Model(pending).Update("verification_status", models.VerificationPending).Error)

	w := doRequest(t, r, "POST", "/reviews", tokenFor(t, seeker), map[string]any{
		"reviewed_user_id": caregiver.ID,
		"rating":           4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, "GET", "/public/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)
	assert.Equal(t, 1.0, stats["caregivers"])
	assert.Equal(t, 0.0, stats["completed_bookings"])
	assert.Equal(t, 1.0, stats["review_count"])
	assert.Equal(t, 4.0, stats["average_rating"])
}

func TestServiceTypes(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, "GET", "/public/service-types", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	types := decodeBody(t, w)["service_types"].([]any)
	assert.Contains(t, types, "elderly_care")
	assert.Len(t, types, 8)
}

func TestLocationEndpoints(t *testing.T) {
	r := setupTest(t)

	// the keyless test client answers with deterministic mocks
	w := doRequest(t, r, "GET", "/location/autocomplete?input=Seattle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", decodeBody(t, w)["status"])

	w = doRequest(t, r, "GET", "/location/geocode?address=123+Main+St", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "GET", "/location/distance?origin=Seattle&destination=Tacoma", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// missing required params are a 400, not a mock response
	w = doRequest(t, r, "GET", "/location/autocomplete", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, r, "GET", "/location/details", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, r, "GET", "/location/nearby", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
