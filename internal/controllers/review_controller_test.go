package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect/internal/config"
	"careconnect/internal/models"
)

func TestReviewAggregation(t *testing.T) {
	r := setupTest(t)

	caregiver, profile := createCaregiverWithRate(t, "cg@example.com", 25.00)
	seekerA := createUser(t, "Seeker A", "a@example.com", "care_seeker")
	seekerB := createUser(t, "Seeker B", "b@example.com", "care_seeker")

	w := doRequest(t, r, "POST", "/reviews", tokenFor(t, seekerA), map[string]any{
		"reviewed_user_id": caregiver.ID,
		"rating":           4,
		"comment":          "very attentive",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(profile, profile.ID).Error)
	assert.Equal(t, 4.0, profile.Rating)
	assert.Equal(t, 1, profile.ReviewCount)

	w = doRequest(t, r, "POST", "/reviews", tokenFor(t, seekerB), map[string]any{
		"reviewed_user_id": caregiver.ID,
		"rating":           5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(profile, profile.ID).Error)
	assert.Equal(t, 4.5, profile.Rating)
	assert.Equal(t, 2, profile.ReviewCount)

	// newest first, reviewer attached
	w = doRequest(t, r, "GET", fmt.Sprintf("/reviews/user/%d", caregiver.ID), tokenFor(t, seekerA), nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decodeBody(t, w)["reviews"].([]any)
	require.Len(t, reviews, 2)
	first := reviews[0].(map[string]any)
	assert.Equal(t, 5.0, first["rating"])
	assert.Equal(t, "Seeker B", first["reviewer"].(map[string]any)["name"])
}

func TestReviewValidation(t *testing.T) {
	r := setupTest(t)

	caregiver, _ := createCaregiverWithRate(t, "cg@example.com", 25.00)
	seeker := createUser(t, "Seeker", "cs@example.com", "care_seeker")
	token := tokenFor(t, seeker)

	// rating bounds
	w := doRequest(t, r, "POST", "/reviews", token, map[string]any{
		"reviewed_user_id": caregiver.ID,
		"rating":           6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown reviewed user
	w = doRequest(t, r, "POST", "/reviews", token, map[string]any{
		"reviewed_user_id": 9999,
		"rating":           3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// self-review
	w = doRequest(t, r, "POST", "/reviews", token, map[string]any{
		"reviewed_user_id": seeker.ID,
		"rating":           5,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOneReviewPerBooking(t *testing.T) {
	r := setupTest(t)

	caregiver, _ := createCaregiverWithRate(t, "cg@example.com", 25.00)
	seeker := createUser(t, "Seeker", "cs@example.com", "care_seeker")
	token := tokenFor(t, seeker)

	booking := createBooking(t, r, token, caregiver.ID, "09:00", "11:00")
	bookingID := uint(booking["ID"].(float64))

	w := doRequest(t, r, "POST", "/reviews", token, map[string]any{
		"reviewed_user_id": caregiver.ID,
		"booking_id":       bookingID,
		"rating":           5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// second review of the same booking by the same reviewer is rejected
	w = doRequest(t, r, "POST", "/reviews", token, map[string]any{
		"reviewed_user_id": caregiver.ID,
		"booking_id":       bookingID,
		"rating":           1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// a non-participant cannot review the booking
	outsider := createUser(t, "Outsider", "out@example.com", "care_seeker")
	w = doRequest(t, r, "POST", "/reviews", tokenFor(t, outsider), map[string]any{
		"reviewed_user_id": caregiver.ID,
		"booking_id":       bookingID,
		"rating":           1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewOfNonCaregiverSkipsAggregation(t *testing.T) {
	r := setupTest(t)

	caregiver, _ := createCaregiverWithRate(t, "cg@example.com", 25.00)
	seeker := createUser(t, "Seeker", "cs@example.com", "care_seeker")

	// caregivers may review care-seekers; there is just no profile aggregate
	w := doRequest(t, r, "POST", "/reviews", tokenFor(t, caregiver), map[string]any{
		"reviewed_user_id": seeker.ID,
		"rating":           4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	config.DB.Model(&models.Review{}).Where("reviewed_user_id = ?", seeker.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
