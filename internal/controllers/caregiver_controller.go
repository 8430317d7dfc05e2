package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/location"
	"careconnect/internal/models"
)

// caregiverSummary is the public listing shape for one caregiver.
func caregiverSummary(p *models.CaregiverProfile) gin.H {
	return gin.H{
		"id":                  p.ID,
		"user_id":             p.UserID,
		"name":                p.User.Name,
		"hourly_rate":         p.HourlyRate,
		"experience":          p.Experience,
		"bio":                 p.Bio,
		"specialties":         decodeStringSet(p.Specialties),
		"services_offered":    decodeStringSet(p.ServicesOffered),
		"availability":        p.Availability,
		"location":            p.Location,
		"verification_status": p.VerificationStatus,
		"rating":              p.Rating,
		"review_count":        p.ReviewCount,
	}
}

var caregiverSortColumns = map[string]bool{
	"rating":       true,
	"hourly_rate":  true,
	"review_count": true,
	"created_at":   true,
}

// ListCaregivers is the public search endpoint: filter, sort and paginate
// active caregiver listings.
func ListCaregivers(c *gin.Context) {
	query := config.DB.Model(&models.CaregiverProfile{}).Preload("User").Where("active = ?", true)

	if loc := c.Query("location"); loc != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+loc+"%")
	}
	if careType := c.Query("care_type"); careType != "" {
		query = query.Where("specialties LIKE ? OR services_offered LIKE ?", "%"+careType+"%", "%"+careType+"%")
	}
	if minRate := c.Query("min_rate"); minRate != "" {
		if v, err := strconv.ParseFloat(minRate, 64); err == nil {
			query = query.Where("hourly_rate >= ?", v)
		}
	}
	if maxRate := c.Query("max_rate"); maxRate != "" {
		if v, err := strconv.ParseFloat(maxRate, 64); err == nil {
			query = query.Where("hourly_rate <= ?", v)
		}
	}
	if c.Query("verified") == "true" {
		query = query.Where("verification_status = ?", models.VerificationApproved)
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("rating >= ?", v)
		}
	}

	sortBy := c.DefaultQuery("sort_by", "rating")
	if !caregiverSortColumns[sortBy] {
		sortBy = "rating"
	}
	sortOrder := "desc"
	if c.Query("sort_order") == "asc" {
		sortOrder = "asc"
	}

	var total int64
	query.Count(&total)

	page, perPage, offset := pagination(c)

	var profiles []models.CaregiverProfile
	if err := query.Order(sortBy + " " + sortOrder).
		Limit(perPage).Offset(offset).
		Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list caregivers"})
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		out = append(out, caregiverSummary(&profiles[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"caregivers": out,
		"page":       page,
		"per_page":   perPage,
		"total":      total,
	})
}

// GetCaregiver returns one caregiver listing together with their reviews.
func GetCaregiver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid caregiver id"})
		return
	}

	var profile models.CaregiverProfile
	if err := config.DB.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	var reviews []models.Review
	config.DB.Where("reviewed_user_id = ?", profile.UserID).
		Preload("Reviewer").
		Order("created_at desc").
		Find(&reviews)

	detail := caregiverSummary(&profile)
	detail["email"] = profile.User.Email
	detail["phone"] = profile.User.Phone

	reviewOut := make([]gin.H, 0, len(reviews))
	for i := range reviews {
		reviewOut = append(reviewOut, gin.H{
			"id":            reviews[i].ID,
			"rating":        reviews[i].Rating,
			"comment":       reviews[i].Comment,
			"reviewer_name": reviews[i].Reviewer.Name,
			"created_at":    reviews[i].CreatedAt,
		})
	}
	detail["reviews"] = reviewOut

	c.JSON(http.StatusOK, detail)
}

// NearbyCaregivers filters approved caregivers by great-circle distance from
// a point. Profiles without coordinates are skipped.
func NearbyCaregivers(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radiusKm := 25.0
	if raw := c.Query("radius_km"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			radiusKm = v
		}
	}

	var profiles []models.CaregiverProfile
	if err := config.DB.Preload("User").
		Where("active = ? AND verification_status = ?", true, models.VerificationApproved).
		Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list caregivers"})
		return
	}

	type scored struct {
		profile  *models.CaregiverProfile
		distance float64
	}
	var matches []scored
	for i := range profiles {
		pLat, pLng, ok := location.DecodePoint(profiles[i].Geo)
		if !ok {
			continue
		}
		d := location.HaversineKm(lat, lng, pLat, pLng)
		if d <= radiusKm {
			matches = append(matches, scored{&profiles[i], d})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].distance < matches[j].distance })

	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		entry := caregiverSummary(m.profile)
		entry["distance_km"] = m.distance
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"caregivers": out, "radius_km": radiusKm})
}

// ListCareRequests shows open calls for care, filterable for browsing
// caregivers.
func ListCareRequests(c *gin.Context) {
	query := config.DB.Model(&models.CareRequest{}).Preload("CareSeeker.User")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if careType := c.Query("care_type"); careType != "" {
		query = query.Where("care_type = ?", careType)
	}
	if loc := c.Query("location"); loc != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+loc+"%")
	}

	page, perPage, offset := pagination(c)

	var requests []models.CareRequest
	if err := query.Order("created_at desc").Limit(perPage).Offset(offset).Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list care requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"care_requests": requests,
		"page":          page,
		"per_page":      perPage,
	})
}

type careRequestInput struct {
	CareType    string  `json:"care_type" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date"`
	HourlyRate  float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Urgency     string  `json:"urgency" binding:"omitempty,oneof=low medium high"`
}

// CreateCareRequest posts an open call for care on behalf of the actor's
// care-seeker profile.
func CreateCareRequest(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input careRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if actor.Type != auth.CareSeeker {
		c.JSON(http.StatusForbidden, gin.H{"error": "only care-seekers can create care requests"})
		return
	}

	var profile models.CareSeekerProfile
	if err := config.DB.Where("user_id = ?", actor.UserID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "care-seeker profile required"})
		return
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	request := models.CareRequest{
		CareSeekerID: profile.ID,
		CareType:     input.CareType,
		Description:  input.Description,
		Location:     input.Location,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		HourlyRate:   input.HourlyRate,
		Urgency:      urgency,
		Status:       "open",
	}
	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create care request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Care request created successfully",
		"care_request": request,
	})
}

// UpdateCareRequest applies a partial update; only the owning care-seeker may
// touch it.
func UpdateCareRequest(c *gin.Context) {
	actor := auth.ActorFrom(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid care request id"})
		return
	}

	var request models.CareRequest
	if err := config.DB.Preload("CareSeeker").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "care request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if request.CareSeeker.UserID != actor.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can update this care request"})
		return
	}

	var input struct {
		CareType    *string  `json:"care_type"`
		Description *string  `json:"description"`
		Location    *string  `json:"location"`
		StartDate   *string  `json:"start_date"`
		EndDate     *string  `json:"end_date"`
		HourlyRate  *float64 `json:"hourly_rate"`
		Urgency     *string  `json:"urgency" binding:"omitempty,oneof=low medium high"`
		Status      *string  `json:"status" binding:"omitempty,oneof=open in_progress completed cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if input.CareType != nil {
		updates["care_type"] = *input.CareType
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.HourlyRate != nil {
		updates["hourly_rate"] = *input.HourlyRate
	}
	if input.Urgency != nil {
		updates["urgency"] = *input.Urgency
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&request).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update care request"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Care request updated successfully",
		"care_request": request,
	})
}
