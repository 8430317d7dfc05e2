package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careconnect/internal/config"
	"careconnect/internal/models"
)

// HealthCheck is the unauthenticated liveness endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "CareConnect API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// PublicStats powers the landing-page counters.
func PublicStats(c *gin.Context) {
	db := config.DB

	var caregivers, completedBookings, reviewCount int64
	var avgRating float64

	db.Model(&models.CaregiverProfile{}).
		Where("active = ? AND verification_status = ?", true, models.VerificationApproved).
		Count(&caregivers)
	db.Model(&models.Booking{}).Where("status = ?", models.BookingCompleted).Count(&completedBookings)
	db.Model(&models.Review{}).Count(&reviewCount)
	db.Model(&models.Review{}).Select("COALESCE(AVG(rating), 0)").Scan(&avgRating)

	c.JSON(http.StatusOK, gin.H{
		"caregivers":         caregivers,
		"completed_bookings": completedBookings,
		"review_count":       reviewCount,
		"average_rating":     math.Round(avgRating*100) / 100,
	})
}

// PublicTestimonials lists approved testimonials only.
func PublicTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := config.DB.Where("approved = ?", true).
		Order("created_at desc").
		Find(&testimonials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list testimonials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}

// ServiceTypes is the static catalogue the front-end renders as search
// filters.
func ServiceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service_types": []string{
			"elderly_care",
			"child_care",
			"special_needs_care",
			"companion_care",
			"respite_care",
			"overnight_care",
			"housekeeping",
			"transportation",
		},
	})
}
