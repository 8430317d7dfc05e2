package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/models"
)

type createReviewInput struct {
	ReviewedUserID uint   `json:"reviewed_user_id" binding:"required"`
	BookingID      *uint  `json:"booking_id"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment"`
}

// CreateReview records a rating and, when the reviewed user is a caregiver,
// recomputes their aggregate rating in the same transaction. The aggregate is
// a full recompute over all reviews for the user, so it is correct by
// construction at this scale.
func CreateReview(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input createReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ReviewedUserID == actor.UserID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "you cannot review yourself"})
		return
	}

	var reviewed models.User
	if err := config.DB.First(&reviewed, input.ReviewedUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reviewed user not found"})
		return
	}

	if input.BookingID != nil {
		var booking models.Booking
		if err := config.DB.First(&booking, *input.BookingID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		if actor.UserID != booking.CareSeekerID && actor.UserID != booking.CaregiverID {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this booking"})
			return
		}

		// One review per reviewer per booking.
		var count int64
		config.DB.Model(&models.Review{}).
			Where("reviewer_id = ? AND booking_id = ?", actor.UserID, *input.BookingID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this booking"})
			return
		}
	}

	review := models.Review{
		ReviewerID:     actor.UserID,
		ReviewedUserID: input.ReviewedUserID,
		BookingID:      input.BookingID,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var profile models.CaregiverProfile
		if err := tx.Where("user_id = ?", input.ReviewedUserID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // reviewed user is not a caregiver, nothing to aggregate
			}
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("reviewed_user_id = ?", input.ReviewedUserID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("reviewed_user_id = ?", input.ReviewedUserID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&profile).Updates(map[string]any{
			"rating":       math.Round(avg*100) / 100,
			"review_count": count,
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this booking"})
			return
		}
		logrus.WithError(err).WithField("reviewed_user_id", input.ReviewedUserID).Error("review transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetUserReviews lists reviews received by a user, newest first.
func GetUserReviews(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var reviews []models.Review
	if err := config.DB.Where("reviewed_user_id = ?", userID).
		Preload("Reviewer").
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
