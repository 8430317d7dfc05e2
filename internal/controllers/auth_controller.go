package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/location"
	"careconnect/internal/middleware"
	"careconnect/internal/models"
)

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"user_type" binding:"required,oneof=care_seeker caregiver"`
}

// RegisterUser creates an account for a care-seeker or caregiver and returns
// a token for immediate login.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashed),
		UserType: input.UserType,
		Role:     "user",
		IsActive: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// LoginUser authenticates an email/password pair.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", body.Email).
		Preload("CaregiverProfile").
		Preload("CareSeekerProfile").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is suspended"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login_at", &now).Error; err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the authenticated user with both profile relations.
func GetProfile(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var user models.User
	if err := config.DB.
		Preload("CaregiverProfile").
		Preload("CareSeekerProfile").
		First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies a partial self-service update to the account record.
func UpdateProfile(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Password *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		updates["password"] = string(hashed)
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

type caregiverProfileInput struct {
	HourlyRate      float64  `json:"hourly_rate" binding:"required,gt=0"`
	Bio             string   `json:"bio"`
	Experience      string   `json:"experience" binding:"required"`
	Specialties     []string `json:"specialties" binding:"required,min=1"`
	ServicesOffered []string `json:"services_offered"`
	Availability    string   `json:"availability"`
	Location        string   `json:"location" binding:"required"`
	PlaceID         string   `json:"place_id"`
	FormattedAddr   string   `json:"formatted_address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// CreateCaregiverProfile sets up the public listing for a caregiver account.
// A zero hourly rate is rejected outright so a booking can never price to
// free by accident.
func CreateCaregiverProfile(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input caregiverProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if actor.Type != auth.Caregiver {
		c.JSON(http.StatusForbidden, gin.H{"error": "only caregiver accounts can create a caregiver profile"})
		return
	}

	var existing models.CaregiverProfile
	if err := config.DB.Where("user_id = ?", actor.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "caregiver profile already exists"})
		return
	}

	profile := models.CaregiverProfile{
		UserID:             actor.UserID,
		HourlyRate:         input.HourlyRate,
		Bio:                input.Bio,
		Experience:         input.Experience,
		Specialties:        encodeStringSet(input.Specialties),
		ServicesOffered:    encodeStringSet(input.ServicesOffered),
		Availability:       input.Availability,
		Location:           input.Location,
		PlaceID:            input.PlaceID,
		FormattedAddress:   input.FormattedAddr,
		VerificationStatus: models.VerificationPending,
		Active:             true,
	}

	if input.Latitude != nil && input.Longitude != nil {
		profile.Latitude = *input.Latitude
		profile.Longitude = *input.Longitude
		geo, err := location.EncodePoint(*input.Latitude, *input.Longitude)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		profile.Geo = geo
	}

	if err := config.DB.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "caregiver profile already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create caregiver profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Caregiver profile created successfully",
		"profile": profile,
	})
}

// CreateCareSeekerProfile records care needs and budget for a care-seeker.
func CreateCareSeekerProfile(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input struct {
		CareNeeds []string `json:"care_needs" binding:"required,min=1"`
		Location  string   `json:"location" binding:"required"`
		BudgetMin float64  `json:"budget_min" binding:"omitempty,gte=0"`
		BudgetMax float64  `json:"budget_max" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if actor.Type != auth.CareSeeker {
		c.JSON(http.StatusForbidden, gin.H{"error": "only care-seeker accounts can create a care-seeker profile"})
		return
	}

	var existing models.CareSeekerProfile
	if err := config.DB.Where("user_id = ?", actor.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "care-seeker profile already exists"})
		return
	}

	profile := models.CareSeekerProfile{
		UserID:    actor.UserID,
		CareNeeds: encodeStringSet(input.CareNeeds),
		Location:  input.Location,
		BudgetMin: input.BudgetMin,
		BudgetMax: input.BudgetMax,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "care-seeker profile already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create care-seeker profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Care-seeker profile created successfully",
		"profile": profile,
	})
}
