package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/models"
	"careconnect/internal/statemachine"
)

type createBookingInput struct {
	CaregiverID         uint   `json:"caregiver_id" binding:"required"`
	Date                string `json:"date" binding:"required"`
	StartTime           string `json:"start_time" binding:"required"`
	EndTime             string `json:"end_time" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
	EmergencyContact    string `json:"emergency_contact"`
	EmergencyPhone      string `json:"emergency_phone"`
}

// CreateBooking prices and persists a new engagement between the
// authenticated care-seeker and a caregiver. The caregiver's hourly rate is
// snapshotted onto the booking so later rate changes never reprice it.
func CreateBooking(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if actor.Type != auth.CareSeeker {
		c.JSON(http.StatusForbidden, gin.H{"error": "only care-seekers can create bookings"})
		return
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "start_time must be formatted HH:MM"})
		return
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "end_time must be formatted HH:MM"})
		return
	}
	duration := end.Sub(start).Hours()
	if duration <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "end_time must be after start_time"})
		return
	}

	var caregiverUser models.User
	if err := config.DB.First(&caregiverUser, input.CaregiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
		return
	}

	var profile models.CaregiverProfile
	if err := config.DB.Where("user_id = ?", input.CaregiverID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "caregiver has no profile and cannot be booked"})
		return
	}
	if profile.HourlyRate <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "caregiver has no hourly rate set and cannot be booked"})
		return
	}

	booking := models.Booking{
		CareSeekerID:        actor.UserID,
		CaregiverID:         input.CaregiverID,
		Date:                input.Date,
		StartTime:           input.StartTime,
		EndTime:             input.EndTime,
		DurationHours:       duration,
		HourlyRate:          profile.HourlyRate,
		TotalAmount:         duration * profile.HourlyRate,
		Status:              models.BookingPending,
		PaymentStatus:       models.PaymentPending,
		SpecialInstructions: input.SpecialInstructions,
		EmergencyContact:    input.EmergencyContact,
		EmergencyPhone:      input.EmergencyPhone,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
		return
	}

	config.DB.Preload("CareSeeker").Preload("Caregiver").First(&booking, booking.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// ListBookings returns the actor's bookings, newest first. Admins see all
// bookings; everyone else sees the side that belongs to them.
func ListBookings(c *gin.Context) {
	actor := auth.ActorFrom(c)

	query := config.DB.Preload("CareSeeker").Preload("Caregiver").Order("created_at desc")
	switch {
	case actor.IsAdmin():
		// no ownership filter
	case actor.Type == auth.Caregiver:
		query = query.Where("caregiver_id = ?", actor.UserID)
	default:
		query = query.Where("care_seeker_id = ?", actor.UserID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking returns a single booking to its participants or an admin.
func GetBooking(c *gin.Context) {
	actor := auth.ActorFrom(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("CareSeeker").Preload("Caregiver").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if !actor.CanAccessBooking(&booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// UpdateBookingStatus moves a booking through its lifecycle. Every change is
// checked against the transition table; even admins cannot revive a terminal
// booking.
func UpdateBookingStatus(c *gin.Context) {
	actor := auth.ActorFrom(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newStatus := models.BookingStatus(body.Status)
	if !statemachine.IsKnownStatus(newStatus) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown booking status"})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if !actor.CanAccessBooking(&booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this booking"})
		return
	}

	if err := statemachine.CanTransition(booking.Status, newStatus); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	booking.Status = newStatus
	switch newStatus {
	case models.BookingConfirmed:
		booking.ConfirmedAt = &now
	case models.BookingCompleted:
		booking.CompletedAt = &now
	case models.BookingCancelled:
		booking.CancelledAt = &now
	}
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

// CancelBooking lets either participant cancel a non-terminal booking with a
// reason. Admins resolve disputes through the status endpoint instead.
func CancelBooking(c *gin.Context) {
	actor := auth.ActorFrom(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// reason is optional; an empty body is fine
	_ = c.ShouldBindJSON(&body)

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if actor.UserID != booking.CareSeekerID && actor.UserID != booking.CaregiverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only booking participants can cancel"})
		return
	}

	if err := statemachine.CanTransition(booking.Status, models.BookingCancelled); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = body.Reason
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"booking": booking,
	})
}

type processPaymentInput struct {
	BookingID     uint    `json:"booking_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

// ProcessPayment simulates a gateway charge. The payment record and the
// booking's move to confirmed are committed in one transaction so a failure
// leaves neither half behind.
func ProcessPayment(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input processPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, input.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if !actor.CanAccessBooking(&booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this booking"})
		return
	}

	if err := statemachine.CanTransition(booking.Status, models.BookingConfirmed); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if booking.PaymentStatus == models.PaymentCompleted {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "booking is already paid"})
		return
	}

	now := time.Now()
	payment := models.Payment{
		BookingID:     booking.ID,
		Amount:        input.Amount,
		Method:        input.PaymentMethod,
		TransactionID: "txn_" + uuid.NewString(),
		Status:        models.PaymentCompleted,
		ProcessedAt:   now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		booking.Status = models.BookingConfirmed
		booking.ConfirmedAt = &now
		booking.PaymentStatus = models.PaymentCompleted
		booking.PaymentMethod = input.PaymentMethod
		return tx.Save(&booking).Error
	})
	if err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).Error("payment transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment processed successfully",
		"payment": payment,
		"booking": booking,
	})
}
