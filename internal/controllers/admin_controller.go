package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/models"
	"careconnect/internal/statemachine"
)

// Admin endpoints answer with a {success, message, data} envelope, the
// convention the back-office front-end expects.

func adminOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func adminFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// AdminDashboard summarizes platform health for the back-office landing page.
func AdminDashboard(c *gin.Context) {
	db := config.DB

	var totalUsers, totalCaregivers, totalCareSeekers, pendingApprovals int64
	var activeBookings, totalBookings, recentRegistrations int64
	var totalRevenue float64

	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.CaregiverProfile{}).Count(&totalCaregivers)
	db.Model(&models.CareSeekerProfile{}).Count(&totalCareSeekers)
	db.Model(&models.CaregiverProfile{}).Where("verification_status = ?", models.VerificationPending).Count(&pendingApprovals)
	db.Model(&models.Booking{}).Where("status = ?", models.BookingConfirmed).Count(&activeBookings)
	db.Model(&models.Booking{}).Count(&totalBookings)
	db.Model(&models.Booking{}).Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)
	db.Model(&models.User{}).Where("created_at >= ?", time.Now().AddDate(0, 0, -7)).Count(&recentRegistrations)

	var recentUsers []models.User
	db.Order("created_at desc").Limit(5).Find(&recentUsers)
	var recentBookings []models.Booking
	db.Preload("CareSeeker").Preload("Caregiver").Order("created_at desc").Limit(5).Find(&recentBookings)
	var pendingProfiles []models.CaregiverProfile
	db.Preload("User").Where("verification_status = ?", models.VerificationPending).
		Order("created_at desc").Limit(5).Find(&pendingProfiles)

	adminOK(c, gin.H{
		"stats": gin.H{
			"total_users":                 totalUsers,
			"total_caregivers":            totalCaregivers,
			"total_care_seekers":          totalCareSeekers,
			"pending_caregiver_approvals": pendingApprovals,
			"active_bookings":             activeBookings,
			"total_bookings":              totalBookings,
			"total_revenue":               totalRevenue,
			"recent_registrations":        recentRegistrations,
		},
		"activities": gin.H{
			"recent_users":      recentUsers,
			"recent_bookings":   recentBookings,
			"pending_approvals": pendingProfiles,
		},
	})
}

// AdminListUsers searches and pages through every account.
func AdminListUsers(c *gin.Context) {
	query := config.DB.Model(&models.User{}).
		Preload("CaregiverProfile").
		Preload("CareSeekerProfile")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"lower(name) LIKE lower(?) OR lower(email) LIKE lower(?) OR phone LIKE ?",
			like, like, like,
		)
	}
	if userType := c.Query("user_type"); userType != "" {
		query = query.Where("user_type = ?", userType)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	page, perPage, offset := pagination(c)

	var users []models.User
	if err := query.Order("created_at desc").Limit(perPage).Offset(offset).Find(&users).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	adminOK(c, gin.H{"users": users, "page": page, "per_page": perPage, "total": total})
}

// AdminGetUser returns one account with its profiles and booking history.
func AdminGetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var user models.User
	if err := config.DB.
		Preload("CaregiverProfile").
		Preload("CareSeekerProfile").
		First(&user, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "User not found")
		return
	}

	var bookings []models.Booking
	side := "care_seeker_id = ?"
	if user.UserType == string(auth.Caregiver) {
		side = "caregiver_id = ?"
	}
	config.DB.Preload("CareSeeker").Preload("Caregiver").
		Where(side, user.ID).
		Order("created_at desc").
		Find(&bookings)

	adminOK(c, gin.H{"user": user, "bookings": bookings})
}

// AdminUpdateUser edits account fields, including role and type flags no
// self-service endpoint exposes.
func AdminUpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Phone    *string `json:"phone"`
		UserType *string `json:"user_type" binding:"omitempty,oneof=care_seeker caregiver admin"`
		Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
		IsActive *bool   `json:"is_active"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "User not found")
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.UserType != nil {
		updates["user_type"] = *input.UserType
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				adminFail(c, http.StatusConflict, "Email already in use")
				return
			}
			adminFail(c, http.StatusInternalServerError, "Failed to update user")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully", "data": user})
}

// AdminDeleteUser removes an account. Admins cannot delete themselves.
func AdminDeleteUser(c *gin.Context) {
	actor := auth.ActorFrom(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	if id == actor.UserID {
		adminFail(c, http.StatusForbidden, "Cannot delete your own account")
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "User not found")
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

func setUserActive(c *gin.Context, active bool, message string) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_active", active).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": user})
}

// AdminSuspendUser soft-disables an account; the user can no longer log in.
func AdminSuspendUser(c *gin.Context) {
	setUserActive(c, false, "User suspended")
}

// AdminActivateUser lifts a suspension.
func AdminActivateUser(c *gin.Context) {
	setUserActive(c, true, "User activated")
}

// AdminListCaregivers pages through caregiver profiles for the verification
// queue.
func AdminListCaregivers(c *gin.Context) {
	query := config.DB.Model(&models.CaregiverProfile{}).Preload("User")

	if status := c.Query("verification_status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialties LIKE ?", "%"+specialty+"%")
	}

	var total int64
	query.Count(&total)

	page, perPage, offset := pagination(c)

	var profiles []models.CaregiverProfile
	if err := query.Order("created_at desc").Limit(perPage).Offset(offset).Find(&profiles).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to fetch caregivers")
		return
	}

	adminOK(c, gin.H{"caregivers": profiles, "page": page, "per_page": perPage, "total": total})
}

// AdminVerifyCaregiver approves or rejects a caregiver profile, the gate that
// controls whether the profile is publicly bookable.
func AdminVerifyCaregiver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid caregiver id")
		return
	}

	var input struct {
		VerificationStatus string `json:"verification_status" binding:"required,oneof=approved rejected"`
		AdminNotes         string `json:"admin_notes" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}

	var profile models.CaregiverProfile
	if err := config.DB.First(&profile, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "Caregiver not found")
		return
	}

	updates := map[string]any{
		"verification_status": input.VerificationStatus,
		"admin_notes":         input.AdminNotes,
	}
	if input.VerificationStatus == models.VerificationApproved {
		now := time.Now()
		updates["verified_at"] = &now
	} else {
		updates["verified_at"] = nil
	}

	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to update caregiver profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Caregiver profile updated successfully", "data": profile})
}

// AdminListBookings pages through all bookings with status and date filters.
func AdminListBookings(c *gin.Context) {
	query := config.DB.Model(&models.Booking{}).Preload("CareSeeker").Preload("Caregiver")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("date_from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var total int64
	query.Count(&total)

	page, perPage, offset := pagination(c)

	var bookings []models.Booking
	if err := query.Order("created_at desc").Limit(perPage).Offset(offset).Find(&bookings).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	adminOK(c, gin.H{"bookings": bookings, "page": page, "per_page": perPage, "total": total})
}

// AdminUpdateBookingStatus is the back-office override. It still honors the
// transition table; a completed or cancelled booking stays that way.
func AdminUpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var input struct {
		Status     string `json:"status" binding:"required"`
		AdminNotes string `json:"admin_notes" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}
	newStatus := models.BookingStatus(input.Status)
	if !statemachine.IsKnownStatus(newStatus) {
		adminFail(c, http.StatusUnprocessableEntity, "Unknown booking status")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "Booking not found")
		return
	}

	if err := statemachine.CanTransition(booking.Status, newStatus); err != nil {
		adminFail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	now := time.Now()
	booking.Status = newStatus
	booking.AdminNotes = input.AdminNotes
	switch newStatus {
	case models.BookingConfirmed:
		booking.ConfirmedAt = &now
	case models.BookingCompleted:
		booking.CompletedAt = &now
	case models.BookingCancelled:
		booking.CancelledAt = &now
	}
	if err := config.DB.Save(&booking).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to update booking status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking status updated successfully", "data": booking})
}

// AdminAnalytics reports growth and revenue over a trailing window.
func AdminAnalytics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	db := config.DB

	var newUsers, newCaregivers, newCareSeekers int64
	db.Model(&models.User{}).Where("created_at >= ?", since).Count(&newUsers)
	db.Model(&models.User{}).Where("user_type = ? AND created_at >= ?", auth.Caregiver, since).Count(&newCaregivers)
	db.Model(&models.User{}).Where("user_type = ? AND created_at >= ?", auth.CareSeeker, since).Count(&newCareSeekers)

	var totalBookings, completedBookings, cancelledBookings int64
	var revenue float64
	db.Model(&models.Booking{}).Where("created_at >= ?", since).Count(&totalBookings)
	db.Model(&models.Booking{}).Where("status = ? AND created_at >= ?", models.BookingCompleted, since).Count(&completedBookings)
	db.Model(&models.Booking{}).Where("status = ? AND created_at >= ?", models.BookingCancelled, since).Count(&cancelledBookings)
	db.Model(&models.Booking{}).Where("payment_status = ? AND created_at >= ?", models.PaymentCompleted, since).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue)

	type topCaregiver struct {
		CaregiverID  uint  `json:"caregiver_id"`
		BookingCount int64 `json:"booking_count"`
	}
	var top []topCaregiver
	db.Model(&models.Booking{}).
		Select("caregiver_id, COUNT(*) as booking_count").
		Where("created_at >= ?", since).
		Group("caregiver_id").
		Order("booking_count desc").
		Limit(10).
		Scan(&top)

	adminOK(c, gin.H{
		"period_days": days,
		"user_growth": gin.H{
			"total":        newUsers,
			"caregivers":   newCaregivers,
			"care_seekers": newCareSeekers,
		},
		"booking_stats": gin.H{
			"total_bookings":     totalBookings,
			"completed_bookings": completedBookings,
			"cancelled_bookings": cancelledBookings,
			"total_revenue":      revenue,
		},
		"top_caregivers": top,
	})
}

// AdminUsersReport breaks the user base down by type, status and caregiver
// verification for export.
func AdminUsersReport(c *gin.Context) {
	db := config.DB

	var total, careSeekers, caregivers, admins, active, suspended int64
	db.Model(&models.User{}).Count(&total)
	db.Model(&models.User{}).Where("user_type = ?", auth.CareSeeker).Count(&careSeekers)
	db.Model(&models.User{}).Where("user_type = ?", auth.Caregiver).Count(&caregivers)
	db.Model(&models.User{}).Where("user_type = ?", auth.Admin).Count(&admins)
	db.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	db.Model(&models.User{}).Where("is_active = ?", false).Count(&suspended)

	var verifiedCaregivers int64
	db.Model(&models.CaregiverProfile{}).
		Where("verification_status = ?", models.VerificationApproved).
		Count(&verifiedCaregivers)

	adminOK(c, gin.H{
		"total_users": total,
		"by_type": gin.H{
			"care_seekers": careSeekers,
			"caregivers":   caregivers,
			"admins":       admins,
		},
		"active_users":        active,
		"suspended_users":     suspended,
		"verified_caregivers": verifiedCaregivers,
	})
}

// AdminRevenueReport sums paid bookings, overall and over a trailing window,
// with the top-earning caregivers.
func AdminRevenueReport(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	db := config.DB

	var totalRevenue, periodRevenue float64
	var paidBookings int64
	db.Model(&models.Booking{}).Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)
	db.Model(&models.Booking{}).
		Where("payment_status = ? AND created_at >= ?", models.PaymentCompleted, since).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&periodRevenue)
	db.Model(&models.Booking{}).
		Where("payment_status = ? AND created_at >= ?", models.PaymentCompleted, since).
		Count(&paidBookings)

	var averageValue float64
	if paidBookings > 0 {
		averageValue = math.Round(periodRevenue/float64(paidBookings)*100) / 100
	}

	type caregiverRevenue struct {
		CaregiverID uint    `json:"caregiver_id"`
		Revenue     float64 `json:"revenue"`
	}
	var top []caregiverRevenue
	db.Model(&models.Booking{}).
		Select("caregiver_id, SUM(total_amount) as revenue").
		Where("payment_status = ? AND created_at >= ?", models.PaymentCompleted, since).
		Group("caregiver_id").
		Order("revenue desc").
		Limit(10).
		Scan(&top)

	adminOK(c, gin.H{
		"period_days":           days,
		"total_revenue":         totalRevenue,
		"period_revenue":        periodRevenue,
		"paid_bookings":         paidBookings,
		"average_booking_value": averageValue,
		"top_caregivers":        top,
	})
}

// AdminGetSettings returns the platform configuration store.
func AdminGetSettings(c *gin.Context) {
	var settings []models.SystemSetting
	if err := config.DB.Order(`"key" asc`).Find(&settings).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	adminOK(c, gin.H{"settings": settings})
}

// AdminUpdateSettings updates existing settings by key. Unknown keys are
// rejected so a typo cannot silently create dead configuration.
func AdminUpdateSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed"})
		return
	}

	for key, value := range input {
		var setting models.SystemSetting
		if err := config.DB.Where("key = ?", key).First(&setting).Error; err != nil {
			adminFail(c, http.StatusUnprocessableEntity, "Unknown setting: "+key)
			return
		}
		if err := config.DB.Model(&setting).Update("value", value).Error; err != nil {
			adminFail(c, http.StatusInternalServerError, "Failed to update settings")
			return
		}
	}

	var settings []models.SystemSetting
	config.DB.Order(`"key" asc`).Find(&settings)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Settings updated successfully",
		"data":    gin.H{"settings": settings},
	})
}

// Testimonial management for landing-page content.

func AdminListTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := config.DB.Order("created_at desc").Find(&testimonials).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	adminOK(c, gin.H{"testimonials": testimonials})
}

func AdminCreateTestimonial(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		UserRole string `json:"role" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		Approved bool   `json:"approved"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}

	testimonial := models.Testimonial{
		Name:     input.Name,
		UserRole: input.UserRole,
		Content:  input.Content,
		Rating:   input.Rating,
		Approved: input.Approved,
	}
	if err := config.DB.Create(&testimonial).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Testimonial created", "data": testimonial})
}

func AdminUpdateTestimonial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid testimonial id")
		return
	}

	var testimonial models.Testimonial
	if err := config.DB.First(&testimonial, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "Testimonial not found")
		return
	}

	var input struct {
		Name     *string `json:"name"`
		UserRole *string `json:"role"`
		Content  *string `json:"content"`
		Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
		Approved *bool   `json:"approved"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.UserRole != nil {
		updates["user_role"] = *input.UserRole
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.Approved != nil {
		updates["approved"] = *input.Approved
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&testimonial).Updates(updates).Error; err != nil {
			adminFail(c, http.StatusInternalServerError, "Failed to update testimonial")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Testimonial updated", "data": testimonial})
}

func AdminDeleteTestimonial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		adminFail(c, http.StatusBadRequest, "Invalid testimonial id")
		return
	}

	var testimonial models.Testimonial
	if err := config.DB.First(&testimonial, id).Error; err != nil {
		adminFail(c, http.StatusNotFound, "Testimonial not found")
		return
	}

	if err := config.DB.Delete(&testimonial).Error; err != nil {
		adminFail(c, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Testimonial deleted"})
}
