package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.AdminOnly())
	{
		admin.GET("/dashboard", controllers.AdminDashboard)

		admin.GET("/users", controllers.AdminListUsers)
		admin.GET("/users/:id", controllers.AdminGetUser)
		admin.PUT("/users/:id", controllers.AdminUpdateUser)
		admin.DELETE("/users/:id", controllers.AdminDeleteUser)
		admin.POST("/users/:id/suspend", controllers.AdminSuspendUser)
		admin.POST("/users/:id/activate", controllers.AdminActivateUser)

		admin.GET("/caregivers", controllers.AdminListCaregivers)
		admin.PUT("/caregivers/:id/verify", controllers.AdminVerifyCaregiver)

		admin.GET("/bookings", controllers.AdminListBookings)
		admin.PUT("/bookings/:id/status", controllers.AdminUpdateBookingStatus)

		admin.GET("/analytics", controllers.AdminAnalytics)
		admin.GET("/reports/users", controllers.AdminUsersReport)
		admin.GET("/reports/revenue", controllers.AdminRevenueReport)

		admin.GET("/settings", controllers.AdminGetSettings)
		admin.PUT("/settings", controllers.AdminUpdateSettings)

		admin.GET("/testimonials", controllers.AdminListTestimonials)
		admin.POST("/testimonials", controllers.AdminCreateTestimonial)
		admin.PUT("/testimonials/:id", controllers.AdminUpdateTestimonial)
		admin.DELETE("/testimonials/:id", controllers.AdminDeleteTestimonial)
	}
}
