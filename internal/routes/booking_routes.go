package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.POST("", controllers.CreateBooking)
		bookings.GET("", controllers.ListBookings)
		bookings.GET("/:id", controllers.GetBooking)
		bookings.PUT("/:id/status", controllers.UpdateBookingStatus)
		bookings.POST("/:id/cancel", controllers.CancelBooking)
		bookings.POST("/payment", controllers.ProcessPayment)
	}
}
