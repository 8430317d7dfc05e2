package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func CaregiverRoutes(r *gin.Engine) {
	// Public browsing
	caregivers := r.Group("/caregivers")
	{
		caregivers.GET("", controllers.ListCaregivers)
		caregivers.GET("/nearby", controllers.NearbyCaregivers)
		caregivers.GET("/:id", controllers.GetCaregiver)
	}

	requests := r.Group("/care-requests")
	{
		requests.GET("", controllers.ListCareRequests)
	}

	protected := r.Group("/care-requests")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("", controllers.CreateCareRequest)
		protected.PUT("/:id", controllers.UpdateCareRequest)
	}
}
