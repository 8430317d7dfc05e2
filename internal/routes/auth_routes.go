package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
	}

	profile := r.Group("/auth")
	profile.Use(middleware.RequireAuth())
	{
		profile.GET("/profile", controllers.GetProfile)
		profile.PUT("/profile", controllers.UpdateProfile)
		profile.POST("/profile/caregiver", controllers.CreateCaregiverProfile)
		profile.POST("/profile/care-seeker", controllers.CreateCareSeekerProfile)
	}
}
