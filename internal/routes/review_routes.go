package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func ReviewRoutes(r *gin.Engine) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.RequireAuth())
	{
		reviews.POST("", controllers.CreateReview)
		reviews.GET("/user/:userId", controllers.GetUserReviews)
	}
}
