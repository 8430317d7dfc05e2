package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
	"careconnect/internal/middleware"
)

func MessagingRoutes(r *gin.Engine) {
	messages := r.Group("/messages")
	messages.Use(middleware.RequireAuth())
	{
		messages.POST("/conversations", controllers.CreateConversation)
		messages.GET("/conversations", controllers.ListConversations)
		messages.GET("/conversations/:id", controllers.GetMessages)
		messages.POST("/conversations/:id", controllers.SendMessage)
	}
}
