package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
)

// SetupRouter wires every route group onto a fresh engine. Middleware must be
// attached before the groups register their handlers.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	r.GET("/health", controllers.HealthCheck)

	AuthRoutes(r)
	CaregiverRoutes(r)
	BookingRoutes(r)
	ReviewRoutes(r)
	MessagingRoutes(r)
	AdminRoutes(r)
	PublicRoutes(r)
	LocationRoutes(r)

	return r
}
