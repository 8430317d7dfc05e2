package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
)

func LocationRoutes(r *gin.Engine) {
	location := r.Group("/location")
	{
		location.GET("/autocomplete", controllers.LocationAutocomplete)
		location.GET("/details", controllers.LocationDetails)
		location.GET("/nearby", controllers.LocationNearby)
		location.GET("/geocode", controllers.LocationGeocode)
		location.GET("/distance", controllers.LocationDistance)
	}
}
