package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/controllers"
)

func PublicRoutes(r *gin.Engine) {
	public := r.Group("/public")
	{
		public.GET("/stats", controllers.PublicStats)
		public.GET("/testimonials", controllers.PublicTestimonials)
		public.GET("/service-types", controllers.ServiceTypes)
	}
}
