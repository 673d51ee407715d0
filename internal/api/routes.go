package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"estatehub/server/internal/ratelimit"
)

func SetupRoutes(router *gin.Engine, handler *Handler, limiter *ratelimit.Limiter) {
	router.Use(cors.Default())

	api := router.Group("/api")
	api.Use(limiter.Middleware("api", handler.cfg.RateLimit.MaxRequests))
	{
		api.GET("/properties", handler.SearchProperties)
		api.GET("/properties/featured", handler.GetFeaturedProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.POST("/leads", handler.CreateLead)
		api.GET("/search/suggestions", handler.GetSearchSuggestions)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login",
			limiter.Middleware("auth", handler.cfg.RateLimit.MaxAuthRequests),
			handler.Login)

		protected := admin.Group("", handler.RequireAdmin)
		{
			protected.GET("/verify", handler.VerifyAdmin)
			protected.GET("/stats", handler.GetDashboardStats)

			protected.GET("/properties", handler.AdminSearchProperties)
			protected.POST("/properties", handler.CreateProperty)
			protected.PUT("/properties/:id", handler.UpdateProperty)
			protected.DELETE("/properties/:id", handler.DeleteProperty)

			protected.GET("/leads", handler.GetLeads)
			protected.PUT("/leads/:id", handler.UpdateLead)
			protected.DELETE("/leads/:id", handler.DeleteLead)
		}
	}
}
