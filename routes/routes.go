// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/rangelkoli/Wanderly/handlers"
	"github.com/rangelkoli/Wanderly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlannerRoutes sets up the planning session lifecycle endpoints.
func RegisterPlannerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/planner")
	{
		api.POST("/session", hb.StartPlannerHandler)
		api.POST("/session/:sessionID/resume", hb.ResumePlannerHandler)
		api.GET("/session/:sessionID", hb.GetPlannerSessionHandler)
		api.DELETE("/session/:sessionID", hb.CancelPlannerSessionHandler)
	}
}

// RegisterResearchRoutes registers direct research gateway endpoints.
func RegisterResearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/research")
	{
		api.GET("/search", hb.SearchHandler)
		api.GET("/geocode", hb.GeocodeHandler)
		api.GET("/flights", hb.FlightsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wanderly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterPlannerRoutes(r, hb)
	RegisterResearchRoutes(r, hb)
	RegisterHealthRoute(r)
}
