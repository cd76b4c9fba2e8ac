// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Planner endpoints
	StartPlannerHandler         gin.HandlerFunc
	ResumePlannerHandler        gin.HandlerFunc
	GetPlannerSessionHandler    gin.HandlerFunc
	CancelPlannerSessionHandler gin.HandlerFunc

	// Research endpoints
	SearchHandler  gin.HandlerFunc
	GeocodeHandler gin.HandlerFunc
	FlightsHandler gin.HandlerFunc
}
