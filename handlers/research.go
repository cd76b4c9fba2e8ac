// File: handlers/research.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rangelkoli/Wanderly/services/research"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResearchHandler exposes the research gateway directly, mostly for clients
// that want raw search or geocoding without a planning session.
type ResearchHandler struct {
	Gateway research.Gateway
	Logger  *zap.Logger
}

func NewResearchHandler(gw research.Gateway, logger *zap.Logger) *ResearchHandler {
	return &ResearchHandler{Gateway: gw, Logger: logger}
}

// Search runs a web search. Never fails: a degraded provider chain comes
// back as an empty result list.
func (h *ResearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameter", "q")
		return
	}
	maxResults, _ := strconv.Atoi(c.DefaultQuery("max", "5"))
	topic := c.DefaultQuery("topic", "general")

	resp := h.Gateway.Search(c.Request.Context(), query, maxResults, topic)
	c.JSON(http.StatusOK, resp)
}

// Geocode resolves a free-form address to coordinates.
func (h *ResearchHandler) Geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameter", "address")
		return
	}

	point, err := h.Gateway.Geocode(c.Request.Context(), address)
	if err != nil {
		h.writeResearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": point})
}

// Flights looks up flight options between two cities.
func (h *ResearchHandler) Flights(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "origin, destination")
		return
	}
	adults, _ := strconv.Atoi(c.DefaultQuery("adults", "1"))

	summary, err := h.Gateway.Flights(c.Request.Context(), research.FlightQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: c.Query("date"),
		ReturnDate:    c.Query("return"),
		Adults:        adults,
	})
	if err != nil {
		h.writeResearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ResearchHandler) writeResearchError(c *gin.Context, err error) {
	var cfgErr *research.ConfigurationError
	var extErr *research.ExternalServiceError
	switch {
	case errors.As(err, &cfgErr):
		h.Logger.Error("Research request failed on missing configuration", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "API authentication error"})
	case errors.As(err, &extErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Please try again later"})
	default:
		h.Logger.Error("Research request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
	}
}
