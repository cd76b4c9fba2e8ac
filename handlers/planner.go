// File: handlers/planner.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/services/planner"
	"github.com/rangelkoli/Wanderly/services/research"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlannerHandler exposes the planning session lifecycle over HTTP.
type PlannerHandler struct {
	Service planner.PlannerService
	Logger  *zap.Logger
}

func NewPlannerHandler(svc planner.PlannerService, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{Service: svc, Logger: logger}
}

// StartSession opens a planning session from a free-text message and any
// trip details the client already knows.
func (h *PlannerHandler) StartSession(c *gin.Context) {
	var input struct {
		Message string              `json:"message"`
		UserID  string              `json:"userId"`
		Trip    *models.TripContext `json:"trip"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.StartSession(c.Request.Context(), planner.StartRequest{
		Message: input.Message,
		UserID:  input.UserID,
		Trip:    input.Trip,
	})
	if err != nil {
		h.writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, plannerEnvelope(resp))
}

// ResumeSession feeds the client's reply into a suspended session. The body
// is passed through verbatim; the planner normalizes whatever shape arrives.
func (h *PlannerHandler) ResumeSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Resume(c.Request.Context(), sessionID, payload)
	if err != nil {
		h.writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, plannerEnvelope(resp))
}

// GetSession returns the persisted session state, pending request included.
func (h *PlannerHandler) GetSession(c *gin.Context) {
	sess, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CancelSession discards a session. Cancelling an unknown session is a no-op.
func (h *PlannerHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}

// plannerEnvelope renders a planner response for the wire. A suspension is
// shaped by its kind: a lone clarification question collapses to a single
// question object, a batch keeps the list, and a selection carries the full
// place cards with its bounds.
func plannerEnvelope(resp *planner.PlannerResponse) gin.H {
	out := gin.H{
		"sessionId": resp.SessionID,
		"status":    resp.Status,
		"phase":     resp.Phase,
	}
	if resp.Itinerary != nil {
		out["itinerary"] = resp.Itinerary
	}
	if resp.Pending == nil {
		return out
	}

	switch resp.Pending.Kind {
	case models.PendingAsk:
		if len(resp.Pending.Questions) == 1 {
			q := resp.Pending.Questions[0]
			out["request"] = gin.H{
				"type":     "question",
				"id":       q.ID,
				"question": q.Text,
				"choices":  q.Choices,
			}
		} else {
			out["request"] = gin.H{
				"type":      "questions",
				"questions": resp.Pending.Questions,
			}
		}
	case models.PendingSelectPlaces:
		sel := resp.Pending.Selection
		out["request"] = gin.H{
			"type":       "select_places",
			"prompt":     sel.Prompt,
			"places":     sel.Places,
			"min_select": sel.MinSelect,
			"max_select": sel.MaxSelect,
		}
	}
	return out
}

// writePlannerError maps service errors onto HTTP statuses. Configuration
// problems are never echoed to the client beyond a plain unavailable message.
func (h *PlannerHandler) writePlannerError(c *gin.Context, err error) {
	var invalid *planner.InvalidRequestError
	var violation *planner.SchemaViolationError
	var cfgErr *research.ConfigurationError
	var extErr *research.ExternalServiceError

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
	case errors.Is(err, planner.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
	case errors.As(err, &cfgErr):
		h.Logger.Error("Planner request failed on missing configuration", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The planner could not complete this request. Please try again later."})
	case errors.As(err, &extErr):
		h.Logger.Error("Planner request failed on an upstream service", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "An external travel data service is unavailable. Please try again later."})
	case errors.As(err, &violation):
		h.Logger.Error("Planner produced an invalid itinerary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "The planner could not produce a valid itinerary."})
	default:
		h.Logger.Error("Planner request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
	}
}
