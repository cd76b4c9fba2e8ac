package planner

import (
	"context"
	"encoding/json"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/services/research"

	"go.uber.org/zap"
)

// Session statuses reported to the host.
const (
	StatusAwaitingInput = "awaiting_input"
	StatusComplete      = "complete"
)

// StartRequest opens a new planning session. Trip may pre-seed facts the
// host already knows; Message is the user's free-text request.
type StartRequest struct {
	Message string              `json:"message"`
	UserID  string              `json:"user_id,omitempty"`
	Trip    *models.TripContext `json:"trip,omitempty"`
}

// PlannerResponse is what every Start/Resume call resolves to: either an
// awaiting-input suspension carrying the pending request descriptor, or the
// completed itinerary.
type PlannerResponse struct {
	SessionID string                 `json:"session_id"`
	Status    string                 `json:"status"`
	Phase     string                 `json:"phase"`
	Pending   *models.PendingRequest `json:"pending,omitempty"`
	Itinerary *models.Itinerary      `json:"itinerary,omitempty"`
}

// PlannerService drives a planning conversation through its phases.
type PlannerService interface {
	StartSession(ctx context.Context, req StartRequest) (*PlannerResponse, error)
	Resume(ctx context.Context, sessionID string, payload json.RawMessage) (*PlannerResponse, error)
	CancelSession(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (*models.PlannerSession, error)
}

// DefaultPlannerService implements PlannerService.
// Model is optional: when nil (or failing), deterministic fallbacks are used
// for candidate extraction and titling.
type DefaultPlannerService struct {
	Gateway research.Gateway
	Store   SessionStore
	Model   LanguageModel
	Logger  *zap.Logger
}
