// File: services/planner/orchestrator.go
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rangelkoli/Wanderly/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StartSession opens a new planning session and advances it until the first
// suspension point (or, for a fully pre-seeded trip, straight to completion).
func (s *DefaultPlannerService) StartSession(ctx context.Context, req StartRequest) (*PlannerResponse, error) {
	trip := models.TripContext{}
	if req.Trip != nil {
		trip = *req.Trip
	}
	if detectImpatience(req.Message) {
		applyNonCriticalDefaults(&trip)
	}
	if detectSelectionOptOut(req.Message) {
		trip.SkipPlaceSelection = true
	}

	sess := &models.PlannerSession{
		SessionID: uuid.New().String(),
		Phase:     models.PhaseClarifying,
		Trip:      trip,
	}
	s.Logger.Info("Planner session started",
		zap.String("sessionID", sess.SessionID), zap.String("userID", req.UserID))
	return s.advance(ctx, sess)
}

// Resume feeds a user-supplied payload into the outstanding suspension and
// re-enters the state machine. A failed normalization of a selection keeps
// the session suspended so the host can retry with a corrected payload.
func (s *DefaultPlannerService) Resume(ctx context.Context, sessionID string, payload json.RawMessage) (*PlannerResponse, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Pending == nil {
		return nil, NewInvalidRequestError("no suspended request to resume")
	}

	switch sess.Pending.Kind {
	case models.PendingAsk:
		answers := normalizeAnswers(payload, sess.Pending.Questions)
		applyAnswers(&sess.Trip, answers)
		sess.Pending = nil
	case models.PendingSelectPlaces:
		result, err := normalizeSelection(payload, sess.Pending.Selection)
		if err != nil {
			return nil, err
		}
		sess.SelectedIDs = result.SelectedIDs
		sess.Pending = nil
		sess.Phase = models.PhaseAssembling
	default:
		return nil, NewInvalidRequestError("unknown pending request kind: " + sess.Pending.Kind)
	}
	return s.advance(ctx, sess)
}

func (s *DefaultPlannerService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Store.Clear(ctx, sessionID)
}

func (s *DefaultPlannerService) GetSession(ctx context.Context, sessionID string) (*models.PlannerSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// advance runs phases until the session suspends, completes, or fails.
// At most one suspension is outstanding at any time: the loop returns the
// moment a pending request is recorded.
func (s *DefaultPlannerService) advance(ctx context.Context, sess *models.PlannerSession) (*PlannerResponse, error) {
	for {
		switch sess.Phase {
		case models.PhaseClarifying:
			missing := missingRequiredFacts(sess.Trip)
			if len(missing) == 0 {
				applyNonCriticalDefaults(&sess.Trip)
				sess.Phase = models.PhaseResearching
				continue
			}
			if sess.ClarifyRounds >= maxClarifyRounds {
				return nil, s.failWith(ctx, sess,
					NewInvalidRequestError("missing required trip details: "+strings.Join(missing, ", ")))
			}
			questions := buildQuestions(missing)
			if err := validateAsk(questions); err != nil {
				return nil, err
			}
			sess.ClarifyRounds++
			sess.Pending = &models.PendingRequest{Kind: models.PendingAsk, Questions: questions}
			return s.suspend(ctx, sess)

		case models.PhaseResearching:
			if err := s.runResearch(ctx, sess); err != nil {
				return nil, s.failWith(ctx, sess, err)
			}
			sess.Phase = models.PhaseSelecting

		case models.PhaseSelecting:
			if err := s.resolveImages(ctx, sess); err != nil {
				return nil, s.failWith(ctx, sess, err)
			}
			if sess.Trip.SkipPlaceSelection {
				sess.SelectedIDs = lo.Map(sess.Curated, func(c models.PlaceCandidate, _ int) string {
					return c.ID
				})
				sess.Phase = models.PhaseAssembling
				continue
			}
			request, err := buildSelectionRequest(sess.Curated, 1, 0)
			if err != nil {
				return nil, s.failWith(ctx, sess, err)
			}
			// The normalized candidate list is recorded for provenance.
			sess.Curated = request.Places
			sess.Pending = &models.PendingRequest{Kind: models.PendingSelectPlaces, Selection: request}
			return s.suspend(ctx, sess)

		case models.PhaseAssembling:
			itinerary, err := s.assembleItinerary(ctx, sess)
			if err != nil {
				var violation *SchemaViolationError
				if errors.As(err, &violation) && s.reclarify(sess) {
					continue
				}
				return nil, s.failWith(ctx, sess, err)
			}
			if err := validateItinerary(itinerary, sess); err != nil {
				return nil, s.failWith(ctx, sess, err)
			}
			sess.Phase = models.PhaseDone
			if err := s.Store.Clear(ctx, sess.SessionID); err != nil {
				s.Logger.Warn("Failed to clear completed session",
					zap.String("sessionID", sess.SessionID), zap.Error(err))
			}
			s.Logger.Info("Planner session completed", zap.String("sessionID", sess.SessionID))
			return &PlannerResponse{
				SessionID: sess.SessionID,
				Status:    StatusComplete,
				Phase:     models.PhaseDone,
				Itinerary: itinerary,
			}, nil

		default:
			return nil, NewInvalidRequestError("session is not active (phase " + sess.Phase + ")")
		}
	}
}

// resolveImages looks up photos for the whole shortlist before it is shown.
// A per-name miss leaves the placeholder in place; only a missing photo
// credential fails the call.
func (s *DefaultPlannerService) resolveImages(ctx context.Context, sess *models.PlannerSession) error {
	if len(sess.Curated) == 0 {
		return nil
	}
	names := lo.Map(sess.Curated, func(c models.PlaceCandidate, _ int) string {
		return c.Name
	})
	photos, err := s.Gateway.PhotosFor(ctx, names)
	if err != nil {
		return err
	}
	for i := range sess.Curated {
		photo, ok := photos[sess.Curated[i].Name]
		if !ok || photo.ImageURL == "" {
			continue
		}
		sess.Curated[i].ImageURL = photo.ImageURL
		if sess.Curated[i].Area == "" && photo.Address != "" {
			sess.Curated[i].Area = photo.Address
		}
	}
	return nil
}

// reclarify sends the session back to the clarification phase when assembly
// hit a gap that more input could fix and the round budget allows it.
func (s *DefaultPlannerService) reclarify(sess *models.PlannerSession) bool {
	if sess.ClarifyRounds >= maxClarifyRounds {
		return false
	}
	if len(missingRequiredFacts(sess.Trip)) == 0 {
		return false
	}
	sess.Phase = models.PhaseClarifying
	return true
}

// suspend persists the session with its pending request and hands control
// back to the host.
func (s *DefaultPlannerService) suspend(ctx context.Context, sess *models.PlannerSession) (*PlannerResponse, error) {
	if err := s.Store.Set(ctx, sess); err != nil {
		return nil, err
	}
	s.Logger.Debug("Planner session suspended",
		zap.String("sessionID", sess.SessionID), zap.String("kind", sess.Pending.Kind))
	return &PlannerResponse{
		SessionID: sess.SessionID,
		Status:    StatusAwaitingInput,
		Phase:     sess.Phase,
		Pending:   sess.Pending,
	}, nil
}

// failWith marks the session failed, persists the reason for inspection,
// and propagates the original error upward untouched.
func (s *DefaultPlannerService) failWith(ctx context.Context, sess *models.PlannerSession, err error) error {
	sess.Phase = models.PhaseFailed
	sess.Pending = nil
	sess.FailureReason = err.Error()
	if serr := s.Store.Set(ctx, sess); serr != nil {
		s.Logger.Warn("Failed to persist failed session",
			zap.String("sessionID", sess.SessionID), zap.Error(serr))
	}
	s.Logger.Warn("Planner session failed",
		zap.String("sessionID", sess.SessionID), zap.Error(err))
	return err
}
