// File: services/planner/research.go
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/services/research"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

const (
	categoryFamous     = "famous"
	categoryUnderrated = "underrated"
)

const maxTicketSearches = 5

// searchTask is one entry of the canonical research plan.
type searchTask struct {
	Query      string
	Topic      string
	Category   string
	MaxResults int
}

// researchPlan builds the fixed research passes: famous attractions,
// underrated local spots, and up to three interest-specific searches.
func researchPlan(trip models.TripContext) []searchTask {
	tasks := []searchTask{
		{Query: "famous attractions " + trip.Destination, Topic: "general", Category: categoryFamous, MaxResults: 8},
		{Query: "underrated local spots " + trip.Destination, Topic: "general", Category: categoryUnderrated, MaxResults: 8},
	}
	for i, interest := range trip.Interests {
		if i >= 3 {
			break
		}
		tasks = append(tasks, searchTask{
			Query:      fmt.Sprintf("best %s in %s", interest, trip.Destination),
			Topic:      "general",
			Category:   strings.ToLower(interest),
			MaxResults: 5,
		})
	}
	return tasks
}

// runResearch executes the researching phase: fan the search plan out
// concurrently, join, merge everything into the candidate pool and the
// provenance set, then run the ticket pass and the flight lookup.
// A ConfigurationError from a collaborator is returned as-is (fatal);
// a degraded flight lookup is logged and the itinerary proceeds without
// flight data rather than fabricating any.
func (s *DefaultPlannerService) runResearch(ctx context.Context, sess *models.PlannerSession) error {
	trip := sess.Trip
	tasks := researchPlan(trip)

	responses := make([]models.SearchResponse, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task searchTask) {
			defer wg.Done()
			responses[i] = s.Gateway.Search(ctx, task.Query, task.MaxResults, task.Topic)
		}(i, task)
	}
	// Join point: results are merged only after the whole batch completes.
	wg.Wait()

	for i, resp := range responses {
		recordSources(sess, resp)
		candidates := s.extractCandidates(ctx, trip.Destination, resp, tasks[i].Category)
		sess.Pool = append(sess.Pool, candidates...)
	}
	sess.Pool = sanitizeCandidates(sess.Pool)
	sess.Curated = curateShortlist(sess.Pool)

	s.searchTickets(ctx, sess)

	if trip.OriginCity != "" {
		summary, err := s.Gateway.Flights(ctx, research.FlightQuery{
			Origin:        trip.OriginCity,
			Destination:   trip.Destination,
			DepartureDate: trip.Dates,
			Adults:        1,
		})
		var cfgErr *research.ConfigurationError
		if errors.As(err, &cfgErr) {
			return err
		}
		if err != nil {
			s.Logger.Warn("Flight lookup degraded, continuing without flight data",
				zap.String("sessionID", sess.SessionID), zap.Error(err))
		} else {
			sess.Flights = summary
		}
	}
	return nil
}

// recordSources accumulates every result URL into the provenance set.
// Only URLs recorded here may ever appear in the final itinerary sources.
func recordSources(sess *models.PlannerSession, resp models.SearchResponse) {
	for _, r := range resp.Results {
		if r.URL != "" && !sess.HasSource(r.URL) {
			sess.Sources = append(sess.Sources, r.URL)
		}
	}
}

// searchTickets looks up official ticket pages for curated candidates that
// likely charge admission. Reseller links are skipped unless the budget tier
// permits them; a candidate without an acceptable hit simply gets no link.
func (s *DefaultPlannerService) searchTickets(ctx context.Context, sess *models.PlannerSession) {
	if sess.TicketLinks == nil {
		sess.TicketLinks = make(map[string]string)
	}
	searched := 0
	for _, c := range sess.Curated {
		if searched >= maxTicketSearches || !likelyChargesAdmission(c) {
			continue
		}
		searched++
		resp := s.Gateway.Search(ctx, c.Name+" official tickets buy online", 3, "general")
		recordSources(sess, resp)
		for _, r := range resp.Results {
			if acceptableTicketLink(r.URL, sess.Trip.BudgetTier) {
				sess.TicketLinks[c.ID] = r.URL
				break
			}
		}
	}
}

var admissionKeywords = []string{"museum", "palace", "castle", "tower", "temple", "gallery", "aquarium", "zoo", "observatory"}

func likelyChargesAdmission(c models.PlaceCandidate) bool {
	haystack := strings.ToLower(c.Name + " " + c.Description)
	for _, kw := range admissionKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return c.Category == categoryFamous
}

var resellerDomains = []string{"viator.com", "getyourguide.com", "tiqets.com", "klook.com"}

// acceptableTicketLink applies the reseller policy: third-party resellers
// only when the budget tier is mid or high.
func acceptableTicketLink(url, budgetTier string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, domain := range resellerDomains {
		if strings.Contains(lower, domain) {
			return budgetTier == "mid" || budgetTier == "high"
		}
	}
	return true
}

// extractCandidates turns one search response into place candidates. The
// language model does the reading when available; otherwise a conservative
// title-based parser keeps the pipeline moving.
func (s *DefaultPlannerService) extractCandidates(ctx context.Context, destination string, resp models.SearchResponse, category string) []models.PlaceCandidate {
	if len(resp.Results) == 0 {
		return nil
	}
	if s.Model != nil {
		text, err := s.Model.GenerateContent(ctx, extractionPrompt(destination, resp.Results))
		if err == nil {
			if candidates, perr := parseCandidateJSON(text); perr == nil && len(candidates) > 0 {
				for i := range candidates {
					candidates[i].Category = category
				}
				return candidates
			}
		}
		s.Logger.Warn("Model candidate extraction failed, using title fallback",
			zap.String("query", resp.Query), zap.Error(err))
	}
	return fallbackCandidates(resp, category)
}

// parseCandidateJSON decodes the model's JSON array, repairing malformed
// output before giving up.
func parseCandidateJSON(text string) ([]models.PlaceCandidate, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var decoded []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Area        string `json:"area"`
	}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		fixed, rerr := jsonrepair.JSONRepair(cleaned)
		if rerr != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fixed), &decoded); err != nil {
			return nil, err
		}
	}

	out := make([]models.PlaceCandidate, 0, len(decoded))
	for _, d := range decoded {
		out = append(out, models.PlaceCandidate{
			Name:        d.Name,
			Description: d.Description,
			Area:        d.Area,
		})
	}
	return out, nil
}

var listicleMarkers = []string{"best ", "top ", "things to do", "guide", "itinerary", "places to visit"}

// fallbackCandidates derives candidates from result titles, skipping
// obvious listicles and stripping site suffixes.
func fallbackCandidates(resp models.SearchResponse, category string) []models.PlaceCandidate {
	var out []models.PlaceCandidate
	for _, r := range resp.Results {
		name := cleanResultTitle(r.Title)
		if name == "" {
			continue
		}
		out = append(out, models.PlaceCandidate{
			Name:        name,
			Description: truncate(r.Content, 140),
			ImageURL:    r.ImageURL,
			Category:    category,
		})
	}
	return out
}

func cleanResultTitle(title string) string {
	name := title
	for _, sep := range []string{" - ", " | ", " — "} {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
		}
	}
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for _, marker := range listicleMarkers {
		if strings.Contains(lower, marker) {
			return ""
		}
	}
	return name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
