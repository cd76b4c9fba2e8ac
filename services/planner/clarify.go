// File: services/planner/clarify.go
package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rangelkoli/Wanderly/models"
)

// A session gets at most this many clarification rounds before the planner
// stops asking and proceeds with whatever it has.
const maxClarifyRounds = 3

// Required fact ids. An itinerary cannot be generated until all of these are
// present in the TripContext; everything else is defaultable.
const (
	factDestination = "destination"
	factTripLength  = "trip_length"
	factDates       = "dates"
	factInterests   = "interests"
	factBudget      = "budget"
)

var clarifyQuestions = map[string]models.ClarificationQuestion{
	factDestination: {ID: factDestination, Text: "Where are you going?"},
	factTripLength:  {ID: factTripLength, Text: "How many days is your trip?", Choices: []string{"3 days", "5 days", "7 days"}},
	factDates:       {ID: factDates, Text: "When are you traveling (season or dates)?"},
	factInterests:   {ID: factInterests, Text: "What are you most interested in?", Choices: []string{"food", "history", "nature", "art", "nightlife", "shopping"}},
	factBudget:      {ID: factBudget, Text: "What's your budget comfort level?", Choices: []string{"low", "mid", "high"}},
}

// missingRequiredFacts returns the still-missing required facts in a stable
// order so related gaps get batched into a single ask.
func missingRequiredFacts(trip models.TripContext) []string {
	var missing []string
	if strings.TrimSpace(trip.Destination) == "" {
		missing = append(missing, factDestination)
	}
	if trip.TripLengthDays <= 0 {
		missing = append(missing, factTripLength)
	}
	if strings.TrimSpace(trip.Dates) == "" {
		missing = append(missing, factDates)
	}
	if len(trip.Interests) == 0 {
		missing = append(missing, factInterests)
	}
	if strings.TrimSpace(trip.BudgetTier) == "" {
		missing = append(missing, factBudget)
	}
	return missing
}

func buildQuestions(missing []string) []models.ClarificationQuestion {
	questions := make([]models.ClarificationQuestion, 0, len(missing))
	for _, fact := range missing {
		if q, ok := clarifyQuestions[fact]; ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// validateAsk enforces the ask contract: at least one question, none blank.
func validateAsk(questions []models.ClarificationQuestion) error {
	if len(questions) == 0 {
		return NewInvalidRequestError("ask requires at least one question")
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return NewInvalidRequestError("ask question text must not be empty")
		}
	}
	return nil
}

// normalizeAnswers turns any resume payload into clarification answers.
// Three shapes are understood: a structured {answers:[{id,question,answer}]}
// bundle, a single {answer} object, and a plain scalar. Anything else is
// coerced to its string representation and assigned to the first question so
// normalization is total and a resume never crashes the flow.
func normalizeAnswers(payload json.RawMessage, questions []models.ClarificationQuestion) []models.ClarificationAnswer {
	if len(questions) == 0 {
		return nil
	}

	type answerRecord struct {
		ID       string          `json:"id"`
		Question string          `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}

	var bundle struct {
		Answers []answerRecord  `json:"answers"`
		Answer  json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(payload, &bundle); err == nil {
		if len(bundle.Answers) > 0 {
			answered := make(map[string]bool)
			var out []models.ClarificationAnswer
			for _, rec := range bundle.Answers {
				id := matchQuestionID(rec.ID, rec.Question, questions, answered)
				if id == "" {
					continue
				}
				answered[id] = true
				out = append(out, models.ClarificationAnswer{QuestionID: id, Value: coerceString(rec.Answer)})
			}
			return out
		}
		if len(bundle.Answer) > 0 {
			return []models.ClarificationAnswer{{QuestionID: questions[0].ID, Value: coerceString(bundle.Answer)}}
		}
	}

	// Plain scalar, or an unrecognized shape coerced to a string.
	return []models.ClarificationAnswer{{QuestionID: questions[0].ID, Value: coerceString(payload)}}
}

// matchQuestionID resolves an answer record to a known question id, falling
// back to question-text match and then to the first unanswered question.
func matchQuestionID(id, questionText string, questions []models.ClarificationQuestion, answered map[string]bool) string {
	for _, q := range questions {
		if id != "" && q.ID == id {
			return q.ID
		}
	}
	for _, q := range questions {
		if questionText != "" && strings.EqualFold(q.Text, questionText) {
			return q.ID
		}
	}
	for _, q := range questions {
		if !answered[q.ID] {
			return q.ID
		}
	}
	return ""
}

// coerceString renders any JSON value as a plain string.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err == nil {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return strings.TrimSpace(string(raw))
}

// applyAnswers merges user answers into the trip context. Answers always win
// over defaults: an answered field also clears its assumption entry.
func applyAnswers(trip *models.TripContext, answers []models.ClarificationAnswer) {
	for _, a := range answers {
		value := strings.TrimSpace(a.Value)
		if value == "" {
			continue
		}
		switch a.QuestionID {
		case factDestination:
			trip.Destination = value
		case factTripLength:
			if n := parseTripLength(value); n > 0 {
				trip.TripLengthDays = n
			}
		case factDates:
			trip.Dates = value
		case factInterests:
			trip.Interests = splitInterests(value)
		case factBudget:
			trip.BudgetTier = normalizeBudget(value)
		case "pace":
			trip.Pace = normalizePace(value)
			removeAssumption(trip, "pace")
		case "group_type":
			trip.GroupType = strings.ToLower(value)
			removeAssumption(trip, "group_type")
		case "origin_city":
			trip.OriginCity = value
		case "lodging_area":
			trip.LodgingArea = value
			removeAssumption(trip, "lodging_area")
		case "accessibility":
			trip.AccessibilityNeeds = value
			removeAssumption(trip, "accessibility")
		}
	}
}

// applyNonCriticalDefaults fills the defaultable facts and records each
// assumption so the final output can disclose them.
func applyNonCriticalDefaults(trip *models.TripContext) {
	if trip.Pace == "" {
		trip.Pace = "balanced"
		addAssumption(trip, "pace", "balanced")
	}
	if trip.GroupType == "" {
		trip.GroupType = "solo"
		addAssumption(trip, "group_type", "solo")
	}
	if trip.LodgingArea == "" {
		trip.LodgingArea = "city center"
		addAssumption(trip, "lodging_area", "city center")
	}
	if trip.AccessibilityNeeds == "" {
		trip.AccessibilityNeeds = "none"
		addAssumption(trip, "accessibility", "none")
	}
}

func addAssumption(trip *models.TripContext, field, value string) {
	entry := fmt.Sprintf("%s: %s (assumed)", field, value)
	for _, a := range trip.AssumptionsMade {
		if a == entry {
			return
		}
	}
	trip.AssumptionsMade = append(trip.AssumptionsMade, entry)
}

func removeAssumption(trip *models.TripContext, field string) {
	prefix := field + ": "
	kept := trip.AssumptionsMade[:0]
	for _, a := range trip.AssumptionsMade {
		if !strings.HasPrefix(a, prefix) {
			kept = append(kept, a)
		}
	}
	trip.AssumptionsMade = kept
}

func parseTripLength(value string) int {
	lower := strings.ToLower(value)
	if strings.Contains(lower, "two weeks") || strings.Contains(lower, "fortnight") {
		return 14
	}
	if strings.Contains(lower, "weekend") {
		return 2
	}
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		if n, err := strconv.Atoi(field); err == nil && n > 0 && n <= 30 {
			return n
		}
	}
	if strings.Contains(lower, "week") {
		return 7
	}
	return 0
}

func splitInterests(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(f), "and "))
		if f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

func normalizeBudget(value string) string {
	switch lower := strings.ToLower(value); {
	case strings.Contains(lower, "low"), strings.Contains(lower, "cheap"), strings.Contains(lower, "budget"):
		return "low"
	case strings.Contains(lower, "high"), strings.Contains(lower, "luxur"), strings.Contains(lower, "premium"):
		return "high"
	case strings.Contains(lower, "mid"), strings.Contains(lower, "moderate"), strings.Contains(lower, "medium"):
		return "mid"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func normalizePace(value string) string {
	switch lower := strings.ToLower(value); {
	case strings.Contains(lower, "relax"), strings.Contains(lower, "chill"), strings.Contains(lower, "slow"):
		return "relaxed"
	case strings.Contains(lower, "pack"), strings.Contains(lower, "intense"), strings.Contains(lower, "busy"), strings.Contains(lower, "fast"):
		return "packed"
	default:
		return "balanced"
	}
}

var impatienceSignals = []string{"just plan", "surprise me", "you decide", "don't ask", "whatever you think"}

var optOutSignals = []string{"don't want to choose", "skip the selection", "pick for me", "choose for me", "no need to ask which places"}

func detectImpatience(text string) bool {
	lower := strings.ToLower(text)
	for _, signal := range impatienceSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}

func detectSelectionOptOut(text string) bool {
	lower := strings.ToLower(text)
	for _, signal := range optOutSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}
