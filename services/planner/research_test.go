// File: services/planner/research_test.go
package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/rangelkoli/Wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResearchPlanCapsInterestSearches(t *testing.T) {
	trip := models.TripContext{
		Destination: "Lisbon",
		Interests:   []string{"food", "history", "art", "nightlife", "shopping"},
	}
	tasks := researchPlan(trip)
	// Two fixed passes plus at most three interest passes.
	require.Len(t, tasks, 5)
	assert.Equal(t, "famous attractions Lisbon", tasks[0].Query)
	assert.Equal(t, "underrated local spots Lisbon", tasks[1].Query)
	assert.Equal(t, "best food in Lisbon", tasks[2].Query)
}

func TestAcceptableTicketLinkResellerPolicy(t *testing.T) {
	assert.False(t, acceptableTicketLink("", "high"))
	assert.True(t, acceptableTicketLink("https://www.louvre.fr/en/tickets", "low"))
	assert.False(t, acceptableTicketLink("https://www.getyourguide.com/louvre-tickets", "low"))
	assert.True(t, acceptableTicketLink("https://www.getyourguide.com/louvre-tickets", "mid"))
	assert.True(t, acceptableTicketLink("https://www.viator.com/tours", "high"))
}

func TestLikelyChargesAdmission(t *testing.T) {
	assert.True(t, likelyChargesAdmission(models.PlaceCandidate{Name: "City History Museum"}))
	assert.True(t, likelyChargesAdmission(models.PlaceCandidate{Name: "Plain Spot", Category: categoryFamous}))
	assert.False(t, likelyChargesAdmission(models.PlaceCandidate{Name: "Riverside Walk", Category: categoryUnderrated}))
}

func TestCleanResultTitle(t *testing.T) {
	assert.Equal(t, "Eiffel Tower", cleanResultTitle("Eiffel Tower - Paris Tourism"))
	assert.Equal(t, "Louvre", cleanResultTitle("Louvre | Official Website"))
	assert.Empty(t, cleanResultTitle("Top 10 Things To Do in Paris"))
	assert.Empty(t, cleanResultTitle("Paris travel guide"))
}

func TestParseCandidateJSONRepairsMalformedOutput(t *testing.T) {
	// Trailing comma and markdown fences, typical sloppy model output.
	text := "```json\n[{\"name\": \"Alfama\", \"description\": \"Old quarter\", \"area\": \"East\"},]\n```"
	got, err := parseCandidateJSON(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alfama", got[0].Name)
	assert.Equal(t, "East", got[0].Area)
}

func TestParseCandidateJSONRejectsGarbage(t *testing.T) {
	_, err := parseCandidateJSON("I could not find any places, sorry!")
	assert.Error(t, err)
}

type flakyModel struct {
	response string
	err      error
}

func (m *flakyModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return m.response, m.err
}

func TestExtractCandidatesFallsBackOnModelFailure(t *testing.T) {
	svc := &DefaultPlannerService{
		Logger: zap.NewNop(),
		Model:  &flakyModel{err: errors.New("quota exhausted")},
	}
	resp := models.SearchResponse{
		Query: "famous attractions Lisbon",
		Results: []models.SearchResult{
			{Title: "Belem Tower - Lisbon Sights", URL: "https://example.com/belem", Content: "Riverside fortress."},
		},
	}

	got := svc.extractCandidates(context.Background(), "Lisbon", resp, categoryFamous)
	require.Len(t, got, 1)
	assert.Equal(t, "Belem Tower", got[0].Name)
	assert.Equal(t, categoryFamous, got[0].Category)
}

func TestExtractCandidatesUsesModelOutput(t *testing.T) {
	svc := &DefaultPlannerService{
		Logger: zap.NewNop(),
		Model:  &flakyModel{response: `[{"name":"Belem Tower","description":"Riverside fortress","area":"Belem"}]`},
	}
	resp := models.SearchResponse{
		Query:   "famous attractions Lisbon",
		Results: []models.SearchResult{{Title: "ignored", URL: "https://example.com/x"}},
	}

	got := svc.extractCandidates(context.Background(), "Lisbon", resp, categoryFamous)
	require.Len(t, got, 1)
	assert.Equal(t, "Belem Tower", got[0].Name)
	assert.Equal(t, "Belem", got[0].Area)
}
