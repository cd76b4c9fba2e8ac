// File: services/planner/selection_test.go
package planner

import (
	"encoding/json"
	"testing"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCandidatesDropsBlankAndDuplicates(t *testing.T) {
	candidates := []models.PlaceCandidate{
		{Name: "Eiffel Tower"},
		{Name: "   "},
		{Name: "eiffel tower", Description: "duplicate by case"},
		{Name: "Louvre", ImageURL: "https://img.example.com/louvre.jpg"},
	}

	got := sanitizeCandidates(candidates)
	require.Len(t, got, 2)
	assert.Equal(t, "Eiffel Tower", got[0].Name)
	assert.Equal(t, utils.PlaceholderImageURL, got[0].ImageURL)
	assert.Equal(t, "https://img.example.com/louvre.jpg", got[1].ImageURL)
	for _, c := range got {
		assert.NotEmpty(t, c.ID)
	}
}

func TestCurateShortlistCapsAndMixes(t *testing.T) {
	var pool []models.PlaceCandidate
	for i := 0; i < 10; i++ {
		pool = append(pool, models.PlaceCandidate{ID: "f", Name: "Famous", Category: "famous"})
		pool = append(pool, models.PlaceCandidate{ID: "u", Name: "Hidden", Category: "underrated"})
	}

	got := curateShortlist(pool)
	assert.LessOrEqual(t, len(got), maxShortlist)
	// Both categories survive the cut.
	categories := map[string]bool{}
	for _, c := range got {
		categories[c.Category] = true
	}
	assert.True(t, categories["famous"])
	assert.True(t, categories["underrated"])
}

func TestCurateShortlistCapsFamousForThinPool(t *testing.T) {
	var pool []models.PlaceCandidate
	for i := 0; i < 7; i++ {
		pool = append(pool, models.PlaceCandidate{Name: "Famous", Category: "famous"})
	}
	pool = append(pool, models.PlaceCandidate{Name: "Hidden", Category: "underrated"})

	got := curateShortlist(pool)
	famousCount := 0
	for _, c := range got {
		if c.Category == "famous" {
			famousCount++
		}
	}
	assert.LessOrEqual(t, famousCount, 5)
}

func TestBuildSelectionRequestRejectsEmptyList(t *testing.T) {
	_, err := buildSelectionRequest(nil, 1, 0)
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)

	_, err = buildSelectionRequest([]models.PlaceCandidate{{Name: "  "}}, 1, 0)
	require.ErrorAs(t, err, &invalid)
}

func TestBuildSelectionRequestRejectsImpossibleMinimum(t *testing.T) {
	candidates := []models.PlaceCandidate{{Name: "One"}, {Name: "Two"}}
	_, err := buildSelectionRequest(candidates, 3, 0)
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
}

func selectionFixture(t *testing.T) *models.PlaceSelectionRequest {
	t.Helper()
	req, err := buildSelectionRequest([]models.PlaceCandidate{
		{ID: "place_1", Name: "Eiffel Tower"},
		{ID: "place_2", Name: "Louvre"},
		{ID: "place_3", Name: "Canal Saint-Martin"},
	}, 1, 2)
	require.NoError(t, err)
	return req
}

func TestNormalizeSelectionShapes(t *testing.T) {
	req := selectionFixture(t)

	for name, payload := range map[string]string{
		"wrapped object": `{"selected_places":["place_1","place_2"]}`,
		"bare list":      `["place_1","place_2"]`,
	} {
		got, err := normalizeSelection(json.RawMessage(payload), req)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"place_1", "place_2"}, got.SelectedIDs, name)
	}

	// A scalar coerces to a one-element selection.
	got, err := normalizeSelection(json.RawMessage(`"place_3"`), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"place_3"}, got.SelectedIDs)
}

func TestNormalizeSelectionAcceptsNames(t *testing.T) {
	req := selectionFixture(t)
	got, err := normalizeSelection(json.RawMessage(`["Louvre"]`), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"place_2"}, got.SelectedIDs)
}

func TestNormalizeSelectionDropsUnknownAndDeduplicates(t *testing.T) {
	req := selectionFixture(t)
	got, err := normalizeSelection(json.RawMessage(`["place_1","bogus","place_1"]`), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"place_1"}, got.SelectedIDs)
}

func TestNormalizeSelectionEnforcesBounds(t *testing.T) {
	req := selectionFixture(t)
	var invalid *InvalidRequestError

	_, err := normalizeSelection(json.RawMessage(`[]`), req)
	require.ErrorAs(t, err, &invalid)

	_, err = normalizeSelection(json.RawMessage(`["place_1","place_2","place_3"]`), req)
	require.ErrorAs(t, err, &invalid)
}
