// File: services/planner/selection.go
package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/samber/lo"
)

const (
	minShortlist = 6
	maxShortlist = 12
)

const selectionPrompt = "Select the places you want included in the itinerary."

// sanitizeCandidates drops candidates with blank names, deduplicates by
// normalized name, assigns ids where missing, and guarantees every candidate
// carries an image URL (placeholder when no photo resolved).
func sanitizeCandidates(candidates []models.PlaceCandidate) []models.PlaceCandidate {
	valid := lo.Filter(candidates, func(c models.PlaceCandidate, _ int) bool {
		return strings.TrimSpace(c.Name) != ""
	})
	valid = lo.UniqBy(valid, func(c models.PlaceCandidate) string {
		return strings.ToLower(strings.TrimSpace(c.Name))
	})
	for i := range valid {
		valid[i].Name = strings.TrimSpace(valid[i].Name)
		if valid[i].ID == "" {
			valid[i].ID = fmt.Sprintf("place_%d", i+1)
		}
		if strings.TrimSpace(valid[i].ImageURL) == "" {
			valid[i].ImageURL = utils.PlaceholderImageURL
		}
	}
	return valid
}

// curateShortlist picks 6-12 top candidates from the pool, interleaving
// famous and underrated finds so the user sees a mix. For a niche
// destination with a thin famous pool, the famous side is capped at 5.
func curateShortlist(pool []models.PlaceCandidate) []models.PlaceCandidate {
	famous := lo.Filter(pool, func(c models.PlaceCandidate, _ int) bool {
		return c.Category == "famous"
	})
	rest := lo.Filter(pool, func(c models.PlaceCandidate, _ int) bool {
		return c.Category != "famous"
	})
	// A thin pool marks a niche destination: cap the famous side rather than
	// pad the shortlist with weak hits.
	if len(famous)+len(rest) < maxShortlist && len(famous) > 5 {
		famous = famous[:5]
	}
	mixed := lo.Interleave(famous, rest)
	if len(mixed) > maxShortlist {
		mixed = mixed[:maxShortlist]
	}
	return mixed
}

// buildSelectionRequest validates the candidate list and wraps it in a
// selection request. maxSelect of 0 means unbounded.
func buildSelectionRequest(candidates []models.PlaceCandidate, minSelect, maxSelect int) (*models.PlaceSelectionRequest, error) {
	valid := sanitizeCandidates(candidates)
	if len(valid) == 0 {
		return nil, NewInvalidRequestError("place selection requires at least one valid place option")
	}
	if minSelect < 0 {
		minSelect = 0
	}
	if minSelect > len(valid) {
		return nil, NewInvalidRequestError(fmt.Sprintf("min_select %d exceeds %d valid candidates", minSelect, len(valid)))
	}
	if maxSelect != 0 && maxSelect < minSelect {
		maxSelect = minSelect
	}
	return &models.PlaceSelectionRequest{
		Prompt:    selectionPrompt,
		Places:    valid,
		MinSelect: minSelect,
		MaxSelect: maxSelect,
	}, nil
}

// normalizeSelection turns any resume payload into a selection result and
// validates it against the outstanding request. Understood shapes: a
// {selected_places:[...]} object, a bare id list, and a single scalar
// (coerced to a one-element selection). Unknown ids are dropped before the
// size check; an out-of-bounds selection is an InvalidRequest.
func normalizeSelection(payload json.RawMessage, request *models.PlaceSelectionRequest) (models.PlaceSelectionResult, error) {
	var ids []string

	var wrapped struct {
		SelectedPlaces []json.RawMessage `json:"selected_places"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.SelectedPlaces != nil {
		for _, raw := range wrapped.SelectedPlaces {
			ids = append(ids, coerceString(raw))
		}
	} else {
		var list []json.RawMessage
		if err := json.Unmarshal(payload, &list); err == nil {
			for _, raw := range list {
				ids = append(ids, coerceString(raw))
			}
		} else {
			ids = []string{coerceString(payload)}
		}
	}

	known := lo.SliceToMap(request.Places, func(c models.PlaceCandidate) (string, bool) {
		return c.ID, true
	})
	// Accept names as well as ids; hosts echo either.
	byName := lo.SliceToMap(request.Places, func(c models.PlaceCandidate) (string, string) {
		return strings.ToLower(c.Name), c.ID
	})

	var selected []string
	seen := make(map[string]bool)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !known[id] {
			if mapped, ok := byName[strings.ToLower(id)]; ok {
				id = mapped
			} else {
				continue
			}
		}
		if !seen[id] {
			seen[id] = true
			selected = append(selected, id)
		}
	}

	if len(selected) < request.MinSelect {
		return models.PlaceSelectionResult{}, NewInvalidRequestError(
			fmt.Sprintf("selection requires at least %d places, got %d", request.MinSelect, len(selected)))
	}
	if request.MaxSelect > 0 && len(selected) > request.MaxSelect {
		return models.PlaceSelectionResult{}, NewInvalidRequestError(
			fmt.Sprintf("selection allows at most %d places, got %d", request.MaxSelect, len(selected)))
	}
	return models.PlaceSelectionResult{SelectedIDs: selected}, nil
}
