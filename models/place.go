package models

// PlaceCandidate is one researched place that may end up in the itinerary.
// A candidate without a name is invalid and is discarded before selection.
type PlaceCandidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Area        string  `json:"area,omitempty"`
	Category    string  `json:"category,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
}

// PlaceSelectionRequest asks the user to choose a subset of candidates.
// MaxSelect of 0 means unbounded.
type PlaceSelectionRequest struct {
	Prompt    string           `json:"prompt"`
	Places    []PlaceCandidate `json:"places"`
	MinSelect int              `json:"min_select"`
	MaxSelect int              `json:"max_select,omitempty"`
}

// PlaceSelectionResult is the normalized user selection.
type PlaceSelectionResult struct {
	SelectedIDs []string `json:"selected_places"`
}
