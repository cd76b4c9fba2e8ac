package models

// Itinerary is the final structured output of a planning session.
// Sources may only contain URLs that appeared in some SearchResponse
// during the session.
type Itinerary struct {
	Title       string   `json:"itinerary_title"`
	Destination string   `json:"destination"`
	Assumptions []string `json:"assumptions,omitempty"`
	Days        []Day    `json:"days"`
	Sources     []string `json:"sources"`
}

// Day is one 1-based, contiguous day of the trip.
type Day struct {
	DayNumber       int          `json:"day_number"`
	Title           string       `json:"title"`
	DateLabel       string       `json:"date_label,omitempty"`
	ActivitiesCount int          `json:"activities_count"`
	BudgetLabel     string       `json:"budget_label,omitempty"`
	Sessions        []DaySession `json:"sessions"`
	Route           Route        `json:"route"`
}

// DaySession groups chronologically ordered items under a label
// (Morning Session, Afternoon Session, ...).
type DaySession struct {
	Label        string `json:"label"`
	TransferNote string `json:"transfer_note,omitempty"`
	Items        []Item `json:"items"`
}

// Item is a single timed stop. StartTime/EndTime use "10:00 AM" style labels
// and ImageURL is always populated, with a placeholder when no photo resolved.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ImageURL  string `json:"image_url"`
	Notes     string `json:"notes,omitempty"`
	TicketURL string `json:"ticket_url,omitempty"`
}

// Route summarizes the day's travel. MapImageURL is always a placeholder.
type Route struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin int     `json:"duration_min"`
	MapImageURL string  `json:"map_image_url"`
}
