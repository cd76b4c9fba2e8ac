package models

// Planner phases. A session moves strictly forward except that assembly may
// send it back to clarifying when required facts turn out to be missing.
const (
	PhaseClarifying  = "clarifying"
	PhaseResearching = "researching"
	PhaseSelecting   = "selecting"
	PhaseAssembling  = "assembling"
	PhaseDone        = "done"
	PhaseFailed      = "failed"
)

// Pending request kinds.
const (
	PendingAsk          = "ask"
	PendingSelectPlaces = "select_places"
)

// PendingRequest is the serializable suspension descriptor. At most one is
// outstanding per session; the planner refuses to advance until it resumes.
type PendingRequest struct {
	Kind      string                  `json:"kind"`
	Questions []ClarificationQuestion `json:"questions,omitempty"`
	Selection *PlaceSelectionRequest  `json:"selection,omitempty"`
}

// PlannerSession holds all state between suspension points. It lives in the
// session cache under its SessionID and is discarded once the itinerary is
// produced or the session is cancelled.
type PlannerSession struct {
	SessionID     string            `json:"sessionId"`
	Phase         string            `json:"phase"`
	Trip          TripContext       `json:"trip"`
	Pool          []PlaceCandidate  `json:"pool,omitempty"`
	Curated       []PlaceCandidate  `json:"curated,omitempty"`
	SelectedIDs   []string          `json:"selectedIds,omitempty"`
	Sources       []string          `json:"sources,omitempty"`
	TicketLinks   map[string]string `json:"ticketLinks,omitempty"`
	Flights       *FlightSummary    `json:"flights,omitempty"`
	Pending       *PendingRequest   `json:"pending,omitempty"`
	ClarifyRounds int               `json:"clarifyRounds"`
	FailureReason string            `json:"failureReason,omitempty"`
}

// HasSource reports whether url was recorded in the session provenance set.
func (s *PlannerSession) HasSource(url string) bool {
	for _, u := range s.Sources {
		if u == url {
			return true
		}
	}
	return false
}
