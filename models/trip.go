package models

// ClarificationQuestion is a single question surfaced to the user during the
// clarification phase. Immutable once created; answered exactly once.
type ClarificationQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Choices []string `json:"choices,omitempty"`
}

// ClarificationAnswer is the user's answer to one clarification question.
type ClarificationAnswer struct {
	QuestionID string `json:"id"`
	Value      string `json:"answer"`
}

// TripContext accumulates everything known about the requested trip.
// New answers overwrite defaults, never the other way around; fields filled
// by default rather than by the user are listed in AssumptionsMade.
type TripContext struct {
	Destination        string   `json:"destination"`
	TripLengthDays     int      `json:"tripLengthDays"`
	Dates              string   `json:"dates"`
	Pace               string   `json:"pace"`
	Interests          []string `json:"interests"`
	BudgetTier         string   `json:"budgetTier"`
	GroupType          string   `json:"groupType"`
	OriginCity         string   `json:"originCity"`
	LodgingArea        string   `json:"lodgingArea"`
	AccessibilityNeeds string   `json:"accessibilityNeeds"`
	SkipPlaceSelection bool     `json:"skipPlaceSelection"`
	AssumptionsMade    []string `json:"assumptionsMade,omitempty"`
}
