// File: services/planner/prompt.go
package planner

import (
	"strings"
	"text/template"

	"github.com/rangelkoli/Wanderly/models"
)

// All model prompts are built from this single template. Earlier iterations
// of the product kept near-duplicate prompt copies per feature; the variants
// collapsed into one template selected by Task.
var promptTemplate = template.Must(template.New("planner").Parse(`You are a local travel planner AI.
You are thorough, honest about limitations, and never invent facts, places, or URLs.
{{if eq .Task "extract_places"}}
From the search results below for {{.Destination}}, list real places a visitor could go to.
Return ONLY a JSON array, no prose, no markdown fences. Each element:
{"name": string, "description": string (short, decision-oriented), "area": string (neighborhood if known)}
Skip articles, listicles, and anything that is not a concrete visitable place.

Search results:
{{range .Results}}- {{.Title}}: {{.Content}}
{{end}}{{end}}{{if eq .Task "itinerary_title"}}
Write a single short, appealing title for a {{.TripLengthDays}}-day trip to {{.Destination}}.
Return only the title text, no quotes.{{end}}{{if eq .Task "day_title"}}
Write a single short title (max 5 words) for day {{.DayNumber}} of a trip to {{.Destination}},
covering: {{.PlaceNames}}. Return only the title text, no quotes.{{end}}`))

type promptInput struct {
	Task           string
	Destination    string
	TripLengthDays int
	DayNumber      int
	PlaceNames     string
	Results        []models.SearchResult
}

func buildPrompt(in promptInput) string {
	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, in); err != nil {
		return ""
	}
	return sb.String()
}

func extractionPrompt(destination string, results []models.SearchResult) string {
	return buildPrompt(promptInput{Task: "extract_places", Destination: destination, Results: results})
}

func itineraryTitlePrompt(trip models.TripContext) string {
	return buildPrompt(promptInput{
		Task:           "itinerary_title",
		Destination:    trip.Destination,
		TripLengthDays: trip.TripLengthDays,
	})
}

func dayTitlePrompt(destination string, dayNumber int, placeNames []string) string {
	return buildPrompt(promptInput{
		Task:        "day_title",
		Destination: destination,
		DayNumber:   dayNumber,
		PlaceNames:  strings.Join(placeNames, ", "),
	})
}
