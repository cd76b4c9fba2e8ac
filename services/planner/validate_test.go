// File: services/planner/validate_test.go
package planner

import (
	"testing"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItinerary() (*models.Itinerary, *models.PlannerSession) {
	sess := &models.PlannerSession{
		Trip:    models.TripContext{Pace: "balanced"},
		Sources: []string{"https://example.com/a"},
	}
	it := &models.Itinerary{
		Title:       "2-Day Test Itinerary",
		Destination: "Testville",
		Days: []models.Day{
			{
				DayNumber:       1,
				Title:           "Day 1 in Testville",
				ActivitiesCount: 2,
				Sessions: []models.DaySession{{
					Label: "Morning Session",
					Items: []models.Item{
						{Name: "Stop A", ImageURL: utils.PlaceholderImageURL, StartTime: "9:00 AM", EndTime: "10:00 AM"},
						{Name: "Stop B", ImageURL: utils.PlaceholderImageURL, StartTime: "10:30 AM", EndTime: "11:30 AM"},
					},
				}},
				Route: models.Route{DistanceKm: 2.4, DurationMin: 30, MapImageURL: utils.MapPlaceholderImageURL},
			},
			{
				DayNumber:       2,
				Title:           "Day 2 in Testville",
				ActivitiesCount: 1,
				Sessions: []models.DaySession{{
					Label: "Morning Session",
					Items: []models.Item{
						{Name: "Stop C", ImageURL: utils.PlaceholderImageURL, StartTime: "9:00 AM", EndTime: "10:00 AM"},
					},
				}},
				Route: models.Route{DistanceKm: 1.2, DurationMin: 15, MapImageURL: utils.MapPlaceholderImageURL},
			},
		},
		Sources: []string{"https://example.com/a"},
	}
	return it, sess
}

func TestValidateItineraryAcceptsWellFormed(t *testing.T) {
	it, sess := validItinerary()
	assert.NoError(t, validateItinerary(it, sess))
}

func TestValidateItineraryRejectsGapInDayNumbers(t *testing.T) {
	it, sess := validItinerary()
	it.Days[1].DayNumber = 3
	requireViolation(t, validateItinerary(it, sess), "contiguous")
}

func TestValidateItineraryRejectsOverlappingTimes(t *testing.T) {
	it, sess := validItinerary()
	it.Days[0].Sessions[0].Items[1].StartTime = "9:30 AM"
	requireViolation(t, validateItinerary(it, sess), "overlaps")
}

func TestValidateItineraryRejectsInvertedTimes(t *testing.T) {
	it, sess := validItinerary()
	it.Days[0].Sessions[0].Items[0].EndTime = "8:00 AM"
	requireViolation(t, validateItinerary(it, sess), "ends at or before")
}

func TestValidateItineraryRejectsUnparseableTime(t *testing.T) {
	it, sess := validItinerary()
	it.Days[0].Sessions[0].Items[0].StartTime = "morning-ish"
	requireViolation(t, validateItinerary(it, sess), "unparseable")
}

func TestValidateItineraryRejectsMissingImage(t *testing.T) {
	it, sess := validItinerary()
	it.Days[0].Sessions[0].Items[0].ImageURL = ""
	requireViolation(t, validateItinerary(it, sess), "image")
}

func TestValidateItineraryRejectsPacingOverflow(t *testing.T) {
	it, sess := validItinerary()
	sess.Trip.Pace = "relaxed"
	// Three items in one session exceeds the relaxed cap of two.
	it.Days[0].Sessions[0].Items = append(it.Days[0].Sessions[0].Items,
		models.Item{Name: "Stop X", ImageURL: utils.PlaceholderImageURL, StartTime: "12:00 PM", EndTime: "1:00 PM"})
	it.Days[0].ActivitiesCount = 3
	requireViolation(t, validateItinerary(it, sess), "exceeds pace")
}

func TestValidateItineraryRejectsUnknownSource(t *testing.T) {
	it, sess := validItinerary()
	it.Sources = append(it.Sources, "https://fabricated.example.com")
	requireViolation(t, validateItinerary(it, sess), "never returned by research")
}

func TestValidateItineraryRejectsCountMismatch(t *testing.T) {
	it, sess := validItinerary()
	it.Days[0].ActivitiesCount = 5
	requireViolation(t, validateItinerary(it, sess), "activities_count")
}

func requireViolation(t *testing.T, err error, fragment string) {
	t.Helper()
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Message, fragment)
}
