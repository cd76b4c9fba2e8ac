// File: services/planner/validate.go
package planner

import (
	"fmt"
	"time"

	"github.com/rangelkoli/Wanderly/models"
)

// validateItinerary checks the assembled itinerary against the output
// contract before it is released: contiguous day numbering, pacing bounds,
// parseable chronological times, populated images and routes, and a sources
// list that stays inside the session's provenance set.
func validateItinerary(it *models.Itinerary, sess *models.PlannerSession) error {
	if it == nil {
		return NewSchemaViolationError("itinerary is nil")
	}
	if it.Title == "" {
		return NewSchemaViolationError("itinerary title is empty")
	}
	if it.Destination == "" {
		return NewSchemaViolationError("itinerary destination is empty")
	}
	if len(it.Days) == 0 {
		return NewSchemaViolationError("itinerary has no days")
	}

	pace := pacingFor(sess.Trip.Pace)
	for i, day := range it.Days {
		if day.DayNumber != i+1 {
			return NewSchemaViolationError(fmt.Sprintf("day numbering is not contiguous at position %d (got %d)", i+1, day.DayNumber))
		}
		if err := validateDay(day, pace); err != nil {
			return err
		}
	}

	for _, src := range it.Sources {
		if !sess.HasSource(src) {
			return NewSchemaViolationError("source URL was never returned by research: " + src)
		}
	}
	return nil
}

func validateDay(day models.Day, pace pacing) error {
	if day.Title == "" {
		return NewSchemaViolationError(fmt.Sprintf("day %d has no title", day.DayNumber))
	}
	if len(day.Sessions) == 0 {
		return NewSchemaViolationError(fmt.Sprintf("day %d has no sessions", day.DayNumber))
	}
	if len(day.Sessions) > pace.SessionsPerDay {
		return NewSchemaViolationError(fmt.Sprintf("day %d exceeds pace: %d sessions, at most %d allowed",
			day.DayNumber, len(day.Sessions), pace.SessionsPerDay))
	}
	if day.Route.MapImageURL == "" {
		return NewSchemaViolationError(fmt.Sprintf("day %d route has no map image", day.DayNumber))
	}

	items := 0
	var prevEnd time.Time
	for _, session := range day.Sessions {
		if session.Label == "" {
			return NewSchemaViolationError(fmt.Sprintf("day %d has a session without a label", day.DayNumber))
		}
		if len(session.Items) == 0 {
			return NewSchemaViolationError(fmt.Sprintf("day %d session %q has no items", day.DayNumber, session.Label))
		}
		if len(session.Items) > pace.ItemsPerSession {
			return NewSchemaViolationError(fmt.Sprintf("day %d session %q exceeds pace: %d items, at most %d allowed",
				day.DayNumber, session.Label, len(session.Items), pace.ItemsPerSession))
		}
		for _, item := range session.Items {
			items++
			if item.Name == "" {
				return NewSchemaViolationError(fmt.Sprintf("day %d has an item without a name", day.DayNumber))
			}
			if item.ImageURL == "" {
				return NewSchemaViolationError(fmt.Sprintf("item %q has no image URL", item.Name))
			}
			start, err := parseClock(item.StartTime)
			if err != nil {
				return NewSchemaViolationError(fmt.Sprintf("item %q has an unparseable start time %q", item.Name, item.StartTime))
			}
			end, err := parseClock(item.EndTime)
			if err != nil {
				return NewSchemaViolationError(fmt.Sprintf("item %q has an unparseable end time %q", item.Name, item.EndTime))
			}
			if !end.After(start) {
				return NewSchemaViolationError(fmt.Sprintf("item %q ends at or before its start", item.Name))
			}
			if start.Before(prevEnd) {
				return NewSchemaViolationError(fmt.Sprintf("item %q overlaps the preceding item", item.Name))
			}
			prevEnd = end
		}
	}
	if day.ActivitiesCount != items {
		return NewSchemaViolationError(fmt.Sprintf("day %d activities_count %d does not match %d items",
			day.DayNumber, day.ActivitiesCount, items))
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}
