// File: services/planner/assembly.go
package planner

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rangelkoli/Wanderly/models"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// pacing is the per-day structure a pace tier allows: how many sessions a day
// gets and how many items each session may carry. Both are upper bounds.
type pacing struct {
	SessionsPerDay  int
	ItemsPerSession int
}

var pacingPolicy = map[string]pacing{
	"relaxed":  {SessionsPerDay: 2, ItemsPerSession: 2},
	"balanced": {SessionsPerDay: 3, ItemsPerSession: 3},
	"packed":   {SessionsPerDay: 4, ItemsPerSession: 4},
}

func pacingFor(pace string) pacing {
	if p, ok := pacingPolicy[pace]; ok {
		return p
	}
	return pacingPolicy["balanced"]
}

// Session time slots. A session never starts before its base hour and never
// before the previous session has ended plus a transfer.
var sessionSlots = []struct {
	Label    string
	BaseHour int
}{
	{"Morning Session", 9},
	{"Afternoon Session", 13},
	{"Evening Session", 17},
	{"Night Session", 20},
}

const (
	visitMinutes    = 60
	transferMinutes = 30
	clockLayout     = "3:04 PM"

	// Regardless of pace, more than this many stops in a day is not walkable.
	maxItemsPerDay = 8
)

const nicheFamousThreshold = 5

var (
	nightlifeKeywords = []string{"bar", "club", "nightlife", "pub", "brewery", "casino"}
	outdoorKeywords   = []string{"park", "garden", "beach", "hike", "trail", "walk", "viewpoint", "island", "lake"}
	freeKeywords      = []string{"park", "garden", "market", "square", "beach", "walk", "street", "bridge", "viewpoint"}
	terrainKeywords   = []string{"tower", "hill", "castle", "cliff", "stairs", "fort", "mount"}
	offSeasonMonths   = []string{"november", "december", "january", "february", "winter", "off-season", "off season"}
)

// assembleItinerary turns the session's selected places into the final
// structured itinerary: partition into days, slot into timed sessions, apply
// the budget/season/group adjustments, and attach ticket links and routes.
func (s *DefaultPlannerService) assembleItinerary(ctx context.Context, sess *models.PlannerSession) (*models.Itinerary, error) {
	trip := sess.Trip
	if trip.TripLengthDays < 1 {
		return nil, NewSchemaViolationError("trip length is missing or invalid")
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return nil, NewSchemaViolationError("destination is missing")
	}

	places := s.orderedPlaces(sess)
	if len(places) == 0 {
		return nil, NewSchemaViolationError("no places available to assemble an itinerary")
	}
	places = applyGroupPolicy(places, trip, sess.Curated)
	if trip.BudgetTier == "low" {
		places = freeFirst(places)
	}

	pace := pacingFor(trip.Pace)
	dayBuckets := partitionDays(places, trip.TripLengthDays, pace, trip.LodgingArea)

	days := make([]models.Day, 0, len(dayBuckets))
	for i, bucket := range dayBuckets {
		day := s.buildDay(ctx, sess, i+1, bucket, pace)
		days = append(days, day)
	}

	assumptions := append([]string(nil), trip.AssumptionsMade...)
	if nicheDestination(sess.Pool) {
		assumptions = append(assumptions,
			"Few well-known attractions were found for this destination, so the shortlist was kept intentionally small.")
	}

	itinerary := &models.Itinerary{
		Title:       s.itineraryTitle(ctx, trip),
		Destination: trip.Destination,
		Assumptions: assumptions,
		Days:        days,
		Sources:     append([]string(nil), sess.Sources...),
	}
	return itinerary, nil
}

// orderedPlaces resolves the selection against the shortlist, preserving
// shortlist order, and tops up from unselected candidates when the selection
// is too thin to cover the trip.
func (s *DefaultPlannerService) orderedPlaces(sess *models.PlannerSession) []models.PlaceCandidate {
	selected := lo.SliceToMap(sess.SelectedIDs, func(id string) (string, bool) { return id, true })
	picked := lo.Filter(sess.Curated, func(c models.PlaceCandidate, _ int) bool {
		return selected[c.ID]
	})
	if len(picked) >= sess.Trip.TripLengthDays {
		return picked
	}
	leftover := lo.Filter(sess.Curated, func(c models.PlaceCandidate, _ int) bool {
		return !selected[c.ID]
	})
	needed := sess.Trip.TripLengthDays - len(picked)
	if needed > len(leftover) {
		needed = len(leftover)
	}
	if needed > 0 {
		s.Logger.Debug("Selection too thin for trip length, topping up from shortlist",
			zap.String("sessionID", sess.SessionID), zap.Int("added", needed))
		picked = append(picked, leftover[:needed]...)
	}
	return picked
}

// applyGroupPolicy swaps nightlife stops out for a family trip, preferring a
// substitute from the unused shortlist over dropping the stop outright.
func applyGroupPolicy(places []models.PlaceCandidate, trip models.TripContext, shortlist []models.PlaceCandidate) []models.PlaceCandidate {
	if trip.GroupType != "family" {
		return places
	}
	inUse := lo.SliceToMap(places, func(c models.PlaceCandidate) (string, bool) { return c.ID, true })
	substitutes := lo.Filter(shortlist, func(c models.PlaceCandidate, _ int) bool {
		return !inUse[c.ID] && !matchesAny(c, nightlifeKeywords)
	})
	var out []models.PlaceCandidate
	for _, p := range places {
		if !matchesAny(p, nightlifeKeywords) {
			out = append(out, p)
			continue
		}
		if len(substitutes) > 0 {
			out = append(out, substitutes[0])
			substitutes = substitutes[1:]
		}
	}
	return out
}

// freeFirst stably moves likely-free stops ahead of paid ones.
func freeFirst(places []models.PlaceCandidate) []models.PlaceCandidate {
	free := lo.Filter(places, func(c models.PlaceCandidate, _ int) bool {
		return matchesAny(c, freeKeywords)
	})
	paid := lo.Filter(places, func(c models.PlaceCandidate, _ int) bool {
		return !matchesAny(c, freeKeywords)
	})
	return append(free, paid...)
}

func matchesAny(c models.PlaceCandidate, keywords []string) bool {
	haystack := strings.ToLower(c.Name + " " + c.Description)
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// partitionDays spreads the places evenly across trip days, capping each day
// at the pace capacity. A day that would come out empty gets an open
// exploration stop so every trip day has something on it.
func partitionDays(places []models.PlaceCandidate, tripDays int, pace pacing, lodgingArea string) [][]models.PlaceCandidate {
	capacity := pace.SessionsPerDay * pace.ItemsPerSession
	if capacity > maxItemsPerDay {
		capacity = maxItemsPerDay
	}
	if len(places) > tripDays*capacity {
		places = places[:tripDays*capacity]
	}

	buckets := make([][]models.PlaceCandidate, tripDays)
	base := len(places) / tripDays
	extra := len(places) % tripDays
	idx := 0
	for d := 0; d < tripDays; d++ {
		count := base
		if d < extra {
			count++
		}
		buckets[d] = places[idx : idx+count]
		idx += count
	}

	area := lodgingArea
	if area == "" {
		area = "the local area"
	}
	for d := range buckets {
		if len(buckets[d]) == 0 {
			buckets[d] = []models.PlaceCandidate{{
				ID:          fmt.Sprintf("free_day_%d", d+1),
				Name:        "Open exploration of " + area,
				Description: "Unscheduled time to wander, revisit favorites, or rest.",
				ImageURL:    utils.PlaceholderImageURL,
				Category:    "leisure",
			}}
		}
	}
	return buckets
}

// buildDay lays one day's places into timed sessions and computes the route
// summary. Times are sequential within the day: a session starts at its base
// hour or after the previous session ends plus a transfer, whichever is later.
func (s *DefaultPlannerService) buildDay(ctx context.Context, sess *models.PlannerSession, dayNumber int, places []models.PlaceCandidate, pace pacing) models.Day {
	trip := sess.Trip
	sessionCount := (len(places) + pace.ItemsPerSession - 1) / pace.ItemsPerSession
	if sessionCount < 2 && len(places) >= 2 {
		sessionCount = 2
	}
	if sessionCount > pace.SessionsPerDay {
		sessionCount = pace.SessionsPerDay
	}
	if sessionCount < 1 {
		sessionCount = 1
	}

	sessions := make([]models.DaySession, 0, sessionCount)
	cursor := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	placed := 0
	for si := 0; si < sessionCount; si++ {
		remaining := len(places) - placed
		size := (remaining + (sessionCount - si) - 1) / (sessionCount - si)
		slot := sessionSlots[si]

		start := time.Date(2000, 1, 1, slot.BaseHour, 0, 0, 0, time.UTC)
		afterTransfer := cursor.Add(transferMinutes * time.Minute)
		if si > 0 && afterTransfer.After(start) {
			start = afterTransfer
		}

		session := models.DaySession{Label: slot.Label}
		if si > 0 {
			session.TransferNote = fmt.Sprintf("%d min transfer", transferMinutes)
		}
		for ii := 0; ii < size; ii++ {
			place := places[placed]
			placed++
			if ii > 0 {
				start = start.Add(transferMinutes * time.Minute)
			}
			end := start.Add(visitMinutes * time.Minute)
			session.Items = append(session.Items, s.buildItem(sess, place, start, end))
			start = end
		}
		cursor = start
		sessions = append(sessions, session)
	}

	distance := math.Round(float64(len(places))*1.2*10) / 10
	return models.Day{
		DayNumber:       dayNumber,
		Title:           s.dayTitle(ctx, trip.Destination, dayNumber, places),
		DateLabel:       dateLabel(trip.Dates, dayNumber),
		ActivitiesCount: len(places),
		BudgetLabel:     budgetLabel(trip.BudgetTier),
		Sessions:        sessions,
		Route: models.Route{
			DistanceKm:  distance,
			DurationMin: len(places) * 15,
			MapImageURL: utils.MapPlaceholderImageURL,
		},
	}
}

func (s *DefaultPlannerService) buildItem(sess *models.PlannerSession, place models.PlaceCandidate, start, end time.Time) models.Item {
	trip := sess.Trip
	imageURL := place.ImageURL
	if strings.TrimSpace(imageURL) == "" {
		imageURL = utils.PlaceholderImageURL
	}
	location := place.Area
	if location == "" {
		location = trip.Destination
	}

	item := models.Item{
		ID:        place.ID,
		Name:      place.Name,
		Category:  place.Category,
		Location:  location,
		StartTime: start.Format(clockLayout),
		EndTime:   end.Format(clockLayout),
		ImageURL:  imageURL,
	}

	paid := likelyChargesAdmission(place)
	if paid {
		if link, ok := sess.TicketLinks[place.ID]; ok && link != "" {
			item.TicketURL = link
		} else {
			item.TicketURL = utils.TicketLinkUnavailable
		}
	}

	var notes []string
	if trip.BudgetTier == "low" && paid {
		notes = append(notes, "Paid admission; check for free entry days.")
	}
	if offSeason(trip.Dates) && matchesAny(place, outdoorKeywords) {
		notes = append(notes, "Off-season visit: confirm opening hours and keep an indoor alternative nearby.")
	}
	if mobilityConstrained(trip.AccessibilityNeeds) && matchesAny(place, terrainKeywords) {
		notes = append(notes, "May involve stairs or uneven terrain.")
	}
	item.Notes = strings.Join(notes, " ")
	return item
}

// itineraryTitle asks the model for a title and falls back to a deterministic
// one when the model is unavailable or returns nothing usable.
func (s *DefaultPlannerService) itineraryTitle(ctx context.Context, trip models.TripContext) string {
	fallback := fmt.Sprintf("%d-Day %s Itinerary", trip.TripLengthDays, trip.Destination)
	if s.Model == nil {
		return fallback
	}
	text, err := s.Model.GenerateContent(ctx, itineraryTitlePrompt(trip))
	if err != nil || !usableTitle(text) {
		return fallback
	}
	return strings.TrimSpace(text)
}

func (s *DefaultPlannerService) dayTitle(ctx context.Context, destination string, dayNumber int, places []models.PlaceCandidate) string {
	fallback := fmt.Sprintf("Day %d in %s", dayNumber, destination)
	if s.Model == nil || len(places) == 0 {
		return fallback
	}
	names := lo.Map(places, func(c models.PlaceCandidate, _ int) string { return c.Name })
	text, err := s.Model.GenerateContent(ctx, dayTitlePrompt(destination, dayNumber, names))
	if err != nil || !usableTitle(text) {
		return fallback
	}
	return strings.TrimSpace(text)
}

func usableTitle(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && len(trimmed) <= 120 && !strings.Contains(trimmed, "\n")
}

func budgetLabel(tier string) string {
	switch tier {
	case "low":
		return "$ Budget-friendly"
	case "mid":
		return "$$ Affordable"
	case "high":
		return "$$$ Premium"
	default:
		return ""
	}
}

// dateLabel renders "Day N of <dates>" when the user gave dates; an exact
// calendar is not computed because dates are often a season or a month.
func dateLabel(dates string, dayNumber int) string {
	if strings.TrimSpace(dates) == "" {
		return ""
	}
	return fmt.Sprintf("Day %d of %s", dayNumber, strings.TrimSpace(dates))
}

func offSeason(dates string) bool {
	lower := strings.ToLower(dates)
	for _, m := range offSeasonMonths {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func mobilityConstrained(needs string) bool {
	switch strings.ToLower(strings.TrimSpace(needs)) {
	case "", "none", "no", "n/a":
		return false
	}
	return true
}

// nicheDestination reports whether the famous side of the research pool came
// back thin, which gets disclosed as an assumption.
func nicheDestination(pool []models.PlaceCandidate) bool {
	famous := lo.CountBy(pool, func(c models.PlaceCandidate) bool {
		return c.Category == categoryFamous
	})
	return famous > 0 && famous <= nicheFamousThreshold
}
