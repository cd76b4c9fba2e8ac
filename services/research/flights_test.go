// File: services/research/flights_test.go
package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightsRequiresCredential(t *testing.T) {
	gw := newTestGateway(Config{})
	_, err := gw.Flights(context.Background(), FlightQuery{Origin: "LHR", Destination: "CDG"})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "serpapi", cfgErr.Provider)
}

func TestFlightsRequiresRoute(t *testing.T) {
	gw := newTestGateway(Config{SerpAPIKey: "key"})
	_, err := gw.Flights(context.Background(), FlightQuery{Origin: "  ", Destination: "CDG"})
	var extErr *ExternalServiceError
	require.ErrorAs(t, err, &extErr)
}

func TestFlightsMapsProviderResponse(t *testing.T) {
	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_flights", q.Get("engine"))
		assert.Equal(t, "LHR", q.Get("departure_id"))
		assert.Equal(t, "CDG", q.Get("arrival_id"))
		assert.Equal(t, "1", q.Get("adults"))

		json.NewEncoder(w).Encode(map[string]any{
			"best_flights": []map[string]any{{
				"flights": []map[string]any{
					{
						"airline":           "Air France",
						"departure_airport": map[string]any{"time": "2026-06-01 08:00"},
						"arrival_airport":   map[string]any{"time": "2026-06-01 09:20"},
					},
					{
						"airline":           "Air France",
						"departure_airport": map[string]any{"time": "2026-06-01 11:00"},
						"arrival_airport":   map[string]any{"time": "2026-06-01 12:10"},
					},
				},
				"total_duration": 250,
				"price":          182.0,
				"booking_token":  "tok-1",
			}},
			"price_insights": map[string]any{"lowest_price": 150.0, "price_level": "typical"},
		})
	}))
	defer serp.Close()

	gw := newTestGateway(Config{SerpAPIKey: "key", SerpAPIURL: serp.URL})
	summary, err := gw.Flights(context.Background(), FlightQuery{
		Origin:        "LHR",
		Destination:   "CDG",
		DepartureDate: "2026-06-01",
		Adults:        0, // clamped up to 1
	})
	require.NoError(t, err)

	require.Len(t, summary.BestFlights, 1)
	best := summary.BestFlights[0]
	assert.Equal(t, "Air France", best.Airline)
	assert.Equal(t, 1, best.Stops)
	assert.Equal(t, "USD 182", best.Price)
	assert.Equal(t, "2026-06-01 08:00", best.DepartureAt)
	assert.Equal(t, "2026-06-01 12:10", best.ArrivalAt)
	assert.Equal(t, "lowest USD 150 (typical)", summary.PriceInsight)
}

func TestFlightsSurfacesProviderError(t *testing.T) {
	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "no flights found"})
	}))
	defer serp.Close()

	gw := newTestGateway(Config{SerpAPIKey: "key", SerpAPIURL: serp.URL})
	_, err := gw.Flights(context.Background(), FlightQuery{Origin: "LHR", Destination: "XXX"})
	var extErr *ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Reason, "no flights found")
}
