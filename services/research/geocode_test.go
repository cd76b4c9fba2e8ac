// File: services/research/geocode_test.go
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

func TestGeocodeRequiresCredential(t *testing.T) {
	gw := newTestGateway(Config{})
	_, err := gw.Geocode(context.Background(), "Paris")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestGeocodeResolvesCoordinates(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("address"))
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{{
				"geometry": map[string]any{
					"location": map[string]any{"lat": 48.8566, "lng": 2.3522},
				},
			}},
		})
	}))
	defer geo.Close()

	gw := newTestGateway(Config{GoogleMapsAPIKey: "key", GeocodeURL: geo.URL})
	point, err := gw.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 48.8566, point.Lat, 0.0001)
	assert.InDelta(t, 2.3522, point.Lng, 0.0001)
}

func TestGeocodeNonOKStatus(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))
	defer geo.Close()

	gw := newTestGateway(Config{GoogleMapsAPIKey: "key", GeocodeURL: geo.URL})
	_, err := gw.Geocode(context.Background(), "Atlantis")
	var extErr *ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Reason, "ZERO_RESULTS")
}
