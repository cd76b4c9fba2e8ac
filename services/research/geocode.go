package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rangelkoli/Wanderly/models"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location models.GeoPoint `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text place name to coordinates. There is a single
// provider and no fallback: a non-OK status is an ExternalServiceError.
func (g *DefaultResearchGateway) Geocode(ctx context.Context, placeName string) (models.GeoPoint, error) {
	if g.Cfg.GoogleMapsAPIKey == "" {
		return models.GeoPoint{}, NewConfigurationError("google_geocoding", "GOOGLE_MAPS_API_KEY is required for geocoding")
	}

	params := url.Values{}
	params.Set("address", placeName)
	params.Set("key", g.Cfg.GoogleMapsAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Cfg.GeocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.GeoPoint{}, NewExternalServiceError("google_geocoding", err.Error())
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return models.GeoPoint{}, NewExternalServiceError("google_geocoding", err.Error())
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.GeoPoint{}, NewExternalServiceError("google_geocoding", "malformed geocode payload: "+err.Error())
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return models.GeoPoint{}, NewExternalServiceError("google_geocoding", "geocode status "+decoded.Status)
	}
	return decoded.Results[0].Geometry.Location, nil
}
