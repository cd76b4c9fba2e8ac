package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rangelkoli/Wanderly/models"
)

const photoMaxWidth = 800

// PhotosFor resolves an official place photo URL for each location name.
// The lookup is best effort per name: a miss or provider error records a
// status for that name alone and never aborts the rest of the batch.
// A missing credential fails the whole call with ConfigurationError since
// there is no fallback photo provider.
func (g *DefaultResearchGateway) PhotosFor(ctx context.Context, locations []string) (map[string]models.PhotoResult, error) {
	if g.Cfg.GoogleMapsAPIKey == "" {
		return nil, NewConfigurationError("google_places", "GOOGLE_MAPS_API_KEY is required for place photos")
	}

	results := make(map[string]models.PhotoResult)
	for _, raw := range locations {
		location := strings.TrimSpace(raw)
		if location == "" {
			continue
		}
		results[location] = g.lookupPhoto(ctx, location)
	}
	return results, nil
}

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		Name             string `json:"name"`
		PlaceID          string `json:"place_id"`
		FormattedAddress string `json:"formatted_address"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"candidates"`
}

func (g *DefaultResearchGateway) lookupPhoto(ctx context.Context, location string) models.PhotoResult {
	params := url.Values{}
	params.Set("input", location)
	params.Set("inputtype", "textquery")
	params.Set("fields", "name,place_id,formatted_address,photos")
	params.Set("language", "en")
	params.Set("key", g.Cfg.GoogleMapsAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Cfg.FindPlaceURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.PhotoResult{Query: location, Status: "REQUEST_FAILED"}
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return models.PhotoResult{Query: location, Status: "REQUEST_FAILED"}
	}
	defer resp.Body.Close()

	var decoded findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.PhotoResult{Query: location, Status: "REQUEST_FAILED"}
	}

	if decoded.Status != "OK" || len(decoded.Candidates) == 0 {
		status := decoded.Status
		if status == "" {
			status = "UNKNOWN_ERROR"
		}
		return models.PhotoResult{Query: location, Status: status}
	}

	candidate := decoded.Candidates[0]
	result := models.PhotoResult{
		Query:   location,
		Status:  "OK",
		Name:    candidate.Name,
		PlaceID: candidate.PlaceID,
		Address: candidate.FormattedAddress,
	}
	if len(candidate.Photos) > 0 && candidate.Photos[0].PhotoReference != "" {
		result.ImageURL = g.buildPhotoURL(candidate.Photos[0].PhotoReference)
	}
	return result
}

func (g *DefaultResearchGateway) buildPhotoURL(photoReference string) string {
	params := url.Values{}
	params.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	params.Set("photo_reference", photoReference)
	params.Set("key", g.Cfg.GoogleMapsAPIKey)
	return g.Cfg.PlacePhotoURL + "?" + params.Encode()
}
