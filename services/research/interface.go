package research

import (
	"context"
	"net/http"
	"time"

	"github.com/rangelkoli/Wanderly/models"

	"go.uber.org/zap"
)

// Gateway is the uniform interface over the external research providers.
// All calls are idempotent read-only queries; no caching happens here.
type Gateway interface {
	// Search never returns an error: any primary provider failure degrades
	// to the fallback provider, worst case an empty result set.
	Search(ctx context.Context, query string, maxResults int, topic string) models.SearchResponse
	// PhotosFor resolves photo URLs per location; one miss never aborts the batch.
	PhotosFor(ctx context.Context, locations []string) (map[string]models.PhotoResult, error)
	Flights(ctx context.Context, query FlightQuery) (*models.FlightSummary, error)
	Geocode(ctx context.Context, placeName string) (models.GeoPoint, error)
}

// FlightQuery describes one flight search.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   string
	Currency      string
}

// Config carries the provider credentials and endpoints. Endpoints default
// to the live provider URLs and exist as fields so tests can point the
// gateway at stub servers.
type Config struct {
	TavilyAPIKey     string
	GoogleMapsAPIKey string
	SerpAPIKey       string

	TavilyURL     string
	DuckDuckGoURL string
	FindPlaceURL  string
	PlacePhotoURL string
	GeocodeURL    string
	SerpAPIURL    string
}

const (
	defaultTavilyURL     = "https://api.tavily.com/search"
	defaultDuckDuckGoURL = "https://api.duckduckgo.com/"
	defaultFindPlaceURL  = "https://maps.googleapis.com/maps/api/place/findplacefromtext/json"
	defaultPlacePhotoURL = "https://maps.googleapis.com/maps/api/place/photo"
	defaultGeocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultSerpAPIURL    = "https://serpapi.com/search.json"
)

// DefaultResearchGateway implements Gateway against the live providers.
type DefaultResearchGateway struct {
	Cfg    Config
	Client *http.Client
	Logger *zap.Logger
}

// NewDefaultResearchGateway fills endpoint defaults and returns a gateway.
func NewDefaultResearchGateway(cfg Config, logger *zap.Logger) *DefaultResearchGateway {
	if cfg.TavilyURL == "" {
		cfg.TavilyURL = defaultTavilyURL
	}
	if cfg.DuckDuckGoURL == "" {
		cfg.DuckDuckGoURL = defaultDuckDuckGoURL
	}
	if cfg.FindPlaceURL == "" {
		cfg.FindPlaceURL = defaultFindPlaceURL
	}
	if cfg.PlacePhotoURL == "" {
		cfg.PlacePhotoURL = defaultPlacePhotoURL
	}
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = defaultGeocodeURL
	}
	if cfg.SerpAPIURL == "" {
		cfg.SerpAPIURL = defaultSerpAPIURL
	}
	return &DefaultResearchGateway{
		Cfg:    cfg,
		Client: &http.Client{Timeout: 20 * time.Second},
		Logger: logger,
	}
}
