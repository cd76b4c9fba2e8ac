package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rangelkoli/Wanderly/models"
)

const serpAPIFlightsEngine = "google_flights"

type serpAPIFlightLeg struct {
	Airline          string `json:"airline"`
	DepartureAirport struct {
		Time string `json:"time"`
	} `json:"departure_airport"`
	ArrivalAirport struct {
		Time string `json:"time"`
	} `json:"arrival_airport"`
}

type serpAPIFlightOption struct {
	Flights       []serpAPIFlightLeg `json:"flights"`
	TotalDuration int                `json:"total_duration"`
	Price         float64            `json:"price"`
	BookingToken  string             `json:"booking_token"`
}

type serpAPIFlightsResponse struct {
	Error         string                `json:"error"`
	BestFlights   []serpAPIFlightOption `json:"best_flights"`
	OtherFlights  []serpAPIFlightOption `json:"other_flights"`
	PriceInsights struct {
		LowestPrice float64 `json:"lowest_price"`
		PriceLevel  string  `json:"price_level"`
	} `json:"price_insights"`
}

// Flights fetches flight options for a route. A missing credential is a
// ConfigurationError and an error payload from the provider is an
// ExternalServiceError; neither is retried here.
func (g *DefaultResearchGateway) Flights(ctx context.Context, query FlightQuery) (*models.FlightSummary, error) {
	if g.Cfg.SerpAPIKey == "" {
		return nil, NewConfigurationError("serpapi", "SERPAPI_API_KEY is required for flight search")
	}
	origin := strings.TrimSpace(query.Origin)
	destination := strings.TrimSpace(query.Destination)
	if origin == "" || destination == "" {
		return nil, NewExternalServiceError("serpapi", "origin and destination are required")
	}

	adults := query.Adults
	if adults < 1 {
		adults = 1
	}
	if adults > 9 {
		adults = 9
	}
	travelClass := query.TravelClass
	if travelClass == "" {
		travelClass = "ECONOMY"
	}
	currency := query.Currency
	if currency == "" {
		currency = "USD"
	}

	params := url.Values{}
	params.Set("engine", serpAPIFlightsEngine)
	params.Set("api_key", g.Cfg.SerpAPIKey)
	params.Set("departure_id", origin)
	params.Set("arrival_id", destination)
	params.Set("outbound_date", query.DepartureDate)
	params.Set("adults", strconv.Itoa(adults))
	params.Set("currency", currency)
	params.Set("travel_class", travelClass)
	if query.ReturnDate != "" {
		params.Set("return_date", query.ReturnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Cfg.SerpAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewExternalServiceError("serpapi", err.Error())
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, NewExternalServiceError("serpapi", err.Error())
	}
	defer resp.Body.Close()

	var decoded serpAPIFlightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewExternalServiceError("serpapi", "malformed flights payload: "+err.Error())
	}
	if decoded.Error != "" {
		return nil, NewExternalServiceError("serpapi", decoded.Error)
	}

	summary := &models.FlightSummary{
		Origin:       origin,
		Destination:  destination,
		BestFlights:  convertFlightOptions(decoded.BestFlights, currency),
		OtherFlights: convertFlightOptions(decoded.OtherFlights, currency),
	}
	if decoded.PriceInsights.LowestPrice > 0 {
		summary.PriceInsight = fmt.Sprintf("lowest %s %.0f (%s)",
			currency, decoded.PriceInsights.LowestPrice, decoded.PriceInsights.PriceLevel)
	}
	return summary, nil
}

func convertFlightOptions(options []serpAPIFlightOption, currency string) []models.FlightOption {
	out := make([]models.FlightOption, 0, len(options))
	for _, o := range options {
		opt := models.FlightOption{
			DurationMin:  o.TotalDuration,
			BookingToken: o.BookingToken,
		}
		if o.Price > 0 {
			opt.Price = fmt.Sprintf("%s %.0f", currency, o.Price)
		}
		if len(o.Flights) > 0 {
			opt.Airline = o.Flights[0].Airline
			opt.DepartureAt = o.Flights[0].DepartureAirport.Time
			opt.ArrivalAt = o.Flights[len(o.Flights)-1].ArrivalAirport.Time
			opt.Stops = len(o.Flights) - 1
		}
		out = append(out, opt)
	}
	return out
}
