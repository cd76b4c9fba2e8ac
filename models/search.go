package models

// SearchResult is one normalized hit from a search provider.
type SearchResult struct {
	Title    string  `json:"title,omitempty"`
	URL      string  `json:"url"`
	Content  string  `json:"content,omitempty"`
	Score    float64 `json:"relevance_score,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// SearchResponse is the uniform shape every search call resolves to.
// Provider is either the primary provider or the documented fallback,
// never both.
type SearchResponse struct {
	Query           string         `json:"query"`
	Provider        string         `json:"provider"`
	Results         []SearchResult `json:"results"`
	ImageCandidates []string       `json:"image_candidates"`
}

// PhotoResult is the per-location outcome of a place photo lookup.
// A miss keeps Status as the reason and leaves ImageURL empty.
type PhotoResult struct {
	Query    string `json:"query"`
	Status   string `json:"status"`
	Name     string `json:"name,omitempty"`
	PlaceID  string `json:"place_id,omitempty"`
	Address  string `json:"formatted_address,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// FlightOption is one flight itinerary returned by the flights provider.
type FlightOption struct {
	Airline      string `json:"airline,omitempty"`
	Price        string `json:"price,omitempty"`
	DurationMin  int    `json:"duration_min,omitempty"`
	Stops        int    `json:"stops,omitempty"`
	DepartureAt  string `json:"departure_at,omitempty"`
	ArrivalAt    string `json:"arrival_at,omitempty"`
	BookingToken string `json:"booking_token,omitempty"`
}

// FlightSummary aggregates the best and alternative flight options for a route.
type FlightSummary struct {
	Origin       string         `json:"origin"`
	Destination  string         `json:"destination"`
	BestFlights  []FlightOption `json:"best_flights"`
	OtherFlights []FlightOption `json:"other_flights"`
	PriceInsight string         `json:"price_insight,omitempty"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
