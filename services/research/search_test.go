// File: services/research/search_test.go
package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(cfg Config) *DefaultResearchGateway {
	return NewDefaultResearchGateway(cfg, zap.NewNop())
}

func TestSearchUsesTavilyWhenConfigured(t *testing.T) {
	var gotReq tavilyRequest
	tavily := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Eiffel Tower", "url": "https://example.com/eiffel", "content": "Iconic tower", "score": 0.9},
				{"title": "No URL", "url": "", "content": "dropped"},
			},
			"images": []string{"https://img.example.com/1.jpg"},
		})
	}))
	defer tavily.Close()

	gw := newTestGateway(Config{TavilyAPIKey: "key", TavilyURL: tavily.URL})
	resp := gw.Search(context.Background(), "famous attractions Paris", 5, "general")

	assert.Equal(t, ProviderTavily, resp.Provider)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Eiffel Tower", resp.Results[0].Title)
	assert.Equal(t, []string{"https://img.example.com/1.jpg"}, resp.ImageCandidates)
	assert.Equal(t, "famous attractions Paris", gotReq.Query)
	assert.Equal(t, 5, gotReq.MaxResults)
}

func TestSearchClampsMaxResultsAndTopic(t *testing.T) {
	var gotReq tavilyRequest
	tavily := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer tavily.Close()

	gw := newTestGateway(Config{TavilyAPIKey: "key", TavilyURL: tavily.URL})

	gw.Search(context.Background(), "q", 50, "gossip")
	assert.Equal(t, maxSearchResults, gotReq.MaxResults)
	assert.Equal(t, "general", gotReq.Topic)

	gw.Search(context.Background(), "q", -3, "news")
	assert.Equal(t, minSearchResults, gotReq.MaxResults)
	assert.Equal(t, "news", gotReq.Topic)
}

func TestSearchFallsBackToDuckDuckGo(t *testing.T) {
	tavily := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer tavily.Close()

	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tokyo tower", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{
			"Heading":      "Tokyo Tower",
			"AbstractText": "A lattice tower in Tokyo.",
			"AbstractURL":  "https://en.wikipedia.org/wiki/Tokyo_Tower",
			"RelatedTopics": []map[string]any{
				{"FirstURL": "https://example.com/related", "Text": "Related"},
				{"Topics": []map[string]any{
					{"FirstURL": "https://example.com/nested", "Text": "Nested"},
				}},
			},
		})
	}))
	defer ddg.Close()

	gw := newTestGateway(Config{TavilyAPIKey: "key", TavilyURL: tavily.URL, DuckDuckGoURL: ddg.URL})
	resp := gw.Search(context.Background(), "tokyo tower", 5, "general")

	assert.Equal(t, ProviderDuckDuckGo, resp.Provider)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Tokyo Tower", resp.Results[0].Title)
	assert.Equal(t, "https://example.com/nested", resp.Results[2].URL)
}

func TestSearchSkipsTavilyWithoutKey(t *testing.T) {
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"AbstractURL":  "https://example.com/abstract",
			"Heading":      "Heading",
			"AbstractText": "Text",
		})
	}))
	defer ddg.Close()

	gw := newTestGateway(Config{DuckDuckGoURL: ddg.URL})
	resp := gw.Search(context.Background(), "anything", 3, "general")
	assert.Equal(t, ProviderDuckDuckGo, resp.Provider)
	require.Len(t, resp.Results, 1)
}

// When every provider fails the search degrades to an empty result set
// rather than an error.
func TestSearchNeverErrors(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	gw := newTestGateway(Config{TavilyAPIKey: "key", TavilyURL: down.URL, DuckDuckGoURL: down.URL})
	resp := gw.Search(context.Background(), "anything", 3, "general")

	assert.Equal(t, ProviderDuckDuckGo, resp.Provider)
	assert.Empty(t, resp.Results)
	assert.NotNil(t, resp.Results)
}
