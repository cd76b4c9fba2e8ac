package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rangelkoli/Wanderly/models"

	"go.uber.org/zap"
)

const (
	ProviderTavily     = "tavily"
	ProviderDuckDuckGo = "duckduckgo"
)

const (
	minSearchResults = 1
	maxSearchResults = 10
)

// Search runs a web search against Tavily and silently falls back to the
// DuckDuckGo Instant Answer API on any primary failure. The response always
// carries exactly one provider name, and the call never returns an error:
// if both providers fail the result set is empty with the fallback provider set.
func (g *DefaultResearchGateway) Search(ctx context.Context, query string, maxResults int, topic string) models.SearchResponse {
	if maxResults < minSearchResults {
		maxResults = minSearchResults
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}
	switch topic {
	case "general", "news", "finance":
	default:
		topic = "general"
	}

	if g.Cfg.TavilyAPIKey != "" {
		resp, err := g.searchTavily(ctx, query, maxResults, topic)
		if err == nil {
			return resp
		}
		g.Logger.Warn("Primary search provider failed, falling back",
			zap.String("query", query), zap.Error(err))
	}

	return g.searchDuckDuckGo(ctx, query, maxResults)
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	Topic         string `json:"topic"`
	MaxResults    int    `json:"max_results"`
	IncludeImages bool   `json:"include_images"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	Images []string `json:"images"`
}

func (g *DefaultResearchGateway) searchTavily(ctx context.Context, query string, maxResults int, topic string) (models.SearchResponse, error) {
	payload, err := json.Marshal(tavilyRequest{
		APIKey:        g.Cfg.TavilyAPIKey,
		Query:         query,
		Topic:         topic,
		MaxResults:    maxResults,
		IncludeImages: true,
	})
	if err != nil {
		return models.SearchResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Cfg.TavilyURL, bytes.NewReader(payload))
	if err != nil {
		return models.SearchResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return models.SearchResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SearchResponse{}, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.SearchResponse{}, fmt.Errorf("tavily payload malformed: %w", err)
	}

	out := models.SearchResponse{
		Query:           query,
		Provider:        ProviderTavily,
		Results:         []models.SearchResult{},
		ImageCandidates: []string{},
	}
	for _, r := range decoded.Results {
		if r.URL == "" {
			continue
		}
		out.Results = append(out.Results, models.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		})
		if len(out.Results) >= maxResults {
			break
		}
	}
	out.ImageCandidates = append(out.ImageCandidates, decoded.Images...)
	return out, nil
}

type duckDuckGoResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Image         string `json:"Image"`
	RelatedTopics []struct {
		FirstURL string `json:"FirstURL"`
		Text     string `json:"Text"`
		Topics   []struct {
			FirstURL string `json:"FirstURL"`
			Text     string `json:"Text"`
		} `json:"Topics"`
	} `json:"RelatedTopics"`
}

func (g *DefaultResearchGateway) searchDuckDuckGo(ctx context.Context, query string, maxResults int) models.SearchResponse {
	out := models.SearchResponse{
		Query:           query,
		Provider:        ProviderDuckDuckGo,
		Results:         []models.SearchResult{},
		ImageCandidates: []string{},
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Cfg.DuckDuckGoURL+"?"+params.Encode(), nil)
	if err != nil {
		return out
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		g.Logger.Warn("Fallback search provider unreachable", zap.String("query", query), zap.Error(err))
		return out
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.Logger.Warn("Fallback search provider returned non-OK status",
			zap.String("query", query), zap.Int("status", resp.StatusCode))
		return out
	}

	var decoded duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		g.Logger.Warn("Fallback search payload malformed", zap.String("query", query), zap.Error(err))
		return out
	}

	if decoded.AbstractURL != "" {
		out.Results = append(out.Results, models.SearchResult{
			Title:   decoded.Heading,
			URL:     decoded.AbstractURL,
			Content: decoded.AbstractText,
		})
	}
	if decoded.Image != "" {
		out.ImageCandidates = append(out.ImageCandidates, decoded.Image)
	}
	for _, t := range decoded.RelatedTopics {
		if len(out.Results) >= maxResults {
			break
		}
		if t.FirstURL != "" {
			out.Results = append(out.Results, models.SearchResult{Title: t.Text, URL: t.FirstURL, Content: t.Text})
			continue
		}
		// Disambiguation groups nest one level deeper.
		for _, sub := range t.Topics {
			if len(out.Results) >= maxResults {
				break
			}
			if sub.FirstURL != "" {
				out.Results = append(out.Results, models.SearchResult{Title: sub.Text, URL: sub.FirstURL, Content: sub.Text})
			}
		}
	}
	return out
}
