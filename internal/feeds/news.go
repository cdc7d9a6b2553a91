// Package feeds serves the news and weather panels. Both feeds come from
// external APIs, refresh on a cron schedule, and fall back to bundled
// sample data when no API is configured so the marketplace never renders
// an empty panel.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 15 * time.Second

// NewsItem is one agricultural news entry.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// NewsFetcher fetches headlines from a newsapi-compatible endpoint.
// An empty BaseURL means no provider is configured; Fetch then returns
// (nil, nil) and callers fall back to sample data.
type NewsFetcher struct {
	BaseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewNewsFetcher constructs a fetcher with a shared HTTP client.
func NewNewsFetcher(baseURL string) *NewsFetcher {
	return &NewsFetcher{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
		logger:  slog.Default(),
	}
}

// newsResponse mirrors the newsapi top-level JSON response.
type newsResponse struct {
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch retrieves headlines for the given region. Returns nil without error
// when no provider is configured.
func (f *NewsFetcher) Fetch(ctx context.Context, region string) ([]NewsItem, error) {
	if f.BaseURL == "" {
		f.logger.Debug("news provider not configured, skipping fetch")
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "agriculture "+region)
	reqURL := f.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news provider returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	items := make([]NewsItem, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, NewsItem{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
		})
	}
	return items, nil
}

// SampleNews is the bundled fallback shown when no news provider is set.
func SampleNews() []NewsItem {
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	return []NewsItem{
		{Title: "Government raises MSP for kharif crops", Summary: "Minimum support prices increased across 14 crops ahead of the sowing season.", Source: "AgriConnect", PublishedAt: base},
		{Title: "Monsoon forecast upgraded to above normal", Summary: "The weather bureau now expects above-normal rainfall in most growing regions.", Source: "AgriConnect", PublishedAt: base.Add(-24 * time.Hour)},
		{Title: "Drip irrigation subsidy window reopens", Summary: "Smallholders can apply for up to 55% subsidy on micro-irrigation equipment.", Source: "AgriConnect", PublishedAt: base.Add(-48 * time.Hour)},
	}
}
