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

// Weather is the current conditions snapshot for a region.
type Weather struct {
	Region    string    `json:"region"`
	TempC     float64   `json:"tempC"`
	Condition string    `json:"condition"`
	Humidity  int       `json:"humidity"`
	WindKph   float64   `json:"windKph"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// WeatherFetcher fetches conditions from an openweathermap-compatible
// endpoint. Missing credentials mean Fetch returns (nil, nil) and callers
// fall back to sample data.
type WeatherFetcher struct {
	BaseURL string
	APIKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewWeatherFetcher constructs a fetcher with a shared HTTP client.
func NewWeatherFetcher(baseURL, apiKey string) *WeatherFetcher {
	return &WeatherFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: httpTimeout},
		logger:  slog.Default(),
	}
}

// weatherResponse mirrors the openweathermap current-conditions response.
type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

// Fetch retrieves current conditions for the region. Returns nil without
// error when the provider is not configured.
func (f *WeatherFetcher) Fetch(ctx context.Context, region string) (*Weather, error) {
	if f.BaseURL == "" || f.APIKey == "" {
		f.logger.Debug("weather provider not configured, skipping fetch")
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", region)
	params.Set("appid", f.APIKey)
	params.Set("units", "metric")
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
		return nil, fmt.Errorf("weather provider returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed weatherResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	condition := ""
	if len(parsed.Weather) > 0 {
		condition = parsed.Weather[0].Description
	}

	return &Weather{
		Region:    parsed.Name,
		TempC:     parsed.Main.Temp,
		Condition: condition,
		Humidity:  parsed.Main.Humidity,
		WindKph:   parsed.Wind.Speed * 3.6,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// SampleWeather is the bundled fallback shown when no weather provider is set.
func SampleWeather(region string) *Weather {
	return &Weather{
		Region:    region,
		TempC:     29,
		Condition: "partly cloudy",
		Humidity:  64,
		WindKph:   11,
		FetchedAt: time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC),
	}
}
