package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// newsSource and weatherSource let tests substitute fetchers.
type newsSource interface {
	Fetch(ctx context.Context, region string) ([]NewsItem, error)
}

type weatherSource interface {
	Fetch(ctx context.Context, region string) (*Weather, error)
}

// Service caches the latest feed snapshots and refreshes them on a cron
// schedule. Reads never block on the network.
type Service struct {
	news    newsSource
	weather weatherSource
	region  string
	logger  *slog.Logger

	cron *cron.Cron

	mu           sync.RWMutex
	newsCache    []NewsItem
	weatherCache map[string]*Weather
}

// NewService creates a Service seeded with sample data so the panels are
// never empty before the first refresh completes.
func NewService(news newsSource, weather weatherSource, region string) *Service {
	return &Service{
		news:         news,
		weather:      weather,
		region:       region,
		logger:       slog.Default(),
		newsCache:    SampleNews(),
		weatherCache: map[string]*Weather{region: SampleWeather(region)},
	}
}

// Start registers the refresh job and starts the scheduler. Also refreshes
// immediately so live data replaces the samples without waiting for the
// first tick.
func (s *Service) Start(ctx context.Context, schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("feed refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("feed scheduler started", "schedule", schedule)

	go func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("initial feed refresh failed", "error", err)
		}
	}()

	return nil
}

// Stop shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Refresh fetches both feeds concurrently and swaps in whatever succeeded.
// Unconfigured providers return nothing; the previous cache (or the
// samples) stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		items   []NewsItem
		current *Weather
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.news.Fetch(gctx, s.region)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.weather.Fetch(gctx, s.region)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(items) > 0 {
		s.newsCache = items
	}
	if current != nil {
		s.weatherCache[s.region] = current
	}
	return nil
}

// News returns the cached headlines.
func (s *Service) News() []NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]NewsItem, len(s.newsCache))
	copy(out, s.newsCache)
	return out
}

// WeatherFor returns conditions for a region. Regions not yet cached are
// fetched once on demand; when that fails or no provider is configured the
// sample snapshot is returned.
func (s *Service) WeatherFor(ctx context.Context, region string) *Weather {
	if region == "" {
		region = s.region
	}

	s.mu.RLock()
	cached, ok := s.weatherCache[region]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	current, err := s.weather.Fetch(ctx, region)
	if err != nil {
		s.logger.Warn("weather fetch failed", "region", region, "error", err)
	}
	if current == nil {
		// Not cached: the sample would otherwise shadow the provider for
		// this region until restart, and unknown regions would grow the
		// map without bound.
		return SampleWeather(region)
	}

	s.mu.Lock()
	s.weatherCache[region] = current
	s.mu.Unlock()
	return current
}
