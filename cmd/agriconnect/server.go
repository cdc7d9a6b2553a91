package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agriconnect/agriconnect/internal/api"
	"github.com/agriconnect/agriconnect/internal/assist"
	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/config"
	"github.com/agriconnect/agriconnect/internal/feeds"
	"github.com/agriconnect/agriconnect/internal/ingest"
	"github.com/agriconnect/agriconnect/internal/session"
	"github.com/agriconnect/agriconnect/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the marketplace server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "agriconnect version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}()

	if err := seedAnnouncements(store); err != nil {
		return fmt.Errorf("seeding announcements: %w", err)
	}

	// Advisory chat degrades to local recommendations without a key.
	chat := assist.NewClient(cfg.Assist.APIKey, cfg.Assist.BaseURL, cfg.Assist.Model)
	if !chat.Configured() {
		logger.Info("advisory chat disabled, no assist API key configured")
	}
	recommender := assist.NewRecommender(store)

	feedsSvc := feeds.NewService(
		feeds.NewNewsFetcher(cfg.Feeds.NewsURL),
		feeds.NewWeatherFetcher(cfg.Feeds.WeatherURL, cfg.Feeds.WeatherAPIKey),
		cfg.Feeds.DefaultRegion,
	)
	if err := feedsSvc.Start(ctx, cfg.Feeds.RefreshSchedule); err != nil {
		return fmt.Errorf("starting feed refresh: %w", err)
	}
	defer feedsSvc.Stop()

	worker := ingest.NewWorker(store, ingest.NewContentExtractor(), 500*time.Millisecond)
	go worker.Run(ctx)

	labour := catalog.Static(catalog.Records(catalog.FixtureLabour()))
	tractors := catalog.Static(catalog.Records(catalog.FixtureTractors()))
	middlemen := catalog.Static(catalog.Records(catalog.FixtureCoordinators()))

	handler := api.NewHandler(api.Deps{
		Store:       store,
		Chat:        chat,
		Recommender: recommender,
		Feeds:       feedsSvc,
		Labour:      labour,
		Tractors:    tractors,
		Middlemen:   middlemen,
		Logger:      logger,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// MCP server over SSE on its own port.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Store:     store,
		Labour:    labour,
		Tractors:  tractors,
		Middlemen: middlemen,
	})
	sseSrv := server.NewSSEServer(mcpSrv)
	mcpAddr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.MCPPort)
	go func() {
		logger.Info("MCP server listening", "addr", mcpAddr)
		if err := sseSrv.Start(mcpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MCP server error", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "agriconnect listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sseSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("MCP shutdown", "error", err)
	}
	return srv.Shutdown(shutdownCtx)
}

// seedAnnouncements fills an empty announcement feed so a fresh install has
// something to show.
func seedAnnouncements(store *storage.Store) error {
	existing, err := store.ListAnnouncements()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seed := []storage.Announcement{
		{
			Title:    "PM-KISAN instalment released",
			Body:     "The latest PM-KISAN support instalment has been credited. Check your bank account and verify your e-KYC status at the nearest CSC.",
			Category: storage.CategoryGovt,
			Source:   "seed",
		},
		{
			Title:    "Mandi prices update",
			Body:     "Onion trading at 1650-1900/quintal, tomato at 1200-1500/quintal across district mandis this week.",
			Category: storage.CategoryMarket,
			Source:   "seed",
		},
		{
			Title:    "Monsoon advisory",
			Body:     "Moderate to heavy rainfall expected over the next three days. Delay spraying operations and secure harvested produce.",
			Category: storage.CategoryWeather,
			Source:   "seed",
		},
	}
	for _, a := range seed {
		if _, err := store.CreateAnnouncement(a); err != nil {
			return err
		}
	}
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	running := false
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	st, err := session.NewStore().Get()
	if err != nil {
		printStatus("Session", "not logged in")
	} else {
		printStatus("Session", "%s (%s)", st.Name, st.UserType)
	}

	if running {
		// Pull the live counts concurrently.
		var taskCount, announcementCount, newsCount int
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			n, err := fetchCount(gctx, client, serverURL+"/api/tasks?view=table")
			taskCount = n
			return err
		})
		g.Go(func() error {
			n, err := fetchCount(gctx, client, serverURL+"/api/announcements?view=table")
			announcementCount = n
			return err
		})
		g.Go(func() error {
			n, err := fetchListLen(gctx, client, serverURL+"/api/news")
			newsCount = n
			return err
		})
		if err := g.Wait(); err != nil {
			printWarning("could not fetch counts: %v", err)
		} else {
			printStatus("Tasks", "%d", taskCount)
			printStatus("Announcements", "%d", announcementCount)
			printStatus("News items", "%d", newsCount)
		}
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

func fetchCount(ctx context.Context, client *http.Client, url string) (int, error) {
	resp, err := httpGet(ctx, client, url)
	if err != nil {
		return 0, err
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := decodeJSON(resp, &body); err != nil {
		return 0, err
	}
	return body.Count, nil
}

func fetchListLen(ctx context.Context, client *http.Client, url string) (int, error) {
	resp, err := httpGet(ctx, client, url)
	if err != nil {
		return 0, err
	}
	var items []any
	if err := decodeJSON(resp, &items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func httpGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
