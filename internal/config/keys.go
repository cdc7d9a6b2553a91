package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "AGRI_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.mcp_port", typ: kInt, env: "AGRI_SERVER_MCP_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.MCPPort = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.MCPPort },
	},
	{
		key: "storage.data_dir", typ: kString, env: "AGRI_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "assist.base_url", typ: kString, env: "AGRI_ASSIST_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Assist.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Assist.BaseURL },
	},
	{
		key: "assist.api_key", typ: kString, env: "AGRI_ASSIST_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Assist.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Assist.APIKey },
	},
	{
		key: "assist.model", typ: kString, env: "AGRI_ASSIST_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Assist.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Assist.Model },
	},
	{
		key: "feeds.news_url", typ: kString, env: "AGRI_FEEDS_NEWS_URL",
		apply:   func(cfg *Config, v any) { cfg.Feeds.NewsURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Feeds.NewsURL },
	},
	{
		key: "feeds.weather_url", typ: kString, env: "AGRI_FEEDS_WEATHER_URL",
		apply:   func(cfg *Config, v any) { cfg.Feeds.WeatherURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Feeds.WeatherURL },
	},
	{
		key: "feeds.weather_api_key", typ: kString, env: "AGRI_FEEDS_WEATHER_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Feeds.WeatherAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Feeds.WeatherAPIKey },
	},
	{
		key: "feeds.default_region", typ: kString, env: "AGRI_FEEDS_DEFAULT_REGION",
		apply:   func(cfg *Config, v any) { cfg.Feeds.DefaultRegion = v.(string) },
		extract: func(cfg Config) any { return cfg.Feeds.DefaultRegion },
	},
	{
		key: "feeds.refresh_schedule", typ: kString, env: "AGRI_FEEDS_REFRESH_SCHEDULE",
		apply:   func(cfg *Config, v any) { cfg.Feeds.RefreshSchedule = v.(string) },
		extract: func(cfg Config) any { return cfg.Feeds.RefreshSchedule },
	},
	{
		key: "log.level", typ: kString, env: "AGRI_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
