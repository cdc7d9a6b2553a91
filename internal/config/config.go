package config

import (
	"strings"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Assist  AssistConfig
	Feeds   FeedsConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port    int
	MCPPort int
}

type StorageConfig struct {
	DataDir string
}

// AssistConfig points at the upstream chat engine used by the advisory
// endpoints. An empty APIKey disables live chat; callers fall back to
// locally computed guidance.
type AssistConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type FeedsConfig struct {
	NewsURL         string
	WeatherURL      string
	WeatherAPIKey   string
	DefaultRegion   string
	RefreshSchedule string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		Server: ServerConfig{
			Port:    8082,
			MCPPort: 8083,
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Assist: AssistConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "anthropic/claude-opus-4",
		},
		Feeds: FeedsConfig{
			DefaultRegion:   "Pune",
			RefreshSchedule: "@every 30m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/agriconnect/config.json, then applies AGRI_* environment
// overrides, then fills secrets from $XDG_DATA_HOME/agriconnect/secrets.json.
//
// Secrets are optional: the marketplace runs without an assist API key, it
// just answers advisory requests from local data instead of the upstream
// engine.
func Load() (Config, error) {
	return loadWith(newFileBackend(), secretsReader{})
}

// secrets abstracts the secrets store for testing.
type secrets interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, sec secrets) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Assist.APIKey == "" {
		if key, err := sec.Get("agriconnect", "assist_api_key"); err == nil && key != "" {
			cfg.Assist.APIKey = key
		}
	}
	if cfg.Feeds.WeatherAPIKey == "" {
		if key, err := sec.Get("agriconnect", "weather_api_key"); err == nil && key != "" {
			cfg.Feeds.WeatherAPIKey = key
		}
	}

	return cfg, nil
}

// secretsReader reads from the secrets file.
type secretsReader struct{}

func (secretsReader) Get(service, account string) (string, error) {
	out, err := secretsGet(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
