package config

import (
	"fmt"
	"testing"
)

// mockBackend is a test double for ConfigBackend.
type mockBackend struct {
	data map[string]any
}

func (m mockBackend) GetString(key string) (string, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v), true, nil
	}
	return s, true, nil
}

func (m mockBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return 0, false, nil
	}
	i, ok := v.(int)
	if !ok {
		return 0, true, fmt.Errorf("invalid type for %s", key)
	}
	return i, true, nil
}

func (m mockBackend) SetString(key, val string) error { m.data[key] = val; return nil }
func (m mockBackend) SetInt(key string, val int) error { m.data[key] = val; return nil }
func (m mockBackend) Delete(key string) error          { delete(m.data, key); return nil }

// mockSecrets is a test double for the secrets store.
type mockSecrets struct {
	value string
	err   error
}

func (m mockSecrets) Get(service, account string) (string, error) {
	return m.value, m.err
}

func emptyBackend() mockBackend {
	return mockBackend{data: make(map[string]any)}
}

// TestDefaults verifies all default values are applied with an empty backend.
func TestDefaults(t *testing.T) {
	t.Setenv("AGRI_SERVER_PORT", "")
	t.Setenv("AGRI_ASSIST_API_KEY", "")

	cfg, err := loadWith(emptyBackend(), mockSecrets{err: fmt.Errorf("no store")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8082 {
		t.Errorf("Server.Port = %d, want 8082", cfg.Server.Port)
	}
	if cfg.Server.MCPPort != 8083 {
		t.Errorf("Server.MCPPort = %d, want 8083", cfg.Server.MCPPort)
	}
	if cfg.Assist.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Assist.BaseURL = %q", cfg.Assist.BaseURL)
	}
	if cfg.Assist.Model != "anthropic/claude-opus-4" {
		t.Errorf("Assist.Model = %q", cfg.Assist.Model)
	}
	if cfg.Feeds.DefaultRegion != "Pune" {
		t.Errorf("Feeds.DefaultRegion = %q, want %q", cfg.Feeds.DefaultRegion, "Pune")
	}
	if cfg.Feeds.RefreshSchedule != "@every 30m" {
		t.Errorf("Feeds.RefreshSchedule = %q", cfg.Feeds.RefreshSchedule)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

// TestBackendValues verifies fields are read from the backend store.
func TestBackendValues(t *testing.T) {
	t.Setenv("AGRI_SERVER_PORT", "")
	t.Setenv("AGRI_STORAGE_DATA_DIR", "")

	b := mockBackend{data: map[string]any{
		"server.port":      9090,
		"storage.data_dir": "/tmp/agritest",
		"assist.model":     "openai/gpt-4o",
		"log.level":        "debug",
	}}

	cfg, err := loadWith(b, mockSecrets{err: fmt.Errorf("no store")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/tmp/agritest" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Assist.Model != "openai/gpt-4o" {
		t.Errorf("Assist.Model = %q", cfg.Assist.Model)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

// TestEnvOverride verifies that environment variables override backend values.
func TestEnvOverride(t *testing.T) {
	b := mockBackend{data: map[string]any{"server.port": 9000}}

	t.Setenv("AGRI_SERVER_PORT", "7070")

	cfg, err := loadWith(b, mockSecrets{err: fmt.Errorf("no store")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}

// TestSecretsFallback verifies the secrets store is consulted when no API key
// came from the environment.
func TestSecretsFallback(t *testing.T) {
	t.Setenv("AGRI_ASSIST_API_KEY", "")

	cfg, err := loadWith(emptyBackend(), mockSecrets{value: "store-secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Assist.APIKey != "store-secret" {
		t.Errorf("Assist.APIKey = %q, want %q", cfg.Assist.APIKey, "store-secret")
	}
}

// TestMissingAssistKeyIsNotFatal verifies the marketplace loads without any
// assist credentials.
func TestMissingAssistKeyIsNotFatal(t *testing.T) {
	t.Setenv("AGRI_ASSIST_API_KEY", "")

	cfg, err := loadWith(emptyBackend(), mockSecrets{err: fmt.Errorf("no store")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Assist.APIKey != "" {
		t.Errorf("Assist.APIKey = %q, want empty", cfg.Assist.APIKey)
	}
}

// TestSetKeyRejectsSecrets verifies secrets cannot be written through SetKey.
func TestSetKeyRejectsSecrets(t *testing.T) {
	err := SetKey("assist.api_key", "leaked")
	if err == nil {
		t.Fatal("expected error setting secret key, got nil")
	}
}

// TestValidKeysExcludeSecrets verifies secret keys are not listed.
func TestValidKeysExcludeSecrets(t *testing.T) {
	for _, k := range ValidKeys() {
		if k == "assist.api_key" || k == "feeds.weather_api_key" {
			t.Errorf("secret key %q listed in ValidKeys", k)
		}
	}
}

// TestShowAllCoversEveryPublicKey verifies ShowAll and ValidKeys agree.
func TestShowAllCoversEveryPublicKey(t *testing.T) {
	cfg := defaults()
	infos := ShowAll(cfg)
	keys := ValidKeys()

	if len(infos) != len(keys) {
		t.Fatalf("ShowAll returned %d entries, ValidKeys %d", len(infos), len(keys))
	}
	for i, info := range infos {
		if info.Key != keys[i] {
			t.Errorf("entry %d key = %q, want %q", i, info.Key, keys[i])
		}
		if info.EnvVar == "" {
			t.Errorf("key %q has no env var", info.Key)
		}
	}
}
