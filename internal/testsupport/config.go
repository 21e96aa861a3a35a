package testsupport

import (
	"path/filepath"
	"testing"

	"snipelabel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a validated config seeded with unique temp directories
// per test and a fake Snipe-IT endpoint.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.SnipeIT.URL = "https://snipe.example.com"
	cfg.SnipeIT.APIKey = "test"
	cfg.Paths.TemplatePath = filepath.Join(base, "Asset-Template.odt")
	cfg.Paths.OutputPath = filepath.Join(base, "Asset-Label.odt")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithSnipeIT points the test config at a live test server.
func WithSnipeIT(url, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.SnipeIT.URL = url
		cfg.SnipeIT.APIKey = apiKey
	}
}

// WithIndexedLists enables indexed list flattening on the test config.
func WithIndexedLists() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Labels.IndexedLists = true
	}
}
