// Package config defines engine configuration and its loading from defaults,
// an optional YAML file, and environment variables.
package config

// Config contains engine configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DatabasePath is the SQLite file backing selections, ledgers, and
	// unlocks. ":memory:" keeps everything in process.
	DatabasePath string `koanf:"database_path"`

	// CatalogPath optionally points at a YAML achievement catalog that
	// replaces the built-in one.
	CatalogPath string `koanf:"catalog_path"`

	// NearCompletionThreshold is the minimum progress percentage for the
	// dashboard's near-completion list.
	NearCompletionThreshold float64 `koanf:"near_completion_threshold"`

	// RecentUnlockLimit caps the dashboard's recent-unlock list.
	RecentUnlockLimit int `koanf:"recent_unlock_limit"`

	// CategoryWeights biases weekly selection per category. Missing
	// categories default to 1.
	CategoryWeights map[string]float64 `koanf:"category_weights"`

	// MetricsEnabled toggles Prometheus metric collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:                "info",
		DatabasePath:            "studypulse.db",
		NearCompletionThreshold: 75,
		RecentUnlockLimit:       5,
		MetricsEnabled:          true,
	}
}
