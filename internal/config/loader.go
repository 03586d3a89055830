package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (Default())
//  2. YAML file named by STUDYPULSE_CONFIG, when set
//  3. environment variables with the STUDYPULSE_ prefix
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("STUDYPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// STUDYPULSE_DATABASE_PATH -> database_path, matching the koanf tags.
	envProvider := env.Provider("STUDYPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "studypulse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database_path must not be empty", ErrInvalidConfig)
	}
	if c.NearCompletionThreshold <= 0 || c.NearCompletionThreshold > 100 {
		return fmt.Errorf("%w: near_completion_threshold must be in (0, 100]", ErrInvalidConfig)
	}
	if c.RecentUnlockLimit <= 0 {
		return fmt.Errorf("%w: recent_unlock_limit must be positive", ErrInvalidConfig)
	}
	for name, weight := range c.CategoryWeights {
		if weight <= 0 {
			return fmt.Errorf("%w: category weight %q must be positive", ErrInvalidConfig, name)
		}
	}
	return nil
}
