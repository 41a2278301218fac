package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries the ambient settings the CLI wires into the engine. All
// values come from PLATECALC_* environment variables or an optional .env file.
type Config struct {
	USDAAPIKey       string        `mapstructure:"usda_api_key"`
	USDABaseURL      string        `mapstructure:"usda_base_url"`
	LookupTimeout    time.Duration `mapstructure:"lookup_timeout"`
	DefaultItemGrams float64       `mapstructure:"default_item_grams"`
	LogLevel         string        `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PLATECALC")
	v.AutomaticEnv()

	v.SetDefault("usda_api_key", "")
	v.SetDefault("usda_base_url", "")
	v.SetDefault("lookup_timeout", 8*time.Second)
	v.SetDefault("default_item_grams", 100.0)
	v.SetDefault("log_level", "info")

	for _, key := range []string{"usda_api_key", "usda_base_url", "lookup_timeout", "default_item_grams", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind config env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DefaultItemGrams <= 0 {
		return nil, fmt.Errorf("default item grams must be > 0")
	}
	return &cfg, nil
}
