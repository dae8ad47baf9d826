package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, sourced from FIGDASH_* environment
// variables with an optional .env file.
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	FigmaToken       string        `envconfig:"FIGMA_TOKEN"`
	FigmaAPIBase     string        `envconfig:"FIGMA_API_BASE" default:"https://api.figma.com/v1"`
	TeamID           string        `envconfig:"TEAM_ID"`
	MirrorPath       string        `envconfig:"MIRROR_PATH" default:"build/figdash.db"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	RetryMax         int           `envconfig:"RETRY_MAX" default:"2"`
	AutoSyncInterval time.Duration `envconfig:"AUTO_SYNC_INTERVAL" default:"5m"`
	BackfillDelay    time.Duration `envconfig:"BACKFILL_DELAY" default:"500ms"`
	SyncLogSize      int           `envconfig:"SYNC_LOG_SIZE" default:"5"`
	Debug            bool          `envconfig:"DEBUG" default:"false"`
}

// Load reads the optional env file, then the environment. A missing env file
// is not an error; the environment alone is enough.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("figdash", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// HasToken reports whether a server-side access token is configured.
func (c *Config) HasToken() bool {
	return c.FigmaToken != ""
}
