package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/apiembed/apiembed/internal/source"
)

// Config holds the application configuration
type Config struct {
	Port          int    `env:"PORT" envDefault:"8080"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:""`
	Version       string `env:"VERSION" envDefault:"dev"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`

	// Views
	NoCache     bool   `env:"NOCACHE" envDefault:"false"`
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:""`

	// Source fetching
	FetchTimeoutMs int   `env:"FETCH_TIMEOUT_MS" envDefault:"10000"`
	MaxSourceBytes int64 `env:"MAX_SOURCE_BYTES" envDefault:"5242880"`
}

// platformEnv holds the unprefixed variables set by hosting platforms.
type platformEnv struct {
	Port    *int    `env:"PORT"`
	NoCache *string `env:"NOCACHE"`
}

// NewConfig creates a new configuration with default values. PORT and
// NOCACHE apply when their APIEMBED_ counterparts are unset; any non-empty
// NOCACHE disables caching.
func NewConfig() *Config {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		Prefix: "APIEMBED_",
	})
	if err != nil {
		panic(err)
	}

	platform, err := env.ParseAs[platformEnv]()
	if err != nil {
		panic(err)
	}
	if _, set := os.LookupEnv("APIEMBED_PORT"); !set && platform.Port != nil {
		cfg.Port = *platform.Port
	}
	if _, set := os.LookupEnv("APIEMBED_NOCACHE"); !set && platform.NoCache != nil && *platform.NoCache != "" {
		cfg.NoCache = true
	}
	return &cfg
}

// Addr returns the listen address. SERVER_ADDRESS wins over PORT.
func (c *Config) Addr() string {
	if c.ServerAddress != "" {
		return c.ServerAddress
	}
	return fmt.Sprintf(":%d", c.Port)
}

// FetchTimeout is the outbound source fetch timeout
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// ToFetchConfig converts the source fetching settings to a source.Config
func (c *Config) ToFetchConfig() *source.Config {
	return &source.Config{
		Timeout:  c.FetchTimeout(),
		MaxBytes: c.MaxSourceBytes,
	}
}
