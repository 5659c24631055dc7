package main

import (
	"fmt"

	"github.com/poiesic/overlap/config"
	"github.com/urfave/cli/v2"
)

// loadSettings reads the settings file and applies the flags the user set.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("format") {
		settings.Format = c.String("format")
	}
	if c.IsSet("top-k") {
		settings.TopK = c.Int("top-k")
	}
	if c.IsSet("threshold") {
		settings.Threshold = c.Float64("threshold")
	}
	if c.IsSet("embedding-host") {
		settings.EmbeddingHost = c.String("embedding-host")
	}
	if c.IsSet("cache-dir") {
		settings.CacheDir = c.String("cache-dir")
	}
	if c.Bool("no-cache") {
		settings.CacheDir = ""
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	// The settings file may carry a log level; --log-level wins.
	if !c.IsSet("log-level") {
		level, err := config.ParseLogLevel(settings.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
		}
		configureLogger(c, level)
	}
	return settings, nil
}
