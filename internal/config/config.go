// internal/config/config.go
//
// Configuration for the viewer and the development feed server. Values come
// from an optional YAML file, then environment overrides, then defaults for
// anything still unset.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the config file name looked up in the working directory.
	DefaultFile = "logoline.yaml"

	defaultURL                = "http://localhost:3000"
	defaultAdvanceIntervalMS  = 50
	defaultRefreshIntervalSec = 120
	defaultImageWidth         = 64

	defaultFeedListen          = "127.0.0.1:3000"
	defaultFeedFramesDir       = "frames"
	defaultFeedReadTimeoutSec  = 15
	defaultFeedWriteTimeoutSec = 15
	defaultFeedIdleTimeoutSec  = 60
)

// FeedConfig configures the development history service.
type FeedConfig struct {
	Listen          string `yaml:"listen" env:"LOGOLINE_FEED_LISTEN"`
	FramesDir       string `yaml:"frames_dir" env:"LOGOLINE_FEED_FRAMES_DIR"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec" env:"LOGOLINE_FEED_READ_TIMEOUT_SEC"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec" env:"LOGOLINE_FEED_WRITE_TIMEOUT_SEC"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec" env:"LOGOLINE_FEED_IDLE_TIMEOUT_SEC"`
}

// Config holds the runtime configuration for logoline.
type Config struct {
	// URL is the history service base URL. Its query string may carry the
	// startup parameters `play` and `showControls`.
	URL string `yaml:"url" env:"LOGOLINE_URL"`

	AdvanceIntervalMS  int    `yaml:"advance_interval_ms" env:"LOGOLINE_ADVANCE_INTERVAL_MS"`
	RefreshIntervalSec int    `yaml:"refresh_interval_sec" env:"LOGOLINE_REFRESH_INTERVAL_SEC"`
	ImageWidth         int    `yaml:"image_width" env:"LOGOLINE_IMAGE_WIDTH"`
	FetchLimit         int    `yaml:"fetch_limit" env:"LOGOLINE_FETCH_LIMIT"`
	LogFile            string `yaml:"log_file" env:"LOGOLINE_LOG_FILE"`

	Feed FeedConfig `yaml:"feed"`
}

// Load reads the config file at path (missing file is fine), applies
// environment overrides, then fills in defaults and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// AdvanceInterval is the playback timer period.
func (c *Config) AdvanceInterval() time.Duration {
	return time.Duration(c.AdvanceIntervalMS) * time.Millisecond
}

// RefreshInterval is the re-fetch timer period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.URL) == "" {
		c.URL = defaultURL
	}
	if c.AdvanceIntervalMS <= 0 {
		c.AdvanceIntervalMS = defaultAdvanceIntervalMS
	}
	if c.RefreshIntervalSec <= 0 {
		c.RefreshIntervalSec = defaultRefreshIntervalSec
	}
	if c.ImageWidth <= 0 {
		c.ImageWidth = defaultImageWidth
	}
	if strings.TrimSpace(c.Feed.Listen) == "" {
		c.Feed.Listen = defaultFeedListen
	}
	if strings.TrimSpace(c.Feed.FramesDir) == "" {
		c.Feed.FramesDir = defaultFeedFramesDir
	}
	if c.Feed.ReadTimeoutSec <= 0 {
		c.Feed.ReadTimeoutSec = defaultFeedReadTimeoutSec
	}
	if c.Feed.WriteTimeoutSec <= 0 {
		c.Feed.WriteTimeoutSec = defaultFeedWriteTimeoutSec
	}
	if c.Feed.IdleTimeoutSec <= 0 {
		c.Feed.IdleTimeoutSec = defaultFeedIdleTimeoutSec
	}
}

func (c *Config) normalize() {
	c.URL = strings.TrimSpace(c.URL)
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.Feed.Listen = strings.TrimSpace(c.Feed.Listen)
	c.Feed.FramesDir = strings.TrimSpace(c.Feed.FramesDir)
	if c.FetchLimit < 0 {
		c.FetchLimit = 0
	}
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("url %q: %w", c.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url %q: scheme must be http or https", c.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url %q: host is required", c.URL)
	}
	return nil
}
