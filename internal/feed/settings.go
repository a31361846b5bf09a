package feed

import (
	"net"
	"strings"
	"time"

	"logoline/internal/config"
)

const (
	// DefaultListen is the loopback bind used when no override is provided.
	DefaultListen = "127.0.0.1:3000"
	// DefaultReadTimeout guards hung clients.
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout bounds handler writes.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultIdleTimeout bounds keep-alive connections.
	DefaultIdleTimeout = 60 * time.Second
)

// Settings captures runtime configuration for the feed HTTP server.
type Settings struct {
	Listen       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SettingsFromConfig builds Settings from the feed block of the loaded
// configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	settings := Settings{
		Listen:       DefaultListen,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	if cfg != nil {
		if listen := strings.TrimSpace(cfg.Feed.Listen); listen != "" {
			settings.Listen = listen
		}
		if cfg.Feed.ReadTimeoutSec > 0 {
			settings.ReadTimeout = time.Duration(cfg.Feed.ReadTimeoutSec) * time.Second
		}
		if cfg.Feed.WriteTimeoutSec > 0 {
			settings.WriteTimeout = time.Duration(cfg.Feed.WriteTimeoutSec) * time.Second
		}
		if cfg.Feed.IdleTimeoutSec > 0 {
			settings.IdleTimeout = time.Duration(cfg.Feed.IdleTimeoutSec) * time.Second
		}
	}
	settings.normalize()
	return settings
}

func (s *Settings) normalize() {
	if s == nil {
		return
	}
	s.Listen = strings.TrimSpace(s.Listen)
	if s.Listen == "" {
		s.Listen = DefaultListen
	}
	if _, _, err := net.SplitHostPort(s.Listen); err != nil {
		s.Listen = DefaultListen
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}
}
