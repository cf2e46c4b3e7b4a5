package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings of the editor CLI.
type Config struct {
	// ServerURL is the base URL of the abstract server.
	ServerURL string
	// Token is the bearer token sent with every request. It may be empty
	// and entered later in the shell.
	Token             string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	// DraftsPath is the sqlite file holding drafts of unsaved abstracts.
	DraftsPath string
	LogLevel   string

	ConferenceID string
	AbstractID   string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:9000"
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 5
	c.DraftsPath = "drafts.db"
	c.LogLevel = "info"
}

// Validate checks values that would only fail later, at the first request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("requests per second must not be negative")
	}
	return nil
}

// LoadConfig applies defaults, then the config file named by -c/-config (if
// any), then the remaining flags of args. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
