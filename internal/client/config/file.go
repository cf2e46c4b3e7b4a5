package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnode/gcaeditor/internal/flagx"
	"github.com/gnode/gcaeditor/internal/timex"
)

// fileConfig is the on-disk form. Pointer fields tell an absent key from a
// zero value so only keys present in the file override the defaults.
type fileConfig struct {
	ServerURL         *string         `json:"server_url" yaml:"server_url"`
	Token             *string         `json:"token" yaml:"token"`
	RequestTimeout    *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second" yaml:"requests_per_second"`
	DraftsPath        *string         `json:"drafts_path" yaml:"drafts_path"`
	LogLevel          *string         `json:"log_level" yaml:"log_level"`
	ConferenceID      *string         `json:"conference_id" yaml:"conference_id"`
	AbstractID        *string         `json:"abstract_id" yaml:"abstract_id"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.ServerURL, fc.ServerURL)
	set(&cfg.Token, fc.Token)
	set(&cfg.DraftsPath, fc.DraftsPath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.ConferenceID, fc.ConferenceID)
	set(&cfg.AbstractID, fc.AbstractID)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
}
