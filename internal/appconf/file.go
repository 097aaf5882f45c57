package appconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"convertkit.dev/internal/logging"
)

// File is the YAML form of Config. Unset keys leave the corresponding
// setting alone.
//
//	port: 8080
//	env: production
//	rate_limit: 50
//	trusted_proxies: [10.0.0.0/8]
//	locale: de
//	log_level: warn
//	rates:
//	  source_url: https://open.er-api.com/v6/latest/USD
//	  refresh_interval: 10m
//	  fetch_timeout: 20s
type File struct {
	Port      *int    `yaml:"port"`
	Env       *string `yaml:"env"`
	RateLimit *int    `yaml:"rate_limit"`
	Locale    *string `yaml:"locale"`
	LogLevel  *string `yaml:"log_level"`

	TrustedProxies []string `yaml:"trusted_proxies"`

	Rates struct {
		SourceURL       *string        `yaml:"source_url"`
		RefreshInterval *time.Duration `yaml:"refresh_interval"`
		FetchTimeout    *time.Duration `yaml:"fetch_timeout"`
	} `yaml:"rates"`
}

// LoadFile reads a YAML config file.
func LoadFile(path string, logger *slog.Logger) (f File, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open config: %w", err)
	}
	defer logging.HandleDeferredError(&err, fh.Close, logger, "close_config_file")

	return ParseFile(fh)
}

// ParseFile decodes a YAML config document. Unknown keys are rejected.
func ParseFile(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return f, nil
}

// Flag names that correspond to File keys.
const (
	FlagPort            = "port"
	FlagEnv             = "env"
	FlagRateLimit       = "rate-limit"
	FlagTrustedProxies  = "trusted-proxies"
	FlagLocale          = "locale"
	FlagLogLevel        = "log-level"
	FlagRateSourceURL   = "rate-source-url"
	FlagRefreshInterval = "refresh-interval"
	FlagFetchTimeout    = "fetch-timeout"
)

// ApplyTo copies the values set in f onto cfg, except for settings whose
// flag was given explicitly on the command line.
func (f File) ApplyTo(cfg *Config, explicit map[string]bool) {
	if f.Port != nil && !explicit[FlagPort] {
		cfg.Port = *f.Port
	}
	if f.Env != nil && !explicit[FlagEnv] {
		cfg.Env = EnvFlagToEnvironment(*f.Env)
	}
	if f.RateLimit != nil && !explicit[FlagRateLimit] {
		cfg.RateLimit = *f.RateLimit
	}
	if f.TrustedProxies != nil && !explicit[FlagTrustedProxies] {
		cfg.TrustedProxies = f.TrustedProxies
	}
	if f.Locale != nil && !explicit[FlagLocale] {
		cfg.Locale = *f.Locale
	}
	if f.LogLevel != nil && !explicit[FlagLogLevel] {
		cfg.LogLevel = *f.LogLevel
	}
	if f.Rates.SourceURL != nil && !explicit[FlagRateSourceURL] {
		cfg.RateSourceURL = *f.Rates.SourceURL
	}
	if f.Rates.RefreshInterval != nil && !explicit[FlagRefreshInterval] {
		cfg.RefreshInterval = *f.Rates.RefreshInterval
	}
	if f.Rates.FetchTimeout != nil && !explicit[FlagFetchTimeout] {
		cfg.FetchTimeout = *f.Rates.FetchTimeout
	}
}
