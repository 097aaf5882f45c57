// Package appconf holds the runtime configuration shared by the server and
// the command-line tool.
package appconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"convertkit.dev/internal/utils"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Unknown
// values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultPort            = 4000
	DefaultRateLimit       = 100
	DefaultFetchTimeout    = 15 * time.Second
	DefaultRefreshInterval = time.Duration(0)
	DefaultLocale          = "en"
	DefaultLogLevel        = "info"
)

// Config holds all the configuration settings for the Application.
type Config struct {
	Port int
	Env  Environment

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit int

	// TrustedProxies lists the IPs or CIDR prefixes of reverse proxies whose
	// X-Forwarded-For header identifies the client. Empty means the client is
	// always the connecting peer.
	TrustedProxies []string

	// RateSourceURL points at a JSON exchange-rate feed. When empty, rates
	// are simulated by jittering the built-in table.
	RateSourceURL   string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	Locale   string
	LogLevel string
}

// Default returns a Config populated with the package defaults.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		Env:             Development,
		RateLimit:       DefaultRateLimit,
		RefreshInterval: DefaultRefreshInterval,
		FetchTimeout:    DefaultFetchTimeout,
		Locale:          DefaultLocale,
		LogLevel:        DefaultLogLevel,
	}
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit %d must not be negative", c.RateLimit))
	}
	if c.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("refresh interval %s must not be negative", c.RefreshInterval))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch timeout %s must be positive", c.FetchTimeout))
	}
	if c.RateSourceURL != "" && !strings.HasPrefix(c.RateSourceURL, "http://") && !strings.HasPrefix(c.RateSourceURL, "https://") {
		errs = append(errs, fmt.Errorf("rate source url %q must be http or https", c.RateSourceURL))
	}
	if _, err := utils.ParseTrustedProxies(c.TrustedProxies); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
