package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL  = "https://mbuzz.co/api/v1"
	DefaultTimeout = 5 * time.Second
)

// Config holds the tracking settings.
type Config struct {
	APIKey         string        `env:"MBUZZ_API_KEY"`
	APIURL         string        `env:"MBUZZ_API_URL" envDefault:"https://mbuzz.co/api/v1"`
	Enabled        bool          `env:"MBUZZ_ENABLED" envDefault:"true"`
	Debug          bool          `env:"MBUZZ_DEBUG" envDefault:"false"`
	Timeout        time.Duration `env:"MBUZZ_TIMEOUT" envDefault:"5s"`
	SkipPaths      []string      `env:"MBUZZ_SKIP_PATHS" envSeparator:","`
	SkipExtensions []string      `env:"MBUZZ_SKIP_EXTENSIONS" envSeparator:","`
}

// Default returns a Config with every optional field at its default.
// The API key is left empty.
func Default() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Enabled: true,
		Timeout: DefaultTimeout,
	}
}

var dotenvOnce sync.Once

// Load parses the environment into a Config.
// The default .env file is applied on first call; a missing file is not an error.
func Load() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg.normalize(), nil
}

// MustLoad works like Load followed by Validate but panics on failure.
func MustLoad() Config {
	cfg, err := Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		panic(fmt.Sprintf("mbuzz: failed to load configuration: %v", err))
	}
	return cfg
}

// Validate reports setup errors. Only the API key is mandatory.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAPIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.APIURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}
	return nil
}

// IsConfigured reports whether a credential is present.
func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// normalize fills zero values left by hand-built configs and trims list entries.
func (c Config) normalize() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	c.SkipPaths = compact(c.SkipPaths)
	c.SkipExtensions = compact(c.SkipExtensions)
	return c
}

// WithDefaults returns a copy of c with zero-valued optional fields populated.
// Enabled is left as set because false is meaningful.
func (c Config) WithDefaults() Config {
	return c.normalize()
}

func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
