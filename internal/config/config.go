// Package config loads cafe settings from defaults, an optional YAML file and
// CAFE_* environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CAFE_"

// EnvConfigPath names the variable that points at a config file.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Output formats accepted by output.format.
const (
	FormatAuto        = "auto"
	FormatPlain       = "plain"
	FormatStyled      = "styled"
	FormatInteractive = "interactive"
	FormatJSON        = "json"
)

// Configuration errors.
var (
	ErrInvalidBaseURL  = errors.New("api.base_url must be an absolute http or https URL")
	ErrNegativeTimeout = errors.New("api.timeout must be >= 0")
	ErrInvalidFormat   = errors.New("output.format must be one of auto, plain, styled, interactive, json")
	ErrInvalidLevel    = errors.New("logging.level is not a valid level")
)

// Config is the complete cafe configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     envPrefix:"API_"`
	Output  OutputConfig  `yaml:"output"  envPrefix:"OUTPUT_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Server  ServerConfig  `yaml:"server"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Timeout bounds each HTTP request at the transport. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// OutputConfig controls how the view is presented.
type OutputConfig struct {
	Format string `yaml:"format" env:"FORMAT"`
}

// ServerConfig configures `cafe serve`.
type ServerConfig struct {
	Addr     string   `yaml:"addr"     env:"ADDR"`
	Database string   `yaml:"database" env:"DATABASE"`
	Fail     []string `yaml:"fail,omitempty" env:"FAIL" envSeparator:","`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		Output: OutputConfig{
			Format: FormatAuto,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			Database: "cafe.db",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chaoscafe", "config.yaml")
}

// Loader resolves configuration. The zero value reads the real environment.
type Loader struct {
	// Environment replaces os.Environ when non-nil.
	Environment map[string]string
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path falls back to CAFE_CONFIG, then DefaultPath; only an explicitly
// requested file must exist.
func (l Loader) Load(path string) (*Config, error) {
	cfg := Default()

	path, explicit := l.Resolve(path)
	if path != "" {
		if err := MergeYAMLFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if l.Environment != nil {
		opts.Environment = l.Environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve returns the config file to read and whether it was requested
// explicitly, through path or CAFE_CONFIG, rather than defaulted.
func (l Loader) Resolve(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if p, ok := l.lookup(EnvConfigPath); ok && p != "" {
		return p, true
	}
	return DefaultPath(), false
}

func (l Loader) lookup(key string) (string, bool) {
	if l.Environment != nil {
		v, ok := l.Environment[key]
		return v, ok
	}
	return os.LookupEnv(key)
}

// Load is Loader{}.Load.
func Load(path string) (*Config, error) {
	return Loader{}.Load(path)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeTimeout, c.API.Timeout)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatAuto, FormatPlain, FormatStyled, FormatInteractive, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}
	return nil
}
