// Package config resolves runtime settings from defaults, .env files and
// JOBFORM_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-jobform/pkg/logging"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// EnvPrefix prefixes every recognised environment variable.
const EnvPrefix = "JOBFORM_"

// DefaultEnvFile is read when present and no explicit file is given.
const DefaultEnvFile = ".env"

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config holds the resolved settings.
type Config struct {
	BaseURL       string
	Env           string
	Addr          string
	RegistryFile  string
	PresetFile    string
	LogLevel      string
	LogFormat     string
	Theme         string
	ThemeVariant  string
	ShutdownGrace time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:       urlbuilder.DefaultBaseURL,
		Env:           urlbuilder.DefaultEnv,
		Addr:          ":8000",
		LogLevel:      "info",
		LogFormat:     "text",
		ShutdownGrace: 5 * time.Second,
	}
}

// Load resolves the configuration. Values come from, in increasing priority:
// defaults, the given .env files (DefaultEnvFile when none is given and it
// exists), then the process environment.
func Load(files ...string) (Config, error) {
	return load(os.LookupEnv, files...)
}

func load(lookup func(string) (string, bool), files ...string) (Config, error) {
	cfg := Default()

	fileValues, err := readEnvFiles(files)
	if err != nil {
		return Config{}, err
	}

	get := func(key string) (string, bool) {
		if value, ok := lookup(EnvPrefix + key); ok {
			return value, true
		}
		value, ok := fileValues[EnvPrefix+key]
		return value, ok
	}

	setString := func(key string, target *string) {
		if value, ok := get(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	setString("BASE_URL", &cfg.BaseURL)
	setString("ENV", &cfg.Env)
	setString("ADDR", &cfg.Addr)
	setString("REGISTRY", &cfg.RegistryFile)
	setString("PRESET", &cfg.PresetFile)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("LOG_FORMAT", &cfg.LogFormat)
	setString("THEME", &cfg.Theme)
	setString("THEME_VARIANT", &cfg.ThemeVariant)

	if raw, ok := get("SHUTDOWN_GRACE"); ok && strings.TrimSpace(raw) != "" {
		grace, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %sSHUTDOWN_GRACE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.ShutdownGrace = grace
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	explicit := len(files) > 0
	if !explicit {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, fmt.Errorf("config: stat %s: %w", DefaultEnvFile, err)
		}
		files = []string{DefaultEnvFile}
	}

	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("config: read env files: %w", err)
	}
	return values, nil
}

// Validate checks the settings and normalises the base URL (trailing slash
// trimmed).
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: base url %q must be an absolute http(s) url", ErrInvalidConfig, c.BaseURL)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("%w: base url %q must not carry a query or fragment", ErrInvalidConfig, c.BaseURL)
	}
	if strings.TrimSpace(c.Env) == "" {
		return fmt.Errorf("%w: env is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("%w: shutdown grace must not be negative", ErrInvalidConfig)
	}
	if c.ThemeVariant != "" && c.Theme == "" {
		return fmt.Errorf("%w: theme variant %q set without a theme", ErrInvalidConfig, c.ThemeVariant)
	}
	return nil
}

// BuilderOptions returns the URL builder options for these settings.
func (c Config) BuilderOptions() []urlbuilder.Option {
	return []urlbuilder.Option{
		urlbuilder.WithBaseURL(c.BaseURL),
		urlbuilder.WithEnv(c.Env),
	}
}
