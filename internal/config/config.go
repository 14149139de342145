// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultAPIBaseURL is the backend origin used when none is configured.
	DefaultAPIBaseURL = "http://localhost:8000"
	// DefaultDirName is the directory under the user config dir holding the
	// token file and config.json.
	DefaultDirName = "docorator"
	// FileName is the config file looked up in the config directory.
	FileName = "config.json"

	EnvAPIBaseURL  = "DOCORATOR_API_URL"
	EnvConfigDir   = "DOCORATOR_CONFIG_DIR"
	EnvArtifactDir = "DOCORATOR_OUT_DIR"
	EnvHTTPTimeout = "DOCORATOR_HTTP_TIMEOUT"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment values.
type Config struct {
	APIBaseURL  string   `json:"api_base_url,omitempty" validate:"omitempty,url"` // Backend origin
	ConfigDir   string   `json:"config_dir,omitempty"`                            // Holds the token file
	ArtifactDir string   `json:"artifact_dir,omitempty"`                          // Where generated documents are written
	HTTPTimeout Duration `json:"http_timeout,omitempty" validate:"gte=0"`         // Zero means no timeout
	Verbose     bool     `json:"verbose,omitempty"`                               // Print detailed debug information
}

// Duration is a time.Duration that reads "30s" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration in time.Duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration. An explicit path must exist;
// otherwise config.json in the config directory is read when present.
// Environment values override the file, and defaults fill the rest.
func Load(path string) (*Config, error) {
	var cfg Config
	switch {
	case path != "":
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	default:
		dir, err := defaultDir()
		if err == nil {
			loaded, err := LoadConfig(filepath.Join(dir, FileName))
			if err == nil {
				cfg = *loaded
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}
	result := cfg.MergeWithDefaults(defaults)
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Defaults returns the built-in configuration.
func Defaults() (Config, error) {
	dir, err := defaultDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		APIBaseURL:  DefaultAPIBaseURL,
		ConfigDir:   dir,
		ArtifactDir: ".",
	}, nil
}

func defaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, DefaultDirName), nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := getenv(EnvConfigDir); v != "" {
		c.ConfigDir = v
	}
	if v := getenv(EnvArtifactDir); v != "" {
		c.ArtifactDir = v
	}
	if v := getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHTTPTimeout, err)
		}
		c.HTTPTimeout = Duration(d)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			switch fe.Field() {
			case "APIBaseURL":
				return fmt.Errorf("config error: 'api_base_url' must be an absolute URL, got %q", c.APIBaseURL)
			case "HTTPTimeout":
				return fmt.Errorf("config error: 'http_timeout' must be non-negative")
			}
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// A trailing slash on the base URL is dropped.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.ConfigDir == "" {
		result.ConfigDir = defaults.ConfigDir
	}
	if result.ArtifactDir == "" {
		result.ArtifactDir = defaults.ArtifactDir
	}
	if result.HTTPTimeout == 0 {
		result.HTTPTimeout = defaults.HTTPTimeout
	}
	result.APIBaseURL = strings.TrimRight(result.APIBaseURL, "/")

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the HTTP timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout)
}
