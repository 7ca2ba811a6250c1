// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development against a mock backend.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// EnvConfigPath names the environment variable holding the config
// file path when --config is not given.
const EnvConfigPath = "TICKETDESK_CONFIG"

// DefaultBaseURL is the backend location when neither the environment
// nor a config file names one. TICKETDESK_API_URL overrides it.
const DefaultBaseURL = "${TICKETDESK_API_URL:-http://localhost:3000/api}"

// Config is the master configuration for ticketdesk.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the ticket backend connection.
	API APIConfig `yaml:"api"`

	// Console configures the initial state of the list and generator.
	Console ConsoleConfig `yaml:"console"`

	// Log configures diagnostics output.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Console *ConsoleConfig `yaml:"console,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// APIConfig configures the ticket backend connection.
type APIConfig struct {
	// BaseURL is the REST root; endpoints are appended as /tickets.
	// Default: ${TICKETDESK_API_URL:-http://localhost:3000/api}
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`

	// UserAgent is sent with every request.
	// Default: ticketdesk
	UserAgent string `yaml:"user_agent"`
}

// ConsoleConfig configures the initial console state.
type ConsoleConfig struct {
	// PageSize is one of 6, 12, 24, 48. Default: 6
	PageSize int `yaml:"page_size"`

	// SortOrder is "asc" or "desc". Default: asc
	SortOrder string `yaml:"sort_order"`

	// StatusFilter is "all", "active" or "used". Default: all
	StatusFilter string `yaml:"status_filter"`

	// DefaultCount is the generator's starting count. Default: 10
	DefaultCount int `yaml:"default_count"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	// Level is debug, info, warn or error. Default: info
	Level string `yaml:"level"`

	// Output is an optional file receiving JSON log records.
	Output string `yaml:"output"`
}

// Default returns the default configuration, used as the base before
// a config file is merged in and as the whole configuration when no
// file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   "30s",
			UserAgent: "ticketdesk",
		},
		Console: ConsoleConfig{
			PageSize:     ticketview.DefaultPageSize,
			SortOrder:    string(ticketview.SortAscending),
			StatusFilter: string(ticketview.FilterAll),
			DefaultCount: ticketview.DefaultCount,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by TICKETDESK_CONFIG.
// When the variable is unset the defaults apply, with variable
// expansion performed so TICKETDESK_API_URL still takes effect.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Files ending
// in .json or .jsonc are parsed as JSON with comments and trailing
// commas; anything else is parsed as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// Plain JSON is valid YAML, so one set of struct tags serves
		// both formats.
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: quieter logs.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
		if overrides.API.UserAgent != "" {
			c.API.UserAgent = overrides.API.UserAgent
		}
	}

	if overrides.Console != nil {
		if overrides.Console.PageSize != 0 {
			c.Console.PageSize = overrides.Console.PageSize
		}
		if overrides.Console.SortOrder != "" {
			c.Console.SortOrder = overrides.Console.SortOrder
		}
		if overrides.Console.StatusFilter != "" {
			c.Console.StatusFilter = overrides.Console.StatusFilter
		}
		if overrides.Console.DefaultCount != 0 {
			c.Console.DefaultCount = overrides.Console.DefaultCount
		}
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Output != "" {
			c.Log.Output = overrides.Log.Output
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// string fields that name locations.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.API.BaseURL = expandVars(c.API.BaseURL, vars)
	c.API.UserAgent = expandVars(c.API.UserAgent, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if err := validateBaseURL(c.API.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}

	if !ticketview.ValidPageSize(c.Console.PageSize) {
		errs = append(errs, fmt.Errorf("console.page_size must be one of: %v", ticketview.PageSizes))
	}
	if _, err := ticketview.ParseSortOrder(c.Console.SortOrder); err != nil {
		errs = append(errs, fmt.Errorf("console.sort_order: %w", err))
	}
	if _, err := ticketview.ParseStatusFilter(c.Console.StatusFilter); err != nil {
		errs = append(errs, fmt.Errorf("console.status_filter: %w", err))
	}
	if c.Console.DefaultCount < ticketview.MinCount || c.Console.DefaultCount > ticketview.MaxCount {
		errs = append(errs, fmt.Errorf("console.default_count must be between %d and %d",
			ticketview.MinCount, ticketview.MaxCount))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("api.base_url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url has no host: %q", raw)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("api.timeout must not be negative, got %s", a.Timeout)
	}
	return duration, nil
}

// Query returns the initial list query the console section describes.
// The config must have passed Validate.
func (c ConsoleConfig) Query() ticketview.Query {
	query := ticketview.DefaultQuery()
	query.PageSize = c.PageSize
	if order, err := ticketview.ParseSortOrder(c.SortOrder); err == nil {
		query.Sort = order
	}
	if filter, err := ticketview.ParseStatusFilter(c.StatusFilter); err == nil {
		query.Status = filter
	}
	return query
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q (want debug, info, warn or error)", name)
}
