// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/config"
	"github.com/bureau-foundation/ticketdesk/lib/ticketapi"
	"github.com/bureau-foundation/ticketdesk/lib/version"
)

// GlobalFlags are accepted by every command that talks to the
// backend.
type GlobalFlags struct {
	ConfigPath string
	APIURL     string
	Timeout    time.Duration
}

// AddFlags implements cli.FlagBinder.
func (globals *GlobalFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&globals.ConfigPath, "config", "",
		"config file, YAML or JSONC (default $"+config.EnvConfigPath+")")
	flagSet.StringVar(&globals.APIURL, "api-url", "",
		"ticket API base URL (overrides config and $TICKETDESK_API_URL)")
	flagSet.DurationVar(&globals.Timeout, "timeout", 0,
		"per-request timeout (overrides config api.timeout)")
}

// loadConfig resolves the configuration, applies flag overrides and
// validates the result. The command logger's level follows log.level.
func (globals *GlobalFlags) loadConfig(application *app) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if globals.ConfigPath != "" {
		cfg, err = config.LoadFile(globals.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err)
	}

	if globals.APIURL != "" {
		cfg.API.BaseURL = globals.APIURL
	}
	if globals.Timeout > 0 {
		cfg.API.Timeout = globals.Timeout.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	application.levels.Set(level)
	return cfg, nil
}

// newClient creates the API client cfg describes.
func newClient(cfg *config.Config, logger *slog.Logger) (*ticketapi.Client, error) {
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	client, err := ticketapi.NewClient(ticketapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   timeout,
		UserAgent: version.UserAgent(cfg.API.UserAgent),
		Logger:    logger,
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return client, nil
}

// connect loads the configuration and creates the API client.
func (globals *GlobalFlags) connect(application *app, logger *slog.Logger) (*config.Config, *ticketapi.Client, error) {
	cfg, err := globals.loadConfig(application)
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

// apiError categorizes a failed backend call. message is the
// operator-facing sentence for the failed action.
func apiError(message string, client *ticketapi.Client, err error) error {
	var apiErr *ticketapi.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		return cli.NotFound("%s: %w", message, err)
	case errors.As(err, &apiErr) && (apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests):
		return cli.Transient("%s: %w", message, err)
	case errors.As(err, &apiErr):
		return cli.Validation("%s: %w", message, err)
	case errors.Is(err, context.Canceled):
		return cli.Transient("%s: %w", message, err)
	}
	return cli.Transient("%s: %w", message, err).
		WithHint("Check that the ticket backend is reachable at " + client.BaseURL() + ".")
}
