// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/net/publicsuffix"

	"github.com/bureau-foundation/ticketdesk/lib/netutil"
)

// DefaultBaseURL is the backend location used when Config.BaseURL is
// empty.
const DefaultBaseURL = "http://localhost:3000/api"

// RequestIDHeader carries a per-request UUID so console logs can be
// matched against backend logs.
const RequestIDHeader = "X-Request-ID"

// defaultUserAgent identifies the console to the backend.
const defaultUserAgent = "ticketdesk"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:3000/api".
	// Defaults to DefaultBaseURL. Must be http or https.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to a client with a
	// public-suffix-aware cookie jar and a gzip-negotiating transport,
	// so backend session cookies are replayed on every call.
	HTTPClient *http.Client

	// Timeout bounds each request made through the default HTTP
	// client. Zero means no client-side timeout. Ignored when
	// HTTPClient is set.
	Timeout time.Duration

	// UserAgent is sent on every request. Defaults to "ticketdesk".
	UserAgent string

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the ticket backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a ticket API client from the given configuration.
// Returns an error if the base URL is not an absolute http(s) URL.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ticketapi: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("ticketapi: base URL must use http or https (got %q)", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("ticketapi: base URL %q has no host", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient, err = newDefaultHTTPClient(config.Timeout)
		if err != nil {
			return nil, err
		}
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// newDefaultHTTPClient builds the credential-carrying client: cookies
// set by the backend go back on every later request to the same site.
func newDefaultHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("ticketapi: creating cookie jar: %w", err)
	}
	return &http.Client{
		Transport: gzhttp.Transport(http.DefaultTransport),
		Jar:       jar,
		Timeout:   timeout,
	}, nil
}

// BaseURL returns the resolved API root without a trailing slash.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// do executes a request against path (relative to the base URL) and
// returns the response body. None of the ticket endpoints take a
// request body. On non-2xx responses, returns an *APIError.
func (client *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	target := client.baseURL + path
	requestID := uuid.NewString()

	request, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("ticketapi: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set(RequestIDHeader, requestID)

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("ticket api request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("ticketapi: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("ticketapi: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiError := parseAPIError(response.StatusCode, body, requestID)
		client.logger.Warn("ticket api error response",
			"method", method,
			"path", path,
			"status", response.StatusCode,
			"request_id", requestID,
			"message", apiError.Message,
		)
		return nil, apiError
	}

	client.logger.Debug("ticket api request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"bytes", len(body),
	)
	return body, nil
}
