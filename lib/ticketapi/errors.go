// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/ticketdesk/lib/netutil"
)

// APIError is a non-2xx response from the ticket backend.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the backend's error description: the "message" or
	// "error" member of a JSON error body, otherwise a condensed
	// snippet of the raw body.
	Message string

	// RequestID is the X-Request-ID the client sent, for matching the
	// failure against backend logs.
	RequestID string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("ticketapi: HTTP %d %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("ticketapi: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err is a 404 response, e.g. deactivating
// an ID the backend does not know.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// parseAPIError builds an APIError from a status code and body.
func parseAPIError(statusCode int, body []byte, requestID string) *APIError {
	apiError := &APIError{StatusCode: statusCode, RequestID: requestID}

	var wireError struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && (wireError.Message != "" || wireError.Error != "") {
		apiError.Message = wireError.Message
		if apiError.Message == "" {
			apiError.Message = wireError.Error
		}
		return apiError
	}

	apiError.Message = netutil.ErrorSnippet(body)
	return apiError
}
