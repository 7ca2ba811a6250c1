// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketmock

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// logRequests writes one slog record per request, tagged with the
// request ID the client sent (or the one chi generated).
func (server *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := server.clock.Now()
		next.ServeHTTP(wrapped, request)
		server.logger.Info("request",
			"method", request.Method,
			"path", request.URL.Path,
			"status", wrapped.Status(),
			"bytes", wrapped.BytesWritten(),
			"request_id", middleware.GetReqID(request.Context()),
			"duration", server.clock.Now().Sub(start),
		)
	})
}

// session issues a session cookie to clients that do not present one
// and counts requests from clients that do.
func (server *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if cookie, err := request.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			server.mu.Lock()
			server.sessions[cookie.Value]++
			server.mu.Unlock()
		} else {
			http.SetCookie(writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(writer, request)
	})
}

// delay holds every response for the configured latency, or until the
// client gives up.
func (server *Server) delay(next http.Handler) http.Handler {
	if server.latency <= 0 {
		return next
	}
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-server.clock.After(server.latency):
		case <-request.Context().Done():
			return
		}
		next.ServeHTTP(writer, request)
	})
}
