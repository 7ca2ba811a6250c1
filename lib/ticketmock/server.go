// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketmock

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"github.com/bureau-foundation/ticketdesk/lib/clock"
	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// Envelope selects the response shape.
type Envelope string

const (
	// EnvelopeData wraps every payload as {"data": payload}.
	EnvelopeData Envelope = "data"
	// EnvelopeBare sends payloads unwrapped.
	EnvelopeBare Envelope = "bare"
)

// ParseEnvelope converts "data" or "bare" to an Envelope.
func ParseEnvelope(value string) (Envelope, error) {
	switch Envelope(value) {
	case EnvelopeData, EnvelopeBare:
		return Envelope(value), nil
	}
	return "", fmt.Errorf("unknown envelope %q (expected data or bare)", value)
}

// SessionCookieName is the cookie the backend issues to every new
// client.
const SessionCookieName = "ticketdesk_session"

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Clock stamps creation and deactivation times and measures
	// Latency. Defaults to clock.Real().
	Clock clock.Clock

	// Envelope selects the response shape. Defaults to EnvelopeData.
	Envelope Envelope

	// Latency delays every response.
	Latency time.Duration

	// FailEvery makes every Nth creation call answer 500. Zero
	// disables failure injection.
	FailEvery int

	// AllowedOrigins lists the browser origins allowed by CORS.
	// Defaults to any origin.
	AllowedOrigins []string

	// Logger receives one record per request. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Server holds the ticket collection in fetch order.
type Server struct {
	clock     clock.Clock
	envelope  Envelope
	latency   time.Duration
	failEvery int
	origins   []string
	logger    *slog.Logger

	mu       sync.Mutex
	tickets  []ticket.Ticket
	index    map[string]int
	creates  int
	sessions map[string]int
}

// New creates an empty backend.
func New(options Options) *Server {
	server := &Server{
		clock:     options.Clock,
		envelope:  options.Envelope,
		latency:   options.Latency,
		failEvery: options.FailEvery,
		origins:   options.AllowedOrigins,
		logger:    options.Logger,
		index:     make(map[string]int),
		sessions:  make(map[string]int),
	}
	if server.clock == nil {
		server.clock = clock.Real()
	}
	if server.envelope == "" {
		server.envelope = EnvelopeData
	}
	if len(server.origins) == 0 {
		server.origins = []string{"*"}
	}
	if server.logger == nil {
		server.logger = slog.Default()
	}
	return server
}

// Handler returns the HTTP handler serving the API under /api.
func (server *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(server.logRequests)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   server.origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(server.session)
	router.Use(server.delay)

	router.Route("/api/tickets", func(router chi.Router) {
		router.Post("/", server.handleCreate)
		router.Get("/", server.handleList)
		router.Patch("/{id}/deactivate", server.handleDeactivate)
	})

	return gzhttp.GzipHandler(router)
}

// Seed creates count tickets directly, without failure injection.
func (server *Server) Seed(count int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	for range count {
		server.createLocked()
	}
}

// Tickets returns a copy of the collection in creation order, never
// nil so an empty collection encodes as [].
func (server *Server) Tickets() []ticket.Ticket {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]ticket.Ticket{}, server.tickets...)
}

// Sessions returns the number of requests seen per session cookie.
// Requests that arrived without the cookie are not counted.
func (server *Server) Sessions() map[string]int {
	server.mu.Lock()
	defer server.mu.Unlock()
	sessions := make(map[string]int, len(server.sessions))
	for id, count := range server.sessions {
		sessions[id] = count
	}
	return sessions
}

func (server *Server) createLocked() ticket.Ticket {
	created := ticket.Ticket{
		ID:        uuid.NewString(),
		Status:    ticket.StatusActive,
		CreatedAt: server.clock.Now().UTC().Format(ticket.TimestampLayout),
	}
	server.index[created.ID] = len(server.tickets)
	server.tickets = append(server.tickets, created)
	return created
}

func (server *Server) handleCreate(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	server.creates++
	if server.failEvery > 0 && server.creates%server.failEvery == 0 {
		server.mu.Unlock()
		writeError(writer, http.StatusInternalServerError, "injected failure")
		return
	}
	created := server.createLocked()
	server.mu.Unlock()

	server.writePayload(writer, http.StatusCreated, created)
}

func (server *Server) handleList(writer http.ResponseWriter, request *http.Request) {
	server.writePayload(writer, http.StatusOK, server.Tickets())
}

func (server *Server) handleDeactivate(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	server.mu.Lock()
	position, ok := server.index[id]
	if !ok {
		server.mu.Unlock()
		writeError(writer, http.StatusNotFound, "ticket not found")
		return
	}
	// Deactivating a used ticket is a no-op that keeps the original
	// timestamp.
	if server.tickets[position].IsActive() {
		server.tickets[position] = server.tickets[position].MarkUsed(server.clock.Now())
	}
	updated := server.tickets[position]
	server.mu.Unlock()

	server.writePayload(writer, http.StatusOK, updated)
}

// writePayload sends value in the configured envelope.
func (server *Server) writePayload(writer http.ResponseWriter, status int, value any) {
	if server.envelope == EnvelopeData {
		value = map[string]any{"data": value}
	}
	writeJSON(writer, status, value)
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]string{"message": message})
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}
