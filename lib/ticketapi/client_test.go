// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

const activeTicketJSON = `{"id":"t-1","status":"active","createdAt":"2026-03-01T10:00:00.000Z","deactivatedAt":null}`

// newTestClient creates a Client rooted at server.URL + "/api".
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL + "/api",
		HTTPClient: server.Client(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_BaseURLValidation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"default", "", false},
		{"http", "http://localhost:3000/api", false},
		{"https", "https://tickets.example.com/api/", false},
		{"ftp scheme", "ftp://localhost/api", true},
		{"no scheme", "localhost:3000/api", true},
		{"no host", "http:///api", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewClient(Config{BaseURL: test.baseURL})
			if (err != nil) != test.wantErr {
				t.Errorf("NewClient(%q) error = %v, wantErr %v", test.baseURL, err, test.wantErr)
			}
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:3000/api/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.BaseURL(); got != "http://localhost:3000/api" {
		t.Errorf("BaseURL() = %q", got)
	}

	client, err = NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.BaseURL(); got != DefaultBaseURL {
		t.Errorf("default BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
}

func TestCreateTicket_Envelopes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
	}{
		{"data envelope", `{"data":` + activeTicketJSON + `}`, "t-1"},
		{"bare object", activeTicketJSON, "t-1"},
		{"null data falls back to raw body", `{"data":null,"id":"t-raw","status":"active","createdAt":"2026-03-01T10:00:00Z"}`, "t-raw"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if request.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", request.Method)
				}
				if request.URL.Path != "/api/tickets" {
					t.Errorf("path = %s, want /api/tickets", request.URL.Path)
				}
				writer.Header().Set("Content-Type", "application/json")
				io.WriteString(writer, test.body)
			}))
			defer server.Close()

			created, err := newTestClient(t, server).CreateTicket(context.Background())
			if err != nil {
				t.Fatalf("CreateTicket: %v", err)
			}
			if created.ID != test.wantID {
				t.Errorf("ID = %q, want %q", created.ID, test.wantID)
			}
			if created.Status != ticket.StatusActive {
				t.Errorf("Status = %q, want active", created.Status)
			}
		})
	}
}

func TestListTickets_ResponseShapes(t *testing.T) {
	second := `{"id":"t-2","status":"used","createdAt":"2026-03-01T10:01:00.000Z","deactivatedAt":"2026-03-02T09:00:00.000Z"}`
	tests := []struct {
		name    string
		body    string
		wantIDs []string
	}{
		{"data array", `{"data":[` + activeTicketJSON + `,` + second + `]}`, []string{"t-1", "t-2"}},
		{"bare array", `[` + activeTicketJSON + `,` + second + `]`, []string{"t-1", "t-2"}},
		{"empty array", `[]`, nil},
		{"empty object", `{}`, nil},
		{"null data", `{"data":null}`, nil},
		{"data object", `{"data":` + activeTicketJSON + `}`, nil},
		{"string", `"tickets"`, nil},
		{"number", `42`, nil},
		{"empty body", ``, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if request.Method != http.MethodGet || request.URL.Path != "/api/tickets" {
					t.Errorf("request = %s %s, want GET /api/tickets", request.Method, request.URL.Path)
				}
				io.WriteString(writer, test.body)
			}))
			defer server.Close()

			tickets, err := newTestClient(t, server).ListTickets(context.Background())
			if err != nil {
				t.Fatalf("ListTickets: %v", err)
			}
			if tickets == nil {
				t.Fatal("ListTickets returned nil slice")
			}
			if len(tickets) != len(test.wantIDs) {
				t.Fatalf("len = %d, want %d", len(tickets), len(test.wantIDs))
			}
			for index, want := range test.wantIDs {
				if tickets[index].ID != want {
					t.Errorf("tickets[%d].ID = %q, want %q", index, tickets[index].ID, want)
				}
			}
		})
	}
}

func TestListTickets_PreservesDeactivatedAt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		io.WriteString(writer, `[{"id":"t-2","status":"used","createdAt":"2026-03-01T10:01:00Z","deactivatedAt":"2026-03-02T09:00:00Z"},`+activeTicketJSON+`]`)
	}))
	defer server.Close()

	tickets, err := newTestClient(t, server).ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if tickets[0].DeactivatedAt == nil || *tickets[0].DeactivatedAt != "2026-03-02T09:00:00Z" {
		t.Errorf("used ticket DeactivatedAt = %v", tickets[0].DeactivatedAt)
	}
	if tickets[1].DeactivatedAt != nil {
		t.Errorf("active ticket DeactivatedAt = %v, want nil", *tickets[1].DeactivatedAt)
	}
}

func TestCreateTickets_IssuesCallsConcurrently(t *testing.T) {
	const count = 25

	var calls atomic.Int64
	allArrived := make(chan struct{})
	var closeOnce sync.Once

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		number := calls.Add(1)
		if number == count {
			closeOnce.Do(func() { close(allArrived) })
		}
		// Hold every response until all calls are in flight. A
		// sequential implementation would never get past the first.
		select {
		case <-allArrived:
		case <-time.After(10 * time.Second):
			http.Error(writer, "calls were not concurrent", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(writer, `{"data":{"id":"t-%d","status":"active","createdAt":"2026-03-01T10:00:00Z"}}`, number)
	}))
	defer server.Close()

	created, err := newTestClient(t, server).CreateTickets(context.Background(), count)
	if err != nil {
		t.Fatalf("CreateTickets: %v", err)
	}
	if len(created) != count {
		t.Fatalf("len = %d, want %d", len(created), count)
	}
	if got := calls.Load(); got != count {
		t.Errorf("backend saw %d calls, want %d", got, count)
	}
	seen := make(map[string]bool)
	for _, item := range created {
		if item.ID == "" {
			t.Fatal("result contains an empty ticket")
		}
		if seen[item.ID] {
			t.Errorf("duplicate ticket %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestCreateTickets_AnyFailureFailsTheBatch(t *testing.T) {
	const count = 10

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if calls.Add(1) == 3 {
			writer.WriteHeader(http.StatusInternalServerError)
			io.WriteString(writer, `{"message":"database unavailable"}`)
			return
		}
		io.WriteString(writer, activeTicketJSON)
	}))
	defer server.Close()

	created, err := newTestClient(t, server).CreateTickets(context.Background(), count)
	if err == nil {
		t.Fatal("expected error when one creation fails")
	}
	if created != nil {
		t.Errorf("partial result returned: %d tickets", len(created))
	}
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiError.StatusCode != http.StatusInternalServerError || apiError.Message != "database unavailable" {
		t.Errorf("APIError = %+v", apiError)
	}
	// Every call is issued and awaited even though one failed.
	if got := calls.Load(); got != count {
		t.Errorf("backend saw %d calls, want %d", got, count)
	}
}

func TestCreateTickets_NonPositiveCount(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	for _, count := range []int{0, -5} {
		created, err := client.CreateTickets(context.Background(), count)
		if err != nil {
			t.Fatalf("CreateTickets(%d): %v", count, err)
		}
		if created == nil || len(created) != 0 {
			t.Errorf("CreateTickets(%d) = %v, want empty slice", count, created)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("backend saw %d calls, want 0", calls.Load())
	}
}

func TestDeactivateTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", request.Method)
		}
		if request.URL.Path != "/api/tickets/t-42/deactivate" {
			t.Errorf("path = %s", request.URL.Path)
		}
		io.WriteString(writer, `{"data":{"id":"t-42","status":"used","createdAt":"2026-03-01T10:00:00Z","deactivatedAt":"2026-03-01T11:00:00Z"}}`)
	}))
	defer server.Close()

	updated, err := newTestClient(t, server).DeactivateTicket(context.Background(), "t-42")
	if err != nil {
		t.Fatalf("DeactivateTicket: %v", err)
	}
	if !updated.IsUsed() {
		t.Errorf("Status = %q, want used", updated.Status)
	}
}

func TestDeactivateTicket_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.EscapedPath(); got != "/api/tickets/a%2Fb%20c/deactivate" {
			t.Errorf("escaped path = %s", got)
		}
		io.WriteString(writer, `{"id":"a/b c","status":"used","createdAt":"2026-03-01T10:00:00Z"}`)
	}))
	defer server.Close()

	if _, err := newTestClient(t, server).DeactivateTicket(context.Background(), "a/b c"); err != nil {
		t.Fatalf("DeactivateTicket: %v", err)
	}
}

func TestDeactivateTicket_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		io.WriteString(writer, `{"error":"ticket not found"}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).DeactivateTicket(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
	var apiError *APIError
	errors.As(err, &apiError)
	if apiError.Message != "ticket not found" {
		t.Errorf("Message = %q", apiError.Message)
	}
	if _, parseErr := uuid.Parse(apiError.RequestID); parseErr != nil {
		t.Errorf("RequestID %q is not a UUID", apiError.RequestID)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		io.WriteString(writer, "<html>\n  bad   gateway\n</html>")
	}))
	defer server.Close()

	_, err := newTestClient(t, server).ListTickets(context.Background())
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiError.Message != "<html> bad gateway </html>" {
		t.Errorf("Message = %q", apiError.Message)
	}
	if IsNotFound(err) {
		t.Error("502 reported as not found")
	}
}

func TestClient_TransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.ListTickets(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiError *APIError
	if errors.As(err, &apiError) {
		t.Errorf("transport failure reported as APIError: %v", err)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-request.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(t, server).ListTickets(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	requestIDs := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := request.Header.Get("User-Agent"); got != "ticketdesk-test" {
			t.Errorf("User-Agent = %q", got)
		}
		requestIDs <- request.Header.Get(RequestIDHeader)
		io.WriteString(writer, `[]`)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		UserAgent:  "ticketdesk-test",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	for range 2 {
		if _, err := client.ListTickets(context.Background()); err != nil {
			t.Fatalf("ListTickets: %v", err)
		}
	}

	first, second := <-requestIDs, <-requestIDs
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("request ID %q is not a UUID", first)
	}
	if first == second {
		t.Errorf("request IDs repeat: %q", first)
	}
}

func TestClient_ReplaysSessionCookie(t *testing.T) {
	var sawCookie atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if cookie, err := request.Cookie("session"); err == nil && cookie.Value == "abc123" {
			sawCookie.Store(true)
		} else {
			http.SetCookie(writer, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		}
		io.WriteString(writer, `[]`)
	}))
	defer server.Close()

	// The default HTTP client carries the cookie jar.
	client, err := NewClient(Config{BaseURL: server.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	for range 2 {
		if _, err := client.ListTickets(context.Background()); err != nil {
			t.Fatalf("ListTickets: %v", err)
		}
	}
	if !sawCookie.Load() {
		t.Error("session cookie set by the backend was not sent back")
	}
}
