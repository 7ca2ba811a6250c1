// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"time"
	"unicode/utf8"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	// StatusActive is the state of a freshly issued ticket.
	StatusActive Status = "active"

	// StatusUsed is the terminal state reached through deactivation.
	// Used tickets are never reactivated or deleted by the console.
	StatusUsed Status = "used"
)

// Valid reports whether status is one of the two known lifecycle
// states.
func (status Status) Valid() bool {
	return status == StatusActive || status == StatusUsed
}

// Ticket is a single issued ticket as returned by the backend. The
// backend assigns the ID and both timestamps; the console never sets
// them except for the optimistic DeactivatedAt patch applied after a
// successful deactivation call.
//
// Timestamps are kept as the ISO-8601 strings the backend sent. They
// are parsed only for display, so a backend that emits an unexpected
// format degrades to showing the raw value instead of failing the
// whole list fetch.
type Ticket struct {
	ID            string  `json:"id"`
	Status        Status  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	DeactivatedAt *string `json:"deactivatedAt"`
}

// IsActive reports whether the ticket can still be marked as used.
func (ticket Ticket) IsActive() bool {
	return ticket.Status == StatusActive
}

// IsUsed reports whether the ticket has been deactivated.
func (ticket Ticket) IsUsed() bool {
	return ticket.Status == StatusUsed
}

// shortIDLength is the number of trailing ID characters shown in list
// views. Backend IDs are long (UUIDs or object IDs); the tail is
// distinct enough for an operator to tell rows apart.
const shortIDLength = 8

// ShortID returns the last eight characters of the ticket ID, or the
// whole ID when it is shorter.
func (ticket Ticket) ShortID() string {
	if utf8.RuneCountInString(ticket.ID) <= shortIDLength {
		return ticket.ID
	}
	runes := []rune(ticket.ID)
	return string(runes[len(runes)-shortIDLength:])
}

// MarkUsed returns a copy of the ticket transitioned to StatusUsed
// with DeactivatedAt set to at, formatted as RFC 3339 in UTC with
// millisecond precision (the same shape the backend emits).
func (ticket Ticket) MarkUsed(at time.Time) Ticket {
	stamp := at.UTC().Format(TimestampLayout)
	ticket.Status = StatusUsed
	ticket.DeactivatedAt = &stamp
	return ticket
}

// TimestampLayout is the layout used for client-generated timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseTimestamp parses an ISO-8601 timestamp as emitted by the
// backend. Both fractional and whole-second forms are accepted.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// displayLayout is the human-readable form used in tables.
const displayLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders a backend timestamp in the given location
// for display. Unparseable values are returned unchanged and an empty
// value renders as "-".
func FormatTimestamp(value string, location *time.Location) string {
	if value == "" {
		return "-"
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return value
	}
	if location != nil {
		parsed = parsed.In(location)
	}
	return parsed.Format(displayLayout)
}

// FormatDeactivatedAt renders the deactivation timestamp, "-" when
// the ticket has not been used.
func (ticket Ticket) FormatDeactivatedAt(location *time.Location) string {
	if ticket.DeactivatedAt == nil {
		return "-"
	}
	return FormatTimestamp(*ticket.DeactivatedAt, location)
}
