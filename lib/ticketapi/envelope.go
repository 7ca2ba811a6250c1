// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// envelope is the {"data": ...} wrapper some backend deployments put
// around every payload.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrap returns the envelope payload when body is an object with a
// non-null "data" member, and body itself otherwise.
func unwrap(body []byte) []byte {
	var wrapped envelope
	if json.Unmarshal(body, &wrapped) != nil {
		return body
	}
	data := bytes.TrimSpace(wrapped.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return body
	}
	return data
}

// decodeTicket decodes a single-ticket response in either envelope
// shape.
func decodeTicket(body []byte) (ticket.Ticket, error) {
	payload := unwrap(body)
	if len(bytes.TrimSpace(payload)) == 0 {
		return ticket.Ticket{}, fmt.Errorf("ticketapi: empty ticket response")
	}
	var result ticket.Ticket
	if err := json.Unmarshal(payload, &result); err != nil {
		return ticket.Ticket{}, fmt.Errorf("ticketapi: decoding ticket: %w", err)
	}
	return result, nil
}

// decodeTicketList normalizes a list response: {"data": [...]} and a
// bare array yield the array, every other shape yields an empty list.
// The result is never nil.
func decodeTicketList(body []byte) ([]ticket.Ticket, error) {
	payload := bytes.TrimSpace(body)

	var wrapped envelope
	if len(payload) > 0 && payload[0] == '{' && json.Unmarshal(payload, &wrapped) == nil {
		payload = bytes.TrimSpace(wrapped.Data)
	}

	if len(payload) == 0 || payload[0] != '[' {
		return []ticket.Ticket{}, nil
	}

	tickets := []ticket.Ticket{}
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, fmt.Errorf("ticketapi: decoding ticket list: %w", err)
	}
	return tickets, nil
}
