// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

// Operator-facing messages. Backend error details are logged, never
// shown verbatim.
const (
	LoadErrorMessage       = "Failed to load tickets. Please try again."
	DeactivateErrorMessage = "Failed to mark ticket as used. Please try again."
	GenerateErrorMessage   = "Failed to generate tickets. Please try again."
	InvalidCountMessage    = "Please enter a valid number between 1 and 1000"

	NoTicketsMessage  = "No tickets found. Generate some tickets to get started."
	NoMatchesMessage  = "No matching tickets found."
	ConfirmNoteSuffix = "This action cannot be undone."
)

// pluralTickets returns "ticket" or "tickets" for count.
func pluralTickets(count int) string {
	if count == 1 {
		return "ticket"
	}
	return "tickets"
}
