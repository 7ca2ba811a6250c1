// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinCount and MaxCount bound a single generation batch.
	MinCount = 1
	MaxCount = 1000

	// DefaultCount is the count the input starts at and returns to
	// after a successful batch.
	DefaultCount = 10
)

// Presets are the one-keystroke counts offered next to the input.
var Presets = []int{10, 25, 50, 100}

// SuccessDismissDelay is how long the success message stays up before
// the generator closes itself.
const SuccessDismissDelay = 2 * time.Second

// CountError is returned for count input that is empty, not a base-10
// integer, or outside [MinCount, MaxCount].
type CountError struct {
	Input string
}

func (err *CountError) Error() string {
	return InvalidCountMessage
}

// ParseCount validates count input. Surrounding whitespace is
// ignored; anything else that is not a plain decimal integer in
// [MinCount, MaxCount] is a *CountError.
func ParseCount(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "+") {
		return 0, &CountError{Input: input}
	}
	count, err := strconv.Atoi(trimmed)
	if err != nil || count < MinCount || count > MaxCount {
		return 0, &CountError{Input: input}
	}
	return count, nil
}

// GeneratorPhase is the step the generator is in.
type GeneratorPhase int

const (
	// PhaseEditing accepts count input.
	PhaseEditing GeneratorPhase = iota

	// PhaseConfirming waits for the operator to confirm or cancel a
	// validated count.
	PhaseConfirming

	// PhaseSubmitting has the batch in flight; input is locked.
	PhaseSubmitting

	// PhaseSucceeded shows the success message until dismissed.
	PhaseSucceeded
)

// MessageKind classifies the generator's status line.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

// Generator is the batch-generation dialog state.
type Generator struct {
	defaultInput string
	input        string
	phase        GeneratorPhase
	count        int
	message      string
	kind         MessageKind

	// submission numbers successful batches so a delayed dismissal
	// only closes the dialog it was scheduled for.
	submission uint64
}

// NewGenerator returns a generator whose input starts at, and resets
// to, defaultCount. Out-of-range defaults fall back to DefaultCount.
func NewGenerator(defaultCount int) *Generator {
	if defaultCount < MinCount || defaultCount > MaxCount {
		defaultCount = DefaultCount
	}
	defaultInput := strconv.Itoa(defaultCount)
	return &Generator{defaultInput: defaultInput, input: defaultInput}
}

// Phase returns the current step.
func (generator *Generator) Phase() GeneratorPhase {
	return generator.phase
}

// Busy reports whether a batch is in flight.
func (generator *Generator) Busy() bool {
	return generator.phase == PhaseSubmitting
}

// Input returns the raw count text.
func (generator *Generator) Input() string {
	return generator.input
}

// Message returns the status line and its kind.
func (generator *Generator) Message() (string, MessageKind) {
	return generator.message, generator.kind
}

// SetInput replaces the count text. Ignored outside PhaseEditing.
func (generator *Generator) SetInput(value string) {
	if generator.phase != PhaseEditing {
		return
	}
	generator.input = value
}

// ApplyPreset sets the input to Presets[index]. Returns false for an
// index out of range or outside PhaseEditing.
func (generator *Generator) ApplyPreset(index int) bool {
	if generator.phase != PhaseEditing || index < 0 || index >= len(Presets) {
		return false
	}
	generator.input = strconv.Itoa(Presets[index])
	return true
}

// Step adds delta to the current count, staying within
// [MinCount, MaxCount]. Invalid input steps from the default.
func (generator *Generator) Step(delta int) {
	if generator.phase != PhaseEditing {
		return
	}
	current, err := ParseCount(generator.input)
	if err != nil {
		current, _ = strconv.Atoi(generator.defaultInput)
	}
	next := max(MinCount, min(MaxCount, current+delta))
	generator.input = strconv.Itoa(next)
}

// Request validates the input and, when valid, moves to
// PhaseConfirming. Invalid input sets the inline error and stays in
// PhaseEditing; nothing may be dispatched in that case.
func (generator *Generator) Request() (int, error) {
	if generator.phase != PhaseEditing {
		return 0, fmt.Errorf("generator is not accepting input")
	}
	count, err := ParseCount(generator.input)
	if err != nil {
		generator.message = InvalidCountMessage
		generator.kind = MessageError
		return 0, err
	}
	generator.count = count
	generator.phase = PhaseConfirming
	return count, nil
}

// ConfirmationText describes the pending batch.
func (generator *Generator) ConfirmationText() string {
	return ConfirmationText(generator.count)
}

// ConfirmationText is the prompt shown before generating count
// tickets.
func ConfirmationText(count int) string {
	return fmt.Sprintf("You are about to generate %d %s. %s", count, pluralTickets(count), ConfirmNoteSuffix)
}

// Cancel abandons the confirmation and returns to editing with the
// input untouched.
func (generator *Generator) Cancel() {
	if generator.phase == PhaseConfirming {
		generator.phase = PhaseEditing
	}
}

// Confirm accepts the pending count and moves to PhaseSubmitting. The
// caller dispatches the batch for the returned count. Returns false
// outside PhaseConfirming.
func (generator *Generator) Confirm() (int, bool) {
	if generator.phase != PhaseConfirming {
		return 0, false
	}
	generator.phase = PhaseSubmitting
	generator.message = ""
	generator.kind = MessageNone
	return generator.count, true
}

// Complete records the batch outcome. Success shows the success
// message, resets the input to the default and returns a submission
// token to pass to Dismiss after SuccessDismissDelay. Failure shows
// the error message, keeps the input and returns to editing.
func (generator *Generator) Complete(err error) uint64 {
	if generator.phase != PhaseSubmitting {
		return 0
	}
	if err != nil {
		generator.phase = PhaseEditing
		generator.message = GenerateErrorMessage
		generator.kind = MessageError
		return 0
	}
	generator.submission++
	generator.phase = PhaseSucceeded
	generator.message = SuccessMessage(generator.count)
	generator.kind = MessageSuccess
	generator.input = generator.defaultInput
	return generator.submission
}

// SuccessMessage is shown after count tickets were generated.
func SuccessMessage(count int) string {
	return fmt.Sprintf("Successfully generated %d %s!", count, pluralTickets(count))
}

// Dismiss closes the success message of the given submission and
// returns to editing. Returns false, changing nothing, when the
// generator has moved on since that submission.
func (generator *Generator) Dismiss(submission uint64) bool {
	if generator.phase != PhaseSucceeded || submission != generator.submission {
		return false
	}
	generator.Reset()
	return true
}

// Reset clears the status line and returns to editing. A batch in
// flight is not affected.
func (generator *Generator) Reset() {
	if generator.phase == PhaseSubmitting {
		return
	}
	generator.phase = PhaseEditing
	generator.message = ""
	generator.kind = MessageNone
}
