// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes by error category.
const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitTransient  = 4
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output (e.g., a declined confirmation prompt).
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error returned by Execute to a process exit
// code. The second result reports whether the error should be printed.
func ExitCodeFor(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	switch CategoryOf(err) {
	case CategoryValidation:
		return ExitValidation, true
	case CategoryNotFound:
		return ExitNotFound, true
	case CategoryTransient:
		return ExitTransient, true
	}
	return ExitFailure, true
}
