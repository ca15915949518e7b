// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrorCategory classifies command errors so main can pick an exit
// code and scripts can tell bad input from missing hardware support.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flags, wrong argument count, unparseable values.
	CategoryValidation ErrorCategory = "validation"

	// CategoryForbidden indicates the process lacks the privileges the
	// operation needs (root, CAP_SYS_RAWIO).
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryUnavailable indicates the hardware could not be queried.
	CategoryUnavailable ErrorCategory = "unavailable"

	// CategoryInternal indicates an unexpected failure.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message. The category is not
// included.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode maps the category to the process exit status.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryForbidden:
		return 77
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates an error for hardware that could not be queried.
// An err wrapping EACCES or EPERM is categorized as forbidden instead.
func Unavailable(err error, format string, args ...any) *ToolError {
	category := CategoryUnavailable
	if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
		category = CategoryForbidden
	}
	return &ToolError{Category: category, Err: fmt.Errorf(format+": %w", append(args, err)...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
