// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestToolErrorExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
		code     int
	}{
		{"validation", Validation("bad %s", "input"), CategoryValidation, 2},
		{"unavailable", Unavailable(errors.New("no smu"), "could not determine TDP"), CategoryUnavailable, 1},
		{"access denied", Unavailable(fmt.Errorf("open: %w", syscall.EACCES), "could not determine TDP"), CategoryForbidden, 77},
		{"not permitted", Unavailable(syscall.EPERM, "could not determine TDP"), CategoryForbidden, 77},
		{"internal", Internal("unexpected"), CategoryInternal, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			if code := test.err.ExitCode(); code != test.code {
				t.Errorf("ExitCode() = %d, want %d", code, test.code)
			}
		})
	}
}

func TestUnavailableWrapsCause(t *testing.T) {
	err := Unavailable(syscall.EACCES, "reading %s", "/dev/mem")
	if !errors.Is(err, syscall.EACCES) {
		t.Error("errors.Is(err, EACCES) = false, want true")
	}
	if want := "reading /dev/mem: permission denied"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", err.ExitCode())
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
