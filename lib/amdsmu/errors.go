// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdsmu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDesign is returned when a design has no known
	// table protocol. No request is sent.
	ErrUnsupportedDesign = errors.New("amdsmu: design has no table protocol")

	// ErrAddressUnavailable is returned when firmware rejects the
	// table address request.
	ErrAddressUnavailable = errors.New("amdsmu: table address not available")

	// ErrRefreshFailed is returned when firmware rejects the table
	// refresh request.
	ErrRefreshFailed = errors.New("amdsmu: table refresh rejected")

	// ErrBusy is returned when the SMU still reports busy after the
	// single permitted retry.
	ErrBusy = errors.New("amdsmu: SMU busy")

	// ErrTimeout is returned when the response register stays zero
	// past the poll timeout.
	ErrTimeout = errors.New("amdsmu: timed out waiting for SMU response")
)

// StatusError reports a response status other than the one the
// request expected. Err is one of the package sentinels.
type StatusError struct {
	Message uint32
	Status  uint32
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: message %#x returned status %#x (%s)", e.Err, e.Message, e.Status, StatusName(e.Status))
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusName returns a short label for an SMU response status.
func StatusName(status uint32) string {
	switch status {
	case StatusOK:
		return "ok"
	case StatusBusy:
		return "busy"
	case StatusFailed:
		return "failed"
	case StatusUnknownCommand:
		return "unknown command"
	case 0:
		return "no response"
	}
	return "unexpected"
}
