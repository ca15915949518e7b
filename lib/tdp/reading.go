// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
)

// Reading is one set of power limits in watts. AMD readings fill all
// three limits; Intel readings carry only Sustained.
type Reading struct {
	Vendor    hwinfo.Vendor `json:"vendor"`
	Sustained uint8         `json:"sustained"`
	Fast      uint8         `json:"fast"`
	Slow      uint8         `json:"slow"`
}

// Stage is a step of the AMD query sequence.
type Stage int

const (
	StageIdle Stage = iota
	StageDesignKnown
	StageAddressObtained
	StageTableMapped
	StageTableRefreshed
	StageValuesRead
	StageCleaned
)

var stageNames = [...]string{
	StageIdle:            "idle",
	StageDesignKnown:     "design-known",
	StageAddressObtained: "address-obtained",
	StageTableMapped:     "table-mapped",
	StageTableRefreshed:  "table-refreshed",
	StageValuesRead:      "values-read",
	StageCleaned:         "cleaned",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Kind classifies why a query failed.
type Kind int

const (
	// KindProtocol means firmware answered, but not with success.
	KindProtocol Kind = iota + 1

	// KindResource means an operating system resource could not be
	// opened, mapped, or read. The errno is in the cause chain.
	KindResource

	// KindTimeout means firmware did not answer within the poll
	// timeout, or the context ended first.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindResource:
		return "resource"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// ErrUnavailable matches every *QueryError. Consumers that do not care
// why the limits could not be read test for it alone.
var ErrUnavailable = errors.New("tdp: could not determine TDP")

// QueryError is a failed query. Stage is the last stage completed
// before the failure.
type QueryError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("tdp query failed after %s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is reports ErrUnavailable as a match so callers need not unpack the
// stage and kind.
func (e *QueryError) Is(target error) bool { return target == ErrUnavailable }

func newQueryError(stage Stage, err error) *QueryError {
	return &QueryError{Stage: stage, Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	var status *amdsmu.StatusError
	switch {
	case errors.Is(err, amdsmu.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindTimeout
	case errors.As(err, &status),
		errors.Is(err, amdsmu.ErrBusy),
		errors.Is(err, amdsmu.ErrAddressUnavailable),
		errors.Is(err, amdsmu.ErrRefreshFailed),
		errors.Is(err, amdsmu.ErrUnsupportedDesign):
		return KindProtocol
	}
	return KindResource
}
