// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdsmu

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/slimbook/lib/clock"
	"github.com/bureau-foundation/slimbook/lib/pci"
)

// SMN addresses of the mailbox used for table requests.
const (
	MessageRegister  uint32 = 0x03B10A20
	ResponseRegister uint32 = 0x03B10A80
	ArgumentBase     uint32 = 0x03B10A88
)

// Response statuses. Firmware posts a non-zero status once a request
// completes.
const (
	StatusOK             uint32 = 0x01
	StatusBusy           uint32 = 0xFD
	StatusUnknownCommand uint32 = 0xFE
	StatusFailed         uint32 = 0xFF
)

const (
	DefaultPollInterval = 50 * time.Microsecond
	DefaultTimeout      = 2 * time.Second
	DefaultRetryDelay   = 200 * time.Millisecond
)

// Args are the two argument words of a request. Firmware may return
// results in the same slots.
type Args [2]uint32

// Bus is the register access an SMU needs. *pci.Device implements it.
type Bus interface {
	pci.Register32
	Close() error
}

// Options configures an SMU. Zero fields take the package defaults.
type Options struct {
	Clock clock.Clock

	// PollInterval is the sleep between response register reads.
	PollInterval time.Duration

	// Timeout bounds how long a single request waits for a response.
	Timeout time.Duration

	// RetryDelay is the pause before retrying a busy table refresh.
	RetryDelay time.Duration

	Logger *slog.Logger
}

// SMU is a mailbox connection over one bus. It is not safe for
// concurrent use: a request is a multi-register sequence and the
// index/data pair is shared.
type SMU struct {
	bus          Bus
	message      uint32
	response     uint32
	argumentBase uint32

	clock        clock.Clock
	pollInterval time.Duration
	timeout      time.Duration
	retryDelay   time.Duration
	logger       *slog.Logger
}

// New returns an SMU using the table mailbox registers on bus. The SMU
// owns bus: Close closes it.
func New(bus Bus, options Options) *SMU {
	smu := &SMU{
		bus:          bus,
		message:      MessageRegister,
		response:     ResponseRegister,
		argumentBase: ArgumentBase,
		clock:        options.Clock,
		pollInterval: options.PollInterval,
		timeout:      options.Timeout,
		retryDelay:   options.RetryDelay,
		logger:       options.Logger,
	}
	if smu.clock == nil {
		smu.clock = clock.Real()
	}
	if smu.pollInterval <= 0 {
		smu.pollInterval = DefaultPollInterval
	}
	if smu.timeout <= 0 {
		smu.timeout = DefaultTimeout
	}
	if smu.retryDelay <= 0 {
		smu.retryDelay = DefaultRetryDelay
	}
	if smu.logger == nil {
		smu.logger = slog.New(slog.DiscardHandler)
	}
	return smu
}

// Close releases the underlying bus.
func (s *SMU) Close() error {
	return s.bus.Close()
}

// SendRequest runs one mailbox transaction and returns the response
// status with the argument slots as firmware left them. It blocks
// until firmware responds, the poll timeout elapses (ErrTimeout), or
// ctx is done. A done ctx sends nothing.
func (s *SMU) SendRequest(ctx context.Context, message uint32, args Args) (uint32, Args, error) {
	if err := ctx.Err(); err != nil {
		return 0, Args{}, fmt.Errorf("sending SMU message %#x: %w", message, err)
	}
	// Clearing the response register arms the handshake.
	if err := pci.IndirectWrite(s.bus, s.response, 0); err != nil {
		return 0, Args{}, fmt.Errorf("clearing SMU response: %w", err)
	}
	for i, value := range args {
		if err := pci.IndirectWrite(s.bus, s.argumentAddress(i), value); err != nil {
			return 0, Args{}, fmt.Errorf("writing SMU argument %d: %w", i, err)
		}
	}
	if err := pci.IndirectWrite(s.bus, s.message, message); err != nil {
		return 0, Args{}, fmt.Errorf("writing SMU message %#x: %w", message, err)
	}

	status, polls, err := s.waitResponse(ctx, message)
	if err != nil {
		return 0, Args{}, err
	}

	var results Args
	for i := range results {
		value, err := pci.IndirectRead(s.bus, s.argumentAddress(i))
		if err != nil {
			return 0, Args{}, fmt.Errorf("reading SMU argument %d: %w", i, err)
		}
		results[i] = value
	}

	s.logger.Debug("smu request completed",
		"message", fmt.Sprintf("%#x", message),
		"status", StatusName(status),
		"polls", polls,
	)
	return status, results, nil
}

func (s *SMU) argumentAddress(index int) uint32 {
	return s.argumentBase + uint32(4*index)
}

// waitResponse polls the response register until it is non-zero.
func (s *SMU) waitResponse(ctx context.Context, message uint32) (uint32, int, error) {
	deadline := s.clock.Now().Add(s.timeout)
	for polls := 1; ; polls++ {
		status, err := pci.IndirectRead(s.bus, s.response)
		if err != nil {
			return 0, polls, fmt.Errorf("reading SMU response: %w", err)
		}
		if status != 0 {
			return status, polls, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, polls, fmt.Errorf("waiting for SMU response to message %#x: %w", message, err)
		}
		if !s.clock.Now().Before(deadline) {
			return 0, polls, fmt.Errorf("%w: message %#x after %v", ErrTimeout, message, s.timeout)
		}
		s.clock.Sleep(s.pollInterval)
	}
}
