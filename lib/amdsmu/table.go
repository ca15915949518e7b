// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdsmu

import (
	"context"
	"fmt"
)

// Table mailbox messages.
const (
	MessageTableAddressLegacy uint32 = 0x0B
	MessageRefreshLegacy      uint32 = 0x3D
	MessageTableAddress       uint32 = 0x66
	MessageRefresh            uint32 = 0x65
)

// legacyTableSelector is the first argument legacy designs expect on
// table requests.
const legacyTableSelector uint32 = 3

type tableProtocol int

const (
	protocolNone tableProtocol = iota
	protocolLegacy
	protocolCurrent
)

func protocolFor(design Design) tableProtocol {
	switch design {
	case DesignRaven, DesignPicasso, DesignDali:
		return protocolLegacy
	case DesignRenoir, DesignLucienne, DesignCezanne, DesignRembrandt,
		DesignPhoenix, DesignPhoenix2, DesignStrixPoint1, DesignStrixPoint2:
		return protocolCurrent
	}
	return protocolNone
}

// wideTableAddress reports whether firmware returns the table address
// split over both argument slots (high word in slot 1).
func wideTableAddress(design Design) bool {
	switch design {
	case DesignRembrandt, DesignPhoenix, DesignPhoenix2, DesignStrixPoint1, DesignStrixPoint2:
		return true
	}
	return false
}

// TableSupported reports whether the table address and refresh
// requests are known for design.
func TableSupported(design Design) bool {
	return protocolFor(design) != protocolNone
}

// RequestTableAddress asks firmware for the physical address of the
// power/thermal table. Designs without a table protocol fail with
// ErrUnsupportedDesign before any register access.
func (s *SMU) RequestTableAddress(ctx context.Context, design Design) (uint64, error) {
	var message uint32
	var args Args
	switch protocolFor(design) {
	case protocolLegacy:
		message = MessageTableAddressLegacy
		args[0] = legacyTableSelector
	case protocolCurrent:
		message = MessageTableAddress
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDesign, design)
	}

	status, results, err := s.SendRequest(ctx, message, args)
	if err != nil {
		return 0, fmt.Errorf("requesting table address: %w", err)
	}
	if status != StatusOK {
		return 0, &StatusError{Message: message, Status: status, Err: ErrAddressUnavailable}
	}

	address := uint64(results[0])
	if wideTableAddress(design) {
		address |= uint64(results[1]) << 32
	}
	s.logger.Debug("smu table address", "design", design.String(), "address", fmt.Sprintf("%#x", address))
	return address, nil
}

// RefreshTable asks firmware to rewrite the table with current
// values. A busy response is retried once after the retry delay.
func (s *SMU) RefreshTable(ctx context.Context, design Design) error {
	var message uint32
	var args Args
	switch protocolFor(design) {
	case protocolLegacy:
		message = MessageRefreshLegacy
		args[0] = legacyTableSelector
	case protocolCurrent:
		message = MessageRefresh
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDesign, design)
	}

	for attempt := 1; ; attempt++ {
		status, _, err := s.SendRequest(ctx, message, args)
		if err != nil {
			return fmt.Errorf("refreshing table: %w", err)
		}
		switch {
		case status == StatusOK:
			return nil
		case status == StatusBusy && attempt == 1:
			s.logger.Debug("smu busy, retrying table refresh", "design", design.String(), "delay", s.retryDelay)
			s.clock.Sleep(s.retryDelay)
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("retrying table refresh: %w", err)
			}
		case status == StatusBusy:
			return &StatusError{Message: message, Status: status, Err: ErrBusy}
		default:
			return &StatusError{Message: message, Status: status, Err: ErrRefreshFailed}
		}
	}
}
