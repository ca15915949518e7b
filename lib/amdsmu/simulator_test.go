// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdsmu

import (
	"github.com/bureau-foundation/slimbook/lib/pci"
)

// reply is what the simulated firmware posts for one request.
type reply struct {
	status  uint32
	results Args
	// delay is the number of response register polls that read zero
	// before the status appears.
	delay int
}

type recordedRequest struct {
	message uint32
	args    Args
}

// simulatedSMU models the host bridge index/data pair in front of the
// SMU mailbox. Each message register write consumes the next reply;
// when replies run out the response register stays zero forever.
type simulatedSMU struct {
	index     uint32
	smn       map[uint32]uint32
	replies   []reply
	requests  []recordedRequest
	smnWrites []uint32

	pending   bool
	countdown int
	current   reply
	closed    int
}

func newSimulatedSMU(replies ...reply) *simulatedSMU {
	return &simulatedSMU{smn: make(map[uint32]uint32), replies: replies}
}

func (s *simulatedSMU) ReadU32(offset int64) (uint32, error) {
	if offset != pci.IndirectDataRegister {
		return 0, nil
	}
	return s.smnRead(s.index), nil
}

func (s *simulatedSMU) WriteU32(offset int64, value uint32) error {
	switch offset {
	case pci.IndirectAddressRegister:
		s.index = value
	case pci.IndirectDataRegister:
		s.smnWrite(s.index, value)
	}
	return nil
}

func (s *simulatedSMU) Close() error {
	s.closed++
	return nil
}

func (s *simulatedSMU) smnWrite(address, value uint32) {
	s.smnWrites = append(s.smnWrites, address)
	s.smn[address] = value
	if address != MessageRegister {
		return
	}
	s.requests = append(s.requests, recordedRequest{
		message: value,
		args:    Args{s.smn[ArgumentBase], s.smn[ArgumentBase+4]},
	})
	if len(s.replies) == 0 {
		s.pending = false
		return
	}
	s.current, s.replies = s.replies[0], s.replies[1:]
	s.countdown = s.current.delay
	s.pending = true
}

func (s *simulatedSMU) smnRead(address uint32) uint32 {
	if address == ResponseRegister && s.pending {
		if s.countdown > 0 {
			s.countdown--
			return 0
		}
		s.pending = false
		s.smn[ResponseRegister] = s.current.status
		s.smn[ArgumentBase] = s.current.results[0]
		s.smn[ArgumentBase+4] = s.current.results[1]
	}
	return s.smn[address]
}
