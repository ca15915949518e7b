// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"github.com/stretchr/testify/mock"

	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/pci"
)

// answer is what simulated firmware posts for one request.
type answer struct {
	status  uint32
	results amdsmu.Args
}

// firmware simulates the SMU mailbox behind the host bridge index/data
// registers. Each message write consumes the next queued answer for
// that message; a message with no answer queued never completes.
type firmware struct {
	tracker *tracker
	index   uint32
	smn     map[uint32]uint32
	answers map[uint32][]answer
	sent    []uint32
	args    []amdsmu.Args
}

func (f *firmware) ReadU32(offset int64) (uint32, error) {
	if offset != pci.IndirectDataRegister {
		return 0, nil
	}
	return f.smn[f.index], nil
}

func (f *firmware) WriteU32(offset int64, value uint32) error {
	switch offset {
	case pci.IndirectAddressRegister:
		f.index = value
	case pci.IndirectDataRegister:
		f.smn[f.index] = value
		if f.index == amdsmu.MessageRegister {
			f.deliver(value)
		}
	}
	return nil
}

func (f *firmware) Close() error {
	f.tracker.closed++
	return nil
}

func (f *firmware) deliver(message uint32) {
	f.sent = append(f.sent, message)
	f.args = append(f.args, amdsmu.Args{f.smn[amdsmu.ArgumentBase], f.smn[amdsmu.ArgumentBase+4]})
	queue := f.answers[message]
	if len(queue) == 0 {
		return
	}
	next := queue[0]
	f.answers[message] = queue[1:]
	f.smn[amdsmu.ResponseRegister] = next.status
	f.smn[amdsmu.ArgumentBase] = next.results[0]
	f.smn[amdsmu.ArgumentBase+4] = next.results[1]
}

// tracker counts host bridge handles handed out and released.
type tracker struct {
	opened   int
	closed   int
	firmware *firmware
}

func newTracker(answers map[uint32][]answer) *tracker {
	tracker := &tracker{}
	tracker.firmware = &firmware{
		tracker: tracker,
		smn:     make(map[uint32]uint32),
		answers: answers,
	}
	return tracker
}

func (t *tracker) open() (amdsmu.Bus, error) {
	t.opened++
	return t.firmware, nil
}

// leaked returns the number of handles not yet released.
func (t *tracker) leaked() int { return t.opened - t.closed }

// identifier is a testify mock standing in for CPU identification.
type identifier struct {
	mock.Mock
}

func (m *identifier) Identify() hwinfo.CPU {
	return m.Called().Get(0).(hwinfo.CPU)
}

func identifying(cpu hwinfo.CPU) *identifier {
	m := &identifier{}
	m.On("Identify").Return(cpu).Once()
	return m
}
