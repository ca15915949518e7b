// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"errors"
	"fmt"
	"testing"
)

type registerOperation struct {
	write  bool
	offset int64
	value  uint32
}

type recordingRegisters struct {
	operations []registerOperation
	readValue  uint32
	failWrite  error
}

func (r *recordingRegisters) ReadU32(offset int64) (uint32, error) {
	r.operations = append(r.operations, registerOperation{offset: offset})
	return r.readValue, nil
}

func (r *recordingRegisters) WriteU32(offset int64, value uint32) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.operations = append(r.operations, registerOperation{write: true, offset: offset, value: value})
	return nil
}

func TestIndirectReadAlignsAddress(t *testing.T) {
	registers := &recordingRegisters{readValue: 0x1234}

	value, err := IndirectRead(registers, 0x03B10A83)
	if err != nil {
		t.Fatalf("IndirectRead: %v", err)
	}
	if value != 0x1234 {
		t.Errorf("IndirectRead = %#x, want 0x1234", value)
	}

	want := []registerOperation{
		{write: true, offset: IndirectAddressRegister, value: 0x03B10A80},
		{offset: IndirectDataRegister},
	}
	if fmt.Sprint(registers.operations) != fmt.Sprint(want) {
		t.Errorf("operations = %+v, want %+v", registers.operations, want)
	}
}

func TestIndirectWriteKeepsAddress(t *testing.T) {
	registers := &recordingRegisters{}

	if err := IndirectWrite(registers, 0x03B10A83, 7); err != nil {
		t.Fatalf("IndirectWrite: %v", err)
	}

	want := []registerOperation{
		{write: true, offset: IndirectAddressRegister, value: 0x03B10A83},
		{write: true, offset: IndirectDataRegister, value: 7},
	}
	if fmt.Sprint(registers.operations) != fmt.Sprint(want) {
		t.Errorf("operations = %+v, want %+v", registers.operations, want)
	}
}

func TestIndirectWrapsErrors(t *testing.T) {
	failure := errors.New("bus error")
	registers := &recordingRegisters{failWrite: failure}

	if _, err := IndirectRead(registers, 0x10); !errors.Is(err, failure) {
		t.Errorf("IndirectRead error = %v, want wrapped bus error", err)
	}
	if err := IndirectWrite(registers, 0x10, 1); !errors.Is(err, failure) {
		t.Errorf("IndirectWrite error = %v, want wrapped bus error", err)
	}
}

func TestIndirectOverDevice(t *testing.T) {
	space := newMemorySpace(256)
	device := NewDevice("/sys", HostBridge, WithOpener(space.opener()))

	if err := IndirectWrite(device, 0x03B10A88, 0xA5A5A5A5); err != nil {
		t.Fatalf("IndirectWrite: %v", err)
	}
	// The data register holds the last value written through it.
	value, err := IndirectRead(device, 0x03B10A88)
	if err != nil {
		t.Fatalf("IndirectRead: %v", err)
	}
	if value != 0xA5A5A5A5 {
		t.Errorf("IndirectRead = %#x, want 0xa5a5a5a5", value)
	}
}
