// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package msr reads x86 model-specific registers through the msr
// driver's character devices (/dev/cpu/N/msr). The msr kernel module
// must be loaded and the caller needs CAP_SYS_RAWIO.
package msr

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// Intel RAPL registers.
const (
	RAPLPowerUnit     int64 = 0x606
	PackagePowerLimit int64 = 0x610
)

// DevicePath returns the msr device for a logical CPU.
func DevicePath(cpu int) string {
	return fmt.Sprintf("/dev/cpu/%d/msr", cpu)
}

// Device is an open msr character device.
type Device struct {
	fd   int
	path string
}

// Open opens the msr device at path read-only.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Device{fd: fd, path: path}, nil
}

// Read returns the 64-bit value of register. The register number is
// the file offset; the driver returns the value little-endian.
func (d *Device) Read(register int64) (uint64, error) {
	var buffer [8]byte
	readCount, err := unix.Pread(d.fd, buffer[:], register)
	if err != nil {
		return 0, fmt.Errorf("reading MSR %#x from %s: %w", register, d.path, err)
	}
	if readCount != len(buffer) {
		return 0, fmt.Errorf("reading MSR %#x from %s: got %d bytes, want 8", register, d.path, readCount)
	}
	return binary.LittleEndian.Uint64(buffer[:]), nil
}

// Close closes the device.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("closing %s: %w", d.path, err)
	}
	return nil
}
