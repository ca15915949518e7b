// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

var (
	// ErrMisaligned is returned for an access whose offset is not a
	// multiple of its width. No I/O is performed.
	ErrMisaligned = errors.New("pci: misaligned config space access")

	// ErrClosed is returned for an access after Close.
	ErrClosed = errors.New("pci: device closed")
)

// Option configures a Device.
type Option func(*Device)

// WithOpener replaces the function used to open the config file.
func WithOpener(open OpenFunc) Option {
	return func(d *Device) { d.open = open }
}

// WithHostOrder overrides the byte order the Device assumes for the
// host. Used to exercise big-endian conversion on little-endian
// machines.
func WithHostOrder(order binary.ByteOrder) Option {
	return func(d *Device) { d.hostOrder = order }
}

// Device is a PCI function's configuration space. The zero value is
// not usable; call NewDevice.
//
// Device is not safe for concurrent use. The indirect register
// protocol is a two-step sequence, so callers serialize whole
// transactions anyway.
type Device struct {
	address   Address
	path      string
	open      OpenFunc
	hostOrder binary.ByteOrder

	file     File
	writable bool
	closed   bool
}

// NewDevice binds a Device to address under sysRoot. The config file
// is not opened until the first access.
func NewDevice(sysRoot string, address Address, options ...Option) *Device {
	device := &Device{
		address:   address,
		path:      address.ConfigPath(sysRoot),
		open:      OpenSysfs,
		hostOrder: binary.NativeEndian,
	}
	for _, option := range options {
		option(device)
	}
	return device
}

// Address returns the bound PCI address.
func (d *Device) Address() Address { return d.address }

// Path returns the config space file path.
func (d *Device) Path() string { return d.path }

// ReadU8 reads one byte at offset.
func (d *Device) ReadU8(offset int64) (uint8, error) {
	var buffer [1]byte
	if err := d.read(offset, buffer[:]); err != nil {
		return 0, err
	}
	return buffer[0], nil
}

// ReadU16 reads two bytes at offset and interprets them in host order.
func (d *Device) ReadU16(offset int64) (uint16, error) {
	var buffer [2]byte
	if err := d.read(offset, buffer[:]); err != nil {
		return 0, err
	}
	return d.hostOrder.Uint16(buffer[:]), nil
}

// ReadU32 reads four bytes at offset and interprets them in host order.
func (d *Device) ReadU32(offset int64) (uint32, error) {
	var buffer [4]byte
	if err := d.read(offset, buffer[:]); err != nil {
		return 0, err
	}
	return d.hostOrder.Uint32(buffer[:]), nil
}

// WriteU8 writes one byte at offset.
func (d *Device) WriteU8(offset int64, value uint8) error {
	return d.write(offset, []byte{value})
}

// WriteU16 writes value at offset in little-endian byte order.
func (d *Device) WriteU16(offset int64, value uint16) error {
	if d.bigEndianHost() {
		value = bits.ReverseBytes16(value)
	}
	var buffer [2]byte
	d.hostOrder.PutUint16(buffer[:], value)
	return d.write(offset, buffer[:])
}

// WriteU32 writes value at offset in little-endian byte order.
func (d *Device) WriteU32(offset int64, value uint32) error {
	if d.bigEndianHost() {
		value = bits.ReverseBytes32(value)
	}
	var buffer [4]byte
	d.hostOrder.PutUint32(buffer[:], value)
	return d.write(offset, buffer[:])
}

// Close releases the config file descriptor. Calls after the first
// return nil.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func (d *Device) read(offset int64, buffer []byte) error {
	if err := d.prepare(offset, len(buffer), false); err != nil {
		return err
	}
	readCount, err := d.file.ReadAt(buffer, offset)
	if readCount == len(buffer) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("reading %d bytes at %#x from %s: %w", len(buffer), offset, d.address, err)
}

func (d *Device) write(offset int64, buffer []byte) error {
	if err := d.prepare(offset, len(buffer), true); err != nil {
		return err
	}
	written, err := d.file.WriteAt(buffer, offset)
	if err != nil {
		return fmt.Errorf("writing %d bytes at %#x to %s: %w", len(buffer), offset, d.address, err)
	}
	if written != len(buffer) {
		return fmt.Errorf("writing %d bytes at %#x to %s: %w", len(buffer), offset, d.address, io.ErrShortWrite)
	}
	return nil
}

// prepare validates alignment and makes sure the file is open with at
// least the required access mode. A read-only descriptor is replaced
// by a read-write one on the first write.
func (d *Device) prepare(offset int64, width int, writable bool) error {
	if d.closed {
		return ErrClosed
	}
	if offset < 0 || offset%int64(width) != 0 {
		return fmt.Errorf("%w: offset %#x, width %d", ErrMisaligned, offset, width)
	}
	if d.file != nil && (d.writable || !writable) {
		return nil
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil {
			d.file = nil
			return fmt.Errorf("reopening %s read-write: %w", d.address, err)
		}
		d.file = nil
	}
	file, err := d.open(d.path, writable)
	if err != nil {
		return err
	}
	d.file = file
	d.writable = writable
	return nil
}

func (d *Device) bigEndianHost() bool {
	var order [2]byte
	d.hostOrder.PutUint16(order[:], 1)
	return order[0] == 0
}
