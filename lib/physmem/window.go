// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package physmem

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime/debug"
)

// Window is a read-only view of WindowSize bytes of physical memory.
// It must be closed to release the mapping.
type Window struct {
	mapper  *Mapper
	address uint64
	mapping []byte
	data    []byte
}

// Address returns the physical address of the first byte.
func (w *Window) Address() uint64 { return w.address }

// Len returns the number of readable bytes.
func (w *Window) Len() int { return WindowSize }

// Close unmaps the window. Calls after the first return nil.
func (w *Window) Close() error {
	return w.mapper.release(w)
}

// ReadAt copies len(p) bytes starting at offset within the window.
func (w *Window) ReadAt(p []byte, offset int64) (int, error) {
	if offset < 0 || offset+int64(len(p)) > WindowSize {
		return 0, fmt.Errorf("%w: %d bytes at %#x", ErrOutOfRange, len(p), offset)
	}
	if err := w.load(int(offset), p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Uint32At reads a little-endian uint32 at offset.
func (w *Window) Uint32At(offset int) (uint32, error) {
	var buffer [4]byte
	if _, err := w.ReadAt(buffer[:], int64(offset)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buffer[:]), nil
}

// Float32At reads a little-endian IEEE-754 single at offset.
func (w *Window) Float32At(offset int) (float32, error) {
	bits, err := w.Uint32At(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (w *Window) load(offset int, p []byte) (err error) {
	// release clears data under the same lock.
	w.mapper.mu.Lock()
	defer w.mapper.mu.Unlock()
	if w.data == nil {
		return ErrClosed
	}

	// A bus error on an unbacked physical range would otherwise kill
	// the process.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			err = fmt.Errorf("%w at %#x: %v", ErrFault, w.address+uint64(offset), r)
		}
	}()

	copy(p, w.data[offset:offset+len(p)])
	return nil
}
