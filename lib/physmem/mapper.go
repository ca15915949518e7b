// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package physmem

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// DevMem is the physical memory device.
const DevMem = "/dev/mem"

// WindowSize is the number of bytes visible through a Window.
const WindowSize = 4096

var (
	// ErrWindowActive is returned by Map while another window from
	// the same Mapper is still open.
	ErrWindowActive = errors.New("physmem: a window is already mapped")

	// ErrOutOfRange is returned for reads that do not fit inside the
	// window.
	ErrOutOfRange = errors.New("physmem: read outside window")

	// ErrFault is returned when a read through the mapping faults.
	ErrFault = errors.New("physmem: fault reading mapped memory")

	// ErrClosed is returned for reads through a closed window.
	ErrClosed = errors.New("physmem: window closed")
)

// Mapper maps windows of one memory device. It is safe for concurrent
// use, as are the windows it hands out: reads and Close of a window
// are serialized on the Mapper's lock.
type Mapper struct {
	path string

	mu   sync.Mutex
	live *Window
}

// NewMapper returns a Mapper over the device at path, normally DevMem.
func NewMapper(path string) *Mapper {
	return &Mapper{path: path}
}

// Path returns the memory device path.
func (m *Mapper) Path() string { return m.path }

// Live reports whether a window from this Mapper is currently mapped.
func (m *Mapper) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live != nil
}

// Map creates a read-only window of WindowSize bytes starting at the
// physical address. The address need not be page aligned. Errors wrap
// the errno from open(2) or mmap(2) and leave no window mapped.
func (m *Mapper) Map(address uint64) (*Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live != nil {
		return nil, fmt.Errorf("%w (at %#x)", ErrWindowActive, m.live.address)
	}

	pageSize := uint64(unix.Getpagesize())
	base := address &^ (pageSize - 1)
	delta := int(address - base)
	length := (delta + WindowSize + int(pageSize) - 1) &^ (int(pageSize) - 1)

	fd, err := unix.Open(m.path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", m.path, err)
	}
	mapping, err := unix.Mmap(fd, int64(base), length, unix.PROT_READ, unix.MAP_SHARED)
	// The mapping holds its own reference to the device.
	closeErr := unix.Close(fd)
	if err != nil {
		return nil, fmt.Errorf("mapping %d bytes of %s at %#x: %w", length, m.path, base, err)
	}
	if closeErr != nil {
		closeErr = fmt.Errorf("closing %s after mapping: %w", m.path, closeErr)
		if unmapErr := unix.Munmap(mapping); unmapErr != nil {
			return nil, errors.Join(closeErr, fmt.Errorf("unmapping %s at %#x: %w", m.path, base, unmapErr))
		}
		return nil, closeErr
	}

	window := &Window{
		mapper:  m,
		address: address,
		mapping: mapping,
		data:    mapping[delta : delta+WindowSize],
	}
	m.live = window
	return window, nil
}

// release unmaps window and clears it as the live window.
func (m *Mapper) release(window *Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if window.mapping == nil {
		return nil
	}
	err := unix.Munmap(window.mapping)
	window.mapping = nil
	window.data = nil
	if m.live == window {
		m.live = nil
	}
	if err != nil {
		return fmt.Errorf("unmapping window at %#x: %w", window.address, err)
	}
	return nil
}
