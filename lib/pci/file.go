// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// File is the positioned I/O surface a Device needs from its config
// space file.
type File interface {
	ReadAt(p []byte, offset int64) (int, error)
	WriteAt(p []byte, offset int64) (int, error)
	Close() error
}

// OpenFunc opens a config space file, read-write when writable is set.
type OpenFunc func(path string, writable bool) (File, error)

// OpenSysfs opens path with open(2) and performs I/O with
// pread(2)/pwrite(2). Errors wrap the raw errno so callers can test
// for EACCES or ENOENT with errors.Is.
func OpenSysfs(path string, writable bool) (File, error) {
	flags := unix.O_RDONLY
	if writable {
		flags = unix.O_RDWR
	}
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &sysfsFile{fd: fd, path: path}, nil
}

type sysfsFile struct {
	fd   int
	path string
}

func (f *sysfsFile) ReadAt(p []byte, offset int64) (int, error) {
	readCount, err := unix.Pread(f.fd, p, offset)
	if err != nil {
		return readCount, fmt.Errorf("pread %s at %#x: %w", f.path, offset, err)
	}
	return readCount, nil
}

func (f *sysfsFile) WriteAt(p []byte, offset int64) (int, error) {
	written, err := unix.Pwrite(f.fd, p, offset)
	if err != nil {
		return written, fmt.Errorf("pwrite %s at %#x: %w", f.path, offset, err)
	}
	return written, nil
}

func (f *sysfsFile) Close() error {
	if err := unix.Close(f.fd); err != nil {
		return fmt.Errorf("closing %s: %w", f.path, err)
	}
	f.fd = -1
	return nil
}
