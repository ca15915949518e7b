// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msr

import (
	"encoding/binary"
	"errors"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/slimbook/lib/testutil"
)

func TestReadRegisterAtOffset(t *testing.T) {
	// A regular file stands in for the character device: the register
	// number is the byte offset in both cases.
	image := make([]byte, 0x700)
	binary.LittleEndian.PutUint64(image[RAPLPowerUnit:], 0x000A0E03)
	binary.LittleEndian.PutUint64(image[PackagePowerLimit:], 0x00DD8000_00DD80E0)
	path := testutil.NewTree(t).WriteBytes("msr", image)

	device, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer device.Close()

	unit, err := device.Read(RAPLPowerUnit)
	if err != nil || unit != 0x000A0E03 {
		t.Errorf("Read(RAPLPowerUnit) = %#x, %v; want 0xa0e03", unit, err)
	}
	limit, err := device.Read(PackagePowerLimit)
	if err != nil || limit != 0x00DD8000_00DD80E0 {
		t.Errorf("Read(PackagePowerLimit) = %#x, %v", limit, err)
	}
}

func TestReadShort(t *testing.T) {
	path := testutil.NewTree(t).WriteBytes("msr", make([]byte, 4))
	device, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer device.Close()

	if _, err := device.Read(0); err == nil {
		t.Error("Read of a 4-byte file should fail")
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(testutil.NewTree(t).Path("cpu/0/msr"))
	if !errors.Is(err, unix.ENOENT) {
		t.Errorf("Open error = %v, want ENOENT", err)
	}
}

func TestCloseTwice(t *testing.T) {
	path := testutil.NewTree(t).WriteBytes("msr", make([]byte, 8))
	device, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := device.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := device.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestDevicePath(t *testing.T) {
	if got := DevicePath(3); got != "/dev/cpu/3/msr" {
		t.Errorf("DevicePath(3) = %q", got)
	}
}
