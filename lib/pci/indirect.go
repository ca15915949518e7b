// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pci

import "fmt"

// Configuration space offsets of the SMN index/data pair.
const (
	IndirectAddressRegister = 0xB8
	IndirectDataRegister    = 0xBC
)

// Register32 is the 32-bit subset of config space access used by the
// indirect register protocol. *Device implements it.
type Register32 interface {
	ReadU32(offset int64) (uint32, error)
	WriteU32(offset int64, value uint32) error
}

// IndirectRead reads the 32-bit register at address through the
// index/data pair. The address is aligned down to 4 bytes.
func IndirectRead(space Register32, address uint32) (uint32, error) {
	if err := space.WriteU32(IndirectAddressRegister, address&^3); err != nil {
		return 0, fmt.Errorf("selecting indirect register %#08x: %w", address, err)
	}
	value, err := space.ReadU32(IndirectDataRegister)
	if err != nil {
		return 0, fmt.Errorf("reading indirect register %#08x: %w", address, err)
	}
	return value, nil
}

// IndirectWrite writes value to the register at address through the
// index/data pair. The address is written as given.
func IndirectWrite(space Register32, address, value uint32) error {
	if err := space.WriteU32(IndirectAddressRegister, address); err != nil {
		return fmt.Errorf("selecting indirect register %#08x: %w", address, err)
	}
	if err := space.WriteU32(IndirectDataRegister, value); err != nil {
		return fmt.Errorf("writing indirect register %#08x: %w", address, err)
	}
	return nil
}
