// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"fmt"
	"path/filepath"
)

// Address identifies a PCI function.
type Address struct {
	Domain   uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// HostBridge is the root complex at 0000:00:00.0, where AMD SoCs
// expose the SMN indirect registers.
var HostBridge = Address{}

// String formats the address the way sysfs names device directories.
func (a Address) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%d", a.Domain, a.Bus, a.Device, a.Function)
}

// ConfigPath returns the config space file for this address under
// sysRoot (normally "/sys").
func (a Address) ConfigPath(sysRoot string) string {
	return filepath.Join(sysRoot, "bus", "pci", "devices", a.String(), "config")
}
