// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import "path/filepath"

// Board holds the DMI identity strings of the machine.
type Board struct {
	Vendor      string `json:"vendor,omitempty"`
	Product     string `json:"product,omitempty"`
	BoardVendor string `json:"board_vendor,omitempty"`
	BIOSVersion string `json:"bios_version,omitempty"`
}

// DetectBoard reads /sys/class/dmi/id.
func DetectBoard() Board {
	return DetectBoardAt("/sys")
}

// DetectBoardAt reads class/dmi/id under sysRoot.
func DetectBoardAt(sysRoot string) Board {
	dmi := filepath.Join(sysRoot, "class/dmi/id")
	return Board{
		Vendor:      ReadSysfsString(filepath.Join(dmi, "sys_vendor")),
		Product:     ReadSysfsString(filepath.Join(dmi, "product_name")),
		BoardVendor: ReadSysfsString(filepath.Join(dmi, "board_vendor")),
		BIOSVersion: ReadSysfsString(filepath.Join(dmi, "bios_version")),
	}
}
