// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/msr"
)

// powercapLimit is the package long-term power limit in microwatts.
const powercapLimit = "class/powercap/intel-rapl:0/constraint_0_power_limit_uw"

func (r *Reader) readIntel() (Reading, error) {
	path := filepath.Join(r.sysRoot, powercapLimit)
	microwatts, err := hwinfo.ParseSysfsInt64(path)
	if err == nil && microwatts > 0 {
		return Reading{Vendor: hwinfo.VendorIntel, Sustained: Watts(float32(microwatts) / 1e6)}, nil
	}
	if err == nil {
		err = fmt.Errorf("%s reports %d", path, microwatts)
	}
	r.logger.Debug("powercap limit unavailable, reading MSR", "error", err, "msr_device", r.msrPath)

	watts, msrErr := readRAPLLimit(r.msrPath)
	if msrErr != nil {
		return Reading{}, newQueryError(StageIdle, errors.Join(fmt.Errorf("powercap: %w", err), msrErr))
	}
	return Reading{Vendor: hwinfo.VendorIntel, Sustained: Watts(float32(watts))}, nil
}

func readRAPLLimit(path string) (float64, error) {
	device, err := msr.Open(path)
	if err != nil {
		return 0, err
	}
	defer device.Close()

	unit, err := device.Read(msr.RAPLPowerUnit)
	if err != nil {
		return 0, err
	}
	limit, err := device.Read(msr.PackagePowerLimit)
	if err != nil {
		return 0, err
	}
	return RAPLWatts(unit, limit), nil
}

// RAPLWatts decodes the PL1 field of MSR_PKG_POWER_LIMIT using the
// power unit from MSR_RAPL_POWER_UNIT (1/2^n watts, n in bits 3:0).
func RAPLWatts(unitRegister, limitRegister uint64) float64 {
	shift := unitRegister & 0xF
	return float64(limitRegister&0x7FFF) / float64(uint64(1)<<shift)
}
