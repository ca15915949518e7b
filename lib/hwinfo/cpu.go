// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Vendor is a CPU manufacturer.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorIntel
	VendorAMD
)

func (v Vendor) String() string {
	switch v {
	case VendorIntel:
		return "intel"
	case VendorAMD:
		return "amd"
	}
	return "unknown"
}

// MarshalText encodes the vendor as its lowercase name.
func (v Vendor) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText accepts the names MarshalText produces. Anything else
// is VendorUnknown.
func (v *Vendor) UnmarshalText(text []byte) error {
	switch string(text) {
	case "intel":
		*v = VendorIntel
	case "amd":
		*v = VendorAMD
	default:
		*v = VendorUnknown
	}
	return nil
}

// VendorFromID maps a CPUID vendor string ("AuthenticAMD",
// "GenuineIntel") to a Vendor.
func VendorFromID(id string) Vendor {
	switch strings.TrimSpace(id) {
	case "AuthenticAMD":
		return VendorAMD
	case "GenuineIntel":
		return VendorIntel
	}
	return VendorUnknown
}

// CPU describes the boot processor.
type CPU struct {
	Vendor    Vendor `json:"vendor"`
	Family    uint32 `json:"family"`
	Model     uint32 `json:"model"`
	Stepping  uint32 `json:"stepping"`
	ModelName string `json:"model_name,omitempty"`

	// Source is "cpuid" or "cpuinfo", naming where Family and Model
	// came from.
	Source string `json:"source"`
}

// DecodeSignature splits a CPUID leaf 1 EAX value into display family,
// model, and stepping. The extended family is added, and the extended
// model prepended, only when the base family is 0xF.
func DecodeSignature(eax uint32) (family, model, stepping uint32) {
	stepping = eax & 0xF
	model = (eax >> 4) & 0xF
	family = (eax >> 8) & 0xF
	if family == 0xF {
		family += (eax >> 20) & 0xFF
		model |= ((eax >> 16) & 0xF) << 4
	}
	return family, model, stepping
}

// DetectCPU identifies the boot processor.
func DetectCPU() CPU {
	return detectCPUFrom("/proc", instructionCPU)
}

// DetectCPUAt is DetectCPU with /proc mounted at procRoot.
func DetectCPUAt(procRoot string) CPU {
	return detectCPUFrom(procRoot, instructionCPU)
}

// detectCPUFrom is the testable implementation of DetectCPU. instruction
// returns false when CPUID cannot identify the processor.
func detectCPUFrom(procRoot string, instruction func() (CPU, bool)) CPU {
	fromFile, fileOK := readCPUInfo(filepath.Join(procRoot, "cpuinfo"))
	cpu, ok := instruction()
	if !ok {
		return fromFile
	}
	// cpuid.CPU carries no stepping. Take it from cpuinfo when both
	// sources agree on the part.
	if fileOK && fromFile.Family == cpu.Family && fromFile.Model == cpu.Model {
		cpu.Stepping = fromFile.Stepping
	}
	if cpu.ModelName == "" {
		cpu.ModelName = fromFile.ModelName
	}
	return cpu
}

// instructionCPU reads cpuid's decoded Family and Model. cpuid adds
// the extended fields whatever the base family, which matches
// DecodeSignature for every AMD part (base family 0xF) and keeps the
// extended model of Intel family 6.
func instructionCPU() (CPU, bool) {
	var vendor Vendor
	switch cpuid.CPU.VendorID {
	case cpuid.AMD:
		vendor = VendorAMD
	case cpuid.Intel:
		vendor = VendorIntel
	default:
		return CPU{}, false
	}
	return CPU{
		Vendor:    vendor,
		Family:    uint32(cpuid.CPU.Family),
		Model:     uint32(cpuid.CPU.Model),
		ModelName: strings.TrimSpace(cpuid.CPU.BrandName),
		Source:    "cpuid",
	}, true
}

// readCPUInfo parses the first processor block of /proc/cpuinfo. The
// second result is false if the file is missing or names no vendor.
func readCPUInfo(path string) (CPU, bool) {
	cpu := CPU{Source: "cpuinfo"}
	file, err := os.Open(path)
	if err != nil {
		return cpu, false
	}
	defer file.Close()

	found := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if found {
				break
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "vendor_id":
			cpu.Vendor = VendorFromID(value)
			found = true
		case "cpu family":
			cpu.Family = parseDecimal(value)
		case "model":
			cpu.Model = parseDecimal(value)
		case "stepping":
			cpu.Stepping = parseDecimal(value)
		case "model name":
			cpu.ModelName = value
		}
	}
	return cpu, found
}

func parseDecimal(value string) uint32 {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(parsed)
}
