// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hwinfo identifies the host CPU and board and reads the small
// kernel text interfaces the rest of slimbook depends on.
//
// # CPU identity
//
// [DetectCPU] asks the CPUID instruction (through klauspost/cpuid) for
// the vendor, family, and model, and falls back to /proc/cpuinfo when
// CPUID is unavailable (non-x86 builds, some hypervisors).
// [DecodeSignature] applies AMD's extended family/model rule to a raw
// CPUID leaf 1 EAX value.
//
// # Board identity
//
// [DetectBoard] reads the DMI strings under /sys/class/dmi/id.
//
// # Kernel helpers
//
// [ReadSysfsString], [ReadSysfsInt], and [ParseSysfsInt64] read
// single-value sysfs files. [ModuleLoaded] scans /proc/modules.
//
// Detection never fails: unreadable files produce zero-valued fields. A
// VM with no DMI table is still a machine with a CPU.
package hwinfo
