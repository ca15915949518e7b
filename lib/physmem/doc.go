// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package physmem maps small windows of physical memory through
// /dev/mem for read-only access to firmware-populated tables.
//
// A [Mapper] hands out at most one live [Window] at a time. The
// /dev/mem descriptor is closed as soon as the mapping exists; the
// window stays valid until [Window.Close]. Reads through a window are
// bounds-checked against its fixed size, and a page fault during a
// read (firmware moved the table, or the range is not backed) is
// returned as [ErrFault] instead of crashing the process.
//
// Reading /dev/mem requires CAP_SYS_RAWIO, and kernels built with
// CONFIG_STRICT_DEVMEM refuse ranges claimed as System RAM.
package physmem
