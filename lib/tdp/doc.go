// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tdp reads the processor's configured power limits.
//
// On AMD mobile parts the limits live in a firmware power table. A
// query classifies the CPU design, asks the SMU for the table's
// physical address over the PCI host bridge, maps that address through
// /dev/mem, asks the SMU to refresh the table, and reads the sustained,
// fast, and slow limits as little-endian float32 watts. Every handle
// acquired along the way is released before Read returns, on every
// path.
//
// On Intel parts the package long-term limit comes from powercap
// sysfs, or from the RAPL MSRs when powercap is unavailable.
//
// Hardware the package does not know how to query is not an error:
// Read returns a zero Reading with VendorUnknown. Real failures are
// reported as *QueryError, which records the last stage reached and a
// coarse Kind, and matches ErrUnavailable under errors.Is.
//
// Queries are serialized process-wide. The SMU mailbox is reached
// through a shared index/data register pair, and interleaving two
// queries would corrupt both.
package tdp
