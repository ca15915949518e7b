// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Slimbookctl reads the configured power limits of the running
// laptop and diagnoses the host access they depend on.
//
//	slimbookctl tdp              sustained, fast, and slow limits in watts
//	slimbookctl cpu              processor identity and AMD design
//	slimbookctl doctor [--fix]   PCI, /dev/mem, and msr prerequisites
//	slimbookctl version
//
// Most queries need root: the AMD path writes the SMU mailbox through
// the host bridge config space and maps the power table from /dev/mem.
package main
