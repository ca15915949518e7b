// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package amdsmu talks to the System Management Unit of AMD Zen SoCs.
//
// The SMU is reached through the host bridge's SMN index/data register
// pair (see package pci). A request clears the response register,
// loads two argument words, writes the message ID, and polls the
// response register until firmware posts a status. The argument slots
// carry results back.
//
// [Classify] maps a CPUID (family, model) pair to a [Design]. The
// design selects which message IDs fetch the power/thermal table
// address ([SMU.RequestTableAddress]) and ask firmware to refresh the
// table contents ([SMU.RefreshTable]).
package amdsmu
