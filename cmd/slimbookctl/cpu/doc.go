// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cpu implements "slimbookctl cpu", which reports the boot
// processor's identity, its AMD design, and whether the power table
// protocol covers it.
package cpu
