// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for slimbook packages.
//
// [NewTree] builds a synthetic filesystem root (a stand-in for /sys,
// /proc, or /dev) under t.TempDir. Packages that read kernel
// interfaces take a root path so tests can point them at a Tree.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no slimbook-internal dependencies.
package testutil
