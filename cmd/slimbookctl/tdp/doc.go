// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tdp implements "slimbookctl tdp", which prints the package
// power limits through [tdp.Reader].
package tdp
