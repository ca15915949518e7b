// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for slimbook
// binaries.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When GitCommit is not injected, [Current] falls back to the VCS
// stamp the Go toolchain embeds in module builds.
//
//	go build -ldflags "-X github.com/bureau-foundation/slimbook/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/slimbookctl
package version
