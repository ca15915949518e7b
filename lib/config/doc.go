// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for slimbook
// tools.
//
// A configuration file is optional; every field has a default that
// matches a stock Linux system. When a file is used it comes from the
// --config flag ([LoadFile]) or the SLIMBOOK_CONFIG environment
// variable ([Load]). [Resolve] applies that precedence and falls back
// to [Default]. There is no automatic file discovery.
//
// Path fields are expanded after loading: ${HOME} and ${VAR:-default}
// patterns are substituted. No environment variable overrides a
// configured value directly.
//
// Durations use Go syntax ("50us", "2s", "200ms").
//
// This package depends on no other slimbook packages.
package config
