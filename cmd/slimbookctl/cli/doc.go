// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for slimbookctl.
//
// A [Command] tree dispatches on the first positional argument, parses
// flags with pflag, and hands the remaining arguments to Run with a
// context and a structured logger. Flags are declared either with a
// Flags function or, more commonly, as tagged fields of a params
// struct bound through [FlagsFromParams]:
//
//	type tdpParams struct {
//	    cli.JSONOutput
//	    cli.ConfigFile
//	    Design string `flag:"design" desc:"force an AMD design instead of detecting it"`
//	}
//
// Unknown commands and flags produce an error with the closest
// defined name, found by edit distance.
//
// Commands report handled non-zero exits with [ExitError] and
// categorized failures with [ToolError]; the binary's main maps both
// to exit codes.
package cli
