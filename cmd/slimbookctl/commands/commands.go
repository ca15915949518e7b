// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the slimbookctl command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
	cpucmd "github.com/bureau-foundation/slimbook/cmd/slimbookctl/cpu"
	doctorcmd "github.com/bureau-foundation/slimbook/cmd/slimbookctl/doctor"
	tdpcmd "github.com/bureau-foundation/slimbook/cmd/slimbookctl/tdp"
	"github.com/bureau-foundation/slimbook/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Full bool `json:"-" flag:"full" desc:"include Go version and platform"`
}

// Root builds and returns the complete slimbookctl command tree.
func Root() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name: "slimbookctl",
		Description: `slimbookctl: laptop power limit reader.

Reads the sustained, fast, and slow package power limits the firmware
enforces. On AMD the values come from the SMU power table, on Intel
from RAPL.`,
		Logger: cli.NewCommandLogger(slog.LevelInfo),
		Subcommands: []*cli.Command{
			tdpcmd.Command(),
			cpucmd.Command(),
			doctorcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Params:  func() any { return &params },
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					if done, err := params.EmitJSON(version.Current()); done {
						return err
					}
					if params.Full {
						fmt.Fprintf(cli.Stdout, "slimbookctl %s\n", version.Full())
						return nil
					}
					fmt.Fprintf(cli.Stdout, "slimbookctl %s\n", version.Info())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check that this machine can be queried (start here)",
				Command:     "sudo slimbookctl doctor",
			},
			{
				Description: "Print the current power limits",
				Command:     "sudo slimbookctl tdp",
			},
			{
				Description: "Force a design for an unlisted model",
				Command:     "sudo slimbookctl tdp --design phoenix --json",
			},
		},
	}
}
