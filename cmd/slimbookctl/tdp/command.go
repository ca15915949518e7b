// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/config"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/physmem"
	"github.com/bureau-foundation/slimbook/lib/tdp"
)

type commandParams struct {
	cli.JSONOutput
	cli.CBOROutput
	cli.ConfigFile
	Design string `json:"-" flag:"design" desc:"force the AMD design instead of detecting it (e.g. phoenix)"`
	Layout string `json:"-" flag:"layout" desc:"power table layout: full or single (default from config)"`
}

// Command returns the "tdp" command.
func Command() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "tdp",
		Summary: "Print the sustained, fast, and slow power limits",
		Description: `Query the package power limits the firmware enforces.

On AMD the SMU is asked for its power table address through the host
bridge, the table is refreshed, and the limits are read from /dev/mem.
On Intel the long-term RAPL limit is read from powercap, or from the
msr device when powercap has none.

Processors with no known power table print all-zero limits and exit 0.
Requires root.

Designs accepted by --design and tdp.design: ` + strings.Join(amdsmu.DesignNames(), ", ") + ".",
		Usage: "slimbookctl tdp [flags]",
		Examples: []cli.Example{
			{
				Description: "Print the current limits",
				Command:     "sudo slimbookctl tdp",
			},
			{
				Description: "Machine-readable output with a forced design",
				Command:     "sudo slimbookctl tdp --design rembrandt --json",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.OutputJSON && params.OutputCBOR {
				return cli.Validation("--json and --cbor are mutually exclusive")
			}
			cfg, logger, err := params.Load(logger)
			if err != nil {
				return err
			}
			return run(ctx, params, cfg, logger.With("command", "tdp"))
		},
	}
}

func run(ctx context.Context, params commandParams, cfg *config.Config, logger *slog.Logger) error {
	options, err := readerOptions(params, cfg, logger)
	if err != nil {
		return err
	}

	reading, err := tdp.NewReader(options).Read(ctx)
	if err != nil {
		var queryErr *tdp.QueryError
		if errors.As(err, &queryErr) {
			logger.Error("tdp query failed", "stage", queryErr.Stage.String(), "kind", queryErr.Kind.String(), "error", queryErr.Err)
		}
		return cli.Unavailable(err, "could not determine TDP")
	}

	if done, err := params.EmitJSON(reading); done {
		return err
	}
	if done, err := params.EmitCBOR(reading); done {
		return err
	}
	return printReading(cli.Stdout, reading)
}

// readerOptions translates configuration and flags into reader
// options. Flags override the config file.
func readerOptions(params commandParams, cfg *config.Config, logger *slog.Logger) (tdp.Options, error) {
	layoutName := cfg.TDP.Layout
	if params.Layout != "" {
		layoutName = params.Layout
	}
	layout, err := tdp.ParseLayout(layoutName)
	if err != nil {
		return tdp.Options{}, cli.Validation("%w", err)
	}

	designName := cfg.TDP.Design
	if params.Design != "" {
		designName = params.Design
	}
	var design amdsmu.Design
	if designName != "" {
		design, err = amdsmu.ParseDesign(designName)
		if err != nil {
			return tdp.Options{}, cli.Validation("%w", err)
		}
	}

	procRoot := cfg.Paths.ProcRoot
	return tdp.Options{
		SysRoot:  cfg.Paths.SysRoot,
		Identify: func() hwinfo.CPU { return hwinfo.DetectCPUAt(procRoot) },
		Design:   design,
		Mapper:   physmem.NewMapper(cfg.Paths.DevMem),
		MSRPath:  cfg.Paths.MSRDevice,
		Layout:   layout,
		SMU: amdsmu.Options{
			PollInterval: cfg.SMU.PollInterval,
			Timeout:      cfg.SMU.Timeout,
			RetryDelay:   cfg.SMU.RetryDelay,
		},
		Logger: logger,
	}, nil
}

func printReading(w io.Writer, reading tdp.Reading) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "vendor\t%s\n", reading.Vendor)
	fmt.Fprintf(writer, "sustained\t%d W\n", reading.Sustained)
	fmt.Fprintf(writer, "fast\t%d W\n", reading.Fast)
	fmt.Fprintf(writer, "slow\t%d W\n", reading.Slow)
	return writer.Flush()
}
