// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cpu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
)

type commandParams struct {
	cli.JSONOutput
	cli.ConfigFile
}

// Report is the JSON output of "slimbookctl cpu".
type Report struct {
	hwinfo.CPU
	Design         amdsmu.Design `json:"design"`
	TableSupported bool          `json:"table_supported"`
	Board          hwinfo.Board  `json:"board"`
}

// NewReport classifies cpu. Non-AMD processors have DesignUnknown.
func NewReport(cpu hwinfo.CPU, board hwinfo.Board) Report {
	report := Report{CPU: cpu, Board: board}
	if cpu.Vendor == hwinfo.VendorAMD {
		report.Design = amdsmu.Classify(cpu.Family, cpu.Model)
		report.TableSupported = amdsmu.TableSupported(report.Design)
	}
	return report
}

// Command returns the "cpu" command.
func Command() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "cpu",
		Summary: "Show processor identity and AMD design",
		Description: `Print the boot processor's vendor, family, model, and stepping, the
AMD design they classify to, and whether the SMU power table protocol
supports that design. Does not require root.`,
		Usage: "slimbookctl cpu [flags]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, logger, err := params.Load(logger)
			if err != nil {
				return err
			}

			report := NewReport(hwinfo.DetectCPUAt(cfg.Paths.ProcRoot), hwinfo.DetectBoardAt(cfg.Paths.SysRoot))
			logger.Debug("processor identified", "vendor", report.Vendor.String(), "source", report.Source, "design", report.Design.String())

			if done, err := params.EmitJSON(report); done {
				return err
			}
			return PrintReport(cli.Stdout, report)
		},
	}
}

// PrintReport writes report as aligned key/value lines.
func PrintReport(w io.Writer, report Report) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "vendor\t%s\n", report.Vendor)
	if report.ModelName != "" {
		fmt.Fprintf(writer, "model name\t%s\n", report.ModelName)
	}
	fmt.Fprintf(writer, "family\t%#x\n", report.Family)
	fmt.Fprintf(writer, "model\t%#x\n", report.Model)
	fmt.Fprintf(writer, "stepping\t%d\n", report.Stepping)
	fmt.Fprintf(writer, "source\t%s\n", report.Source)
	if report.Vendor == hwinfo.VendorAMD {
		fmt.Fprintf(writer, "design\t%s\n", report.Design)
		fmt.Fprintf(writer, "table supported\t%s\n", yesNo(report.TableSupported))
	}
	if report.Board.Product != "" {
		fmt.Fprintf(writer, "board\t%s %s\n", report.Board.Vendor, report.Board.Product)
	}
	return writer.Flush()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
