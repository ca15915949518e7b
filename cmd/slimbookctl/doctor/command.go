// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli/doctor"
	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/config"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/pci"
)

type commandParams struct {
	cli.JSONOutput
	cli.ConfigFile
	Fix    bool `json:"-" flag:"fix" desc:"repair failures that have a fix"`
	DryRun bool `json:"-" flag:"dry-run" desc:"with --fix, print repairs without applying them"`
}

// Command returns the "doctor" command.
func Command() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check that this machine can be queried",
		Description: `Check the prerequisites of a TDP query: root privileges, the PCI host
bridge config space, /dev/mem, a supported AMD design, and on Intel the
msr kernel module.

With --fix, loads the msr module (requires root). Exits 1 when any
check fails.`,
		Usage: "slimbookctl doctor [flags]",
		Examples: []cli.Example{
			{
				Description: "Check prerequisites",
				Command:     "slimbookctl doctor",
			},
			{
				Description: "Preview repairs",
				Command:     "sudo slimbookctl doctor --fix --dry-run",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.DryRun && !params.Fix {
				return cli.Validation("--dry-run requires --fix")
			}
			cfg, logger, err := params.Load(logger)
			if err != nil {
				return err
			}

			state := checkState{
				config:     cfg,
				cpu:        hwinfo.DetectCPUAt(cfg.Paths.ProcRoot),
				root:       doctor.IsRoot(),
				loadModule: loadModule,
			}
			return run(ctx, params, &state, logger.With("command", "doctor"))
		},
	}
}

// checkState is the host view every check reads from.
type checkState struct {
	config *config.Config
	cpu    hwinfo.CPU
	root   bool

	// loadModule loads a kernel module.
	loadModule func(ctx context.Context, module string) error
}

func run(ctx context.Context, params commandParams, state *checkState, logger *slog.Logger) error {
	results := runChecks(state)

	var outcome doctor.Outcome
	if params.Fix {
		failing := doctor.Failed(results)
		outcome = doctor.ExecuteFixes(ctx, results, params.DryRun, state.root)
		if outcome.FixedCount > 0 {
			logger.Info("fixes applied, re-checking", "fixed", outcome.FixedCount)
			results = runChecks(state)
			doctor.MarkRepaired(results, failing)
		}
	}

	if done, err := params.EmitJSON(doctor.BuildJSON(results, params.DryRun, outcome)); done {
		if err != nil {
			return err
		}
		if len(doctor.Failed(results)) > 0 {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}
	return doctor.PrintChecklist(cli.Stdout, results, params.Fix, params.DryRun, outcome)
}

func runChecks(state *checkState) []doctor.Result {
	return []doctor.Result{
		checkRoot(state),
		checkHostBridge(state),
		checkPhysicalMemory(state),
		checkDesign(state),
		checkMSRModule(state),
	}
}

func checkRoot(state *checkState) doctor.Result {
	if state.root {
		return doctor.Pass("root privileges", "running as root")
	}
	return doctor.Fail("root privileges", fmt.Sprintf("running as uid %d; TDP queries need root", os.Geteuid()))
}

func checkHostBridge(state *checkState) doctor.Result {
	const name = "pci host bridge"
	if state.cpu.Vendor != hwinfo.VendorAMD {
		return doctor.Skip(name, "only used on AMD")
	}
	device := pci.NewDevice(state.config.Paths.SysRoot, pci.HostBridge)
	defer device.Close()

	id, err := device.ReadU32(0)
	if err != nil {
		return doctor.Fail(name, fmt.Sprintf("cannot read %s: %v", device.Path(), err))
	}
	return doctor.Pass(name, fmt.Sprintf("%s vendor %#04x device %#04x", device.Address(), id&0xFFFF, id>>16))
}

func checkPhysicalMemory(state *checkState) doctor.Result {
	const name = "physical memory device"
	if state.cpu.Vendor != hwinfo.VendorAMD {
		return doctor.Skip(name, "only used on AMD")
	}
	path := state.config.Paths.DevMem
	info, err := os.Stat(path)
	if err != nil {
		return doctor.Fail(name, fmt.Sprintf("%s: %v", path, err))
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return doctor.Fail(name, fmt.Sprintf("%s is not a character device", path))
	}
	return doctor.Pass(name, path)
}

func checkDesign(state *checkState) doctor.Result {
	const name = "amd design"
	if state.cpu.Vendor != hwinfo.VendorAMD {
		return doctor.Skip(name, fmt.Sprintf("vendor is %s", state.cpu.Vendor))
	}
	if forced := state.config.TDP.Design; forced != "" {
		design, err := amdsmu.ParseDesign(forced)
		if err != nil {
			return doctor.Fail(name, fmt.Sprintf("tdp.design: %v", err))
		}
		return doctor.Pass(name, fmt.Sprintf("forced to %s by configuration", design))
	}
	design := amdsmu.Classify(state.cpu.Family, state.cpu.Model)
	if design == amdsmu.DesignUnknown {
		return doctor.Fail(name, fmt.Sprintf("family %#x model %#x is not a known design; set tdp.design to override",
			state.cpu.Family, state.cpu.Model))
	}
	if !amdsmu.TableSupported(design) {
		return doctor.Fail(name, fmt.Sprintf("%s has no power table support", design))
	}
	return doctor.Pass(name, design.String())
}

func checkMSRModule(state *checkState) doctor.Result {
	const name = "msr kernel module"
	if state.cpu.Vendor != hwinfo.VendorIntel {
		return doctor.Skip(name, "only used on Intel")
	}
	loaded, err := hwinfo.ModuleLoaded(state.config.Paths.ProcRoot, "msr")
	if err != nil {
		return doctor.Warn(name, fmt.Sprintf("cannot list modules: %v", err))
	}
	if loaded {
		return doctor.Pass(name, "loaded")
	}
	return doctor.FailElevated(name, "msr module not loaded", "modprobe msr",
		func(ctx context.Context) error {
			return state.loadModule(ctx, "msr")
		})
}

func loadModule(ctx context.Context, module string) error {
	output, err := exec.CommandContext(ctx, "modprobe", module).CombinedOutput()
	if err != nil {
		return fmt.Errorf("modprobe %s: %w: %s", module, err, output)
	}
	return nil
}
