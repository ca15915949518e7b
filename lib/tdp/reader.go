// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/msr"
	"github.com/bureau-foundation/slimbook/lib/pci"
	"github.com/bureau-foundation/slimbook/lib/physmem"
)

// queryMu serializes queries across every Reader in the process.
var queryMu sync.Mutex

// Options configures a Reader. Zero fields take production defaults.
type Options struct {
	// SysRoot is the sysfs mount point. Default "/sys".
	SysRoot string

	// Identify reports the boot CPU. Default hwinfo.DetectCPU.
	Identify func() hwinfo.CPU

	// Design forces the AMD design instead of deriving it from
	// Identify. DesignUnknown means detect.
	Design amdsmu.Design

	// OpenBus returns the PCI host bridge the SMU mailbox is reached
	// through. Default is the sysfs config file of 0000:00:00.0 under
	// SysRoot.
	OpenBus func() (amdsmu.Bus, error)

	// Mapper maps the power table. Default maps /dev/mem.
	Mapper *physmem.Mapper

	// MSRPath is the msr device used when powercap has no limit.
	// Default /dev/cpu/0/msr.
	MSRPath string

	Layout Layout

	// SMU carries the mailbox timing. Its Logger defaults to Logger.
	SMU amdsmu.Options

	Logger *slog.Logger
}

// Reader queries power limits.
type Reader struct {
	sysRoot  string
	identify func() hwinfo.CPU
	design   amdsmu.Design
	openBus  func() (amdsmu.Bus, error)
	mapper   *physmem.Mapper
	msrPath  string
	layout   Layout
	smu      amdsmu.Options
	logger   *slog.Logger
}

// NewReader returns a Reader with options applied over the defaults.
func NewReader(options Options) *Reader {
	reader := &Reader{
		sysRoot:  options.SysRoot,
		identify: options.Identify,
		design:   options.Design,
		openBus:  options.OpenBus,
		mapper:   options.Mapper,
		msrPath:  options.MSRPath,
		layout:   options.Layout,
		smu:      options.SMU,
		logger:   options.Logger,
	}
	if reader.sysRoot == "" {
		reader.sysRoot = "/sys"
	}
	if reader.identify == nil {
		reader.identify = hwinfo.DetectCPU
	}
	if reader.openBus == nil {
		sysRoot := reader.sysRoot
		reader.openBus = func() (amdsmu.Bus, error) {
			return pci.NewDevice(sysRoot, pci.HostBridge), nil
		}
	}
	if reader.mapper == nil {
		reader.mapper = physmem.NewMapper(physmem.DevMem)
	}
	if reader.msrPath == "" {
		reader.msrPath = msr.DevicePath(0)
	}
	if reader.logger == nil {
		reader.logger = slog.New(slog.DiscardHandler)
	}
	if reader.smu.Logger == nil {
		reader.smu.Logger = reader.logger
	}
	return reader
}

// Read returns the current power limits. Unsupported hardware yields a
// zero Reading and a nil error. Failures are *QueryError.
func (r *Reader) Read(ctx context.Context) (Reading, error) {
	queryMu.Lock()
	defer queryMu.Unlock()

	design := r.design
	if design == amdsmu.DesignUnknown {
		cpu := r.identify()
		switch cpu.Vendor {
		case hwinfo.VendorIntel:
			return r.readIntel()
		case hwinfo.VendorAMD:
			design = amdsmu.Classify(cpu.Family, cpu.Model)
		default:
			r.logger.Debug("cpu vendor not recognized", "model_name", cpu.ModelName)
			return Reading{}, nil
		}
		r.logger.Debug("classified cpu",
			"family", fmt.Sprintf("%#x", cpu.Family),
			"model", fmt.Sprintf("%#x", cpu.Model),
			"design", design.String(),
		)
	}
	return r.readAMD(ctx, design)
}

func (r *Reader) readAMD(ctx context.Context, design amdsmu.Design) (Reading, error) {
	if !amdsmu.TableSupported(design) {
		r.logger.Debug("no power table protocol for design", "design", design.String())
		return Reading{}, nil
	}

	bus, err := r.openBus()
	if err != nil {
		return Reading{}, newQueryError(StageDesignKnown, fmt.Errorf("opening PCI host bridge: %w", err))
	}
	smu := amdsmu.New(bus, r.smu)
	defer r.release("PCI host bridge", smu.Close)

	address, err := smu.RequestTableAddress(ctx, design)
	if err != nil {
		return Reading{}, newQueryError(StageDesignKnown, err)
	}
	if notApplicable(address) {
		r.logger.Debug("power table not applicable", "design", design.String(), "address", fmt.Sprintf("%#x", address))
		return Reading{}, nil
	}

	window, err := r.mapper.Map(address)
	if err != nil {
		return Reading{}, newQueryError(StageAddressObtained, err)
	}
	defer r.release("power table mapping", window.Close)

	if err := smu.RefreshTable(ctx, design); err != nil {
		return Reading{}, newQueryError(StageTableMapped, err)
	}

	reading, err := NewPowerTable(window, r.layout).Reading()
	if err != nil {
		return Reading{}, newQueryError(StageTableRefreshed, err)
	}
	reading.Vendor = hwinfo.VendorAMD

	r.logger.Debug("read power table",
		"design", design.String(),
		"address", fmt.Sprintf("%#x", address),
		"layout", r.layout.String(),
		"stage", StageValuesRead.String(),
	)
	return reading, nil
}

// release runs a deferred close. A close failure is logged rather than
// returned: the values, if any, were already read.
func (r *Reader) release(what string, closeFunc func() error) {
	if err := closeFunc(); err != nil {
		r.logger.Warn("releasing "+what, "error", err, "stage", StageCleaned.String())
	}
}

// notApplicable reports the addresses firmware uses to say the table
// does not exist on this part.
func notApplicable(address uint64) bool {
	return address == 0 || address == math.MaxUint32 || address == math.MaxUint64
}
