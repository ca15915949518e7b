// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
	"github.com/bureau-foundation/slimbook/lib/amdsmu"
	"github.com/bureau-foundation/slimbook/lib/config"
	"github.com/bureau-foundation/slimbook/lib/hwinfo"
	"github.com/bureau-foundation/slimbook/lib/tdp"
)

var discard = slog.New(slog.DiscardHandler)

func TestReaderOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SysRoot = "/tmp/sys"
	cfg.Paths.DevMem = "/tmp/mem"
	cfg.Paths.MSRDevice = "/tmp/msr"
	cfg.SMU.Timeout = 5 * time.Second
	cfg.TDP.Layout = "single"
	cfg.TDP.Design = "cezanne"

	options, err := readerOptions(commandParams{}, cfg, discard)
	if err != nil {
		t.Fatalf("readerOptions: %v", err)
	}
	if options.SysRoot != "/tmp/sys" || options.MSRPath != "/tmp/msr" {
		t.Errorf("paths = %q, %q", options.SysRoot, options.MSRPath)
	}
	if options.Mapper.Path() != "/tmp/mem" {
		t.Errorf("Mapper.Path() = %q, want /tmp/mem", options.Mapper.Path())
	}
	if options.Layout != tdp.LayoutSingle {
		t.Errorf("Layout = %v, want single", options.Layout)
	}
	if options.Design != amdsmu.DesignCezanne {
		t.Errorf("Design = %v, want cezanne", options.Design)
	}
	if options.SMU.Timeout != 5*time.Second || options.SMU.PollInterval != cfg.SMU.PollInterval {
		t.Errorf("SMU = %+v", options.SMU)
	}
}

func TestReaderOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TDP.Design = "cezanne"

	options, err := readerOptions(commandParams{Design: "Phoenix", Layout: "single"}, cfg, discard)
	if err != nil {
		t.Fatalf("readerOptions: %v", err)
	}
	if options.Design != amdsmu.DesignPhoenix {
		t.Errorf("Design = %v, want phoenix", options.Design)
	}
	if options.Layout != tdp.LayoutSingle {
		t.Errorf("Layout = %v, want single", options.Layout)
	}
}

func TestReaderOptionsDetectsByDefault(t *testing.T) {
	cfg := config.Default()

	options, err := readerOptions(commandParams{}, cfg, discard)
	if err != nil {
		t.Fatalf("readerOptions: %v", err)
	}
	if options.Design != amdsmu.DesignUnknown {
		t.Errorf("Design = %v, want detection", options.Design)
	}
	if options.Identify == nil {
		t.Error("Identify not set")
	}
}

func TestReaderOptionsRejectsBadNames(t *testing.T) {
	tests := []struct {
		name   string
		params commandParams
	}{
		{"design", commandParams{Design: "bulldozer"}},
		{"layout", commandParams{Layout: "triple"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := readerOptions(test.params, config.Default(), discard)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestReaderOptionsSuggestsDesign(t *testing.T) {
	_, err := readerOptions(commandParams{Design: "rembrant"}, config.Default(), discard)
	if err == nil {
		t.Fatal("readerOptions accepted a misspelled design")
	}
	if !strings.Contains(err.Error(), `did you mean "rembrandt"?`) {
		t.Errorf("error = %v, want a rembrandt suggestion", err)
	}
}

func TestDescriptionListsDesigns(t *testing.T) {
	description := Command().Description
	for _, name := range amdsmu.DesignNames() {
		if !strings.Contains(description, name) {
			t.Errorf("description does not list design %q", name)
		}
	}
}

func TestPrintReading(t *testing.T) {
	var buffer bytes.Buffer
	reading := tdp.Reading{Vendor: hwinfo.VendorAMD, Sustained: 15, Fast: 30, Slow: 25}
	if err := printReading(&buffer, reading); err != nil {
		t.Fatalf("printReading: %v", err)
	}
	want := "vendor     amd\nsustained  15 W\nfast       30 W\nslow       25 W\n"
	if buffer.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buffer.String(), want)
	}
}

func TestCommandRejectsBothEncodings(t *testing.T) {
	err := Command().Execute(t.Context(), []string{"--json", "--cbor"})
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutually exclusive", err)
	}
}
