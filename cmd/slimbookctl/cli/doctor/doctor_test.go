// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/bureau-foundation/slimbook/cmd/slimbookctl/cli"
)

func noFix(context.Context) error { return nil }

func TestResultConstructors(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		status   Status
		hasFix   bool
		elevated bool
	}{
		{"pass", Pass("check", "ok"), StatusPass, false, false},
		{"fail", Fail("check", "broken"), StatusFail, false, false},
		{"fail with fix", FailWithFix("check", "broken", "repair", noFix), StatusFail, true, false},
		{"fail elevated", FailElevated("check", "broken", "modprobe msr", noFix), StatusFail, true, true},
		{"warn", Warn("check", "odd"), StatusWarn, false, false},
		{"skip", Skip("check", "n/a"), StatusSkip, false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.result.Status != test.status {
				t.Errorf("status = %q, want %q", test.result.Status, test.status)
			}
			if test.result.HasFix() != test.hasFix {
				t.Errorf("HasFix() = %v, want %v", test.result.HasFix(), test.hasFix)
			}
			if test.result.Elevated != test.elevated {
				t.Errorf("Elevated = %v, want %v", test.result.Elevated, test.elevated)
			}
		})
	}
}

func TestExecuteFixes(t *testing.T) {
	ran := map[string]bool{}
	record := func(name string, err error) FixAction {
		return func(context.Context) error {
			ran[name] = true
			return err
		}
	}
	results := []Result{
		Pass("passing", "ok"),
		FailWithFix("fixable", "broken", "repair", record("fixable", nil)),
		FailElevated("elevated", "needs root", "modprobe msr", record("elevated", nil)),
		FailWithFix("denied", "broken", "repair", record("denied", fmt.Errorf("open: %w", syscall.EACCES))),
		FailWithFix("failing", "broken", "repair", record("failing", errors.New("boom"))),
	}

	outcome := ExecuteFixes(context.Background(), results, false, false)

	if outcome.FixedCount != 1 {
		t.Errorf("FixedCount = %d, want 1", outcome.FixedCount)
	}
	if outcome.ElevatedSkipped != 1 {
		t.Errorf("ElevatedSkipped = %d, want 1", outcome.ElevatedSkipped)
	}
	if !outcome.PermissionDenied {
		t.Error("PermissionDenied = false, want true")
	}
	if ran["elevated"] {
		t.Error("elevated fix ran without root")
	}
	if results[1].Status != StatusFixed {
		t.Errorf("fixable status = %q, want fixed", results[1].Status)
	}
	if !strings.Contains(results[3].Message, "insufficient permissions") {
		t.Errorf("denied message = %q", results[3].Message)
	}
	if !strings.Contains(results[4].Message, "fix failed: boom") {
		t.Errorf("failing message = %q", results[4].Message)
	}
}

func TestExecuteFixesAsRoot(t *testing.T) {
	results := []Result{FailElevated("elevated", "needs root", "modprobe msr", noFix)}
	outcome := ExecuteFixes(context.Background(), results, false, true)
	if outcome.FixedCount != 1 || results[0].Status != StatusFixed {
		t.Errorf("outcome = %+v, status = %q; want elevated fix applied", outcome, results[0].Status)
	}
}

func TestExecuteFixesDryRun(t *testing.T) {
	ran := false
	results := []Result{FailWithFix("fixable", "broken", "repair", func(context.Context) error {
		ran = true
		return nil
	})}
	outcome := ExecuteFixes(context.Background(), results, true, true)
	if ran {
		t.Error("dry run executed a fix")
	}
	if outcome != (Outcome{}) {
		t.Errorf("dry run outcome = %+v, want zero", outcome)
	}
}

func TestMarkRepaired(t *testing.T) {
	before := []Result{Pass("a", "ok"), Fail("b", "broken"), Fail("c", "broken")}
	after := []Result{Pass("a", "ok"), Pass("b", "ok"), Fail("c", "broken")}

	MarkRepaired(after, Failed(before))

	want := []Status{StatusPass, StatusFixed, StatusFail}
	for i, result := range after {
		if result.Status != want[i] {
			t.Errorf("%s status = %q, want %q", result.Name, result.Status, want[i])
		}
	}
}

func TestBuildJSON(t *testing.T) {
	output := BuildJSON([]Result{Pass("a", "ok"), Warn("b", "odd")}, true, Outcome{ElevatedSkipped: 2})
	if !output.OK || !output.DryRun || output.ElevatedSkipped != 2 {
		t.Errorf("BuildJSON = %+v", output)
	}

	output = BuildJSON([]Result{Fail("a", "broken")}, false, Outcome{})
	if output.OK {
		t.Error("OK = true with a failing check")
	}
}

func TestPrintChecklistAllPass(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintChecklist(&buffer, []Result{Pass("root privileges", "running as root")}, false, false, Outcome{}); err != nil {
		t.Fatalf("PrintChecklist: %v", err)
	}
	if !strings.Contains(buffer.String(), "[PASS ]  root privileges") {
		t.Errorf("missing pass line:\n%s", buffer.String())
	}
	if !strings.Contains(buffer.String(), "All checks passed.") {
		t.Errorf("missing summary:\n%s", buffer.String())
	}
}

func TestPrintChecklistElevatedGuidance(t *testing.T) {
	var buffer bytes.Buffer
	results := []Result{FailElevated("msr module", "msr not loaded", "modprobe msr", noFix)}

	err := PrintChecklist(&buffer, results, true, false, Outcome{ElevatedSkipped: 1})

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("PrintChecklist error = %v, want exit code 1", err)
	}
	output := buffer.String()
	for _, want := range []string{"[FAIL ]", "1 fix(es) require root", "  - modprobe msr", "sudo slimbookctl doctor --fix"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintChecklistDryRun(t *testing.T) {
	var buffer bytes.Buffer
	results := []Result{FailElevated("msr module", "msr not loaded", "modprobe msr", noFix)}

	_ = PrintChecklist(&buffer, results, true, true, Outcome{})

	output := buffer.String()
	if !strings.Contains(output, "would fix: modprobe msr (requires sudo)") {
		t.Errorf("missing dry-run line:\n%s", output)
	}
	if !strings.Contains(output, "1 issue(s) would be repaired") {
		t.Errorf("missing dry-run summary:\n%s", output)
	}
}
