// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "tdp"}, {Name: "cpu"}, {Name: "doctor"}, {Name: "version"}}

	tests := map[string]string{
		"docter":              "doctor",
		"verison":             "version",
		"tpd":                 "tdp",
		"firmware-table-dump": "",
	}
	for input, want := range tests {
		if got := suggestCommand(input, commands); got != want {
			t.Errorf("suggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("doctor", pflag.ContinueOnError)
		flagSet.Bool("fix", false, "")
		flagSet.Bool("dry-run", false, "")
		flagSet.String("config", "", "")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--dryrun"}, "--dry-run"},
		{[]string{"--fix", "--confg=/etc/slimbook.yaml"}, "--config"},
		{[]string{"--completely-unrelated"}, ""},
		{[]string{"--", "--fxi"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, newFlags()); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
