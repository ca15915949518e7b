// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdsmu

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/slimbook/lib/suggest"
)

// Design identifies an AMD silicon design (microarchitecture codename).
// The zero value is DesignUnknown.
type Design int

const (
	DesignUnknown Design = iota

	// Family 0x17 (Zen, Zen+, Zen 2).
	DesignRaven
	DesignPicasso
	DesignDali
	DesignStarship
	DesignRenoir
	DesignLucienne
	DesignMatisse
	DesignVanGogh
	DesignMero
	DesignMendocino

	// Family 0x19 (Zen 3, Zen 4).
	DesignMilan
	DesignChagall
	DesignVermeer
	DesignBadami
	DesignRembrandt
	DesignCezanne
	DesignStormPeak
	DesignRaphael
	DesignPhoenix
	DesignPhoenix2
	DesignGenoa

	// Family 0x1A (Zen 5).
	DesignTurin
	DesignTurinDense
	DesignStrixPoint1
	DesignStrixPoint2
	DesignStrixHalo
	DesignGraniteRidge
	DesignFireRange
	DesignKrackanPoint1
	DesignSarlak

	designCount
)

var designNames = [designCount]string{
	DesignUnknown:       "unknown",
	DesignRaven:         "raven",
	DesignPicasso:       "picasso",
	DesignDali:          "dali",
	DesignStarship:      "starship",
	DesignRenoir:        "renoir",
	DesignLucienne:      "lucienne",
	DesignMatisse:       "matisse",
	DesignVanGogh:       "van-gogh",
	DesignMero:          "mero",
	DesignMendocino:     "mendocino",
	DesignMilan:         "milan",
	DesignChagall:       "chagall",
	DesignVermeer:       "vermeer",
	DesignBadami:        "badami",
	DesignRembrandt:     "rembrandt",
	DesignCezanne:       "cezanne",
	DesignStormPeak:     "storm-peak",
	DesignRaphael:       "raphael",
	DesignPhoenix:       "phoenix",
	DesignPhoenix2:      "phoenix-2",
	DesignGenoa:         "genoa",
	DesignTurin:         "turin",
	DesignTurinDense:    "turin-dense",
	DesignStrixPoint1:   "strix-point-1",
	DesignStrixPoint2:   "strix-point-2",
	DesignStrixHalo:     "strix-halo",
	DesignGraniteRidge:  "granite-ridge",
	DesignFireRange:     "fire-range",
	DesignKrackanPoint1: "krackan-point-1",
	DesignSarlak:        "sarlak",
}

// String returns the lowercase, hyphenated codename.
func (d Design) String() string {
	if !d.Valid() {
		return fmt.Sprintf("design(%d)", int(d))
	}
	return designNames[d]
}

// MarshalText encodes the design as its codename.
func (d Design) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a codename. "unknown" decodes to DesignUnknown.
func (d *Design) UnmarshalText(text []byte) error {
	if string(text) == designNames[DesignUnknown] {
		*d = DesignUnknown
		return nil
	}
	design, err := ParseDesign(string(text))
	if err != nil {
		return err
	}
	*d = design
	return nil
}

// Valid reports whether d is one of the declared designs, including
// DesignUnknown.
func (d Design) Valid() bool {
	return d >= DesignUnknown && d < designCount
}

// Designs returns every known design except DesignUnknown, in
// declaration order.
func Designs() []Design {
	designs := make([]Design, 0, designCount-1)
	for d := DesignUnknown + 1; d < designCount; d++ {
		designs = append(designs, d)
	}
	return designs
}

// DesignNames returns the codename of every design in Designs, for help
// text and error messages.
func DesignNames() []string {
	designs := Designs()
	names := make([]string, len(designs))
	for i, design := range designs {
		names[i] = design.String()
	}
	return names
}

// ParseDesign returns the design whose codename matches name, ignoring
// case and treating spaces and underscores like hyphens. The error for
// an unrecognized name suggests the closest codename and lists the
// valid ones.
func ParseDesign(name string) (Design, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	for _, design := range Designs() {
		if designNames[design] == normalized {
			return design, nil
		}
	}

	names := DesignNames()
	if closest := suggest.Closest(normalized, names); closest != "" {
		return DesignUnknown, fmt.Errorf("unknown AMD design %q (did you mean %q?); valid designs: %s",
			name, closest, strings.Join(names, ", "))
	}
	return DesignUnknown, fmt.Errorf("unknown AMD design %q; valid designs: %s", name, strings.Join(names, ", "))
}

// Classify maps a decoded CPUID family and model to a Design. Families
// and models outside the known tables yield DesignUnknown.
func Classify(family, model uint32) Design {
	switch family {
	case 0x17:
		return classifyFamily17(model)
	case 0x19:
		return classifyFamily19(model)
	case 0x1A:
		return classifyFamily1A(model)
	}
	return DesignUnknown
}

func classifyFamily17(model uint32) Design {
	switch model {
	case 0x11:
		return DesignRaven
	case 0x18:
		return DesignPicasso
	case 0x20:
		return DesignDali
	case 0x31:
		return DesignStarship
	case 0x60:
		return DesignRenoir
	case 0x68:
		return DesignLucienne
	case 0x71:
		return DesignMatisse
	case 0x90:
		return DesignVanGogh
	case 0x98:
		return DesignMero
	case 0xA0:
		return DesignMendocino
	}
	// 0x47 and 0x87 exist in the wild but have no known design.
	return DesignUnknown
}

func classifyFamily19(model uint32) Design {
	switch {
	case model == 0x01:
		return DesignMilan
	case model == 0x08:
		return DesignChagall
	case model >= 0x10 && model <= 0x1F:
		return DesignStormPeak
	case model >= 0x20 && model <= 0x2F:
		return DesignVermeer
	case model >= 0x30 && model <= 0x3F:
		return DesignBadami
	case model >= 0x40 && model <= 0x4F:
		return DesignRembrandt
	case model >= 0x50 && model <= 0x5F:
		return DesignCezanne
	case model >= 0x60 && model <= 0x6F:
		return DesignRaphael
	case model >= 0x70 && model <= 0x77:
		return DesignPhoenix
	case model >= 0x78 && model <= 0x7F:
		return DesignPhoenix2
	case model >= 0xA0 && model <= 0xAF:
		return DesignGenoa
	}
	return DesignUnknown
}

func classifyFamily1A(model uint32) Design {
	switch {
	case model <= 0x0F:
		return DesignTurin
	case model >= 0x10 && model <= 0x1F:
		return DesignTurinDense
	case model >= 0x20 && model <= 0x2F:
		return DesignStrixPoint1
	case model >= 0x30 && model <= 0x37:
		return DesignStrixPoint2
	case model >= 0x38 && model <= 0x3F:
		return DesignStrixHalo
	case model >= 0x40 && model <= 0x4F:
		return DesignGraniteRidge
	case model >= 0x50 && model <= 0x5F:
		return DesignFireRange
	case model >= 0x60 && model <= 0x6F:
		return DesignKrackanPoint1
	case model >= 0x70 && model <= 0x77:
		return DesignSarlak
	}
	return DesignUnknown
}
