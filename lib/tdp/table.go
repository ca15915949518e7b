// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tdp

import (
	"fmt"
	"math"
	"strings"
)

// Layout selects which power table fields carry the limits.
type Layout int

const (
	// LayoutFull reads sustained, fast, and slow limits from their own
	// fields.
	LayoutFull Layout = iota

	// LayoutSingle reads the fast-limit field and reports it for all
	// three limits. Some firmware populates only that slot.
	LayoutSingle
)

func (l Layout) String() string {
	if l == LayoutSingle {
		return "single"
	}
	return "full"
}

// ParseLayout parses "full" or "single". The empty string is full.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full":
		return LayoutFull, nil
	case "single":
		return LayoutSingle, nil
	}
	return LayoutFull, fmt.Errorf("unknown table layout %q (want full or single)", name)
}

// Byte offsets of the limit fields in the power table.
const (
	SustainedOffset = 0x0
	FastOffset      = 0x8
	SlowOffset      = 0x10
)

// FloatReader is the part of *physmem.Window a PowerTable reads
// through.
type FloatReader interface {
	Float32At(offset int) (float32, error)
}

// PowerTable names the limit fields of a mapped power table.
type PowerTable struct {
	memory FloatReader
	layout Layout
}

// NewPowerTable returns a view of the table behind memory.
func NewPowerTable(memory FloatReader, layout Layout) PowerTable {
	return PowerTable{memory: memory, layout: layout}
}

// Sustained returns the sustained (STAPM) limit in watts.
func (p PowerTable) Sustained() (float32, error) {
	if p.layout == LayoutSingle {
		return p.field("fast", FastOffset)
	}
	return p.field("sustained", SustainedOffset)
}

// Fast returns the fast (PPT fast) limit in watts.
func (p PowerTable) Fast() (float32, error) {
	return p.field("fast", FastOffset)
}

// Slow returns the slow (PPT slow) limit in watts.
func (p PowerTable) Slow() (float32, error) {
	if p.layout == LayoutSingle {
		return p.field("fast", FastOffset)
	}
	return p.field("slow", SlowOffset)
}

// Reading reads all limits and converts them to whole watts.
func (p PowerTable) Reading() (Reading, error) {
	if p.layout == LayoutSingle {
		value, err := p.Fast()
		if err != nil {
			return Reading{}, err
		}
		watts := Watts(value)
		return Reading{Sustained: watts, Fast: watts, Slow: watts}, nil
	}
	sustained, err := p.Sustained()
	if err != nil {
		return Reading{}, err
	}
	fast, err := p.Fast()
	if err != nil {
		return Reading{}, err
	}
	slow, err := p.Slow()
	if err != nil {
		return Reading{}, err
	}
	return Reading{Sustained: Watts(sustained), Fast: Watts(fast), Slow: Watts(slow)}, nil
}

func (p PowerTable) field(name string, offset int) (float32, error) {
	value, err := p.memory.Float32At(offset)
	if err != nil {
		return 0, fmt.Errorf("reading %s limit at %#x: %w", name, offset, err)
	}
	return value, nil
}

// Watts truncates a limit to whole watts. NaN and negative values give
// 0; values past 255 give 255.
func Watts(value float32) uint8 {
	switch {
	case math.IsNaN(float64(value)), value <= 0:
		return 0
	case value >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(value)
}
