// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/slimbook/lib/hwinfo"
)

type sampleReading struct {
	Vendor    hwinfo.Vendor `json:"vendor"`
	Sustained uint8         `json:"sustained"`
	Fast      uint8         `json:"fast"`
	Slow      uint8         `json:"slow"`
	Note      string        `json:"note,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleReading{Vendor: hwinfo.VendorAMD, Sustained: 15, Fast: 30, Slow: 25}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleReading
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"slow": 25, "fast": 30, "sustained": 15, "vendor": "amd"}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestTextMarshalerEncodesAsString(t *testing.T) {
	data, err := Marshal(sampleReading{Vendor: hwinfo.VendorIntel, Sustained: 28})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := cbor.Diagnose(data)
	if err != nil {
		t.Fatalf("cbor.Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"intel"`) {
		t.Errorf("vendor not encoded by name: %s", notation)
	}
	if strings.Contains(notation, "note") {
		t.Errorf("omitempty field present: %s", notation)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	readings := []sampleReading{
		{Vendor: hwinfo.VendorAMD, Sustained: 15, Fast: 30, Slow: 25},
		{Vendor: hwinfo.VendorIntel, Sustained: 28},
		{},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, reading := range readings {
		if err := encoder.Encode(reading); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	// Same options Unmarshal uses.
	decoder := decMode.NewDecoder(&buffer)
	for i, want := range readings {
		var got sampleReading
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode item %d: %v", i, err)
		}
		if got != want {
			t.Errorf("item %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(sampleReading{Vendor: hwinfo.VendorAMD, Fast: 30})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if fields["vendor"] != "amd" {
		t.Errorf("vendor = %v, want amd", fields["vendor"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var reading sampleReading
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &reading); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}
