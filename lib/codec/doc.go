// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides slimbook's CBOR encoding configuration.
//
// Command output has two machine formats: JSON for scripts and CBOR
// for consumers that want a compact, byte-stable record (telemetry
// collectors, fixtures captured from real machines). This package
// holds the CBOR modes so every producer encodes identically. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
//	encoder := codec.NewEncoder(os.Stdout)
//
// Types shared with JSON output carry only `json` tags; fxamacker/cbor
// reads them when `cbor` tags are absent. Never put both tags on one
// field. Types implementing encoding.TextMarshaler (hwinfo.Vendor,
// amdsmu.Design) encode as CBOR text strings.
package codec
