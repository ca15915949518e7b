// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pci reads and writes PCI configuration space through the
// sysfs tree (/sys/bus/pci/devices/DDDD:BB:DD.F/config).
//
// A [Device] opens its config file lazily: read-only on the first
// read, read-write on the first write. Accesses must be aligned to
// their width; misaligned accesses fail with [ErrMisaligned] before
// any I/O. Multi-byte writes are converted to little-endian (the
// configuration space byte order) while reads return the bytes
// interpreted in host order, unswapped.
//
// [IndirectRead] and [IndirectWrite] implement the address/data
// register pair at offsets 0xB8/0xBC that AMD host bridges expose for
// reaching the SMN (system management network) register space.
package pci
