// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor implements "slimbookctl doctor", which checks the host
// access a TDP query needs: root privileges, a readable host bridge
// config space, /dev/mem, a supported AMD design, and on Intel the msr
// kernel module. With --fix it loads the msr module.
package doctor
