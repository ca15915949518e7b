// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor provides the check, fix, and report workflow behind
// slimbookctl doctor.
//
// A check produces a [Result] with a status and message. Fixable
// failures carry a fix closure; fixes that need root are marked
// elevated and skipped, with guidance, when the process is not root.
//
//   - Constructors: [Pass], [Fail], [FailWithFix], [FailElevated], [Warn], [Skip]
//   - [ExecuteFixes] runs fix closures with elevation awareness
//   - [MarkRepaired] credits checks that pass after a fix pass
//   - [PrintChecklist] and [BuildJSON] render the results
//
// What to check lives in the doctor command. This package provides
// only the workflow.
package doctor
