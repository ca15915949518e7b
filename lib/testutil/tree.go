// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree is a synthetic filesystem rooted in a test temp directory.
type Tree struct {
	t    testing.TB
	Root string
}

// NewTree creates an empty Tree. The directory is removed when the
// test completes.
func NewTree(t testing.TB) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Path joins relative onto the tree root.
func (tree *Tree) Path(relative string) string {
	return filepath.Join(tree.Root, relative)
}

// WriteFile writes content to relative, creating parent directories.
func (tree *Tree) WriteFile(relative, content string) string {
	tree.t.Helper()
	return tree.WriteBytes(relative, []byte(content))
}

// WriteBytes writes data to relative, creating parent directories.
func (tree *Tree) WriteBytes(relative string, data []byte) string {
	tree.t.Helper()
	path := tree.Path(relative)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tree.t.Fatalf("creating directory for %s: %v", relative, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tree.t.Fatalf("writing %s: %v", relative, err)
	}
	return path
}

// Mkdir creates relative and its parents.
func (tree *Tree) Mkdir(relative string) string {
	tree.t.Helper()
	path := tree.Path(relative)
	if err := os.MkdirAll(path, 0o755); err != nil {
		tree.t.Fatalf("creating directory %s: %v", relative, err)
	}
	return path
}

// ReadBytes returns the content of relative.
func (tree *Tree) ReadBytes(relative string) []byte {
	tree.t.Helper()
	data, err := os.ReadFile(tree.Path(relative))
	if err != nil {
		tree.t.Fatalf("reading %s: %v", relative, err)
	}
	return data
}
