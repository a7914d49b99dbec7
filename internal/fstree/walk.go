// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fstree provides a top-down directory traversal over an afero
// filesystem, yielding one record per directory.
package fstree

import (
	"iter"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Dir is a single directory visited by [Walk].
type Dir struct {
	// Path is the directory path, joined from the walk root.
	Path string

	// Dirs holds the names of immediate subdirectories.
	Dirs []string

	// Files holds the names of immediate non-directory entries.
	Files []string
}

// Walk returns a lazy pre-order traversal of root and every directory
// below it. A directory is yielded before its children, and children are
// visited in the order afero.ReadDir reports them (lexical).
//
// The sequence may be ranged over any number of times; each range starts a
// fresh traversal from root. A read error is yielded once and ends the
// traversal.
func Walk(fs afero.Fs, root string) iter.Seq2[Dir, error] {
	return func(yield func(Dir, error) bool) {
		walk(fs, root, yield)
	}
}

// walk returns false when the consumer stopped or an error was yielded.
func walk(fs afero.Fs, path string, yield func(Dir, error) bool) bool {
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		yield(Dir{Path: path}, errors.Wrapf(err, "read dir %s", path))
		return false
	}

	d := Dir{Path: path}
	for _, e := range entries {
		if e.IsDir() {
			d.Dirs = append(d.Dirs, e.Name())
		} else {
			d.Files = append(d.Files, e.Name())
		}
	}
	if !yield(d, nil) {
		return false
	}

	for _, name := range d.Dirs {
		if !walk(fs, filepath.Join(path, name), yield) {
			return false
		}
	}
	return true
}

// Paths collects every directory path below and including root.
func Paths(fs afero.Fs, root string) ([]string, error) {
	var paths []string
	for d, err := range Walk(fs, root) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, d.Path)
	}
	return paths, nil
}
