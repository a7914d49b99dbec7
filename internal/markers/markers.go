// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package markers places empty package marker files (such as Python's
// __init__.py) so a generated tree imports as a package hierarchy.
package markers

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/protoall/internal/fstree"
)

// Python is the marker that makes a directory a Python package.
const Python = "__init__.py"

// Dir creates an empty marker named name in dir unless one exists.
// An existing marker is never modified. It reports whether a file was
// created.
func Dir(fs afero.Fs, name, dir string) (bool, error) {
	path := filepath.Join(dir, name)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", path)
	}
	if exists {
		return false, nil
	}
	if err := afero.WriteFile(fs, path, nil, 0o644); err != nil {
		return false, errors.Wrapf(err, "create marker %s", path)
	}
	return true, nil
}

// Tree runs [Dir] for root and every directory below it and returns the
// number of markers created.
func Tree(fs afero.Fs, name, root string) (int, error) {
	created := 0
	for d, err := range fstree.Walk(fs, root) {
		if err != nil {
			return created, err
		}
		ok, err := Dir(fs, name, d.Path)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}
