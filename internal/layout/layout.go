// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package layout resolves where generated code for a language is written.
package layout

import "path/filepath"

// Python is the one language whose output directory uses an underscore,
// since hyphenated directories cannot be imported as Python packages.
const Python = "python"

// Resolve returns the output directory for language under root:
// root/<prefix>_python for Python and root/<prefix>-<language> otherwise.
func Resolve(root, prefix, language string) string {
	return filepath.Join(root, DirName(prefix, language))
}

// DirName returns the final path element of the output directory.
func DirName(prefix, language string) string {
	if language == Python {
		return prefix + "_" + language
	}
	return prefix + "-" + language
}
