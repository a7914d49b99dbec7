// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package include assembles the -I flags passed to protoc.
package include

import "github.com/albertocavalcante/protoall/internal/collect"

// CurrentDir is the include prepended in single-file mode so the file's
// own directory resolves.
const CurrentDir = "."

// DefaultPaths are the system include roots searched before any extras.
var DefaultPaths = []string{"/usr/local/include", "/opt/include"}

// Flag formats one include flag.
func Flag(path string) string {
	return "-I=" + path
}

// Assemble returns the include flags: defaults, then extras in order. In
// single-file mode the current directory is prepended; in directory mode
// the search directory is appended after everything else. The two modes
// differ on purpose, as it changes import resolution precedence.
func Assemble(defaults, extras []string, in collect.Input) []string {
	flags := make([]string, 0, len(defaults)+len(extras)+1)
	if in.SingleFile() {
		flags = append(flags, Flag(CurrentDir))
	}
	for _, p := range defaults {
		flags = append(flags, Flag(p))
	}
	for _, p := range extras {
		flags = append(flags, Flag(p))
	}
	if !in.SingleFile() {
		flags = append(flags, Flag(in.Directory))
	}
	return flags
}
