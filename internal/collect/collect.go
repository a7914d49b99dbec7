// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package collect gathers the proto sources handed to protoc.
package collect

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/protoall/internal/fstree"
)

// DefaultExt is the proto source file extension.
const DefaultExt = ".proto"

// Input selects the sources: exactly one of File or Directory is set.
type Input struct {
	// File is a single proto file to compile.
	File string

	// Directory is searched recursively for proto files.
	Directory string
}

// SingleFile reports whether the input names one file.
func (in Input) SingleFile() bool {
	return in.File != ""
}

// Validate checks that exactly one input mode is selected.
func (in Input) Validate() error {
	switch {
	case in.File != "" && in.Directory != "":
		return errors.New("only one of file or directory may be given")
	case in.File == "" && in.Directory == "":
		return errors.New("one of file or directory is required")
	}
	return nil
}

// Sources returns the proto files to compile. A single file is returned
// as is, without checking that it exists. A directory is walked and every
// file ending in ext is returned in walk order; a missing directory
// yields no files, leaving protoc to report the problem.
func Sources(fs afero.Fs, in Input, ext string) ([]string, error) {
	if in.SingleFile() {
		return []string{in.File}, nil
	}
	if ext == "" {
		ext = DefaultExt
	}

	var files []string
	for d, err := range fstree.Walk(fs, in.Directory) {
		if err != nil {
			if d.Path == in.Directory && errors.Is(err, os.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		if len(d.Files) == 0 {
			continue
		}
		for _, name := range d.Files {
			if strings.HasSuffix(name, ext) {
				files = append(files, filepath.Join(d.Path, name))
			}
		}
	}
	return files, nil
}
