// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"io"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Option keys understood by the bundled backends.
const (
	// OptionDocPlugin is the path of the protoc-gen-protodoc executable.
	OptionDocPlugin = "protodoc_plugin"

	// OptionDocTitleFile names the per-package title override document.
	OptionDocTitleFile = "doc_title_file"

	// OptionDocIndexFile names the generated index document.
	OptionDocIndexFile = "doc_index_file"

	// OptionDocMaxDepth is the toctree depth limit.
	OptionDocMaxDepth = "doc_max_depth"

	// OptionMarkerFile names the package marker document.
	OptionMarkerFile = "marker_file"
)

// Config contains the settings a backend needs to build its flags.
type Config struct {
	// OutputDir is the resolved output directory.
	OutputDir string

	// SourceRelative requests import paths relative to the source file.
	// Only honored by backends that support it.
	SourceRelative bool

	// LookPath resolves plugin executables. Defaults to [exec.LookPath].
	LookPath func(file string) (string, error)

	// Options contains backend-specific settings.
	Options map[string]string

	// Log receives warnings about unresolved plugins. May be nil.
	Log logrus.FieldLogger
}

// Option returns a backend-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}

// Logger returns c.Log, or a logger that discards everything.
func (c Config) Logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return discard
}

// ResolvePlugin locates an executable on the search path. When it cannot
// be found the bare name is returned so the failure surfaces from protoc.
func (c Config) ResolvePlugin(name string) string {
	look := c.LookPath
	if look == nil {
		look = exec.LookPath
	}
	path, err := look(name)
	if err != nil || path == "" {
		c.Logger().WithField("plugin", name).Warn("plugin not found on PATH")
		return name
	}
	return path
}

var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
