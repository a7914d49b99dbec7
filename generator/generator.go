// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the contract between the invocation planner
// and the per-language protoc backends.
package generator

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Generator is the interface that all language backends must implement.
type Generator interface {
	// Metadata returns information about this backend.
	Metadata() Metadata

	// Flags returns the primary output flags passed to protoc for this
	// language, in order. The proto files and include flags are added by
	// the planner.
	Flags(cfg Config) []string
}

// PostProcessor is implemented by backends that repair the output tree
// after the primary protoc invocation succeeded.
type PostProcessor interface {
	PostProcess(ctx context.Context, tree Tree) error
}

// Metadata describes a backend.
type Metadata struct {
	// Name is the language identifier accepted on the command line
	// (e.g., "go", "python", "protodoc").
	Name string

	// Description is a human-readable description.
	Description string

	// Gateway reports whether grpc-gateway and swagger output may be
	// generated alongside this language.
	Gateway bool
}

// Tree describes the generated output for post-processing.
type Tree struct {
	// Fs is the filesystem the output was written to.
	Fs afero.Fs

	// OutputDir is the resolved output directory for the language.
	OutputDir string

	// OutputRoot is the ancestor directory shared by every language's
	// output directory.
	OutputRoot string

	// SourceRoot is the proto source tree the output was generated from.
	SourceRoot string

	// Options contains backend-specific settings.
	Options map[string]string

	// Log receives progress messages. May be nil.
	Log logrus.FieldLogger
}

// Option returns a backend-specific option with default.
func (t Tree) Option(key, defaultValue string) string {
	if v, ok := t.Options[key]; ok {
		return v
	}
	return defaultValue
}

// Logger returns t.Log, or a logger that discards everything.
func (t Tree) Logger() logrus.FieldLogger {
	if t.Log != nil {
		return t.Log
	}
	return discard
}
