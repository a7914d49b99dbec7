// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package python is the Python backend. After generation it marks every
// output directory as a package so the tree is importable.
package python

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/generators/native"
	"github.com/albertocavalcante/protoall/internal/markers"
)

// PyGenerator implements [generator.Generator] and [generator.PostProcessor].
type PyGenerator struct{}

// NewGenerator creates a new Python backend.
func NewGenerator() *PyGenerator {
	return &PyGenerator{}
}

// Metadata returns information about this backend.
func (g *PyGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        "python",
		Description: "Python messages and gRPC stubs (grpc_python_plugin)",
	}
}

// Flags returns --python_out and the gRPC plugin flags.
func (g *PyGenerator) Flags(cfg generator.Config) []string {
	flags := []string{"--python_out=" + cfg.OutputDir}
	return append(flags, native.StubFlags("python", cfg)...)
}

// PostProcess creates an empty marker in every directory of the output
// tree and in the shared output root. Existing markers are kept.
func (g *PyGenerator) PostProcess(ctx context.Context, tree generator.Tree) error {
	name := tree.Option(generator.OptionMarkerFile, markers.Python)

	created, err := markers.Tree(tree.Fs, name, tree.OutputDir)
	if err != nil {
		return err
	}
	if tree.OutputRoot != "" {
		ok, err := markers.Dir(tree.Fs, name, tree.OutputRoot)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}

	tree.Logger().WithFields(logrus.Fields{
		"dir":     tree.OutputDir,
		"created": created,
	}).Debug("package markers in place")
	return nil
}
