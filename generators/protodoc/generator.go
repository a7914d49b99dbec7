// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package protodoc is the documentation backend. It runs the external
// protoc-gen-protodoc plugin and then writes a reStructuredText index
// into every directory of the output.
package protodoc

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/internal/docindex"
)

// DefaultPlugin is where the protodoc plugin is usually installed.
const DefaultPlugin = "/usr/local/bin/protodoc.py"

// DocGenerator implements [generator.Generator] and [generator.PostProcessor].
type DocGenerator struct{}

// NewGenerator creates a new documentation backend.
func NewGenerator() *DocGenerator {
	return &DocGenerator{}
}

// Metadata returns information about this backend.
func (g *DocGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        "protodoc",
		Description: "reStructuredText documentation (protoc-gen-protodoc) with a generated toctree",
	}
}

// Flags registers the plugin and directs its output.
func (g *DocGenerator) Flags(cfg generator.Config) []string {
	return []string{
		"--plugin=protoc-gen-protodoc=" + cfg.Option(generator.OptionDocPlugin, DefaultPlugin),
		"--protodoc_out=" + cfg.OutputDir,
	}
}

// PostProcess writes the index documents.
func (g *DocGenerator) PostProcess(ctx context.Context, tree generator.Tree) error {
	depth := docindex.DefaultMaxDepth
	if v := tree.Option(generator.OptionDocMaxDepth, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", generator.OptionDocMaxDepth, v)
		}
		depth = n
	}

	b := &docindex.Builder{
		Fs:         tree.Fs,
		OutputDir:  tree.OutputDir,
		SourceRoot: tree.SourceRoot,
		IndexFile:  tree.Option(generator.OptionDocIndexFile, docindex.DefaultIndexFile),
		TitleFile:  tree.Option(generator.OptionDocTitleFile, docindex.DefaultTitleFile),
		MaxDepth:   depth,
		Log:        tree.Logger(),
	}
	written, err := b.Build(ctx)
	if err != nil {
		return errors.Wrap(err, "build documentation index")
	}
	tree.Logger().WithFields(logrus.Fields{
		"dir":     tree.OutputDir,
		"indexes": written,
	}).Debug("documentation index written")
	return nil
}
