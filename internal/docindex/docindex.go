// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package docindex writes a reStructuredText index into every directory
// of a generated documentation tree, forming a hierarchical table of
// contents.
//
// Each index starts with a title block. The title is copied verbatim from
// an optional override document found at the matching path of the proto
// source tree; otherwise it is the directory name underlined with "=".
// The title is followed by a toctree listing child directories, then the
// documents of the directory, each group sorted lexicographically.
//
// For example, given the source override
//
//	protos/flyteidl/title.rst
//
// the index for gen/pb-protodoc/flyteidl starts with the contents of that
// file instead of
//
//	flyteidl
//	========
package docindex

import (
	"bytes"
	"context"
	"embed"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/protoall/internal/fstree"
)

const (
	// DefaultIndexFile is the generated index document.
	DefaultIndexFile = "index.rst"

	// DefaultTitleFile is the author supplied title override.
	DefaultTitleFile = "title.rst"

	// DefaultMaxDepth is the toctree depth limit.
	DefaultMaxDepth = 1
)

//go:embed templates/*.tmpl
var templates embed.FS

var indexTemplate = template.Must(
	template.New("docindex").Funcs(sprig.TxtFuncMap()).ParseFS(templates, "templates/*.tmpl"),
)

// Node is one directory of the documentation tree.
type Node struct {
	// Name is the directory base name.
	Name string

	// Override is the verbatim title block when HasOverride is set.
	Override    string
	HasOverride bool

	// Dirs are the immediate child directories.
	Dirs []string

	// Docs are the immediate documents, without extension, excluding the
	// index itself.
	Docs []string

	MaxDepth int
}

// Width is the underline length of the synthesized title.
func (n Node) Width() int {
	return utf8.RuneCountInString(n.Name)
}

// Render returns the index document for n. Dirs and Docs are sorted
// first, so the result does not depend on directory enumeration order.
func Render(n Node) ([]byte, error) {
	n.Dirs = slices.Sorted(slices.Values(n.Dirs))
	n.Docs = slices.Sorted(slices.Values(n.Docs))
	if n.MaxDepth <= 0 {
		n.MaxDepth = DefaultMaxDepth
	}

	var buf bytes.Buffer
	if err := indexTemplate.ExecuteTemplate(&buf, "index", n); err != nil {
		return nil, errors.Wrap(err, "render index")
	}
	return buf.Bytes(), nil
}

// Builder writes the index documents.
type Builder struct {
	// Fs holds both the output and the source tree.
	Fs afero.Fs

	// OutputDir is the root of the generated documentation.
	OutputDir string

	// SourceRoot is the proto source tree searched for title overrides.
	SourceRoot string

	// IndexFile and TitleFile default to DefaultIndexFile and DefaultTitleFile.
	IndexFile string
	TitleFile string

	// MaxDepth defaults to DefaultMaxDepth.
	MaxDepth int

	// Log receives a message for every adopted title override. May be nil.
	Log logrus.FieldLogger
}

// Build writes one index document into every directory of the output
// tree and returns how many were written. Existing index documents are
// replaced; rerunning with unchanged inputs produces identical files.
func (b *Builder) Build(ctx context.Context) (int, error) {
	written := 0
	for d, err := range fstree.Walk(b.Fs, b.OutputDir) {
		if err != nil {
			return written, err
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := b.writeIndex(d); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (b *Builder) writeIndex(d fstree.Dir) error {
	indexFile := orDefault(b.IndexFile, DefaultIndexFile)

	n := Node{
		Name:     filepath.Base(d.Path),
		Dirs:     d.Dirs,
		MaxDepth: b.MaxDepth,
	}
	for _, name := range d.Files {
		if name == indexFile {
			continue
		}
		n.Docs = append(n.Docs, stem(name))
	}

	override, ok, err := b.titleOverride(d.Path)
	if err != nil {
		return err
	}
	indexPath := filepath.Join(d.Path, indexFile)
	if ok {
		n.Override, n.HasOverride = override, true
		if b.Log != nil {
			b.Log.WithFields(logrus.Fields{
				"title": filepath.Join(b.packageSource(d.Path), orDefault(b.TitleFile, DefaultTitleFile)),
				"index": indexPath,
			}).Info("using pre-existing title")
		}
	}

	data, err := Render(n)
	if err != nil {
		return errors.Wrapf(err, "index for %s", d.Path)
	}
	if err := afero.WriteFile(b.Fs, indexPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", indexPath)
	}
	return nil
}

// packageSource maps an output directory to the matching source directory.
func (b *Builder) packageSource(dir string) string {
	rel, err := filepath.Rel(b.OutputDir, dir)
	if err != nil {
		rel = "."
	}
	return filepath.Join(b.SourceRoot, rel)
}

func (b *Builder) titleOverride(dir string) (string, bool, error) {
	path := filepath.Join(b.packageSource(dir), orDefault(b.TitleFile, DefaultTitleFile))
	exists, err := afero.Exists(b.Fs, path)
	if err != nil || !exists {
		return "", false, errors.Wrapf(err, "stat %s", path)
	}
	data, err := afero.ReadFile(b.Fs, path)
	if err != nil {
		return "", false, errors.Wrapf(err, "read %s", path)
	}
	return string(data), true, nil
}

// stem strips the extension; a leading dot does not start one.
func stem(name string) string {
	if s := strings.TrimSuffix(name, filepath.Ext(name)); strings.TrimLeft(s, ".") != "" {
		return s
	}
	return name
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
