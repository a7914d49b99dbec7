// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config holds the tool settings that are not per-run options:
// where protoc and its plugins live and how the output tree is shaped.
package config

import (
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/generators/protodoc"
	"github.com/albertocavalcante/protoall/internal/collect"
	"github.com/albertocavalcante/protoall/internal/docindex"
	"github.com/albertocavalcante/protoall/internal/include"
	"github.com/albertocavalcante/protoall/internal/markers"
)

// Config is the YAML configuration file.
type Config struct {
	// Protoc is the compiler executable.
	Protoc string `yaml:"protoc"`

	// OutputRoot is the directory holding every language's output.
	OutputRoot string `yaml:"output_root"`

	// OutputPrefix starts each language output directory name.
	OutputPrefix string `yaml:"output_prefix"`

	// DefaultIncludes are searched before user includes.
	DefaultIncludes []string `yaml:"default_includes"`

	// ProtodocPlugin is the documentation plugin executable.
	ProtodocPlugin string `yaml:"protodoc_plugin"`

	// GatewayOut and SwaggerOut override the grpc-gateway and swagger
	// output directories. Empty means the language output directory.
	GatewayOut string `yaml:"gateway_out"`
	SwaggerOut string `yaml:"swagger_out"`

	// ProtoExt is the proto source extension.
	ProtoExt string `yaml:"proto_ext"`

	DocTitleFile string `yaml:"doc_title_file"`
	DocIndexFile string `yaml:"doc_index_file"`
	DocMaxDepth  int    `yaml:"doc_max_depth"`

	// MarkerFile is the package marker written for Python.
	MarkerFile string `yaml:"marker_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Protoc:          "protoc",
		OutputRoot:      "gen",
		OutputPrefix:    "pb",
		DefaultIncludes: append([]string(nil), include.DefaultPaths...),
		ProtodocPlugin:  protodoc.DefaultPlugin,
		ProtoExt:        collect.DefaultExt,
		DocTitleFile:    docindex.DefaultTitleFile,
		DocIndexFile:    docindex.DefaultIndexFile,
		DocMaxDepth:     docindex.DefaultMaxDepth,
		MarkerFile:      markers.Python,
	}
}

// Load reads the YAML file at path on top of [Default]. An empty path
// returns the defaults. Unknown keys are an error.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks required settings.
func (c Config) Validate() error {
	switch {
	case c.Protoc == "":
		return errors.New("protoc must not be empty")
	case c.OutputRoot == "":
		return errors.New("output_root must not be empty")
	case c.ProtoExt == "":
		return errors.New("proto_ext must not be empty")
	case c.DocMaxDepth < 1:
		return errors.Errorf("doc_max_depth must be positive, got %d", c.DocMaxDepth)
	}
	return nil
}

// BackendOptions returns the settings handed to language backends.
func (c Config) BackendOptions() map[string]string {
	return map[string]string{
		generator.OptionDocPlugin:    c.ProtodocPlugin,
		generator.OptionDocTitleFile: c.DocTitleFile,
		generator.OptionDocIndexFile: c.DocIndexFile,
		generator.OptionDocMaxDepth:  strconv.Itoa(c.DocMaxDepth),
		generator.OptionMarkerFile:   c.MarkerFile,
	}
}
