// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang is the Go backend. It drives protoc-gen-go with the grpc
// plugin enabled and is the only backend that supports grpc-gateway.
package golang

import (
	"strings"

	"github.com/albertocavalcante/protoall/generator"
)

// SourceRelativeParam makes protoc-gen-go place files next to their
// source path instead of under the go_package path.
const SourceRelativeParam = "paths=source_relative"

// GoGenerator implements [generator.Generator] for Go code generation.
type GoGenerator struct{}

// NewGenerator creates a new Go backend.
func NewGenerator() *GoGenerator {
	return &GoGenerator{}
}

// Metadata returns information about this backend.
func (g *GoGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        "go",
		Description: "Go messages and gRPC stubs (protoc-gen-go, plugins=grpc)",
		Gateway:     true,
	}
}

// Flags returns a single --go_out flag. Parameters are embedded in the
// flag value ahead of the output directory.
func (g *GoGenerator) Flags(cfg generator.Config) []string {
	params := make([]string, 0, 2)
	if cfg.SourceRelative {
		params = append(params, SourceRelativeParam)
	}
	params = append(params, "plugins=grpc")
	return []string{"--go_out=" + strings.Join(params, ",") + ":" + cfg.OutputDir}
}
