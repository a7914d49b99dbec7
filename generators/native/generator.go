// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package native provides backends for the languages protoc generates
// itself, such as C++ and Java. gRPC stubs come from a separate
// grpc_<lang>_plugin executable unless the language bundles them.
package native

import "github.com/albertocavalcante/protoall/generator"

// Generator implements [generator.Generator] for a protoc builtin language.
type Generator struct {
	name        string
	description string
	bundleStubs bool
}

// NewGenerator returns a backend for name. When bundleStubs is false the
// grpc plugin flags are added after the language output flag.
func NewGenerator(name, description string, bundleStubs bool) *Generator {
	return &Generator{name: name, description: description, bundleStubs: bundleStubs}
}

// Cpp returns the C++ backend.
func Cpp() *Generator {
	return NewGenerator("cpp", "C++ messages and gRPC stubs (grpc_cpp_plugin)", false)
}

// Java returns the Java backend. Its stubs come with the primary output.
func Java() *Generator {
	return NewGenerator("java", "Java messages", true)
}

// Metadata returns information about this backend.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{Name: g.name, Description: g.description}
}

// Flags returns --<lang>_out, followed by the stub flags when needed.
func (g *Generator) Flags(cfg generator.Config) []string {
	flags := []string{"--" + g.name + "_out=" + cfg.OutputDir}
	if g.bundleStubs {
		return flags
	}
	return append(flags, StubFlags(g.name, cfg)...)
}

// PluginName is the conventional gRPC plugin executable for language.
func PluginName(language string) string {
	return "grpc_" + language + "_plugin"
}

// StubFlags returns the --grpc_out flag and the registration of the
// language's gRPC plugin, resolved on the search path.
func StubFlags(language string, cfg generator.Config) []string {
	return []string{
		"--grpc_out=" + cfg.OutputDir,
		"--plugin=protoc-gen-grpc=" + cfg.ResolvePlugin(PluginName(language)),
	}
}
