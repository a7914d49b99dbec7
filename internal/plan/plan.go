// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package plan builds the protoc argument vectors for a generation run.
package plan

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/albertocavalcante/protoall/generator"
)

// ErrConfig reports an illegal combination of generation options.
var ErrConfig = errors.New("invalid configuration")

// GatewayParams are passed to the grpc-gateway and swagger plugins.
const GatewayParams = "logtostderr=true,allow_delete_body=true"

// Stage identifies which protoc invocation of a run a plan belongs to.
type Stage string

const (
	StagePrimary Stage = "primary"
	StageGateway Stage = "gateway"
	StageSwagger Stage = "swagger"
)

// Invocation is one complete protoc command line.
type Invocation struct {
	Stage Stage

	// Args is the argument vector; Args[0] is the protoc executable.
	Args []string
}

// String renders the command line for logs.
func (inv Invocation) String() string {
	return strings.Join(inv.Args, " ")
}

// Spec is the input to [Build].
type Spec struct {
	// Protoc is the compiler executable. Defaults to "protoc".
	Protoc string

	// Generator produces the language specific output flags.
	Generator generator.Generator

	// Backend carries the output directory and plugin settings.
	Backend generator.Config

	// Includes are the assembled -I flags, reused by every plan.
	Includes []string

	// Files are the proto sources, reused by every plan.
	Files []string

	// Validate adds protoc-gen-validate output.
	Validate bool

	// Gateway adds the grpc-gateway and swagger plans.
	Gateway bool

	// GatewayOutDir and SwaggerOutDir default to Backend.OutputDir.
	GatewayOutDir string
	SwaggerOutDir string
}

// Check rejects option combinations the backend cannot honor.
func (s Spec) Check() error {
	if s.Generator == nil {
		return errors.Wrap(ErrConfig, "no language backend")
	}
	meta := s.Generator.Metadata()
	if s.Gateway && !meta.Gateway {
		return errors.Wrapf(ErrConfig, "grpc-gateway generation is not supported for language %q", meta.Name)
	}
	return nil
}

// Build returns the invocations for s in execution order: the primary
// plan, then the gateway and swagger plans when requested.
func Build(s Spec) ([]Invocation, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	protoc := s.Protoc
	if protoc == "" {
		protoc = "protoc"
	}
	meta := s.Generator.Metadata()
	out := s.Backend.OutputDir

	args := command(protoc, s.Includes)
	args = append(args, s.Generator.Flags(s.Backend)...)
	if s.Validate {
		args = append(args, "--validate_out=lang="+meta.Name+":"+out)
	}
	args = append(args, s.Files...)

	plans := []Invocation{{Stage: StagePrimary, Args: args}}
	if !s.Gateway {
		return plans, nil
	}

	plans = append(plans,
		secondary(protoc, StageGateway, "--grpc-gateway_out", orDefault(s.GatewayOutDir, out), s),
		secondary(protoc, StageSwagger, "--swagger_out", orDefault(s.SwaggerOutDir, out), s),
	)
	return plans, nil
}

func secondary(protoc string, stage Stage, flag, dir string, s Spec) Invocation {
	args := command(protoc, s.Includes)
	args = append(args, flag+"="+GatewayParams+":"+dir)
	args = append(args, s.Files...)
	return Invocation{Stage: stage, Args: args}
}

func command(protoc string, includes []string) []string {
	args := make([]string, 0, 1+len(includes)+4)
	args = append(args, protoc)
	return append(args, includes...)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
