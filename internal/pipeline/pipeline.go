// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package pipeline runs a complete generation: it resolves the output
// layout, collects sources, builds the protoc invocations, runs them one
// at a time and repairs the output tree.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/internal/collect"
	"github.com/albertocavalcante/protoall/internal/config"
	"github.com/albertocavalcante/protoall/internal/include"
	"github.com/albertocavalcante/protoall/internal/layout"
	"github.com/albertocavalcante/protoall/internal/plan"
	"github.com/albertocavalcante/protoall/internal/runner"
)

// ErrConfig reports an illegal request. Nothing has been run or written
// when it is returned.
var ErrConfig = plan.ErrConfig

// Request is one generation run.
type Request struct {
	// Language selects the backend.
	Language string

	// Input is the proto file or search directory.
	Input collect.Input

	// Includes are extra include paths, searched after the defaults.
	Includes []string

	Gateway        bool
	SourceRelative bool
	Validate       bool
}

// ProcessError reports a protoc invocation that failed to start or
// exited non-zero.
type ProcessError struct {
	Stage    plan.Stage
	Args     []string
	Output   []byte
	ExitCode int

	// Err is set when the process could not be started.
	Err error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s exited with status %d", e.Stage, e.Args[0], e.ExitCode)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Prepared is the result of planning a request.
type Prepared struct {
	Generator generator.Generator
	OutputDir string
	Files     []string
	Plans     []plan.Invocation
}

// Pipeline executes requests.
type Pipeline struct {
	Config config.Config

	// Fs is where sources are read and output is repaired. Defaults to the
	// OS filesystem.
	Fs afero.Fs

	// Runner executes protoc. Defaults to [runner.ExecRunner].
	Runner runner.Runner

	// LookPath resolves plugin executables. Defaults to [exec.LookPath].
	LookPath func(string) (string, error)

	// Lookup finds the backend for a language. Defaults to [generator.Get].
	Lookup func(string) (generator.Generator, bool)

	// DryRun logs the plans without running them or post-processing.
	DryRun bool

	Log logrus.FieldLogger
}

// New returns a Pipeline with cfg and the default collaborators.
func New(cfg config.Config, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{Config: cfg, Log: log}
}

func (p *Pipeline) fs() afero.Fs {
	if p.Fs == nil {
		p.Fs = afero.NewOsFs()
	}
	return p.Fs
}

func (p *Pipeline) log() logrus.FieldLogger {
	if p.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.Log = l
	}
	return p.Log
}

// Check validates req without touching the filesystem.
func (p *Pipeline) Check(req Request) (generator.Generator, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = generator.Get
	}
	gen, ok := lookup(req.Language)
	if !ok {
		return nil, errors.Wrapf(ErrConfig, "unknown language %q (available: %v)", req.Language, generator.List())
	}
	if err := req.Input.Validate(); err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}
	if req.Gateway && !gen.Metadata().Gateway {
		return nil, errors.Wrapf(ErrConfig, "grpc-gateway generation is not supported for language %q", req.Language)
	}
	return gen, nil
}

// Plan validates req and builds its invocations. Sources are collected,
// but nothing is created.
func (p *Pipeline) Plan(req Request) (*Prepared, error) {
	gen, err := p.Check(req)
	if err != nil {
		return nil, err
	}
	outDir := layout.Resolve(p.Config.OutputRoot, p.Config.OutputPrefix, req.Language)

	files, err := collect.Sources(p.fs(), req.Input, p.Config.ProtoExt)
	if err != nil {
		return nil, errors.Wrap(err, "collect proto sources")
	}
	if len(files) == 0 {
		p.log().WithField("dir", req.Input.Directory).Warn("no proto files found")
	}

	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	plans, err := plan.Build(plan.Spec{
		Protoc:    p.Config.Protoc,
		Generator: gen,
		Backend: generator.Config{
			OutputDir:      outDir,
			SourceRelative: req.SourceRelative,
			LookPath:       lookPath,
			Options:        p.Config.BackendOptions(),
			Log:            p.log(),
		},
		Includes:      include.Assemble(p.Config.DefaultIncludes, req.Includes, req.Input),
		Files:         files,
		Validate:      req.Validate,
		Gateway:       req.Gateway,
		GatewayOutDir: p.Config.GatewayOut,
		SwaggerOutDir: p.Config.SwaggerOut,
	})
	if err != nil {
		return nil, err
	}
	return &Prepared{Generator: gen, OutputDir: outDir, Files: files, Plans: plans}, nil
}

// Run executes req. Invocations run strictly in order; the first failure
// stops the run and is returned as a *ProcessError. Output already written
// is left in place.
func (p *Pipeline) Run(ctx context.Context, req Request) error {
	prep, err := p.Plan(req)
	if err != nil {
		return err
	}
	log := p.log().WithField("language", req.Language)

	if err := p.fs().MkdirAll(prep.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", prep.OutputDir)
	}
	if err := p.mkdirSecondary(prep); err != nil {
		return err
	}

	for _, inv := range prep.Plans {
		log.WithField("stage", inv.Stage).Info(inv.String())
	}
	if p.DryRun {
		return nil
	}

	for i, inv := range prep.Plans {
		if err := p.execute(ctx, inv); err != nil {
			return err
		}
		if i == 0 {
			if err := p.postProcess(ctx, req, prep); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) mkdirSecondary(prep *Prepared) error {
	if len(prep.Plans) < 2 {
		return nil
	}
	for _, dir := range []string{p.Config.GatewayOut, p.Config.SwaggerOut} {
		if dir == "" {
			continue
		}
		if err := p.fs().MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create output directory %s", dir)
		}
	}
	return nil
}

func (p *Pipeline) execute(ctx context.Context, inv plan.Invocation) error {
	r := p.Runner
	if r == nil {
		r = runner.ExecRunner{}
	}
	res, err := r.Run(ctx, inv.Args)
	if err != nil {
		return &ProcessError{Stage: inv.Stage, Args: inv.Args, Output: res.Output, ExitCode: -1, Err: err}
	}
	if res.ExitCode != 0 {
		return &ProcessError{Stage: inv.Stage, Args: inv.Args, Output: res.Output, ExitCode: res.ExitCode}
	}
	return nil
}

func (p *Pipeline) postProcess(ctx context.Context, req Request, prep *Prepared) error {
	pp, ok := prep.Generator.(generator.PostProcessor)
	if !ok {
		return nil
	}
	tree := generator.Tree{
		Fs:         p.fs(),
		OutputDir:  prep.OutputDir,
		OutputRoot: p.Config.OutputRoot,
		SourceRoot: DocSourceRoot(req),
		Options:    p.Config.BackendOptions(),
		Log:        p.log().WithField("language", req.Language),
	}
	if err := pp.PostProcess(ctx, tree); err != nil {
		return errors.Wrapf(err, "post-process %s", prep.OutputDir)
	}
	return nil
}

// DocSourceRoot returns the proto tree searched for documentation title
// overrides: the first extra include, else the search directory, else
// the current directory.
func DocSourceRoot(req Request) string {
	switch {
	case len(req.Includes) > 0:
		return req.Includes[0]
	case req.Input.Directory != "":
		return req.Input.Directory
	}
	return "."
}
