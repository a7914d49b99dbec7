// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command protoall generates language bindings from proto sources by
// driving protoc and its plugins.
//
// Usage:
//
//	protoall -l <language> (-f <file> | -d <dir>) [flags]
//
// Flags:
//
//	-l, --language         Language to generate for (go, python, cpp, java, protodoc)
//	-f, --file             The proto source file to generate
//	-d, --directory        The source directory to search for proto files
//	-i, --includes         Extra include path (repeatable)
//	--with_gateway         Also generate grpc-gateway and swagger output (go only)
//	--go_source_relative   Make Go import paths source relative
//	-v, --validate_out     Also run protoc-gen-validate
//	--config               Path to a YAML configuration file
//	--dry-run              Print the protoc invocations without running them
//	--list                 List supported languages
//
// Output is written under gen/pb-<language> (gen/pb_python for Python).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/internal/collect"
	"github.com/albertocavalcante/protoall/internal/config"
	"github.com/albertocavalcante/protoall/internal/pipeline"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	language       string
	file           string
	directory      string
	includes       []string
	gateway        bool
	sourceRelative bool
	validate       bool
	configPath     string
	dryRun         bool
	list           bool
	verbose        bool
	showVersion    bool
	showHelp       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("protoall", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&opts.language, "language", "l", "", "Language to generate for ("+strings.Join(generator.List(), ", ")+")")
	fs.StringVarP(&opts.file, "file", "f", "", "The proto source file to generate")
	fs.StringVarP(&opts.directory, "directory", "d", "", "The source directory to search for proto source files")
	fs.StringArrayVarP(&opts.includes, "includes", "i", nil, "Extra include path (repeatable); searched after the default includes")
	fs.BoolVar(&opts.gateway, "with_gateway", false, "Generate the grpc-gateway and swagger files (go only)")
	fs.BoolVar(&opts.sourceRelative, "go_source_relative", false, "Make Go import paths source relative")
	fs.BoolVarP(&opts.validate, "validate_out", "v", false, "Generate validation code with protoc-gen-validate")
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the protoc invocations without running them")
	fs.BoolVar(&opts.list, "list", false, "List supported languages")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Show help")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `protoall - generate protobuf bindings with protoc

Usage:
  protoall -l <language> (-f <file> | -d <directory>) [flags]

Flags:
%s
Examples:
  # Generate Go code and a grpc-gateway for every proto under protos/
  protoall -l go -d protos --with_gateway

  # Generate Python code for a single file
  protoall -l python -f protos/service.proto -i third_party

  # Generate documentation, using title.rst overrides found under protos/
  protoall -l protodoc -d protos -i protos
`, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

func (o *options) validateArgs() error {
	if o.language == "" {
		return errors.New("--language is required")
	}
	if _, ok := generator.Get(o.language); !ok {
		return errors.Errorf("invalid --language %q (choose from %s)", o.language, strings.Join(generator.List(), ", "))
	}
	if o.file != "" && o.directory != "" {
		return errors.New("--file and --directory are mutually exclusive")
	}
	if o.file == "" && o.directory == "" {
		return errors.New("one of --file or --directory is required")
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return exitUsage
	}
	if opts.showHelp {
		fs.Usage()
		return exitOK
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "protoall %s (commit: %s, built: %s)\n", version, commit, date)
		return exitOK
	}
	if opts.list {
		for _, g := range generator.All() {
			meta := g.Metadata()
			fmt.Fprintf(stdout, "%-10s %s\n", meta.Name, meta.Description)
		}
		return exitOK
	}

	log := newLogger(stderr, opts.verbose)

	if err := opts.validateArgs(); err != nil {
		log.Error(err)
		fs.Usage()
		return exitUsage
	}

	osfs := afero.NewOsFs()
	cfg, err := config.Load(osfs, opts.configPath)
	if err != nil {
		log.WithError(err).Error("load configuration")
		return exitUsage
	}

	p := pipeline.New(cfg, log)
	p.Fs = osfs
	p.DryRun = opts.dryRun

	err = p.Run(ctx, pipeline.Request{
		Language:       opts.language,
		Input:          collect.Input{File: opts.file, Directory: opts.directory},
		Includes:       opts.includes,
		Gateway:        opts.gateway,
		SourceRelative: opts.sourceRelative,
		Validate:       opts.validate,
	})
	return report(err, stdout, log)
}

// report echoes captured compiler output and maps err to an exit code.
func report(err error, stdout io.Writer, log logrus.FieldLogger) int {
	if err == nil {
		return exitOK
	}
	var perr *pipeline.ProcessError
	switch {
	case errors.As(err, &perr):
		stdout.Write(perr.Output)
		log.WithField("stage", perr.Stage).Error(err)
		return exitFailure
	case errors.Is(err, pipeline.ErrConfig):
		log.Error(err)
		return exitUsage
	default:
		log.Error(err)
		return exitFailure
	}
}
