// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package runner executes external commands and captures their output.
package runner

import (
	"context"
	"os/exec"
	"sync"

	"github.com/pkg/errors"
)

// Result is the outcome of a command that started.
type Result struct {
	// Output is the combined stdout and stderr.
	Output []byte

	// ExitCode is the process exit status.
	ExitCode int
}

// Runner executes a command line. A non-nil error means the command could
// not be started or waited for; a command that ran and exited non-zero
// returns a nil error and a non-zero ExitCode.
type Runner interface {
	Run(ctx context.Context, argv []string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env, when non-nil, replaces the environment of the child.
	Env []string
}

// Run implements [Runner].
func (r ExecRunner) Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{ExitCode: -1}, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env

	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{Output: out}, nil
	case errors.As(err, &exitErr):
		return Result{Output: out, ExitCode: exitErr.ExitCode()}, nil
	default:
		return Result{Output: out, ExitCode: -1}, errors.Wrapf(err, "start %s", argv[0])
	}
}

// Recorder is a [Runner] that records every command instead of running
// it. Results are returned in order; once exhausted, commands succeed
// with empty output.
type Recorder struct {
	mu      sync.Mutex
	calls   [][]string
	results []Result
	errs    []error

	// OnRun, if set, is called for every command before it is recorded.
	// It may create files to simulate compiler output.
	OnRun func(argv []string)
}

// Respond queues the outcome of the next unanswered command.
func (r *Recorder) Respond(res Result, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	r.errs = append(r.errs, err)
	return r
}

// Run implements [Runner].
func (r *Recorder) Run(_ context.Context, argv []string) (Result, error) {
	if r.OnRun != nil {
		r.OnRun(argv)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string(nil), argv...))
	i := len(r.calls) - 1
	if i < len(r.results) {
		return r.results[i], r.errs[i]
	}
	return Result{}, nil
}

// Calls returns a copy of the recorded commands.
func (r *Recorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([][]string, len(r.calls))
	copy(calls, r.calls)
	return calls
}
