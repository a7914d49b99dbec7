// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package runner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

func TestExecRunner(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name     string
		script   string
		wantCode int
		wantOut  string
	}{
		{name: "success", script: "echo generated", wantCode: 0, wantOut: "generated\n"},
		{name: "failure captures stderr", script: "echo 'foo.proto: File not found.' >&2; exit 1", wantCode: 1, wantOut: "foo.proto: File not found.\n"},
		{name: "exit code", script: "exit 3", wantCode: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecRunner{}.Run(context.Background(), []string{"sh", "-c", tt.script})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.wantCode)
			}
			if string(res.Output) != tt.wantOut {
				t.Errorf("Output = %q, want %q", res.Output, tt.wantOut)
			}
		})
	}
}

func TestExecRunner_LaunchFailure(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), []string{"protoall-no-such-binary-xyz"})
	if err == nil {
		t.Fatal("expected launch error")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	if !strings.Contains(err.Error(), "protoall-no-such-binary-xyz") {
		t.Errorf("error %q does not name the command", err)
	}
}

func TestExecRunner_Empty(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), nil); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestRecorder(t *testing.T) {
	boom := errors.New("boom")
	r := (&Recorder{}).
		Respond(Result{}, nil).
		Respond(Result{Output: []byte("bad"), ExitCode: 1}, nil).
		Respond(Result{ExitCode: -1}, boom)

	var seen int
	r.OnRun = func([]string) { seen++ }

	ctx := context.Background()
	if res, err := r.Run(ctx, []string{"protoc", "a"}); err != nil || res.ExitCode != 0 {
		t.Errorf("first: got %+v, %v", res, err)
	}
	if res, _ := r.Run(ctx, []string{"protoc", "b"}); res.ExitCode != 1 || string(res.Output) != "bad" {
		t.Errorf("second: got %+v", res)
	}
	if _, err := r.Run(ctx, []string{"protoc", "c"}); !errors.Is(err, boom) {
		t.Errorf("third: got %v, want %v", err, boom)
	}
	if res, err := r.Run(ctx, []string{"protoc", "d"}); err != nil || res.ExitCode != 0 {
		t.Errorf("fourth: got %+v, %v", res, err)
	}

	want := [][]string{{"protoc", "a"}, {"protoc", "b"}, {"protoc", "c"}, {"protoc", "d"}}
	if diff := cmp.Diff(want, r.Calls()); diff != "" {
		t.Errorf("Calls mismatch (-want +got):\n%s", diff)
	}
	if seen != 4 {
		t.Errorf("OnRun called %d times, want 4", seen)
	}
}
