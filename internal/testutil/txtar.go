// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for protoall.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"golang.org/x/tools/txtar"
)

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Flags contains any flags parsed from "Flags: ..." line in the description.
	Flags []string

	// Input maps relative paths under "input/" to their contents.
	Input map[string][]byte

	// Want maps relative paths (e.g., "gen/pb-protodoc/index.rst") to expected content.
	Want map[string][]byte
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - Zero or more "input/<path>" files forming the starting tree
//   - One or more "want/<path>" files with expected output
//
// The description may contain a "Flags: flag1, flag2" line holding the
// command line arguments of the case.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Input:       make(map[string][]byte),
		Want:        make(map[string][]byte),
	}

	// Parse flags from description
	c.parseFlags()

	for _, f := range ar.Files {
		switch {
		case strings.HasPrefix(f.Name, "input/"):
			c.Input[strings.TrimPrefix(f.Name, "input/")] = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			c.Want[strings.TrimPrefix(f.Name, "want/")] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected input/* or want/*)", f.Name)
		}
	}

	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}

	return c, nil
}

// parseFlags extracts flags from "Flags: ..." line in the description.
func (c *Case) parseFlags() {
	for _, line := range strings.Split(c.Description, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Flags:") {
			continue
		}
		for _, f := range strings.Split(strings.TrimPrefix(line, "Flags:"), ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Flags = append(c.Flags, f)
			}
		}
		break
	}
}

// InputFs returns an in-memory filesystem holding the case input.
func (c *Case) InputFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, "", c.Input)
	return fs
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}

	// Sort by name for determinism
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}

// FsFromArchive parses text as a txtar archive and returns an in-memory
// filesystem containing its files.
func FsFromArchive(t *testing.T, text string) afero.Fs {
	t.Helper()
	ar := txtar.Parse([]byte(text))
	files := make(map[string][]byte, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = f.Data
	}
	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, "", files)
	return fs
}

// WriteFiles writes files (slash separated paths relative to root) to fs,
// creating parent directories.
func WriteFiles(t *testing.T, fs afero.Fs, root string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %q: %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
			t.Fatalf("write %q: %v", path, err)
		}
	}
}

// Snapshot returns every regular file below root keyed by its slash
// separated path, as joined from root.
func Snapshot(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()
	got := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(path)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %q: %v", root, err)
	}
	return got
}

// CompareFiles reports missing, unexpected, and differing files. Content
// is compared byte for byte.
func CompareFiles(t *testing.T, want map[string][]byte, got map[string]string) {
	t.Helper()

	for wantFile := range want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output file: %q", wantFile)
		}
	}
	for gotFile := range got {
		if _, ok := want[gotFile]; !ok {
			t.Errorf("unexpected output file: %q", gotFile)
		}
	}
	for wantFile, wantContent := range want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing
		}
		if diff := cmp.Diff(string(wantContent), gotContent); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
}
