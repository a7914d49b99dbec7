// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package layout

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{language: "go", want: filepath.Join("gen", "pb-go")},
		{language: "python", want: filepath.Join("gen", "pb_python")},
		{language: "cpp", want: filepath.Join("gen", "pb-cpp")},
		{language: "java", want: filepath.Join("gen", "pb-java")},
		{language: "protodoc", want: filepath.Join("gen", "pb-protodoc")},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got := Resolve("gen", "pb", tt.language)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.language, got, tt.want)
			}
			if again := Resolve("gen", "pb", tt.language); again != got {
				t.Errorf("Resolve(%q) not stable: %q then %q", tt.language, got, again)
			}
		})
	}
}

func TestResolve_SuffixRule(t *testing.T) {
	for _, lang := range []string{"go", "python", "cpp", "java", "protodoc", "ruby"} {
		got := Resolve("gen", "pb", lang)
		underscore := strings.HasSuffix(got, "_python")
		if underscore != (lang == Python) {
			t.Errorf("Resolve(%q) = %q: underscore suffix = %v", lang, got, underscore)
		}
		if lang != Python && !strings.HasSuffix(got, "-"+lang) {
			t.Errorf("Resolve(%q) = %q, want suffix %q", lang, got, "-"+lang)
		}
	}
}
