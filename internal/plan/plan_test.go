// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package plan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/generators/golang"
	"github.com/albertocavalcante/protoall/generators/native"
	"github.com/albertocavalcante/protoall/generators/protodoc"
	"github.com/albertocavalcante/protoall/generators/python"
)

var (
	includes = []string{"-I=/usr/local/include", "-I=/opt/include", "-I=protos"}
	files    = []string{"protos/a.proto", "protos/b/c.proto"}
)

func lookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func backend(dir string) generator.Config {
	return generator.Config{OutputDir: dir, LookPath: lookPath}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestBuild(t *testing.T) {
	protoc := []string{"protoc"}

	tests := []struct {
		name string
		spec Spec
		want []Invocation
	}{
		{
			name: "go",
			spec: Spec{Generator: golang.NewGenerator(), Backend: backend("gen/pb-go")},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes,
				[]string{"--go_out=plugins=grpc:gen/pb-go"}, files)}},
		},
		{
			name: "go source relative with validate",
			spec: Spec{
				Generator: golang.NewGenerator(),
				Backend:   generator.Config{OutputDir: "gen/pb-go", SourceRelative: true},
				Validate:  true,
			},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes, []string{
				"--go_out=paths=source_relative,plugins=grpc:gen/pb-go",
				"--validate_out=lang=go:gen/pb-go",
			}, files)}},
		},
		{
			name: "go gateway",
			spec: Spec{Generator: golang.NewGenerator(), Backend: backend("gen/pb-go"), Gateway: true},
			want: []Invocation{
				{Stage: StagePrimary, Args: concat(protoc, includes,
					[]string{"--go_out=plugins=grpc:gen/pb-go"}, files)},
				{Stage: StageGateway, Args: concat(protoc, includes,
					[]string{"--grpc-gateway_out=logtostderr=true,allow_delete_body=true:gen/pb-go"}, files)},
				{Stage: StageSwagger, Args: concat(protoc, includes,
					[]string{"--swagger_out=logtostderr=true,allow_delete_body=true:gen/pb-go"}, files)},
			},
		},
		{
			name: "go gateway separate dirs",
			spec: Spec{
				Protoc:        "/opt/bin/protoc",
				Generator:     golang.NewGenerator(),
				Backend:       backend("gen/pb-go"),
				Gateway:       true,
				GatewayOutDir: "gen/gateway",
				SwaggerOutDir: "gen/openapi",
			},
			want: []Invocation{
				{Stage: StagePrimary, Args: concat([]string{"/opt/bin/protoc"}, includes,
					[]string{"--go_out=plugins=grpc:gen/pb-go"}, files)},
				{Stage: StageGateway, Args: concat([]string{"/opt/bin/protoc"}, includes,
					[]string{"--grpc-gateway_out=logtostderr=true,allow_delete_body=true:gen/gateway"}, files)},
				{Stage: StageSwagger, Args: concat([]string{"/opt/bin/protoc"}, includes,
					[]string{"--swagger_out=logtostderr=true,allow_delete_body=true:gen/openapi"}, files)},
			},
		},
		{
			name: "python",
			spec: Spec{Generator: python.NewGenerator(), Backend: backend("gen/pb_python")},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes, []string{
				"--python_out=gen/pb_python",
				"--grpc_out=gen/pb_python",
				"--plugin=protoc-gen-grpc=/usr/bin/grpc_python_plugin",
			}, files)}},
		},
		{
			name: "cpp with validate",
			spec: Spec{Generator: native.Cpp(), Backend: backend("gen/pb-cpp"), Validate: true},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes, []string{
				"--cpp_out=gen/pb-cpp",
				"--grpc_out=gen/pb-cpp",
				"--plugin=protoc-gen-grpc=/usr/bin/grpc_cpp_plugin",
				"--validate_out=lang=cpp:gen/pb-cpp",
			}, files)}},
		},
		{
			name: "java",
			spec: Spec{Generator: native.Java(), Backend: backend("gen/pb-java")},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes,
				[]string{"--java_out=gen/pb-java"}, files)}},
		},
		{
			name: "protodoc with stub plugin",
			spec: Spec{
				Generator: protodoc.NewGenerator(),
				Backend: generator.Config{
					OutputDir: "gen/pb-protodoc",
					Options:   map[string]string{generator.OptionDocPlugin: "/tmp/stub"},
				},
			},
			want: []Invocation{{Stage: StagePrimary, Args: concat(protoc, includes, []string{
				"--plugin=protoc-gen-protodoc=/tmp/stub",
				"--protodoc_out=gen/pb-protodoc",
			}, files)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.spec.Includes = includes
			tt.spec.Files = files
			got, err := Build(tt.spec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_GatewayRequiresSupport(t *testing.T) {
	gens := []generator.Generator{
		python.NewGenerator(),
		native.Cpp(),
		native.Java(),
		protodoc.NewGenerator(),
	}
	for _, g := range gens {
		t.Run(g.Metadata().Name, func(t *testing.T) {
			_, err := Build(Spec{Generator: g, Backend: backend("out"), Gateway: true, Files: files})
			if !errors.Is(err, ErrConfig) {
				t.Errorf("got %v, want ErrConfig", err)
			}
		})
	}
}

func TestBuild_NoGenerator(t *testing.T) {
	if _, err := Build(Spec{}); !errors.Is(err, ErrConfig) {
		t.Errorf("got %v, want ErrConfig", err)
	}
}

func TestBuild_SecondaryPlansReuseInputs(t *testing.T) {
	plans, err := Build(Spec{
		Generator: golang.NewGenerator(),
		Backend:   backend("gen/pb-go"),
		Includes:  includes,
		Files:     files,
		Gateway:   true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, p := range plans[1:] {
		if diff := cmp.Diff(includes, p.Args[1:1+len(includes)]); diff != "" {
			t.Errorf("%s includes (-want +got):\n%s", p.Stage, diff)
		}
		if diff := cmp.Diff(files, p.Args[len(p.Args)-len(files):]); diff != "" {
			t.Errorf("%s files (-want +got):\n%s", p.Stage, diff)
		}
	}
}

func TestInvocation_String(t *testing.T) {
	inv := Invocation{Args: []string{"protoc", "-I=.", "--java_out=out", "a.proto"}}
	if got, want := inv.String(), "protoc -I=. --java_out=out a.proto"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
