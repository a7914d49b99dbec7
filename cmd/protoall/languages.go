// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"github.com/albertocavalcante/protoall/generator"
	"github.com/albertocavalcante/protoall/generators/golang"
	"github.com/albertocavalcante/protoall/generators/native"
	"github.com/albertocavalcante/protoall/generators/protodoc"
	"github.com/albertocavalcante/protoall/generators/python"
)

func init() {
	generator.Register(golang.NewGenerator())
	generator.Register(python.NewGenerator())
	generator.Register(native.Cpp())
	generator.Register(native.Java())
	generator.Register(protodoc.NewGenerator())
}
