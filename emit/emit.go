/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package emit renders a Feature Model as a D module.
//
// The module is organized by kind of entity (base types, handles, function pointers, constants,
// enumerations, structures, command pointers and the three dispatch classes); inside each section
// entities are grouped by feature, in feature order, and each group is wrapped in the version()
// blocks of the feature guard.
package emit

import (
	"strings"

	"github.com/gomlx/vkdgen/guards"
	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/sourcefile"
	"github.com/gomlx/vkdgen/typemap"
)

// Emitter renders models as the D module of the given name.
type Emitter struct {
	module string
	guards *guards.Table
}

// New creates an Emitter for the D module named module (e.g. "vkd.vk").
// The statements of every guard of the table are emitted at the top of the module, whether or not a
// feature uses them. guards may be nil.
func New(module string, guards *guards.Table) *Emitter {
	return &Emitter{module: module, guards: guards}
}

// Emit renders the model. The model is only read.
func (e *Emitter) Emit(m *model.Model) *sourcefile.File {
	sf := sourcefile.New()
	e.emitHeader(sf, m)
	emitBaseTypes(sf, m.Features)
	emitHandles(sf, m.Features)
	emitNDHandles(sf, m.Features)
	emitFuncPtrs(sf, m.Features)
	emitConsts(sf, m.Features)
	emitEnums(sf, m.Features)
	emitStructs(sf, m.Features)
	emitCmdPtrAliases(sf, m.Features)
	for _, class := range dispatchClasses {
		emitDispatchClass(sf, m.Features, class)
	}
	return sf
}

// Render returns the contents of the D module for the model.
func (e *Emitter) Render(m *model.Model) []byte {
	return e.Emit(m).Bytes()
}

func (e *Emitter) emitHeader(sf *sourcefile.File, m *model.Model) {
	sf.Printf("/// Vulkan D bindings generated automatically by vkdgen.")
	sf.Printf("/// DO NOT EDIT.")
	sf.Printf("module %s;", e.module)
	sf.Line()
	for _, guard := range e.guards.All() {
		withGuard(sf, guard, func() {
			for _, stmt := range guard.Stmts {
				sf.Printf("%s", stmt)
			}
		})
		sf.Line()
	}
	if m.HeaderVersion != "" {
		sf.Printf("enum VK_HEADER_VERSION = %s;", m.HeaderVersion)
	}
}

// withGuard runs body inside the version() blocks of the guard, one indentation level per token.
// A nil guard runs body as is.
func withGuard(sf *sourcefile.File, guard *model.FeatureGuard, body func()) {
	if guard == nil {
		body()
		return
	}
	nestVersions(sf, guard.VersionGuards, body)
}

func nestVersions(sf *sourcefile.File, versions []string, body func()) {
	if len(versions) == 0 {
		body()
		return
	}
	sf.Printf("version(%s) {", versions[0])
	sf.Block(func() { nestVersions(sf, versions[1:], body) })
	sf.Printf("}")
}

// featureGroups calls emit for each feature that has entities for the section, wrapped in its
// guard. The features are separated by a blank line and introduced by a comment with their name.
// If leadingBlank is false, there is no blank line before the first feature.
func featureGroups(sf *sourcefile.File, features []*model.Feature, leadingBlank bool,
	has func(f *model.Feature) bool, emit func(f *model.Feature)) {
	first := true
	for _, f := range features {
		if !has(f) {
			continue
		}
		if leadingBlank || !first {
			sf.Line()
		}
		first = false
		sf.Printf("// %s", f.Name)
		withGuard(sf, f.Guard, func() { emit(f) })
	}
}

// sectionTitle writes the comment that opens a section.
func sectionTitle(sf *sourcefile.File, title string, blankAfter bool) {
	sf.Line()
	sf.Printf("// %s", title)
	if blankAfter {
		sf.Line()
	}
}

func maxLen(items []string) int {
	width := 0
	for _, item := range items {
		width = max(width, len(item))
	}
	return width
}

// pad returns the spaces that align s to width.
func pad(s string, width int) string {
	return strings.Repeat(" ", max(0, width-len(s)))
}

func paramTypes(params []model.Param) []string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

func basicTypeNames() []string {
	names := make([]string, len(typemap.BasicTypes))
	for i, bt := range typemap.BasicTypes {
		names[i] = bt.C
	}
	return names
}
