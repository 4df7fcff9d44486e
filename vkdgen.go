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

// Package vkdgen generates D language bindings for Vulkan from the Khronos registry (vk.xml).
//
// Generate writes, under the destination directory, the D package with:
//
//   - vk.d: the bindings module (types, constants, enumerations, structures and the dispatch classes
//     VkGlobalCmds, VkInstanceCmds and VkDeviceCmds).
//   - loader.d: opens the platform Vulkan library and gives the vkGetInstanceProcAddr needed
//     to create VkGlobalCmds.
//
// It also writes dmd_args.txt, the arguments for dmd to build the package as a static library.
//
// See cmd/vkdgen for the command line tool.
package vkdgen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomlx/vkdgen/builder"
	"github.com/gomlx/vkdgen/emit"
	"github.com/gomlx/vkdgen/guards"
	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/registry"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultPackage is the D package of the generated modules when none is given.
const DefaultPackage = "vkd"

// Options configure Generate.
type Options struct {
	// Package is the D package of the generated modules, e.g. "vkd" or "gfx.vulkan".
	Package string

	// Dest is the root directory of the D sources: modules are written under Dest/<package path>.
	Dest string

	// Registry is the path to vk.xml.
	Registry string

	// Select are the versions and extensions to generate. See registry.DefaultOptions.
	Select registry.Options

	// Guards to use for the features that need conditional compilation. If nil, guards.D() is used.
	Guards *guards.Table

	// LibDir is where dmd_args.txt is written and where it tells dmd to put the library.
	// Defaults to Dest.
	LibDir string
}

// DefaultOptions returns the Options to generate package "vkd" from registry/vk.xml into ./d, with all
// Vulkan versions and the platform extensions.
func DefaultOptions() Options {
	return Options{
		Package:  DefaultPackage,
		Dest:     "d",
		Registry: filepath.Join("registry", "vk.xml"),
		Select:   registry.DefaultOptions(),
	}
}

// Result of Generate.
type Result struct {
	// Files generated, in the order they are given to dmd.
	Files []string

	// ArgsFile is the path to dmd_args.txt.
	ArgsFile string

	// Model built from the registry.
	Model *model.Model
}

var rePackage = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// SourceDir returns the directory where the modules of the package are written.
func (o *Options) SourceDir() string {
	return filepath.Join(o.Dest, filepath.FromSlash(strings.ReplaceAll(o.Package, ".", "/")))
}

// Generate loads the registry, and writes the D modules and the dmd arguments file.
func Generate(opts Options) (*Result, error) {
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if !rePackage.MatchString(opts.Package) {
		return nil, errors.Errorf("invalid D package name %q", opts.Package)
	}
	if opts.Dest == "" {
		return nil, errors.New("no destination directory given")
	}
	if opts.Guards == nil {
		opts.Guards = guards.D()
	}
	if opts.LibDir == "" {
		opts.LibDir = opts.Dest
	}

	reg, err := registry.LoadFile(opts.Registry, opts.Select)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating %d features: %v", len(reg.Features()), reg.Features())
	b := builder.New(opts.Guards)
	if err := reg.Walk(b); err != nil {
		return nil, errors.WithMessagef(err, "failed to build model from %q", opts.Registry)
	}
	m := b.Model()

	srcDir := opts.SourceDir()
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create source directory %q", srcDir)
	}
	res := &Result{Model: m}

	// Hand-written modules first.
	loaderPath := filepath.Join(srcDir, "loader.d")
	loader, err := RenderLoader(opts.Package)
	if err != nil {
		return nil, err
	}
	if err := writeFile(loaderPath, loader); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, loaderPath)

	vkPath := filepath.Join(srcDir, "vk.d")
	module := opts.Package + ".vk"
	if err := writeFile(vkPath, emit.New(module, opts.Guards).Render(m)); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, vkPath)
	klog.V(1).Infof("module %s written to %s", module, vkPath)

	res.ArgsFile, err = WriteBuildArgs(opts.LibDir, opts.Dest, res.Files)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func writeFile(path string, contents []byte) error {
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return nil
}
