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

// Package registry loads the Vulkan XML API registry (vk.xml) and walks the selected features,
// delivering their types, enums and commands to a Generator in a fixed order.
//
// It plays the role of the Khronos reg.py driver: it knows the registry schema, resolves
// dependencies and extension enumerants, but it knows nothing about the bindings being generated.
package registry

import (
	"io"
	"os"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// PlatformExtensions are the extensions emitted by default: surfaces, swapchain and debug report.
var PlatformExtensions = []string{
	"VK_KHR_display",
	"VK_KHR_swapchain",
	"VK_KHR_win32_surface",
	"VK_KHR_xcb_surface",
	"VK_KHR_wayland_surface",
	"VK_KHR_surface",
	"VK_EXT_debug_report",
}

// Options select what part of the registry is walked.
type Options struct {
	// API name, matched against the "api" and "supported" attributes. Usually "vulkan".
	API string

	// Versions is a regular expression that must match the whole name of the core features
	// (e.g. "VK_VERSION_1_[01]"). Empty matches all.
	Versions string

	// Extensions to emit, by name. Their order here doesn't matter: extensions are walked in
	// registry number order.
	Extensions []string
}

// DefaultOptions returns options for all Vulkan versions and the PlatformExtensions.
func DefaultOptions() Options {
	return Options{
		API:        "vulkan",
		Versions:   ".*",
		Extensions: slices.Clone(PlatformExtensions),
	}
}

// Generator receives the registry traversal events.
//
// Between BeginFeature and EndFeature it receives every entity the feature requires, dependencies
// first. Each entity is delivered at most once for the whole walk: if a later feature requires it again,
// it is not repeated. An error returned by any method aborts the walk.
type Generator interface {
	BeginFeature(name string) error
	EndFeature() error
	GenType(t *TypeInfo, name, alias string) error
	GenEnum(e *EnumInfo, name, alias string) error
	GenGroup(g *GroupInfo, name, alias string) error
	GenCmd(c *CmdInfo, name, alias string) error
}

// TypeInfo is a <type> element.
type TypeInfo struct {
	Elem *Element
}

// Category returns the "category" attribute, "" if not set.
func (t *TypeInfo) Category() string { return t.Elem.Get("category") }

// EnumInfo is a standalone <enum> element: an API constant or an extension constant.
type EnumInfo struct {
	Elem *Element
}

// GroupInfo is an <enums> element that defines an enumerated type.
type GroupInfo struct {
	Elem *Element

	// Members are the <enum> elements of the group, including the ones added by the walked extensions,
	// without duplicates.
	Members []*Element
}

// CmdInfo is a <command> element. For command aliases it is the aliased command.
type CmdInfo struct {
	Elem *Element
}

// groupMember is an enumerant of a group with the name of the feature that added it ("" for the
// group's own members) and the <require> block it came from.
type groupMember struct {
	elem   *Element
	source string
	req    *Element
}

type group struct {
	elem    *Element
	members []groupMember
}

type feature struct {
	name        string
	elem        *Element
	isExtension bool
	version     float64 // For core features.
	number      int     // For extensions.
}

// Registry is a loaded vk.xml, with the features selected by the Options.
type Registry struct {
	opts     Options
	types    map[string]*Element
	groups   map[string]*group
	enums    map[string]*Element
	commands map[string]*Element

	features []*feature
	selected map[string]bool

	// allFeatureElems holds every <feature> of the API and every <extension>, selected or not.
	allFeatureElems []*Element
}

// LoadFile loads the registry from a file. See Load.
func LoadFile(path string, opts Options) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open registry %q", path)
	}
	defer f.Close()
	r, err := Load(f, opts)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load registry %q", path)
	}
	return r, nil
}

// Load parses the registry and selects the features to walk.
func Load(reader io.Reader, opts Options) (*Registry, error) {
	if opts.API == "" {
		opts.API = "vulkan"
	}
	root, err := ParseXML(reader)
	if err != nil {
		return nil, err
	}
	if root.Tag != "registry" {
		return nil, errors.Errorf("root element is <%s>, expected <registry>", root.Tag)
	}
	r := &Registry{
		opts:     opts,
		types:    make(map[string]*Element),
		groups:   make(map[string]*group),
		enums:    make(map[string]*Element),
		commands: make(map[string]*Element),
		selected: make(map[string]bool),
	}
	r.indexTypes(root)
	r.indexEnums(root)
	r.indexCommands(root)
	if err := r.selectFeatures(root); err != nil {
		return nil, err
	}
	if err := r.indexRequiredEnums(); err != nil {
		return nil, err
	}
	return r, nil
}

// apiMatch returns whether the element applies to api: either it has no "api" attribute, or api is
// in its comma separated list.
func apiMatch(e *Element, attr, api string) bool {
	list, found := e.Lookup(attr)
	if !found {
		return true
	}
	return slices.Contains(strings.Split(list, ","), api)
}

func (r *Registry) indexTypes(root *Element) {
	for _, t := range root.FindAll("types/type") {
		if !apiMatch(t, "api", r.opts.API) {
			continue
		}
		name := t.name()
		if name == "" {
			continue
		}
		if _, found := r.types[name]; !found {
			r.types[name] = t
		}
	}
}

func (r *Registry) indexEnums(root *Element) {
	for _, enums := range root.FindAll("enums") {
		kind := enums.Get("type")
		groupName := enums.Get("name")
		isGroup := kind == "enum" || kind == "bitmask"
		var g *group
		if isGroup {
			g = &group{elem: enums}
			r.groups[groupName] = g
		}
		for _, e := range enums.FindAll("enum") {
			if !apiMatch(e, "api", r.opts.API) {
				continue
			}
			if isGroup {
				g.members = append(g.members, groupMember{elem: e})
			} else {
				r.enums[e.Get("name")] = e
			}
		}
	}
}

func (r *Registry) indexCommands(root *Element) {
	for _, cmd := range root.FindAll("commands/command") {
		if !apiMatch(cmd, "api", r.opts.API) {
			continue
		}
		name := cmd.Get("name")
		if name == "" {
			name = cmd.ChildText("proto/name")
		}
		if name == "" {
			continue
		}
		if _, found := r.commands[name]; !found {
			r.commands[name] = cmd
		}
	}
}

// selectFeatures collects the core features and extensions selected by the options, in walk order:
// core features by version number, then extensions by extension number.
func (r *Registry) selectFeatures(root *Element) error {
	versions := r.opts.Versions
	if versions == "" {
		versions = ".*"
	}
	reVersions, err := regexp.Compile("^(" + versions + ")$")
	if err != nil {
		return errors.Wrapf(err, "invalid versions expression %q", r.opts.Versions)
	}

	var core []*feature
	for _, f := range root.FindAll("feature") {
		name := f.Get("name")
		if !apiMatch(f, "api", r.opts.API) {
			continue
		}
		r.allFeatureElems = append(r.allFeatureElems, f)
		if !reVersions.MatchString(name) {
			continue
		}
		version, err := strconv.ParseFloat(f.Get("number"), 64)
		if err != nil {
			return errors.Wrapf(err, "feature %s has an invalid number %q", name, f.Get("number"))
		}
		core = append(core, &feature{name: name, elem: f, version: version})
	}
	sort.SliceStable(core, func(i, j int) bool { return core[i].version < core[j].version })

	wanted := make(map[string]bool, len(r.opts.Extensions))
	for _, name := range r.opts.Extensions {
		wanted[name] = true
	}
	var exts []*feature
	for _, ext := range root.FindAll("extensions/extension") {
		name := ext.Get("name")
		r.allFeatureElems = append(r.allFeatureElems, ext)
		if !wanted[name] {
			continue
		}
		delete(wanted, name)
		if !apiMatch(ext, "supported", r.opts.API) {
			klog.Warningf("extension %s is not supported for API %q, skipping it", name, r.opts.API)
			continue
		}
		number, err := strconv.Atoi(ext.Get("number"))
		if err != nil {
			return errors.Wrapf(err, "extension %s has an invalid number %q", name, ext.Get("number"))
		}
		exts = append(exts, &feature{name: name, elem: ext, isExtension: true, number: number})
	}
	for _, name := range r.opts.Extensions {
		if wanted[name] {
			klog.Warningf("extension %s not found in the registry", name)
		}
	}
	sort.SliceStable(exts, func(i, j int) bool { return exts[i].number < exts[j].number })

	r.features = append(core, exts...)
	for _, f := range r.features {
		r.selected[f.name] = true
	}
	return nil
}

// indexRequiredEnums registers the enumerants defined inside the <require> blocks of all features and
// extensions: the ones extending a group are appended to it, the others become constants.
//
// Enumerants of extensions that are not selected are also appended to their groups, since a selected
// feature may refer to them by name; they are only delivered if their extension is walked.
func (r *Registry) indexRequiredEnums() error {
	for _, f := range r.allFeatureElems {
		source := f.Get("name")
		extNumber := ""
		if f.Tag == "extension" {
			extNumber = f.Get("number")
		}
		for _, req := range f.FindAll("require") {
			if !apiMatch(req, "api", r.opts.API) {
				continue
			}
			for _, e := range req.FindAll("enum") {
				if !apiMatch(e, "api", r.opts.API) {
					continue
				}
				groupName, extends := e.Lookup("extends")
				if !extends {
					if e.Has("value") || e.Has("bitpos") || e.Has("alias") {
						if _, found := r.enums[e.Get("name")]; !found {
							r.enums[e.Get("name")] = e
						}
					}
					continue
				}
				g, found := r.groups[groupName]
				if !found {
					if !r.selected[source] {
						continue
					}
					return errors.Errorf("%s extends unknown enumeration %s with %s", source, groupName, e.Get("name"))
				}
				if e.Has("offset") && !e.Has("extnumber") {
					if extNumber == "" {
						if !r.selected[source] {
							continue
						}
						return errors.Errorf("%s defines %s with an offset but no extnumber", source, e.Get("name"))
					}
					e = e.withAttr("extnumber", extNumber)
				}
				g.members = append(g.members, groupMember{elem: e, source: source, req: req})
			}
		}
	}
	return nil
}

// Features returns the names of the selected features, in walk order.
func (r *Registry) Features() []string {
	names := make([]string, len(r.features))
	for i, f := range r.features {
		names[i] = f.name
	}
	return names
}
