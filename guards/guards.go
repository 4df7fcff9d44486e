// Package guards holds the Feature Guard Registry: which features need conditional compilation
// and the statements (usually imports) they need.
//
// A Table is an explicit immutable value given to the builder and the emitter, so different back-ends
// (or users, see LoadFile) can use different tables.
package guards

import (
	"io"
	"os"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/gomlx/vkdgen/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Table maps feature names to their guard, keeping the order in which they were registered.
type Table struct {
	guards *linkedhashmap.Map
}

// NewTable creates a Table with the given guards, in the given order.
// Guards are copied, and it is an error to register the same feature twice.
func NewTable(guards ...model.FeatureGuard) (*Table, error) {
	t := &Table{guards: linkedhashmap.New()}
	for _, g := range guards {
		if g.Name == "" {
			return nil, errors.New("feature guard without a feature name")
		}
		if _, found := t.guards.Get(g.Name); found {
			return nil, errors.Errorf("feature %q registered twice in the guard table", g.Name)
		}
		t.guards.Put(g.Name, &model.FeatureGuard{
			Name:          g.Name,
			VersionGuards: slices.Clone(g.VersionGuards),
			Stmts:         slices.Clone(g.Stmts),
		})
	}
	return t, nil
}

// Lookup returns the guard for the feature, or nil if the feature is unguarded.
// A nil Table has no guards.
func (t *Table) Lookup(feature string) *model.FeatureGuard {
	if t == nil {
		return nil
	}
	v, found := t.guards.Get(feature)
	if !found {
		return nil
	}
	return v.(*model.FeatureGuard)
}

// All returns the guards in registration order.
func (t *Table) All() []*model.FeatureGuard {
	if t == nil {
		return nil
	}
	all := make([]*model.FeatureGuard, 0, t.guards.Size())
	for _, v := range t.guards.Values() {
		all = append(all, v.(*model.FeatureGuard))
	}
	return all
}

// Len returns the number of guarded features.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.guards.Size()
}

// D returns the guard table of the D bindings: the window system surface extensions.
func D() *Table {
	t, err := NewTable(
		model.FeatureGuard{
			Name:          "VK_KHR_win32_surface",
			VersionGuards: []string{"Windows"},
			Stmts:         []string{"import core.sys.windows.windef : HINSTANCE, HWND;"},
		},
		model.FeatureGuard{
			Name:          "VK_KHR_xcb_surface",
			VersionGuards: []string{"linux", "VkXcb"},
			Stmts:         []string{"import xcb.xcb : xcb_connection_t, xcb_visualid_t, xcb_window_t;"},
		},
		model.FeatureGuard{
			Name:          "VK_KHR_wayland_surface",
			VersionGuards: []string{"linux", "VkWayland"},
			Stmts: []string{
				"import wayland.native.client : wl_display, wl_proxy;",
				"alias wl_surface = wl_proxy;",
			},
		},
	)
	if err != nil {
		panic(errors.WithMessage(err, "invalid D guard table"))
	}
	return t
}

// yamlGuard is the YAML representation of one entry of a guard table file.
type yamlGuard struct {
	Name          string   `yaml:"name"`
	VersionGuards []string `yaml:"version_guards"`
	Stmts         []string `yaml:"stmts"`
}

// Load reads a guard table from a YAML list of entries:
//
//	- name: VK_KHR_xcb_surface
//	  version_guards: [linux, VkXcb]
//	  stmts:
//	    - "import xcb.xcb : xcb_connection_t, xcb_visualid_t, xcb_window_t;"
func Load(r io.Reader) (*Table, error) {
	var entries []yamlGuard
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode guard table")
	}
	guards := make([]model.FeatureGuard, 0, len(entries))
	for i, e := range entries {
		if len(e.VersionGuards) == 0 {
			return nil, errors.Errorf("guard table entry #%d (%q) has no version_guards", i, e.Name)
		}
		guards = append(guards, model.FeatureGuard{Name: e.Name, VersionGuards: e.VersionGuards, Stmts: e.Stmts})
	}
	return NewTable(guards...)
}

// LoadFile reads a guard table from a YAML file, see Load.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open guard table %q", path)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "in %q", path)
	}
	return t, nil
}
