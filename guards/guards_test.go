package guards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/vkdgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestD(t *testing.T) {
	table := D()
	require.Equal(t, 3, table.Len())

	names := make([]string, 0, table.Len())
	for _, g := range table.All() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"VK_KHR_win32_surface", "VK_KHR_xcb_surface", "VK_KHR_wayland_surface"}, names)

	win32 := table.Lookup("VK_KHR_win32_surface")
	require.NotNil(t, win32)
	assert.Equal(t, []string{"Windows"}, win32.VersionGuards)

	xcb := table.Lookup("VK_KHR_xcb_surface")
	require.NotNil(t, xcb)
	assert.Equal(t, []string{"linux", "VkXcb"}, xcb.VersionGuards)

	assert.Nil(t, table.Lookup("VK_KHR_surface"))
}

func TestNewTable(t *testing.T) {
	_, err := NewTable(
		model.FeatureGuard{Name: "VK_A", VersionGuards: []string{"A"}},
		model.FeatureGuard{Name: "VK_A", VersionGuards: []string{"B"}},
	)
	require.Error(t, err)

	// The table keeps its own copy.
	tokens := []string{"Windows"}
	table, err := NewTable(model.FeatureGuard{Name: "VK_A", VersionGuards: tokens})
	require.NoError(t, err)
	tokens[0] = "linux"
	assert.Equal(t, []string{"Windows"}, table.Lookup("VK_A").VersionGuards)

	var nilTable *Table
	assert.Nil(t, nilTable.Lookup("VK_A"))
	assert.Zero(t, nilTable.Len())
}

const guardsYAML = `
- name: VK_KHR_xlib_surface
  version_guards: [linux, VkXlib]
  stmts:
    - "import X11.Xlib : Display, Window, VisualID;"
- name: VK_KHR_android_surface
  version_guards: [Android]
`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(guardsYAML))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	xlib := table.Lookup("VK_KHR_xlib_surface")
	require.NotNil(t, xlib)
	assert.Equal(t, []string{"linux", "VkXlib"}, xlib.VersionGuards)
	assert.Equal(t, []string{"import X11.Xlib : Display, Window, VisualID;"}, xlib.Stmts)
	assert.Empty(t, table.Lookup("VK_KHR_android_surface").Stmts)

	_, err = Load(strings.NewReader("- name: VK_A\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("- name: VK_A\n  guards: [A]\n"))
	require.Error(t, err, "unknown fields should be rejected")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(guardsYAML), 0644))
	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
