package vkdgen

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gomlx/vkdgen/registry"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniRegistry = "registry/testdata/mini_vk.xml"

func TestGenerate(t *testing.T) {
	dest := t.TempDir()
	opts := DefaultOptions()
	opts.Package = "gfx.vk"
	opts.Dest = dest
	opts.Registry = miniRegistry
	res, err := Generate(opts)
	require.NoError(t, err)

	srcDir := filepath.Join(dest, "gfx", "vk")
	assert.Equal(t, srcDir, opts.SourceDir())
	assert.Equal(t, []string{filepath.Join(srcDir, "loader.d"), filepath.Join(srcDir, "vk.d")}, res.Files)
	require.NotNil(t, res.Model)
	assert.Equal(t, "77", res.Model.HeaderVersion)

	vk := string(must.M1(os.ReadFile(filepath.Join(srcDir, "vk.d"))))
	assert.True(t, strings.HasPrefix(vk, "/// Vulkan D bindings generated automatically by vkdgen.\n"))
	assert.Contains(t, vk, "\nmodule gfx.vk.vk;\n")
	assert.Contains(t, vk, "\nenum VK_HEADER_VERSION = 77;\n")
	assert.Contains(t, vk, "final class VkDeviceCmds {")
	assert.Contains(t, vk, "version(Windows) {")

	loader := string(must.M1(os.ReadFile(filepath.Join(srcDir, "loader.d"))))
	assert.Contains(t, loader, "\nmodule gfx.vk.loader;\n")
	assert.Contains(t, loader, "import gfx.vk.vk : PFN_vkGetInstanceProcAddr, VkGlobalCmds;")
	assert.NotContains(t, loader, "{{")

	assert.Equal(t, filepath.Join(dest, ArgsFileName), res.ArgsFile)
	args := strings.Split(strings.TrimSpace(string(must.M1(os.ReadFile(res.ArgsFile)))), "\n")
	assert.Equal(t, []string{
		"-lib",
		"-I" + dest,
		"-of" + filepath.Join(dest, LibName(runtime.GOOS)),
		res.Files[0],
		res.Files[1],
	}, args)
}

func TestGenerateIsDeterministic(t *testing.T) {
	render := func() []byte {
		opts := DefaultOptions()
		opts.Dest = t.TempDir()
		opts.Registry = miniRegistry
		res := must.M1(Generate(opts))
		return must.M1(os.ReadFile(res.Files[1]))
	}
	assert.Equal(t, string(render()), string(render()))
}

func TestGenerateSelection(t *testing.T) {
	opts := DefaultOptions()
	opts.Dest = t.TempDir()
	opts.Registry = miniRegistry
	opts.Select = registry.Options{Versions: "VK_VERSION_1_0"}
	res, err := Generate(opts)
	require.NoError(t, err)
	require.Len(t, res.Model.Features, 1)
	assert.Equal(t, "VK_VERSION_1_0", res.Model.Features[0].Name)

	vk := string(must.M1(os.ReadFile(res.Files[1])))
	assert.NotContains(t, vk, "VK_KHR_surface")
	assert.NotContains(t, vk, "// VK_VERSION_1_1")
	// Guard statements are emitted even if no feature uses them.
	assert.Contains(t, vk, "import core.sys.windows.windef : HINSTANCE, HWND;")
}

func TestGenerateLibDir(t *testing.T) {
	opts := DefaultOptions()
	opts.Dest = t.TempDir()
	opts.LibDir = filepath.Join(t.TempDir(), "lib")
	opts.Registry = miniRegistry
	res, err := Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.LibDir, ArgsFileName), res.ArgsFile)
	args := string(must.M1(os.ReadFile(res.ArgsFile)))
	assert.Contains(t, args, "-of"+filepath.Join(opts.LibDir, LibName(runtime.GOOS))+"\n")
	assert.Contains(t, args, "-I"+opts.Dest+"\n")
}

func TestGenerateErrors(t *testing.T) {
	opts := DefaultOptions()
	opts.Dest = t.TempDir()
	opts.Registry = filepath.Join(t.TempDir(), "missing.xml")
	_, err := Generate(opts)
	require.Error(t, err)

	opts.Registry = miniRegistry
	opts.Package = "vkd..bad"
	_, err = Generate(opts)
	require.ErrorContains(t, err, "invalid D package name")

	opts.Package = "vkd"
	opts.Dest = ""
	_, err = Generate(opts)
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.xml")
	must.M(os.WriteFile(bad, []byte(`<registry><types><type category="handle"><type>VK_DEFINE_HANDLE</type>(<name>VkInstance</name>)</type>
		<type category="handle"><type>VK_DEFINE_STRANGE_HANDLE</type>(<name>VkOdd</name>)</type></types>
		<feature api="vulkan" name="VK_VERSION_1_0" number="1.0"><require><type name="VkOdd"/></require></feature></registry>`), 0644))
	opts.Dest = t.TempDir()
	opts.Registry = bad
	_, err = Generate(opts)
	require.ErrorContains(t, err, "VkOdd")
}

func TestRenderLoader(t *testing.T) {
	loader := string(must.M1(RenderLoader("vkd")))
	assert.True(t, strings.HasPrefix(loader, "/// Vulkan library loader generated automatically by vkdgen.\n"))
	assert.Contains(t, loader, "module vkd.loader;")
	assert.Contains(t, loader, "PFN_vkGetInstanceProcAddr loadVulkanLib() {")
	assert.Contains(t, loader, "VkGlobalCmds loadVulkanGlobalCmds() {")
	assert.Contains(t, loader, `"libvulkan.so.1"`)
	assert.Contains(t, loader, `"vulkan-1.dll"`)
	assert.Equal(t, strings.Count(loader, "{"), strings.Count(loader, "}"))
}

func TestBuildArgs(t *testing.T) {
	assert.Equal(t, "vkd.lib", LibName("windows"))
	assert.Equal(t, "libvkd.a", LibName("linux"))
	assert.Equal(t, "libvkd.a", LibName("darwin"))

	got := BuildArgs("out", "d", []string{"d/vkd/loader.d", "d/vkd/vk.d"})
	want := "-lib\n-Id\n-of" + filepath.Join("out", LibName(runtime.GOOS)) + "\nd/vkd/loader.d\nd/vkd/vk.d\n"
	assert.Equal(t, want, got)
}

func TestCopyRegistry(t *testing.T) {
	headers := t.TempDir()
	must.M(os.MkdirAll(filepath.Join(headers, "registry"), 0755))
	must.M(os.WriteFile(filepath.Join(headers, RegistryFile), []byte("<registry/>"), 0644))
	must.M(os.WriteFile(filepath.Join(headers, "registry", "reg.py"), []byte("# reg"), 0644))

	dest := filepath.Join(t.TempDir(), "registry")
	copied, err := CopyRegistry(headers, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dest, "vk.xml"), filepath.Join(dest, "reg.py")}, copied)
	assert.Equal(t, "<registry/>", string(must.M1(os.ReadFile(filepath.Join(dest, "vk.xml")))))
	assert.Equal(t, "# reg", string(must.M1(os.ReadFile(filepath.Join(dest, "reg.py")))))
	assert.NoFileExists(t, filepath.Join(dest, "generator.py"))
}

func TestCopyRegistryMissing(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "registry")
	_, err := CopyRegistry(t.TempDir(), dest)
	require.ErrorContains(t, err, "could not be found")
	assert.NoDirExists(t, dest)
}
