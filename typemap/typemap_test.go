package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertConst(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"const VkAllocationCallbacks*", "const(VkAllocationCallbacks)*"},
		{"const char* const*", "const(char*)*"},
		{"const void*", "const(void)*"},
		{"void*", "void*"},
		{"uint32_t", "uint32_t"},
		{"VkInstance*", "VkInstance*"},
		{"float[4]", "float[4]"},
	}
	for _, tc := range testCases {
		assert.Equalf(t, tc.want, ConvertConst(tc.in), "ConvertConst(%q)", tc.in)
	}
}

func TestConvertConstRulesAreExclusive(t *testing.T) {
	// The double indirection rewrite must win: the single rewrite alone would give "const(char* const)*".
	got := ConvertConst("const char* const*")
	require.Equal(t, "const(char*)*", got)
	// Rewritten output is no longer C syntax, so no rule fires on it again.
	require.Equal(t, got, ConvertConst(got))
	require.Equal(t, "const(VkFoo)*", ConvertConst(ConvertConst("const VkFoo*")))
}

func TestMapParts(t *testing.T) {
	testCases := []struct {
		parts []string
		want  string
	}{
		// <param>const <type>VkInstanceCreateInfo</type>* <name>pCreateInfo</name></param>
		{[]string{"const ", "VkInstanceCreateInfo", "* ", ""}, "const(VkInstanceCreateInfo)*"},
		// <member>const <type>char</type>* const* <name>ppEnabledLayerNames</name></member>
		{[]string{"const ", "char", "* const* ", ""}, "const(char*)*"},
		// <member><type>float</type> <name>depthBias</name>[4]</member>
		{[]string{"", "float", " ", "[4]"}, "float[4]"},
		// <member><type>char</type> <name>name</name>[<enum>VK_MAX_EXTENSION_NAME_SIZE</enum>]</member>
		{[]string{"", "char", " ", "[", "VK_MAX_EXTENSION_NAME_SIZE", "]"}, "char[VK_MAX_EXTENSION_NAME_SIZE]"},
		{[]string{"struct ", "wl_display", "* "}, "wl_display*"},
		{[]string{"", "VkDevice", " "}, "VkDevice"},
	}
	for _, tc := range testCases {
		assert.Equalf(t, tc.want, MapParts(tc.parts), "MapParts(%q)", tc.parts)
	}
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "module_", SafeName("module"))
	assert.Equal(t, "pNext", SafeName("pNext"))
}

func TestNormalizeLiteral(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"(~0U)", "~0"},
		{"(~0ULL)", "~0"},
		{"(~0U-1)", "~0-1"},
		{"(~0U-2)", "~0-2"},
		{"1000.0f", "1000.0f"},
		{"256", "256"},
		{"0x100000000ULL", "0x100000000"},
		{"1000UL", "1000"},
		{"VK_LUID_SIZE", "VK_LUID_SIZE"},
	}
	for _, tc := range testCases {
		got := NormalizeLiteral(tc.in)
		assert.Equalf(t, tc.want, got, "NormalizeLiteral(%q)", tc.in)
		assert.Equalf(t, got, NormalizeLiteral(got), "NormalizeLiteral not idempotent for %q", tc.in)
	}
}

func TestBasicTypes(t *testing.T) {
	require.Len(t, BasicTypes, 8)
	assert.Equal(t, BasicType{"uint32_t", "uint"}, BasicTypes[2])
}
