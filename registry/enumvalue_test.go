package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValue(t *testing.T) {
	testCases := []struct {
		elem   string
		num    int64
		hasNum bool
		str    string
	}{
		{`<enum value="256" name="VK_MAX_EXTENSION_NAME_SIZE"/>`, 256, true, "256"},
		{`<enum value="-1" name="VK_ERROR_OUT_OF_HOST_MEMORY"/>`, -1, true, "-1"},
		{`<enum value="0x00000003" name="VK_CULL_MODE_FRONT_AND_BACK"/>`, 3, true, "0x00000003"},
		{`<enum value="(~0U)" name="VK_REMAINING_MIP_LEVELS"/>`, 0, false, "(~0U)"},
		{`<enum value="1000.0" type="f" name="VK_LOD_CLAMP_NONE"/>`, 0, false, "1000.0f"},
		{`<enum value="&quot;VK_KHR_surface&quot;" name="VK_KHR_SURFACE_EXTENSION_NAME"/>`, 0, false, `"VK_KHR_surface"`},
		{`<enum bitpos="0" name="VK_CULL_MODE_FRONT_BIT"/>`, 1, true, "0x00000001"},
		{`<enum bitpos="31" name="VK_HIGH_BIT"/>`, 1 << 31, true, "0x80000000"},
		{`<enum bitpos="40" name="VK_64_BIT"/>`, 1 << 40, true, "0x10000000000ULL"},
		{`<enum offset="0" extnumber="1" dir="-" name="VK_ERROR_SURFACE_LOST_KHR"/>`, -1000000000, true, "-1000000000"},
		{`<enum offset="0" extnumber="6" name="VK_STRUCTURE_TYPE_XCB_SURFACE_CREATE_INFO_KHR"/>`, 1000005000, true, "1000005000"},
		{`<enum offset="2" extnumber="70" name="VK_X"/>`, 1000069002, true, "1000069002"},
		{`<enum offset="0" name="VK_NO_EXTNUMBER"/>`, 0, false, "0"},
		{`<enum alias="VK_CULL_MODE_FRONT_BIT" name="VK_CULL_MODE_FRONT_BIT_KHR"/>`, 0, false, "VK_CULL_MODE_FRONT_BIT"},
		{`<enum name="VK_REFERENCE_ONLY"/>`, 0, false, ""},
	}
	for _, tc := range testCases {
		e := parseString(t, tc.elem)
		num, hasNum, str := EnumValue(e)
		assert.Equalf(t, tc.hasNum, hasNum, "hasNum for %s", tc.elem)
		if tc.hasNum {
			assert.Equalf(t, tc.num, num, "num for %s", tc.elem)
		}
		assert.Equalf(t, tc.str, str, "str for %s", tc.elem)
	}
}
