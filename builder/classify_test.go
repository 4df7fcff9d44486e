package builder

import (
	"testing"

	"github.com/gomlx/vkdgen/model"
	"github.com/stretchr/testify/assert"
)

func command(name string, paramTypes ...string) *model.Command {
	cmd := &model.Command{Name: name, ReturnType: "void"}
	for i, typ := range paramTypes {
		cmd.Params = append(cmd.Params, model.Param{Name: string(rune('a' + i)), Type: typ})
	}
	return cmd
}

func TestClassifyGlobalWins(t *testing.T) {
	for _, name := range GlobalCommands {
		assert.Equal(t, model.TierGlobal, Classify(command(name)), name)
		assert.Equal(t, model.TierGlobal, Classify(command(name, "VkDevice")), name)
		assert.Equal(t, model.TierGlobal, Classify(command(name, "VkCommandBuffer", "VkQueue")), name)
	}
}

func TestClassifyDeviceProcAddr(t *testing.T) {
	assert.Equal(t, model.TierInstance, Classify(command(DeviceProcAddr, "VkDevice", "const(char)*")))
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		cmd  *model.Command
		want model.Tier
	}{
		{command("vkGetDeviceQueue", "VkDevice", "uint32_t", "uint32_t", "VkQueue*"), model.TierDevice},
		{command("vkQueueSubmit", "VkQueue", "uint32_t"), model.TierDevice},
		{command("vkCmdDraw", "VkCommandBuffer", "uint32_t"), model.TierDevice},
		{command("vkDestroyInstance", "VkInstance", "const(VkAllocationCallbacks)*"), model.TierInstance},
		{command("vkEnumeratePhysicalDevices", "VkInstance", "uint32_t*", "VkPhysicalDevice*"), model.TierInstance},
		{command("vkCreateDevice", "VkPhysicalDevice", "const(VkDeviceCreateInfo)*", "VkDevice*"), model.TierInstance},
		// Only the first parameter is checked, and pointers to handles don't count.
		{command("vkAllocateCommandBuffers", "VkDevice*"), model.TierInstance},
		{command("vkSomething", "VkInstance", "VkDevice"), model.TierInstance},
		{command("vkEnumerateInstanceVersion", "uint32_t*"), model.TierInstance},
		{command("vkNoParams"), model.TierInstance},
	}
	for _, tc := range testCases {
		assert.Equalf(t, tc.want, Classify(tc.cmd), "Classify(%s)", tc.cmd.Name)
	}
}
