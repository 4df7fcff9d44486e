package builder

import (
	"slices"

	"github.com/gomlx/vkdgen/model"
)

// GlobalCommands are resolved with the bootstrap loader, before any instance exists.
var GlobalCommands = []string{
	"vkGetInstanceProcAddr",
	"vkEnumerateInstanceExtensionProperties",
	"vkEnumerateInstanceLayerProperties",
	"vkCreateInstance",
}

// DeviceProcAddr is the device loader. It is itself loaded from the instance.
const DeviceProcAddr = "vkGetDeviceProcAddr"

// deviceHandles are the handle types that make a command a device command when they are its first parameter.
var deviceHandles = []string{"VkDevice", "VkQueue", "VkCommandBuffer"}

// Classify returns the dispatch tier of the command:
//
//   - TierGlobal for the GlobalCommands, whatever their parameters;
//   - TierDevice if the first parameter is a device, queue or command buffer handle, except for DeviceProcAddr;
//   - TierInstance otherwise.
func Classify(cmd *model.Command) model.Tier {
	if slices.Contains(GlobalCommands, cmd.Name) {
		return model.TierGlobal
	}
	if cmd.Name != DeviceProcAddr && len(cmd.Params) > 0 && slices.Contains(deviceHandles, cmd.Params[0].Type) {
		return model.TierDevice
	}
	return model.TierInstance
}
