package vulkan

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v3/khr_get_memory_requirements2"
)

// TransformFeedbackExtensionName is VK_EXT_transform_feedback. Buffers may only carry the
// transform feedback usage bit when it is enabled on the device.
const TransformFeedbackExtensionName = "VK_EXT_transform_feedback"

// BufferUsageTransformFeedback is VK_BUFFER_USAGE_TRANSFORM_FEEDBACK_BUFFER_BIT_EXT
const BufferUsageTransformFeedback core1_0.BufferUsageFlags = 0x00000800

type ExtensionData struct {
	DedicatedAllocations bool
	TransformFeedback    bool
}

func NewExtensionData(device core1_0.Device) *ExtensionData {
	data := &ExtensionData{}

	if device.APIVersion().IsAtLeast(common.Vulkan1_1) {
		// Core 1.1 active - khr_dedicated_allocation was promoted
		data.DedicatedAllocations = true
	}

	// khr_dedicated_allocation if core 1.1 is not active, it requires khr_get_memory_requirements2
	if !data.DedicatedAllocations &&
		device.IsDeviceExtensionActive(khr_get_memory_requirements2.ExtensionName) &&
		device.IsDeviceExtensionActive(khr_dedicated_allocation.ExtensionName) {
		data.DedicatedAllocations = true
	}

	if device.IsDeviceExtensionActive(TransformFeedbackExtensionName) {
		data.TransformFeedback = true
	}

	return data
}
