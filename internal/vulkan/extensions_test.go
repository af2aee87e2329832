package vulkan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/mocks"
	"github.com/vkngwrapper/extensions/v3/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v3/khr_get_memory_requirements2"
)

func TestExtensionsNew_NoExtensions(t *testing.T) {
	device := mocks.NewDummyDevice(common.Vulkan1_0, []string{})

	require.Equal(t, &ExtensionData{
		DedicatedAllocations: false,
		TransformFeedback:    false,
	}, NewExtensionData(device))
}

func TestExtensionsNew_Core1_1(t *testing.T) {
	device := mocks.NewDummyDevice(common.Vulkan1_1, []string{})

	require.Equal(t, &ExtensionData{
		DedicatedAllocations: true,
		TransformFeedback:    false,
	}, NewExtensionData(device))
}

func TestExtensionsNew_DedicatedAllocations(t *testing.T) {
	device := mocks.NewDummyDevice(common.Vulkan1_0, []string{
		khr_get_memory_requirements2.ExtensionName,
		khr_dedicated_allocation.ExtensionName,
	})

	require.Equal(t, &ExtensionData{
		DedicatedAllocations: true,
		TransformFeedback:    false,
	}, NewExtensionData(device))
}

func TestExtensionsNew_NoDedicatedAllocations(t *testing.T) {
	device := mocks.NewDummyDevice(common.Vulkan1_0, []string{
		khr_dedicated_allocation.ExtensionName,
	})

	require.Equal(t, &ExtensionData{
		DedicatedAllocations: false,
		TransformFeedback:    false,
	}, NewExtensionData(device))
}

func TestExtensionsNew_TransformFeedback(t *testing.T) {
	device := mocks.NewDummyDevice(common.Vulkan1_2, []string{
		TransformFeedbackExtensionName,
	})

	require.Equal(t, &ExtensionData{
		DedicatedAllocations: true,
		TransformFeedback:    true,
	}, NewExtensionData(device))
}
