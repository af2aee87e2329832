package unbound

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func TestSlotForViewType(t *testing.T) {
	testCases := map[core1_0.ImageViewType]viewSlot{
		core1_0.ImageViewType1D:        slot1D,
		core1_0.ImageViewType1DArray:   slot1DArray,
		core1_0.ImageViewType2D:        slot2D,
		ImageViewTypeUnspecified:       slot2D,
		core1_0.ImageViewType2DArray:   slot2DArray,
		core1_0.ImageViewTypeCube:      slotCube,
		core1_0.ImageViewTypeCubeArray: slotCubeArray,
		core1_0.ImageViewType3D:        slot3D,
	}

	for viewType, expected := range testCases {
		slot, ok := slotForViewType(viewType)
		require.True(t, ok)
		require.Equal(t, expected, slot)

		if viewType != ImageViewTypeUnspecified {
			require.Equal(t, viewType, viewShapes[slot].viewType)
		}
	}

	_, ok := slotForViewType(core1_0.ImageViewType(1000))
	require.False(t, ok)
}

func TestViewShapesFitImages(t *testing.T) {
	for _, shape := range viewShapes {
		require.LessOrEqual(t, shape.layers, imageKinds[shape.image].layers)
	}
}

func TestAccessMode(t *testing.T) {
	require.Equal(t, AccessSampled, accessModeFor(true))
	require.Equal(t, AccessStorage, accessModeFor(false))

	require.Equal(t, core1_0.FormatR32SignedFloat, AccessSampled.Format())
	require.Equal(t, core1_0.FormatR32UnsignedInt, AccessStorage.Format())

	require.Equal(t, "AccessSampled", AccessSampled.String())
	require.Equal(t, "AccessStorage", AccessStorage.String())
}

func TestCreateOptionsDefaults(t *testing.T) {
	var options CreateOptions

	require.Equal(t, DefaultShaderStages, options.shaderStages())
	require.Equal(t, MaxUniformBufferSize, options.bufferSize(&core1_0.PhysicalDeviceLimits{
		MaxUniformBufferRange: 65536,
	}))

	options.ShaderStages = core1_0.PipelineStageComputeShader
	require.Equal(t, core1_0.PipelineStageComputeShader, options.shaderStages())
}

func TestCreateOptionsBufferSize(t *testing.T) {
	testCases := map[string]struct {
		Override      int
		Range         int
		TexelElements int
		Expected      int
	}{
		"Default":                {Override: 0, Range: 65536, Expected: 65536},
		"ClampedToDevice":        {Override: 0, Range: 16384, Expected: 16384},
		"Override":               {Override: 1024, Range: 65536, Expected: 1024},
		"OverrideClamped":        {Override: 1 << 20, Range: 65536, Expected: 65536},
		"UnreportedRange":        {Override: 0, Range: 0, Expected: 65536},
		"OverrideAboveMax":       {Override: 1 << 17, Range: 1 << 27, Expected: 1 << 17},
		"UnalignedOverride":      {Override: 10, Range: 65536, Expected: 8},
		"UnalignedRange":         {Override: 0, Range: 16383, Expected: 16380},
		"TooSmallOverride":       {Override: 3, Range: 65536, Expected: 4},
		"ClampedToTexelElements": {Override: 0, Range: 65536, TexelElements: 1024, Expected: 4096},
		"TexelElementsAboveSize": {Override: 0, Range: 65536, TexelElements: 65536, Expected: 65536},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			options := CreateOptions{UniformBufferSize: testCase.Override}
			size := options.bufferSize(&core1_0.PhysicalDeviceLimits{
				MaxUniformBufferRange:  testCase.Range,
				MaxTexelBufferElements: testCase.TexelElements,
			})
			require.Equal(t, testCase.Expected, size)
			require.Zero(t, size%4)
		})
	}
}

func TestLifecycleStateString(t *testing.T) {
	require.Equal(t, "Built", stateBuilt.String())
	require.Equal(t, "Initializing", stateInitializing.String())
	require.Equal(t, "Ready", stateReady.String())
	require.Equal(t, "Destroyed", stateDestroyed.String())
}
