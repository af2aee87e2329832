package unbound

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/loader"
)

const (
	// MaxUniformBufferSize is the largest uniform buffer a shader may bind: 4096 vec4 constants.
	// The null buffer is created with this size unless the device limit is smaller.
	MaxUniformBufferSize int = 65536

	bufferTexelSize int = 4

	// DefaultShaderStages is used when CreateOptions.ShaderStages is left empty
	DefaultShaderStages = core1_0.PipelineStageVertexShader |
		core1_0.PipelineStageFragmentShader |
		core1_0.PipelineStageComputeShader
)

// CreateOptions contains optional settings when creating the null resources
type CreateOptions struct {
	// AllocationCallbacks is an optional set of host allocation callbacks passed to every
	// vulkan object created for the null resources
	AllocationCallbacks *loader.AllocationCallbacks

	// QueueFamilyIndex and QueueIndex select the queue the one-time initialization commands
	// are submitted to. The queue family must support transfer operations.
	QueueFamilyIndex int
	QueueIndex       int

	// ShaderStages is the set of shader pipeline stages that may read the null resources.
	// Devices with geometry or tessellation shaders enabled should include those stages.
	// When left empty, DefaultShaderStages is used.
	ShaderStages core1_0.PipelineStageFlags

	// UniformBufferSize overrides MaxUniformBufferSize when nonzero. The size is always
	// clamped to the device's MaxUniformBufferRange and MaxTexelBufferElements, then rounded
	// down to a multiple of 4 bytes so the R32 buffer view covers it exactly.
	UniformBufferSize int
}

func (o CreateOptions) shaderStages() core1_0.PipelineStageFlags {
	if o.ShaderStages == 0 {
		return DefaultShaderStages
	}

	return o.ShaderStages
}

func (o CreateOptions) bufferSize(limits *core1_0.PhysicalDeviceLimits) int {
	size := MaxUniformBufferSize
	if o.UniformBufferSize > 0 {
		size = o.UniformBufferSize
	}

	if limits.MaxUniformBufferRange > 0 && size > limits.MaxUniformBufferRange {
		size = limits.MaxUniformBufferRange
	}

	texelBytes := limits.MaxTexelBufferElements * bufferTexelSize
	if texelBytes > 0 && size > texelBytes {
		size = texelBytes
	}

	// The R32 buffer view range and the fill size must both be multiples of the texel size
	size -= size % bufferTexelSize
	if size < bufferTexelSize {
		size = bufferTexelSize
	}

	return size
}
