package unbound

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/unbound/internal/vulkan"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/slog"
)

// bufferUsage is the union of every buffer usage a shader binding can declare, so the single
// null buffer can stand in for any of them
const bufferUsage = core1_0.BufferUsageTransferDst |
	core1_0.BufferUsageVertexBuffer |
	core1_0.BufferUsageIndexBuffer |
	core1_0.BufferUsageUniformBuffer |
	core1_0.BufferUsageStorageBuffer |
	core1_0.BufferUsageUniformTexelBuffer |
	core1_0.BufferUsageStorageTexelBuffer

const (
	bufferRequiredMemory  = core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent
	bufferPreferredMemory = core1_0.MemoryPropertyDeviceLocal

	bufferAccess = core1_0.AccessUniformRead | core1_0.AccessShaderRead | core1_0.AccessShaderWrite
)

// Buffer is the null buffer. Its contents are zero for the lifetime of the Resources that own it.
type Buffer struct {
	handle core1_0.Buffer
	size   int
	usage  core1_0.BufferUsageFlags
	memory *vulkan.DedicatedMemory
}

func (b *Buffer) Handle() core1_0.Buffer          { return b.handle }
func (b *Buffer) Size() int                       { return b.size }
func (b *Buffer) Usage() core1_0.BufferUsageFlags { return b.usage }
func (b *Buffer) MemoryTypeIndex() int            { return b.memory.MemoryTypeIndex() }

// MemoryPropertyFlags reports the property flags of the memory type the buffer ended up in.
// DeviceLocal is preferred but dropped on devices with no host-visible device-local memory.
func (b *Buffer) MemoryPropertyFlags() core1_0.MemoryPropertyFlags { return b.memory.PropertyFlags() }

// MappedData is the persistent host mapping of the buffer's memory
func (b *Buffer) MappedData() unsafe.Pointer { return b.memory.MappedData() }

func (r *Resources) createBuffer(size int) error {
	usage := bufferUsage
	if r.extensionData.TransformFeedback {
		usage |= vulkan.BufferUsageTransformFeedback
	}

	r.logger.Debug("Resources::createBuffer",
		slog.Int("Size", size),
		slog.String("Usage", usage.String()),
	)

	handle, _, err := r.driver.CreateBuffer(r.options.AllocationCallbacks, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create the null buffer")
	}
	r.pushDestroy(func() {
		r.driver.DestroyBuffer(handle, r.options.AllocationCallbacks)
	})

	memory, _, err := r.deviceMemory.AllocateBufferMemory(handle, bufferRequiredMemory, bufferPreferredMemory)
	if err != nil {
		return errors.Wrap(err, "failed to allocate memory for the null buffer")
	}
	r.pushDestroy(func() {
		r.deviceMemory.FreeVulkanMemory(memory)
	})

	_, _, err = memory.Map(r.driver)
	if err != nil {
		return errors.Wrap(err, "failed to map the null buffer")
	}
	clear(memory.Bytes())

	r.buffer = &Buffer{
		handle: handle,
		size:   size,
		usage:  usage,
		memory: memory,
	}

	return nil
}

func (r *Resources) createBufferView() error {
	handle, _, err := r.driver.CreateBufferView(r.options.AllocationCallbacks, core1_0.BufferViewCreateInfo{
		Buffer: r.buffer.handle,
		Format: core1_0.FormatR32UnsignedInt,
		Offset: 0,
		Range:  r.buffer.size,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create the null buffer view")
	}

	r.bufferView = handle
	r.pushDestroy(func() {
		r.driver.DestroyBufferView(handle, r.options.AllocationCallbacks)
	})

	return nil
}
