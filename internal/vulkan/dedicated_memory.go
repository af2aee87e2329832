package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// DedicatedMemory is a single vulkan allocation bound to exactly one buffer or image
type DedicatedMemory struct {
	memory          core1_0.DeviceMemory
	memoryTypeIndex int
	size            int
	flags           core1_0.MemoryPropertyFlags

	mapData unsafe.Pointer
}

func (m *DedicatedMemory) VulkanDeviceMemory() core1_0.DeviceMemory   { return m.memory }
func (m *DedicatedMemory) MemoryTypeIndex() int                       { return m.memoryTypeIndex }
func (m *DedicatedMemory) Size() int                                  { return m.size }
func (m *DedicatedMemory) PropertyFlags() core1_0.MemoryPropertyFlags { return m.flags }
func (m *DedicatedMemory) MappedData() unsafe.Pointer                 { return m.mapData }

func (m *DedicatedMemory) IsHostVisible() bool {
	return m.flags&core1_0.MemoryPropertyHostVisible != 0
}

// Map persistently maps the whole allocation. The mapping lives until the memory is freed.
func (m *DedicatedMemory) Map(driver core1_0.DeviceDriver) (unsafe.Pointer, common.VkResult, error) {
	if m.mapData != nil {
		return m.mapData, core1_0.VKSuccess, nil
	}

	if !m.IsHostVisible() {
		return nil, core1_0.VKErrorMemoryMapFailed, errors.Newf("memory type %d is not host visible", m.memoryTypeIndex)
	}

	mappedData, res, err := driver.MapMemory(m.memory, 0, m.size, 0)
	if err != nil {
		return nil, res, err
	}

	m.mapData = mappedData
	return mappedData, res, nil
}

// Bytes returns the mapped allocation as a byte slice, or nil if it is not mapped
func (m *DedicatedMemory) Bytes() []byte {
	if m.mapData == nil {
		return nil
	}

	return unsafe.Slice((*byte)(m.mapData), m.size)
}
