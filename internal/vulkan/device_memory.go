package vulkan

import (
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/loader"
	"github.com/vkngwrapper/extensions/v3/khr_dedicated_allocation"
)

type DeviceMemoryProperties struct {
	// Number of vulkan allocations made through this object, checked against maxMemoryAllocationCount
	memoryCount uint32
	// Bytes currently allocated from each heap
	heapBytes [common.MaxMemoryHeaps]int64

	allocationCallbacks *loader.AllocationCallbacks
	extensionData       *ExtensionData

	driver           core1_0.DeviceDriver
	deviceProperties *core1_0.PhysicalDeviceProperties
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties
}

func NewDeviceMemoryProperties(
	allocationCallbacks *loader.AllocationCallbacks,
	extensionData *ExtensionData,
	driver core1_0.DeviceDriver,
	deviceProperties *core1_0.PhysicalDeviceProperties,
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties,
) (*DeviceMemoryProperties, error) {
	if deviceProperties == nil || deviceProperties.Limits == nil {
		return nil, errors.New("physical device properties were provided without device limits")
	}
	if memoryProperties == nil || len(memoryProperties.MemoryTypes) == 0 {
		return nil, errors.New("physical device reports no memory types")
	}

	return &DeviceMemoryProperties{
		allocationCallbacks: allocationCallbacks,
		extensionData:       extensionData,
		driver:              driver,
		deviceProperties:    deviceProperties,
		memoryProperties:    memoryProperties,
	}, nil
}

func (m *DeviceMemoryProperties) MemoryTypeCount() int {
	return len(m.memoryProperties.MemoryTypes)
}

func (m *DeviceMemoryProperties) MemoryTypeIndexToHeapIndex(memTypeIndex int) int {
	return m.memoryProperties.MemoryTypes[memTypeIndex].HeapIndex
}

func (m *DeviceMemoryProperties) MemoryTypeProperties(memoryTypeIndex int) core1_0.MemoryType {
	return m.memoryProperties.MemoryTypes[memoryTypeIndex]
}

func (m *DeviceMemoryProperties) DeviceProperties() *core1_0.PhysicalDeviceProperties {
	return m.deviceProperties
}

func (m *DeviceMemoryProperties) HeapBytes(heapIndex int) int {
	return int(atomic.LoadInt64(&m.heapBytes[heapIndex]))
}

func (m *DeviceMemoryProperties) AllocationCount() uint32 {
	return atomic.LoadUint32(&m.memoryCount)
}

// FindMemoryTypeIndex returns the memory type allowed by memoryTypeBits that carries every
// required flag and misses the fewest preferred flags.
func (m *DeviceMemoryProperties) FindMemoryTypeIndex(
	memoryTypeBits uint32,
	requiredFlags, preferredFlags core1_0.MemoryPropertyFlags,
) (int, common.VkResult, error) {
	bestMemoryTypeIndex := -1
	minCost := math.MaxInt

	for memTypeIndex := 0; memTypeIndex < m.MemoryTypeCount(); memTypeIndex++ {
		memTypeBit := uint32(1 << memTypeIndex)

		if memTypeBit&memoryTypeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		flags := m.memoryProperties.MemoryTypes[memTypeIndex].PropertyFlags
		if requiredFlags&flags != requiredFlags {
			// This memory type is missing required flags
			continue
		}

		missingPreferredFlags := preferredFlags & ^flags
		cost := bits.OnesCount32(uint32(missingPreferredFlags))
		if cost == 0 {
			return memTypeIndex, core1_0.VKSuccess, nil
		} else if cost < minCost {
			bestMemoryTypeIndex = memTypeIndex
			minCost = cost
		}
	}

	if bestMemoryTypeIndex < 0 {
		return -1, core1_0.VKErrorFeatureNotPresent, errors.Wrapf(core1_0.VKErrorFeatureNotPresent.ToError(),
			"no memory type in bits %#x carries the required flags %s", memoryTypeBits, requiredFlags)
	}

	return bestMemoryTypeIndex, core1_0.VKSuccess, nil
}

// AllocateBufferMemory allocates and binds a dedicated block of memory for buffer
func (m *DeviceMemoryProperties) AllocateBufferMemory(
	buffer core1_0.Buffer,
	requiredFlags, preferredFlags core1_0.MemoryPropertyFlags,
) (*DedicatedMemory, common.VkResult, error) {
	memReqs := m.driver.GetBufferMemoryRequirements(buffer)

	var next common.Options
	if m.extensionData.DedicatedAllocations {
		next = khr_dedicated_allocation.MemoryDedicatedAllocateInfo{
			Buffer: buffer,
		}
	}

	mem, res, err := m.allocateVulkanMemory(memReqs, requiredFlags, preferredFlags, next)
	if err != nil {
		return nil, res, err
	}

	res, err = m.driver.BindBufferMemory(buffer, mem.memory, 0)
	if err != nil {
		m.FreeVulkanMemory(mem)
		return nil, res, err
	}

	return mem, res, nil
}

// AllocateImageMemory allocates and binds a dedicated block of memory for image
func (m *DeviceMemoryProperties) AllocateImageMemory(
	image core1_0.Image,
	requiredFlags, preferredFlags core1_0.MemoryPropertyFlags,
) (*DedicatedMemory, common.VkResult, error) {
	memReqs := m.driver.GetImageMemoryRequirements(image)

	var next common.Options
	if m.extensionData.DedicatedAllocations {
		next = khr_dedicated_allocation.MemoryDedicatedAllocateInfo{
			Image: image,
		}
	}

	mem, res, err := m.allocateVulkanMemory(memReqs, requiredFlags, preferredFlags, next)
	if err != nil {
		return nil, res, err
	}

	res, err = m.driver.BindImageMemory(image, mem.memory, 0)
	if err != nil {
		m.FreeVulkanMemory(mem)
		return nil, res, err
	}

	return mem, res, nil
}

func (m *DeviceMemoryProperties) allocateVulkanMemory(
	memReqs *core1_0.MemoryRequirements,
	requiredFlags, preferredFlags core1_0.MemoryPropertyFlags,
	next common.Options,
) (mem *DedicatedMemory, res common.VkResult, err error) {
	memoryTypeIndex, res, err := m.FindMemoryTypeIndex(memReqs.MemoryTypeBits, requiredFlags, preferredFlags)
	if err != nil {
		return nil, res, err
	}

	newDeviceCount := atomic.AddUint32(&m.memoryCount, 1)
	defer func() {
		// If we failed out, roll back the device increment
		if err != nil {
			atomic.AddUint32(&m.memoryCount, ^uint32(0))
		}
	}()

	if int(newDeviceCount) > m.deviceProperties.Limits.MaxMemoryAllocationCount {
		return nil, core1_0.VKErrorTooManyObjects, core1_0.VKErrorTooManyObjects.ToError()
	}

	memory, res, err := m.driver.AllocateMemory(m.allocationCallbacks, core1_0.MemoryAllocateInfo{
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memoryTypeIndex,
		NextOptions:     common.NextOptions{Next: next},
	})
	if err != nil {
		return nil, res, err
	}

	heapIndex := m.MemoryTypeIndexToHeapIndex(memoryTypeIndex)
	atomic.AddInt64(&m.heapBytes[heapIndex], int64(memReqs.Size))

	return &DedicatedMemory{
		memory:          memory,
		memoryTypeIndex: memoryTypeIndex,
		size:            memReqs.Size,
		flags:           m.memoryProperties.MemoryTypes[memoryTypeIndex].PropertyFlags,
	}, res, nil
}

func (m *DeviceMemoryProperties) FreeVulkanMemory(memory *DedicatedMemory) {
	if memory.mapData != nil {
		m.driver.UnmapMemory(memory.memory)
		memory.mapData = nil
	}

	m.driver.FreeMemory(memory.memory, m.allocationCallbacks)

	heapIndex := m.MemoryTypeIndexToHeapIndex(memory.memoryTypeIndex)
	newVal := atomic.AddInt64(&m.heapBytes[heapIndex], int64(-memory.size))
	if newVal < 0 {
		panic(fmt.Sprintf("allocated bytes for heapIndex %d went negative", heapIndex))
	}
	// Decrement
	atomic.AddUint32(&m.memoryCount, ^uint32(0))
}
