package unbound

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/unbound/internal/vulkan"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/slog"
)

const (
	imageFormat = core1_0.FormatR32UnsignedInt
	imageUsage  = core1_0.ImageUsageTransferDst | core1_0.ImageUsageSampled | core1_0.ImageUsageStorage
	imageLayout = core1_0.ImageLayoutGeneral
	imageAccess = core1_0.AccessShaderRead
)

// Image is one of the three 1x1 null images. Views onto it are created by the owning Resources.
type Image struct {
	handle    core1_0.Image
	imageType core1_0.ImageType
	flags     core1_0.ImageCreateFlags
	layers    int
	mipLevels int
	memory    *vulkan.DedicatedMemory
}

func (i *Image) Handle() core1_0.Image           { return i.handle }
func (i *Image) Type() core1_0.ImageType         { return i.imageType }
func (i *Image) Flags() core1_0.ImageCreateFlags { return i.flags }
func (i *Image) ArrayLayers() int                { return i.layers }
func (i *Image) MipLevels() int                  { return i.mipLevels }
func (i *Image) MemoryTypeIndex() int            { return i.memory.MemoryTypeIndex() }
func (i *Image) Format() core1_0.Format          { return imageFormat }
func (i *Image) Usage() core1_0.ImageUsageFlags  { return imageUsage }
func (i *Image) Extent() core1_0.Extent3D        { return core1_0.Extent3D{Width: 1, Height: 1, Depth: 1} }

// Layout is the layout the image holds once the Initialize submission has executed. Before
// that the image is still in ImageLayoutUndefined, but the layout is reported regardless.
func (i *Image) Layout() core1_0.ImageLayout { return imageLayout }

// SubresourceRange covers every mip level and array layer of the image
func (i *Image) SubresourceRange() core1_0.ImageSubresourceRange {
	return core1_0.ImageSubresourceRange{
		AspectMask:     core1_0.ImageAspectColor,
		BaseMipLevel:   0,
		LevelCount:     i.mipLevels,
		BaseArrayLayer: 0,
		LayerCount:     i.layers,
	}
}

func (r *Resources) createImage(kind imageKind) (*Image, error) {
	desc := imageKinds[kind]
	flags := core1_0.ImageCreateMutableFormat | desc.flags

	r.logger.Debug("Resources::createImage",
		slog.String("ImageType", desc.imageType.String()),
		slog.Int("ArrayLayers", desc.layers),
	)

	handle, _, err := r.driver.CreateImage(r.options.AllocationCallbacks, core1_0.ImageCreateInfo{
		Flags:         flags,
		ImageType:     desc.imageType,
		Format:        imageFormat,
		Extent:        core1_0.Extent3D{Width: 1, Height: 1, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   desc.layers,
		Samples:       core1_0.Samples1,
		Tiling:        core1_0.ImageTilingOptimal,
		Usage:         imageUsage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: core1_0.ImageLayoutUndefined,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create the null %s", desc.imageType)
	}
	r.pushDestroy(func() {
		r.driver.DestroyImage(handle, r.options.AllocationCallbacks)
	})

	memory, _, err := r.deviceMemory.AllocateImageMemory(handle, 0, core1_0.MemoryPropertyDeviceLocal)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate memory for the null %s", desc.imageType)
	}
	r.pushDestroy(func() {
		r.deviceMemory.FreeVulkanMemory(memory)
	})

	return &Image{
		handle:    handle,
		imageType: desc.imageType,
		flags:     flags,
		layers:    desc.layers,
		mipLevels: 1,
		memory:    memory,
	}, nil
}
