package unbound

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/unbound/internal/vulkan"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/slog"
)

type lifecycleState uint32

const (
	stateBuilt lifecycleState = iota
	stateInitializing
	stateReady
	stateDestroyed
)

var lifecycleStateMapping = map[lifecycleState]string{
	stateBuilt:        "Built",
	stateInitializing: "Initializing",
	stateReady:        "Ready",
	stateDestroyed:    "Destroyed",
}

func (s lifecycleState) String() string {
	return lifecycleStateMapping[s]
}

// Resources owns the null sampler, buffer, buffer view, images and image views that stand in
// for anything a shader declares but the application left unbound.
//
// Resources are built by New and must have Initialize called once before any of them is
// referenced by submitted shader work. After that every accessor only reads immutable data
// and can be called from any number of goroutines without synchronization.
type Resources struct {
	logger        *slog.Logger
	driver        core1_0.CoreDeviceDriver
	options       CreateOptions
	extensionData *vulkan.ExtensionData
	deviceMemory  *vulkan.DeviceMemoryProperties

	sampler    core1_0.Sampler
	buffer     *Buffer
	bufferView core1_0.BufferView
	images     [imageKindCount]*Image
	views      [accessModeCount]viewSet

	state     atomic.Uint32
	destroyed []func()
}

// New creates every null resource on the provided device
//
// logger - Receives debug records for each construction step. May be nil.
//
// driver - The device the resources are created on
//
// physicalDevice - The PhysicalDevice that owns the device
//
// options - Optional parameters: it is valid to leave all the fields blank
//
// If creating any object fails, everything created so far is destroyed and an error is returned.
func New(logger *slog.Logger, driver core1_0.CoreDeviceDriver, physicalDevice core1_0.PhysicalDevice, options CreateOptions) (resources *Resources, err error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}
	logger.Debug("Resources::New")

	deviceProperties, err := driver.InstanceDriver().GetPhysicalDeviceProperties(physicalDevice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve physical device properties")
	}
	memoryProperties := driver.InstanceDriver().GetPhysicalDeviceMemoryProperties(physicalDevice)

	r := &Resources{
		logger:        logger,
		driver:        driver,
		options:       options,
		extensionData: vulkan.NewExtensionData(driver.Device()),
	}

	r.deviceMemory, err = vulkan.NewDeviceMemoryProperties(
		options.AllocationCallbacks,
		r.extensionData,
		driver,
		deviceProperties,
		memoryProperties,
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			logger.Debug("    Resources::New FAILED", slog.String("Error", err.Error()))
			r.runDestroy()
		}
	}()

	err = r.createSampler()
	if err != nil {
		return nil, err
	}

	err = r.createBuffer(options.bufferSize(deviceProperties.Limits))
	if err != nil {
		return nil, err
	}

	err = r.createBufferView()
	if err != nil {
		return nil, err
	}

	for kind := imageKind(0); kind < imageKindCount; kind++ {
		r.images[kind], err = r.createImage(kind)
		if err != nil {
			return nil, err
		}
	}

	for access := AccessMode(0); access < accessModeCount; access++ {
		r.views[access], err = r.createViews(access)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Resources) pushDestroy(destroy func()) {
	r.destroyed = append(r.destroyed, destroy)
}

func (r *Resources) runDestroy() {
	for i := len(r.destroyed) - 1; i >= 0; i-- {
		r.destroyed[i]()
	}
	r.destroyed = nil
}

// Destroy releases every null resource. The device must be idle: the resources may still be
// referenced by submitted work, including the initialization commands.
//
// Destroy fails without releasing anything while Initialize is still running.
func (r *Resources) Destroy() error {
	r.logger.Debug("Resources::Destroy")

	for {
		previous := lifecycleState(r.state.Load())
		switch previous {
		case stateDestroyed:
			return errors.New("attempted to destroy null resources that were already destroyed")
		case stateInitializing:
			return errors.New("null resources cannot be destroyed while they are being initialized")
		}

		if r.state.CompareAndSwap(uint32(previous), uint32(stateDestroyed)) {
			break
		}
	}

	r.runDestroy()
	return nil
}

// Ready reports whether Initialize has completed its submission
func (r *Resources) Ready() bool {
	return lifecycleState(r.state.Load()) == stateReady
}

// ImageView returns the null view for a binding of the requested view type. sampled selects
// the float view used through samplers, otherwise the unsigned integer storage view is returned.
//
// ImageViewTypeUnspecified returns the 2D view. Any view type outside the seven vulkan image
// view types returns nil.
func (r *Resources) ImageView(viewType core1_0.ImageViewType, sampled bool) *View {
	slot, ok := slotForViewType(viewType)
	if !ok {
		return nil
	}

	return r.views[accessModeFor(sampled)][slot]
}

// Sampler is the null sampler used for every unbound sampler binding
func (r *Resources) Sampler() core1_0.Sampler {
	return r.sampler
}

// Buffer is the null buffer used for every unbound vertex, index, uniform or storage buffer
func (r *Resources) Buffer() *Buffer {
	return r.buffer
}

// BufferView is the R32 unsigned integer view over the whole null buffer, used for every
// unbound texel buffer binding
func (r *Resources) BufferView() core1_0.BufferView {
	return r.bufferView
}

// Image returns the null image backing views of the given image type, or nil for an
// unknown image type
func (r *Resources) Image(imageType core1_0.ImageType) *Image {
	for _, image := range r.images {
		if image.imageType == imageType {
			return image
		}
	}

	return nil
}
