package unbound

import (
	"math"

	"github.com/vkngwrapper/core/v3/core1_0"
)

// ImageViewTypeUnspecified is the view type reported for a binding whose shader declared no
// dimensionality, such as an unbound implicit sampler. It resolves to the 2D view.
const ImageViewTypeUnspecified core1_0.ImageViewType = math.MaxInt32

// AccessMode indicates whether a shader binding reads through a sampler or accesses the
// resource as a storage image
type AccessMode int

const (
	AccessSampled AccessMode = iota
	AccessStorage

	accessModeCount
)

var accessModeMapping = map[AccessMode]string{
	AccessSampled: "AccessSampled",
	AccessStorage: "AccessStorage",
}

func (m AccessMode) String() string {
	return accessModeMapping[m]
}

// Format is the single-channel format views of this access mode are created with
func (m AccessMode) Format() core1_0.Format {
	if m == AccessStorage {
		return core1_0.FormatR32UnsignedInt
	}

	return core1_0.FormatR32SignedFloat
}

func accessModeFor(sampled bool) AccessMode {
	if sampled {
		return AccessSampled
	}
	return AccessStorage
}

type imageKind int

const (
	image1D imageKind = iota
	image2D
	image3D

	imageKindCount
)

var imageKinds = [imageKindCount]struct {
	imageType core1_0.ImageType
	layers    int
	flags     core1_0.ImageCreateFlags
}{
	image1D: {imageType: core1_0.ImageType1D, layers: 1},
	// Six layers and cube compatibility so the same image can back cube and cube array views
	image2D: {imageType: core1_0.ImageType2D, layers: 6, flags: core1_0.ImageCreateCubeCompatible},
	image3D: {imageType: core1_0.ImageType3D, layers: 1},
}

type viewSlot int

const (
	slot1D viewSlot = iota
	slot1DArray
	slot2D
	slot2DArray
	slotCube
	slotCubeArray
	slot3D

	viewSlotCount
)

var viewShapes = [viewSlotCount]struct {
	viewType core1_0.ImageViewType
	image    imageKind
	layers   int
}{
	slot1D:        {viewType: core1_0.ImageViewType1D, image: image1D, layers: 1},
	slot1DArray:   {viewType: core1_0.ImageViewType1DArray, image: image1D, layers: 1},
	slot2D:        {viewType: core1_0.ImageViewType2D, image: image2D, layers: 1},
	slot2DArray:   {viewType: core1_0.ImageViewType2DArray, image: image2D, layers: 1},
	slotCube:      {viewType: core1_0.ImageViewTypeCube, image: image2D, layers: 6},
	slotCubeArray: {viewType: core1_0.ImageViewTypeCubeArray, image: image2D, layers: 6},
	slot3D:        {viewType: core1_0.ImageViewType3D, image: image3D, layers: 1},
}

func slotForViewType(viewType core1_0.ImageViewType) (viewSlot, bool) {
	switch viewType {
	case core1_0.ImageViewType1D:
		return slot1D, true
	case core1_0.ImageViewType1DArray:
		return slot1DArray, true
	// When implicit samplers are unbound, assume 2D in the shader
	case ImageViewTypeUnspecified, core1_0.ImageViewType2D:
		return slot2D, true
	case core1_0.ImageViewType2DArray:
		return slot2DArray, true
	case core1_0.ImageViewTypeCube:
		return slotCube, true
	case core1_0.ImageViewTypeCubeArray:
		return slotCubeArray, true
	case core1_0.ImageViewType3D:
		return slot3D, true
	}

	return 0, false
}
