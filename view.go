package unbound

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// View is a non-owning image view onto one of the null images. It is only valid for the
// lifetime of the Resources that created it.
type View struct {
	handle     core1_0.ImageView
	image      *Image
	viewType   core1_0.ImageViewType
	access     AccessMode
	layerCount int
}

func (v *View) Handle() core1_0.ImageView   { return v.handle }
func (v *View) Image() *Image               { return v.image }
func (v *View) Type() core1_0.ImageViewType { return v.viewType }
func (v *View) Access() AccessMode          { return v.access }
func (v *View) Format() core1_0.Format      { return v.access.Format() }
func (v *View) LayerCount() int             { return v.layerCount }

// Layout is the layout of the underlying image after Initialize, see Image.Layout
func (v *View) Layout() core1_0.ImageLayout { return v.image.Layout() }

// SubresourceRange is the color range this view addresses: mip 0 and its layers starting at 0
func (v *View) SubresourceRange() core1_0.ImageSubresourceRange {
	return core1_0.ImageSubresourceRange{
		AspectMask:     core1_0.ImageAspectColor,
		BaseMipLevel:   0,
		LevelCount:     1,
		BaseArrayLayer: 0,
		LayerCount:     v.layerCount,
	}
}

type viewSet [viewSlotCount]*View

// createViews builds every view shape for one access mode. Array views over the single-layer
// 1D image are degenerate but are still distinct views of the array type.
func (r *Resources) createViews(access AccessMode) (viewSet, error) {
	var views viewSet

	for slot := viewSlot(0); slot < viewSlotCount; slot++ {
		shape := viewShapes[slot]
		image := r.images[shape.image]

		view := &View{
			image:      image,
			viewType:   shape.viewType,
			access:     access,
			layerCount: shape.layers,
		}

		handle, _, err := r.driver.CreateImageView(r.options.AllocationCallbacks, core1_0.ImageViewCreateInfo{
			Image:            image.handle,
			ViewType:         shape.viewType,
			Format:           access.Format(),
			SubresourceRange: view.SubresourceRange(),
		})
		if err != nil {
			return views, errors.Wrapf(err, "failed to create the %s null %s", access, shape.viewType)
		}
		r.pushDestroy(func() {
			r.driver.DestroyImageView(handle, r.options.AllocationCallbacks)
		})

		view.handle = handle
		views[slot] = view
	}

	return views, nil
}
