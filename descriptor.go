package unbound

import "github.com/vkngwrapper/core/v3/core1_0"

// SamplerDescriptor describes the null sampler for a DescriptorTypeSampler write
func (r *Resources) SamplerDescriptor() core1_0.DescriptorImageInfo {
	return core1_0.DescriptorImageInfo{
		Sampler: r.sampler,
	}
}

// BufferDescriptor describes the whole null buffer for uniform and storage buffer writes
func (r *Resources) BufferDescriptor() core1_0.DescriptorBufferInfo {
	return core1_0.DescriptorBufferInfo{
		Buffer: r.buffer.handle,
		Offset: 0,
		Range:  r.buffer.size,
	}
}

// BufferViewDescriptor is the null texel buffer view for uniform and storage texel buffer writes
func (r *Resources) BufferViewDescriptor() core1_0.BufferView {
	return r.bufferView
}

// ImageDescriptor describes the null view for the requested view type, paired with the
// null sampler so it also serves combined image sampler writes. ok is false when ImageView
// would return nil.
//
// The descriptor always names ImageLayoutGeneral. It may be written before Initialize, but
// only work submitted after Initialize may read through it.
func (r *Resources) ImageDescriptor(viewType core1_0.ImageViewType, sampled bool) (info core1_0.DescriptorImageInfo, ok bool) {
	view := r.ImageView(viewType, sampled)
	if view == nil {
		return info, false
	}

	return core1_0.DescriptorImageInfo{
		Sampler:     r.sampler,
		ImageView:   view.handle,
		ImageLayout: view.Layout(),
	}, true
}
