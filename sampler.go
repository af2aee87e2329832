package unbound

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// samplerCreateInfo is the only sampler configuration used for unbound sampled images: linear
// filtering, clamped addressing, the full lod range and no anisotropy, compare or custom border.
// Weighted average reduction is the vulkan default, so no reduction mode info is chained.
var samplerCreateInfo = core1_0.SamplerCreateInfo{
	MagFilter:    core1_0.FilterLinear,
	MinFilter:    core1_0.FilterLinear,
	MipmapMode:   core1_0.SamplerMipmapModeLinear,
	AddressModeU: core1_0.SamplerAddressModeClampToEdge,
	AddressModeV: core1_0.SamplerAddressModeClampToEdge,
	AddressModeW: core1_0.SamplerAddressModeClampToEdge,

	MipLodBias:       0,
	AnisotropyEnable: false,
	MaxAnisotropy:    1,

	CompareEnable: false,
	CompareOp:     core1_0.CompareOpNever,

	MinLod: -256,
	MaxLod: 256,

	BorderColor:             core1_0.BorderColorFloatTransparentBlack,
	UnnormalizedCoordinates: false,
}

func (r *Resources) createSampler() error {
	sampler, _, err := r.driver.CreateSampler(r.options.AllocationCallbacks, samplerCreateInfo)
	if err != nil {
		return errors.Wrap(err, "failed to create the null sampler")
	}

	r.sampler = sampler
	r.pushDestroy(func() {
		r.driver.DestroySampler(sampler, r.options.AllocationCallbacks)
	})

	return nil
}
