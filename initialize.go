package unbound

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/slog"
)

// Initialize records and submits the one-time commands that zero the null buffer and move
// the null images from their undefined initial layout to ImageLayoutGeneral with zeroed
// contents.
//
// The submission has no fence or semaphores and Initialize does not wait for it: queue
// submission order guarantees the resources are ready for any shader work submitted after
// it. Initialize may only succeed once.
func (r *Resources) Initialize() error {
	r.logger.Debug("Resources::Initialize",
		slog.Int("QueueFamilyIndex", r.options.QueueFamilyIndex),
		slog.Int("QueueIndex", r.options.QueueIndex),
	)

	if !r.state.CompareAndSwap(uint32(stateBuilt), uint32(stateInitializing)) {
		return errors.Newf("null resources cannot be initialized in state %s", lifecycleState(r.state.Load()))
	}

	err := r.submitInitialization()
	if err != nil {
		r.logger.Debug("    Resources::Initialize FAILED", slog.String("Error", err.Error()))
		r.state.Store(uint32(stateBuilt))
		return err
	}

	// Destroy refuses to run while initializing, so the initialization pool is never orphaned
	r.state.Store(uint32(stateReady))

	return nil
}

func (r *Resources) submitInitialization() error {
	pool, _, err := r.driver.CreateCommandPool(r.options.AllocationCallbacks, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateTransient,
		QueueFamilyIndex: r.options.QueueFamilyIndex,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create the initialization command pool")
	}
	// The pool outlives this call because the submission is never waited on
	r.pushDestroy(func() {
		r.driver.DestroyCommandPool(pool, r.options.AllocationCallbacks)
	})

	commandBuffers, _, err := r.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to allocate the initialization command buffer")
	}
	commandBuffer := commandBuffers[0]

	_, err = r.driver.BeginCommandBuffer(commandBuffer, core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
	if err != nil {
		return errors.Wrap(err, "failed to begin the initialization command buffer")
	}

	err = r.initBuffer(commandBuffer)
	if err != nil {
		return err
	}

	for _, image := range r.images {
		err = r.initImage(commandBuffer, image)
		if err != nil {
			return err
		}
	}

	_, err = r.driver.EndCommandBuffer(commandBuffer)
	if err != nil {
		return errors.Wrap(err, "failed to end the initialization command buffer")
	}

	queue := r.driver.GetQueue(r.options.QueueFamilyIndex, r.options.QueueIndex)
	_, err = r.driver.QueueSubmit(queue, nil, core1_0.SubmitInfo{
		CommandBuffers: []core1_0.CommandBuffer{commandBuffer},
	})
	if err != nil {
		return errors.Wrap(err, "failed to submit the initialization command buffer")
	}

	return nil
}

func (r *Resources) initBuffer(commandBuffer core1_0.CommandBuffer) error {
	r.driver.CmdFillBuffer(commandBuffer, r.buffer.handle, 0, r.buffer.size, 0)

	err := r.driver.CmdPipelineBarrier(
		commandBuffer,
		core1_0.PipelineStageTransfer,
		r.options.shaderStages(),
		0, nil,
		[]core1_0.BufferMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessTransferWrite,
				DstAccessMask:       bufferAccess,
				SrcQueueFamilyIndex: -1,
				DstQueueFamilyIndex: -1,
				Buffer:              r.buffer.handle,
				Offset:              0,
				Size:                r.buffer.size,
			},
		},
		nil)
	if err != nil {
		return errors.Wrap(err, "failed to record the null buffer barrier")
	}

	return nil
}

func (r *Resources) initImage(commandBuffer core1_0.CommandBuffer, image *Image) error {
	subresources := image.SubresourceRange()

	err := r.driver.CmdPipelineBarrier(
		commandBuffer,
		core1_0.PipelineStageTopOfPipe,
		core1_0.PipelineStageTransfer,
		0, nil, nil,
		[]core1_0.ImageMemoryBarrier{
			{
				SrcAccessMask:       0,
				DstAccessMask:       core1_0.AccessTransferWrite,
				OldLayout:           core1_0.ImageLayoutUndefined,
				NewLayout:           imageLayout,
				SrcQueueFamilyIndex: -1,
				DstQueueFamilyIndex: -1,
				Image:               image.handle,
				SubresourceRange:    subresources,
			},
		})
	if err != nil {
		return errors.Wrapf(err, "failed to record the null %s layout transition", image.imageType)
	}

	r.driver.CmdClearColorImage(commandBuffer, image.handle, imageLayout, core1_0.ClearValueUint32{0, 0, 0, 0}, subresources)

	err = r.driver.CmdPipelineBarrier(
		commandBuffer,
		core1_0.PipelineStageTransfer,
		r.options.shaderStages(),
		0, nil, nil,
		[]core1_0.ImageMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessTransferWrite,
				DstAccessMask:       imageAccess,
				OldLayout:           imageLayout,
				NewLayout:           imageLayout,
				SrcQueueFamilyIndex: -1,
				DstQueueFamilyIndex: -1,
				Image:               image.handle,
				SubresourceRange:    subresources,
			},
		})
	if err != nil {
		return errors.Wrapf(err, "failed to record the null %s clear barrier", image.imageType)
	}

	return nil
}
