package unbound

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"
)

// BuildStatsString returns a JSON description of every null resource: the buffer, the images
// with the memory types they were placed in, and the views of both access modes.
func (r *Resources) BuildStatsString() string {
	r.logger.Debug("Resources::BuildStatsString")

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("State").String(lifecycleState(r.state.Load()).String())
	obj.Name("DeviceMemoryAllocations").Int(int(r.deviceMemory.AllocationCount()))

	if r.buffer != nil {
		bufferObj := obj.Name("Buffer").Object()
		r.buffer.printParameters(&bufferObj)
		bufferObj.End()
	}

	imageArray := obj.Name("Images").Array()
	for _, image := range r.images {
		if image == nil {
			continue
		}

		imageObj := imageArray.Object()
		image.printParameters(&imageObj)
		imageObj.End()
	}
	imageArray.End()

	viewsObj := obj.Name("Views").Object()
	for access, views := range r.views {
		viewArray := viewsObj.Name(AccessMode(access).String()).Array()
		for _, view := range views {
			if view == nil {
				continue
			}

			viewObj := viewArray.Object()
			view.printParameters(&viewObj)
			viewObj.End()
		}
		viewArray.End()
	}
	viewsObj.End()

	obj.End()

	str := string(writer.Bytes())
	r.logger.Debug("    Resources::BuildStatsString", slog.Int("Length", len(str)))
	return str
}

func (b *Buffer) printParameters(json *jwriter.ObjectState) {
	json.Name("Size").Int(b.size)
	json.Name("Usage").String(b.usage.String())
	json.Name("MemoryTypeIndex").Int(b.memory.MemoryTypeIndex())
	json.Name("MemoryProperties").String(b.memory.PropertyFlags().String())
	json.Name("AllocationSize").Int(b.memory.Size())
}

func (i *Image) printParameters(json *jwriter.ObjectState) {
	json.Name("Type").String(i.imageType.String())
	json.Name("Flags").String(i.flags.String())
	json.Name("ArrayLayers").Int(i.layers)
	json.Name("MipLevels").Int(i.mipLevels)
	json.Name("MemoryTypeIndex").Int(i.memory.MemoryTypeIndex())
	json.Name("AllocationSize").Int(i.memory.Size())
}

func (v *View) printParameters(json *jwriter.ObjectState) {
	json.Name("Type").String(v.viewType.String())
	json.Name("Format").String(v.Format().String())
	json.Name("Image").String(v.image.imageType.String())
	json.Name("LayerCount").Int(v.layerCount)
}
