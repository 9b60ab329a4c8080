package renderer

import (
	"errors"
	"image"
)

var Debug bool = false
var DepthTestEnabled bool = true

// ErrSurfaceTooLarge is returned by Resize when the requested dimensions
// exceed what the backend can allocate.
var ErrSurfaceTooLarge = errors.New("requested render surface exceeds backend limits")

// Backend is a pluggable render backend. OpenGLBackend draws into a live
// window, SoftwareBackend rasterizes on the CPU; the export pipeline and
// tests run against either through this interface.
type Backend interface {
	Init(width, height int32) error
	// Resize reallocates the target buffer in device pixels. Fails with
	// ErrSurfaceTooLarge when the dimensions cannot be allocated.
	Resize(width, height int32) error
	AddModel(model *Model)
	RemoveModel(model *Model)
	// ClearModels drops the whole scene, used on facade rebuild.
	ClearModels()
	SetSky(sky *Sky)
	SetPost(post PostConfig)
	// Render draws exactly one frame of the current scene.
	Render(camera Camera, light *Light)
	// Capture reads back the last rendered frame.
	Capture() (image.Image, error)
	// MaxDimension is the largest edge length Resize will accept.
	MaxDimension() int32
	Cleanup()
}
