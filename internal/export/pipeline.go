package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"sync"
	"time"

	"Facade3D/internal/logger"
	"Facade3D/internal/renderer"

	"go.uber.org/zap"
)

// ErrInFlight is returned when an export is requested while one is already
// running. The second request is rejected before the surface is touched.
var ErrInFlight = errors.New("export already in flight")

// ErrRequest marks an invalid export request (non-positive dimensions).
var ErrRequest = errors.New("invalid export request")

// surfaceWait bounds how long an export waits for the frame loop to let go
// of the surface. A per-frame hold clears in well under this; a hold that
// outlasts it is a real conflict.
const surfaceWait = 250 * time.Millisecond

// State tracks where the pipeline is in one export pass.
type State int

const (
	Idle State = iota
	Resizing
	Rendering
	Capturing
	Restoring
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resizing:
		return "resizing"
	case Rendering:
		return "rendering"
	case Capturing:
		return "capturing"
	case Restoring:
		return "restoring"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request asks for one still frame at a resolution decoupled from the
// viewport. Samples is advisory only.
type Request struct {
	Width   int32
	Height  int32
	Samples int
}

// ImageHandle is the finished export: a losslessly encoded image held in
// memory. Persisting it is the caller's concern.
type ImageHandle struct {
	Data   []byte
	Width  int32
	Height int32
	Format string
}

// Pipeline runs high-resolution exports against the shared render surface.
// One pass: save the surface state, drop pixel ratio to 1, resize, render
// exactly once, read back and encode, then restore the saved state. The
// restore runs on every exit path; whatever an export did, the interactive
// view comes back exactly as it was.
type Pipeline struct {
	backend renderer.Backend
	surface *renderer.Surface

	mu       sync.Mutex
	inFlight bool
	state    State
}

func NewPipeline(backend renderer.Backend, surface *renderer.Surface) *Pipeline {
	logger.Init()
	return &Pipeline{backend: backend, surface: surface, state: Idle}
}

// State reports the pipeline's current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Export runs one export pass. Rejects overlapping calls; the pixel ratio is
// forced to 1 during the pass, trading anti-aliasing quality for memory
// headroom at very large resolutions.
func (p *Pipeline) Export(camera renderer.Camera, light *renderer.Light, req Request) (*ImageHandle, error) {
	if req.Width < 1 || req.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrRequest, req.Width, req.Height)
	}

	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.inFlight = true
	p.mu.Unlock()

	// Excludes the interactive frame loop for the whole pass.
	if err := p.acquireSurface(); err != nil {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
		return nil, fmt.Errorf("export: %w", err)
	}

	saved := p.surface.State()
	logger.Log.Info("Export started",
		zap.Int32("width", req.Width), zap.Int32("height", req.Height),
		zap.Int("samples", req.Samples))

	handle, err := p.run(camera, light, req, saved)

	// Restoring: runs whether the pass succeeded or not.
	p.setState(Restoring)
	p.surface.SetState(saved)
	dw, dh := saved.DeviceSize()
	if restoreErr := p.backend.Resize(dw, dh); restoreErr != nil {
		logger.Log.Error("Export could not restore render surface", zap.Error(restoreErr))
	}
	p.surface.Release()

	p.mu.Lock()
	if err != nil {
		p.state = Failed
	} else {
		p.state = Idle
	}
	p.inFlight = false
	p.mu.Unlock()

	if err != nil {
		logger.Log.Error("Export failed", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Export finished", zap.Int("bytes", len(handle.Data)))
	return handle, nil
}

// acquireSurface takes the surface, waiting out a transient per-frame hold
// so only a genuine long-lived holder turns into an error.
func (p *Pipeline) acquireSurface() error {
	deadline := time.Now().Add(surfaceWait)
	for {
		err := p.surface.Acquire()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Millisecond)
	}
}

// run performs the resize/render/capture steps. Surface restoration is the
// caller's job so it cannot be skipped on an error path.
func (p *Pipeline) run(camera renderer.Camera, light *renderer.Light, req Request, saved renderer.SurfaceState) (*ImageHandle, error) {
	p.setState(Resizing)
	p.surface.SetState(renderer.SurfaceState{Width: req.Width, Height: req.Height, PixelRatio: 1})
	if err := p.backend.Resize(req.Width, req.Height); err != nil {
		return nil, fmt.Errorf("export resize to %dx%d: %w", req.Width, req.Height, err)
	}

	// The export target keeps the viewport's framing.
	camera.SetAspectRatio(float32(req.Width) / float32(req.Height))

	p.setState(Rendering)
	p.backend.Render(camera, light)

	p.setState(Capturing)
	img, err := p.backend.Capture()
	if err != nil {
		return nil, fmt.Errorf("export capture: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export encode: %w", err)
	}

	return &ImageHandle{
		Data:   buf.Bytes(),
		Width:  req.Width,
		Height: req.Height,
		Format: "png",
	}, nil
}
