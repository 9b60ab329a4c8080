package renderer

import (
	"errors"
	"sync"
)

// ErrSurfaceHeld is returned by Acquire when the surface is already held.
var ErrSurfaceHeld = errors.New("render surface is held exclusively")

// SurfaceState is the live render target configuration: logical size plus
// device pixel ratio.
type SurfaceState struct {
	Width      int32
	Height     int32
	PixelRatio float64
}

// DeviceSize returns the size of the backing buffer in device pixels.
func (s SurfaceState) DeviceSize() (int32, int32) {
	return int32(float64(s.Width) * s.PixelRatio), int32(float64(s.Height) * s.PixelRatio)
}

// Surface owns the live SurfaceState. The export pipeline holds it
// exclusively for its whole duration (save, mutate, restore); the interactive
// frame loop acquires it per frame, so a surface-size mutation can never
// interleave with an interactive render.
type Surface struct {
	mu    sync.Mutex
	state SurfaceState
	held  bool
}

func NewSurface(width, height int32, pixelRatio float64) *Surface {
	return &Surface{state: SurfaceState{Width: width, Height: height, PixelRatio: pixelRatio}}
}

// State returns a copy of the current surface state.
func (s *Surface) State() SurfaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState replaces the surface state. Callers mutating for an export must
// hold the surface via Acquire.
func (s *Surface) SetState(state SurfaceState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Acquire takes exclusive hold of the surface, failing if it is already
// held. The holder must call Release.
func (s *Surface) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return ErrSurfaceHeld
	}
	s.held = true
	return nil
}

// TryAcquire is Acquire without an error, for the frame loop: a false return
// means skip this frame.
func (s *Surface) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return false
	}
	s.held = true
	return true
}

// Release gives up an exclusive hold.
func (s *Surface) Release() {
	s.mu.Lock()
	s.held = false
	s.mu.Unlock()
}
