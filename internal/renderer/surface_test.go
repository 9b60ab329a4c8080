package renderer

import (
	"errors"
	"testing"
)

func TestSurfaceStateRoundTrip(t *testing.T) {
	surface := NewSurface(1280, 800, 2.0)

	state := surface.State()
	if state.Width != 1280 || state.Height != 800 || state.PixelRatio != 2.0 {
		t.Errorf("unexpected initial state %+v", state)
	}

	dw, dh := state.DeviceSize()
	if dw != 2560 || dh != 1600 {
		t.Errorf("device size = %dx%d, want 2560x1600", dw, dh)
	}

	surface.SetState(SurfaceState{Width: 3840, Height: 2160, PixelRatio: 1})
	if got := surface.State(); got.Width != 3840 || got.PixelRatio != 1 {
		t.Errorf("state after SetState = %+v", got)
	}
}

func TestSurfaceExclusiveAcquire(t *testing.T) {
	surface := NewSurface(100, 100, 1)

	if err := surface.Acquire(); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	err := surface.Acquire()
	if err == nil {
		t.Fatal("second acquire should fail while held")
	}
	if !errors.Is(err, ErrSurfaceHeld) {
		t.Errorf("error %v should wrap ErrSurfaceHeld", err)
	}
	if surface.TryAcquire() {
		t.Error("TryAcquire should fail while held")
	}

	surface.Release()
	if !surface.TryAcquire() {
		t.Error("TryAcquire should succeed after release")
	}
	surface.Release()
}
