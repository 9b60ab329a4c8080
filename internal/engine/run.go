package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"Facade3D/internal/logger"
	"Facade3D/internal/renderer"
	"Facade3D/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var refreshRate time.Duration = 1000 / 60 // 60 FPS

// Run opens a window and drives the interactive loop until it is closed.
// Key bindings: R regenerates the facade, 1/2/3 switch lighting presets,
// E exports a high-resolution still in the background.
func (s *Studio) Run(x, y int) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw: %v", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(s.Width), int(s.Height), "Facade3D", nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window: %v", zap.Error(err))
		return
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		logger.Log.Error("Could not initialize OpenGL: %v", zap.Error(err))
		return
	}
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	window.SetPos(x, y)

	// GLFW reports framebuffer size in device pixels already, so the
	// studio pixel ratio follows the window's content scale.
	scaleX, _ := window.GetContentScale()
	s.PixelRatio = float64(scaleX)

	if err := s.Start(); err != nil {
		logger.Log.Error("Could not start studio", zap.Error(err))
		return
	}
	defer s.Cleanup()

	window.SetKeyCallback(s.keyCallback)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width < 1 || height < 1 {
			return
		}
		if !s.surface.TryAcquire() {
			// Export in flight; it restores its own saved state, the
			// next resize event catches the window up.
			return
		}
		defer s.surface.Release()
		s.surface.SetState(renderer.SurfaceState{
			Width:      int32(float64(width) / s.PixelRatio),
			Height:     int32(float64(height) / s.PixelRatio),
			PixelRatio: s.PixelRatio,
		})
		if err := s.backend.Resize(int32(width), int32(height)); err != nil {
			logger.Log.Error("Window resize failed", zap.Error(err))
			return
		}
		s.Camera.SetAspectRatio(float32(width) / float32(height))
	})

	for !window.ShouldClose() {
		s.RenderFrame()
		window.SwapBuffers()
		glfw.PollEvents()
		// GL calls are only valid on this thread, so queued exports run
		// here between frames instead of on their own goroutine.
		s.drainExport()
		time.Sleep(refreshRate * time.Millisecond)
	}
}

func (s *Studio) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyR:
		if err := s.Randomize(); err != nil {
			logger.Log.Error("Randomize failed", zap.Error(err))
		}
	case glfw.Key1:
		s.selectPreset(0)
	case glfw.Key2:
		s.selectPreset(1)
	case glfw.Key3:
		s.selectPreset(2)
	case glfw.KeyE:
		if !s.QueueExport() {
			logger.Log.Warn("Export already queued")
		}
	}
}

// QueueExport requests one high-resolution export; the render loop picks it
// up between frames. Returns false when one is already waiting.
func (s *Studio) QueueExport() bool {
	select {
	case s.exportQueue <- struct{}{}:
		return true
	default:
		return false
	}
}

// drainExport runs at most one queued export on the calling thread.
func (s *Studio) drainExport() bool {
	select {
	case <-s.exportQueue:
		s.exportStill()
		return true
	default:
		return false
	}
}

func (s *Studio) selectPreset(index int) {
	ids := scene.PresetIDs()
	if index < 0 || index >= len(ids) {
		return
	}
	if err := s.SetPreset(ids[index]); err != nil {
		logger.Log.Error("Preset switch failed", zap.Error(err))
	}
}

// exportStill runs one export and writes the result into ExportDir.
func (s *Studio) exportStill() {
	handle, err := s.RenderHighRes(s.ExportWidth, s.ExportHeight, 1)
	if err != nil {
		logger.Log.Error("Export failed", zap.Error(err))
		return
	}
	name := filepath.Join(s.ExportDir, "facade-"+time.Now().Format("20060102-150405")+".png")
	if err := os.WriteFile(name, handle.Data, 0o644); err != nil {
		logger.Log.Error("Could not write export", zap.String("file", name), zap.Error(err))
		return
	}
	logger.Log.Info("Export written", zap.String("file", name), zap.Int("bytes", len(handle.Data)))
}
