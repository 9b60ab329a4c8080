package engine

import (
	"Facade3D/internal/export"
	"Facade3D/internal/facade"
	"Facade3D/internal/logger"
	"Facade3D/internal/renderer"
	"Facade3D/internal/scene"

	"go.uber.org/zap"
)

// Enum for render backends
type backendKind int

const (
	OPENGL backendKind = iota
	SOFTWARE
)

// Studio is the application facade: it owns the facade config, the selected
// lighting preset, the render surface and backend, and the export pipeline.
// All shared state lives here and is passed explicitly into the scene
// assembler and export pipeline, never looked up ambiently.
type Studio struct {
	Width      int32
	Height     int32
	PixelRatio float64

	// Key-triggered exports land in ExportDir at ExportWidth x ExportHeight.
	ExportDir    string
	ExportWidth  int32
	ExportHeight int32

	Camera *renderer.Camera
	Light  *renderer.Light

	backend  renderer.Backend
	surface  *renderer.Surface
	pipeline *export.Pipeline

	config facade.Config
	preset scene.Preset
	cells  []facade.Cell

	exportQueue chan struct{}
}

// NewStudio wires a studio around the chosen backend with default config
// (10x6 grid, seed 1, daylight preset). The backend is not initialized yet;
// Run (interactive) or Start (headless) does that.
func NewStudio(kind backendKind) *Studio {
	logger.Init()
	logger.Log.Info("Facade3D initializing...")

	var backend renderer.Backend
	if kind == OPENGL {
		backend = renderer.NewOpenGLBackend()
	} else {
		backend = renderer.NewSoftwareBackend()
	}

	preset, _ := scene.PresetFor(scene.Daylight)
	studio := &Studio{
		Width:        1280,
		Height:       800,
		PixelRatio:   1.0,
		ExportDir:    ".",
		ExportWidth:  7680,
		ExportHeight: 4320,
		backend:      backend,
		config:       facade.DefaultConfig(),
		preset:       preset,
		exportQueue:  make(chan struct{}, 1),
	}
	return studio
}

// Start initializes the backend and surface and builds the first scene.
// Interactive use goes through Run, which calls Start itself.
func (s *Studio) Start() error {
	s.surface = renderer.NewSurface(s.Width, s.Height, s.PixelRatio)
	dw, dh := s.surface.State().DeviceSize()
	if err := s.backend.Init(dw, dh); err != nil {
		return err
	}
	s.pipeline = export.NewPipeline(s.backend, s.surface)
	s.Camera = renderer.NewDefaultCamera(s.Width, s.Height)
	return s.rebuildScene()
}

// Configure replaces the facade grid parameters. Takes effect on the next
// Start or Randomize; callers wanting an immediate rebuild use Randomize.
func (s *Studio) Configure(columns, rows, seed int) {
	s.config = facade.Config{Columns: columns, Rows: rows, Seed: seed}
}

// Config returns the current facade configuration.
func (s *Studio) Config() facade.Config {
	return s.config
}

// Preset returns the active lighting preset.
func (s *Studio) Preset() scene.Preset {
	return s.preset
}

// Surface exposes the render surface, mostly for tests and the frame loop.
func (s *Studio) Surface() *renderer.Surface {
	return s.surface
}

// Randomize advances the facade seed and regenerates the grid.
func (s *Studio) Randomize() error {
	s.config.Seed = facade.NextSeed(s.config.Seed)
	logger.Log.Info("Facade randomized", zap.Int("seed", s.config.Seed))
	return s.rebuildScene()
}

// SetPreset switches the lighting preset. Lighting only: the facade cells
// and their geometry are left untouched.
func (s *Studio) SetPreset(id scene.PresetID) error {
	preset, err := scene.PresetFor(id)
	if err != nil {
		return err
	}
	s.preset = preset
	s.Light = preset.Sunlight()
	sky := preset.Sky
	s.backend.SetSky(&sky)
	logger.Log.Info("Lighting preset selected", zap.String("preset", string(id)))
	return nil
}

// rebuildScene regenerates cells from the config and reloads the backend
// with the assembled scene.
func (s *Studio) rebuildScene() error {
	cells, err := facade.Generate(s.config)
	if err != nil {
		return err
	}
	s.cells = cells

	sc := scene.Assemble(cells, s.preset)
	s.backend.ClearModels()
	for _, model := range sc.Models {
		s.backend.AddModel(model)
	}
	s.backend.SetSky(sc.Sky)
	s.backend.SetPost(sc.Post)
	s.Light = sc.Light

	logger.Log.Info("Scene rebuilt",
		zap.Int("columns", s.config.Columns),
		zap.Int("rows", s.config.Rows),
		zap.Int("seed", s.config.Seed),
		zap.Int("cells", len(cells)))
	return nil
}

// RenderFrame draws one interactive frame, skipped without blocking while an
// export holds the surface.
func (s *Studio) RenderFrame() bool {
	if !s.surface.TryAcquire() {
		return false
	}
	defer s.surface.Release()
	s.backend.Render(*s.Camera, s.Light)
	return true
}

// RenderHighRes produces one still frame at the requested resolution without
// disturbing the viewport. samples is advisory.
func (s *Studio) RenderHighRes(width, height int32, samples int) (*export.ImageHandle, error) {
	return s.pipeline.Export(*s.Camera, s.Light, export.Request{
		Width:   width,
		Height:  height,
		Samples: samples,
	})
}

// Cleanup releases backend resources.
func (s *Studio) Cleanup() {
	s.backend.Cleanup()
}
