package scene

import (
	"Facade3D/internal/facade"
	"Facade3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is one renderable composition: facade geometry, ground plane, the
// preset's sun light and sky, and the post-processing stack.
type Scene struct {
	Models []*renderer.Model
	Light  *renderer.Light
	Sky    *renderer.Sky
	Post   renderer.PostConfig
}

// groundExtent is the side length of the ground slab under the facade.
const groundExtent float32 = 60

// Assemble composes the generated cells and the active preset into a scene.
// Deterministic and idempotent: identical inputs produce an identical scene.
// All frame segments share one instanced box mesh, as do glass panels and
// louver slats, so the per-class material stays a single entity and the draw
// count stays flat no matter the grid size.
func Assemble(cells []facade.Cell, preset Preset) *Scene {
	frameCount := len(cells) * 4
	glassCount := len(cells)
	slatCount := 0
	for _, cell := range cells {
		if cell.Louvers != nil {
			slatCount += cell.Louvers.Density
		}
	}

	frames := renderer.NewBox("facade-frames", Concrete)
	frames.SetInstanceCount(frameCount)
	glass := renderer.NewBox("facade-glass", Glass)
	glass.SetInstanceCount(glassCount)
	slats := renderer.NewBox("facade-louvers", Wood)
	slats.SetInstanceCount(slatCount)

	ident := mgl32.QuatIdent()
	openW, _ := facade.Opening()

	frameIdx, glassIdx, slatIdx := 0, 0, 0
	for _, cell := range cells {
		for _, seg := range cell.FrameSegments() {
			frames.SetInstanceTransform(frameIdx, seg.Center, ident, seg.Size)
			frameIdx++
		}

		panel := cell.GlassPanel()
		glass.SetInstanceTransform(glassIdx, panel.Center, ident, panel.Size)
		glassIdx++

		if cell.Louvers != nil {
			tilt := mgl32.QuatRotate(-cell.Louvers.Tilt, mgl32.Vec3{1, 0, 0})
			size := mgl32.Vec3{openW, facade.SlatThickness, facade.SlatDepth}
			for _, offset := range cell.SlatOffsets() {
				pos := cell.Center.Add(mgl32.Vec3{0, offset, facade.FrameDepth * 0.1})
				slats.SetInstanceTransform(slatIdx, pos, tilt, size)
				slatIdx++
			}
		}
	}

	ground := renderer.NewBox("ground", Ground)
	totalH := facade.TotalHeight(rowsOf(cells))
	ground.SetPosition(0, -totalH/2-0.05, 0)
	ground.SetScale(groundExtent, 0.1, groundExtent)

	sky := preset.Sky
	return &Scene{
		Models: []*renderer.Model{ground, frames, slats, glass},
		Light:  preset.Sunlight(),
		Sky:    &sky,
		Post:   renderer.DefaultPostConfig(),
	}
}

func rowsOf(cells []facade.Cell) int {
	rows := 0
	for _, cell := range cells {
		if cell.Row+1 > rows {
			rows = cell.Row + 1
		}
	}
	return rows
}
