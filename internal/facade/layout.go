package facade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Module dimensions. Tunable constants, not user input.
const (
	ModuleWidth    float32 = 1.2
	ModuleHeight   float32 = 1.0
	Gap            float32 = 0.06
	FrameThickness float32 = 0.08
	FrameDepth     float32 = 0.25

	// Louver slat dimensions and the recess of the glass behind the frame face.
	SlatThickness float32 = 0.02
	SlatDepth     float32 = 0.12
	GlassRecess   float32 = 0.06
	GlassDepth    float32 = 0.02
)

// Slab is an axis-aligned box, the building block of all facade geometry.
type Slab struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Louvers holds the slat parameters of a closed cell. A Cell with a nil
// *Louvers is open; carrying density and tilt behind the pointer makes a
// closed cell without them unrepresentable.
type Louvers struct {
	Density int     // slat count, drawn in [6, 11]
	Tilt    float32 // slat rotation in radians, drawn in [0.1, 0.6]
}

// Cell is one grid position of the facade. All geometry is derived from the
// cell center and the module constants, nothing else is stored.
type Cell struct {
	Column  int
	Row     int
	Center  mgl32.Vec3
	Louvers *Louvers
}

// TotalWidth is the horizontal extent of the full grid.
func TotalWidth(columns int) float32 {
	return float32(columns)*(ModuleWidth+Gap) - Gap
}

// TotalHeight is the vertical extent of the full grid.
func TotalHeight(rows int) float32 {
	return float32(rows)*(ModuleHeight+Gap) - Gap
}

// Opening returns the inner opening size framed by each cell.
func Opening() (w, h float32) {
	return ModuleWidth - 2*FrameThickness, ModuleHeight - 2*FrameThickness
}

// Generate derives the full cell set for a config. The result is a pure
// function of (columns, rows, seed): re-running with the same inputs yields
// an identical slice.
//
// PRNG consumption contract: cells are visited column-major (outer loop over
// columns, inner over rows) and each cell draws density, then tilt, then the
// open decision. Both orders are observable in the output and must stay
// fixed.
func Generate(cfg Config) ([]Cell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewRNG(cfg.Seed)
	totalW := TotalWidth(cfg.Columns)
	totalH := TotalHeight(cfg.Rows)

	cells := make([]Cell, 0, cfg.Columns*cfg.Rows)
	for i := 0; i < cfg.Columns; i++ {
		for j := 0; j < cfg.Rows; j++ {
			x := float32(i)*(ModuleWidth+Gap) - totalW/2 + ModuleWidth/2
			y := float32(j)*(ModuleHeight+Gap) - totalH/2 + ModuleHeight/2

			density := 6 + int(rng.Next()*6)
			tilt := lerp(0.1, 0.6, rng.Next())
			open := rng.Next() > 0.7

			cell := Cell{Column: i, Row: j, Center: mgl32.Vec3{x, y, 0}}
			if !open {
				cell.Louvers = &Louvers{Density: density, Tilt: tilt}
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

// FrameSegments returns the four slabs (top, bottom, left, right) whose
// union is a closed rectangular border of thickness FrameThickness around
// the cell opening. Top and bottom span the full module width; the side
// segments fill the remaining height between them.
func (c Cell) FrameSegments() [4]Slab {
	_, openH := Opening()
	yEdge := (ModuleHeight - FrameThickness) / 2
	xEdge := (ModuleWidth - FrameThickness) / 2

	horizontal := mgl32.Vec3{ModuleWidth, FrameThickness, FrameDepth}
	vertical := mgl32.Vec3{FrameThickness, openH, FrameDepth}

	return [4]Slab{
		{Center: c.Center.Add(mgl32.Vec3{0, yEdge, 0}), Size: horizontal},
		{Center: c.Center.Add(mgl32.Vec3{0, -yEdge, 0}), Size: horizontal},
		{Center: c.Center.Add(mgl32.Vec3{-xEdge, 0, 0}), Size: vertical},
		{Center: c.Center.Add(mgl32.Vec3{xEdge, 0, 0}), Size: vertical},
	}
}

// GlassPanel returns the translucent panel that exactly fills the opening,
// recessed behind the frame face. Cosmetic only, no physical semantics.
func (c Cell) GlassPanel() Slab {
	openW, openH := Opening()
	return Slab{
		Center: c.Center.Add(mgl32.Vec3{0, 0, -GlassRecess}),
		Size:   mgl32.Vec3{openW, openH, GlassDepth},
	}
}

// SlatOffsets returns the vertical offsets of the louver slats relative to
// the cell center, evenly spaced across the opening height. Returns nil for
// open cells. A density of one would make the spacing divisor zero, so it is
// special-cased even though the drawn range never produces it.
func (c Cell) SlatOffsets() []float32 {
	if c.Louvers == nil {
		return nil
	}
	_, openH := Opening()
	n := c.Louvers.Density
	if n <= 1 {
		return []float32{0}
	}
	step := openH / float32(n-1)
	offsets := make([]float32, n)
	for k := range offsets {
		offsets[k] = -openH/2 + float32(k)*step
	}
	return offsets
}

func lerp(a, b float32, t float64) float32 {
	return a + (b-a)*float32(t)
}
