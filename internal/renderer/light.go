package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType int

const (
	STATIC_LIGHT LightType = iota
	DYNAMIC_LIGHT
)

type Light struct {
	Position        mgl32.Vec3
	Direction       mgl32.Vec3 // normalized, pointing from the sun into the scene
	Color           mgl32.Vec3
	Intensity       float32
	AmbientStrength float32
	Type            LightType
	Mode            string // "directional", "point"
}

// CreateSunlight builds a directional light shining along the given
// direction. Position is only used as a shadow anchor, placed far opposite
// the direction.
func CreateSunlight(direction mgl32.Vec3) *Light {
	dir := direction.Normalize()
	return &Light{
		Position:        dir.Mul(-500),
		Direction:       dir,
		Color:           mgl32.Vec3{1, 1, 1},
		Intensity:       1.0,
		AmbientStrength: 0.1,
		Type:            STATIC_LIGHT,
		Mode:            "directional",
	}
}
