package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sky describes the procedural sky dome for a lighting preset using the
// usual turbidity/Rayleigh/Mie parameterization, plus the flat colors the
// software backend shades the background with.
type Sky struct {
	Turbidity       float32
	Rayleigh        float32
	MieCoefficient  float32
	MieDirectionalG float32
	Elevation       float32 // sun elevation above the horizon, degrees
	Azimuth         float32 // degrees clockwise from north

	Zenith     mgl32.Vec3 // color straight up
	Horizon    mgl32.Vec3 // color at the horizon
	Cloudiness float32    // 0..1 noise-cloud coverage
}

// SunDirection returns the normalized direction light travels from the sun
// into the scene, derived from elevation and azimuth.
func (s *Sky) SunDirection() mgl32.Vec3 {
	phi := float64(mgl32.DegToRad(90 - s.Elevation))
	theta := float64(mgl32.DegToRad(s.Azimuth))
	toSun := mgl32.Vec3{
		float32(math.Sin(phi) * math.Sin(theta)),
		float32(math.Cos(phi)),
		float32(math.Sin(phi) * math.Cos(theta)),
	}
	return toSun.Mul(-1).Normalize()
}
