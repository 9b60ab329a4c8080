package scene

import (
	"errors"
	"fmt"

	"Facade3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownPreset marks a preset lookup outside the closed enumeration.
// Presets are code, not user input, so this fails fast.
var ErrUnknownPreset = errors.New("unknown lighting preset")

// PresetID enumerates the lighting presets.
type PresetID string

const (
	Daylight PresetID = "daylight"
	Golden   PresetID = "golden"
	Overcast PresetID = "overcast"
)

// Preset is one immutable bundle of sun, sky and ambient parameters.
type Preset struct {
	ID                   PresetID
	SunDirection         mgl32.Vec3
	Sky                  renderer.Sky
	AmbientIntensity     float32
	DirectionalIntensity float32
	Environment          string
}

var presets = map[PresetID]Preset{
	Daylight: buildPreset(Daylight, renderer.Sky{
		Turbidity:       2.5,
		Rayleigh:        1.0,
		MieCoefficient:  0.003,
		MieDirectionalG: 0.7,
		Elevation:       35,
		Azimuth:         160,
		Zenith:          mgl32.Vec3{0.22, 0.45, 0.85},
		Horizon:         mgl32.Vec3{0.75, 0.85, 0.95},
		Cloudiness:      0.08,
	}, 0.45, 1.6, "city"),

	Golden: buildPreset(Golden, renderer.Sky{
		Turbidity:       6,
		Rayleigh:        2.2,
		MieCoefficient:  0.02,
		MieDirectionalG: 0.85,
		Elevation:       6,
		Azimuth:         240,
		Zenith:          mgl32.Vec3{0.25, 0.25, 0.45},
		Horizon:         mgl32.Vec3{0.95, 0.55, 0.25},
		Cloudiness:      0.12,
	}, 0.3, 1.2, "sunset"),

	Overcast: buildPreset(Overcast, renderer.Sky{
		Turbidity:       10,
		Rayleigh:        0.6,
		MieCoefficient:  0.05,
		MieDirectionalG: 0.9,
		Elevation:       55,
		Azimuth:         180,
		Zenith:          mgl32.Vec3{0.55, 0.57, 0.6},
		Horizon:         mgl32.Vec3{0.72, 0.73, 0.75},
		Cloudiness:      0.75,
	}, 0.7, 0.45, "dawn"),
}

func buildPreset(id PresetID, sky renderer.Sky, ambient, directional float32, env string) Preset {
	return Preset{
		ID:                   id,
		SunDirection:         sky.SunDirection(),
		Sky:                  sky,
		AmbientIntensity:     ambient,
		DirectionalIntensity: directional,
		Environment:          env,
	}
}

// PresetFor resolves a preset identifier. Total over exactly the three
// enumerated identifiers; anything else is an error.
func PresetFor(id PresetID) (Preset, error) {
	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p, nil
}

// PresetIDs lists the enumeration in a fixed order.
func PresetIDs() []PresetID {
	return []PresetID{Daylight, Golden, Overcast}
}

// Sunlight builds the directional light for this preset.
func (p Preset) Sunlight() *renderer.Light {
	light := renderer.CreateSunlight(p.SunDirection)
	light.Intensity = p.DirectionalIntensity
	light.AmbientStrength = p.AmbientIntensity
	light.Color = sunColor(p.ID)
	return light
}

func sunColor(id PresetID) mgl32.Vec3 {
	switch id {
	case Golden:
		return mgl32.Vec3{1.0, 0.72, 0.45}
	case Overcast:
		return mgl32.Vec3{0.85, 0.87, 0.9}
	default:
		return mgl32.Vec3{1.0, 0.98, 0.92}
	}
}
