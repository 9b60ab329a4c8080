package scene

import (
	"Facade3D/internal/renderer"
)

// One shared material instance per class. Every frame segment points at
// Concrete, every panel at Glass, every slat at Wood; changing a class
// changes all of its geometry at once.
var (
	Concrete = &renderer.Material{
		Name:          "concrete",
		DiffuseColor:  [3]float32{0.62, 0.60, 0.57},
		SpecularColor: [3]float32{0.2, 0.2, 0.2},
		Shininess:     8.0,
		Metallic:      0.0,
		Roughness:     0.9,
		Exposure:      1.0,
		Alpha:         1.0,
	}

	Glass = &renderer.Material{
		Name:          "glass",
		DiffuseColor:  [3]float32{0.35, 0.5, 0.55},
		SpecularColor: [3]float32{0.9, 0.9, 0.9},
		Shininess:     96.0,
		Metallic:      0.0,
		Roughness:     0.05,
		Exposure:      1.2,
		Alpha:         0.35,
	}

	Wood = &renderer.Material{
		Name:          "wood",
		DiffuseColor:  [3]float32{0.45, 0.30, 0.18},
		SpecularColor: [3]float32{0.15, 0.12, 0.1},
		Shininess:     16.0,
		Metallic:      0.0,
		Roughness:     0.7,
		Exposure:      1.0,
		Alpha:         1.0,
	}

	Ground = &renderer.Material{
		Name:          "ground",
		DiffuseColor:  [3]float32{0.42, 0.42, 0.43},
		SpecularColor: [3]float32{0.1, 0.1, 0.1},
		Shininess:     4.0,
		Metallic:      0.0,
		Roughness:     1.0,
		Exposure:      1.0,
		Alpha:         1.0,
	}
)
