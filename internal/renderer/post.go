package renderer

// PostConfig represents the post-processing stack applied after geometry:
// tone mapping, bloom and anti-aliasing. MSAA is a hardware concern of the
// OpenGL backend; the software backend applies the rest per pixel.
type PostConfig struct {
	// Tone mapping and HDR
	ToneMapping bool    `json:"toneMapping"` // ACES filmic curve
	Exposure    float32 `json:"exposure"`
	Gamma       float32 `json:"gamma"`

	// Bloom
	EnableBloom    bool    `json:"enableBloom"`
	BloomThreshold float32 `json:"bloomThreshold"`
	BloomIntensity float32 `json:"bloomIntensity"`
	BloomRadius    int     `json:"bloomRadius"` // blur kernel radius in pixels

	// Anti-Aliasing
	MSAASamples int  `json:"msaaSamples"` // 0, 2, 4, 8 (hardware MSAA)
	EnableFXAA  bool `json:"enableFXAA"`
}

// DefaultPostConfig returns the stack the viewer runs with.
func DefaultPostConfig() PostConfig {
	return PostConfig{
		ToneMapping: true,
		Exposure:    1.0,
		Gamma:       2.2,

		EnableBloom:    true,
		BloomThreshold: 1.0,
		BloomIntensity: 0.3,
		BloomRadius:    2,

		MSAASamples: 4,
		EnableFXAA:  false,
	}
}
