package renderer

import (
	"fmt"
	"image"
	"math"
	"sort"

	"Facade3D/internal/logger"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SoftwareBackend rasterizes the scene on the CPU into an RGBA frame:
// procedural sky background, depth-buffered triangles with Lambert/Blinn
// shading, alpha-blended glass, then the post stack (bloom, ACES tone
// mapping, gamma). Deterministic and headless, it backs both the export
// pipeline and the tests.
type SoftwareBackend struct {
	width  int32
	height int32
	maxDim int32

	models []*Model
	sky    *Sky
	post   PostConfig
	noise  *perlin.Perlin

	hdr      []float32 // linear RGB, 3 floats per pixel
	depth    []float32
	frame    *image.RGBA
	rendered bool
}

func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{
		maxDim: 16384,
		post:   DefaultPostConfig(),
		// Fixed noise seed: the sky must look the same on every run.
		noise: perlin.NewPerlin(2, 2, 3, 1),
	}
}

func (sb *SoftwareBackend) Init(width, height int32) error {
	logger.Init()
	if err := sb.Resize(width, height); err != nil {
		return err
	}
	logger.Log.Info("Software backend initialized",
		zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (sb *SoftwareBackend) Resize(width, height int32) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("software backend: non-positive surface %dx%d", width, height)
	}
	if width > sb.maxDim || height > sb.maxDim {
		return fmt.Errorf("%w: %dx%d exceeds max edge %d", ErrSurfaceTooLarge, width, height, sb.maxDim)
	}
	sb.width, sb.height = width, height
	sb.hdr = make([]float32, int(width)*int(height)*3)
	sb.depth = make([]float32, int(width)*int(height))
	sb.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	sb.rendered = false
	return nil
}

func (sb *SoftwareBackend) AddModel(model *Model) {
	sb.models = append(sb.models, model)
}

func (sb *SoftwareBackend) RemoveModel(model *Model) {
	for i, m := range sb.models {
		if m == model {
			sb.models = append(sb.models[:i], sb.models[i+1:]...)
			break
		}
	}
}

func (sb *SoftwareBackend) ClearModels() {
	sb.models = nil
}

func (sb *SoftwareBackend) SetSky(sky *Sky)         { sb.sky = sky }
func (sb *SoftwareBackend) SetPost(post PostConfig) { sb.post = post }
func (sb *SoftwareBackend) MaxDimension() int32     { return sb.maxDim }
func (sb *SoftwareBackend) Cleanup()                { sb.models = nil }

// Render draws exactly one frame of the current scene.
func (sb *SoftwareBackend) Render(camera Camera, light *Light) {
	sb.shadeSky()
	for i := range sb.depth {
		sb.depth[i] = float32(math.Inf(1))
	}

	var opaque, transparent []*Model
	for _, m := range sb.models {
		if m.Material != nil && m.Material.Alpha < 1.0 {
			transparent = append(transparent, m)
		} else {
			opaque = append(opaque, m)
		}
	}
	// Opaque writes depth; transparent is drawn back-to-front on top.
	sort.SliceStable(transparent, func(i, j int) bool {
		di := transparent[i].Position.Sub(camera.Position).LenSqr()
		dj := transparent[j].Position.Sub(camera.Position).LenSqr()
		return di > dj
	})

	vp := camera.GetViewProjection()
	for _, m := range opaque {
		sb.drawModel(m, vp, camera, light, false)
	}
	for _, m := range transparent {
		sb.drawModel(m, vp, camera, light, true)
	}

	sb.resolve()
	sb.rendered = true
}

// Capture returns a copy of the last rendered frame.
func (sb *SoftwareBackend) Capture() (image.Image, error) {
	if !sb.rendered {
		return nil, fmt.Errorf("software backend: no frame rendered yet")
	}
	out := image.NewRGBA(sb.frame.Rect)
	copy(out.Pix, sb.frame.Pix)
	return out, nil
}

// shadeSky fills the HDR buffer with a vertical gradient between the sky's
// horizon and zenith colors, plus perlin clouds weighted by Cloudiness.
func (sb *SoftwareBackend) shadeSky() {
	zenith := mgl32.Vec3{0.02, 0.02, 0.03}
	horizon := mgl32.Vec3{0.05, 0.05, 0.06}
	cloudiness := float32(0)
	if sb.sky != nil {
		zenith, horizon, cloudiness = sb.sky.Zenith, sb.sky.Horizon, sb.sky.Cloudiness
	}

	w, h := int(sb.width), int(sb.height)
	for y := 0; y < h; y++ {
		// Top row is zenith; ease toward the horizon with a quadratic falloff.
		t := float32(y) / float32(maxi(h-1, 1))
		mix := t * t
		base := zenith.Mul(1 - mix).Add(horizon.Mul(mix))

		for x := 0; x < w; x++ {
			col := base
			if cloudiness > 0 {
				n := sb.noise.Noise2D(float64(x)*0.008, float64(y)*0.012)
				c := float32(0.5+0.5*n) * cloudiness * (0.3 + 0.7*mix)
				cloud := mgl32.Vec3{0.8, 0.8, 0.82}
				col = col.Mul(1 - c).Add(cloud.Mul(c))
			}
			i := (y*w + x) * 3
			sb.hdr[i] = col.X()
			sb.hdr[i+1] = col.Y()
			sb.hdr[i+2] = col.Z()
		}
	}
}

func (sb *SoftwareBackend) drawModel(m *Model, vp mgl32.Mat4, camera Camera, light *Light, transparent bool) {
	matrices := []mgl32.Mat4{m.ModelMatrix}
	if m.IsInstanced && len(m.InstanceModelMatrices) > 0 {
		matrices = m.InstanceModelMatrices
	}

	alpha := float32(1.0)
	mat := m.Material
	if mat != nil {
		alpha = mat.Alpha
	}

	for _, modelMatrix := range matrices {
		for f := 0; f+2 < len(m.Faces); f += 3 {
			ia, ib, ic := m.Faces[f], m.Faces[f+1], m.Faces[f+2]
			a := transformPoint(modelMatrix, vertexAt(m.Vertices, ia))
			b := transformPoint(modelMatrix, vertexAt(m.Vertices, ib))
			c := transformPoint(modelMatrix, vertexAt(m.Vertices, ic))

			normal := transformNormal(modelMatrix, vertexAt(m.Normals, ia))
			centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
			color := shadeFace(mat, normal, centroid, camera, light)

			sb.rasterTriangle(vp, a, b, c, color, alpha, !transparent)
		}
	}
}

// shadeFace evaluates flat Blinn-Phong shading for one face.
func shadeFace(mat *Material, normal, point mgl32.Vec3, camera Camera, light *Light) mgl32.Vec3 {
	diffuse := mgl32.Vec3{1, 1, 1}
	specular := mgl32.Vec3{1, 1, 1}
	shininess := float32(32)
	roughness := float32(0.5)
	if mat != nil {
		diffuse = mgl32.Vec3{mat.DiffuseColor[0], mat.DiffuseColor[1], mat.DiffuseColor[2]}
		specular = mgl32.Vec3{mat.SpecularColor[0], mat.SpecularColor[1], mat.SpecularColor[2]}
		if mat.Shininess > 0 {
			shininess = mat.Shininess
		}
		roughness = mat.Roughness
	}
	if light == nil {
		return diffuse
	}

	viewDir := camera.Position.Sub(point).Normalize()
	if normal.Dot(viewDir) < 0 {
		normal = normal.Mul(-1) // shade double-sided
	}

	toLight := light.Direction.Mul(-1)
	ndl := normal.Dot(toLight)
	if ndl < 0 {
		ndl = 0
	}

	lit := light.AmbientStrength + ndl*light.Intensity
	col := mgl32.Vec3{
		diffuse.X() * light.Color.X() * lit,
		diffuse.Y() * light.Color.Y() * lit,
		diffuse.Z() * light.Color.Z() * lit,
	}

	if ndl > 0 {
		half := toLight.Add(viewDir).Normalize()
		ndh := normal.Dot(half)
		if ndh > 0 {
			spec := float32(math.Pow(float64(ndh), float64(shininess))) * (1 - roughness) * light.Intensity
			col = col.Add(specular.Mul(spec))
		}
	}
	return col
}

// rasterTriangle projects one world-space triangle and fills it with a flat
// color, depth-tested against the z buffer. Transparent fills blend and skip
// the depth write.
func (sb *SoftwareBackend) rasterTriangle(vp mgl32.Mat4, a, b, c mgl32.Vec3, color mgl32.Vec3, alpha float32, writeDepth bool) {
	ca := vp.Mul4x1(a.Vec4(1))
	cb := vp.Mul4x1(b.Vec4(1))
	cc := vp.Mul4x1(c.Vec4(1))
	// Crude near-plane rejection; the camera never sits inside the facade.
	if ca.W() <= 0.001 || cb.W() <= 0.001 || cc.W() <= 0.001 {
		return
	}

	w, h := float32(sb.width), float32(sb.height)
	sa := sb.toScreen(ca, w, h)
	sbv := sb.toScreen(cb, w, h)
	sc := sb.toScreen(cc, w, h)

	area := edge(sa, sbv, sc)
	if area == 0 {
		return
	}

	minX := int(math.Floor(float64(min3(sa[0], sbv[0], sc[0]))))
	maxX := int(math.Ceil(float64(max3(sa[0], sbv[0], sc[0]))))
	minY := int(math.Floor(float64(min3(sa[1], sbv[1], sc[1]))))
	maxY := int(math.Ceil(float64(max3(sa[1], sbv[1], sc[1]))))
	minX = clampi(minX, 0, int(sb.width)-1)
	maxX = clampi(maxX, 0, int(sb.width)-1)
	minY = clampi(minY, 0, int(sb.height)-1)
	maxY = clampi(maxY, 0, int(sb.height)-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, 0}
			w0 := edge(sbv, sc, p) / area
			w1 := edge(sc, sa, p) / area
			w2 := edge(sa, sbv, p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*sa[2] + w1*sbv[2] + w2*sc[2]
			idx := y*int(sb.width) + x
			if z >= sb.depth[idx] {
				continue
			}
			if writeDepth {
				sb.depth[idx] = z
			}
			pi := idx * 3
			if alpha >= 1.0 {
				sb.hdr[pi] = color.X()
				sb.hdr[pi+1] = color.Y()
				sb.hdr[pi+2] = color.Z()
			} else {
				inv := 1 - alpha
				sb.hdr[pi] = color.X()*alpha + sb.hdr[pi]*inv
				sb.hdr[pi+1] = color.Y()*alpha + sb.hdr[pi+1]*inv
				sb.hdr[pi+2] = color.Z()*alpha + sb.hdr[pi+2]*inv
			}
		}
	}
}

func (sb *SoftwareBackend) toScreen(clip mgl32.Vec4, w, h float32) mgl32.Vec3 {
	invW := 1.0 / clip.W()
	return mgl32.Vec3{
		(clip.X()*invW*0.5 + 0.5) * w,
		(1 - (clip.Y()*invW*0.5 + 0.5)) * h,
		clip.Z() * invW,
	}
}

// resolve applies the post stack and packs the HDR buffer into the RGBA frame.
func (sb *SoftwareBackend) resolve() {
	w, h := int(sb.width), int(sb.height)

	if sb.post.EnableBloom && sb.post.BloomIntensity > 0 {
		sb.applyBloom(w, h)
	}

	exposure := sb.post.Exposure
	if exposure <= 0 {
		exposure = 1
	}
	gamma := sb.post.Gamma
	if gamma <= 0 {
		gamma = 2.2
	}
	invGamma := 1.0 / float64(gamma)

	for i := 0; i < w*h; i++ {
		pi := i * 3
		for ch := 0; ch < 3; ch++ {
			v := sb.hdr[pi+ch] * exposure
			if sb.post.ToneMapping {
				v = acesToneMap(v)
			}
			v = float32(math.Pow(float64(clampf(v, 0, 1)), invGamma))
			sb.frame.Pix[i*4+ch] = uint8(v*255 + 0.5)
		}
		sb.frame.Pix[i*4+3] = 255
	}

	if sb.post.EnableFXAA {
		sb.applyFXAA(w, h)
	}
}

// applyFXAA smooths high-contrast edges of the finished frame by blending
// each edge pixel toward its neighborhood average. Luma-thresholded so flat
// regions keep their exact colors.
func (sb *SoftwareBackend) applyFXAA(w, h int) {
	const edgeThreshold = 16.0

	src := make([]uint8, len(sb.frame.Pix))
	copy(src, sb.frame.Pix)
	luma := func(i int) float32 {
		return 0.299*float32(src[i]) + 0.587*float32(src[i+1]) + 0.114*float32(src[i+2])
	}

	rowLen := w * 4
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := (y*w + x) * 4
			center := luma(i)
			north := luma(i - rowLen)
			south := luma(i + rowLen)
			west := luma(i - 4)
			east := luma(i + 4)

			lo := min3(north, south, min3(west, east, center))
			hi := max3(north, south, max3(west, east, center))
			if hi-lo < edgeThreshold {
				continue
			}

			for ch := 0; ch < 3; ch++ {
				avg := (float32(src[i-rowLen+ch]) + float32(src[i+rowLen+ch]) +
					float32(src[i-4+ch]) + float32(src[i+4+ch])) * 0.25
				sb.frame.Pix[i+ch] = uint8((float32(src[i+ch])+avg)*0.5 + 0.5)
			}
		}
	}
}

// applyBloom adds a box-blurred copy of the above-threshold energy back onto
// the frame. A cheap separable approximation, good enough for glowing glass
// highlights.
func (sb *SoftwareBackend) applyBloom(w, h int) {
	threshold := sb.post.BloomThreshold
	radius := sb.post.BloomRadius
	if radius < 1 {
		radius = 1
	}

	bright := make([]float32, len(sb.hdr))
	for i := range bright {
		if v := sb.hdr[i] - threshold; v > 0 {
			bright[i] = v
		}
	}

	blurred := make([]float32, len(bright))
	// Horizontal pass into blurred, vertical pass back into bright.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum [3]float32
			var n float32
			for dx := -radius; dx <= radius; dx++ {
				xx := x + dx
				if xx < 0 || xx >= w {
					continue
				}
				pi := (y*w + xx) * 3
				sum[0] += bright[pi]
				sum[1] += bright[pi+1]
				sum[2] += bright[pi+2]
				n++
			}
			pi := (y*w + x) * 3
			blurred[pi] = sum[0] / n
			blurred[pi+1] = sum[1] / n
			blurred[pi+2] = sum[2] / n
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var sum [3]float32
			var n float32
			for dy := -radius; dy <= radius; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				pi := (yy*w + x) * 3
				sum[0] += blurred[pi]
				sum[1] += blurred[pi+1]
				sum[2] += blurred[pi+2]
				n++
			}
			pi := (y*w + x) * 3
			bright[pi] = sum[0] / n
			bright[pi+1] = sum[1] / n
			bright[pi+2] = sum[2] / n
		}
	}

	intensity := sb.post.BloomIntensity
	for i := range sb.hdr {
		sb.hdr[i] += bright[i] * intensity
	}
}

// acesToneMap is the Narkowicz ACES filmic approximation.
func acesToneMap(x float32) float32 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func vertexAt(flat []float32, index int32) mgl32.Vec3 {
	i := int(index) * 3
	return mgl32.Vec3{flat[i], flat[i+1], flat[i+2]}
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func transformNormal(m mgl32.Mat4, n mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(n.Vec4(0)).Vec3()
	if v.Len() == 0 {
		return n
	}
	return v.Normalize()
}

func edge(a, b, p mgl32.Vec3) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
