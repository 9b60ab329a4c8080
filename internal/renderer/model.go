package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material holds the shading parameters for one material class. The scene
// builder keeps a single shared instance per class (concrete, glass, wood)
// so material identity stays one logical entity instead of per-cell copies.
type Material struct {
	// HOT DATA - read for every shaded face
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
	Metallic      float32 // 0.0 = dielectric, 1.0 = metallic
	Roughness     float32 // 0.0 = mirror, 1.0 = completely rough
	Exposure      float32 // HDR exposure control
	Alpha         float32 // 0.0 = transparent, 1.0 = opaque

	// COLD DATA - identification only
	Name string
}

// Model is one renderable mesh plus its transform. Frame segments, glass
// panels and louver slats are instanced: one shared mesh with per-instance
// model matrices.
type Model struct {
	// HOT DATA - accessed every frame in the render loop
	ModelMatrix             mgl32.Mat4
	Position                mgl32.Vec3
	Scale                   mgl32.Vec3
	Rotation                mgl32.Quat
	Material                *Material
	VAO                     uint32 // Vertex Array Object (OpenGL backend)
	VBO                     uint32 // Vertex Buffer Object
	EBO                     uint32 // Element Buffer Object
	InstanceVBO             uint32
	InstanceCount           int
	IsInstanced             bool
	InstanceMatricesUpdated bool // instance matrices need GPU upload

	InstanceModelMatrices []mgl32.Mat4

	// COLD DATA - initialization only
	Name            string
	Vertices        []float32 // flat vertex positions
	Normals         []float32
	Faces           []int32   // triangle indices
	InterleavedData []float32 // position, uv, normal per vertex
}

// NewBox creates a unit axis-aligned box centered at the origin. Size is
// applied through Scale (or per-instance matrices for instanced models) so a
// single mesh can serve every slab in the facade.
func NewBox(name string, material *Material) *Model {
	type face struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},   // front
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}}, // back
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},  // right
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},  // left
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},  // top
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},  // bottom
	}

	model := &Model{
		Name:     name,
		Material: material,
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}

	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range faces {
		base := int32(len(model.Vertices) / 3)
		center := f.normal.Mul(0.5)
		corners := [4]mgl32.Vec3{
			center.Sub(f.u.Mul(0.5)).Sub(f.v.Mul(0.5)),
			center.Add(f.u.Mul(0.5)).Sub(f.v.Mul(0.5)),
			center.Add(f.u.Mul(0.5)).Add(f.v.Mul(0.5)),
			center.Sub(f.u.Mul(0.5)).Add(f.v.Mul(0.5)),
		}
		for k, c := range corners {
			model.Vertices = append(model.Vertices, c.X(), c.Y(), c.Z())
			model.Normals = append(model.Normals, f.normal.X(), f.normal.Y(), f.normal.Z())
			model.InterleavedData = append(model.InterleavedData,
				c.X(), c.Y(), c.Z(),
				uvs[k].X(), uvs[k].Y(),
				f.normal.X(), f.normal.Y(), f.normal.Z())
		}
		model.Faces = append(model.Faces, base, base+1, base+2, base, base+2, base+3)
	}

	model.updateModelMatrix()
	return model
}

func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Model) SetRotation(q mgl32.Quat) {
	m.Rotation = q
	m.updateModelMatrix()
}

func (m *Model) updateModelMatrix() {
	// TRS order: scale first, then rotate, then translate
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// SetInstanceCount allocates the per-instance matrix slice and switches the
// model to instanced rendering.
func (m *Model) SetInstanceCount(count int) {
	m.InstanceCount = count
	m.IsInstanced = count > 0
	m.InstanceModelMatrices = make([]mgl32.Mat4, count)
}

// SetInstanceTransform sets the full TRS matrix of one instance.
func (m *Model) SetInstanceTransform(index int, position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	if index < 0 || index >= len(m.InstanceModelMatrices) {
		return
	}
	scaleMatrix := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	rotationMatrix := rotation.Mat4()
	translationMatrix := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	m.InstanceModelMatrices[index] = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
	m.InstanceMatricesUpdated = true
}
