package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"Facade3D/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OpenGLBackend draws into an offscreen framebuffer that is blitted to the
// window each frame. Rendering through its own FBO lets the export pipeline
// resize the target far beyond the window size and read the pixels back
// without touching the swap chain. Requires a current GL context on the
// calling thread.
//
// TODO: bloom on this path needs a second blur pass over the FBO; the
// software backend already applies it.
type OpenGLBackend struct {
	width  int32
	height int32
	maxDim int32

	models []*Model
	sky    *Sky
	post   PostConfig

	defaultShader        Shader
	currentShaderProgram uint32

	fbo          uint32
	colorRB      uint32
	depthRB      uint32
	resolveFBO   uint32
	resolveRB    uint32
	blitToScreen bool
}

func NewOpenGLBackend() *OpenGLBackend {
	return &OpenGLBackend{post: DefaultPostConfig(), blitToScreen: true}
}

func (rend *OpenGLBackend) Init(width, height int32) error {
	logger.Init()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl backend: init failed: %w", err)
	}

	var maxRB int32
	gl.GetIntegerv(gl.MAX_RENDERBUFFER_SIZE, &maxRB)
	rend.maxDim = maxRB

	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		return err
	}

	if err := rend.Resize(width, height); err != nil {
		return err
	}
	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	logger.Log.Info("OpenGL backend initialized",
		zap.Int32("width", width), zap.Int32("height", height), zap.Int32("maxDim", rend.maxDim))
	return nil
}

// Resize reallocates the offscreen framebuffer in device pixels.
func (rend *OpenGLBackend) Resize(width, height int32) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("opengl backend: non-positive surface %dx%d", width, height)
	}
	if width > rend.maxDim || height > rend.maxDim {
		return fmt.Errorf("%w: %dx%d exceeds max renderbuffer %d", ErrSurfaceTooLarge, width, height, rend.maxDim)
	}

	// MSAASamples takes effect here, so a changed post config applies on the
	// next resize.
	samples := int32(rend.post.MSAASamples)
	if samples > 0 {
		var maxSamples int32
		gl.GetIntegerv(gl.MAX_SAMPLES, &maxSamples)
		if samples > maxSamples {
			samples = maxSamples
		}
	}

	rend.destroyFramebuffer()
	gl.GenFramebuffers(1, &rend.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rend.fbo)

	gl.GenRenderbuffers(1, &rend.colorRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rend.colorRB)
	if samples > 0 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, gl.RGBA8, width, height)
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, width, height)
	}
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rend.colorRB)

	gl.GenRenderbuffers(1, &rend.depthRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rend.depthRB)
	if samples > 0 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, gl.DEPTH_COMPONENT24, width, height)
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	}
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rend.depthRB)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rend.destroyFramebuffer()
		return fmt.Errorf("%w: framebuffer incomplete (status 0x%x) at %dx%d", ErrSurfaceTooLarge, status, width, height)
	}

	// Multisampled renderbuffers cannot be read with ReadPixels; captures and
	// the screen blit go through a single-sample resolve target.
	if samples > 0 {
		gl.GenFramebuffers(1, &rend.resolveFBO)
		gl.BindFramebuffer(gl.FRAMEBUFFER, rend.resolveFBO)
		gl.GenRenderbuffers(1, &rend.resolveRB)
		gl.BindRenderbuffer(gl.RENDERBUFFER, rend.resolveRB)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, width, height)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rend.resolveRB)

		status = gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		if status != gl.FRAMEBUFFER_COMPLETE {
			rend.destroyFramebuffer()
			return fmt.Errorf("%w: resolve framebuffer incomplete (status 0x%x) at %dx%d", ErrSurfaceTooLarge, status, width, height)
		}
	}

	rend.width, rend.height = width, height
	return nil
}

// readFramebuffer is the FBO holding resolved single-sample pixels.
func (rend *OpenGLBackend) readFramebuffer() uint32 {
	if rend.resolveFBO != 0 {
		return rend.resolveFBO
	}
	return rend.fbo
}

func (rend *OpenGLBackend) destroyFramebuffer() {
	if rend.fbo != 0 {
		gl.DeleteFramebuffers(1, &rend.fbo)
		gl.DeleteRenderbuffers(1, &rend.colorRB)
		gl.DeleteRenderbuffers(1, &rend.depthRB)
		rend.fbo, rend.colorRB, rend.depthRB = 0, 0, 0
	}
	if rend.resolveFBO != 0 {
		gl.DeleteFramebuffers(1, &rend.resolveFBO)
		gl.DeleteRenderbuffers(1, &rend.resolveRB)
		rend.resolveFBO, rend.resolveRB = 0, 0
	}
}

func (rend *OpenGLBackend) AddModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	if model.IsInstanced && len(model.InstanceModelMatrices) > 0 {
		// Each instanced model owns its buffer; sharing one would leave
		// every VAO reading whichever model uploaded last.
		gl.GenBuffers(1, &model.InstanceVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, model.InstanceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(model.InstanceModelMatrices)*int(unsafe.Sizeof(mgl32.Mat4{})), gl.Ptr(model.InstanceModelMatrices), gl.DYNAMIC_DRAW)
		for i := 0; i < 4; i++ {
			gl.EnableVertexAttribArray(3 + uint32(i))
			gl.VertexAttribPointer(3+uint32(i), 4, gl.FLOAT, false, int32(unsafe.Sizeof(mgl32.Mat4{})), gl.PtrOffset(i*16))
			gl.VertexAttribDivisor(3+uint32(i), 1)
		}
		model.InstanceMatricesUpdated = false
	}

	gl.BindVertexArray(0)
	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	rend.models = append(rend.models, model)
}

func (rend *OpenGLBackend) RemoveModel(model *Model) {
	for i, m := range rend.models {
		if m == model {
			rend.models = append(rend.models[:i], rend.models[i+1:]...)
			rend.deleteModelBuffers(model)
			break
		}
	}
}

func (rend *OpenGLBackend) ClearModels() {
	for _, model := range rend.models {
		rend.deleteModelBuffers(model)
	}
	rend.models = nil
}

func (rend *OpenGLBackend) deleteModelBuffers(model *Model) {
	gl.DeleteVertexArrays(1, &model.VAO)
	gl.DeleteBuffers(1, &model.VBO)
	gl.DeleteBuffers(1, &model.EBO)
	if model.InstanceVBO != 0 {
		gl.DeleteBuffers(1, &model.InstanceVBO)
	}
	model.VAO, model.VBO, model.EBO, model.InstanceVBO = 0, 0, 0, 0
}

func (rend *OpenGLBackend) SetSky(sky *Sky)         { rend.sky = sky }
func (rend *OpenGLBackend) SetPost(post PostConfig) { rend.post = post }
func (rend *OpenGLBackend) MaxDimension() int32     { return rend.maxDim }

// Render draws exactly one frame into the offscreen framebuffer and blits it
// to the default framebuffer for display.
func (rend *OpenGLBackend) Render(camera Camera, light *Light) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rend.fbo)
	gl.Viewport(0, 0, rend.width, rend.height)

	// The sky horizon color doubles as clear color; the real gradient would
	// need a dome pass.
	if rend.sky != nil {
		gl.ClearColor(rend.sky.Horizon.X(), rend.sky.Horizon.Y(), rend.sky.Horizon.Z(), 1.0)
	} else {
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	viewProjection := camera.GetViewProjection()

	shader := &rend.defaultShader
	if rend.currentShaderProgram != shader.program {
		shader.Use()
		rend.currentShaderProgram = shader.program
	}

	for _, model := range rend.models {
		shader.SetMat4("viewProjection", viewProjection)
		shader.SetMat4("model", model.ModelMatrix)
		shader.SetVec3("viewPos", camera.Position)

		if light != nil {
			shader.SetVec3("light.direction", light.Direction)
			shader.SetVec3("light.color", light.Color)
			shader.SetFloat("light.intensity", light.Intensity)
			shader.SetFloat("light.ambientStrength", light.AmbientStrength)
		}

		rend.setMaterialUniforms(shader, model)
		shader.SetBool("toneMapping", rend.post.ToneMapping)
		shader.SetFloat("gamma", rend.post.Gamma)

		gl.BindVertexArray(model.VAO)
		if model.IsInstanced && len(model.InstanceModelMatrices) > 0 {
			shader.SetBool("isInstanced", true)
			if model.InstanceMatricesUpdated {
				rend.updateInstanceMatrices(model)
				model.InstanceMatricesUpdated = false
			}
			gl.DrawElementsInstanced(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil, int32(model.InstanceCount))
		} else {
			shader.SetBool("isInstanced", false)
			gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
		}
		gl.BindVertexArray(0)
	}

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	if rend.resolveFBO != 0 {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rend.fbo)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, rend.resolveFBO)
		gl.BlitFramebuffer(0, 0, rend.width, rend.height, 0, 0, rend.width, rend.height,
			gl.COLOR_BUFFER_BIT, gl.NEAREST)
	}
	if rend.blitToScreen {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rend.readFramebuffer())
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
		gl.BlitFramebuffer(0, 0, rend.width, rend.height, 0, 0, rend.width, rend.height,
			gl.COLOR_BUFFER_BIT, gl.NEAREST)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (rend *OpenGLBackend) setMaterialUniforms(shader *Shader, model *Model) {
	mat := model.Material
	if mat == nil {
		return
	}
	shader.SetVec3("diffuseColor", mgl32.Vec3{mat.DiffuseColor[0], mat.DiffuseColor[1], mat.DiffuseColor[2]})
	shader.SetVec3("specularColor", mgl32.Vec3{mat.SpecularColor[0], mat.SpecularColor[1], mat.SpecularColor[2]})
	shader.SetFloat("shininess", mat.Shininess)
	shader.SetFloat("roughness", mat.Roughness)
	shader.SetFloat("alpha", mat.Alpha)
	exposure := mat.Exposure * rend.post.Exposure
	if exposure <= 0 {
		exposure = 1
	}
	shader.SetFloat("exposure", exposure)
}

func (rend *OpenGLBackend) updateInstanceMatrices(model *Model) {
	gl.BindBuffer(gl.ARRAY_BUFFER, model.InstanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InstanceModelMatrices)*int(unsafe.Sizeof(mgl32.Mat4{})), gl.Ptr(model.InstanceModelMatrices), gl.DYNAMIC_DRAW)
}

// Capture reads the offscreen framebuffer back into an RGBA image, flipped
// into top-down row order.
func (rend *OpenGLBackend) Capture() (image.Image, error) {
	if rend.fbo == 0 {
		return nil, fmt.Errorf("opengl backend: no framebuffer to capture")
	}
	w, h := int(rend.width), int(rend.height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rend.readFramebuffer())
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, rend.width, rend.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// GL rows start at the bottom
	rowLen := w * 4
	tmp := make([]uint8, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*rowLen : (y+1)*rowLen]
		bot := img.Pix[(h-1-y)*rowLen : (h-y)*rowLen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
	return img, nil
}

func (rend *OpenGLBackend) Cleanup() {
	rend.ClearModels()
	rend.destroyFramebuffer()
}
