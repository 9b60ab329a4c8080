package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// UniformCache caches uniform locations to avoid repeated
// gl.GetUniformLocation calls in the render loop.
type UniformCache struct {
	locations map[string]int32
	program   uint32
}

func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
	}
}

func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}
	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	if loc := shader.uniforms.GetLocation(name); loc != -1 {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (shader *Shader) SetFloat(name string, value float32) {
	if loc := shader.uniforms.GetLocation(name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (shader *Shader) SetInt(name string, value int32) {
	if loc := shader.uniforms.GetLocation(name); loc != -1 {
		gl.Uniform1i(loc, value)
	}
}

func (shader *Shader) SetBool(name string, value bool) {
	v := int32(0)
	if value {
		v = 1
	}
	shader.SetInt(name, v)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if loc := shader.uniforms.GetLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

var vertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal
layout(location = 3) in mat4 instanceModel; // Instanced model matrix

uniform bool isInstanced; // Flag to differentiate instanced vs non-instanced rendering
uniform mat4 model;       // Regular model matrix
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    mat4 modelMatrix = isInstanced ? instanceModel : model;

    FragPos = vec3(modelMatrix * vec4(inPosition, 1.0));
    Normal = mat3(modelMatrix) * inNormal;
    fragTexCoord = inTexCoord;

    gl_Position = viewProjection * modelMatrix * vec4(inPosition, 1.0);
}

` + "\x00"

var fragmentShaderSource = `// Fragment Shader
#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform struct Light {
    vec3 direction;
    vec3 color;
    float intensity;
    float ambientStrength;
} light;
uniform vec3 viewPos;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;
uniform float roughness;
uniform float alpha;
uniform float exposure;
uniform bool toneMapping;
uniform float gamma;

out vec4 FragColor;

vec3 aces(vec3 x) {
    return (x * (2.51 * x + 0.03)) / (x * (2.43 * x + 0.59) + 0.14);
}

void main() {
    vec3 norm = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);
    if (dot(norm, viewDir) < 0.0) {
        norm = -norm;
    }

    vec3 toLight = normalize(-light.direction);
    float diff = max(dot(norm, toLight), 0.0);

    vec3 ambient = light.ambientStrength * light.color * diffuseColor;
    vec3 diffuse = diff * light.intensity * light.color * diffuseColor;

    vec3 halfDir = normalize(toLight + viewDir);
    float spec = pow(max(dot(norm, halfDir), 0.0), shininess) * (1.0 - roughness);
    vec3 specular = spec * light.intensity * light.color * specularColor;

    vec3 result = (ambient + diffuse + specular) * exposure;
    if (toneMapping) {
        result = aces(result);
    }
    result = pow(result, vec3(1.0 / gamma));
    FragColor = vec4(result, alpha);
}
` + "\x00"

func InitShader() Shader {
	return Shader{
		vertexSource:   vertexShaderSource,
		fragmentSource: fragmentShaderSource,
	}
}

func (shader *Shader) IsValid() bool {
	return shader.vertexSource != "" && shader.fragmentSource != ""
}

// Compile builds and links the program. Must run on the thread owning the GL
// context.
func (shader *Shader) Compile() error {
	vert, err := genShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	frag, err := genShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return fmt.Errorf("shader link failed: %s", infoLog)
	}

	gl.DetachShader(program, vert)
	gl.DeleteShader(vert)
	gl.DetachShader(program, frag)
	gl.DeleteShader(frag)

	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func genShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("shader compile failed (type %d): %s", shaderType, infoLog)
	}
	return shader, nil
}
