// Package renderer draws scene graphs through OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/internal/engine/shader"
	"github.com/hot7585325/WebVR/internal/logger"
	"github.com/hot7585325/WebVR/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor scene.Color
}

// drawItem is one uploaded primitive: its GL objects plus the scene
// material the color uniform reads from every frame.
type drawItem struct {
	node     *scene.Node
	material *scene.Material
	vao      uint32
	vbo      uint32
	ebo      uint32
	count    int32
}

// Renderer owns the GL state for drawing a loaded scene: one shader
// program, one VAO/VBO/EBO per primitive, and a directional light.
type Renderer struct {
	config Config

	program     uint32
	locModel    int32
	locView     int32
	locProj     int32
	locColor    int32
	locLightDir int32
	locCamPos   int32

	lightDir math.Vec3
	items    []drawItem
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lightDir: math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.SetClearColor(cfg.ClearColor)

	program, err := shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program
	r.locModel = shader.GetUniform(program, "uModel")
	r.locView = shader.GetUniform(program, "uView")
	r.locProj = shader.GetUniform(program, "uProj")
	r.locColor = shader.GetUniform(program, "uColor")
	r.locLightDir = shader.GetUniform(program, "uLightDir")
	r.locCamPos = shader.GetUniform(program, "uCamPos")

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.UnloadScene()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetClearColor sets the background color.
func (r *Renderer) SetClearColor(c scene.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

// SetLightDir sets the directional light. The vector points from the light
// into the scene.
func (r *Renderer) SetLightDir(dir math.Vec3) {
	r.lightDir = dir.Normalize()
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// LoadScene walks root and uploads every mesh primitive. Any previously
// loaded scene is dropped first.
func (r *Renderer) LoadScene(root *scene.Node) {
	r.UnloadScene()
	if root == nil {
		return
	}

	root.Walk(func(n *scene.Node) bool {
		if n.Mesh == nil {
			return true
		}
		for _, p := range n.Mesh.Primitives {
			if len(p.Vertices) == 0 || len(p.Indices) == 0 {
				continue
			}
			r.items = append(r.items, uploadPrimitive(n, p))
		}
		return true
	})

	logger.Info("scene uploaded", zap.Int("primitives", len(r.items)))
}

// UnloadScene deletes the GL objects of the loaded scene.
func (r *Renderer) UnloadScene() {
	for i := range r.items {
		item := &r.items[i]
		gl.DeleteVertexArrays(1, &item.vao)
		gl.DeleteBuffers(1, &item.vbo)
		gl.DeleteBuffers(1, &item.ebo)
	}
	r.items = nil
}

// PrimitiveCount returns how many primitives the loaded scene draws.
func (r *Renderer) PrimitiveCount() int {
	return len(r.items)
}

// Draw renders the loaded scene. The model matrix comes from each node's
// world transform, so scene-graph edits show up without re-upload; material
// colors are read per draw, which consumes their dirty flags.
func (r *Renderer) Draw(view, proj math.Mat4, camPos math.Vec3) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.locProj, 1, false, &proj[0])
	gl.Uniform3f(r.locLightDir, r.lightDir.X, r.lightDir.Y, r.lightDir.Z)
	gl.Uniform3f(r.locCamPos, camPos.X, camPos.Y, camPos.Z)

	for i := range r.items {
		item := &r.items[i]

		model := item.node.WorldMatrix()
		gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])

		color := scene.Color{R: 1, G: 1, B: 1, A: 1}
		if item.material != nil {
			color = item.material.Color()
			if item.material.Dirty() {
				item.material.ClearDirty()
			}
		}
		gl.Uniform4f(r.locColor, color.R, color.G, color.B, color.A)

		gl.BindVertexArray(item.vao)
		gl.DrawElements(gl.TRIANGLES, item.count, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

// uploadPrimitive interleaves position+normal into one VBO and indices into
// an EBO under a fresh VAO.
func uploadPrimitive(n *scene.Node, p *scene.Primitive) drawItem {
	data := make([]float32, 0, len(p.Vertices)*6)
	for _, v := range p.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}

	item := drawItem{
		node:     n,
		material: p.Material,
		count:    int32(len(p.Indices)),
	}

	gl.GenVertexArrays(1, &item.vao)
	gl.BindVertexArray(item.vao)

	gl.GenBuffers(1, &item.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, item.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &item.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, item.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, unsafe.Pointer(&p.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return item
}

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * world;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec4 uColor;
uniform vec3 uLightDir;
uniform vec3 uCamPos;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(-uLightDir);
	float diffuse = max(dot(n, l), 0.0);

	vec3 v = normalize(uCamPos - vWorldPos);
	vec3 h = normalize(l + v);
	float spec = pow(max(dot(n, h), 0.0), 32.0) * 0.25;

	vec3 shaded = uColor.rgb * (0.3 + 0.7 * diffuse) + vec3(spec);
	FragColor = vec4(shaded, uColor.a);
}
`
