//go:build opengl

package compute

import (
	_ "embed"
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

//go:embed shaders/displace.comp
var displaceSource string

const workGroupSize = 256

// OpenGLBackend runs the vertex pass as a compute shader. It needs a current
// GL 4.3 context on the calling goroutine; Init uploads the vertices once.
type OpenGLBackend struct {
	program  uint32
	vertBuf  uint32
	heightBf uint32
	count    int
	ready    bool
	scratch  []float32
	uniforms map[string]int32
}

func NewOpenGLBackend(count int) *OpenGLBackend {
	return &OpenGLBackend{count: count}
}

func (g *OpenGLBackend) Name() string    { return "opengl (compute shader)" }
func (g *OpenGLBackend) Available() bool { return g.ready }

func (g *OpenGLBackend) Init(vertices []grid.Vertex) error {
	if err := gl.Init(); err != nil {
		return err
	}
	shader, err := compileShader(displaceSource, gl.COMPUTE_SHADER)
	if err != nil {
		return err
	}
	g.program = gl.CreateProgram()
	gl.AttachShader(g.program, shader)
	gl.LinkProgram(g.program)
	gl.DeleteShader(shader)

	var status int32
	gl.GetProgramiv(g.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(g.program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetProgramInfoLog(g.program, logLength, nil, &logMsg[0])
		gl.DeleteProgram(g.program)
		return fmt.Errorf("failed to link compute program: %s", logMsg)
	}

	g.uniforms = make(map[string]int32)
	for _, name := range []string{
		"uCount", "uElapsed", "uAmplitude", "uFrequency", "uSpeed",
		"uRotation", "uTimeSign", "uTimeScale", "uSwap",
	} {
		g.uniforms[name] = gl.GetUniformLocation(g.program, gl.Str(name+"\x00"))
	}

	g.count = len(vertices)
	if g.count == 0 {
		return errors.New("no vertices to upload")
	}
	packed := make([]float32, 2*g.count)
	for i, v := range vertices {
		packed[2*i] = float32(v.X)
		packed[2*i+1] = float32(v.Z)
	}
	g.scratch = make([]float32, g.count)

	gl.GenBuffers(1, &g.vertBuf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.vertBuf)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(packed)*4, gl.Ptr(packed), gl.STATIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, g.vertBuf)

	gl.GenBuffers(1, &g.heightBf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.heightBf)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, g.count*4, nil, gl.DYNAMIC_READ)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, g.heightBf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)

	g.ready = true
	return nil
}

// Displace ignores vertices beyond those uploaded by Init; callers pass the
// same plane every frame.
func (g *OpenGLBackend) Displace(vertices []grid.Vertex, snap wave.Snapshot, out []float64) {
	if !g.ready || len(vertices) != g.count {
		NewCPUBackend(0).Displace(vertices, snap, out)
		return
	}

	var amp, freq, speed, rot, sign, scale [2]float32
	var swap [2]int32
	for i, l := range snap.Layers {
		pol := wave.Policies[i]
		amp[i] = float32(l.Amplitude)
		freq[i] = float32(l.Frequency)
		speed[i] = float32(l.Speed)
		rot[i] = float32(l.Rotation)
		sign[i] = float32(pol.TimeSign)
		scale[i] = float32(pol.TimeScale)
		if pol.Swap {
			swap[i] = 1
		}
	}

	gl.UseProgram(g.program)
	gl.Uniform1ui(g.uniforms["uCount"], uint32(g.count))
	gl.Uniform1f(g.uniforms["uElapsed"], float32(snap.Elapsed))
	gl.Uniform1fv(g.uniforms["uAmplitude"], 2, &amp[0])
	gl.Uniform1fv(g.uniforms["uFrequency"], 2, &freq[0])
	gl.Uniform1fv(g.uniforms["uSpeed"], 2, &speed[0])
	gl.Uniform1fv(g.uniforms["uRotation"], 2, &rot[0])
	gl.Uniform1fv(g.uniforms["uTimeSign"], 2, &sign[0])
	gl.Uniform1fv(g.uniforms["uTimeScale"], 2, &scale[0])
	gl.Uniform1iv(g.uniforms["uSwap"], 2, &swap[0])

	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, g.vertBuf)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, g.heightBf)
	groups := uint32((g.count + workGroupSize - 1) / workGroupSize)
	gl.DispatchCompute(groups, 1, 1)
	gl.MemoryBarrier(gl.BUFFER_UPDATE_BARRIER_BIT)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, g.heightBf)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, g.count*4, unsafe.Pointer(&g.scratch[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)

	for i, h := range g.scratch {
		out[i] = float64(h)
	}
}

func (g *OpenGLBackend) Cleanup() {
	if !g.ready {
		return
	}
	gl.DeleteBuffers(1, &g.vertBuf)
	gl.DeleteBuffers(1, &g.heightBf)
	gl.DeleteProgram(g.program)
	g.ready = false
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile compute shader: %s", logMsg)
	}
	return shader, nil
}
