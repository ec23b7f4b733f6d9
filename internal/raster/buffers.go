package raster

import (
	"math"

	"gpuraster/internal/mathutil"
	"gpuraster/internal/texture"
)

// PrimitiveKind tags how a group's index buffer should be walked during
// primitive assembly (§4.2).
type PrimitiveKind int

const (
	Triangles PrimitiveKind = iota
	TriangleStrip
	TriangleFan
	Lines
	Points
)

// DeviceGroup is the device-resident form of a host scene.Group (§3):
// immutable geometry storage plus a per-frame scratch VertexOut array.
type DeviceGroup struct {
	Kind PrimitiveKind

	Indices   []uint16
	Positions [][3]float32
	Normals   [][3]float32 // optional, len 0 if absent
	Texcoords [][2]float32 // optional, len 0 if absent

	Tex *texture.Image // optional, nil if the group has no diffuse texture

	Model       mathutil.Mat4
	NormalModel mathutil.Mat3 // cached NormalMatrix(Model), recombined with the camera's normal matrix every frame

	// VertexOut is scratch, sized to len(Positions), overwritten every
	// frame by the vertex transform kernel.
	VertexOut []VertexOut
}

func (g *DeviceGroup) numPrimitives() int {
	switch g.Kind {
	case Triangles:
		return len(g.Indices) / 3
	case TriangleStrip, TriangleFan:
		if len(g.Indices) < 3 {
			return 0
		}
		return len(g.Indices) - 2
	default:
		return 0
	}
}

// VertexOut is the per-vertex, per-frame output of the vertex transform
// kernel (§4.1, §3).
type VertexOut struct {
	Pos    mathutil.Vec4 // x,y in pixel coords, z window depth, w pre-divide clip w
	EyePos mathutil.Vec3
	EyeNor mathutil.Vec3
	Col    mathutil.Vec3 // debug tint
	UV     mathutil.Vec2

	Tex       *texture.Image
	TexWidth  int
	TexHeight int
}

// Primitive holds exactly three VertexOut copies gathered by primitive
// assembly (§3, §4.2).
type Primitive struct {
	Kind PrimitiveKind
	V    [3]VertexOut
}

// Fragment is the per-pixel winner record written by the rasterizer and
// read by the fragment shader (§3).
type Fragment struct {
	Covered bool

	EyePos mathutil.Vec3
	EyeNor mathutil.Vec3
	Col    mathutil.Vec3
	UV     mathutil.Vec2

	Tex       *texture.Image
	TexWidth  int
	TexHeight int

	// UVStart is the nearest-sampling byte index into Tex.Pix, valid when
	// Tex != nil and bilinear filtering is disabled.
	UVStart int
	// BilinearUV is the float pixel-space uv, valid when Tex != nil and
	// bilinear filtering is enabled.
	BilinearUV mathutil.Vec2

	// ZBary is the barycentric-interpolated window z, used by DEBUG_Z.
	ZBary float64
}

// DepthKey encodes a window-space z in [0,1] as round(INT_MAX * z): smaller
// is nearer, and the encoding is safe for atomic compare-exchange (§3).
func DepthKey(z float64) int32 {
	if z < 0 {
		z = 0
	}
	if z > 1 {
		z = 1
	}
	return int32(math.Round(float64(math.MaxInt32) * z))
}

// FrameBuffers holds every width×height array the rasterizer/shader/resolve
// stages share: the depth buffer, the per-pixel spinlock buffer, the
// fragment buffer, and the HDR color framebuffer (§3). Allocated once at
// Init, sized to the supersampled resolution, and reused across frames.
type FrameBuffers struct {
	Width  int // supersampled width
	Height int

	Depth     []int32
	Mutex     []int32
	Fragments []Fragment
	Color     [][3]float64
}

// NewFrameBuffers allocates zeroed buffers sized to width×height, matching
// the teacher's FrameBuffer allocate-once-reuse pattern (internal/raster/
// buffer.go), generalized from a single Color+ZBuf pair to four arrays:
// depth, mutex, fragment and color.
func NewFrameBuffers(width, height int) *FrameBuffers {
	n := width * height
	return &FrameBuffers{
		Width:     width,
		Height:    height,
		Depth:     make([]int32, n),
		Mutex:     make([]int32, n),
		Fragments: make([]Fragment, n),
		Color:     make([][3]float64, n),
	}
}

// Clear resets the depth buffer to INT_MAX and zeroes the fragment, mutex
// and color buffers (§4.6 step 1, §3 invariant).
func (fb *FrameBuffers) Clear() {
	for i := range fb.Depth {
		fb.Depth[i] = math.MaxInt32
	}
	for i := range fb.Fragments {
		fb.Fragments[i] = Fragment{}
	}
	for i := range fb.Mutex {
		fb.Mutex[i] = 0
	}
	for i := range fb.Color {
		fb.Color[i] = [3]float64{}
	}
}
