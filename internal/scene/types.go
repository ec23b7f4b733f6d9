// Package scene holds the host-side description of what gets uploaded to
// the rasterizer: plain, CPU-resident geometry and material data, built by
// a loader or a procedural generator and handed to raster.Pipeline.UploadScene
// once per scene change. It owns no device buffers of its own.
package scene

import (
	"gpuraster/internal/mathutil"
	"gpuraster/internal/texture"
)

// Kind mirrors raster.PrimitiveKind's numeric values without importing the
// raster package, keeping scene's dependency graph one-directional.
type Kind int

const (
	Triangles Kind = iota
	TriangleStrip
	TriangleFan
	Lines
	Points
)

// Group is one drawable piece of a scene: an index buffer over a set of
// per-vertex attribute arrays, a model matrix, and an optional diffuse
// texture. Generalized from the teacher's bmd.Mesh/Triangle pair (internal/
// bmd/types.go) into the format-agnostic shape §3's data model describes.
type Group struct {
	Name string
	Kind Kind

	Indices   []uint16
	Positions [][3]float32
	Normals   [][3]float32
	Texcoords [][2]float32

	Texture *texture.Image

	Model mathutil.Mat4
}

// Scene is an ordered collection of groups, drawn in order.
type Scene struct {
	Groups []Group
}
