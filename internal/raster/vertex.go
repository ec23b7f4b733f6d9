package raster

import (
	"gpuraster/internal/mathutil"
)

// transformVertices runs the vertex transform kernel (§4.1) over every
// vertex of one group, writing into g.VertexOut. Small groups run inline;
// larger ones are split across the worker pool, since spinning up
// goroutines for a handful of vertices costs more than it saves.
const vertexParallelThreshold = 512

func transformVertices(g *DeviceGroup, mvp, mv mathutil.Mat4, mvNormal mathutil.Mat3, width, height int, workers int) error {
	n := len(g.Positions)
	if cap(g.VertexOut) < n {
		g.VertexOut = make([]VertexOut, n)
	} else {
		g.VertexOut = g.VertexOut[:n]
	}

	fn := func(lo, hi int) {
		for v := lo; v < hi; v++ {
			g.VertexOut[v] = transformOneVertex(g, v, mvp, mv, mvNormal, width, height)
		}
	}

	if n < vertexParallelThreshold {
		fn(0, n)
		return nil
	}
	return parallelFor(n, workers, fn)
}

func transformOneVertex(g *DeviceGroup, v int, mvp, mv mathutil.Mat4, mvNormal mathutil.Mat3, width, height int) VertexOut {
	pos := mathutil.Vec3{
		float64(g.Positions[v][0]),
		float64(g.Positions[v][1]),
		float64(g.Positions[v][2]),
	}

	eyePos := mv.MulPoint(pos)

	clip := mvp.MulVec4(pos)
	w := clip[3]
	var ndcX, ndcY, ndcZ float64
	if w != 0 {
		ndcX, ndcY, ndcZ = clip[0]/w, clip[1]/w, clip[2]/w
	}

	out := VertexOut{
		Pos: mathutil.Vec4{
			0.5 * float64(width) * (ndcX + 1),
			0.5 * float64(height) * (1 - ndcY),
			-ndcZ,
			w,
		},
		EyePos: eyePos,
	}

	var nor mathutil.Vec3
	if len(g.Normals) > 0 {
		n := g.Normals[v]
		nor = mvNormal.MulVec3(mathutil.Vec3{float64(n[0]), float64(n[1]), float64(n[2])})
	} else {
		nor = mvNormal.MulVec3(mathutil.Vec3{1, 1, 1})
	}
	out.EyeNor = nor.Normalize()

	if len(g.Texcoords) > 0 {
		uv := g.Texcoords[v]
		out.UV = mathutil.Vec2{float64(uv[0]), float64(uv[1])}
	}

	switch v % 3 {
	case 0:
		out.Col = mathutil.Vec3{0.5, 0, 0}
	case 1:
		out.Col = mathutil.Vec3{0, 0.5, 0}
	default:
		out.Col = mathutil.Vec3{0, 0, 0.5}
	}

	out.Tex = g.Tex
	if g.Tex != nil {
		out.TexWidth = g.Tex.Width
		out.TexHeight = g.Tex.Height
	}

	return out
}
