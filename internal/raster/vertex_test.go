package raster

import (
	"math"
	"testing"

	"gpuraster/internal/mathutil"
)

func identityGroup(positions [][3]float32) *DeviceGroup {
	return &DeviceGroup{
		Positions: positions,
		VertexOut: make([]VertexOut, len(positions)),
	}
}

func TestTransformVertexWindowMapping(t *testing.T) {
	mvp := mathutil.Mat4Identity()
	mv := mathutil.Mat4Identity()
	mvNormal := mathutil.Mat3Identity()
	g := identityGroup([][3]float32{{0, 0, 0}})

	out := transformOneVertex(g, 0, mvp, mv, mvNormal, 100, 50)

	// clip == (0,0,0,1) under identity, so ndc == (0,0,0): window x should
	// land at the center of the viewport.
	wantX := 0.5 * 100 * (0 + 1)
	wantY := 0.5 * 50 * (1 - 0)
	if math.Abs(out.Pos[0]-wantX) > 1e-9 {
		t.Errorf("window x = %v, want %v", out.Pos[0], wantX)
	}
	if math.Abs(out.Pos[1]-wantY) > 1e-9 {
		t.Errorf("window y = %v, want %v", out.Pos[1], wantY)
	}
	if out.Pos[3] != 1 {
		t.Errorf("stored w = %v, want 1 (pre-divide clip w)", out.Pos[3])
	}
}

func TestTransformVertexMissingNormalFallsBackToIdentityDirection(t *testing.T) {
	mvp := mathutil.Mat4Identity()
	mv := mathutil.Mat4Identity()
	mvNormal := mathutil.Mat3Identity()
	g := identityGroup([][3]float32{{1, 2, 3}}) // no Normals set

	out := transformOneVertex(g, 0, mvp, mv, mvNormal, 10, 10)

	want := mathutil.Vec3{1, 1, 1}.Normalize()
	if d := out.EyeNor.Sub(want).Len(); d > 1e-9 {
		t.Errorf("eyeNor = %v, want normalized (1,1,1) fallback = %v", out.EyeNor, want)
	}
}

func TestTransformVertexMissingTexcoordDefaultsToZero(t *testing.T) {
	mvp := mathutil.Mat4Identity()
	mv := mathutil.Mat4Identity()
	mvNormal := mathutil.Mat3Identity()
	g := identityGroup([][3]float32{{0, 0, 0}})

	out := transformOneVertex(g, 0, mvp, mv, mvNormal, 10, 10)
	if out.UV != (mathutil.Vec2{}) {
		t.Errorf("uv = %v, want (0,0) when the group has no texcoords", out.UV)
	}
}

func TestTransformVerticesParallelMatchesSequential(t *testing.T) {
	n := 2000
	positions := make([][3]float32, n)
	for i := range positions {
		positions[i] = [3]float32{float32(i), float32(-i), float32(i % 7)}
	}

	mvp := mathutil.Mat4Mul(mathutil.Perspective(mathutil.Deg2Rad(60), 1, 0.1, 100), mathutil.Mat4Identity())
	mv := mathutil.Mat4Identity()
	mvNormal := mathutil.Mat3Identity()

	gPar := identityGroup(positions)
	if err := transformVertices(gPar, mvp, mv, mvNormal, 64, 64, 4); err != nil {
		t.Fatalf("transformVertices (parallel): %v", err)
	}

	gSeq := identityGroup(positions)
	for v := range positions {
		gSeq.VertexOut[v] = transformOneVertex(gSeq, v, mvp, mv, mvNormal, 64, 64)
	}

	for i := range gPar.VertexOut {
		if gPar.VertexOut[i].Pos != gSeq.VertexOut[i].Pos {
			t.Fatalf("vertex %d: parallel Pos = %v, sequential Pos = %v", i, gPar.VertexOut[i].Pos, gSeq.VertexOut[i].Pos)
		}
	}
}
