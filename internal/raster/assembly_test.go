package raster

import (
	"errors"
	"testing"
)

func vertexOutsFor(n int) []VertexOut {
	out := make([]VertexOut, n)
	for i := range out {
		out[i] = vOut(float64(i), float64(i), 0.5, 1)
	}
	return out
}

func TestAssembleTrianglesMatchesVertexOutByIndex(t *testing.T) {
	g := &DeviceGroup{
		Kind:      Triangles,
		Indices:   []uint16{2, 0, 1, 1, 2, 0},
		Positions: make([][3]float32, 3),
		VertexOut: vertexOutsFor(3),
	}
	prims := make([]Primitive, 2)
	var state assemblyState
	if err := assemblePrimitives(g, &state, prims, 2); err != nil {
		t.Fatalf("assemblePrimitives: %v", err)
	}

	for pid := 0; pid < 2; pid++ {
		for slot := 0; slot < 3; slot++ {
			idx := g.Indices[pid*3+slot]
			want := g.VertexOut[idx]
			got := prims[pid].V[slot]
			if got.Pos != want.Pos {
				t.Errorf("prim %d slot %d = %v, want vertexOut[indices[%d]] = %v", pid, slot, got.Pos, pid*3+slot, want.Pos)
			}
		}
	}
	if state.begin != 2 {
		t.Errorf("state.begin = %d, want 2", state.begin)
	}
}

func TestAssembleTriangleStripWindingAlternates(t *testing.T) {
	g := &DeviceGroup{
		Kind:      TriangleStrip,
		Indices:   []uint16{0, 1, 2, 3},
		Positions: make([][3]float32, 4),
		VertexOut: vertexOutsFor(4),
	}
	prims := make([]Primitive, g.numPrimitives())
	var state assemblyState
	if err := assemblePrimitives(g, &state, prims, 1); err != nil {
		t.Fatalf("assemblePrimitives: %v", err)
	}
	if len(prims) != 2 {
		t.Fatalf("numPrimitives = %d, want 2", len(prims))
	}

	// pid 0 (even): vertices 0,1,2. pid 1 (odd): vertices 2,1,3, reordered
	// to keep consistent winding across the strip.
	wantIdx := [][3]int{{0, 1, 2}, {2, 1, 3}}
	for pid, want := range wantIdx {
		for slot, vi := range want {
			if prims[pid].V[slot].Pos != g.VertexOut[vi].Pos {
				t.Errorf("strip prim %d slot %d = %v, want vertexOut[%d] = %v", pid, slot, prims[pid].V[slot].Pos, vi, g.VertexOut[vi].Pos)
			}
		}
	}
}

func TestAssembleTriangleFanSharesFirstVertex(t *testing.T) {
	g := &DeviceGroup{
		Kind:      TriangleFan,
		Indices:   []uint16{0, 1, 2, 3, 4},
		Positions: make([][3]float32, 5),
		VertexOut: vertexOutsFor(5),
	}
	prims := make([]Primitive, g.numPrimitives())
	var state assemblyState
	if err := assemblePrimitives(g, &state, prims, 1); err != nil {
		t.Fatalf("assemblePrimitives: %v", err)
	}
	if len(prims) != 3 {
		t.Fatalf("numPrimitives = %d, want 3", len(prims))
	}
	for pid, prim := range prims {
		if prim.V[0].Pos != g.VertexOut[0].Pos {
			t.Errorf("fan prim %d slot 0 = %v, want vertexOut[0] = %v", pid, prim.V[0].Pos, g.VertexOut[0].Pos)
		}
	}
}

func TestAssembleRejectsLinesAndPoints(t *testing.T) {
	for _, kind := range []PrimitiveKind{Lines, Points} {
		g := &DeviceGroup{Kind: kind, Indices: []uint16{0, 1}, Positions: make([][3]float32, 2)}
		var state assemblyState
		err := assemblePrimitives(g, &state, make([]Primitive, 1), 1)
		if !errors.Is(err, ErrInvalidScene) {
			t.Errorf("kind %v: err = %v, want ErrInvalidScene", kind, err)
		}
	}
}

func TestAssembleTrianglesRejectsOutOfBoundsIndex(t *testing.T) {
	g := &DeviceGroup{
		Kind:      Triangles,
		Indices:   []uint16{0, 1, 3},
		Positions: make([][3]float32, 3),
		VertexOut: vertexOutsFor(3),
	}
	var state assemblyState
	err := assemblePrimitives(g, &state, make([]Primitive, 1), 1)
	if !errors.Is(err, ErrInvalidScene) {
		t.Errorf("err = %v, want ErrInvalidScene", err)
	}
}

func TestAssembleTrianglesRejectsNonMultipleOfThree(t *testing.T) {
	g := &DeviceGroup{Kind: Triangles, Indices: []uint16{0, 1, 2, 3}, Positions: make([][3]float32, 4)}
	var state assemblyState
	err := assemblePrimitives(g, &state, make([]Primitive, 1), 1)
	if !errors.Is(err, ErrInvalidScene) {
		t.Errorf("err = %v, want ErrInvalidScene", err)
	}
}

func TestAssemblyStateAdvancesAcrossGroups(t *testing.T) {
	g1 := &DeviceGroup{Kind: Triangles, Indices: []uint16{0, 1, 2}, Positions: make([][3]float32, 3), VertexOut: vertexOutsFor(3)}
	g2 := &DeviceGroup{Kind: Triangles, Indices: []uint16{0, 1, 2}, Positions: make([][3]float32, 3), VertexOut: vertexOutsFor(3)}

	prims := make([]Primitive, 2)
	var state assemblyState
	if err := assemblePrimitives(g1, &state, prims, 1); err != nil {
		t.Fatalf("group 1: %v", err)
	}
	if err := assemblePrimitives(g2, &state, prims, 1); err != nil {
		t.Fatalf("group 2: %v", err)
	}
	if state.begin != 2 {
		t.Errorf("state.begin = %d, want 2", state.begin)
	}
	// The REDESIGN FLAG this replaces: no package-level counter, so two
	// independent assemblyState values never interfere with each other.
	var other assemblyState
	if other.begin != 0 {
		t.Errorf("unrelated assemblyState.begin = %d, want 0", other.begin)
	}
}
