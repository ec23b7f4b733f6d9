package raster

import "fmt"

// assemblyState replaces the teacher's would-be module-level running begin
// offset (REDESIGN FLAG in SPEC_FULL.md §9) with an explicit, per-frame
// structure threaded through assembly calls.
type assemblyState struct {
	begin int
}

// assemblePrimitives walks g's index buffer per §4.2 and writes into
// prims[state.begin : state.begin+numPrimitives], advancing state.begin by
// the number of primitives written. Writes are to disjoint slots, so no
// synchronization is required between groups or between assembly and the
// previous vertex-transform barrier.
func assemblePrimitives(g *DeviceGroup, state *assemblyState, prims []Primitive, workers int) error {
	n := len(g.Indices)
	nv := len(g.VertexOut)

	switch g.Kind {
	case Triangles:
		if n%3 != 0 {
			return fmt.Errorf("raster: %w: triangle index count %d not a multiple of 3", ErrInvalidScene, n)
		}
		for _, idx := range g.Indices {
			if int(idx) >= nv {
				return fmt.Errorf("raster: %w: triangle index %d out of bounds for %d vertices", ErrInvalidScene, idx, nv)
			}
		}
		numPrims := n / 3
		base := state.begin
		err := parallelFor(numPrims, workers, func(lo, hi int) {
			for pid := lo; pid < hi; pid++ {
				prims[base+pid] = Primitive{Kind: Triangles, V: [3]VertexOut{
					g.VertexOut[g.Indices[pid*3]],
					g.VertexOut[g.Indices[pid*3+1]],
					g.VertexOut[g.Indices[pid*3+2]],
				}}
			}
		})
		if err != nil {
			return err
		}
		state.begin += numPrims

	case TriangleStrip:
		if n < 3 {
			return nil
		}
		numPrims := n - 2
		base := state.begin
		err := parallelFor(numPrims, workers, func(lo, hi int) {
			for pid := lo; pid < hi; pid++ {
				var i0, i1, i2 int
				if pid%2 == 0 {
					i0, i1, i2 = pid, pid+1, pid+2
				} else {
					i0, i1, i2 = pid+1, pid, pid+2
				}
				if indicesInBounds(g, nv, i0, i1, i2) {
					prims[base+pid] = Primitive{Kind: TriangleStrip, V: [3]VertexOut{
						g.VertexOut[g.Indices[i0]],
						g.VertexOut[g.Indices[i1]],
						g.VertexOut[g.Indices[i2]],
					}}
				}
			}
		})
		if err != nil {
			return err
		}
		state.begin += numPrims

	case TriangleFan:
		if n < 3 {
			return nil
		}
		numPrims := n - 2
		base := state.begin
		err := parallelFor(numPrims, workers, func(lo, hi int) {
			for pid := lo; pid < hi; pid++ {
				i0, i1, i2 := 0, pid+1, pid+2
				if indicesInBounds(g, nv, i0, i1, i2) {
					prims[base+pid] = Primitive{Kind: TriangleFan, V: [3]VertexOut{
						g.VertexOut[g.Indices[i0]],
						g.VertexOut[g.Indices[i1]],
						g.VertexOut[g.Indices[i2]],
					}}
				}
			}
		})
		if err != nil {
			return err
		}
		state.begin += numPrims

	default:
		return fmt.Errorf("raster: %w: unsupported primitive kind %v (only triangles, strip, fan scan-convert)", ErrInvalidScene, g.Kind)
	}

	return nil
}

func indicesInBounds(g *DeviceGroup, nv int, i0, i1, i2 int) bool {
	if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(g.Indices) || i1 >= len(g.Indices) || i2 >= len(g.Indices) {
		return false
	}
	return int(g.Indices[i0]) < nv && int(g.Indices[i1]) < nv && int(g.Indices[i2]) < nv
}
