package scene

import (
	"gpuraster/internal/mathutil"
	"gpuraster/internal/texture"
)

// BuildDemo returns a small procedural scene — a unit cube and a ground
// quad — used by the turntable demo driver when no asset path is supplied.
// There is no model loader in this package (out of scope, SPEC_FULL.md §1);
// a real deployment supplies its own Scene built from whatever asset
// pipeline it has.
func BuildDemo() *Scene {
	return &Scene{
		Groups: []Group{
			cubeGroup(),
			groundGroup(),
		},
	}
}

func cubeGroup() Group {
	// 8 corners, 6 faces × 4 verts so each face keeps its own flat normal.
	faces := [][4][3]float32{
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},    // +Z
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, // -Z
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // -X
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},     // +X
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},     // +Y
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // -Y
	}
	normals := [][3]float32{
		{0, 0, 1}, {0, 0, -1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var positions [][3]float32
	var normalsOut [][3]float32
	var texcoords [][2]float32
	var indices []uint16

	for f, face := range faces {
		base := uint16(len(positions))
		for i, p := range face {
			positions = append(positions, p)
			normalsOut = append(normalsOut, normals[f])
			texcoords = append(texcoords, uvs[i])
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return Group{
		Name:      "cube",
		Kind:      Triangles,
		Indices:   indices,
		Positions: positions,
		Normals:   normalsOut,
		Texcoords: texcoords,
		Texture:   checkerTexture(64, 8),
		Model:     mathutil.Mat4Identity(),
	}
}

// checkerTexture builds a size×size packed-RGB checkerboard with the given
// block size, standing in for a real diffuse map when no asset path is
// supplied (there is no model/texture loader in this package, SPEC_FULL.md
// §1). Orange/cream so the effect of texture sampling is visually obvious
// against the demo's otherwise untextured ground quad.
func checkerTexture(size, block int) *texture.Image {
	pix := make([]byte, size*size*3)
	orange := [3]byte{217, 119, 6}
	cream := [3]byte{250, 240, 220}

	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := orange
			if (x/block+y/block)%2 == 0 {
				c = cream
			}
			pix[i] = c[0]
			pix[i+1] = c[1]
			pix[i+2] = c[2]
			i += 3
		}
	}
	return &texture.Image{Width: size, Height: size, Pix: pix}
}

func groundGroup() Group {
	const size = 6
	positions := [][3]float32{
		{-size, -1.5, -size},
		{size, -1.5, -size},
		{size, -1.5, size},
		{-size, -1.5, size},
	}
	normals := [][3]float32{
		{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
	}
	texcoords := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	return Group{
		Name:      "ground",
		Kind:      Triangles,
		Indices:   indices,
		Positions: positions,
		Normals:   normals,
		Texcoords: texcoords,
		Model:     mathutil.Mat4Identity(),
	}
}
