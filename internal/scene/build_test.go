package scene

import "testing"

func TestBuildDemoGroupsAreWellFormed(t *testing.T) {
	s := BuildDemo()
	if len(s.Groups) == 0 {
		t.Fatal("BuildDemo returned no groups")
	}

	cube := s.Groups[0]
	if cube.Name != "cube" || cube.Texture == nil {
		t.Fatalf("expected the first group to be a textured cube, got %q with Texture=%v", cube.Name, cube.Texture)
	}
	if cube.Texture.Width == 0 || cube.Texture.Height == 0 || len(cube.Texture.Pix) != cube.Texture.Width*cube.Texture.Height*3 {
		t.Errorf("cube texture malformed: %dx%d, %d bytes", cube.Texture.Width, cube.Texture.Height, len(cube.Texture.Pix))
	}

	for _, g := range s.Groups {
		if len(g.Indices)%3 != 0 {
			t.Errorf("group %q: %d indices, not a multiple of 3", g.Name, len(g.Indices))
		}
		if len(g.Normals) != 0 && len(g.Normals) != len(g.Positions) {
			t.Errorf("group %q: %d normals, want 0 or %d", g.Name, len(g.Normals), len(g.Positions))
		}
		if len(g.Texcoords) != 0 && len(g.Texcoords) != len(g.Positions) {
			t.Errorf("group %q: %d texcoords, want 0 or %d", g.Name, len(g.Texcoords), len(g.Positions))
		}
		for _, idx := range g.Indices {
			if int(idx) >= len(g.Positions) {
				t.Errorf("group %q: index %d out of bounds for %d positions", g.Name, idx, len(g.Positions))
			}
		}
	}
}
