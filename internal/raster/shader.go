package raster

import (
	"math"

	"gpuraster/internal/mathutil"
	"gpuraster/internal/texture"
)

// lightPos is the single fixed point light position in eye space, per §4.4.
var lightPos = mathutil.Vec3{0.5, 0.2, 0.7}

// shadeFragments runs the fragment shader kernel (§4.4) over every pixel of
// the (supersampled) framebuffer.
func shadeFragments(fb *FrameBuffers, cfg Config, workers int) error {
	n := fb.Width * fb.Height
	return parallelFor(n, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fb.Color[i] = shadeOne(&fb.Fragments[i], cfg)
		}
	})
}

func shadeOne(frag *Fragment, cfg Config) [3]float64 {
	if !frag.Covered {
		return [3]float64{}
	}

	if cfg.DebugZ {
		g := math.Abs(1 - frag.ZBary)
		return [3]float64{g, g, g}
	}
	if cfg.DebugNorm {
		return [3]float64{frag.EyeNor[0], frag.EyeNor[1], frag.EyeNor[2]}
	}

	base := sampleBase(frag, cfg)

	lightDir := lightPos.Sub(frag.EyePos).Normalize()
	lambert := lightDir.Dot(frag.EyeNor)
	if lambert < 0 {
		lambert = 0
	}
	lambert += 0.1 // ambient

	return [3]float64{base[0] * lambert, base[1] * lambert, base[2] * lambert}
}

// sampleBase returns the un-lit base color for a fragment per §4.4 step 1:
// the debug tint if texturing is disabled by configuration, black if the
// fragment has no diffuse texture, otherwise the nearest or bilinear
// texture sample.
func sampleBase(frag *Fragment, cfg Config) [3]float64 {
	if !cfg.Texture {
		return [3]float64{frag.Col[0], frag.Col[1], frag.Col[2]}
	}
	if frag.Tex == nil {
		return [3]float64{}
	}
	if cfg.TextureBilinear {
		return sampleBilinear(frag.Tex, frag.BilinearUV[0], frag.BilinearUV[1])
	}
	return sampleNearest(frag.Tex, frag.UVStart)
}

func sampleNearest(tex *texture.Image, uvStart int) [3]float64 {
	pix := tex.Pix
	if uvStart < 0 || uvStart+2 >= len(pix) {
		return [3]float64{}
	}
	return [3]float64{
		float64(pix[uvStart]) / 255,
		float64(pix[uvStart+1]) / 255,
		float64(pix[uvStart+2]) / 255,
	}
}

// sampleBilinear blends the four texels surrounding (u,v) in pixel space,
// clamping each corner to [0,W-1]×[0,H-1] so a sample past the last texel
// (§8 boundary behavior) never reads out of bounds, per §4.4. u,v are
// shifted by half a texel first so a sample exactly at a texel's own pixel
// coordinate lands on that texel's center rather than its corner — the
// standard texel-center convention, distinct from the rasterizer's
// pixel-corner barycentric sampling (§9 open question, resolved separately
// for rasterization).
func sampleBilinear(tex *texture.Image, u, v float64) [3]float64 {
	u -= 0.5
	v -= 0.5
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	x0c := clampInt(x0, 0, tex.Width-1)
	y0c := clampInt(y0, 0, tex.Height-1)
	x1c := clampInt(x0+1, 0, tex.Width-1)
	y1c := clampInt(y0+1, 0, tex.Height-1)

	c00 := texel(tex, x0c, y0c)
	c10 := texel(tex, x1c, y0c)
	c01 := texel(tex, x0c, y1c)
	c11 := texel(tex, x1c, y1c)

	var out [3]float64
	for k := 0; k < 3; k++ {
		top := c00[k]*(1-fx) + c10[k]*fx
		bot := c01[k]*(1-fx) + c11[k]*fx
		out[k] = top*(1-fy) + bot*fy
	}
	return out
}

func texel(tex *texture.Image, x, y int) [3]float64 {
	i := (x + y*tex.Width) * 3
	if i < 0 || i+2 >= len(tex.Pix) {
		return [3]float64{}
	}
	return [3]float64{
		float64(tex.Pix[i]) / 255,
		float64(tex.Pix[i+1]) / 255,
		float64(tex.Pix[i+2]) / 255,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
