package raster

// resolve runs the resolve stage (§4.5): a box-filter downsample from the
// supersampled framebuffer into an 8-bit RGBA output buffer of size
// outW×outH×4 (A always 0). With ssaa==1 this degenerates to a plain
// clamp-and-quantize. Written in the teacher's flat-slice, zero-allocation
// inner-loop style (triangle.go), but the box-filter math itself is
// grounded directly on the spec's §4.5 formula, not on the teacher's
// premultiplied-alpha Lanczos resize (see DESIGN.md).
func resolve(fb *FrameBuffers, ssaa int, output []byte) {
	outW := fb.Width / ssaa
	outH := fb.Height / ssaa
	inv := 1.0 / float64(ssaa*ssaa)

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var sum [3]float64
			for j := 0; j < ssaa; j++ {
				row := (y*ssaa + j) * fb.Width
				for i := 0; i < ssaa; i++ {
					c := fb.Color[row+x*ssaa+i]
					sum[0] += clamp01(c[0])
					sum[1] += clamp01(c[1])
					sum[2] += clamp01(c[2])
				}
			}

			o := (y*outW + x) * 4
			output[o] = quantize(sum[0] * inv)
			output[o+1] = quantize(sum[1] * inv)
			output[o+2] = quantize(sum[2] * inv)
			output[o+3] = 0
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func quantize(v float64) byte {
	return byte(v*255 + 0.5)
}
