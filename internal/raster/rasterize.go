package raster

import (
	"math"
	"runtime"
	"sync/atomic"

	"gpuraster/internal/mathutil"
)

// spinBackoffAfter is the number of failed CAS attempts before a goroutine
// yields the rest of its time slice. A GPU thread-group would livelock if a
// divergent branch serialized contending lanes; a goroutine cannot, since
// the Go scheduler preemptively time-slices, but yielding early is cheap
// and keeps a hot pixel from starving other work on the same GOMAXPROCS
// slot (§5 "Deadlock avoidance").
const spinBackoffAfter = 64

// rasterizePrimitives runs the rasterizer kernel (§4.3) over every
// primitive, partitioned across the worker pool. Each worker scans its own
// primitives' bounding boxes independently; cross-worker contention is only
// possible at the shared per-pixel (depth, fragment) pair, guarded by the
// CAS spinlock in mutex.
func rasterizePrimitives(prims []Primitive, fb *FrameBuffers, correctInterp bool, workers int) error {
	return parallelFor(len(prims), workers, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			rasterizeOne(&prims[p], fb, correctInterp)
		}
	})
}

func rasterizeOne(prim *Primitive, fb *FrameBuffers, correctInterp bool) {
	t0, t1, t2 := prim.V[0].Pos, prim.V[1].Pos, prim.V[2].Pos

	minX := int(math.Floor(math.Min(math.Min(t0[0], t1[0]), t2[0])))
	maxX := int(math.Ceil(math.Max(math.Max(t0[0], t1[0]), t2[0])))
	minY := int(math.Floor(math.Min(math.Min(t0[1], t1[1]), t2[1])))
	maxY := int(math.Ceil(math.Max(math.Max(t0[1], t1[1]), t2[1])))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > fb.Width {
		maxX = fb.Width
	}
	if maxY > fb.Height {
		maxY = fb.Height
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Signed-area barycentric setup, sampled at integer pixel corners
	// (col,row) — not pixel centers — matching the teacher's triangle.go
	// convention (Open Question resolved, SPEC_FULL.md §9).
	det := (t1[1]-t2[1])*(t0[0]-t2[0]) + (t2[0]-t1[0])*(t0[1]-t2[1])
	if det > -1e-9 && det < 1e-9 {
		return // degenerate (zero-area) triangle
	}
	invDet := 1.0 / det

	dy12 := t1[1] - t2[1]
	dx21 := t2[0] - t1[0]
	dy20 := t2[1] - t0[1]
	dx02 := t0[0] - t2[0]

	w0Inv, w1Inv, w2Inv := 1.0, 1.0, 1.0
	if correctInterp {
		w0Inv, w1Inv, w2Inv = invW(t0[3]), invW(t1[3]), invW(t2[3])
	}

	for row := minY; row < maxY; row++ {
		dsy := float64(row) - t2[1]
		rowOff := row * fb.Width
		for col := minX; col < maxX; col++ {
			dsx := float64(col) - t2[0]
			l0 := (dy12*dsx + dx21*dsy) * invDet
			l1 := (dy20*dsx + dx02*dsy) * invDet
			l2 := 1.0 - l0 - l1

			if l0 < 0 || l0 > 1 || l1 < 0 || l1 > 1 || l2 < 0 || l2 > 1 {
				continue
			}

			z := l0*t0[2] + l1*t1[2] + l2*t2[2]
			newDepth := DepthKey(z)
			i := rowOff + col

			resolvePixel(fb, i, newDepth, func() Fragment {
				return interpolateFragment(prim, l0, l1, l2, z, w0Inv, w1Inv, w2Inv, correctInterp)
			})
		}
	}
}

func invW(w float64) float64 {
	if w == 0 {
		return 0
	}
	return 1.0 / w
}

// resolvePixel is the depth-resolve critical section (§4.3 step 3d): it
// acquires the per-pixel spinlock, and — only if newDepth beats the
// pixel's current depth (strict less-than, so an equal-depth later primitive
// never overwrites an earlier one, §4.3 "Tie-breaks") — calls makeFragment
// to interpolate attributes and publishes both depth and fragment together,
// before releasing the lock. Interpolation only happens for pixels that
// actually win, and the depth+fragment pair is updated as one atomic unit
// from the point of view of any other goroutine touching this pixel.
func resolvePixel(fb *FrameBuffers, i int, newDepth int32, makeFragment func() Fragment) {
	acquireMutex(fb.Mutex, i)
	if newDepth < fb.Depth[i] {
		fb.Depth[i] = newDepth
		fb.Fragments[i] = makeFragment()
	}
	atomic.StoreInt32(&fb.Mutex[i], 0)
}

func acquireMutex(mutex []int32, i int) {
	attempts := 0
	for !atomic.CompareAndSwapInt32(&mutex[i], 0, 1) {
		attempts++
		if attempts >= spinBackoffAfter {
			runtime.Gosched()
			attempts = 0
		}
	}
}

func interpolateFragment(prim *Primitive, l0, l1, l2, z, w0Inv, w1Inv, w2Inv float64, correctInterp bool) Fragment {
	v0, v1, v2 := &prim.V[0], &prim.V[1], &prim.V[2]

	var eyePos, eyeNor, col mathutil.Vec3
	var uv mathutil.Vec2

	if correctInterp {
		wStar := 1.0 / (l0*w0Inv + l1*w1Inv + l2*w2Inv)
		blend3 := func(a, b, c mathutil.Vec3) mathutil.Vec3 {
			return mathutil.Vec3{
				wStar * (l0*a[0]*w0Inv + l1*b[0]*w1Inv + l2*c[0]*w2Inv),
				wStar * (l0*a[1]*w0Inv + l1*b[1]*w1Inv + l2*c[1]*w2Inv),
				wStar * (l0*a[2]*w0Inv + l1*b[2]*w1Inv + l2*c[2]*w2Inv),
			}
		}
		eyePos = blend3(v0.EyePos, v1.EyePos, v2.EyePos)
		eyeNor = blend3(v0.EyeNor, v1.EyeNor, v2.EyeNor).Normalize()
		col = blend3(v0.Col, v1.Col, v2.Col)
		uv = mathutil.Vec2{
			wStar * (l0*v0.UV[0]*w0Inv + l1*v1.UV[0]*w1Inv + l2*v2.UV[0]*w2Inv),
			wStar * (l0*v0.UV[1]*w0Inv + l1*v1.UV[1]*w1Inv + l2*v2.UV[1]*w2Inv),
		}
	} else {
		aff3 := func(a, b, c mathutil.Vec3) mathutil.Vec3 {
			return mathutil.Vec3{
				l0*a[0] + l1*b[0] + l2*c[0],
				l0*a[1] + l1*b[1] + l2*c[1],
				l0*a[2] + l1*b[2] + l2*c[2],
			}
		}
		eyePos = aff3(v0.EyePos, v1.EyePos, v2.EyePos)
		eyeNor = aff3(v0.EyeNor, v1.EyeNor, v2.EyeNor).Normalize()
		col = aff3(v0.Col, v1.Col, v2.Col)
		uv = mathutil.Vec2{
			l0*v0.UV[0] + l1*v1.UV[0] + l2*v2.UV[0],
			l0*v0.UV[1] + l1*v1.UV[1] + l2*v2.UV[1],
		}
	}

	frag := Fragment{
		Covered: true,
		EyePos:  eyePos,
		EyeNor:  eyeNor,
		Col:     col,
		UV:      uv,
		ZBary:   z,
	}

	tex := v0.Tex
	if tex == nil {
		tex = v1.Tex
	}
	if tex == nil {
		tex = v2.Tex
	}
	if tex != nil {
		frag.Tex = tex
		frag.TexWidth = tex.Width
		frag.TexHeight = tex.Height

		uPix := uv[0] * float64(tex.Width)
		vPix := uv[1] * float64(tex.Height)
		frag.BilinearUV = mathutil.Vec2{uPix, vPix}

		ux := clampInt(int(math.Floor(uPix)), 0, tex.Width-1)
		vy := clampInt(int(math.Floor(vPix)), 0, tex.Height-1)
		frag.UVStart = (ux + vy*tex.Width) * 3
	}

	return frag
}
