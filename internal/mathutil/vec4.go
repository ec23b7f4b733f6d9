package mathutil

// Vec4 is a 4-component vector (value type, stack-allocated). The w
// component carries the pre-divide clip w for perspective-correct
// interpolation once a vertex has been projected.
type Vec4 [4]float64

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
