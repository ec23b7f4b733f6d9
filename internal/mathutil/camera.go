package mathutil

import "math"

// LookAt builds a right-handed view matrix placing the camera at eye,
// looking toward center, with the given up hint.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s[0], s[1], s[2], -s.Dot(eye),
		u[0], u[1], u[2], -u.Dot(eye),
		-f[0], -f[1], -f[2], f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective builds a right-handed perspective projection matrix.
// fovYRadians is the full vertical field of view; near/far are positive
// distances along the camera's forward axis.
func Perspective(fovYRadians, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovYRadians/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) / (far - near), -(2 * far * near) / (far - near),
		0, 0, -1, 0,
	}
}
