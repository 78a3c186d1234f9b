// Package util holds small numeric helpers shared across the mesher:
// linear interpolation, squared distance between vectors, and integer
// min/max/abs.
package util

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Lerp performs linear interpolation between two floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// DistSq returns the squared distance between two 3D vectors, routing
// through mgl32.Vec3's own vector arithmetic rather than hand-rolling
// subtraction and a dot product.
func DistSq(v1, v2 rl.Vector3) float32 {
	a := mgl32.Vec3{v1.X, v1.Y, v1.Z}
	b := mgl32.Vec3{v2.X, v2.Y, v2.Z}
	d := a.Sub(b)
	return d.Dot(d)
}

// AbsI32 returns the absolute value of an int32.
func AbsI32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

// MaxI32 returns the larger of two int32.
func MaxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// MinI32 returns the smaller of two int32.
func MinI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Clamp01 clamps a float32 to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
