package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector, Y is up
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FDistSq returns squared distance between two points
func V3FDistSq(a, b Vec3F) float64 {
	return V3FMagSq(V3FSub(a, b))
}

// SpheresOverlap reports whether two spheres touch or intersect
func SpheresOverlap(a Vec3F, ra float64, b Vec3F, rb float64) bool {
	sum := ra + rb
	return V3FDistSq(a, b) <= sum*sum
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// ClosestOnSegment returns the point of segment [a, b] nearest to p
func ClosestOnSegment(a, b, p Vec3F) Vec3F {
	ab := V3FSub(b, a)
	lenSq := V3FMagSq(ab)
	if lenSq == 0 {
		return a
	}
	t := V3FDot(V3FSub(p, a), ab) / lenSq
	t = max(0, min(1, t))
	return V3FAdd(a, V3FScale(ab, t))
}
