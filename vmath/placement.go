package vmath

import "math"

// PointInDisk returns a uniformly distributed point inside a disk of the given radius
// Result is (x, z) on the horizontal plane
func PointInDisk(rng *FastRand, radius float64) (float64, float64) {
	if radius <= 0 {
		return 0, 0
	}
	// sqrt keeps area density uniform
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	return r * math.Cos(theta), r * math.Sin(theta)
}

// DiskBandPoint returns a point in the cylinder slice [disk × height band] around anchor
func DiskBandPoint(rng *FastRand, anchor Vec3F, radius, minHeight, maxHeight float64) Vec3F {
	x, z := PointInDisk(rng, radius)
	y := rng.Range(minHeight, maxHeight)
	return Vec3F{X: anchor.X + x, Y: anchor.Y + y, Z: anchor.Z + z}
}
