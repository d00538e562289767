// Package tract: geometric primitives over r3 polylines.
// Arc length, squared separation, linear interpolation and in-place reversal;
// these are the building blocks of exemplar averaging and resampling.
package tract

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dist2 returns the squared Euclidean separation of p and q.
// Squared form avoids the sqrt on hot comparison paths.
// Complexity: O(1)
func Dist2(p, q r3.Vec) float64 {
	return r3.Norm2(r3.Sub(p, q))
}

// Dist returns the Euclidean separation of p and q.
// Complexity: O(1)
func Dist(p, q r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, q))
}

// Lerp linearly interpolates between a (t=0) and b (t=1).
// t is not clamped; callers control the valid range.
// Complexity: O(1)
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(r3.Scale(1-t, a), r3.Scale(t, b))
}

// Length returns the cumulative arc length of the polyline pts:
// the sum of Euclidean distances between consecutive points.
// A polyline with fewer than two points has zero length.
// Complexity: O(n)
func Length(pts []r3.Vec) float64 {
	var sum float64
	for i := 1; i < len(pts); i++ {
		sum += Dist(pts[i-1], pts[i])
	}

	return sum
}

// Reverse reverses pts in place.
// Complexity: O(n)
func Reverse(pts []r3.Vec) {
	for l, r := 0, len(pts)-1; l < r; l, r = l+1, r-1 {
		pts[l], pts[r] = pts[r], pts[l]
	}
}

// Validate checks that s carries at least one point and a usable weight.
// Returns ErrEmptyStreamline or ErrBadWeight; nil when s is well-formed.
// Complexity: O(1)
func (s *Streamline) Validate() error {
	if len(s.Points) == 0 {
		return ErrEmptyStreamline
	}
	if s.Weight < 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
		return ErrBadWeight
	}

	return nil
}
