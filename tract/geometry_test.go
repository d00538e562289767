// Package tract_test verifies the geometric primitives and value types.
package tract_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tractome/tract"
)

// TestDist2_MatchesSquaredDist checks Dist2 against Dist squared on a
// non-axis-aligned pair.
func TestDist2_MatchesSquaredDist(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	q := r3.Vec{X: -2, Y: 0.5, Z: 7}

	d := tract.Dist(p, q)
	assert.InDelta(t, d*d, tract.Dist2(p, q), 1e-12, "Dist2 must equal Dist squared")
}

// TestLerp_Endpoints verifies exact endpoint recovery at t=0 and t=1
// and the midpoint at t=0.5.
func TestLerp_Endpoints(t *testing.T) {
	a := r3.Vec{X: 1, Y: 1, Z: 1}
	b := r3.Vec{X: 3, Y: -1, Z: 5}

	assert.Equal(t, a, tract.Lerp(a, b, 0), "t=0 must return a")
	assert.Equal(t, b, tract.Lerp(a, b, 1), "t=1 must return b")
	assert.Equal(t, r3.Vec{X: 2, Y: 0, Z: 3}, tract.Lerp(a, b, 0.5), "t=0.5 must return the midpoint")
}

// TestLength_StraightAndEmpty covers the zero-length degenerate inputs
// and a simple axis-aligned polyline.
func TestLength_StraightAndEmpty(t *testing.T) {
	assert.Zero(t, tract.Length(nil), "nil polyline has zero length")
	assert.Zero(t, tract.Length([]r3.Vec{{X: 1}}), "single point has zero length")

	pts := []r3.Vec{{X: 0}, {X: 3}, {X: 3, Y: 4}}
	assert.InDelta(t, 7.0, tract.Length(pts), 1e-12, "3-4 right angle gives length 3+4")
}

// TestReverse_InPlace checks both odd and even point counts.
func TestReverse_InPlace(t *testing.T) {
	odd := []r3.Vec{{X: 1}, {X: 2}, {X: 3}}
	tract.Reverse(odd)
	assert.Equal(t, []r3.Vec{{X: 3}, {X: 2}, {X: 1}}, odd)

	even := []r3.Vec{{X: 1}, {X: 2}, {X: 3}, {X: 4}}
	tract.Reverse(even)
	assert.Equal(t, []r3.Vec{{X: 4}, {X: 3}, {X: 2}, {X: 1}}, even)
}

// TestNodePair_SwapAndSelf exercises Swapped, IsSwapOf and IsSelf.
func TestNodePair_SwapAndSelf(t *testing.T) {
	p := tract.Pair(2, 7)

	assert.Equal(t, tract.Pair(7, 2), p.Swapped(), "Swapped must exchange endpoints")
	assert.True(t, p.IsSwapOf(p.Swapped()), "a pair is the swap of its swap")
	assert.False(t, p.IsSwapOf(p), "a non-self pair is not its own swap")
	assert.False(t, p.IsSelf(), "distinct endpoints are not a self-edge")
	assert.True(t, tract.Pair(5, 5).IsSelf(), "equal endpoints form a self-edge")
	assert.True(t, tract.Pair(5, 5).IsSwapOf(tract.Pair(5, 5)), "a self pair is its own swap")
}

// TestStreamline_Validate covers the empty-geometry and bad-weight sentinels.
func TestStreamline_Validate(t *testing.T) {
	ok := &tract.Streamline{
		Points: []r3.Vec{{X: 0}, {X: 1}},
		Weight: 1,
		Nodes:  tract.Pair(1, 2),
	}
	assert.NoError(t, ok.Validate(), "well-formed streamline must validate")

	empty := &tract.Streamline{Weight: 1}
	assert.ErrorIs(t, empty.Validate(), tract.ErrEmptyStreamline, "no points must error")

	neg := &tract.Streamline{Points: ok.Points, Weight: -1}
	assert.ErrorIs(t, neg.Validate(), tract.ErrBadWeight, "negative weight must error")

	nan := &tract.Streamline{Points: ok.Points, Weight: math.NaN()}
	assert.ErrorIs(t, nan.Validate(), tract.ErrBadWeight, "NaN weight must error")

	inf := &tract.Streamline{Points: ok.Points, Weight: math.Inf(1)}
	assert.ErrorIs(t, inf.Validate(), tract.ErrBadWeight, "infinite weight must error")
}
