// Package connectome: exemplar accumulation and finalization.
// This file implements the two mutating operations of an Exemplar — Add and
// Finalize — plus the endpoint-convergence and uniform-resampling internals.
package connectome

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tractome/tract"
)

// Exemplar is the single representative curve summarizing every streamline
// assigned to one connectome edge.
//
// Lifecycle: constructed with a fixed-capacity zeroed buffer, mutated any
// number of times by Add (a weighted running sum, concurrency-safe), then
// exactly once, terminally, by Finalize. Afterwards the exemplar is
// read-only and safe for concurrent reads.
//
// One mutex serializes all mutation, so accumulation from parallel
// producers and the single finalization never overlap.
type Exemplar struct {
	mu sync.Mutex

	opts  options
	nodes tract.NodePair
	coms  [2]r3.Vec

	// points has fixed length for the whole accumulation phase; Finalize
	// replaces it wholesale with the resampled sequence.
	points    []r3.Vec
	weight    float64
	finalized bool
}

// NewExemplar creates an exemplar for the given edge with a zeroed
// accumulation buffer of numPoints points. nodes fixes the edge's
// orientation; coms are the precomputed centres of mass of the two node
// regions, in the same order. Panics if numPoints < MinExemplarPoints.
// Complexity: O(numPoints)
func NewExemplar(numPoints int, nodes tract.NodePair, coms [2]r3.Vec, opts ...Option) *Exemplar {
	if numPoints < MinExemplarPoints {
		panic(panicBadPointCount)
	}

	return &Exemplar{
		opts:   gatherOptions(opts...),
		nodes:  nodes,
		coms:   coms,
		points: make([]r3.Vec, numPoints),
	}
}

// Add contributes one streamline, scaled by its weight, to the running sum.
//
// The streamline must belong to this exemplar's edge: its node pair is
// either the exemplar's pair (same orientation) or the exact swap, in which
// case the geometry is consumed in reverse point order. Any other pair is a
// pipeline logic defect and panics, as does calling Add after Finalize or
// feeding a streamline with no points.
//
// The input is read-only; the caller may recycle it as soon as Add returns.
// Safe for concurrent invocation from multiple producers.
// Complexity: O(numPoints) per call.
func (e *Exemplar) Add(s *tract.Streamline) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finalized {
		panic(panicAddFinalized)
	}
	m := len(s.Points)
	if m == 0 {
		panic(panicEmptyStreamline)
	}

	reversed := false
	if s.Nodes != e.nodes {
		if !s.Nodes.IsSwapOf(e.nodes) {
			panic(panicNodeMismatch)
		}
		reversed = true
	}

	// Resample the input onto the exemplar's point count by linear
	// interpolation in index space, flipped when the orientation is
	// reversed, and accumulate weighted.
	n := len(e.points)
	for i := 0; i < n; i++ {
		pos := float64(m-1) * float64(i) / float64(n)
		if reversed {
			pos = float64(m-1) - pos
		}
		lower := int(math.Floor(pos))
		var p r3.Vec
		if lower >= m-1 {
			p = s.Points[m-1]
		} else {
			p = tract.Lerp(s.Points[lower], s.Points[lower+1], pos-float64(lower))
		}
		e.points[i] = r3.Add(e.points[i], r3.Scale(s.Weight, p))
	}
	e.weight += s.Weight
}

// Finalize converts the accumulated sum into the final exemplar curve:
// normalized by total weight, endpoint-converged onto the node centroids,
// and resampled to a uniform arc-length step of stepSize.
//
// Degenerate cases — zero accumulated weight, or a self-edge (diagonal
// matrix entry) — replace the curve with a straight two-point line between
// the node centroids.
//
// Finalize must be called exactly once, after every producer's Add has
// returned; a second call panics, as does a non-positive or non-finite
// stepSize. Complexity: O(numPoints + R·iterations) for R output points.
func (e *Exemplar) Finalize(stepSize float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finalized {
		panic(panicDoubleFinalize)
	}
	if stepSize <= 0 || math.IsNaN(stepSize) || math.IsInf(stepSize, 0) {
		panic(panicBadStepSize)
	}

	// No streamlines assigned, or a diagonal entry: a straight line
	// between the two node centroids.
	if e.weight == 0 || e.nodes.IsSelf() {
		e.points = []r3.Vec{e.coms[0], e.coms[1]}
		e.finalized = true

		return
	}

	inv := 1 / e.weight
	for i := range e.points {
		e.points[i] = r3.Scale(inv, e.points[i])
	}

	e.convergeEndpoints()
	e.points = resampleUniform(e.points, stepSize, e.opts.bisectIterations)
	e.finalized = true
}

// convergeEndpoints blends each end of the mean curve toward its node
// centre of mass: the outermost point is replaced by the centroid exactly,
// the blend tapering linearly to zero correction at the zone boundary.
// The zone spans convergeFraction of the point count but never less than
// one point, so the endpoints are anchored even for very short buffers.
func (e *Exemplar) convergeEndpoints() {
	n := len(e.points)
	zone := int(e.opts.convergeFraction * float64(n))
	if zone == 0 {
		zone = 1
	}
	for i := 0; i < zone; i++ {
		mu := float64(i) / float64(zone)
		e.points[i] = tract.Lerp(e.coms[0], e.points[i], mu)
		j := n - 1 - i
		e.points[j] = tract.Lerp(e.coms[1], e.points[j], mu)
	}
}

// Nodes returns the ordered node pair this exemplar represents.
func (e *Exemplar) Nodes() tract.NodePair {
	return e.nodes
}

// COMs returns the two node centres of mass, in edge order.
func (e *Exemplar) COMs() [2]r3.Vec {
	return e.coms
}

// Finalized reports whether Finalize has completed.
func (e *Exemplar) Finalized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.finalized
}

// Weight returns the total contributed streamline weight so far.
func (e *Exemplar) Weight() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.weight
}

// Points returns the exemplar's current point sequence: the raw weighted
// sums during accumulation, the final uniformly-stepped curve afterwards.
// The returned slice is the internal buffer; callers must not mutate it.
func (e *Exemplar) Points() []r3.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.points
}

// NumPoints returns the exemplar's current point count.
func (e *Exemplar) NumPoints() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.points)
}

// Streamline exports the finalized exemplar as a weighted streamline, ready
// for downstream serialization. The points slice is copied.
// Returns false until Finalize has completed.
func (e *Exemplar) Streamline() (tract.Streamline, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.finalized {
		return tract.Streamline{}, false
	}
	pts := make([]r3.Vec, len(e.points))
	copy(pts, e.points)

	return tract.Streamline{Points: pts, Weight: e.weight, Nodes: e.nodes}, true
}

// resampleUniform rebuilds pts so consecutive vertices are separated by
// exactly step of arc length, except the outermost segment at each end:
// the endpoints are exact copies of the input curve's endpoints and may sit
// closer than step to their neighbour.
//
// The walk is anchored at the index nearest the midpoint and proceeds
// outward one direction at a time, so averaging noise near the curve ends
// cannot skew the whole resampling. Within a bracketing segment the vertex
// position is found by a bounded bisection on the interpolation parameter,
// compared in squared distance; the vertex is emitted at the proven lower
// bound of the bracket, as close to one step as the bracket allows without
// exceeding it.
//
// Curves with fewer than three points are returned as-is (copied): there is
// no interior to walk.
func resampleUniform(pts []r3.Vec, step float64, iters int) []r3.Vec {
	n := len(pts)
	if n < 3 {
		out := make([]r3.Vec, n)
		copy(out, pts)

		return out
	}

	stepSq := step * step
	mid := (n + 1) / 2
	out := []r3.Vec{pts[mid]}

	for _, dir := range [2]int{-1, +1} {
		index := mid
		bound := 0
		if dir == +1 {
			// First direction done: reverse what we have and walk the other
			// way from the midpoint again.
			tract.Reverse(out)
			bound = n - 1
		}

		// Tracks the segment the last vertex was emitted on: once a vertex
		// sits exactly on a segment, further vertices on that segment are
		// placed analytically instead of searched for.
		segIndex := -1
		segMu := 0.0

		for index != bound {
			// Advance directly while the next buffer point is still within
			// one step of the last emitted vertex.
			for index != bound && tract.Dist2(pts[index+dir], out[len(out)-1]) < stepSq {
				index += dir
			}
			if index == bound {
				// Curve boundary: copy it verbatim and stop this direction.
				out = append(out, pts[index])

				break
			}

			if index == segIndex {
				// The last vertex lies on this very segment, one step short
				// of the next; its successor is exactly one step further
				// along, no search required. The advance loop above
				// guarantees the segment still holds at least one step.
				segMu += step / math.Sqrt(tract.Dist2(pts[index], pts[index+dir]))
				out = append(out, tract.Lerp(pts[index], pts[index+dir], segMu))

				continue
			}

			// First vertex on this segment: the last emitted vertex is off
			// the segment but within one step of pts[index], so squared
			// distance crosses step² exactly once on the bracket. Bisect,
			// then emit at the proven lower bound: as close to one step as
			// the bracket allows without exceeding it.
			lower, upper := 0.0, 1.0
			mu := 0.5 * (lower + upper)
			p := tract.Lerp(pts[index], pts[index+dir], mu)
			for it := 0; it < iters; it++ {
				if tract.Dist2(p, out[len(out)-1]) > stepSq {
					upper = mu
				} else {
					lower = mu
				}
				mu = 0.5 * (lower + upper)
				p = tract.Lerp(pts[index], pts[index+dir], mu)
			}
			out = append(out, tract.Lerp(pts[index], pts[index+dir], lower))
			segIndex, segMu = index, lower
		}
	}

	return out
}
