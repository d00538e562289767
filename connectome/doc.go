// Package connectome condenses groups of tractography streamlines into
// exemplars — one representative 3-D curve per connectome edge — and
// assembles them into a per-edge Matrix with pooled finalization and
// summary statistics.
//
// 🚀 What is an exemplar?
//
//	Every streamline assigned to an edge (an ordered pair of parcellation
//	nodes) is folded into a running weighted sum:
//	  • Add resamples the incoming polyline onto the exemplar's fixed point
//	    count by linear interpolation in index space, flips it when its node
//	    pair arrives reversed, and accumulates points scaled by the
//	    streamline weight.
//	  • Finalize divides the sum by the total weight, blends each end of the
//	    mean curve toward the corresponding node centre of mass so the
//	    endpoints land exactly on the centroids, then resamples the whole
//	    curve to a uniform arc-length step.
//
// Algorithm Outline (Finalize, non-degenerate):
//  1. Normalize: divide every accumulated point by the summed weight.
//  2. Endpoint convergence: over the leading and trailing quarter of the
//     buffer, blend linearly from the node centroid (at the very endpoint)
//     to the untouched mean curve (at the zone boundary).
//  3. Uniform resampling: start at the index nearest the midpoint, walk
//     outward one direction at a time; advance while the next buffer point
//     is still within one step, otherwise bisect the bracketing segment
//     (bounded iteration count) for the position one step away; stop each
//     direction at the curve boundary, which is copied verbatim.
//  4. Swap the resampled sequence in; the point count changes once, here.
//
// Concurrency:
//
//	One sync.Mutex per exemplar serializes Add/Add and Add/Finalize, so any
//	number of producers may feed the same exemplar. Finalize must run after
//	all producers are done; it then observes the fully-settled sum.
//	Matrix.FinalizeAll fans finalization out over a bounded worker pool.
//
// Errors vs panics:
//
//	Degenerate inputs (zero accumulated weight, self-edges) are documented
//	code paths producing a two-point straight line. Caller-data problems at
//	the Matrix surface return sentinel errors. Violated preconditions —
//	Add after Finalize, a second Finalize, a node pair that is neither the
//	exemplar's nor its exact swap — are programming errors and panic with
//	stable messages.
//
// Complexity:
//
//	Add       O(N) per streamline (N = exemplar point count)
//	Finalize  O(N + R·iters) where R is the resampled point count
//
// See examples in example_test.go.
package connectome
