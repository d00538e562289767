// Package tractome reduces whole-brain tractography into compact connectome
// geometry — one representative 3-D curve (the "exemplar") per pair of
// anatomical regions.
//
// 🚀 What is tractome?
//
//	A thread-safe library for the geometric half of connectome construction:
//		• Streamline primitives: 3-D polylines with weights & terminating nodes
//		• Exemplars: incremental weighted averaging of arbitrarily-oriented
//		  streamlines into a single clean, fixed-step, endpoint-anchored curve
//		• Connectome matrix: one exemplar per edge, concurrent intake,
//		  pooled finalization, edge statistics
//		• Track I/O: the MRtrix track-file key-value header and binary
//		  streamline format, for downstream serialization
//
// ✨ Why choose tractome?
//
//   - Rock-solid guarantees – every exemplar serializes its mutation under a
//     single lock; finalization observes the fully-settled sum
//   - Order- and orientation-invariant – reversed streamlines contribute
//     identically to their forward twins
//   - Numerically robust – uniform resampling walks outward from the curve
//     midpoint with a bounded bisection instead of inverting arc length
//
// Under the hood, everything is organized under three subpackages:
//
//	tract/      — streamline, node-pair and 3-D geometry primitives
//	connectome/ — Exemplar accumulation/finalization & the per-edge Matrix
//	tckio/      — MRtrix track-file reader/writer (header + binary data)
//
// Quick ASCII example:
//
//	   node 3 ●───────╮ thousands of noisy streamlines
//	                  ≋≋≋≋≋≋≋
//	                  ╰───────● node 7
//	   ⇒ one exemplar: 3 ●━━━━━━━● 7   (uniform step, COM-anchored ends)
//
// Dive into each package's doc.go for algorithms, complexity notes and
// worked examples.
//
//	go get github.com/katalvlaran/tractome
package tractome
