// Package connectome: value types and functional configuration.
// This file declares Node, documented defaults, the Option resolver,
// sentinel errors, and the stable panic messages for precondition
// violations (programmer errors, by analogy with invalid option values).
package connectome

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultConvergeFraction is the fraction of the point count at each end
	// of the mean curve that is pulled toward the node centre of mass during
	// finalization. The blend tapers linearly from full replacement at the
	// endpoint to no correction at the zone boundary.
	DefaultConvergeFraction = 0.25

	// DefaultBisectIterations bounds the bisection search used by uniform
	// resampling to place each vertex one step from its predecessor. It is a
	// precision knob, not a contract: more iterations tighten the step
	// tolerance at linear extra cost.
	DefaultBisectIterations = 6

	// MinExemplarPoints is the smallest accumulation buffer an exemplar
	// accepts. Below three points finalization skips the resampling walk and
	// keeps the converged buffer as-is.
	MinExemplarPoints = 2
)

// Sentinel errors for the Matrix surface (caller-data problems).
var (
	// ErrUnknownNode indicates a streamline referencing a node index outside
	// the matrix's node table.
	ErrUnknownNode = errors.New("connectome: node index outside matrix node table")

	// ErrNoNodes indicates a matrix constructed over an empty node table.
	ErrNoNodes = errors.New("connectome: node table is empty")
)

// Stable panic messages (no magic strings).
const (
	panicAddFinalized     = "connectome: Add called on a finalized exemplar"
	panicDoubleFinalize   = "connectome: Finalize called on a finalized exemplar"
	panicNodeMismatch     = "connectome: streamline node pair is neither the exemplar's pair nor its exact swap"
	panicEmptyStreamline  = "connectome: streamline with no points contributed to an exemplar"
	panicBadStepSize      = "connectome: step size must be finite and positive"
	panicBadPointCount    = "connectome: exemplar point count must be at least MinExemplarPoints"
	panicConvergeFraction = "connectome: WithConvergeFraction: fraction must be in [0, 0.5]"
	panicBisectIterations = "connectome: WithBisectIterations: iteration count must be at least 1"
)

// Node describes one parcellation region: its centre of mass and an
// optional human-readable label from the parcellation lookup table.
// Node indices are positional: the i-th entry of the table passed to
// NewMatrix is node i.
type Node struct {
	// COM is the region's precomputed centre of mass in scanner space.
	COM r3.Vec

	// Label is the lookup-table name of the region; may be empty.
	Label string
}

// Option mutates exemplar configuration. Constructors panic only on
// nonsensical values (programmer error).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
// Unexported to prevent external mutation; public entry points accept
// ...Option and resolve them via gatherOptions.
type options struct {
	convergeFraction float64 // fraction of points converged at each end
	bisectIterations int     // bisection iterations per resampled vertex
}

// WithConvergeFraction overrides the endpoint-convergence zone size.
// The fraction applies independently at both ends, so values above 0.5
// would make the zones overlap; such values panic.
// A fraction of 0 still anchors the two outermost points exactly on the
// node centroids (the zone is clamped to at least one point).
func WithConvergeFraction(f float64) Option {
	if math.IsNaN(f) || f < 0 || f > 0.5 {
		panic(panicConvergeFraction)
	}

	return func(o *options) { o.convergeFraction = f }
}

// WithBisectIterations overrides the bisection depth of the uniform
// resampling step. Each extra iteration halves the remaining bracket on the
// interpolation parameter.
func WithBisectIterations(n int) Option {
	if n < 1 {
		panic(panicBisectIterations)
	}

	return func(o *options) { o.bisectIterations = n }
}

// gatherOptions applies user-provided setters on top of the documented
// defaults; last-writer-wins semantics.
func gatherOptions(user ...Option) options {
	o := options{
		convergeFraction: DefaultConvergeFraction,
		bisectIterations: DefaultBisectIterations,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
