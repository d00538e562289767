// Package tract: core value types.
// This file declares NodePair and Streamline plus their sentinel errors.
package tract

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for streamline validation.
var (
	// ErrEmptyStreamline indicates a streamline with no points was supplied
	// where geometry is required.
	ErrEmptyStreamline = errors.New("tract: streamline has no points")

	// ErrBadWeight indicates a negative, NaN or infinite streamline weight.
	ErrBadWeight = errors.New("tract: streamline weight must be finite and non-negative")
)

// NodePair is the ordered pair of parcellation node indices a streamline
// (or an exemplar) terminates at. Order is meaningful: it records which
// node the first point of the curve belongs to.
type NodePair struct {
	// First is the node index at the curve's first point.
	First uint32

	// Second is the node index at the curve's last point.
	Second uint32
}

// Pair constructs a NodePair from two node indices.
func Pair(first, second uint32) NodePair {
	return NodePair{First: first, Second: second}
}

// Swapped returns the pair with its endpoints exchanged.
func (p NodePair) Swapped() NodePair {
	return NodePair{First: p.Second, Second: p.First}
}

// IsSelf reports whether both endpoints reference the same node
// (a diagonal entry of the connectome matrix).
func (p NodePair) IsSelf() bool {
	return p.First == p.Second
}

// IsSwapOf reports whether q is exactly p with its endpoints exchanged.
func (p NodePair) IsSwapOf(q NodePair) bool {
	return p.First == q.Second && p.Second == q.First
}

// Streamline is an ordered sequence of 3-D points approximating one traced
// fibre pathway, together with its scalar weight and the node pair it
// terminates at.
//
// Consumers treat a Streamline as read-only; none of the tractome packages
// retain a reference to Points past the call that received it.
type Streamline struct {
	// Points is the ordered polyline, first point at Nodes.First.
	Points []r3.Vec

	// Weight scales this streamline's contribution (e.g. a SIFT2 factor).
	Weight float64

	// Nodes is the ordered pair of terminating node indices.
	Nodes NodePair
}

// Len returns the number of points in the streamline.
func (s *Streamline) Len() int {
	return len(s.Points)
}
