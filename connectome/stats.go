// Package connectome: connectome-level summary statistics.
// Edge weights feed gonum's stat primitives; density follows the usual
// undirected definition with the diagonal excluded.
package connectome

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the weighted connectivity captured by a Matrix.
type Stats struct {
	// Nodes is the node-table size.
	Nodes int

	// Edges is the number of touched off-diagonal edges; SelfEdges counts
	// touched diagonal entries separately.
	Edges     int
	SelfEdges int

	// Density is Edges over the number of possible off-diagonal node pairs.
	Density float64

	// TotalWeight, MeanWeight and StdWeight summarize the per-edge
	// accumulated streamline weights (diagonal included).
	TotalWeight float64
	MeanWeight  float64
	StdWeight   float64
}

// Stats computes summary statistics over every touched edge. The standard
// deviation is zero when fewer than two edges were touched.
// Complexity: O(edges · log(edges))
func (m *Matrix) Stats() Stats {
	edges := m.Edges()

	s := Stats{Nodes: len(m.nodes)}
	weights := make([]float64, 0, len(edges))
	for _, key := range edges {
		if key.IsSelf() {
			s.SelfEdges++
		} else {
			s.Edges++
		}
		w, _ := m.EdgeWeight(key.First, key.Second)
		weights = append(weights, w)
		s.TotalWeight += w
	}

	if n := len(m.nodes); n > 1 {
		s.Density = float64(s.Edges) / float64(n*(n-1)/2)
	}
	if len(weights) > 0 {
		s.MeanWeight = stat.Mean(weights, nil)
	}
	if len(weights) > 1 {
		s.StdWeight = stat.StdDev(weights, nil)
	}

	return s
}
