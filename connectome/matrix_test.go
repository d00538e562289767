// Package connectome_test verifies Matrix routing, pooled finalization,
// deterministic ordering and summary statistics.
package connectome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tractome/connectome"
	"github.com/katalvlaran/tractome/tract"
)

// fourNodes is a small node table on the x-axis.
func fourNodes() []connectome.Node {
	return []connectome.Node{
		{COM: r3.Vec{X: 0}, Label: "lh.A"},
		{COM: r3.Vec{X: 3}, Label: "lh.B"},
		{COM: r3.Vec{X: 6}, Label: "rh.A"},
		{COM: r3.Vec{X: 9}, Label: "rh.B"},
	}
}

// segment builds a two-point streamline between node centroids a and b.
func segment(a, b uint32, weight float64) *tract.Streamline {
	return &tract.Streamline{
		Points: []r3.Vec{{X: float64(3 * a)}, {X: float64(3 * b)}},
		Weight: weight,
		Nodes:  tract.Pair(a, b),
	}
}

// TestNewMatrix_EmptyTable verifies the ErrNoNodes sentinel.
func TestNewMatrix_EmptyTable(t *testing.T) {
	_, err := connectome.NewMatrix(nil, 10)
	assert.ErrorIs(t, err, connectome.ErrNoNodes)
}

// TestMatrix_AddValidation covers unknown nodes and malformed streamlines.
func TestMatrix_AddValidation(t *testing.T) {
	m, err := connectome.NewMatrix(fourNodes(), 10)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Add(segment(1, 9, 1)), connectome.ErrUnknownNode, "node 9 is outside the table")
	assert.ErrorIs(t, m.Add(&tract.Streamline{Weight: 1, Nodes: tract.Pair(0, 1)}),
		tract.ErrEmptyStreamline, "empty geometry must surface the tract sentinel")
	assert.ErrorIs(t, m.Add(&tract.Streamline{
		Points: []r3.Vec{{}, {X: 1}}, Weight: -2, Nodes: tract.Pair(0, 1),
	}), tract.ErrBadWeight, "bad weight must surface the tract sentinel")
	assert.Zero(t, m.NumEdges(), "rejected streamlines must not allocate cells")
}

// TestMatrix_RoutingMergesOrientations verifies that (a,b) and (b,a)
// streamlines land in one cell with their weights merged.
func TestMatrix_RoutingMergesOrientations(t *testing.T) {
	m, err := connectome.NewMatrix(fourNodes(), 10)
	require.NoError(t, err)

	require.NoError(t, m.Add(segment(1, 3, 2)))
	require.NoError(t, m.Add(segment(3, 1, 3)))

	assert.Equal(t, 1, m.NumEdges(), "both orientations must share one edge")
	w, ok := m.EdgeWeight(3, 1)
	require.True(t, ok)
	assert.Equal(t, 5.0, w, "weights from both orientations must merge")

	ex, ok := m.Exemplar(1, 3)
	require.True(t, ok)
	assert.Equal(t, tract.Pair(1, 3), ex.Nodes(), "cells are keyed smaller-index-first")
}

// TestMatrix_EdgesDeterministicOrder verifies lexicographic edge ordering.
func TestMatrix_EdgesDeterministicOrder(t *testing.T) {
	m, err := connectome.NewMatrix(fourNodes(), 10)
	require.NoError(t, err)

	require.NoError(t, m.Add(segment(2, 3, 1)))
	require.NoError(t, m.Add(segment(0, 3, 1)))
	require.NoError(t, m.Add(segment(1, 1, 1)))
	require.NoError(t, m.Add(segment(0, 1, 1)))

	assert.Equal(t, []tract.NodePair{
		tract.Pair(0, 1),
		tract.Pair(0, 3),
		tract.Pair(1, 1),
		tract.Pair(2, 3),
	}, m.Edges())
}

// TestMatrix_FinalizeAllAndExport verifies pooled finalization and the
// deterministic streamline export, including the self-edge degenerate.
func TestMatrix_FinalizeAllAndExport(t *testing.T) {
	m, err := connectome.NewMatrix(fourNodes(), 16)
	require.NoError(t, err)

	require.NoError(t, m.Add(segment(0, 2, 1)))
	require.NoError(t, m.Add(segment(2, 0, 1)))
	require.NoError(t, m.Add(segment(1, 1, 4)))

	m.FinalizeAll(0.5, 3)

	for _, key := range m.Edges() {
		ex, ok := m.Exemplar(key.First, key.Second)
		require.True(t, ok)
		assert.True(t, ex.Finalized(), "edge %v must be finalized", key)
	}

	out := m.Streamlines()
	require.Len(t, out, 2)
	// Edge (0,2): anchored on the two centroids.
	assert.Equal(t, r3.Vec{X: 0}, out[0].Points[0])
	assert.Equal(t, r3.Vec{X: 6}, out[0].Points[len(out[0].Points)-1])
	assert.Equal(t, 2.0, out[0].Weight)
	// Self-edge (1,1): two identical centroid points.
	assert.Equal(t, []r3.Vec{{X: 3}, {X: 3}}, out[1].Points)
	assert.Equal(t, 4.0, out[1].Weight)
}

// TestMatrix_Stats verifies edge counts, density and weight summaries.
func TestMatrix_Stats(t *testing.T) {
	m, err := connectome.NewMatrix(fourNodes(), 10)
	require.NoError(t, err)

	require.NoError(t, m.Add(segment(0, 1, 2)))
	require.NoError(t, m.Add(segment(0, 2, 4)))
	require.NoError(t, m.Add(segment(3, 3, 6)))

	s := m.Stats()
	assert.Equal(t, 4, s.Nodes)
	assert.Equal(t, 2, s.Edges)
	assert.Equal(t, 1, s.SelfEdges)
	assert.InDelta(t, 2.0/6.0, s.Density, 1e-12, "2 touched of 6 possible off-diagonal pairs")
	assert.InDelta(t, 12.0, s.TotalWeight, 1e-12)
	assert.InDelta(t, 4.0, s.MeanWeight, 1e-12)
	assert.InDelta(t, 2.0, s.StdWeight, 1e-12, "sample std of {2,4,6}")
}
