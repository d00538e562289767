// Package connectome: the per-edge exemplar matrix.
// This file implements Matrix — concurrent routing of pre-assigned
// streamlines into one exemplar per edge, pooled finalization, and
// deterministic read access for downstream serialization.
package connectome

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tractome/tract"
)

// Matrix holds one exemplar per touched connectome edge, keyed by the
// normalized (smaller-index-first) node pair. Edges are allocated lazily on
// first contribution, so a sparse connectome never pays for its empty upper
// triangle.
//
// Matrix does not assign streamlines to node pairs; each incoming
// streamline already carries the edge it terminates at.
type Matrix struct {
	nodes     []Node
	numPoints int
	opts      []Option

	// mu guards the cells map only; each exemplar serializes itself.
	mu    sync.RWMutex
	cells map[tract.NodePair]*Exemplar
}

// NewMatrix creates an empty exemplar matrix over the given node table.
// Node indices are positional: nodes[i] is node i. numPoints fixes every
// exemplar's accumulation buffer; opts are forwarded to each exemplar.
// Returns ErrNoNodes for an empty table; panics on an invalid numPoints
// (programmer error, same contract as NewExemplar).
// Complexity: O(1)
func NewMatrix(nodes []Node, numPoints int, opts ...Option) (*Matrix, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	if numPoints < MinExemplarPoints {
		panic(panicBadPointCount)
	}

	return &Matrix{
		nodes:     nodes,
		numPoints: numPoints,
		opts:      opts,
		cells:     make(map[tract.NodePair]*Exemplar),
	}, nil
}

// normalizePair orders a pair smaller-index-first so that (a,b) and (b,a)
// share one cell; exemplar orientation handles the flip.
func normalizePair(p tract.NodePair) tract.NodePair {
	if p.First > p.Second {
		return p.Swapped()
	}

	return p
}

// Add routes one streamline into its edge's exemplar, creating the cell on
// first use. Safe for concurrent invocation from multiple producers.
// Returns ErrUnknownNode when either node index falls outside the node
// table, or the streamline's own validation error.
// Complexity: O(numPoints) per call (amortized).
func (m *Matrix) Add(s *tract.Streamline) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if int(s.Nodes.First) >= len(m.nodes) || int(s.Nodes.Second) >= len(m.nodes) {
		return fmt.Errorf("%w: pair (%d,%d) with %d nodes", ErrUnknownNode, s.Nodes.First, s.Nodes.Second, len(m.nodes))
	}

	m.cell(normalizePair(s.Nodes)).Add(s)

	return nil
}

// cell returns the exemplar for a normalized pair, allocating it on first
// use under the write lock.
func (m *Matrix) cell(key tract.NodePair) *Exemplar {
	m.mu.RLock()
	ex, ok := m.cells[key]
	m.mu.RUnlock()
	if ok {
		return ex
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ex, ok = m.cells[key]; ok {
		return ex
	}
	coms := [2]r3.Vec{m.nodes[key.First].COM, m.nodes[key.Second].COM}
	ex = NewExemplar(m.numPoints, key, coms, m.opts...)
	m.cells[key] = ex

	return ex
}

// FinalizeAll finalizes every touched edge to the given arc-length step,
// fanning the work out over a bounded pool. workers <= 0 selects
// runtime.GOMAXPROCS(0). Must be called exactly once, after all producers
// have finished adding; the per-exemplar double-finalize panic applies.
// Complexity: O(edges · numPoints / workers) wall-clock.
func (m *Matrix) FinalizeAll(stepSize float64, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m.mu.RLock()
	queue := make(chan *Exemplar, len(m.cells))
	for _, ex := range m.cells {
		queue <- ex
	}
	m.mu.RUnlock()
	close(queue)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for ex := range queue {
				ex.Finalize(stepSize)
			}
		}()
	}
	wg.Wait()
}

// Exemplar returns the exemplar for edge (a,b) in either order, and whether
// that edge has received any contribution.
func (m *Matrix) Exemplar(a, b uint32) (*Exemplar, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ex, ok := m.cells[normalizePair(tract.Pair(a, b))]

	return ex, ok
}

// EdgeWeight returns the total streamline weight accumulated on edge (a,b),
// in either order; ok is false when the edge was never touched.
func (m *Matrix) EdgeWeight(a, b uint32) (weight float64, ok bool) {
	ex, ok := m.Exemplar(a, b)
	if !ok {
		return 0, false
	}

	return ex.Weight(), true
}

// Edges returns every touched edge as a normalized pair, ordered by first
// then second node index. The order is deterministic across runs.
func (m *Matrix) Edges() []tract.NodePair {
	m.mu.RLock()
	defer m.mu.RUnlock()

	edges := make([]tract.NodePair, 0, len(m.cells))
	for key := range m.cells {
		edges = append(edges, key)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].First != edges[j].First {
			return edges[i].First < edges[j].First
		}

		return edges[i].Second < edges[j].Second
	})

	return edges
}

// Node returns the node table entry for index i.
func (m *Matrix) Node(i uint32) Node {
	return m.nodes[i]
}

// NumNodes returns the size of the node table.
func (m *Matrix) NumNodes() int {
	return len(m.nodes)
}

// NumEdges returns the number of touched edges.
func (m *Matrix) NumEdges() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.cells)
}

// Streamlines exports every finalized exemplar as a weighted streamline in
// deterministic edge order, ready for track-file serialization. Edges whose
// exemplar is not yet finalized are skipped.
func (m *Matrix) Streamlines() []tract.Streamline {
	edges := m.Edges()
	out := make([]tract.Streamline, 0, len(edges))
	for _, key := range edges {
		ex, _ := m.Exemplar(key.First, key.Second)
		if s, ok := ex.Streamline(); ok {
			out = append(out, s)
		}
	}

	return out
}
