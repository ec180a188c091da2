package space

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/talgya/cellspace/internal/entropy"
)

// NetworkConfig holds the knobs for graph-imported topologies.
type NetworkConfig struct {
	// Capacity bounds occupants per cell; 0 means no bound.
	Capacity int
	// Capacities overrides Capacity for individual nodes.
	Capacities map[int64]int
	// Seed feeds the space's random source when Rand is nil.
	Seed int64
	// Rand, when set, is used instead of building a source from Seed.
	Rand *entropy.Source
}

// Network is a cell space whose adjacency is imported from an explicit
// graph: one cell per node, edges copied as symmetric connections. It is the
// only topology that allows adding edges after construction.
type Network struct {
	*Space
}

// NewNetwork builds a network space from a gonum graph. Node iteration and
// per-node neighbor lists are ordered by node id, so the same input graph
// always yields the same connection order. A malformed input is fatal; there
// is no partially built space.
func NewNetwork(g graph.Graph, cfg NetworkConfig) (*Network, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrInvalidArgument)
	}
	capacity, err := normalizeCapacity(cfg.Capacity)
	if err != nil {
		return nil, err
	}

	nodes := graph.NodesOf(g.Nodes())
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	s := newSpace(sourceFor(cfg.Rand, cfg.Seed), len(nodes))
	for _, n := range nodes {
		nodeCap := capacity
		if override, ok := cfg.Capacities[n.ID()]; ok {
			if nodeCap, err = normalizeCapacity(override); err != nil {
				return nil, fmt.Errorf("node %d: %w", n.ID(), err)
			}
		}
		s.addCell(NodeCoord(int(n.ID())), nodeCap)
	}

	for _, n := range nodes {
		cell := s.cells[NodeCoord(int(n.ID()))]
		neighbors := graph.NodesOf(g.From(n.ID()))
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].ID() < neighbors[j].ID() })
		for _, nb := range neighbors {
			other, ok := s.cells[NodeCoord(int(nb.ID()))]
			if !ok {
				return nil, fmt.Errorf("%w: edge to unknown node %d", ErrInvalidArgument, nb.ID())
			}
			cell.connect(other)
			other.connect(cell)
		}
	}

	return &Network{Space: s}, nil
}

// AddEdge connects two existing nodes symmetrically. This is the one
// topology mutation the engine permits; it flushes the neighborhood cache so
// no stale radius result can survive the new edge. Adding an existing edge
// is a no-op.
func (n *Network) AddEdge(u, v int64) error {
	if u == v {
		return fmt.Errorf("%w: self edge on node %d", ErrInvalidArgument, u)
	}
	uc, ok := n.cells[NodeCoord(int(u))]
	if !ok {
		return fmt.Errorf("%w: unknown node %d", ErrInvalidArgument, u)
	}
	vc, ok := n.cells[NodeCoord(int(v))]
	if !ok {
		return fmt.Errorf("%w: unknown node %d", ErrInvalidArgument, v)
	}
	if uc.ConnectsTo(vc.coord) {
		return nil
	}
	uc.connect(vc)
	vc.connect(uc)
	n.invalidateNeighborhoods()
	return nil
}
