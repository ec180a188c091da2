// Package space implements the discrete cell-space engine: cells and their
// adjacency across orthogonal, hex, network and Voronoi topologies,
// capacity-bounded occupancy with an incrementally maintained empties index,
// multi-radius neighborhood resolution, and seeded selection primitives.
//
// A space is built once; construction computes the full adjacency. After
// that, agents query and move every step through Cell, CellSet and Space
// methods. Everything stochastic flows through the single seeded source
// owned by the space, so a fixed seed and a fixed call sequence reproduce
// identical results bit for bit.
package space

import (
	"fmt"

	"github.com/talgya/cellspace/internal/entropy"
)

// Space owns the full coordinate-to-cell mapping of one topology instance,
// the empties index, the neighborhood cache, and the seeded random source.
// It is not safe for concurrent use; stepping is single-threaded.
type Space struct {
	cells     map[Coord]*Cell
	order     []Coord // construction order, the deterministic iteration order
	empties   *coordIndex
	locations map[Agent]*Cell
	rng       *entropy.Source

	nbCache map[nbKey]*CellSet
	all     *CellSet // lazy all-cells view
}

func newSpace(rng *entropy.Source, hint int) *Space {
	return &Space{
		cells:     make(map[Coord]*Cell, hint),
		order:     make([]Coord, 0, hint),
		empties:   newCoordIndex(hint),
		locations: make(map[Agent]*Cell),
		rng:       rng,
		nbCache:   make(map[nbKey]*CellSet),
	}
}

// addCell creates and registers a cell. Builders call it exactly once per
// coordinate during construction; a new cell starts empty.
func (s *Space) addCell(coord Coord, capacity int) *Cell {
	c := newCell(s, coord, capacity)
	s.cells[coord] = c
	s.order = append(s.order, coord)
	s.empties.add(coord)
	return c
}

// Cell returns the cell at the given coordinate.
func (s *Space) Cell(coord Coord) (*Cell, bool) {
	c, ok := s.cells[coord]
	return c, ok
}

// Len returns the number of cells in the space.
func (s *Space) Len() int {
	return len(s.cells)
}

// Coords returns all coordinates in construction order.
func (s *Space) Coords() []Coord {
	out := make([]Coord, len(s.order))
	copy(out, s.order)
	return out
}

// Cells returns the immutable all-cells view, built lazily on first access.
func (s *Space) Cells() *CellSet {
	if s.all == nil {
		members := make([]*Cell, len(s.order))
		for i, coord := range s.order {
			members[i] = s.cells[coord]
		}
		s.all = newCellSet(members, s.rng)
	}
	return s.all
}

// Random returns the seeded source owned by this space. Collaborators that
// need reproducible draws outside the built-in primitives share it.
func (s *Space) Random() *entropy.Source {
	return s.rng
}

// Empties returns the coordinates of all currently empty cells. The index is
// maintained incrementally on every occupancy change, never recomputed.
func (s *Space) Empties() []Coord {
	return s.empties.snapshot()
}

// EmptyCount returns the number of currently empty cells.
func (s *Space) EmptyCount() int {
	return s.empties.len()
}

// RandomEmptyCell draws uniformly from the empties index.
func (s *Space) RandomEmptyCell() (*Cell, error) {
	if s.empties.len() == 0 {
		return nil, fmt.Errorf("%w: no empty cells", ErrEmptyCollection)
	}
	coord := s.empties.items[s.rng.Intn(s.empties.len())]
	return s.cells[coord], nil
}

// Locate returns the cell the agent currently occupies, if any.
func (s *Space) Locate(a Agent) (*Cell, bool) {
	c, ok := s.locations[a]
	return c, ok
}

// MoveTo relocates an agent to the destination cell, placing it if it is not
// yet in the space. The move is atomic: the destination's capacity is checked
// before either cell is touched, so a failed move leaves the agent exactly
// where it was. Moving to the current cell is a no-op.
func (s *Space) MoveTo(a Agent, dst *Cell) error {
	if a == nil {
		return fmt.Errorf("%w: nil agent", ErrInvalidArgument)
	}
	if dst == nil || dst.space != s {
		return fmt.Errorf("%w: destination not in this space", ErrInvalidArgument)
	}
	cur, ok := s.locations[a]
	if !ok {
		return dst.AddAgent(a)
	}
	if cur == dst {
		return nil
	}
	if dst.Full() {
		return fmt.Errorf("%w: cell %s holds %d", ErrCapacityExceeded, dst.coord, dst.capacity)
	}
	if err := cur.RemoveAgent(a); err != nil {
		return err
	}
	return dst.AddAgent(a)
}

// RemoveAgent takes the agent out of the space entirely (death events).
func (s *Space) RemoveAgent(a Agent) error {
	cur, ok := s.locations[a]
	if !ok {
		id := int64(-1)
		if a != nil {
			id = a.AgentID()
		}
		return fmt.Errorf("%w: agent %d not in space", ErrNotPresent, id)
	}
	return cur.RemoveAgent(a)
}

// AgentCount returns the number of agents currently placed in the space.
func (s *Space) AgentCount() int {
	return len(s.locations)
}

// normalizeCapacity maps the config convention (0 means no limit) onto the
// internal representation and rejects negatives.
func normalizeCapacity(capacity int) (int, error) {
	switch {
	case capacity < 0:
		return 0, fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity)
	case capacity == 0:
		return Unbounded, nil
	default:
		return capacity, nil
	}
}

// sourceFor resolves the shared-or-seeded source convention used by every
// topology config: an explicit source wins, otherwise one is built from the
// seed (seed 0 derives from the clock).
func sourceFor(rand *entropy.Source, seed int64) *entropy.Source {
	if rand != nil {
		return rand
	}
	return entropy.NewSource(seed)
}
