package space

import (
	"fmt"
	"math"
)

// Unbounded is the capacity of a cell with no occupancy limit.
const Unbounded = math.MaxInt

// Agent is implemented by anything that can occupy a cell. Implementations
// must be comparable (in practice: pointers), because the space tracks each
// agent's current cell by identity.
type Agent interface {
	AgentID() int64
}

// Cell is the atomic spatial unit. It owns its occupant set and its
// connections to adjacent cells. Connections are built once, at space
// construction; only the network topology may add edges afterwards.
type Cell struct {
	coord    Coord
	capacity int
	space    *Space

	connections []*Cell         // adjacency in deterministic build order
	connIndex   map[Coord]*Cell // lookup mirror of connections
	occupants   []Agent         // insertion order

	// Properties is an open bag of auxiliary values (Voronoi polygons,
	// scalar layer values). The engine never reads it.
	Properties map[string]any
}

func newCell(s *Space, coord Coord, capacity int) *Cell {
	return &Cell{
		coord:      coord,
		capacity:   capacity,
		space:      s,
		connIndex:  make(map[Coord]*Cell),
		Properties: make(map[string]any),
	}
}

// Coordinate returns the cell's immutable identity within its space.
func (c *Cell) Coordinate() Coord {
	return c.coord
}

// Capacity returns the maximum number of simultaneous occupants.
func (c *Cell) Capacity() int {
	return c.capacity
}

// Connections returns the adjacent cells in deterministic order.
// The returned slice is a copy; mutating it does not affect the topology.
func (c *Cell) Connections() []*Cell {
	out := make([]*Cell, len(c.connections))
	copy(out, c.connections)
	return out
}

// ConnectsTo reports whether the cell is adjacent to the given coordinate.
func (c *Cell) ConnectsTo(other Coord) bool {
	_, ok := c.connIndex[other]
	return ok
}

// Degree returns the number of adjacent cells.
func (c *Cell) Degree() int {
	return len(c.connections)
}

// Agents returns the current occupants in insertion order. The slice is a
// copy; occupancy changes only through AddAgent, RemoveAgent and MoveTo.
func (c *Cell) Agents() []Agent {
	out := make([]Agent, len(c.occupants))
	copy(out, c.occupants)
	return out
}

// Count returns the number of current occupants.
func (c *Cell) Count() int {
	return len(c.occupants)
}

// Empty reports whether the cell has no occupants.
func (c *Cell) Empty() bool {
	return len(c.occupants) == 0
}

// Full reports whether the cell is at capacity.
func (c *Cell) Full() bool {
	return len(c.occupants) == c.capacity
}

// AddAgent places an agent into the cell. The agent must not already occupy
// a cell in this space; relocation goes through Space.MoveTo so that a failed
// move can never leave the agent orphaned.
func (c *Cell) AddAgent(a Agent) error {
	if a == nil {
		return fmt.Errorf("%w: nil agent", ErrInvalidArgument)
	}
	if cur, ok := c.space.locations[a]; ok {
		return fmt.Errorf("%w: agent %d already occupies %s", ErrInvalidArgument, a.AgentID(), cur.coord)
	}
	if c.Full() {
		return fmt.Errorf("%w: cell %s holds %d", ErrCapacityExceeded, c.coord, c.capacity)
	}
	c.occupants = append(c.occupants, a)
	c.space.locations[a] = c
	if len(c.occupants) == 1 {
		c.space.empties.remove(c.coord)
	}
	return nil
}

// RemoveAgent takes an agent out of the cell. The cell is returned to the
// space's empties index when its last occupant leaves.
func (c *Cell) RemoveAgent(a Agent) error {
	i := c.indexOf(a)
	if i < 0 {
		id := int64(-1)
		if a != nil {
			id = a.AgentID()
		}
		return fmt.Errorf("%w: agent %d not in cell %s", ErrNotPresent, id, c.coord)
	}
	c.occupants = append(c.occupants[:i], c.occupants[i+1:]...)
	delete(c.space.locations, a)
	if len(c.occupants) == 0 {
		c.space.empties.add(c.coord)
	}
	return nil
}

func (c *Cell) indexOf(a Agent) int {
	if a == nil {
		return -1
	}
	for i, occ := range c.occupants {
		if occ == a {
			return i
		}
	}
	return -1
}

// Neighborhood returns all cells within the given graph distance of this
// cell, excluding the cell itself. Radius must be at least 1; radius 1 is
// exactly the cell's connections.
func (c *Cell) Neighborhood(radius int) (*CellSet, error) {
	return c.space.neighborhood(c, radius)
}

// String renders a short summary for logs.
func (c *Cell) String() string {
	return fmt.Sprintf("Cell%s[occupants=%d degree=%d]", c.coord, len(c.occupants), len(c.connections))
}

// connect records a one-way adjacency entry; builders call it for both
// directions (or rely on symmetric offset tables). Idempotent.
func (c *Cell) connect(other *Cell) {
	if other == nil || other == c {
		return
	}
	if _, ok := c.connIndex[other.coord]; ok {
		return
	}
	c.connections = append(c.connections, other)
	c.connIndex[other.coord] = other
}
