package space

import "fmt"

// Coord identifies a cell within a space. Grid topologies use {row, col};
// network and Voronoi topologies key cells by integer node id via NodeCoord.
// A Coord is never reused and never changes after the cell is created.
type Coord [2]int

// NodeCoord returns the coordinate for a node-addressed cell (network and
// Voronoi topologies), where only the node id carries meaning.
func NodeCoord(id int) Coord {
	return Coord{id, 0}
}

// Node returns the node id of a node-addressed coordinate.
func (c Coord) Node() int {
	return c[0]
}

// String renders the coordinate as "(row, col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c[0], c[1])
}

// coordIndex is a set of coordinates with O(1) add, remove, membership and
// uniform random selection. It backs the space-wide empties index, where
// selection by rejection sampling over all cells would be too slow on mostly
// full spaces. Iteration order is the (deterministic) mutation order, with
// removal swapping the last element into the vacated slot.
type coordIndex struct {
	pos   map[Coord]int
	items []Coord
}

func newCoordIndex(capacity int) *coordIndex {
	return &coordIndex{
		pos:   make(map[Coord]int, capacity),
		items: make([]Coord, 0, capacity),
	}
}

func (ci *coordIndex) len() int {
	return len(ci.items)
}

func (ci *coordIndex) contains(c Coord) bool {
	_, ok := ci.pos[c]
	return ok
}

func (ci *coordIndex) add(c Coord) {
	if _, ok := ci.pos[c]; ok {
		return
	}
	ci.pos[c] = len(ci.items)
	ci.items = append(ci.items, c)
}

func (ci *coordIndex) remove(c Coord) {
	i, ok := ci.pos[c]
	if !ok {
		return
	}
	last := len(ci.items) - 1
	moved := ci.items[last]
	ci.items[i] = moved
	ci.pos[moved] = i
	ci.items = ci.items[:last]
	delete(ci.pos, c)
}

// snapshot returns a copy of the current membership in index order.
func (ci *coordIndex) snapshot() []Coord {
	out := make([]Coord, len(ci.items))
	copy(out, ci.items)
	return out
}
