package space

import "fmt"

// nbKey identifies one memoized neighborhood result.
type nbKey struct {
	coord  Coord
	radius int
}

// neighborhood runs a breadth-first expansion over connections, one frontier
// layer per unit of radius, and returns every visited cell except the origin.
// Distance is graph-theoretic (adjacency hops), so Moore, von Neumann and hex
// radii cover different cell counts on the same geometric grid.
//
// Results are memoized per (coordinate, radius): adjacency never changes
// after construction, except for network edge addition, which flushes the
// cache (see Network.AddEdge).
func (s *Space) neighborhood(origin *Cell, radius int) (*CellSet, error) {
	if radius < 1 {
		return nil, fmt.Errorf("%w: neighborhood radius %d, need >= 1", ErrInvalidArgument, radius)
	}

	key := nbKey{coord: origin.coord, radius: radius}
	if cached, ok := s.nbCache[key]; ok {
		return cached, nil
	}

	visited := map[Coord]bool{origin.coord: true}
	var result []*Cell
	frontier := origin.connections

	for depth := 0; depth < radius && len(frontier) > 0; depth++ {
		var next []*Cell
		for _, c := range frontier {
			if visited[c.coord] {
				continue
			}
			visited[c.coord] = true
			result = append(result, c)
			next = append(next, c.connections...)
		}
		frontier = next
	}

	set := newCellSet(result, s.rng)
	s.nbCache[key] = set
	return set, nil
}

// invalidateNeighborhoods drops every memoized neighborhood. Called on
// topology mutation; a flush is a safe superset of the entries touching the
// mutated cells, and mutation only happens during network setup.
func (s *Space) invalidateNeighborhoods() {
	s.nbCache = make(map[nbKey]*CellSet)
}
