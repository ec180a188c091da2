package space

import (
	"fmt"

	"github.com/talgya/cellspace/internal/entropy"
)

// GridConfig holds the shared knobs for grid-shaped topologies.
type GridConfig struct {
	// Torus wraps edges onto the opposite side, so every cell has the full
	// neighbor count.
	Torus bool
	// Capacity bounds occupants per cell; 0 means no bound.
	Capacity int
	// Seed feeds the space's random source when Rand is nil; 0 derives a
	// seed from the wall clock.
	Seed int64
	// Rand, when set, is used instead of building a source from Seed. Pass
	// the model's source to share one draw sequence across the whole run.
	Rand *entropy.Source
}

// DefaultGridConfig returns a bounded single-occupancy torus configuration.
func DefaultGridConfig() GridConfig {
	return GridConfig{Torus: true, Capacity: 1}
}

// Neighbor offset tables, row-major {dRow, dCol}. Precomputed once; all
// adjacency construction walks these, never recomputes geometry per query.
var (
	vonNeumannOffsets = [][2]int{
		{-1, 0},
		{0, -1}, {0, 1},
		{1, 0},
	}
	mooreOffsets = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)

// Grid is an orthogonal width×height cell space with either von Neumann
// (4-connected) or Moore (8-connected) adjacency.
type Grid struct {
	*Space
	Width  int
	Height int
	Moore  bool
	Torus  bool
}

// NewOrthogonalVonNeumannGrid builds a grid where each cell connects to its
// 4 axis-aligned neighbors. Without torus, edge cells simply have fewer
// neighbors (2 at a corner, 3 on an edge).
func NewOrthogonalVonNeumannGrid(width, height int, cfg GridConfig) (*Grid, error) {
	return newOrthogonalGrid(width, height, false, cfg)
}

// NewOrthogonalMooreGrid builds a grid where each cell connects to all 8
// surrounding neighbors, diagonals included.
func NewOrthogonalMooreGrid(width, height int, cfg GridConfig) (*Grid, error) {
	return newOrthogonalGrid(width, height, true, cfg)
}

func newOrthogonalGrid(width, height int, moore bool, cfg GridConfig) (*Grid, error) {
	offsets := vonNeumannOffsets
	if moore {
		offsets = mooreOffsets
	}
	s, err := buildGridSpace(width, height, cfg, func(row int) [][2]int {
		return offsets
	})
	if err != nil {
		return nil, err
	}
	return &Grid{Space: s, Width: width, Height: height, Moore: moore, Torus: cfg.Torus}, nil
}

// buildGridSpace creates width×height cells in row-major order and wires
// adjacency from a per-row offset table (constant for orthogonal grids,
// parity-dependent for hex). Connectivity is computed exactly once here.
func buildGridSpace(width, height int, cfg GridConfig, offsetsFor func(row int) [][2]int) (*Space, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	capacity, err := normalizeCapacity(cfg.Capacity)
	if err != nil {
		return nil, err
	}

	s := newSpace(sourceFor(cfg.Rand, cfg.Seed), width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			s.addCell(Coord{row, col}, capacity)
		}
	}

	for _, coord := range s.order {
		cell := s.cells[coord]
		row, col := coord[0], coord[1]
		for _, d := range offsetsFor(row) {
			nr, nc := row+d[0], col+d[1]
			if cfg.Torus {
				nr = ((nr % height) + height) % height
				nc = ((nc % width) + width) % width
			} else if nr < 0 || nr >= height || nc < 0 || nc >= width {
				continue
			}
			cell.connect(s.cells[Coord{nr, nc}])
		}
	}
	ensureSymmetric(s)

	return s, nil
}

// ensureSymmetric adds any missing reverse edges. Offset tables are
// symmetric for orthogonal grids, but hex parity combined with odd-height
// tori can produce one-way entries; the undirected invariant wins.
func ensureSymmetric(s *Space) {
	for _, coord := range s.order {
		cell := s.cells[coord]
		for _, conn := range cell.connections {
			conn.connect(cell)
		}
	}
}
