package space

// Hex offset tables for offset coordinates, flat orientation. The lattice
// tiles correctly only when even and odd rows shift in opposite directions,
// hence the two tables keyed on row parity. Interior cells have 6 neighbors.
var (
	hexEvenRowOffsets = [][2]int{
		{-1, -1}, {-1, 0},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0},
	}
	hexOddRowOffsets = [][2]int{
		{-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, 0}, {1, 1},
	}
)

// HexGrid is a width×height hexagonal cell space in offset coordinates.
type HexGrid struct {
	*Space
	Width  int
	Height int
	Torus  bool
}

// NewHexGrid builds a hexagonal grid. Without torus, edge cells have fewer
// than 6 neighbors; the (0,0) corner has exactly 2. With torus, every cell
// has exactly 6.
func NewHexGrid(width, height int, cfg GridConfig) (*HexGrid, error) {
	s, err := buildGridSpace(width, height, cfg, func(row int) [][2]int {
		if row%2 == 0 {
			return hexEvenRowOffsets
		}
		return hexOddRowOffsets
	})
	if err != nil {
		return nil, err
	}
	return &HexGrid{Space: s, Width: width, Height: height, Torus: cfg.Torus}, nil
}
