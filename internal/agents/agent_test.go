package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/cellspace/internal/space"
)

// walker is a minimal model agent embedding the base.
type walker struct {
	Base
	kind int
}

func newWalker(t *testing.T, id int64, sp *space.Space, kind int) *walker {
	t.Helper()
	w := &walker{kind: kind}
	w.Init(w, id, sp)
	return w
}

func TestBasePlacementAndMove(t *testing.T) {
	grid, err := space.NewOrthogonalVonNeumannGrid(4, 4, space.GridConfig{Seed: 1})
	require.NoError(t, err)

	w := newWalker(t, 1, grid.Space, 0)
	assert.Nil(t, w.Cell(), "no cell before placement")

	start, _ := grid.Cell(space.Coord{0, 0})
	require.NoError(t, w.MoveTo(start))
	require.NotNil(t, w.Cell())
	assert.Equal(t, space.Coord{0, 0}, w.Cell().Coordinate())

	// The space stores the outer agent, so neighbors can be asserted back.
	occupants := start.Agents()
	require.Len(t, occupants, 1)
	got, ok := occupants[0].(*walker)
	require.True(t, ok)
	assert.Equal(t, w.kind, got.kind)
}

func TestBaseRandomMove(t *testing.T) {
	grid, err := space.NewOrthogonalMooreGrid(5, 5, space.GridConfig{Torus: true, Seed: 7})
	require.NoError(t, err)

	w := newWalker(t, 1, grid.Space, 0)
	center, _ := grid.Cell(space.Coord{2, 2})
	require.NoError(t, w.MoveTo(center))

	require.NoError(t, w.RandomMove(1))
	assert.True(t, center.ConnectsTo(w.Cell().Coordinate()),
		"radius-1 move lands on a connection of the origin")

	unplaced := newWalker(t, 2, grid.Space, 0)
	require.ErrorIs(t, unplaced.RandomMove(1), space.ErrNotPresent)
}

func TestBaseMoveToRandomEmpty(t *testing.T) {
	grid, err := space.NewOrthogonalVonNeumannGrid(3, 1, space.GridConfig{Capacity: 1, Seed: 3})
	require.NoError(t, err)

	a := newWalker(t, 1, grid.Space, 0)
	b := newWalker(t, 2, grid.Space, 1)
	left, _ := grid.Cell(space.Coord{0, 0})
	mid, _ := grid.Cell(space.Coord{0, 1})
	require.NoError(t, a.MoveTo(left))
	require.NoError(t, b.MoveTo(mid))

	require.NoError(t, a.MoveToRandomEmpty())
	assert.Equal(t, space.Coord{0, 2}, a.Cell().Coordinate())
	assert.True(t, left.Empty())

	// Grid now has a single empty cell (the vacated one); a full grid fails.
	c := newWalker(t, 3, grid.Space, 0)
	require.NoError(t, c.MoveToRandomEmpty())
	require.ErrorIs(t, b.MoveToRandomEmpty(), space.ErrEmptyCollection)
}

func TestBaseRemove(t *testing.T) {
	grid, err := space.NewOrthogonalVonNeumannGrid(2, 2, space.GridConfig{Seed: 1})
	require.NoError(t, err)

	w := newWalker(t, 1, grid.Space, 0)
	cell, _ := grid.Cell(space.Coord{1, 1})
	require.NoError(t, w.MoveTo(cell))

	require.NoError(t, w.Remove())
	assert.Nil(t, w.Cell())
	assert.True(t, cell.Empty())
	require.ErrorIs(t, w.Remove(), space.ErrNotPresent)

	// Removed agents can be placed again.
	require.NoError(t, w.MoveTo(cell))
	assert.Equal(t, space.Coord{1, 1}, w.Cell().Coordinate())
}
