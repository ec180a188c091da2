package space

import (
	"fmt"

	"github.com/talgya/cellspace/internal/entropy"
)

// CellSet is an immutable, queryable grouping of cells: all cells of a space,
// a neighborhood, or a filter result. Membership is frozen at construction;
// occupant reads are live. Deriving a new set never mutates the receiver.
type CellSet struct {
	cells []*Cell
	index map[Coord]*Cell
	rng   *entropy.Source
}

func newCellSet(cells []*Cell, rng *entropy.Source) *CellSet {
	index := make(map[Coord]*Cell, len(cells))
	for _, c := range cells {
		index[c.coord] = c
	}
	return &CellSet{cells: cells, index: index, rng: rng}
}

// Len returns the number of member cells.
func (cs *CellSet) Len() int {
	return len(cs.cells)
}

// Cells returns the member cells in set order. The slice is a copy.
func (cs *CellSet) Cells() []*Cell {
	out := make([]*Cell, len(cs.cells))
	copy(out, cs.cells)
	return out
}

// Contains reports whether the coordinate belongs to the set.
func (cs *CellSet) Contains(coord Coord) bool {
	_, ok := cs.index[coord]
	return ok
}

// Coords returns the member coordinates in set order.
func (cs *CellSet) Coords() []Coord {
	out := make([]Coord, len(cs.cells))
	for i, c := range cs.cells {
		out[i] = c.coord
	}
	return out
}

// Agents flattens the occupant sets of the member cells, in set order then
// per-cell insertion order. This is a live, non-owning read: it reflects
// occupancy at call time even though membership is frozen.
func (cs *CellSet) Agents() []Agent {
	var out []Agent
	for _, c := range cs.cells {
		out = append(out, c.occupants...)
	}
	return out
}

// Limit bounds how many cells Select keeps. The zero value means no bound.
// The original design overloaded one parameter as either an absolute count
// or a fraction, distinguished by type; here the two meanings are explicit.
type Limit struct {
	kind     limitKind
	count    int
	fraction float64
}

type limitKind uint8

const (
	limitNone limitKind = iota
	limitCount
	limitFraction
)

// NoLimit keeps every matching cell.
var NoLimit = Limit{}

// AtMost keeps at most n matching cells.
func AtMost(n int) Limit {
	return Limit{kind: limitCount, count: n}
}

// Fraction keeps at most f (in (0, 1]) of the set's size, rounded down.
func Fraction(f float64) Limit {
	return Limit{kind: limitFraction, fraction: f}
}

func (l Limit) resolve(size int) (int, error) {
	switch l.kind {
	case limitNone:
		return size, nil
	case limitCount:
		if l.count < 0 {
			return 0, fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, l.count)
		}
		return l.count, nil
	case limitFraction:
		if l.fraction <= 0 || l.fraction > 1 {
			return 0, fmt.Errorf("%w: fraction %v outside (0, 1]", ErrInvalidArgument, l.fraction)
		}
		return int(float64(size) * l.fraction), nil
	default:
		return 0, fmt.Errorf("%w: unknown limit", ErrInvalidArgument)
	}
}

// Select returns a new set holding, in set order, the first cells satisfying
// pred, up to the given limit. A nil pred matches everything; a nil pred with
// NoLimit is the identity and returns the receiver unchanged.
func (cs *CellSet) Select(pred func(*Cell) bool, limit Limit) (*CellSet, error) {
	if pred == nil && limit.kind == limitNone {
		return cs, nil
	}
	keep, err := limit.resolve(len(cs.cells))
	if err != nil {
		return nil, err
	}
	kept := make([]*Cell, 0, keep)
	for _, c := range cs.cells {
		if len(kept) >= keep {
			break
		}
		if pred == nil || pred(c) {
			kept = append(kept, c)
		}
	}
	return newCellSet(kept, cs.rng), nil
}

// RandomCell draws one member cell uniformly.
func (cs *CellSet) RandomCell() (*Cell, error) {
	c, err := entropy.Pick(cs.rng, cs.cells)
	if err != nil {
		return nil, wrapDrawErr(err)
	}
	return c, nil
}

// RandomAgent draws one agent uniformly from the flattened occupant view.
func (cs *CellSet) RandomAgent() (Agent, error) {
	a, err := entropy.Pick(cs.rng, cs.Agents())
	if err != nil {
		return nil, wrapDrawErr(err)
	}
	return a, nil
}

// Sample draws exactly k member cells without replacement. A non-nil counts
// slice weights the population by repetition, one entry per member cell.
func (cs *CellSet) Sample(k int, counts []int) ([]*Cell, error) {
	out, err := entropy.Sample(cs.rng, cs.cells, k, counts)
	if err != nil {
		return nil, wrapDrawErr(err)
	}
	return out, nil
}

// Choices draws k member cells with replacement, optionally weighted. At most
// one of weights and cumWeights may be non-nil.
func (cs *CellSet) Choices(k int, weights, cumWeights []float64) ([]*Cell, error) {
	out, err := entropy.Choices(cs.rng, cs.cells, k, weights, cumWeights)
	if err != nil {
		return nil, wrapDrawErr(err)
	}
	return out, nil
}
