// Package agents provides the cell-occupying behavior that model agents
// embed. The base records identity and the owning space; the current cell is
// an index lookup in the space, never an owning reference.
package agents

import (
	"fmt"

	"github.com/talgya/cellspace/internal/space"
)

// Base is embedded by model agents to give them cell occupancy. Init must be
// called with the outer agent before any movement, so the space stores the
// outer value and neighbors can be asserted back to their model type:
//
//	type Wolf struct {
//		agents.Base
//		Energy int
//	}
//
//	w := &Wolf{Energy: 10}
//	w.Init(w, model.NextID(), grid.Space)
type Base struct {
	self space.Agent
	id   int64
	sp   *space.Space
}

// Init binds the base to the outer agent and its space.
func (b *Base) Init(self space.Agent, id int64, sp *space.Space) {
	b.self = self
	b.id = id
	b.sp = sp
}

// AgentID returns the agent's unique identity.
func (b *Base) AgentID() int64 {
	return b.id
}

// Space returns the space this agent lives in.
func (b *Base) Space() *space.Space {
	return b.sp
}

// Cell returns the cell the agent currently occupies, or nil before
// placement and after removal.
func (b *Base) Cell() *space.Cell {
	c, ok := b.sp.Locate(b.self)
	if !ok {
		return nil
	}
	return c
}

// MoveTo relocates the agent, placing it if it has no cell yet. A failed
// move (full destination) leaves the agent exactly where it was.
func (b *Base) MoveTo(dst *space.Cell) error {
	return b.sp.MoveTo(b.self, dst)
}

// MoveToRandomEmpty relocates the agent to a uniformly chosen empty cell.
func (b *Base) MoveToRandomEmpty() error {
	dst, err := b.sp.RandomEmptyCell()
	if err != nil {
		return err
	}
	return b.sp.MoveTo(b.self, dst)
}

// RandomMove steps the agent to a uniformly chosen cell within the given
// radius of its current cell.
func (b *Base) RandomMove(radius int) error {
	cur := b.Cell()
	if cur == nil {
		return fmt.Errorf("%w: agent %d has no cell", space.ErrNotPresent, b.id)
	}
	hood, err := cur.Neighborhood(radius)
	if err != nil {
		return err
	}
	dst, err := hood.RandomCell()
	if err != nil {
		return err
	}
	return b.sp.MoveTo(b.self, dst)
}

// Remove takes the agent out of the space (death events). It can be placed
// again later with MoveTo.
func (b *Base) Remove() error {
	return b.sp.RemoveAgent(b.self)
}
