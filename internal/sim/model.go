// Package sim provides the minimal model scaffolding the demo models need:
// a seeded model-level random source, an agent registry with stable ids, and
// activation orders for one step. The stepping loop itself belongs to the
// caller; the engine only guarantees that, given the same seed and the same
// activation sequence, every step reproduces identically.
package sim

import (
	"github.com/talgya/cellspace/internal/entropy"
)

// Steppable is one activatable agent.
type Steppable interface {
	Step()
}

// Model owns the run-wide random source and the agent registry. Agents are
// held in insertion order; activation orders derive from that order, so a
// run is deterministic for a fixed seed.
type Model struct {
	rng    *entropy.Source
	agents []Steppable
	nextID int64
	steps  int
}

// NewModel creates a model seeded with the given value (0 derives a seed
// from the wall clock).
func NewModel(seed int64) *Model {
	return &Model{rng: entropy.NewSource(seed)}
}

// Random returns the model's seeded source. Pass it to space constructors
// via the config's Rand field to share one draw sequence across the run.
func (m *Model) Random() *entropy.Source {
	return m.rng
}

// NextID returns a fresh agent id, starting at 1.
func (m *Model) NextID() int64 {
	m.nextID++
	return m.nextID
}

// Add registers an agent for activation.
func (m *Model) Add(a Steppable) {
	m.agents = append(m.agents, a)
}

// Remove unregisters an agent (death events). Insertion order of the
// remaining agents is preserved.
func (m *Model) Remove(a Steppable) {
	for i, reg := range m.agents {
		if reg == a {
			m.agents = append(m.agents[:i], m.agents[i+1:]...)
			return
		}
	}
}

// AgentCount returns the number of registered agents.
func (m *Model) AgentCount() int {
	return len(m.agents)
}

// Steps returns the number of completed steps.
func (m *Model) Steps() int {
	return m.steps
}

// StepRandom activates every agent once in a fresh random order. Each
// activation runs to completion before the next begins.
func (m *Model) StepRandom() {
	order := make([]Steppable, len(m.agents))
	copy(order, m.agents)
	m.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, a := range order {
		a.Step()
	}
	m.steps++
}

// StepOrdered activates every agent once in insertion order.
func (m *Model) StepOrdered() {
	order := make([]Steppable, len(m.agents))
	copy(order, m.agents)
	for _, a := range order {
		a.Step()
	}
	m.steps++
}
