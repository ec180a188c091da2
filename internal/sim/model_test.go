package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	id  int64
	log *[]int64
}

func (r *recorder) Step() {
	*r.log = append(*r.log, r.id)
}

func buildModel(seed int64, n int) (*Model, *[]int64) {
	m := NewModel(seed)
	log := &[]int64{}
	for i := 0; i < n; i++ {
		m.Add(&recorder{id: m.NextID(), log: log})
	}
	return m, log
}

func TestNextID(t *testing.T) {
	m := NewModel(1)
	assert.Equal(t, int64(1), m.NextID())
	assert.Equal(t, int64(2), m.NextID())
}

func TestStepOrdered(t *testing.T) {
	m, log := buildModel(1, 4)
	m.StepOrdered()
	assert.Equal(t, []int64{1, 2, 3, 4}, *log)
	assert.Equal(t, 1, m.Steps())
}

func TestStepRandomShuffles(t *testing.T) {
	m, log := buildModel(42, 50)
	m.StepRandom()

	require.Len(t, *log, 50, "every agent activates exactly once")
	seen := make(map[int64]bool)
	for _, id := range *log {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.NotEqual(t, orderedIDs(50), *log, "50 agents practically never shuffle to identity")
}

func TestStepRandomDeterministic(t *testing.T) {
	a, logA := buildModel(7, 20)
	b, logB := buildModel(7, 20)
	for i := 0; i < 5; i++ {
		a.StepRandom()
		b.StepRandom()
	}
	assert.Equal(t, *logA, *logB)
}

func TestRemove(t *testing.T) {
	m := NewModel(1)
	log := &[]int64{}
	agents := make([]*recorder, 3)
	for i := range agents {
		agents[i] = &recorder{id: m.NextID(), log: log}
		m.Add(agents[i])
	}

	m.Remove(agents[1])
	assert.Equal(t, 2, m.AgentCount())
	m.StepOrdered()
	assert.Equal(t, []int64{1, 3}, *log)

	m.Remove(agents[1]) // removing twice is a no-op
	assert.Equal(t, 2, m.AgentCount())
}

func orderedIDs(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}
