package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorFrames(t *testing.T) {
	c := NewCollector(nil)

	population := 10
	c.Track("population", func() float64 { return float64(population) })
	c.Track("double", func() float64 { return float64(2 * population) })

	require.NoError(t, c.Collect(1))
	population = 7
	require.NoError(t, c.Collect(2))

	frames := c.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, Frame{Step: 1, Values: map[string]float64{"population": 10, "double": 20}}, frames[0])
	assert.Equal(t, Frame{Step: 2, Values: map[string]float64{"population": 7, "double": 14}}, frames[1])

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Step)

	assert.Equal(t, []float64{10, 7}, c.Series("population"))
}

func TestCollectorEmpty(t *testing.T) {
	c := NewCollector(nil)
	_, ok := c.Last()
	assert.False(t, ok)
	assert.Empty(t, c.Frames())
}

func TestCollectorRetrack(t *testing.T) {
	c := NewCollector(nil)
	c.Track("x", func() float64 { return 1 })
	c.Track("x", func() float64 { return 2 })

	require.NoError(t, c.Collect(1))
	assert.Equal(t, []float64{2}, c.Series("x"))
}

func TestCollectorWithSink(t *testing.T) {
	sink, err := OpenSink(":memory:", 42)
	require.NoError(t, err)
	defer sink.Close()
	require.NotEmpty(t, sink.RunID())

	c := NewCollector(sink)
	step := 0
	c.Track("step_squared", func() float64 { return float64(step * step) })

	for step = 1; step <= 4; step++ {
		require.NoError(t, c.Collect(step))
	}

	got, err := sink.ReadSeries("step_squared")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 9, 16}, got)
}
