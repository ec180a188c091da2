package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
)

func ringGraph(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node((i + 1) % n)})
	}
	return g
}

func TestNetworkRoundTrip(t *testing.T) {
	g := simple.NewUndirectedGraph()
	edges := [][2]int64{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 0},
	}
	for _, e := range edges {
		g.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
	}
	g.AddNode(simple.Node(5)) // isolated

	net, err := NewNetwork(g, NetworkConfig{Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 6, net.Len())

	// Reading back every connection set must reproduce the input adjacency
	// exactly: no added edges, no dropped edges.
	want := make(map[int]map[Coord]bool)
	for i := 0; i < 6; i++ {
		want[i] = make(map[Coord]bool)
	}
	for _, e := range edges {
		want[int(e[0])][NodeCoord(int(e[1]))] = true
		want[int(e[1])][NodeCoord(int(e[0]))] = true
	}
	for i := 0; i < 6; i++ {
		cell, ok := net.Cell(NodeCoord(i))
		require.True(t, ok, "node %d", i)
		assert.Equal(t, want[i], coordSet(cell.Connections()), "node %d", i)
	}
}

func TestNetworkNilGraph(t *testing.T) {
	_, err := NewNetwork(nil, NetworkConfig{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNetworkPerNodeCapacity(t *testing.T) {
	net, err := NewNetwork(ringGraph(4), NetworkConfig{
		Capacity:   2,
		Capacities: map[int64]int{2: 1},
		Seed:       1,
	})
	require.NoError(t, err)

	def, _ := net.Cell(NodeCoord(0))
	assert.Equal(t, 2, def.Capacity())

	override, _ := net.Cell(NodeCoord(2))
	assert.Equal(t, 1, override.Capacity())
}

func TestNetworkAddEdge(t *testing.T) {
	net, err := NewNetwork(ringGraph(6), NetworkConfig{Seed: 1})
	require.NoError(t, err)

	origin, _ := net.Cell(NodeCoord(0))
	before, err := origin.Neighborhood(1)
	require.NoError(t, err)
	require.Equal(t, 2, before.Len())

	require.NoError(t, net.AddEdge(0, 3))

	a, _ := net.Cell(NodeCoord(0))
	b, _ := net.Cell(NodeCoord(3))
	assert.True(t, a.ConnectsTo(NodeCoord(3)))
	assert.True(t, b.ConnectsTo(NodeCoord(0)))

	// The cached radius-1 result must not survive the new edge.
	after, err := origin.Neighborhood(1)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Len())
	assert.NotSame(t, before, after)

	// Re-adding is a no-op.
	require.NoError(t, net.AddEdge(3, 0))
	assert.Equal(t, 3, a.Degree())
}

func TestNetworkAddEdgeErrors(t *testing.T) {
	net, err := NewNetwork(ringGraph(3), NetworkConfig{Seed: 1})
	require.NoError(t, err)

	require.ErrorIs(t, net.AddEdge(0, 0), ErrInvalidArgument)
	require.ErrorIs(t, net.AddEdge(0, 99), ErrInvalidArgument)
	require.ErrorIs(t, net.AddEdge(99, 0), ErrInvalidArgument)
}
