package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weighted builds a WeightFunc over a static weight table.
func weighted(w map[[2]int]int) WeightFunc {
	return func(s, t int) int {
		weight, ok := w[[2]int{s, t}]
		if !ok {
			return math.MaxInt
		}
		return weight
	}
}

func line(weights map[[2]int]int) *Graph[int] {
	g := New[int]()
	for edge := range weights {
		g.AddEdge(edge[0], edge[1], 0)
	}
	return g
}

func TestShortestPath_SimpleChain(t *testing.T) {
	// GIVEN a chain 1 -> 2 -> 3
	w := map[[2]int]int{{1, 2}: 4, {2, 3}: 6}
	g := line(w)

	// WHEN searching from 1 to 3
	p := g.ShortestPath(1, []int{3}, weighted(w), nil)

	// THEN the full chain is found
	require.True(t, p.Exists())
	assert.Equal(t, []int{1, 2, 3}, p.Vertices)
	assert.Equal(t, 10, p.Length)
}

func TestShortestPath_EqualLengthPrefersSmallerVertexSequence(t *testing.T) {
	// GIVEN a diamond with two equal-length paths 1-2-4 and 1-3-4
	w := map[[2]int]int{{1, 2}: 5, {1, 3}: 5, {2, 4}: 5, {3, 4}: 5}
	g := line(w)

	// WHEN searching from 1 to 4
	p := g.ShortestPath(1, []int{4}, weighted(w), nil)

	// THEN the lexicographically smaller sequence wins
	require.True(t, p.Exists())
	assert.Equal(t, []int{1, 2, 4}, p.Vertices)
	assert.Equal(t, 10, p.Length)
}

func TestShortestPath_MultiTarget_ClosestWins(t *testing.T) {
	// GIVEN targets at distance 3 and 7
	w := map[[2]int]int{{1, 2}: 3, {1, 3}: 7}
	g := line(w)

	// WHEN searching towards both
	p := g.ShortestPath(1, []int{2, 3}, weighted(w), nil)

	// THEN the closer target is chosen
	assert.Equal(t, []int{1, 2}, p.Vertices)
	assert.Equal(t, 3, p.Length)
}

func TestShortestPath_MultiTarget_TieBrokenBySmallerTarget(t *testing.T) {
	// GIVEN two targets at the same distance
	w := map[[2]int]int{{1, 5}: 4, {1, 3}: 4}
	g := line(w)

	// WHEN searching towards both
	p := g.ShortestPath(1, []int{5, 3}, weighted(w), nil)

	// THEN the smaller vertex sequence (hence smaller target id) wins
	assert.Equal(t, []int{1, 3}, p.Vertices)
}

func TestShortestPath_FilterBlocksEdge(t *testing.T) {
	// GIVEN a short direct edge and a longer detour
	w := map[[2]int]int{{1, 3}: 2, {1, 2}: 5, {2, 3}: 5}
	g := New[int]()
	g.AddEdge(1, 3, 99)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)

	// WHEN the direct edge is rejected by the filter
	p := g.ShortestPath(1, []int{3}, weighted(w), func(_ int, edge int) bool {
		return edge != 99
	})

	// THEN the detour is taken
	assert.Equal(t, []int{1, 2, 3}, p.Vertices)
	assert.Equal(t, 10, p.Length)
}

func TestShortestPath_Unreachable(t *testing.T) {
	// GIVEN two disconnected components
	w := map[[2]int]int{{1, 2}: 1, {3, 4}: 1}
	g := line(w)

	// WHEN searching across the gap
	p := g.ShortestPath(1, []int{4}, weighted(w), nil)

	// THEN no path is reported
	assert.False(t, p.Exists())
	assert.Equal(t, math.MaxInt, p.Length)
}

func TestShortestPath_UnknownSource(t *testing.T) {
	g := line(map[[2]int]int{{1, 2}: 1})
	p := g.ShortestPath(42, []int{2}, weighted(nil), nil)
	assert.False(t, p.Exists())
}

func TestShortestPath_SourceIsTarget(t *testing.T) {
	// GIVEN the source is itself a target
	w := map[[2]int]int{{1, 2}: 1}
	g := line(w)

	// WHEN searching
	p := g.ShortestPath(1, []int{1, 2}, weighted(w), nil)

	// THEN the trivial path is returned
	assert.Equal(t, []int{1}, p.Vertices)
	assert.Equal(t, 0, p.Length)
}

func TestShortestPath_PartialTargetSetStillSucceeds(t *testing.T) {
	// GIVEN one reachable and one unreachable target
	w := map[[2]int]int{{1, 2}: 3}
	g := New[int]()
	g.AddEdge(1, 2, 0)
	g.AddVertex(9)

	// WHEN searching towards both
	p := g.ShortestPath(1, []int{2, 9}, weighted(w), nil)

	// THEN the reachable target is returned
	assert.Equal(t, []int{1, 2}, p.Vertices)
	assert.Equal(t, 3, p.Length)
}

func TestShortestPath_SaturatedWeightsDoNotOverflow(t *testing.T) {
	// GIVEN an edge with an effectively infinite weight
	w := map[[2]int]int{{1, 2}: math.MaxInt, {2, 3}: 1}
	g := line(w)

	// WHEN searching through it
	p := g.ShortestPath(1, []int{3}, weighted(w), nil)

	// THEN distances clamp instead of wrapping around
	require.True(t, p.Exists())
	assert.Equal(t, math.MaxInt, p.Length)
}
