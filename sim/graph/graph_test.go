package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_AddEdge_ImplicitVertices(t *testing.T) {
	// GIVEN an empty graph
	g := New[string]()

	// WHEN an edge between unknown vertices is added
	g.AddEdge(2, 1, "a")

	// THEN both endpoints exist and the edge is retrievable
	assert.Equal(t, []int{1, 2}, g.Vertices())
	e, ok := g.Edge(2, 1)
	assert.True(t, ok)
	assert.Equal(t, "a", e)

	// AND the reverse direction does not exist
	_, ok = g.Edge(1, 2)
	assert.False(t, ok)
	assert.False(t, g.HasEdge(1, 2))
}

func TestGraph_SuccessorsPredecessors_Sorted(t *testing.T) {
	// GIVEN a vertex with several neighbors added out of order
	g := New[string]()
	g.AddEdge(5, 9, "a")
	g.AddEdge(5, 2, "b")
	g.AddEdge(5, 7, "c")
	g.AddEdge(3, 5, "d")
	g.AddEdge(1, 5, "e")

	// WHEN neighbors are listed
	// THEN they come back in ascending vertex order
	assert.Equal(t, []int{2, 7, 9}, g.Successors(5))
	assert.Equal(t, []int{1, 3}, g.Predecessors(5))
	assert.Equal(t, 2, g.IncomingDegree(5))
}

func TestGraph_MustEdge_MissingPanics(t *testing.T) {
	g := New[string]()
	g.AddEdge(1, 2, "a")
	assert.Panics(t, func() { g.MustEdge(2, 1) })
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "[1-2-3]", Path{Vertices: []int{1, 2, 3}}.String())
	assert.Equal(t, "[7]", Path{Vertices: []int{7}}.String())
	assert.Equal(t, "[]", Path{}.String())
}

func TestPath_Drop_ReducesLength(t *testing.T) {
	// GIVEN a path over three vertices
	p := Path{Vertices: []int{1, 2, 3}, Length: 10}

	// WHEN the first vertex is dropped with its edge weight
	rest := p.Drop(4)

	// THEN the remaining path starts at the next vertex
	assert.Equal(t, []int{2, 3}, rest.Vertices)
	assert.Equal(t, 6, rest.Length)

	// AND the original path is untouched
	assert.Equal(t, []int{1, 2, 3}, p.Vertices)
}

func TestPath_Equal(t *testing.T) {
	a := Path{Vertices: []int{1, 2}, Length: 5}
	b := Path{Vertices: []int{1, 2}, Length: 5}
	c := Path{Vertices: []int{1, 3}, Length: 5}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Path{Vertices: []int{1, 2}, Length: 6}))
}

func TestSaturatingArithmetic(t *testing.T) {
	assert.Equal(t, 7, SatAdd(3, 4))
	assert.Equal(t, math.MaxInt, SatAdd(math.MaxInt, 1))
	assert.Equal(t, math.MaxInt, SatAdd(1, math.MaxInt))
	assert.Equal(t, 12, SatMul(3, 4))
	assert.Equal(t, 0, SatMul(0, math.MaxInt))
	assert.Equal(t, math.MaxInt, SatMul(math.MaxInt/2, 3))
}
