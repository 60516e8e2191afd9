// Package graph provides a small directed-graph library with a
// multi-target Dijkstra search used for road routing.
package graph

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Graph is an adjacency-map based directed graph over integer vertex ids.
// At most one edge exists per ordered (source, target) pair; adding a second
// edge for the same pair overwrites the first.
type Graph[E any] struct {
	succ map[int]map[int]E
	pred map[int]map[int]E
}

// New returns an empty graph.
func New[E any]() *Graph[E] {
	return &Graph[E]{
		succ: make(map[int]map[int]E),
		pred: make(map[int]map[int]E),
	}
}

// AddVertex adds a vertex. Adding an existing vertex is a no-op.
func (g *Graph[E]) AddVertex(v int) {
	if _, ok := g.succ[v]; !ok {
		g.succ[v] = make(map[int]E)
	}
	if _, ok := g.pred[v]; !ok {
		g.pred[v] = make(map[int]E)
	}
}

// AddEdge adds a directed edge. Missing endpoints are added implicitly.
func (g *Graph[E]) AddEdge(source, target int, edge E) {
	g.AddVertex(source)
	g.AddVertex(target)
	g.succ[source][target] = edge
	g.pred[target][source] = edge
}

// Edge returns the edge from source to target, or false when none exists.
func (g *Graph[E]) Edge(source, target int) (E, bool) {
	e, ok := g.succ[source][target]
	return e, ok
}

// MustEdge returns the edge from source to target and panics when none exists.
func (g *Graph[E]) MustEdge(source, target int) E {
	e, ok := g.succ[source][target]
	if !ok {
		panic(fmt.Sprintf("MustEdge: no edge from %d to %d", source, target))
	}
	return e
}

// HasEdge reports whether a directed edge from source to target exists.
func (g *Graph[E]) HasEdge(source, target int) bool {
	_, ok := g.succ[source][target]
	return ok
}

// Vertices returns the vertex ids in ascending order.
func (g *Graph[E]) Vertices() []int {
	vs := make([]int, 0, len(g.succ))
	for v := range g.succ {
		vs = append(vs, v)
	}
	sort.Ints(vs)
	return vs
}

// Successors returns the successor vertex ids of v in ascending order.
func (g *Graph[E]) Successors(v int) []int {
	out := g.succ[v]
	ss := make([]int, 0, len(out))
	for s := range out {
		ss = append(ss, s)
	}
	sort.Ints(ss)
	return ss
}

// Predecessors returns the predecessor vertex ids of v in ascending order.
func (g *Graph[E]) Predecessors(v int) []int {
	in := g.pred[v]
	ps := make([]int, 0, len(in))
	for p := range in {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps
}

// IncomingDegree returns the number of edges ending at v.
func (g *Graph[E]) IncomingDegree(v int) int {
	return len(g.pred[v])
}

// Path is a walk through a graph given by its vertex sequence and total weight.
// An empty vertex sequence with Length == math.MaxInt denotes "no path found".
type Path struct {
	Vertices []int
	Length   int
}

// NoPath is the sentinel returned when a search finds no connection.
func NoPath() Path {
	return Path{Length: math.MaxInt}
}

// Exists reports whether the path connects anything at all.
func (p Path) Exists() bool {
	return len(p.Vertices) > 0
}

// First returns the first vertex of the path.
func (p Path) First() int {
	if len(p.Vertices) == 0 {
		panic("First: empty path")
	}
	return p.Vertices[0]
}

// Last returns the last vertex of the path.
func (p Path) Last() int {
	if len(p.Vertices) == 0 {
		panic("Last: empty path")
	}
	return p.Vertices[len(p.Vertices)-1]
}

// Drop returns the path without its first vertex, with the length reduced by
// the given amount.
func (p Path) Drop(weight int) Path {
	if len(p.Vertices) == 0 {
		panic("Drop: empty path")
	}
	rest := make([]int, len(p.Vertices)-1)
	copy(rest, p.Vertices[1:])
	return Path{Vertices: rest, Length: p.Length - weight}
}

// Equal reports whether two paths have the same vertex sequence and length.
func (p Path) Equal(o Path) bool {
	if p.Length != o.Length || len(p.Vertices) != len(o.Vertices) {
		return false
	}
	for i := range p.Vertices {
		if p.Vertices[i] != o.Vertices[i] {
			return false
		}
	}
	return true
}

// String renders the path as "[a-b-c]".
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range p.Vertices {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// SatAdd adds two non-negative weights, clamping at math.MaxInt instead of
// overflowing.
func SatAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// SatMul multiplies two non-negative weights, clamping at math.MaxInt instead
// of overflowing.
func SatMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
