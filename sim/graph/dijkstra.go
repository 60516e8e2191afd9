package graph

import (
	"math"
	"sort"
)

// WeightFunc returns the weight of the directed edge between two vertices.
type WeightFunc func(source, target int) int

// EdgeFilter reports whether the search may follow the given edge when
// entering it at the given vertex.
type EdgeFilter[E any] func(entry int, edge E) bool

// ShortestPath runs Dijkstra's algorithm from source towards a set of target
// vertices and returns the shortest path to the closest of them.
//
// A target counts as reached only once no other frontier vertex can still be
// strictly closer. When several targets are equally close, and when several
// equal-length paths lead to them, the lexicographically smallest vertex
// sequence wins. Returns NoPath when no target is reachable.
func (g *Graph[E]) ShortestPath(source int, targets []int, weight WeightFunc, usable EdgeFilter[E]) Path {
	if _, ok := g.succ[source]; !ok {
		return NoPath()
	}
	remaining := make(map[int]bool, len(targets))
	for _, t := range targets {
		remaining[t] = true
	}

	dist := map[int]int{source: 0}
	preds := make(map[int]map[int]bool)
	visited := make(map[int]bool)
	inQueue := map[int]bool{source: true}
	queue := []int{source}
	var reached []int
	closestTargetDist := math.MaxInt

	for len(queue) > 0 {
		sort.Ints(queue)
		sort.SliceStable(queue, func(i, j int) bool { return dist[queue[i]] < dist[queue[j]] })
		current := queue[0]
		queue = queue[1:]
		delete(inQueue, current)
		currentDist := dist[current]

		if remaining[current] && currentDist <= closestTargetDist {
			delete(remaining, current)
			reached = append(reached, current)
			closestTargetDist = currentDist
		}
		if len(remaining) == 0 || currentDist > closestTargetDist {
			break
		}
		visited[current] = true

		for _, succ := range g.Successors(current) {
			edge := g.succ[current][succ]
			if usable != nil && !usable(current, edge) {
				continue
			}
			oldDist, seen := dist[succ]
			if !seen {
				oldDist = math.MaxInt
			}
			newDist := SatAdd(currentDist, weight(current, succ))
			if newDist < oldDist {
				dist[succ] = newDist
				preds[succ] = map[int]bool{current: true}
			} else if newDist == oldDist {
				if preds[succ] == nil {
					preds[succ] = make(map[int]bool)
				}
				preds[succ][current] = true
			} else {
				continue
			}
			if !visited[succ] && !inQueue[succ] {
				queue = append(queue, succ)
				inQueue[succ] = true
			}
		}
	}

	if len(reached) == 0 {
		return NoPath()
	}
	best := reconstruct(source, reached, preds)
	return Path{Vertices: best, Length: closestTargetDist}
}

// reconstruct enumerates every shortest vertex sequence from source to each of
// the reached targets and returns the lexicographically smallest one.
func reconstruct(source int, reached []int, preds map[int]map[int]bool) []int {
	var best []int
	for _, target := range reached {
		for _, seq := range allPaths(source, target, preds) {
			if best == nil || lessSeq(seq, best) {
				best = seq
			}
		}
	}
	if best == nil {
		panic("reconstruct: reached target without predecessor chain")
	}
	return best
}

func allPaths(source, target int, preds map[int]map[int]bool) [][]int {
	if target == source {
		return [][]int{{source}}
	}
	ps := make([]int, 0, len(preds[target]))
	for p := range preds[target] {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	var out [][]int
	for _, p := range ps {
		for _, prefix := range allPaths(source, p, preds) {
			out = append(out, append(append([]int(nil), prefix...), target))
		}
	}
	return out
}

func lessSeq(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
