package sim

import (
	"math"
	"sort"

	"github.com/dispatch-sim/dispatch-sim/sim/graph"
)

// Navigation computes routes over the world's road network. All searches run
// on the current road weights, so an active event changes the answers.
type Navigation struct {
	w *World
}

func NewNavigation(w *World) *Navigation {
	return &Navigation{w: w}
}

// ShortestRoute returns the shortest route from start to target, honoring the
// vehicle's height when one is given. Both locations may touch the network at
// two vertices, so the search fans out over every reachable entry point and
// keeps the route with the fewest vertices among those of minimal length.
// When no candidate connects, the returned route carries a non-existing path.
func (n *Navigation) ShortestRoute(start, target Location, v *Vehicle) Route {
	candidates := candidateNodes(start)
	if spot, ok := start.(RoadSpot); ok {
		kept := candidates[:0]
		for _, c := range candidates {
			if c == spot.Road.Target || n.w.Net.HasEdge(spot.Road.Target, c) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	var routes []Route
	for _, c := range candidates {
		path := n.shortestPath(c, targetNodes(target), v)
		if !path.Exists() {
			continue
		}
		routeTarget := target
		if road, ok := target.(*Road); ok {
			routeTarget = SpotAtEnd(road, path.Last() == road.Source)
		}
		routes = append(routes, NewRoute(n.w.Net, start, routeTarget, path))
	}
	if len(routes) == 0 {
		return NewRoute(n.w.Net, start, target, graph.NoPath())
	}
	sort.SliceStable(routes, func(i, k int) bool {
		return len(routes[i].Path.Vertices) < len(routes[k].Path.Vertices)
	})
	best := routes[0]
	for _, r := range routes[1:] {
		if r.Length() < best.Length() {
			best = r
		}
	}
	return best
}

// ClosestBase returns the base of the given kind nearest to address, together
// with the path connecting them, skipping the excluded base ids. By default
// the distance is measured from each base to the address; with reverse set
// and a vertex address, a single search from the address decides instead.
// Ties go to the smaller base id.
func (n *Navigation) ClosestBase(kind BaseKind, address Location, exclude []int, reverse bool) (*Base, graph.Path, bool) {
	var bases []*Base
	for _, b := range n.w.BasesOfKind(kind) {
		if !containsID(exclude, b.ID) {
			bases = append(bases, b)
		}
	}
	if len(bases) == 0 {
		return nil, graph.Path{}, false
	}
	if node, ok := address.(Node); ok && reverse {
		targets := make([]int, 0, len(bases))
		for _, b := range bases {
			targets = append(targets, int(b.Location.(Node)))
		}
		sort.Ints(targets)
		path := n.shortestPath(int(node), targets, nil)
		if !path.Exists() {
			return nil, graph.Path{}, false
		}
		for _, b := range bases {
			if b.Location == Node(path.Last()) {
				return b, path, true
			}
		}
		return nil, graph.Path{}, false
	}
	var closest *Base
	var best Route
	for _, b := range bases {
		route := n.ShortestRoute(b.Location, address, nil)
		if closest == nil || route.Length() < best.Length() {
			closest, best = b, route
		}
	}
	if !best.Path.Exists() {
		return nil, graph.Path{}, false
	}
	return closest, best.Path, true
}

func (n *Navigation) shortestPath(source int, targets []int, v *Vehicle) graph.Path {
	weight := func(s, t int) int {
		if road, ok := n.w.Net.Edge(s, t); ok {
			return road.Weight()
		}
		return math.MaxInt
	}
	usable := func(entry int, road *Road) bool {
		if road.Closed(entry) {
			return false
		}
		return v == nil || road.Usable(v)
	}
	return n.w.Net.ShortestPath(source, targets, weight, usable)
}

// candidateNodes lists the vertices a route may leave the location through,
// source end before target end.
func candidateNodes(loc Location) []int {
	switch l := loc.(type) {
	case Node:
		return []int{int(l)}
	case RoadSpot:
		if l.Exit != NoExit {
			return []int{l.Exit}
		}
		return []int{l.Road.Source, l.Road.Target}
	case *Road:
		return []int{l.Source, l.Target}
	default:
		panic("candidateNodes: unknown location type")
	}
}

// targetNodes lists the vertices a route may arrive at, in ascending order.
func targetNodes(loc Location) []int {
	keys := make([]int, 0, 2)
	for k := range loc.Distances() {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
