package sim

import (
	"fmt"

	"github.com/dispatch-sim/dispatch-sim/sim/graph"
)

// Route is a path from a start location to a target location. Routes are
// immutable values; Advance returns the route after moving, leaving the
// receiver untouched.
type Route struct {
	Start  Location
	Target Location
	Path   graph.Path

	net     *graph.Graph[*Road]
	reached bool
}

// NewRoute returns a route over the given road network.
func NewRoute(net *graph.Graph[*Road], start, target Location, path graph.Path) Route {
	return Route{Start: start, Target: target, Path: path, net: net}
}

// ReachedRoute returns the terminal route of a vehicle standing at target.
func ReachedRoute(net *graph.Graph[*Road], target Location) Route {
	return Route{Start: target, Target: target, Path: graph.Path{}, net: net, reached: true}
}

// Reached reports whether the route's target has been reached.
func (r Route) Reached() bool {
	return r.reached
}

// Length is the remaining travel cost: the path cost plus the offsets of
// start and target into their roads.
func (r Route) Length() int {
	if r.reached {
		return 0
	}
	if len(r.Path.Vertices) == 0 {
		return r.Path.Length
	}
	length := r.Path.Length
	if d, ok := r.Start.Distances()[r.Path.First()]; ok {
		length = graph.SatAdd(length, d)
	}
	if d, ok := r.Target.Distances()[r.Path.Last()]; ok {
		length = graph.SatAdd(length, d)
	}
	return length
}

// Advance moves along the route by the given distance and returns the new
// route. Crossing a vertex enters the next road of the path at its current
// weight; reaching the last vertex yields the terminal route.
func (r Route) Advance(distance int) Route {
	if r.reached {
		return r
	}
	distToNext, ok := r.Start.Distances()[r.Path.First()]
	if !ok {
		panic(fmt.Sprintf("route path does not start at a vertex touching %v", r.Start))
	}
	if distToNext <= distance {
		if len(r.Path.Vertices) == 1 {
			return ReachedRoute(r.net, r.Target)
		}
		next := r.Path.Vertices[0]
		nextRoad := r.net.MustEdge(next, r.Path.Vertices[1])
		rest := Route{
			Start:  SpotAtEnd(nextRoad, nextRoad.Source == next),
			Target: r.Target,
			Path:   r.Path.Drop(nextRoad.Weight()),
			net:    r.net,
		}
		return rest.Advance(distance - distToNext)
	}
	spot, ok := r.Start.(RoadSpot)
	if !ok {
		panic(fmt.Sprintf("route start %v is neither a road spot nor at a path vertex", r.Start))
	}
	position := spot.Position + distance
	if spot.Road.Source == r.Path.First() {
		position = spot.Position - distance
	}
	moved := RoadSpot{Road: spot.Road, Position: position, Length: spot.Length, Exit: closedEntry(spot.Road)}
	return Route{Start: moved, Target: r.Target, Path: r.Path, net: r.net}
}

// Equal compares routes by start, path and length; terminal routes compare
// by target only.
func (r Route) Equal(o Route) bool {
	if r.reached || o.reached {
		return r.reached && o.reached && r.Target == o.Target
	}
	return r.Start == o.Start && r.Path.Equal(o.Path) && r.Length() == o.Length()
}

func (r Route) String() string {
	return r.Path.String()
}

func closedEntry(road *Road) int {
	if road.Closed(road.Source) {
		return road.Source
	}
	if road.Closed(road.Target) {
		return road.Target
	}
	return NoExit
}
