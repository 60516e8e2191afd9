package sim

// Location is a position on the map: a vertex, a whole road, or a point
// somewhere along a road. Distances reports how far the location is from the
// graph vertices that touch it; DrivableDistances restricts that to vertices
// a vehicle can still leave through while an event closes an entry.
type Location interface {
	Distances() map[int]int
	DrivableDistances() map[int]int
}

// Node is a graph vertex used as a location.
type Node int

func (n Node) Distances() map[int]int {
	return map[int]int{int(n): 0}
}

func (n Node) DrivableDistances() map[int]int {
	return n.Distances()
}

// RoadSpot is a point on a road, measured from the road's source vertex.
// Length and Exit are captured at creation time so that a spot keeps the
// geometry it was created under even when the road's active event changes.
// Exit is the only vertex the spot can be left through when an event closes
// one entry, or NoExit when both ends are open.
type RoadSpot struct {
	Road     *Road
	Position int
	Length   int
	Exit     int
}

// NoExit marks a RoadSpot without a closed entry.
const NoExit = -1

// SpotOn returns the spot at the given position on the road, capturing the
// road's current weight and closure state.
func SpotOn(road *Road, position int) RoadSpot {
	return RoadSpot{Road: road, Position: position, Length: road.Weight(), Exit: closedEntry(road)}
}

// SpotAtEnd returns the spot at one end of the road, at the source when
// atSource is true and at the target otherwise.
func SpotAtEnd(road *Road, atSource bool) RoadSpot {
	if atSource {
		return SpotOn(road, 0)
	}
	return SpotOn(road, road.Weight())
}

func (s RoadSpot) Distances() map[int]int {
	return map[int]int{s.Road.Source: s.Position, s.Road.Target: s.Length - s.Position}
}

func (s RoadSpot) DrivableDistances() map[int]int {
	if s.Exit != NoExit {
		if s.Exit == s.Road.Source {
			return map[int]int{s.Road.Source: s.Position}
		}
		return map[int]int{s.Road.Target: s.Length - s.Position}
	}
	return s.Distances()
}
