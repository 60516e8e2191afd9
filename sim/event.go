package sim

import "github.com/dispatch-sim/dispatch-sim/sim/graph"

// Event is a scheduled world change. Trigger is attempted at the event's
// start tick and reports whether the event activated; an event whose
// precondition is not met re-arms itself by bumping its start tick. Update
// runs every tick the event is live and flips it to done when the duration
// has elapsed.
type Event interface {
	ID() int
	StartTick() int
	Done() bool
	Trigger(w *World) bool
	Update(w *World)
}

// RoadEvent is an event occupying a road's active slot, overriding the
// road's travel cost and closure state while it runs.
type RoadEvent interface {
	Event
	Weight(r *Road) int
	Closed(entry int) bool
	Pause()
	Resume()
}

type eventBase struct {
	id       int
	tick     int
	duration int
	done     bool
}

func (e *eventBase) ID() int        { return e.id }
func (e *eventBase) StartTick() int { return e.tick }
func (e *eventBase) Done() bool     { return e.done }

// singleRoadEvent carries the shared trigger and expiry behavior of events
// bound to one road. The self field holds the outer event so that the road's
// active slot can be compared against it.
type singleRoadEvent struct {
	eventBase
	road   *Road
	paused bool
	self   RoadEvent
}

func (e *singleRoadEvent) Trigger(w *World) bool {
	switch e.road.active {
	case nil:
		e.road.active = e.self
		return true
	case e.self:
		return false
	default:
		e.tick++
		return false
	}
}

func (e *singleRoadEvent) Update(w *World) {
	if e.paused {
		e.tick++
		return
	}
	if e.tick+e.duration <= w.Tick {
		e.done = true
		e.road.active = nil
	}
}

func (e *singleRoadEvent) Weight(r *Road) int    { return r.Length }
func (e *singleRoadEvent) Closed(entry int) bool { return false }
func (e *singleRoadEvent) Pause()                {}
func (e *singleRoadEvent) Resume()               {}

// TrafficJam multiplies the travel cost of one road.
type TrafficJam struct {
	singleRoadEvent
	factor int
}

// NewTrafficJam returns a traffic jam on the given road.
func NewTrafficJam(id, tick, duration int, road *Road, factor int) *TrafficJam {
	e := &TrafficJam{
		singleRoadEvent: singleRoadEvent{eventBase: eventBase{id: id, tick: tick, duration: duration}, road: road},
		factor:          factor,
	}
	e.self = e
	return e
}

func (e *TrafficJam) Weight(r *Road) int {
	return graph.SatMul(r.Length, e.factor)
}

// ConstructionSite multiplies the travel cost of one road and may block one
// entry, turning a two-way road into a one-way road for its duration.
type ConstructionSite struct {
	singleRoadEvent
	factor       int
	blockedEntry int
}

// NewConstructionSite returns a construction site on the given road. When
// oneWayStreet is set on a two-way road, the road's target entry is blocked.
func NewConstructionSite(id, tick, duration int, road *Road, factor int, oneWayStreet bool) *ConstructionSite {
	blocked := NoExit
	if oneWayStreet && !road.OneWay {
		blocked = road.Target
	}
	e := &ConstructionSite{
		singleRoadEvent: singleRoadEvent{eventBase: eventBase{id: id, tick: tick, duration: duration}, road: road},
		factor:          factor,
		blockedEntry:    blocked,
	}
	e.self = e
	return e
}

func (e *ConstructionSite) Weight(r *Road) int {
	return graph.SatMul(r.Length, e.factor)
}

func (e *ConstructionSite) Closed(entry int) bool {
	return e.blockedEntry != NoExit && entry == e.blockedEntry
}

// RoadClosure closes one road completely. A closure is paused while an
// emergency sits on its road; pausing extends the closure by one tick.
type RoadClosure struct {
	singleRoadEvent
}

// NewRoadClosure returns a closure of the given road.
func NewRoadClosure(id, tick, duration int, road *Road) *RoadClosure {
	e := &RoadClosure{
		singleRoadEvent: singleRoadEvent{eventBase: eventBase{id: id, tick: tick, duration: duration}, road: road},
	}
	e.self = e
	return e
}

func (e *RoadClosure) Closed(entry int) bool {
	return !e.paused
}

func (e *RoadClosure) Pause() {
	if !e.paused {
		e.tick++
		e.paused = true
	}
}

func (e *RoadClosure) Resume() {
	e.paused = false
}

// RushHour multiplies the travel cost of every road of its kinds. It
// activates as soon as any affected road has a free slot and queues on the
// rest.
type RushHour struct {
	eventBase
	kinds  map[RoadKind]bool
	factor int
}

// NewRushHour returns a rush hour over all roads of the given kinds.
func NewRushHour(id, tick, duration int, kinds []RoadKind, factor int) *RushHour {
	set := make(map[RoadKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &RushHour{
		eventBase: eventBase{id: id, tick: tick, duration: duration},
		kinds:     set,
		factor:    factor,
	}
}

func (e *RushHour) Weight(r *Road) int {
	if e.kinds[r.Kind] {
		return graph.SatMul(r.Length, e.factor)
	}
	return r.Length
}

func (e *RushHour) Closed(entry int) bool { return false }
func (e *RushHour) Pause()                {}
func (e *RushHour) Resume()               {}

func (e *RushHour) affectedRoads(w *World) []*Road {
	var roads []*Road
	for _, r := range w.Roads {
		if e.kinds[r.Kind] {
			roads = append(roads, r)
		}
	}
	return roads
}

func (e *RushHour) Trigger(w *World) bool {
	affected := e.affectedRoads(w)
	free := false
	for _, r := range affected {
		if r.active == nil {
			free = true
			break
		}
	}
	if !free {
		e.tick++
		return false
	}
	for _, r := range affected {
		r.AddEvent(e)
	}
	return true
}

func (e *RushHour) Update(w *World) {
	if e.tick+e.duration != w.Tick {
		return
	}
	e.done = true
	for _, r := range e.affectedRoads(w) {
		if r.active == RoadEvent(e) {
			r.active = nil
			continue
		}
		for i, pending := range r.pending {
			if pending == RoadEvent(e) {
				r.pending = append(r.pending[:i], r.pending[i+1:]...)
				break
			}
		}
	}
}
