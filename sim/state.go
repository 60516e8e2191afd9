package sim

import (
	"sort"

	"github.com/dispatch-sim/dispatch-sim/sim/graph"
	"github.com/dispatch-sim/dispatch-sim/sim/journal"
)

// World bundles the road network, the assets stationed on it, and the
// bookkeeping shared across a run. Roads, bases, vehicles, staff and
// emergencies keep the order they were configured in, sorted by id, so
// every traversal of the world is deterministic.
type World struct {
	Net         *graph.Graph[*Road]
	Roads       []*Road
	Bases       []*Base
	Vehicles    []*Vehicle
	StaffList   []*Staff
	Emergencies []*Emergency

	Tick     int
	MaxTicks int
	Shift    ShiftType

	Journal *journal.Journal

	baseByID      map[int]*Base
	vehicleByID   map[int]*Vehicle
	staffByID     map[int]*Staff
	emergencyByID map[int]*Emergency
	nextRequestID int
}

// NewWorld wires up a world from already-constructed parts and indexes
// them by id. Slices are sorted by id, so iteration order never depends
// on configuration file order.
func NewWorld(
	net *graph.Graph[*Road],
	roads []*Road,
	bases []*Base,
	vehicles []*Vehicle,
	staff []*Staff,
	emergencies []*Emergency,
	maxTicks int,
	j *journal.Journal,
) *World {
	w := &World{
		Net:           net,
		Roads:         roads,
		Bases:         bases,
		Vehicles:      vehicles,
		StaffList:     staff,
		Emergencies:   emergencies,
		MaxTicks:      maxTicks,
		Shift:         EarlyShift,
		Journal:       j,
		baseByID:      make(map[int]*Base, len(bases)),
		vehicleByID:   make(map[int]*Vehicle, len(vehicles)),
		staffByID:     make(map[int]*Staff, len(staff)),
		emergencyByID: make(map[int]*Emergency, len(emergencies)),
		nextRequestID: 1,
	}
	sort.Slice(w.Bases, func(i, k int) bool { return w.Bases[i].ID < w.Bases[k].ID })
	sort.Slice(w.Vehicles, func(i, k int) bool { return w.Vehicles[i].ID < w.Vehicles[k].ID })
	sort.Slice(w.StaffList, func(i, k int) bool { return w.StaffList[i].ID < w.StaffList[k].ID })
	sort.Slice(w.Emergencies, func(i, k int) bool { return w.Emergencies[i].ID < w.Emergencies[k].ID })
	for _, b := range w.Bases {
		w.baseByID[b.ID] = b
	}
	for _, v := range w.Vehicles {
		w.vehicleByID[v.ID] = v
	}
	for _, s := range w.StaffList {
		w.staffByID[s.ID] = s
	}
	for _, e := range w.Emergencies {
		w.emergencyByID[e.ID] = e
	}
	return w
}

// Base returns the base with the given id, or nil.
func (w *World) Base(id int) *Base { return w.baseByID[id] }

// Vehicle returns the vehicle with the given id, or nil.
func (w *World) Vehicle(id int) *Vehicle { return w.vehicleByID[id] }

// Staff returns the staff member with the given id, or nil.
func (w *World) Staff(id int) *Staff { return w.staffByID[id] }

// StaffSorted returns all staff members in id order.
func (w *World) StaffSorted() []*Staff { return w.StaffList }

// Emergency returns the emergency with the given id, or nil.
func (w *World) Emergency(id int) *Emergency { return w.emergencyByID[id] }

// BasesOfKind returns all bases of the given kind in id order.
func (w *World) BasesOfKind(kind BaseKind) []*Base {
	var out []*Base
	for _, b := range w.Bases {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// AllocatedAssets returns the vehicles currently bound to the given
// emergency, in id order.
func (w *World) AllocatedAssets(emergencyID int) []*Vehicle {
	var out []*Vehicle
	for _, v := range w.Vehicles {
		if v.EmergencyID == emergencyID {
			out = append(out, v)
		}
	}
	return out
}

// DrivingVehicles returns all vehicles that have not reached their
// target yet, in id order.
func (w *World) DrivingVehicles() []*Vehicle {
	var out []*Vehicle
	for _, v := range w.Vehicles {
		if !v.AtTarget {
			out = append(out, v)
		}
	}
	return out
}

// NextRequestID hands out asset request ids, starting at 1.
func (w *World) NextRequestID() int {
	id := w.nextRequestID
	w.nextRequestID++
	return id
}
