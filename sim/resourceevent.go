package sim

import "fmt"

// VehicleUnavailable takes one vehicle out of service for maintenance. The
// vehicle is marked broken as soon as the event is due; maintenance itself
// only starts once the vehicle is ready at its base.
type VehicleUnavailable struct {
	eventBase
	vehicleID int
}

// NewVehicleUnavailable returns an unavailability event for the vehicle.
func NewVehicleUnavailable(id, tick, duration, vehicleID int) *VehicleUnavailable {
	return &VehicleUnavailable{eventBase: eventBase{id: id, tick: tick, duration: duration}, vehicleID: vehicleID}
}

func (e *VehicleUnavailable) Trigger(w *World) bool {
	v := w.Vehicle(e.vehicleID)
	if v == nil {
		panic(fmt.Sprintf("vehicle %d for unavailability event %d not found", e.vehicleID, e.id))
	}
	v.Broken = true
	if !v.InMaintenance && v.AtHome() && v.Ready() {
		v.InMaintenance = true
		return true
	}
	e.tick++
	return false
}

func (e *VehicleUnavailable) Update(w *World) {
	if e.tick+e.duration == w.Tick {
		e.done = true
		if v := w.Vehicle(e.vehicleID); v != nil {
			v.InMaintenance = false
			v.Broken = false
		}
	}
}

// Vacation takes one staff member out of the rotation. It only starts once
// the staff member is unallocated and at the base, and re-arms otherwise.
type Vacation struct {
	eventBase
	staffID int
}

// NewVacation returns a vacation event for the staff member.
func NewVacation(id, tick, duration, staffID int) *Vacation {
	return &Vacation{eventBase: eventBase{id: id, tick: tick, duration: duration}, staffID: staffID}
}

func (e *Vacation) Trigger(w *World) bool {
	s := w.Staff(e.staffID)
	if s == nil {
		panic(fmt.Sprintf("staff %d for vacation event %d not found", e.staffID, e.id))
	}
	if s.AllocatedTo != NoVehicle || s.TicksAwayFromBase != 0 || s.Unavailable {
		e.tick++
		return false
	}
	s.Unavailable = true
	return true
}

func (e *Vacation) Update(w *World) {
	if e.tick+e.duration <= w.Tick {
		e.done = true
		s := w.Staff(e.staffID)
		s.Unavailable = false
		w.Journal.StaffAvailable(s.Name, s.ID)
	}
}

// Sickness makes the first eligible staff member sick: the lowest-id one who
// has spent at least minTicks at emergencies and is not sick already. A sick
// staff member on a vehicle forces the vehicle back to its base.
type Sickness struct {
	eventBase
	minTicks int
	staffID  int
}

// NewSickness returns a sickness event with the given threshold of ticks
// spent at emergencies.
func NewSickness(id, tick, duration, minTicks int) *Sickness {
	return &Sickness{eventBase: eventBase{id: id, tick: tick, duration: duration}, minTicks: minTicks, staffID: -1}
}

func (e *Sickness) Trigger(w *World) bool {
	for _, s := range w.StaffSorted() {
		if s.TicksSpentAtEmergencies < e.minTicks || s.Sick {
			continue
		}
		s.Sick = true
		s.Unavailable = true
		if s.AllocatedTo != NoVehicle {
			w.Vehicle(s.AllocatedTo).ReturnFlag = true
		}
		e.staffID = s.ID
		w.Journal.StaffSick(s.Name, s.ID, e.duration)
		return true
	}
	e.tick++
	return false
}

func (e *Sickness) Update(w *World) {
	if e.tick+e.duration <= w.Tick {
		e.done = true
		s := w.Staff(e.staffID)
		s.Sick = false
		s.Unavailable = false
		s.TicksSpentAtEmergencies = 0
		w.Journal.StaffAvailable(s.Name, s.ID)
	}
}
