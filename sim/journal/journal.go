// Package journal emits the deterministic record stream of a simulation run.
//
// Every record is rendered as a single line in the order the simulation
// produced it; emergency state-change records are buffered per tick and
// flushed sorted by emergency id. Diagnostic logging is a separate concern
// and never goes through the journal.
package journal

import (
	"fmt"
	"io"
	"sort"
)

// Journal writes simulation records to an output stream and keeps the
// end-of-run aggregates.
type Journal struct {
	w io.Writer

	stats Stats

	startedLines  map[int]string
	resolvedLines map[int]string
	failedLines   map[int]string
}

// New returns a journal writing to w.
func New(w io.Writer) *Journal {
	return &Journal{
		w:             w,
		startedLines:  make(map[int]string),
		resolvedLines: make(map[int]string),
		failedLines:   make(map[int]string),
	}
}

func (j *Journal) println(format string, args ...any) {
	fmt.Fprintf(j.w, format+"\n", args...)
}

// Start marks the beginning of the run.
func (j *Journal) Start() {
	j.println("Simulation starts")
}

// Tick marks a tick boundary with the global shift name.
func (j *Journal) Tick(tick int, shift string) {
	j.println("Simulation Tick: %d %s shift", tick, shift)
}

// Assignment records a new emergency being assigned to a base.
func (j *Journal) Assignment(emergencyID, baseID int, path string) {
	j.println("Emergency Assignment: %d assigned to %d via %s", emergencyID, baseID, path)
	j.stats.ReceivedEmergencies++
}

// StaffAllocation records a staff member boarding a vehicle.
func (j *Journal) StaffAllocation(staffName string, staffID, vehicleID, emergencyID int) {
	j.println("Staff Allocation: %s(%d) allocated to %d for %d", staffName, staffID, vehicleID, emergencyID)
}

// Allocation records a vehicle committed to an emergency.
func (j *Journal) Allocation(vehicleID, emergencyID, ticksToArrive int) {
	j.println("Asset Allocation: %d allocated to %d; %d ticks to arrive", vehicleID, emergencyID, ticksToArrive)
}

// Reallocation records a vehicle diverted to a more severe emergency.
func (j *Journal) Reallocation(vehicleID, emergencyID int) {
	j.println("Asset Reallocation: %d reallocated to %d", vehicleID, emergencyID)
}

// Request records an asset request sent to another base.
func (j *Journal) Request(requestID, baseID, emergencyID int) {
	j.println("Asset Request: %d sent to %d for %d", requestID, baseID, emergencyID)
}

// RequestFailed records a request chain that ran out of bases.
func (j *Journal) RequestFailed(emergencyID int) {
	j.println("Request Failed: %d failed", emergencyID)
}

// Arrival records a vehicle reaching its target.
func (j *Journal) Arrival(vehicleID, vertexID int) {
	j.println("Asset Arrival: %d arrived at %d", vehicleID, vertexID)
}

// ShiftEnd records the end of a working shift.
func (j *Journal) ShiftEnd(staffName string, staffID int, shift string) {
	j.println("Shift End: %s(%d) %s shift ended", staffName, staffID, shift)
}

// ShiftStart records an upcoming working shift.
func (j *Journal) ShiftStart(staffName string, staffID int, shift string) {
	j.println("Shift Start: %s(%d) %s shift will start", staffName, staffID, shift)
}

// StaffOnCall records a staff member entering an on-call shift.
func (j *Journal) StaffOnCall(staffName string, staffID int) {
	j.println("Staff On-Call: %s(%d) on-call", staffName, staffID)
}

// StaffNotOnCall records a staff member leaving an on-call shift.
func (j *Journal) StaffNotOnCall(staffName string, staffID int) {
	j.println("Staff Not On-Call: %s(%d) not on-call anymore", staffName, staffID)
}

// StaffReturn records a released staff member being back at base.
func (j *Journal) StaffReturn(staffName string, staffID int) {
	j.println("Staff Return: %s(%d) returned to base", staffName, staffID)
}

// StaffSick records a staff member falling sick.
func (j *Journal) StaffSick(staffName string, staffID, ticksSick int) {
	j.println("Staff Sick: %s(%d) sick for %d ticks", staffName, staffID, ticksSick)
}

// StaffAvailable records a staff member becoming available again.
func (j *Journal) StaffAvailable(staffName string, staffID int) {
	j.println("Staff Available: %s(%d) available again", staffName, staffID)
}

// AllocationCanceled records an allocation dropped because of sickness.
func (j *Journal) AllocationCanceled(vehicleID, emergencyID int, staffName string, staffID int) {
	j.println("Asset Allocation Canceled: %d allocated to %d canceled because %s(%d) became sick",
		vehicleID, emergencyID, staffName, staffID)
}

// Return records a vehicle heading back to its base.
func (j *Journal) Return(vehicleID, ticksToArrive int) {
	j.println("Asset Return: %d returns to base; %d ticks to arrive", vehicleID, ticksToArrive)
}

// Rerouted records a vehicle switching to a new route.
func (j *Journal) Rerouted(vehicleID int, path string) {
	j.println("Asset Rerouted: %d rerouted to %s", vehicleID, path)
	j.stats.ReroutedAssets++
}

// EventTriggered records an event activating.
func (j *Journal) EventTriggered(eventID int) {
	j.println("Event Triggered: %d triggered", eventID)
}

// EventEnded records an event running out.
func (j *Journal) EventEnded(eventID int) {
	j.println("Event Ended: %d ended", eventID)
}

// HandlingStarted buffers an emergency entering the handling state.
func (j *Journal) HandlingStarted(emergencyID int) {
	j.startedLines[emergencyID] = fmt.Sprintf("Emergency Handling Start: %d handling started", emergencyID)
}

// Resolved buffers an emergency being resolved.
func (j *Journal) Resolved(emergencyID int) {
	j.resolvedLines[emergencyID] = fmt.Sprintf("Emergency Resolved: %d resolved", emergencyID)
	j.stats.ResolvedEmergencies++
}

// Failed buffers an emergency failing.
func (j *Journal) Failed(emergencyID int) {
	j.failedLines[emergencyID] = fmt.Sprintf("Emergency Failed: %d failed", emergencyID)
	j.stats.FailedEmergencies++
}

// FlushEmergencies writes the buffered emergency state changes, each group
// sorted by emergency id, and clears the buffers.
func (j *Journal) FlushEmergencies() {
	for _, lines := range []map[int]string{j.startedLines, j.resolvedLines, j.failedLines} {
		ids := make([]int, 0, len(lines))
		for id := range lines {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintln(j.w, lines[id])
		}
	}
	j.startedLines = make(map[int]string)
	j.resolvedLines = make(map[int]string)
	j.failedLines = make(map[int]string)
}

// AddTickWorked counts one staff tick spent on an emergency.
func (j *Journal) AddTickWorked() {
	j.stats.TicksWorked++
}

// RemoveTickWorked retracts one counted staff tick, used when a sick staff
// member's allocation is canceled.
func (j *Journal) RemoveTickWorked() {
	j.stats.TicksWorked--
}

// AddShiftWorked counts one fully worked shift.
func (j *Journal) AddShiftWorked() {
	j.stats.ShiftsWorked++
}

// End marks the end of the run and writes the aggregate statistics lines.
func (j *Journal) End() {
	s := j.stats
	j.println("Simulation End")
	j.println("Simulation Statistics: %d assets rerouted", s.ReroutedAssets)
	j.println("Simulation Statistics: %d received emergencies", s.ReceivedEmergencies)
	j.println("Simulation Statistics: %d ongoing emergencies", s.OngoingEmergencies())
	j.println("Simulation Statistics: %d failed emergencies", s.FailedEmergencies)
	j.println("Simulation Statistics: %d resolved emergencies", s.ResolvedEmergencies)
	j.println("Simulation Statistics: %d shifts worked", s.ShiftsWorked)
	j.println("Simulation Statistics: %d ticks worked", s.TicksWorked)
}

// Stats returns a snapshot of the aggregate counters.
func (j *Journal) Stats() Stats {
	return j.stats
}
