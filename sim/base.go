package sim

import "sort"

// BaseKind enumerates the base types of the three services.
type BaseKind int

const (
	FireStation BaseKind = iota
	PoliceStation
	Hospital
)

var baseKindNames = map[BaseKind]string{
	FireStation:   "FIRE_STATION",
	PoliceStation: "POLICE_STATION",
	Hospital:      "HOSPITAL",
}

func (k BaseKind) String() string {
	if name, ok := baseKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Base is a station of one service with its fleet and crew. Dogs and
// Doctors are the live pools backing K9 cars and doctor cars; StaffNumber is
// the live count of unallocated seats' worth of crew.
type Base struct {
	ID       int
	Kind     BaseKind
	Location Location

	StaffNumber int
	Dogs        int
	Doctors     int

	Vehicles []*Vehicle
	Crew     []*Staff
}

func (b *Base) crewByID() []*Staff {
	sorted := make([]*Staff, len(b.Crew))
	copy(sorted, b.Crew)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}

// AvailableVehicles returns the vehicles standing at the base that are fit
// for a dispatch and mannable by the base's crew complement, sorted by id.
func (b *Base) AvailableVehicles() []*Vehicle {
	var available []*Vehicle
	for _, v := range b.Vehicles {
		if v.EmergencyID == NoEmergency && v.Location == b.Location && v.Allocatable() && b.CanMan(v) {
			available = append(available, v)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	return available
}

// ReallocatableVehicles returns the vehicles that may be diverted to the
// given emergency: fit vehicles already out that are either returning home
// or bound for a less severe emergency they have not reached yet, with no
// sick crew on board.
func (b *Base) ReallocatableVehicles(w *World, e *Emergency) []*Vehicle {
	var candidates []*Vehicle
	for _, v := range b.Vehicles {
		if !v.Ready() || v.Broken {
			continue
		}
		free := !v.AtHome() && v.EmergencyID == NoEmergency
		divertable := v.EmergencyID != NoEmergency && !v.AtTarget &&
			w.Emergency(v.EmergencyID).Severity < e.Severity
		if !free && !divertable {
			continue
		}
		sickCrew := false
		for _, staffID := range v.AssignedStaff {
			if w.Staff(staffID).Sick {
				sickCrew = true
				break
			}
		}
		if !sickCrew {
			candidates = append(candidates, v)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates
}

// CanMan reports whether the base's crew complement can man the vehicle at
// all: enough seat-filling crew, a license holder if the kind needs one, and
// a dog or doctor in the pool for the special cars.
func (b *Base) CanMan(v *Vehicle) bool {
	seatFillers := 0
	for _, s := range b.Crew {
		if s.Role != DogHandler && s.Role != EmergencyDoctor {
			seatFillers++
		}
	}
	if v.StaffCapacity > seatFillers {
		return false
	}
	if v.Kind.NeedsLicense() && !b.anyCrew(func(s *Staff) bool { return s.HasLicense() }) {
		return false
	}
	if v.Kind == K9PoliceCar && b.Dogs <= 0 {
		return false
	}
	if v.Kind == EmergencyDoctorCar && b.Doctors <= 0 {
		return false
	}
	return true
}

// CanManLive reports whether the vehicle can be manned right now with crew
// no further than ticksLimit from the base. For cross-base requests only
// crew on a working shift counts; otherwise on-call crew counts too.
func (b *Base) CanManLive(v *Vehicle, ticksLimit int, request bool, global ShiftType) bool {
	assignable := func(s *Staff) bool {
		if request {
			return s.CanBeAssignedWorking(global)
		}
		return s.CanBeAssigned(global)
	}
	seatFillers := 0
	for _, s := range b.Crew {
		if assignable(s) && s.TicksAwayFromBase <= ticksLimit &&
			s.Role != DogHandler && s.Role != EmergencyDoctor {
			seatFillers++
		}
	}
	if v.StaffCapacity > seatFillers {
		return false
	}
	if v.Kind.NeedsLicense() && !b.anyCrew(func(s *Staff) bool { return assignable(s) && s.HasLicense() }) {
		return false
	}
	if v.Kind == K9PoliceCar && !b.anyCrew(func(s *Staff) bool { return assignable(s) && s.Role == DogHandler }) {
		return false
	}
	if v.Kind == EmergencyDoctorCar &&
		!b.anyCrew(func(s *Staff) bool { return assignable(s) && s.Role == EmergencyDoctor }) {
		return false
	}
	return true
}

func (b *Base) anyCrew(pred func(*Staff) bool) bool {
	for _, s := range b.Crew {
		if pred(s) {
			return true
		}
	}
	return false
}

// AllocateStaff boards crew onto the vehicle for the emergency and returns
// the extra ticks until the slowest called-in member reaches the base, plus
// the allocated members. For requests only the working pass runs.
func (b *Base) AllocateStaff(w *World, emergencyID int, v *Vehicle, ticksLimit int, request bool) (int, []*Staff) {
	switch b.Kind {
	case PoliceStation:
		return b.allocatePoliceStaff(w, emergencyID, v, ticksLimit, request)
	case Hospital:
		return b.allocateHospitalStaff(w, emergencyID, v, ticksLimit, request)
	default:
		return b.allocateFireStaff(w, emergencyID, v, ticksLimit, request)
	}
}

func (b *Base) board(w *World, s *Staff, v *Vehicle, emergencyID int) {
	s.AllocatedTo = v.ID
	v.AssignedStaff = append(v.AssignedStaff, s.ID)
	w.Journal.StaffAllocation(s.Name, s.ID, v.ID, emergencyID)
}

func (b *Base) allocateFireStaff(w *World, emergencyID int, v *Vehicle, ticksLimit int, request bool) (int, []*Staff) {
	var allocated []*Staff
	needed := v.StaffCapacity
	needsLicense := v.Kind.NeedsLicense()
	for _, s := range b.crewByID() {
		if !s.CanBeAssignedWorking(w.Shift) || s.TicksAwayFromBase > ticksLimit || needed <= 0 {
			continue
		}
		badLicense := needsLicense && !s.HasLicense()
		if needed == 1 && badLicense {
			continue
		}
		allocated = append(allocated, s)
		needed--
		needsLicense = badLicense
		b.board(w, s, v, emergencyID)
	}
	if request {
		return 0, allocated
	}
	maxTicks := 0
	for _, s := range b.crewByID() {
		if !s.CanBeAssignedOnCall(w.Shift) || s.TicksAwayFromBase > ticksLimit || needed <= 0 {
			continue
		}
		badLicense := needsLicense && !s.HasLicense()
		if needed == 1 && badLicense {
			continue
		}
		allocated = append(allocated, s)
		needed--
		needsLicense = badLicense
		b.board(w, s, v, emergencyID)
		s.setReturningToBase()
		maxTicks = max(maxTicks, s.TicksAwayFromBase)
	}
	return maxTicks, allocated
}

func policeCantAllocate(needed int, badLicense, badHandler bool) bool {
	return (needed == 1 && badLicense) || (needed == 0 && badHandler)
}

func (b *Base) allocatePoliceStaff(w *World, emergencyID int, v *Vehicle, ticksLimit int, request bool) (int, []*Staff) {
	var allocated []*Staff
	needed := v.StaffCapacity
	needsLicense := v.Kind.NeedsLicense()
	needsHandler := v.Kind == K9PoliceCar
	if needsHandler {
		b.Dogs--
	}
	pass := func(onCall bool) int {
		maxTicks := 0
		for _, s := range b.crewByID() {
			if onCall {
				if !s.CanBeAssignedOnCall(w.Shift) {
					continue
				}
			} else if !s.CanBeAssignedWorking(w.Shift) {
				continue
			}
			isHandler := s.Role == DogHandler
			wanted := needed > 0
			if isHandler {
				wanted = needsHandler
			}
			if s.TicksAwayFromBase > ticksLimit || !wanted {
				continue
			}
			badLicense := needsLicense && !s.HasLicense()
			badHandler := needsHandler && !isHandler
			if policeCantAllocate(needed, badLicense, badHandler) {
				continue
			}
			allocated = append(allocated, s)
			if !isHandler {
				needed--
			}
			needsLicense = badLicense
			needsHandler = badHandler
			b.board(w, s, v, emergencyID)
			if onCall {
				s.setReturningToBase()
				maxTicks = max(maxTicks, s.TicksAwayFromBase)
			}
		}
		return maxTicks
	}
	pass(false)
	if request {
		return 0, allocated
	}
	return pass(true), allocated
}

func hospitalCantAllocate(needed int, badLicense, badDoctor, hasBoth bool) bool {
	if needed == 1 && (badLicense || badDoctor) {
		return true
	}
	return needed == 2 && !hasBoth && badLicense && badDoctor
}

func (b *Base) allocateHospitalStaff(w *World, emergencyID int, v *Vehicle, ticksLimit int, request bool) (int, []*Staff) {
	var allocated []*Staff
	needed := v.StaffCapacity
	needsLicense := v.Kind.NeedsLicense()
	needsDoctor := v.Kind == EmergencyDoctorCar
	if needsDoctor {
		b.Doctors--
	}
	hasBoth := b.anyCrew(func(s *Staff) bool {
		return s.CanBeAssigned(w.Shift) && s.HasLicense() && s.Role == EmergencyDoctor
	})
	pass := func(onCall bool) int {
		maxTicks := 0
		for _, s := range b.crewByID() {
			if onCall {
				if !s.CanBeAssignedOnCall(w.Shift) {
					continue
				}
			} else if !s.CanBeAssignedWorking(w.Shift) {
				continue
			}
			if s.TicksAwayFromBase > ticksLimit || needed <= 0 {
				continue
			}
			badLicense := needsLicense && !s.HasLicense()
			badDoctor := needsDoctor && s.Role != EmergencyDoctor
			if hospitalCantAllocate(needed, badLicense, badDoctor, hasBoth) {
				continue
			}
			allocated = append(allocated, s)
			needed--
			needsLicense = badLicense
			needsDoctor = badDoctor
			b.board(w, s, v, emergencyID)
			if onCall {
				s.setReturningToBase()
				maxTicks = max(maxTicks, s.TicksAwayFromBase)
			}
		}
		return maxTicks
	}
	pass(false)
	if request {
		return 0, allocated
	}
	return pass(true), allocated
}

// ReturnVehicle releases the vehicle's crew back to the base and restores
// the dog or doctor pool for the special cars.
func (b *Base) ReturnVehicle(w *World, v *Vehicle) {
	b.StaffNumber += v.StaffCapacity
	for _, staffID := range v.AssignedStaff {
		s := w.Staff(staffID)
		s.AllocatedTo = NoVehicle
		s.outputLog = true
	}
	v.AssignedStaff = nil
	switch v.Kind {
	case K9PoliceCar:
		b.Dogs++
	case EmergencyDoctorCar:
		b.Doctors++
	}
}
