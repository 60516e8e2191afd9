package sim

import "github.com/dispatch-sim/dispatch-sim/sim/journal"

// NoVehicle marks a staff member without a vehicle allocation.
const NoVehicle = -1

// ShiftLength is the number of ticks per shift window.
const ShiftLength = 10

// shiftEnd is the tick offset within a window at which shifts rotate.
const shiftEnd = 9

// ShiftType enumerates the three daily shift windows.
type ShiftType int

const (
	EarlyShift ShiftType = iota
	LateShift
	NightShift
)

func (t ShiftType) String() string {
	switch t {
	case EarlyShift:
		return "EARLY"
	case LateShift:
		return "LATE"
	default:
		return "NIGHT"
	}
}

// Next returns the shift window following this one.
func (t ShiftType) Next() ShiftType {
	switch t {
	case EarlyShift:
		return LateShift
	case LateShift:
		return NightShift
	default:
		return EarlyShift
	}
}

// Shift is one entry of a staff member's rota: the window and whether the
// member works or is on call during it.
type Shift struct {
	Type    ShiftType
	Working bool
	OnCall  bool
}

// StaffRole enumerates the staff jobs.
type StaffRole int

const (
	Firefighter StaffRole = iota
	EMT
	EmergencyDoctor
	PoliceOfficer
	DogHandler
)

var staffRoleNames = map[StaffRole]string{
	Firefighter:     "FIREFIGHTER",
	EMT:             "EMT",
	EmergencyDoctor: "EMERGENCY_DOCTOR",
	PoliceOfficer:   "POLICE_OFFICER",
	DogHandler:      "DOG_HANDLER",
}

func (r StaffRole) String() string {
	if name, ok := staffRoleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// License enumerates the driving licenses a staff member can hold.
type License int

const (
	LicenseNone License = iota
	LicenseTruck
	LicenseMotorcycle
	LicenseAmbulance
)

// Staff is one member of a base's crew.
type Staff struct {
	ID      int
	Name    string
	BaseID  int
	Role    StaffRole
	License License

	// DoubleShift and OnCallRota select the rotation policy; at most one
	// is set.
	DoubleShift bool
	OnCallRota  bool

	// TicksHome is the commute duration between base and home.
	TicksHome int

	Current Shift
	Next    Shift

	// AllocatedTo is the id of the vehicle the member is on, or NoVehicle.
	AllocatedTo int

	TicksAwayFromBase int
	AtBase            bool
	GoingHome         bool
	AtHome            bool
	ReturningToBase   bool

	Unavailable bool
	Sick        bool

	TicksSpentAtEmergencies int
	WorkedTicksThisShift    int
	LastTickWorked          bool

	wasUnavailable bool
	outputLog      bool
}

// HasLicense reports whether the member holds any driving license.
func (s *Staff) HasLicense() bool {
	return s.License != LicenseNone
}

func (s *Staff) available(global ShiftType) bool {
	return !s.Unavailable && s.AllocatedTo == NoVehicle && s.Current.Type == global
}

// CanBeAssignedWorking reports whether the member can board a vehicle during
// a working shift: present at the base, or just back from the commute.
func (s *Staff) CanBeAssignedWorking(global ShiftType) bool {
	return s.available(global) && s.Current.Working &&
		(s.AtBase || (s.ReturningToBase && s.TicksAwayFromBase == 0))
}

// CanBeAssignedOnCall reports whether the member can be called in from home.
func (s *Staff) CanBeAssignedOnCall(global ShiftType) bool {
	return s.available(global) && s.Current.OnCall
}

// CanBeAssigned reports whether the member can board a vehicle at all.
func (s *Staff) CanBeAssigned(global ShiftType) bool {
	return s.CanBeAssignedWorking(global) || s.CanBeAssignedOnCall(global)
}

func (s *Staff) setAtBase() {
	s.AtBase = true
	s.GoingHome = false
	s.AtHome = false
	s.ReturningToBase = false
}

func (s *Staff) setAtHome() {
	s.AtBase = false
	s.GoingHome = false
	s.AtHome = true
	s.ReturningToBase = false
}

func (s *Staff) setReturningHome() {
	s.AtBase = false
	s.GoingHome = true
	s.AtHome = false
	s.ReturningToBase = false
}

func (s *Staff) setReturningToBase() {
	s.AtBase = false
	s.GoingHome = false
	s.AtHome = false
	s.ReturningToBase = true
}

// UpdateShifts rotates the shift pair at a shift boundary. The current shift
// becomes the old next shift and the new next shift follows the rotation
// policy: double-shift and plain staff alternate the working flag, on-call
// staff cycle working, free and on-call windows.
func (s *Staff) UpdateShifts(global ShiftType) {
	if s.Current.Type != global {
		return
	}
	old := s.Current
	s.Current = s.Next
	next := Shift{Type: s.Current.Type.Next()}
	if s.OnCallRota {
		switch {
		case old.Working:
			// rest after a worked shift
		case old.OnCall:
			next.Working = true
		default:
			next.OnCall = true
		}
	} else {
		next.Working = !old.Working
	}
	s.Next = next
}

// UpdateWhereGoing decides whether the member starts commuting. A member
// heads back to base when the coming shift is a working one and the commute
// would not finish before the window ends, and heads home when neither the
// current nor the coming shift requires presence.
func (s *Staff) UpdateWhereGoing(tick int) {
	if s.Unavailable || s.AllocatedTo != NoVehicle {
		return
	}
	if s.Next.Working && tick%ShiftLength+s.TicksAwayFromBase >= ShiftLength {
		s.setReturningToBase()
	} else if !s.Next.Working && !s.Current.Working {
		s.setReturningHome()
	}
}

// UpdatePosition advances the commute by one tick, snapping to atHome or
// atBase on arrival. A member on a vehicle does not commute.
func (s *Staff) UpdatePosition() {
	if s.AllocatedTo != NoVehicle {
		return
	}
	if s.GoingHome && s.TicksAwayFromBase < s.TicksHome {
		s.TicksAwayFromBase++
		if s.TicksAwayFromBase == s.TicksHome {
			s.setAtHome()
		}
		return
	}
	if s.ReturningToBase && s.TicksAwayFromBase > 0 {
		s.TicksAwayFromBase--
		if s.TicksAwayFromBase == 0 {
			s.setAtBase()
		}
	}
}

// CountTicks accrues the worked-tick counters for a member riding a vehicle
// that is committed to an emergency.
func (s *Staff) CountTicks(w *World) {
	if s.AllocatedTo != NoVehicle && w.Vehicle(s.AllocatedTo).EmergencyID != NoEmergency {
		w.Journal.AddTickWorked()
		s.WorkedTicksThisShift++
		s.LastTickWorked = true
	}
	if s.Unavailable {
		s.wasUnavailable = true
	}
}

// IncreaseSpentAtEmergency accrues the at-emergency counter while the
// member's vehicle stands at its target.
func (s *Staff) IncreaseSpentAtEmergency(w *World) {
	if s.AllocatedTo != NoVehicle && w.Vehicle(s.AllocatedTo).AtTarget {
		s.TicksSpentAtEmergencies++
	}
}

// UpdateAndCount closes the member's bookkeeping at a shift boundary: a
// working shift without an unavailability counts as worked.
func (s *Staff) UpdateAndCount(j *journal.Journal) {
	if s.Current.Working && !s.wasUnavailable {
		j.AddShiftWorked()
	}
	s.wasUnavailable = false
	s.WorkedTicksThisShift = 0
}

// LogReturn records the member being back at base after a release.
func (s *Staff) LogReturn(j *journal.Journal) {
	if s.outputLog && s.TicksAwayFromBase == 0 {
		j.StaffReturn(s.Name, s.ID)
		s.outputLog = false
	}
}

// LogShiftChange records the shift transitions at a shift boundary.
func (s *Staff) LogShiftChange(j *journal.Journal, global ShiftType) {
	if s.Current.Type != global {
		return
	}
	if s.Current.Working {
		j.ShiftEnd(s.Name, s.ID, s.Current.Type.String())
	}
	if s.Next.Working {
		j.ShiftStart(s.Name, s.ID, s.Next.Type.String())
	}
	if s.Next.OnCall {
		j.StaffOnCall(s.Name, s.ID)
	}
	if s.Current.OnCall && !s.Next.OnCall {
		j.StaffNotOnCall(s.Name, s.ID)
	}
}
