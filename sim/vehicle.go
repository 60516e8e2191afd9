package sim

// Speed is the distance every vehicle covers per tick.
const Speed = 10

// RefillRate is the amount of water a water truck regains per tick at home.
const RefillRate = 300

// NoEmergency marks a vehicle without an emergency assignment.
const NoEmergency = -1

// VehicleKind enumerates the vehicle types of the three services.
type VehicleKind int

const (
	PoliceCar VehicleKind = iota
	K9PoliceCar
	PoliceMotorcycle
	FireTruckWater
	FireTruckTechnical
	FireTruckLadder
	FirefighterTransporter
	AmbulanceCar
	EmergencyDoctorCar
)

var vehicleKindNames = map[VehicleKind]string{
	PoliceCar:              "POLICE_CAR",
	K9PoliceCar:            "K9_POLICE_CAR",
	PoliceMotorcycle:       "POLICE_MOTORCYCLE",
	FireTruckWater:         "FIRE_TRUCK_WATER",
	FireTruckTechnical:     "FIRE_TRUCK_TECHNICAL",
	FireTruckLadder:        "FIRE_TRUCK_LADDER",
	FirefighterTransporter: "FIREFIGHTER_TRANSPORTER",
	AmbulanceCar:           "AMBULANCE",
	EmergencyDoctorCar:     "EMERGENCY_DOCTOR_CAR",
}

func (k VehicleKind) String() string {
	if name, ok := vehicleKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Service maps a vehicle kind to the base kind operating it.
func (k VehicleKind) Service() BaseKind {
	switch k {
	case PoliceCar, K9PoliceCar, PoliceMotorcycle:
		return PoliceStation
	case AmbulanceCar, EmergencyDoctorCar:
		return Hospital
	default:
		return FireStation
	}
}

// NeedsLicense reports whether manning the kind requires a licensed driver.
func (k VehicleKind) NeedsLicense() bool {
	switch k {
	case PoliceMotorcycle, FireTruckWater, FireTruckTechnical, FireTruckLadder, AmbulanceCar:
		return true
	default:
		return false
	}
}

// Dummy returns a requirement vehicle of the kind. The parameter fills the
// kind's variable capacity: criminals for police cars, water for water
// trucks, ladder length for ladder trucks.
func (k VehicleKind) Dummy(parameter int) Vehicle {
	v := Vehicle{ID: -1, BaseID: -1, Kind: k, EmergencyID: NoEmergency, AtTarget: true}
	switch k {
	case PoliceCar:
		v.CriminalCapacity = parameter
	case FireTruckLadder:
		v.LadderLength = parameter
	case AmbulanceCar:
		v.PatientCapacity = 1
	}
	return v
}

// Vehicle is a single asset of a base. One struct covers all kinds; the
// capacity fields a kind does not use stay zero.
type Vehicle struct {
	ID            int
	BaseID        int
	Kind          VehicleKind
	StaffCapacity int
	Height        int

	WaterCapacity    int
	LadderLength     int
	CriminalCapacity int
	PatientCapacity  int

	// Special is the live depletable capacity of the kind: water, patient
	// slots or criminal slots.
	Special int

	Home     Location
	Location Location
	Route    Route

	EmergencyID   int
	Broken        bool
	InMaintenance bool
	AtTarget      bool
	Manning       int
	ReturnFlag    bool

	// AssignedStaff holds the ids of the staff currently on board.
	AssignedStaff []int

	handlingCriminal bool
}

// Ready reports whether the vehicle's special capacity allows a dispatch. A
// water truck away from home stays usable while it has any water; at home it
// must be full. Police cars follow the same rule for criminal slots and
// ambulances need a free patient slot.
func (v *Vehicle) Ready() bool {
	switch v.Kind {
	case FireTruckWater:
		return (!v.AtHome() && v.Special > 0) || (v.AtHome() && v.Special == v.WaterCapacity)
	case PoliceCar:
		return (!v.AtHome() && v.Special > 0) || (v.AtHome() && v.Special == v.CriminalCapacity)
	case AmbulanceCar:
		return v.Special > 0
	default:
		return true
	}
}

// Allocatable reports whether the vehicle may be committed to an emergency.
func (v *Vehicle) Allocatable() bool {
	return v.Ready() && !v.Broken && !v.InMaintenance
}

// AtHome reports whether the vehicle stands at its base.
func (v *Vehicle) AtHome() bool {
	return v.Location == v.Home
}

// Target is the location the vehicle is heading for: its emergency's road,
// or its base when unassigned.
func (v *Vehicle) Target(w *World) Location {
	if v.EmergencyID != NoEmergency {
		return w.Emergency(v.EmergencyID).Road
	}
	return v.Home
}

// TimeToTarget is the remaining travel time of the current route in ticks.
func (v *Vehicle) TimeToTarget() int {
	return ceilDiv(v.Route.Length(), Speed)
}

// FulfillsSpec reports whether this vehicle covers the requirement vehicle:
// same kind, and every capacity of the requirement within this vehicle's.
func (v *Vehicle) FulfillsSpec(req Vehicle) bool {
	return v.Kind == req.Kind &&
		req.WaterCapacity <= v.WaterCapacity &&
		req.LadderLength <= v.LadderLength &&
		req.CriminalCapacity <= v.CriminalCapacity &&
		req.PatientCapacity <= v.PatientCapacity
}

// RemoveCapacity consumes up to needed units of special capacity and returns
// what could not be covered.
func (v *Vehicle) RemoveCapacity(needed int) int {
	used := min(v.Special, needed)
	v.Special -= used
	return needed - used
}

// Restore refills the vehicle's special capacity at home. Water trucks
// refill gradually, ambulances reset at once, and police cars need every
// second home tick to hand over criminals before resetting.
func (v *Vehicle) Restore() {
	switch v.Kind {
	case FireTruckWater:
		if v.Special < v.WaterCapacity {
			v.Special = min(v.WaterCapacity, v.Special+RefillRate)
		}
	case PoliceCar:
		if !v.Ready() {
			v.handlingCriminal = !v.handlingCriminal
			if !v.handlingCriminal {
				v.Special = v.CriminalCapacity
			}
		}
	case AmbulanceCar:
		if !v.Ready() {
			v.Special = v.PatientCapacity
		}
	}
}

// Update advances the vehicle by one tick. A vehicle still being manned does
// not move. Reports whether the vehicle arrived at its target this tick.
func (v *Vehicle) Update() bool {
	if v.Manning > 0 {
		v.Manning--
		return false
	}
	v.Route = v.Route.Advance(Speed)
	v.Location = v.Route.Start
	if v.Route.Reached() {
		if !v.AtTarget {
			v.AtTarget = true
			return true
		}
		if v.AtHome() {
			v.Restore()
		}
	}
	return false
}

// ReturnToBase sends the vehicle home after an assigned staff member fell
// sick. A vehicle whose emergency is already being handled stays; otherwise
// the allocation is canceled, the worked ticks of the whole crew are
// retracted and the vehicle is routed back to its base.
func (v *Vehicle) ReturnToBase(w *World, nav *Navigation) {
	if !v.ReturnFlag {
		return
	}
	if v.EmergencyID != NoEmergency && w.Emergency(v.EmergencyID).HandlingStarted {
		return
	}
	v.Route = nav.ShortestRoute(v.Location, w.Base(v.BaseID).Location, v)
	canceled := false
	for _, staffID := range v.AssignedStaff {
		s := w.Staff(staffID)
		if !s.Sick {
			continue
		}
		if v.EmergencyID != NoEmergency {
			w.Journal.AllocationCanceled(v.ID, v.EmergencyID, s.Name, s.ID)
			w.Journal.Return(v.ID, max(1, v.TimeToTarget()))
		}
		canceled = true
		break
	}
	if canceled {
		for _, staffID := range v.AssignedStaff {
			s := w.Staff(staffID)
			w.Journal.RemoveTickWorked()
			s.WorkedTicksThisShift--
			s.LastTickWorked = false
		}
	}
	v.EmergencyID = NoEmergency
	v.AtTarget = false
	v.Manning = 0
	v.ReturnFlag = false
}

// ceilDiv rounds a/b up. The quotient-and-remainder form keeps saturated
// route lengths saturated instead of wrapping.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
