package sim

import "sort"

// AssetInquiry is the outstanding demand of an emergency: a list of
// requirement vehicles (dummies carrying minimum capacities) plus the raw
// water, patient and criminal totals the committed fleet must cover.
type AssetInquiry struct {
	Vehicles  []Vehicle
	Water     int
	Patients  int
	Criminals int
}

// Split partitions the inquiry into the per-service inquiries for the
// police, hospital and fire services.
func (a AssetInquiry) Split() (police, ambulance, fire AssetInquiry) {
	byService := func(kind BaseKind) []Vehicle {
		var vs []Vehicle
		for _, v := range a.Vehicles {
			if v.Kind.Service() == kind {
				vs = append(vs, v)
			}
		}
		return vs
	}
	police = AssetInquiry{Vehicles: byService(PoliceStation), Criminals: a.Criminals}
	ambulance = AssetInquiry{Vehicles: byService(Hospital), Patients: a.Patients}
	fire = AssetInquiry{Vehicles: byService(FireStation), Water: a.Water}
	return police, ambulance, fire
}

// FulfillableWith reports whether the inquiry stays satisfiable if the given
// vehicle is committed: a water truck or police car may only be the last of
// its kind when its remaining load covers the open total.
func (a AssetInquiry) FulfillableWith(v *Vehicle) bool {
	switch v.Kind {
	case FireTruckWater:
		return a.countKind(FireTruckWater) > 1 || a.Water-v.Special <= 0
	case PoliceCar:
		return a.countKind(PoliceCar) > 1 || a.Criminals-v.Special <= 0
	default:
		return true
	}
}

// Equal reports whether two inquiries demand the same requirements and
// totals. Requirements are compared positionally; striking a requirement
// always changes the list.
func (a AssetInquiry) Equal(o AssetInquiry) bool {
	if a.Water != o.Water || a.Patients != o.Patients || a.Criminals != o.Criminals {
		return false
	}
	if len(a.Vehicles) != len(o.Vehicles) {
		return false
	}
	for i, req := range a.Vehicles {
		other := o.Vehicles[i]
		if req.Kind != other.Kind ||
			req.WaterCapacity != other.WaterCapacity ||
			req.LadderLength != other.LadderLength ||
			req.CriminalCapacity != other.CriminalCapacity ||
			req.PatientCapacity != other.PatientCapacity {
			return false
		}
	}
	return true
}

// CanHelp reports whether the vehicle covers any open requirement.
func (a AssetInquiry) CanHelp(v *Vehicle) bool {
	for _, req := range a.Vehicles {
		if v.FulfillsSpec(req) {
			return true
		}
	}
	return false
}

// RemainingAssets returns the inquiry left after committing the given
// vehicles: each vehicle strikes the first requirement it covers, and the
// totals shrink by the committed special capacities per service.
func (a AssetInquiry) RemainingAssets(vehicles []*Vehicle) AssetInquiry {
	remaining := make([]Vehicle, len(a.Vehicles))
	copy(remaining, a.Vehicles)
	for _, v := range vehicles {
		for i, req := range remaining {
			if v.FulfillsSpec(req) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return AssetInquiry{
		Vehicles:  remaining,
		Water:     max(0, a.Water-specialTotal(vehicles, FireStation)),
		Patients:  max(0, a.Patients-specialTotal(vehicles, Hospital)),
		Criminals: max(0, a.Criminals-specialTotal(vehicles, PoliceStation)),
	}
}

// Fulfill consumes the inquiry's totals from the committed vehicles, lowest
// id first per service.
func (a AssetInquiry) Fulfill(assets []*Vehicle) {
	ordered := make([]*Vehicle, len(assets))
	copy(ordered, assets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	water, criminals, patients := a.Water, a.Criminals, a.Patients
	for _, v := range ordered {
		switch v.Kind.Service() {
		case FireStation:
			water = v.RemoveCapacity(water)
		case PoliceStation:
			criminals = v.RemoveCapacity(criminals)
		case Hospital:
			patients = v.RemoveCapacity(patients)
		}
	}
}

// Fulfilled reports whether nothing is outstanding.
func (a AssetInquiry) Fulfilled() bool {
	return len(a.Vehicles) == 0 && a.Water <= 0 && a.Patients <= 0 && a.Criminals <= 0
}

// Fulfillable reports whether the open totals can still be carried by the
// requirement vehicles that remain.
func (a AssetInquiry) Fulfillable() bool {
	return (a.countKind(FireTruckWater) > 0 || a.Water <= 0) &&
		(a.countKind(PoliceCar) > 0 || a.Criminals <= 0)
}

func (a AssetInquiry) countKind(kind VehicleKind) int {
	n := 0
	for _, v := range a.Vehicles {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

func specialTotal(vehicles []*Vehicle, service BaseKind) int {
	total := 0
	for _, v := range vehicles {
		if v.Kind.Service() == service {
			total += v.Special
		}
	}
	return total
}

const (
	severity1Water = 1200
	severity2Water = 3000
	severity3Water = 5400

	severity2LadderHeight = 30
	severity3LadderHeight = 40

	severity2Criminals = 4
	severity3Criminals = 8

	severity3Patients = 5
)

func dummies(kinds ...VehicleKind) []Vehicle {
	vs := make([]Vehicle, 0, len(kinds))
	for _, k := range kinds {
		vs = append(vs, k.Dummy(0))
	}
	return vs
}

// NecessaryAssets returns the full demand of an emergency by kind and
// severity.
func NecessaryAssets(e *Emergency) AssetInquiry {
	switch e.Kind {
	case Fire:
		return necessaryFireAssets(e.Severity)
	case Crime:
		return necessaryCrimeAssets(e.Severity)
	case Medical:
		return necessaryMedicalAssets(e.Severity)
	default:
		return necessaryAccidentAssets(e.Severity)
	}
}

// OutstandingAssets returns the demand left after the already allocated
// vehicles.
func OutstandingAssets(e *Emergency, allocated []*Vehicle) AssetInquiry {
	return NecessaryAssets(e).RemainingAssets(allocated)
}

func necessaryFireAssets(severity int) AssetInquiry {
	switch severity {
	case 1:
		return AssetInquiry{
			Vehicles: dummies(FireTruckWater, FireTruckWater),
			Water:    severity1Water,
		}
	case 2:
		return AssetInquiry{
			Vehicles: append(
				dummies(FireTruckWater, FireTruckWater, FireTruckWater, FireTruckWater),
				FireTruckLadder.Dummy(severity2LadderHeight),
				FirefighterTransporter.Dummy(0),
				AmbulanceCar.Dummy(0),
			),
			Water:    severity2Water,
			Patients: 1,
		}
	case 3:
		return AssetInquiry{
			Vehicles: append(
				dummies(FireTruckWater, FireTruckWater, FireTruckWater,
					FireTruckWater, FireTruckWater, FireTruckWater),
				FireTruckLadder.Dummy(severity3LadderHeight),
				FireTruckLadder.Dummy(severity3LadderHeight),
				FirefighterTransporter.Dummy(0),
				FirefighterTransporter.Dummy(0),
				AmbulanceCar.Dummy(0),
				AmbulanceCar.Dummy(0),
				EmergencyDoctorCar.Dummy(0),
			),
			Water:    severity3Water,
			Patients: 2,
		}
	default:
		panic("fire severity out of range")
	}
}

func necessaryCrimeAssets(severity int) AssetInquiry {
	switch severity {
	case 1:
		return AssetInquiry{
			Vehicles:  dummies(PoliceCar),
			Criminals: 1,
		}
	case 2:
		return AssetInquiry{
			Vehicles: dummies(PoliceCar, PoliceCar, PoliceCar, PoliceCar,
				K9PoliceCar, AmbulanceCar),
			Criminals: severity2Criminals,
		}
	case 3:
		return AssetInquiry{
			Vehicles: dummies(PoliceCar, PoliceCar, PoliceCar, PoliceCar, PoliceCar, PoliceCar,
				PoliceMotorcycle, PoliceMotorcycle,
				K9PoliceCar, K9PoliceCar,
				AmbulanceCar, AmbulanceCar,
				FirefighterTransporter),
			Patients:  1,
			Criminals: severity3Criminals,
		}
	default:
		panic("crime severity out of range")
	}
}

func necessaryMedicalAssets(severity int) AssetInquiry {
	switch severity {
	case 1:
		return AssetInquiry{Vehicles: dummies(AmbulanceCar)}
	case 2:
		return AssetInquiry{
			Vehicles: dummies(AmbulanceCar, AmbulanceCar, EmergencyDoctorCar),
			Patients: 2,
		}
	case 3:
		return AssetInquiry{
			Vehicles: dummies(AmbulanceCar, AmbulanceCar, AmbulanceCar, AmbulanceCar, AmbulanceCar,
				EmergencyDoctorCar, EmergencyDoctorCar,
				FireTruckTechnical, FireTruckTechnical),
			Patients: severity3Patients,
		}
	default:
		panic("medical severity out of range")
	}
}

func necessaryAccidentAssets(severity int) AssetInquiry {
	switch severity {
	case 1:
		return AssetInquiry{Vehicles: dummies(FireTruckTechnical)}
	case 2:
		return AssetInquiry{
			Vehicles: dummies(FireTruckTechnical, FireTruckTechnical,
				PoliceMotorcycle, PoliceCar, AmbulanceCar),
			Patients: 1,
		}
	case 3:
		return AssetInquiry{
			Vehicles: dummies(FireTruckTechnical, FireTruckTechnical, FireTruckTechnical, FireTruckTechnical,
				PoliceMotorcycle, PoliceMotorcycle,
				PoliceCar, PoliceCar, PoliceCar, PoliceCar,
				AmbulanceCar, AmbulanceCar, AmbulanceCar,
				EmergencyDoctorCar),
			Patients: 2,
		}
	default:
		panic("accident severity out of range")
	}
}
