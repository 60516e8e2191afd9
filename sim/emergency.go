package sim

// EmergencyKind enumerates the emergency categories.
type EmergencyKind int

const (
	Fire EmergencyKind = iota
	Crime
	Medical
	Accident
)

var emergencyKindNames = map[EmergencyKind]string{
	Fire:     "FIRE",
	Crime:    "CRIME",
	Medical:  "MEDICAL",
	Accident: "ACCIDENT",
}

func (k EmergencyKind) String() string {
	if name, ok := emergencyKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// ResponsibleBase is the base kind that takes intake for the emergency kind.
func (k EmergencyKind) ResponsibleBase() BaseKind {
	switch k {
	case Crime:
		return PoliceStation
	case Medical:
		return Hospital
	default:
		return FireStation
	}
}

// Emergency is one incident on a road. HandlingTime counts down while the
// incident is being handled; MaxDuration counts down every tick regardless.
type Emergency struct {
	ID       int
	Tick     int
	Road     *Road
	Kind     EmergencyKind
	Severity int

	HandlingTime int
	MaxDuration  int

	HandlingStarted bool
	Done            bool
}
