package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dispatch-sim/dispatch-sim/sim"
)

// AssetsConfig is the YAML schema of the bases, fleets and rosters input.
type AssetsConfig struct {
	Bases []BaseConfig `yaml:"bases"`
}

type BaseConfig struct {
	ID       int             `yaml:"id"`
	Type     string          `yaml:"type"`
	Location int             `yaml:"location"`
	Vehicles []VehicleConfig `yaml:"vehicles"`
	Staff    []StaffConfig   `yaml:"staff"`
}

type VehicleConfig struct {
	ID               int    `yaml:"id"`
	Type             string `yaml:"type"`
	StaffCapacity    int    `yaml:"staff_capacity"`
	Height           int    `yaml:"height"`
	WaterCapacity    int    `yaml:"water_capacity"`
	LadderLength     int    `yaml:"ladder_length"`
	CriminalCapacity int    `yaml:"criminal_capacity"`
}

type StaffConfig struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	License     string `yaml:"license"`
	DoubleShift bool   `yaml:"double_shift"`
	OnCall      bool   `yaml:"on_call"`
	TicksHome   int    `yaml:"ticks_home"`
}

var baseKinds = map[string]sim.BaseKind{
	"FIRE_STATION":   sim.FireStation,
	"POLICE_STATION": sim.PoliceStation,
	"HOSPITAL":       sim.Hospital,
}

var vehicleKinds = map[string]sim.VehicleKind{
	"POLICE_CAR":              sim.PoliceCar,
	"K9_POLICE_CAR":           sim.K9PoliceCar,
	"POLICE_MOTORCYCLE":       sim.PoliceMotorcycle,
	"FIRE_TRUCK_WATER":        sim.FireTruckWater,
	"FIRE_TRUCK_TECHNICAL":    sim.FireTruckTechnical,
	"FIRE_TRUCK_LADDER":       sim.FireTruckLadder,
	"FIREFIGHTER_TRANSPORTER": sim.FirefighterTransporter,
	"AMBULANCE":               sim.AmbulanceCar,
	"EMERGENCY_DOCTOR_CAR":    sim.EmergencyDoctorCar,
}

var staffRoles = map[string]sim.StaffRole{
	"FIREFIGHTER":      sim.Firefighter,
	"EMT":              sim.EMT,
	"EMERGENCY_DOCTOR": sim.EmergencyDoctor,
	"POLICE_OFFICER":   sim.PoliceOfficer,
	"DOG_HANDLER":      sim.DogHandler,
}

var licenses = map[string]sim.License{
	"NONE":       sim.LicenseNone,
	"TRUCK":      sim.LicenseTruck,
	"MOTORCYCLE": sim.LicenseMotorcycle,
	"AMBULANCE":  sim.LicenseAmbulance,
}

// rolesPerBase lists the roles a base kind may employ.
var rolesPerBase = map[sim.BaseKind]map[sim.StaffRole]bool{
	sim.FireStation:   {sim.Firefighter: true},
	sim.Hospital:      {sim.EMT: true, sim.EmergencyDoctor: true},
	sim.PoliceStation: {sim.PoliceOfficer: true, sim.DogHandler: true},
}

// forbiddenLicenses lists the licenses a role may not hold.
var forbiddenLicenses = map[sim.StaffRole]map[sim.License]bool{
	sim.Firefighter:     {sim.LicenseMotorcycle: true, sim.LicenseAmbulance: true},
	sim.EMT:             {sim.LicenseTruck: true, sim.LicenseMotorcycle: true},
	sim.EmergencyDoctor: {sim.LicenseTruck: true, sim.LicenseMotorcycle: true, sim.LicenseAmbulance: true},
	sim.DogHandler:      {sim.LicenseTruck: true, sim.LicenseMotorcycle: true, sim.LicenseAmbulance: true},
	sim.PoliceOfficer:   {sim.LicenseTruck: true, sim.LicenseAmbulance: true},
}

// ParseAssetsConfig unmarshals and validates an assets file against the map.
func ParseAssetsConfig(data []byte, m *MapConfig) (*AssetsConfig, error) {
	var cfg AssetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing assets config: %w", err)
	}
	if err := cfg.validate(m); err != nil {
		return nil, fmt.Errorf("invalid assets config: %w", err)
	}
	return &cfg, nil
}

// LoadAssetsConfig reads and parses the assets file at path.
func LoadAssetsConfig(path string, m *MapConfig) (*AssetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading assets config: %w", err)
	}
	return ParseAssetsConfig(data, m)
}

func (c *AssetsConfig) validate(m *MapConfig) error {
	if len(c.Bases) == 0 {
		return fmt.Errorf("no bases configured")
	}
	vertices := m.Vertices()
	baseIDs := map[int]bool{}
	vehicleIDs := map[int]bool{}
	staffIDs := map[int]bool{}
	for _, b := range c.Bases {
		kind, ok := baseKinds[b.Type]
		if !ok {
			return fmt.Errorf("base %d has unknown type %q", b.ID, b.Type)
		}
		if baseIDs[b.ID] {
			return fmt.Errorf("duplicate base id %d", b.ID)
		}
		baseIDs[b.ID] = true
		if !vertices[b.Location] {
			return fmt.Errorf("base %d sits at vertex %d, which is not on the map", b.ID, b.Location)
		}
		if len(b.Vehicles) == 0 {
			return fmt.Errorf("base %d has no vehicles", b.ID)
		}
		for _, v := range b.Vehicles {
			if err := validateVehicle(v, b, kind, vehicleIDs); err != nil {
				return err
			}
		}
		for _, s := range b.Staff {
			if err := validateStaff(s, b, kind, staffIDs); err != nil {
				return err
			}
		}
		if err := validateStaffing(b, kind); err != nil {
			return err
		}
	}
	return nil
}

func validateVehicle(v VehicleConfig, b BaseConfig, baseKind sim.BaseKind, seen map[int]bool) error {
	kind, ok := vehicleKinds[v.Type]
	if !ok {
		return fmt.Errorf("vehicle %d has unknown type %q", v.ID, v.Type)
	}
	if seen[v.ID] {
		return fmt.Errorf("duplicate vehicle id %d", v.ID)
	}
	seen[v.ID] = true
	if kind.Service() != baseKind {
		return fmt.Errorf("vehicle %d of type %s does not belong to a %s", v.ID, v.Type, b.Type)
	}
	if v.StaffCapacity <= 0 {
		return fmt.Errorf("vehicle %d has non-positive staff capacity %d", v.ID, v.StaffCapacity)
	}
	if v.Height <= 0 {
		return fmt.Errorf("vehicle %d has non-positive height %d", v.ID, v.Height)
	}
	switch kind {
	case sim.FireTruckWater:
		if v.WaterCapacity <= 0 {
			return fmt.Errorf("water truck %d has no water capacity", v.ID)
		}
	case sim.FireTruckLadder:
		if v.LadderLength <= 0 {
			return fmt.Errorf("ladder truck %d has no ladder length", v.ID)
		}
	case sim.PoliceCar:
		if v.CriminalCapacity <= 0 {
			return fmt.Errorf("police car %d has no criminal capacity", v.ID)
		}
	}
	return nil
}

func validateStaff(s StaffConfig, b BaseConfig, baseKind sim.BaseKind, seen map[int]bool) error {
	role, ok := staffRoles[s.Role]
	if !ok {
		return fmt.Errorf("staff %d has unknown role %q", s.ID, s.Role)
	}
	license, ok := licenses[s.License]
	if !ok {
		return fmt.Errorf("staff %d has unknown license %q", s.ID, s.License)
	}
	if seen[s.ID] {
		return fmt.Errorf("duplicate staff id %d", s.ID)
	}
	seen[s.ID] = true
	if s.Name == "" {
		return fmt.Errorf("staff %d has no name", s.ID)
	}
	if !rolesPerBase[baseKind][role] {
		return fmt.Errorf("staff %d with role %s cannot work at a %s", s.ID, s.Role, b.Type)
	}
	if forbiddenLicenses[role][license] {
		return fmt.Errorf("staff %d with role %s may not hold a %s license", s.ID, s.Role, s.License)
	}
	if s.DoubleShift && s.OnCall {
		return fmt.Errorf("staff %d is both double-shift and on-call", s.ID)
	}
	if s.TicksHome < 0 {
		return fmt.Errorf("staff %d has negative commute %d", s.ID, s.TicksHome)
	}
	return nil
}

// validateStaffing checks that the roster can man every vehicle of the base
// at least on paper: enough seat fillers, a license holder where required,
// and a handler or doctor for the special cars.
func validateStaffing(b BaseConfig, baseKind sim.BaseKind) error {
	seatFillers, licensed, handlers, doctors := 0, 0, 0, 0
	for _, s := range b.Staff {
		role := staffRoles[s.Role]
		if role != sim.DogHandler && role != sim.EmergencyDoctor {
			seatFillers++
		}
		if licenses[s.License] != sim.LicenseNone {
			licensed++
		}
		if role == sim.DogHandler {
			handlers++
		}
		if role == sim.EmergencyDoctor {
			doctors++
		}
	}
	for _, v := range b.Vehicles {
		kind := vehicleKinds[v.Type]
		if v.StaffCapacity > seatFillers {
			return fmt.Errorf("base %d cannot seat vehicle %d: %d crew needed, %d available",
				b.ID, v.ID, v.StaffCapacity, seatFillers)
		}
		if kind.NeedsLicense() && licensed == 0 {
			return fmt.Errorf("base %d has no licensed driver for vehicle %d", b.ID, v.ID)
		}
		if kind == sim.K9PoliceCar && handlers == 0 {
			return fmt.Errorf("base %d has no dog handler for vehicle %d", b.ID, v.ID)
		}
		if kind == sim.EmergencyDoctorCar && doctors == 0 {
			return fmt.Errorf("base %d has no emergency doctor for vehicle %d", b.ID, v.ID)
		}
	}
	return nil
}

// Build turns the config into bases, vehicles and staff. The dog and doctor
// pools are sized from the roster; everyone starts on a working early shift.
func (c *AssetsConfig) Build() ([]*sim.Base, []*sim.Vehicle, []*sim.Staff) {
	var bases []*sim.Base
	var vehicles []*sim.Vehicle
	var staff []*sim.Staff
	for _, bc := range c.Bases {
		base := &sim.Base{
			ID:       bc.ID,
			Kind:     baseKinds[bc.Type],
			Location: sim.Node(bc.Location),
		}
		for _, vc := range bc.Vehicles {
			v := buildVehicle(vc, base)
			base.Vehicles = append(base.Vehicles, v)
			vehicles = append(vehicles, v)
		}
		for _, sc := range bc.Staff {
			s := buildStaff(sc, base)
			base.Crew = append(base.Crew, s)
			staff = append(staff, s)
			switch s.Role {
			case sim.DogHandler:
				base.Dogs++
			case sim.EmergencyDoctor:
				base.Doctors++
			default:
				base.StaffNumber++
			}
		}
		bases = append(bases, base)
	}
	return bases, vehicles, staff
}

func buildVehicle(vc VehicleConfig, base *sim.Base) *sim.Vehicle {
	kind := vehicleKinds[vc.Type]
	v := &sim.Vehicle{
		ID:               vc.ID,
		BaseID:           base.ID,
		Kind:             kind,
		StaffCapacity:    vc.StaffCapacity,
		Height:           vc.Height,
		WaterCapacity:    vc.WaterCapacity,
		LadderLength:     vc.LadderLength,
		CriminalCapacity: vc.CriminalCapacity,
		Home:             base.Location,
		Location:         base.Location,
		EmergencyID:      sim.NoEmergency,
		AtTarget:         true,
	}
	switch kind {
	case sim.FireTruckWater:
		v.Special = v.WaterCapacity
	case sim.PoliceCar:
		v.Special = v.CriminalCapacity
	case sim.AmbulanceCar, sim.EmergencyDoctorCar:
		v.PatientCapacity = 1
		v.Special = 1
	}
	return v
}

func buildStaff(sc StaffConfig, base *sim.Base) *sim.Staff {
	next := sim.Shift{Type: sim.LateShift}
	if sc.DoubleShift {
		next.Working = true
	}
	return &sim.Staff{
		ID:          sc.ID,
		Name:        sc.Name,
		BaseID:      base.ID,
		Role:        staffRoles[sc.Role],
		License:     licenses[sc.License],
		DoubleShift: sc.DoubleShift,
		OnCallRota:  sc.OnCall,
		TicksHome:   sc.TicksHome,
		Current:     sim.Shift{Type: sim.EarlyShift, Working: true},
		Next:        next,
		AllocatedTo: sim.NoVehicle,
		AtBase:      true,
	}
}
