package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dispatch-sim/dispatch-sim/sim"
)

// ScenarioConfig is the YAML schema of the emergencies and events input.
type ScenarioConfig struct {
	MaxTicks    int               `yaml:"max_ticks"`
	Emergencies []EmergencyConfig `yaml:"emergencies"`
	Events      []EventConfig     `yaml:"events"`
}

type EmergencyConfig struct {
	ID           int    `yaml:"id"`
	Tick         int    `yaml:"tick"`
	Village      string `yaml:"village"`
	Road         string `yaml:"road"`
	Type         string `yaml:"type"`
	Severity     int    `yaml:"severity"`
	HandlingTime int    `yaml:"handling_time"`
	MaxDuration  int    `yaml:"max_duration"`
}

// EventConfig covers every event type; the fields beyond the common four are
// read per type.
type EventConfig struct {
	ID       int    `yaml:"id"`
	Tick     int    `yaml:"tick"`
	Duration int    `yaml:"duration"`
	Type     string `yaml:"type"`

	Village      string   `yaml:"village"`
	Road         string   `yaml:"road"`
	Factor       int      `yaml:"factor"`
	OneWayStreet bool     `yaml:"one_way_street"`
	RoadTypes    []string `yaml:"road_types"`
	Vehicle      int      `yaml:"vehicle"`
	Staff        int      `yaml:"staff"`
	MinTicks     int      `yaml:"min_ticks"`
}

var emergencyKinds = map[string]sim.EmergencyKind{
	"FIRE":     sim.Fire,
	"CRIME":    sim.Crime,
	"MEDICAL":  sim.Medical,
	"ACCIDENT": sim.Accident,
}

const (
	eventTrafficJam         = "TRAFFIC_JAM"
	eventConstructionSite   = "CONSTRUCTION_SITE"
	eventRoadClosure        = "ROAD_CLOSURE"
	eventRushHour           = "RUSH_HOUR"
	eventVehicleUnavailable = "VEHICLE_UNAVAILABLE"
	eventVacation           = "VACATION"
	eventSickness           = "SICKNESS"
)

// ParseScenarioConfig unmarshals and validates a scenario file against the
// map and assets it plays on.
func ParseScenarioConfig(data []byte, m *MapConfig, a *AssetsConfig) (*ScenarioConfig, error) {
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	if err := cfg.validate(m, a); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}
	return &cfg, nil
}

// LoadScenarioConfig reads and parses the scenario file at path.
func LoadScenarioConfig(path string, m *MapConfig, a *AssetsConfig) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	return ParseScenarioConfig(data, m, a)
}

type roadKey struct{ village, name string }

func (c *ScenarioConfig) validate(m *MapConfig, a *AssetsConfig) error {
	if c.MaxTicks <= 0 {
		return fmt.Errorf("max_ticks must be positive, got %d", c.MaxTicks)
	}
	if len(c.Emergencies) == 0 {
		return fmt.Errorf("scenario has no emergencies")
	}
	roads := map[roadKey]bool{}
	for _, r := range m.Roads {
		roads[roadKey{r.Village, r.Name}] = true
	}
	vehicles := map[int]bool{}
	staff := map[int]bool{}
	for _, b := range a.Bases {
		for _, v := range b.Vehicles {
			vehicles[v.ID] = true
		}
		for _, s := range b.Staff {
			staff[s.ID] = true
		}
	}

	emergencyIDs := map[int]bool{}
	for _, e := range c.Emergencies {
		if emergencyIDs[e.ID] {
			return fmt.Errorf("duplicate emergency id %d", e.ID)
		}
		emergencyIDs[e.ID] = true
		if _, ok := emergencyKinds[e.Type]; !ok {
			return fmt.Errorf("emergency %d has unknown type %q", e.ID, e.Type)
		}
		if !roads[roadKey{e.Village, e.Road}] {
			return fmt.Errorf("emergency %d sits on unknown road %s %s", e.ID, e.Village, e.Road)
		}
		if e.Tick < 0 {
			return fmt.Errorf("emergency %d breaks out at negative tick %d", e.ID, e.Tick)
		}
		if e.Severity < 1 || e.Severity > 3 {
			return fmt.Errorf("emergency %d has severity %d, want 1 to 3", e.ID, e.Severity)
		}
		if e.HandlingTime <= 0 {
			return fmt.Errorf("emergency %d has non-positive handling time %d", e.ID, e.HandlingTime)
		}
		if e.MaxDuration <= e.HandlingTime {
			return fmt.Errorf("emergency %d cannot be handled: max duration %d, handling time %d",
				e.ID, e.MaxDuration, e.HandlingTime)
		}
	}

	eventIDs := map[int]bool{}
	for _, ev := range c.Events {
		if eventIDs[ev.ID] {
			return fmt.Errorf("duplicate event id %d", ev.ID)
		}
		eventIDs[ev.ID] = true
		if ev.Tick < 0 {
			return fmt.Errorf("event %d starts at negative tick %d", ev.ID, ev.Tick)
		}
		if ev.Duration <= 0 {
			return fmt.Errorf("event %d has non-positive duration %d", ev.ID, ev.Duration)
		}
		switch ev.Type {
		case eventTrafficJam, eventConstructionSite:
			if !roads[roadKey{ev.Village, ev.Road}] {
				return fmt.Errorf("event %d targets unknown road %s %s", ev.ID, ev.Village, ev.Road)
			}
			if ev.Factor <= 1 {
				return fmt.Errorf("event %d has factor %d, want greater than 1", ev.ID, ev.Factor)
			}
		case eventRoadClosure:
			if !roads[roadKey{ev.Village, ev.Road}] {
				return fmt.Errorf("event %d targets unknown road %s %s", ev.ID, ev.Village, ev.Road)
			}
		case eventRushHour:
			if ev.Factor <= 1 {
				return fmt.Errorf("event %d has factor %d, want greater than 1", ev.ID, ev.Factor)
			}
			if len(ev.RoadTypes) == 0 {
				return fmt.Errorf("rush hour %d covers no road types", ev.ID)
			}
			seen := map[string]bool{}
			for _, t := range ev.RoadTypes {
				if _, ok := roadKinds[t]; !ok {
					return fmt.Errorf("rush hour %d covers unknown road type %q", ev.ID, t)
				}
				if seen[t] {
					return fmt.Errorf("rush hour %d lists road type %s twice", ev.ID, t)
				}
				seen[t] = true
			}
		case eventVehicleUnavailable:
			if !vehicles[ev.Vehicle] {
				return fmt.Errorf("event %d takes out unknown vehicle %d", ev.ID, ev.Vehicle)
			}
		case eventVacation:
			if !staff[ev.Staff] {
				return fmt.Errorf("event %d sends unknown staff %d on vacation", ev.ID, ev.Staff)
			}
		case eventSickness:
			if ev.MinTicks <= 0 {
				return fmt.Errorf("sickness %d has non-positive threshold %d", ev.ID, ev.MinTicks)
			}
		default:
			return fmt.Errorf("event %d has unknown type %q", ev.ID, ev.Type)
		}
	}
	return nil
}

// Build turns the config into emergencies and events bound to the given
// roads.
func (c *ScenarioConfig) Build(roads []*sim.Road) ([]*sim.Emergency, []sim.Event) {
	index := map[roadKey]*sim.Road{}
	for _, r := range roads {
		index[roadKey{r.Village, r.Name}] = r
	}
	emergencies := make([]*sim.Emergency, 0, len(c.Emergencies))
	for _, ec := range c.Emergencies {
		emergencies = append(emergencies, &sim.Emergency{
			ID:           ec.ID,
			Tick:         ec.Tick,
			Road:         index[roadKey{ec.Village, ec.Road}],
			Kind:         emergencyKinds[ec.Type],
			Severity:     ec.Severity,
			HandlingTime: ec.HandlingTime,
			MaxDuration:  ec.MaxDuration,
		})
	}
	events := make([]sim.Event, 0, len(c.Events))
	for _, ev := range c.Events {
		road := index[roadKey{ev.Village, ev.Road}]
		switch ev.Type {
		case eventTrafficJam:
			events = append(events, sim.NewTrafficJam(ev.ID, ev.Tick, ev.Duration, road, ev.Factor))
		case eventConstructionSite:
			events = append(events, sim.NewConstructionSite(ev.ID, ev.Tick, ev.Duration, road, ev.Factor, ev.OneWayStreet))
		case eventRoadClosure:
			events = append(events, sim.NewRoadClosure(ev.ID, ev.Tick, ev.Duration, road))
		case eventRushHour:
			kinds := make([]sim.RoadKind, 0, len(ev.RoadTypes))
			for _, t := range ev.RoadTypes {
				kinds = append(kinds, roadKinds[t])
			}
			events = append(events, sim.NewRushHour(ev.ID, ev.Tick, ev.Duration, kinds, ev.Factor))
		case eventVehicleUnavailable:
			events = append(events, sim.NewVehicleUnavailable(ev.ID, ev.Tick, ev.Duration, ev.Vehicle))
		case eventVacation:
			events = append(events, sim.NewVacation(ev.ID, ev.Tick, ev.Duration, ev.Staff))
		case eventSickness:
			events = append(events, sim.NewSickness(ev.ID, ev.Tick, ev.Duration, ev.MinTicks))
		}
	}
	return emergencies, events
}
