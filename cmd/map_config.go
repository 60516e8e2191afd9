package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dispatch-sim/dispatch-sim/sim"
	"github.com/dispatch-sim/dispatch-sim/sim/graph"
)

// MapConfig is the YAML schema of the road map input.
type MapConfig struct {
	Roads []RoadConfig `yaml:"roads"`
}

type RoadConfig struct {
	Village     string `yaml:"village"`
	Name        string `yaml:"name"`
	Source      int    `yaml:"source"`
	Target      int    `yaml:"target"`
	Length      int    `yaml:"length"`
	HeightLimit int    `yaml:"height_limit"`
	Type        string `yaml:"type"`
	OneWay      bool   `yaml:"one_way"`
}

var roadKinds = map[string]sim.RoadKind{
	"MAIN_STREET": sim.MainStreet,
	"SIDE_STREET": sim.SideStreet,
	"COUNTY_ROAD": sim.CountyRoad,
}

// ParseMapConfig unmarshals and validates a map file. The village field of a
// county road names the county it belongs to.
func ParseMapConfig(data []byte) (*MapConfig, error) {
	var cfg MapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing map config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid map config: %w", err)
	}
	return &cfg, nil
}

// LoadMapConfig reads and parses the map file at path.
func LoadMapConfig(path string) (*MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map config: %w", err)
	}
	return ParseMapConfig(data)
}

func (c *MapConfig) validate() error {
	if len(c.Roads) == 0 {
		return fmt.Errorf("map has no roads")
	}
	type nameKey struct{ village, name string }
	type edgeKey struct{ low, high int }
	names := map[nameKey]bool{}
	edges := map[edgeKey]bool{}
	villages := map[string]bool{}
	counties := map[string]bool{}
	mainStreets := map[string]int{}
	sideStreets := map[string]int{}
	vertexVillage := map[int]string{}

	for _, r := range c.Roads {
		if r.Village == "" || r.Name == "" {
			return fmt.Errorf("road %q/%q misses a village or name", r.Village, r.Name)
		}
		if r.Source == r.Target {
			return fmt.Errorf("road %s %s is a loop at vertex %d", r.Village, r.Name, r.Source)
		}
		if r.Length <= 0 {
			return fmt.Errorf("road %s %s has non-positive length %d", r.Village, r.Name, r.Length)
		}
		if r.HeightLimit <= 0 {
			return fmt.Errorf("road %s %s has non-positive height limit %d", r.Village, r.Name, r.HeightLimit)
		}
		kind, ok := roadKinds[r.Type]
		if !ok {
			return fmt.Errorf("road %s %s has unknown type %q", r.Village, r.Name, r.Type)
		}

		nk := nameKey{r.Village, r.Name}
		if names[nk] {
			return fmt.Errorf("duplicate road %s %s", r.Village, r.Name)
		}
		names[nk] = true
		ek := edgeKey{low: min(r.Source, r.Target), high: max(r.Source, r.Target)}
		if edges[ek] {
			return fmt.Errorf("road %s %s duplicates the connection %d-%d", r.Village, r.Name, r.Source, r.Target)
		}
		edges[ek] = true

		switch kind {
		case sim.CountyRoad:
			counties[r.Village] = true
		case sim.MainStreet:
			villages[r.Village] = true
			mainStreets[r.Village]++
		case sim.SideStreet:
			villages[r.Village] = true
			sideStreets[r.Village]++
		}
		if kind != sim.CountyRoad {
			for _, v := range []int{r.Source, r.Target} {
				if owner, seen := vertexVillage[v]; seen && owner != r.Village {
					return fmt.Errorf("vertex %d joins roads of villages %s and %s", v, owner, r.Village)
				}
				vertexVillage[v] = r.Village
			}
		}
	}

	for county := range counties {
		if villages[county] {
			return fmt.Errorf("%q names both a village and a county", county)
		}
	}
	for village := range villages {
		if mainStreets[village] != 1 {
			return fmt.Errorf("village %s has %d main streets, want exactly one", village, mainStreets[village])
		}
		if sideStreets[village] == 0 {
			return fmt.Errorf("village %s has no side street", village)
		}
	}
	return nil
}

// Build turns the config into the road slice and the road network. Two-way
// roads contribute one edge per direction backed by the same road.
func (c *MapConfig) Build() ([]*sim.Road, *graph.Graph[*sim.Road]) {
	roads := make([]*sim.Road, 0, len(c.Roads))
	net := graph.New[*sim.Road]()
	for _, rc := range c.Roads {
		road := &sim.Road{
			Village:     rc.Village,
			Name:        rc.Name,
			Source:      rc.Source,
			Target:      rc.Target,
			Length:      rc.Length,
			HeightLimit: rc.HeightLimit,
			Kind:        roadKinds[rc.Type],
			OneWay:      rc.OneWay,
		}
		roads = append(roads, road)
		net.AddVertex(road.Source)
		net.AddVertex(road.Target)
		net.AddEdge(road.Source, road.Target, road)
		if !road.OneWay {
			net.AddEdge(road.Target, road.Source, road)
		}
	}
	return roads, net
}

// Vertices returns the set of map vertices, for cross-file validation.
func (c *MapConfig) Vertices() map[int]bool {
	vs := map[int]bool{}
	for _, r := range c.Roads {
		vs[r.Source] = true
		vs[r.Target] = true
	}
	return vs
}
