package sim

import "sort"

// RoadKind classifies a road for map validation and rush-hour targeting.
type RoadKind int

const (
	MainStreet RoadKind = iota
	SideStreet
	CountyRoad
)

var roadKindNames = map[RoadKind]string{
	MainStreet: "MAIN_STREET",
	SideStreet: "SIDE_STREET",
	CountyRoad: "COUNTY_ROAD",
}

func (k RoadKind) String() string {
	if name, ok := roadKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Road is an edge of the map. A road carries at most one active event; later
// events queue in pending, kept sorted by id, until the slot frees.
type Road struct {
	Village     string
	Name        string
	Source      int
	Target      int
	Length      int
	HeightLimit int
	Kind        RoadKind
	OneWay      bool

	active  RoadEvent
	pending []RoadEvent
}

// Weight is the current travel cost of the road, adjusted by the active
// event.
func (r *Road) Weight() int {
	if r.active != nil {
		return r.active.Weight(r)
	}
	return r.Length
}

// Closed reports whether the road cannot be entered from the given vertex.
func (r *Road) Closed(entry int) bool {
	return r.active != nil && r.active.Closed(entry)
}

// Usable reports whether a vehicle fits under the road's height limit.
func (r *Road) Usable(v *Vehicle) bool {
	return v.Height <= r.HeightLimit
}

// AddEvent makes the event active if the slot is free and queues it
// otherwise.
func (r *Road) AddEvent(e RoadEvent) {
	if r.active == nil {
		r.active = e
		return
	}
	r.pending = append(r.pending, e)
	sort.Slice(r.pending, func(i, j int) bool { return r.pending[i].ID() < r.pending[j].ID() })
}

// PauseEvent pauses the active event while an emergency occupies the road.
func (r *Road) PauseEvent() {
	if r.active != nil {
		r.active.Pause()
	}
}

// ResumeEvent resumes the active event once the road is clear again.
func (r *Road) ResumeEvent() {
	if r.active != nil {
		r.active.Resume()
	}
}

func (r *Road) Distances() map[int]int {
	return map[int]int{r.Source: 0, r.Target: 0}
}

func (r *Road) DrivableDistances() map[int]int {
	return r.Distances()
}

func (r *Road) String() string {
	return r.Village + " " + r.Name
}
