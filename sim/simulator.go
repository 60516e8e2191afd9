package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Simulator runs the tick loop: receive emergencies, plan allocations,
// move vehicles and staff, age emergencies, and apply events.
type Simulator struct {
	w           *World
	nav         *Navigation
	dispatcher  *EventDispatcher
	controllers map[int]*BaseController
	responses   []*EmergencyResponse
}

func NewSimulator(w *World, events []Event) *Simulator {
	nav := NewNavigation(w)
	controllers := make(map[int]*BaseController, len(w.Bases))
	for _, b := range w.Bases {
		controllers[b.ID] = NewBaseController(b, nav)
	}
	return &Simulator{
		w:           w,
		nav:         nav,
		dispatcher:  NewEventDispatcher(events),
		controllers: controllers,
	}
}

// Run executes the simulation until the tick budget is spent or every
// emergency of the scenario has finished.
func (s *Simulator) Run() {
	s.w.Journal.Start()
	for _, v := range s.w.Vehicles {
		v.Route = ReachedRoute(s.w.Net, v.Home)
	}
	for s.w.Tick < s.w.MaxTicks && s.openEmergencies() {
		s.tick()
		s.w.Tick++
		if s.w.Tick%ShiftLength == 0 {
			s.w.Shift = s.w.Shift.Next()
		}
	}
	s.w.Journal.End()
}

func (s *Simulator) openEmergencies() bool {
	for _, e := range s.w.Emergencies {
		if !e.Done {
			return true
		}
	}
	return false
}

func (s *Simulator) tick() {
	s.w.Journal.Tick(s.w.Tick, s.w.Shift.String())
	s.emergencyPhase()
	s.planningPhase()
	s.updatePhase()
}

// activeResponses returns the open responses ordered by severity, highest
// first, with ties broken by the smaller emergency id.
func (s *Simulator) activeResponses() []*EmergencyResponse {
	sort.Slice(s.responses, func(i, k int) bool {
		return s.responses[i].Emergency.ID < s.responses[k].Emergency.ID
	})
	sort.SliceStable(s.responses, func(i, k int) bool {
		return s.responses[i].Emergency.Severity > s.responses[k].Emergency.Severity
	})
	return s.responses
}

// emergencyPhase assigns every emergency breaking out this tick to the
// closest base of the responsible service. The site's road event pauses for
// as long as the emergency occupies the road.
func (s *Simulator) emergencyPhase() {
	var fresh []*Emergency
	for _, e := range s.w.Emergencies {
		if e.Tick == s.w.Tick {
			fresh = append(fresh, e)
		}
	}
	for _, e := range fresh {
		e.Road.PauseEvent()
	}
	for _, e := range fresh {
		base, path, ok := s.nav.ClosestBase(e.Kind.ResponsibleBase(), e.Road, nil, false)
		if !ok {
			panic("no base found")
		}
		s.responses = append(s.responses, &EmergencyResponse{
			Emergency:  e,
			Controller: s.controllers[base.ID],
		})
		s.w.Journal.Assignment(e.ID, base.ID, path.String())
	}
}

// planningPhase lets every open response pull assets from its base, then
// drains the resulting request queue in id order. Handling a request may
// spawn follow-up requests, which join the back of the queue.
func (s *Simulator) planningPhase() {
	var requests []*AssetRequest
	for _, resp := range s.activeResponses() {
		requests = append(requests, resp.AssignAssets(s.w, s.nav)...)
	}
	sort.Slice(requests, func(i, k int) bool { return requests[i].ID < requests[k].ID })
	for len(requests) > 0 {
		req := requests[0]
		requests = requests[1:]
		if controller, ok := s.controllers[req.BaseID]; ok {
			requests = append(requests, controller.HandleRequest(s.w, req)...)
		}
	}
}

// updatePhase moves the world one tick: vehicles drive, staff commute and
// rotate shifts, emergencies age, events run out and new ones fire, and
// vehicles on stale routes are rerouted.
func (s *Simulator) updatePhase() {
	for _, v := range s.w.Vehicles {
		v.ReturnToBase(s.w, s.nav)
		if v.Update() {
			s.w.Journal.Arrival(v.ID, nearestVertex(v.Location))
			if v.AtHome() {
				if base := s.w.Base(v.BaseID); base != nil {
					base.ReturnVehicle(s.w, v)
				}
			}
		}
	}
	shiftChange := s.w.Tick%ShiftLength == shiftEnd
	for _, st := range s.w.StaffSorted() {
		st.CountTicks(s.w)
		st.IncreaseSpentAtEmergency(s.w)
		st.UpdateWhereGoing(s.w.Tick)
		st.UpdatePosition()
		st.LogReturn(s.w.Journal)
		if shiftChange {
			st.LogShiftChange(s.w.Journal, s.w.Shift)
			st.UpdateAndCount(s.w.Journal)
			st.UpdateShifts(s.w.Shift)
		}
	}
	s.handleEmergencies()
	eventsEnded := s.dispatcher.Update(s.w)
	eventsStarted := s.dispatcher.ActivateEvents(s.w)
	for _, resp := range s.responses {
		resp.Emergency.Road.PauseEvent()
	}
	if eventsEnded || eventsStarted {
		s.rerouteAssets()
	}
}

// handleEmergencies ages every open response, resumes the road event of a
// site whose emergencies all finished, and drops finished responses.
func (s *Simulator) handleEmergencies() {
	for _, resp := range s.activeResponses() {
		resp.Update(s.w, s.nav)
	}
	byRoad := make(map[*Road][]*EmergencyResponse)
	for _, resp := range s.responses {
		byRoad[resp.Emergency.Road] = append(byRoad[resp.Emergency.Road], resp)
	}
	for road, resps := range byRoad {
		done := true
		for _, resp := range resps {
			if !resp.Emergency.Done {
				done = false
				break
			}
		}
		if done {
			road.ResumeEvent()
		}
	}
	kept := s.responses[:0]
	for _, resp := range s.responses {
		if !resp.Emergency.Done {
			kept = append(kept, resp)
		}
	}
	s.responses = kept
	s.w.Journal.FlushEmergencies()
}

type reroutingKey struct {
	location Location
	target   Location
	height   int
}

// rerouteAssets recomputes the route of every driving vehicle after the road
// weights changed. Vehicles sharing position, destination and height share
// one lookup; a vehicle switches only when the fresh route actually differs.
func (s *Simulator) rerouteAssets() {
	driving := s.w.DrivingVehicles()
	routes := make(map[reroutingKey]Route)
	for _, v := range driving {
		key := reroutingKey{location: v.Location, target: v.Target(s.w), height: v.Height}
		if _, ok := routes[key]; !ok {
			routes[key] = s.nav.ShortestRoute(v.Location, v.Target(s.w), v)
		}
	}
	for _, v := range driving {
		key := reroutingKey{location: v.Location, target: v.Target(s.w), height: v.Height}
		fresh := routes[key]
		if !fresh.Advance(0).Equal(v.Route.Advance(0)) {
			v.Route = fresh
			s.w.Journal.Rerouted(v.ID, v.Route.String())
			logrus.Debugf("[tick %07d] asset %d rerouted, time to target %d",
				s.w.Tick, v.ID, v.TimeToTarget())
		}
	}
}

// nearestVertex returns the map vertex closest to the location, preferring
// the road's source end on a tie.
func nearestVertex(loc Location) int {
	best, bestDist := -1, 0
	distances := loc.Distances()
	for _, v := range candidateNodes(loc) {
		if d, ok := distances[v]; ok && (best == -1 || d < bestDist) {
			best, bestDist = v, d
		}
	}
	if best == -1 {
		panic("nearestVertex: location off the map")
	}
	return best
}
