package sim

// EmergencyResponse tracks one emergency from its assignment to a base until
// it is resolved or fails, and drives the vehicles bound to it.
type EmergencyResponse struct {
	Emergency  *Emergency
	Controller *BaseController
}

// AllocatedAssets returns the vehicles currently bound to the emergency, in
// id order.
func (r *EmergencyResponse) AllocatedAssets(w *World) []*Vehicle {
	return w.AllocatedAssets(r.Emergency.ID)
}

// MaxTravelTime is the number of ticks an asset may still spend driving and
// leave enough time for the handling itself.
func (r *EmergencyResponse) MaxTravelTime() int {
	return r.Emergency.MaxDuration - r.Emergency.HandlingTime
}

// AssignAssets asks the responsible base to fill the open demand and returns
// the requests it escalates to other bases.
func (r *EmergencyResponse) AssignAssets(w *World, nav *Navigation) []*AssetRequest {
	return r.Controller.AssignAssets(w, nav, r)
}

// Update advances the emergency by one tick. Handling starts once the demand
// is covered and every bound vehicle stands at the site; it runs for the
// handling time and then releases the fleet. An emergency whose deadline
// passes before handling starts fails and releases the fleet as well.
func (r *EmergencyResponse) Update(w *World, nav *Navigation) {
	e := r.Emergency
	if e.HandlingStarted {
		e.HandlingTime--
		if e.HandlingTime == 0 {
			w.Journal.Resolved(e.ID)
			NecessaryAssets(e).Fulfill(r.AllocatedAssets(w))
			r.sendAssetsHome(w, nav)
			e.Done = true
		}
	} else {
		allocated := r.AllocatedAssets(w)
		atSite := true
		for _, v := range allocated {
			if !v.AtTarget {
				atSite = false
				break
			}
		}
		if OutstandingAssets(e, allocated).Fulfilled() && atSite {
			e.HandlingStarted = true
			w.Journal.HandlingStarted(e.ID)
		} else if e.MaxDuration <= e.HandlingTime {
			w.Journal.Failed(e.ID)
			r.sendAssetsHome(w, nav)
			e.Done = true
		}
	}
	e.MaxDuration--
}

type fleetRouteKey struct {
	location Location
	home     Location
	height   int
}

// sendAssetsHome releases every bound vehicle and routes it back to its
// base. Vehicles sharing position, home and height share one route lookup.
func (r *EmergencyResponse) sendAssetsHome(w *World, nav *Navigation) {
	routes := make(map[fleetRouteKey]Route)
	for _, v := range r.AllocatedAssets(w) {
		key := fleetRouteKey{location: v.Location, home: v.Home, height: v.Height}
		route, ok := routes[key]
		if !ok {
			route = nav.ShortestRoute(v.Location, v.Home, v)
			if !route.Reached() && !route.Path.Exists() {
				panic("sendAssetsHome: no route back to base")
			}
			routes[key] = route
		}
		v.Route = route
		v.EmergencyID = NoEmergency
		v.AtTarget = false
	}
}
