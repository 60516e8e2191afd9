package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// AssetRequest asks another base to cover the part of an emergency's demand
// the sender could not fill. CheckedBases records every base the demand has
// passed through so a request never circles back.
type AssetRequest struct {
	ID           int
	BaseID       int
	Response     *EmergencyResponse
	Inquiry      AssetInquiry
	CheckedBases []int
}

// BaseController fills emergency demand from one base's fleet and escalates
// the rest to neighboring bases.
type BaseController struct {
	Base *Base

	nav *Navigation
}

func NewBaseController(base *Base, nav *Navigation) *BaseController {
	return &BaseController{Base: base, nav: nav}
}

// AssignAssets fills the emergency's open demand from the base's own fleet,
// then from vehicles already underway, and finally turns what is still open
// into requests for the closest bases of the lacking services. A base that
// could neither allocate nor shrink the demand sends no requests so the same
// demand is not escalated twice.
func (c *BaseController) AssignAssets(w *World, nav *Navigation, resp *EmergencyResponse) []*AssetRequest {
	inquiry := OutstandingAssets(resp.Emergency, resp.AllocatedAssets(w))
	potential := filterCanHelp(c.Base.AvailableVehicles(), inquiry)
	sendRequests := true
	if len(potential) > 0 {
		newInquiry := c.handleInquiry(w, resp, potential, inquiry, false)
		if inquiry.Equal(newInquiry) && len(resp.AllocatedAssets(w)) == 0 {
			sendRequests = false
		}
	}
	remaining := c.reallocateAssets(w, resp)
	if len(potential) > 0 && (len(resp.AllocatedAssets(w)) == 0 || remaining.Fulfilled()) {
		return nil
	}
	if sendRequests {
		requests := c.generateRequests(w, remaining, resp, []int{c.Base.ID})
		for _, req := range sortedByID(requests) {
			w.Journal.Request(req.ID, req.BaseID, resp.Emergency.ID)
		}
		return requests
	}
	return nil
}

// HandleRequest serves a request from another base out of the own fleet and
// escalates the open rest. A demand no further base can take fails.
func (c *BaseController) HandleRequest(w *World, req *AssetRequest) []*AssetRequest {
	remaining := c.handleInquiry(
		w,
		req.Response,
		filterCanHelp(c.Base.AvailableVehicles(), req.Inquiry),
		req.Inquiry,
		true,
	)
	if remaining.Fulfilled() {
		return nil
	}
	requests := c.generateRequests(w, remaining, req.Response, req.CheckedBases)
	if len(requests) == 0 {
		w.Journal.RequestFailed(req.Response.Emergency.ID)
		return nil
	}
	for _, next := range sortedByID(requests) {
		w.Journal.Request(next.ID, next.BaseID, req.Response.Emergency.ID)
	}
	return requests
}

// handleInquiry commits base vehicles to the emergency, smallest id first,
// until the inquiry no longer needs them. A vehicle must arrive within the
// response's travel budget, must not break the inquiry's satisfiability, and
// the base must be able to crew it. Committing moves the vehicle onto its
// route, books the crew, and charges the base's staff pool.
func (c *BaseController) handleInquiry(
	w *World,
	resp *EmergencyResponse,
	vehicles []*Vehicle,
	inquiry AssetInquiry,
	request bool,
) AssetInquiry {
	routes := c.routesByHeight(vehicles, resp)
	var eligible []*Vehicle
	for _, v := range vehicles {
		route, ok := routes[v.Height]
		if !ok {
			panic("handleInquiry: no route from the base to the emergency")
		}
		if ceilDiv(route.Length(), Speed) <= resp.MaxTravelTime() {
			eligible = append(eligible, v)
		}
	}
	sort.Slice(eligible, func(i, k int) bool { return eligible[i].ID < eligible[k].ID })
	for _, v := range eligible {
		route := routes[v.Height]
		difference := resp.MaxTravelTime() - ceilDiv(route.Length(), Speed)
		if !inquiry.FulfillableWith(v) || !inquiry.CanHelp(v) ||
			!c.Base.CanManLive(v, difference, request, w.Shift) {
			continue
		}
		v.EmergencyID = resp.Emergency.ID
		v.Route = route.Advance(0)
		v.Location = v.Route.Start
		v.AtTarget = false
		extra, _ := c.Base.AllocateStaff(w, resp.Emergency.ID, v, difference, request)
		v.Manning = max(1, 1+extra)
		c.Base.StaffNumber -= v.StaffCapacity
		w.Journal.Allocation(v.ID, resp.Emergency.ID, max(1, extra+v.TimeToTarget()))
		inquiry = inquiry.RemainingAssets([]*Vehicle{v})
	}
	return inquiry
}

// reallocateAssets diverts vehicles already underway, either idle returners
// or assets bound to a less severe emergency, to the open demand. Diverted
// vehicles keep driving from where they are, so their route is not reset.
func (c *BaseController) reallocateAssets(w *World, resp *EmergencyResponse) AssetInquiry {
	inquiry := OutstandingAssets(resp.Emergency, resp.AllocatedAssets(w))
	potential := filterCanHelp(c.Base.ReallocatableVehicles(w, resp.Emergency), inquiry)
	routes := c.routesByPosition(potential, resp)
	var eligible []*Vehicle
	for _, v := range potential {
		route, ok := routes[positionKey{location: v.Location, height: v.Height}]
		if !ok {
			panic("reallocateAssets: no route to the emergency")
		}
		if ceilDiv(route.Length(), Speed)-1 <= resp.MaxTravelTime() {
			eligible = append(eligible, v)
		}
	}
	sort.Slice(eligible, func(i, k int) bool { return eligible[i].ID < eligible[k].ID })
	for _, v := range eligible {
		if !inquiry.FulfillableWith(v) || !inquiry.CanHelp(v) {
			continue
		}
		v.EmergencyID = resp.Emergency.ID
		v.Route = routes[positionKey{location: v.Location, height: v.Height}]
		w.Journal.Reallocation(v.ID, resp.Emergency.ID)
		logrus.Debugf("[tick %07d] asset %d reallocated to emergency %d, time to target %d",
			w.Tick, v.ID, resp.Emergency.ID, v.TimeToTarget())
		inquiry = inquiry.RemainingAssets([]*Vehicle{v})
	}
	return inquiry
}

// generateRequests splits the open demand per service and addresses each
// unfulfilled part to the closest base of that service not yet asked.
// Requests are numbered in target base id order.
func (c *BaseController) generateRequests(
	w *World,
	inquiry AssetInquiry,
	resp *EmergencyResponse,
	checkedBases []int,
) []*AssetRequest {
	police, ambulance, fire := inquiry.Split()
	exclude := append(append([]int{}, checkedBases...), c.Base.ID)
	type pending struct {
		base    *Base
		inquiry AssetInquiry
	}
	var open []pending
	if !ambulance.Fulfilled() {
		if target, _, ok := c.nav.ClosestBase(Hospital, c.Base.Location, exclude, true); ok {
			open = append(open, pending{base: target, inquiry: ambulance})
		}
	}
	if !fire.Fulfilled() {
		if target, _, ok := c.nav.ClosestBase(FireStation, c.Base.Location, exclude, true); ok {
			open = append(open, pending{base: target, inquiry: fire})
		}
	}
	if !police.Fulfilled() {
		if target, _, ok := c.nav.ClosestBase(PoliceStation, c.Base.Location, exclude, true); ok {
			open = append(open, pending{base: target, inquiry: police})
		}
	}
	sort.Slice(open, func(i, k int) bool { return open[i].base.ID < open[k].base.ID })
	requests := make([]*AssetRequest, 0, len(open))
	for _, p := range open {
		requests = append(requests, &AssetRequest{
			ID:           w.NextRequestID(),
			BaseID:       p.base.ID,
			Response:     resp,
			Inquiry:      p.inquiry,
			CheckedBases: append(append([]int{}, checkedBases...), c.Base.ID),
		})
	}
	return requests
}

// routesByHeight computes one route from the base to the emergency per
// vehicle height. All candidates stand at the base, so the height is the
// only constraint that can change the route.
func (c *BaseController) routesByHeight(vehicles []*Vehicle, resp *EmergencyResponse) map[int]Route {
	routes := make(map[int]Route)
	for _, v := range vehicles {
		if _, ok := routes[v.Height]; !ok {
			routes[v.Height] = c.nav.ShortestRoute(v.Location, resp.Emergency.Road, v)
		}
	}
	return routes
}

type positionKey struct {
	location Location
	height   int
}

func (c *BaseController) routesByPosition(vehicles []*Vehicle, resp *EmergencyResponse) map[positionKey]Route {
	routes := make(map[positionKey]Route)
	for _, v := range vehicles {
		key := positionKey{location: v.Location, height: v.Height}
		if _, ok := routes[key]; !ok {
			routes[key] = c.nav.ShortestRoute(v.Location, resp.Emergency.Road, v)
		}
	}
	return routes
}

func filterCanHelp(vehicles []*Vehicle, inquiry AssetInquiry) []*Vehicle {
	var out []*Vehicle
	for _, v := range vehicles {
		if inquiry.CanHelp(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortedByID(requests []*AssetRequest) []*AssetRequest {
	out := append([]*AssetRequest{}, requests...)
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}
