package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocationTestNetwork() (r12, r23, r34 *Road) {
	r12 = testRoad("First", 1, 2, 100)
	r23 = testRoad("Second", 2, 3, 100)
	r34 = testRoad("Third", 3, 4, 100)
	return r12, r23, r34
}

func TestAssignAssets_OwnFleetSuffices_CommitsVehicle(t *testing.T) {
	// GIVEN a fire station whose single technical truck covers the demand
	r12, r23, _ := allocationTestNetwork()
	v := testVehicle(1, 1, FireTruckTechnical, Node(1))
	s1 := testStaff(1, Firefighter, LicenseTruck)
	s2 := testStaff(2, Firefighter, LicenseNone)
	base := &Base{
		ID: 1, Kind: FireStation, Location: Node(1),
		StaffNumber: 4,
		Vehicles:    []*Vehicle{v},
		Crew:        []*Staff{s1, s2},
	}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 20}
	w, out := testWorld([]*Road{r12, r23}, []*Base{base}, []*Vehicle{v}, []*Staff{s1, s2}, []*Emergency{e}, 100)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(base, nav)}

	// WHEN the base assigns assets
	requests := resp.AssignAssets(w, nav)

	// THEN the truck is on its way, crewed, and nothing escalates
	assert.Nil(t, requests)
	assert.Equal(t, e.ID, v.EmergencyID)
	assert.False(t, v.AtTarget)
	assert.Equal(t, 1, v.Manning)
	assert.Equal(t, []int{1, 2}, v.AssignedStaff)
	assert.Equal(t, 2, base.StaffNumber)
	assert.Contains(t, out.String(), "Asset Allocation: 1 allocated to 1; 10 ticks to arrive")
	assert.Contains(t, out.String(), "Staff Allocation: crew-1(1) allocated to 1 for 1")
}

func TestAssignAssets_PartialCoverage_EscalatesPerService(t *testing.T) {
	// GIVEN a fire station that covers the fire share of an accident only
	r12, r23, r34 := allocationTestNetwork()
	v1 := testVehicle(1, 1, FireTruckTechnical, Node(1))
	v2 := testVehicle(2, 1, FireTruckTechnical, Node(1))
	crew := []*Staff{
		testStaff(1, Firefighter, LicenseTruck),
		testStaff(2, Firefighter, LicenseTruck),
		testStaff(3, Firefighter, LicenseTruck),
		testStaff(4, Firefighter, LicenseTruck),
	}
	fire := &Base{ID: 1, Kind: FireStation, Location: Node(1), StaffNumber: 8, Vehicles: []*Vehicle{v1, v2}, Crew: crew}
	hospital := &Base{ID: 2, Kind: Hospital, Location: Node(3)}
	police := &Base{ID: 3, Kind: PoliceStation, Location: Node(4)}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 2, HandlingTime: 5, MaxDuration: 40}
	w, out := testWorld(
		[]*Road{r12, r23, r34},
		[]*Base{fire, hospital, police},
		[]*Vehicle{v1, v2},
		crew,
		[]*Emergency{e},
		100,
	)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(fire, nav)}

	// WHEN the base assigns assets
	requests := resp.AssignAssets(w, nav)

	// THEN both trucks are committed and the rest goes out as requests,
	// numbered in target base id order
	assert.Equal(t, e.ID, v1.EmergencyID)
	assert.Equal(t, e.ID, v2.EmergencyID)
	require.Len(t, requests, 2)
	assert.Equal(t, 1, requests[0].ID)
	assert.Equal(t, hospital.ID, requests[0].BaseID)
	assert.Equal(t, 2, requests[1].ID)
	assert.Equal(t, police.ID, requests[1].BaseID)
	assert.Contains(t, requests[0].CheckedBases, fire.ID)
	assert.Contains(t, out.String(), "Asset Request: 1 sent to 2 for 1")
	assert.Contains(t, out.String(), "Asset Request: 2 sent to 3 for 1")
}

func TestHandleRequest_FleetCoversDemand_NoFurtherRequests(t *testing.T) {
	// GIVEN a hospital asked for the ambulance share of an accident
	r12, r23, r34 := allocationTestNetwork()
	ambulance := testVehicle(3, 2, AmbulanceCar, Node(3))
	crew := []*Staff{
		testStaff(5, EMT, LicenseAmbulance),
		testStaff(6, EMT, LicenseAmbulance),
	}
	fire := &Base{ID: 1, Kind: FireStation, Location: Node(1)}
	hospital := &Base{ID: 2, Kind: Hospital, Location: Node(3), StaffNumber: 4, Vehicles: []*Vehicle{ambulance}, Crew: crew}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 2, HandlingTime: 5, MaxDuration: 40}
	w, out := testWorld(
		[]*Road{r12, r23, r34},
		[]*Base{fire, hospital},
		[]*Vehicle{ambulance},
		crew,
		[]*Emergency{e},
		100,
	)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(fire, nav)}
	_, inquiry, _ := OutstandingAssets(e, nil).Split()
	req := &AssetRequest{ID: 1, BaseID: hospital.ID, Response: resp, Inquiry: inquiry, CheckedBases: []int{fire.ID}}

	// WHEN the hospital serves the request
	next := NewBaseController(hospital, nav).HandleRequest(w, req)

	// THEN the ambulance covers the demand and the chain stops
	assert.Nil(t, next)
	assert.Equal(t, e.ID, ambulance.EmergencyID)
	assert.Contains(t, out.String(), "Asset Allocation: 3 allocated to 1")
}

func TestHandleRequest_NoFurtherBase_FailsTheRequest(t *testing.T) {
	// GIVEN a police station with nothing to send and no peer left to ask
	r12, r23, r34 := allocationTestNetwork()
	fire := &Base{ID: 1, Kind: FireStation, Location: Node(1)}
	police := &Base{ID: 3, Kind: PoliceStation, Location: Node(4)}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 2, HandlingTime: 5, MaxDuration: 40}
	w, out := testWorld([]*Road{r12, r23, r34}, []*Base{fire, police}, nil, nil, []*Emergency{e}, 100)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(fire, nav)}
	inquiry, _, _ := OutstandingAssets(e, nil).Split()
	req := &AssetRequest{ID: 2, BaseID: police.ID, Response: resp, Inquiry: inquiry, CheckedBases: []int{fire.ID}}

	next := NewBaseController(police, nav).HandleRequest(w, req)

	assert.Nil(t, next)
	assert.Contains(t, out.String(), "Request Failed: 1 failed")
}

func TestAssignAssets_UnmannableFleet_SendsNoRequests(t *testing.T) {
	// GIVEN a fitting truck whose crew is off shift
	r12, r23, _ := allocationTestNetwork()
	v := testVehicle(1, 1, FireTruckTechnical, Node(1))
	s1 := testStaff(1, Firefighter, LicenseTruck)
	s2 := testStaff(2, Firefighter, LicenseTruck)
	s1.Current.Working = false
	s2.Current.Working = false
	base := &Base{ID: 1, Kind: FireStation, Location: Node(1), StaffNumber: 4, Vehicles: []*Vehicle{v}, Crew: []*Staff{s1, s2}}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 20}
	w, out := testWorld([]*Road{r12, r23}, []*Base{base}, []*Vehicle{v}, []*Staff{s1, s2}, []*Emergency{e}, 100)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(base, nav)}

	// WHEN the base assigns assets
	requests := resp.AssignAssets(w, nav)

	// THEN the demand waits at this base instead of circling the map
	assert.Empty(t, requests)
	assert.Equal(t, NoEmergency, v.EmergencyID)
	assert.NotContains(t, out.String(), "Asset Request")
}

func TestAssignAssets_EmptyStation_EscalatesImmediately(t *testing.T) {
	r12, r23, r34 := allocationTestNetwork()
	near := &Base{ID: 1, Kind: FireStation, Location: Node(1)}
	far := &Base{ID: 2, Kind: FireStation, Location: Node(4)}
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 20}
	w, out := testWorld([]*Road{r12, r23, r34}, []*Base{near, far}, nil, nil, []*Emergency{e}, 100)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(near, nav)}

	requests := resp.AssignAssets(w, nav)

	require.Len(t, requests, 1)
	assert.Equal(t, far.ID, requests[0].BaseID)
	assert.Contains(t, out.String(), "Asset Request: 1 sent to 2 for 1")
}

func TestReallocateAssets_ReturningVehicle_DivertedWithinMargin(t *testing.T) {
	// GIVEN a truck rolling home past the site of a fresh accident
	r12, r23, _ := allocationTestNetwork()
	v := testVehicle(1, 1, FireTruckTechnical, Node(1))
	base := &Base{ID: 1, Kind: FireStation, Location: Node(1), Vehicles: []*Vehicle{v}}
	// five ticks out; the deadline alone would be one tick too tight
	e := &Emergency{ID: 1, Road: r23, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 7}
	w, out := testWorld([]*Road{r12, r23}, []*Base{base}, []*Vehicle{v}, nil, []*Emergency{e}, 100)
	v.Location = SpotOn(r12, 50)
	v.AtTarget = false
	nav := NewNavigation(w)
	v.Route = nav.ShortestRoute(v.Location, v.Home, v)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(base, nav)}

	// WHEN the base assigns assets
	requests := resp.AssignAssets(w, nav)

	// THEN the truck turns around instead of a request going out
	assert.Empty(t, requests)
	assert.Equal(t, e.ID, v.EmergencyID)
	assert.Contains(t, out.String(), "Asset Reallocation: 1 reallocated to 1")
	assert.NotContains(t, out.String(), "Asset Request")
}

func TestAssignAssets_UnreachableEmergency_VehicleNotCommitted(t *testing.T) {
	// GIVEN a manned truck cut off from the emergency road entirely
	r12 := testRoad("First", 1, 2, 100)
	r34 := testRoad("Third", 3, 4, 100)
	v := testVehicle(1, 1, FireTruckTechnical, Node(1))
	s1 := testStaff(1, Firefighter, LicenseTruck)
	s2 := testStaff(2, Firefighter, LicenseNone)
	base := &Base{
		ID: 1, Kind: FireStation, Location: Node(1),
		StaffNumber: 4,
		Vehicles:    []*Vehicle{v},
		Crew:        []*Staff{s1, s2},
	}
	e := &Emergency{ID: 1, Road: r34, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 20}
	w, out := testWorld([]*Road{r12, r34}, []*Base{base}, []*Vehicle{v}, []*Staff{s1, s2}, []*Emergency{e}, 100)
	nav := NewNavigation(w)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(base, nav)}

	// WHEN the base assigns assets
	requests := resp.AssignAssets(w, nav)

	// THEN the travel deadline rejects the truck and nothing is committed
	assert.Nil(t, requests)
	assert.Equal(t, NoEmergency, v.EmergencyID)
	assert.True(t, v.AtTarget)
	assert.Equal(t, 4, base.StaffNumber)
	assert.NotContains(t, out.String(), "Asset Allocation")
}

func TestReallocateAssets_UnreachableEmergency_VehicleKeepsCourse(t *testing.T) {
	// GIVEN a truck rolling home and a fresh emergency it cannot reach
	r12 := testRoad("First", 1, 2, 100)
	r34 := testRoad("Third", 3, 4, 100)
	v := testVehicle(1, 1, FireTruckTechnical, Node(1))
	base := &Base{ID: 1, Kind: FireStation, Location: Node(1), Vehicles: []*Vehicle{v}}
	e := &Emergency{ID: 1, Road: r34, Kind: Accident, Severity: 1, HandlingTime: 3, MaxDuration: 20}
	w, out := testWorld([]*Road{r12, r34}, []*Base{base}, []*Vehicle{v}, nil, []*Emergency{e}, 100)
	v.Location = SpotOn(r12, 50)
	v.AtTarget = false
	nav := NewNavigation(w)
	v.Route = nav.ShortestRoute(v.Location, v.Home, v)
	resp := &EmergencyResponse{Emergency: e, Controller: NewBaseController(base, nav)}

	// WHEN the base assigns assets
	resp.AssignAssets(w, nav)

	// THEN the truck is not diverted onto a route that does not exist
	assert.Equal(t, NoEmergency, v.EmergencyID)
	assert.NotContains(t, out.String(), "Asset Reallocation")
}
