package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatch-sim/dispatch-sim/sim/graph"
)

func TestRouteAdvance_CrossesVertices(t *testing.T) {
	// GIVEN a route over two roads, 100 and 50 long
	r12 := testRoad("Main", 1, 2, 100)
	r23 := testRoad("Side", 2, 3, 50)
	net := buildNet([]*Road{r12, r23})
	route := NewRoute(net, Node(1), Node(3), graph.Path{Vertices: []int{1, 2, 3}, Length: 150})

	// WHEN advancing past the first road
	moved := route.Advance(120)

	// THEN the route stands 20 into the second road
	require.False(t, moved.Reached())
	spot, ok := moved.Start.(RoadSpot)
	require.True(t, ok)
	assert.Equal(t, r23, spot.Road)
	assert.Equal(t, 20, spot.Position)
	assert.Equal(t, 30, moved.Length())
}

func TestRouteAdvance_FullDistance_ReachesTarget(t *testing.T) {
	r12 := testRoad("Main", 1, 2, 100)
	r23 := testRoad("Side", 2, 3, 50)
	net := buildNet([]*Road{r12, r23})
	route := NewRoute(net, Node(1), Node(3), graph.Path{Vertices: []int{1, 2, 3}, Length: 150})

	moved := route.Advance(150)

	assert.True(t, moved.Reached())
	assert.True(t, moved.Equal(ReachedRoute(net, Node(3))))
	assert.Equal(t, 0, moved.Length())
}

func TestRouteAdvance_AgainstRoadDirection_DecreasesPosition(t *testing.T) {
	// GIVEN a vehicle 80 into a road, driving back toward the source
	r12 := testRoad("Main", 1, 2, 100)
	net := buildNet([]*Road{r12})
	start := SpotOn(r12, 80)
	route := NewRoute(net, start, Node(1), graph.Path{Vertices: []int{1}, Length: 0})

	moved := route.Advance(30)

	spot, ok := moved.Start.(RoadSpot)
	require.True(t, ok)
	assert.Equal(t, 50, spot.Position)
}

func TestRouteLength_IncludesStartOffset(t *testing.T) {
	r12 := testRoad("Main", 1, 2, 100)
	r23 := testRoad("Side", 2, 3, 50)
	net := buildNet([]*Road{r12, r23})
	start := SpotOn(r12, 30)

	route := NewRoute(net, start, Node(3), graph.Path{Vertices: []int{2, 3}, Length: 50})

	// 70 left on the first road plus the 50 of the second
	assert.Equal(t, 120, route.Length())
}

func TestRouteEqual_MovedCopiesCompareEqual(t *testing.T) {
	r12 := testRoad("Main", 1, 2, 100)
	net := buildNet([]*Road{r12})
	route := NewRoute(net, Node(1), Node(2), graph.Path{Vertices: []int{1, 2}, Length: 100})

	assert.True(t, route.Advance(0).Equal(route.Advance(0)))
	assert.False(t, route.Advance(10).Equal(route.Advance(0)))
}

func TestRouteAdvance_EntersNextRoadAtCurrentWeight(t *testing.T) {
	// GIVEN a jam tripling the second road once the route is underway
	r12 := testRoad("Main", 1, 2, 100)
	r23 := testRoad("Side", 2, 3, 50)
	net := buildNet([]*Road{r12, r23})
	route := NewRoute(net, Node(1), Node(3), graph.Path{Vertices: []int{1, 2, 3}, Length: 150})
	moved := route.Advance(50)
	r23.AddEvent(NewTrafficJam(7, 0, 40, r23, 3))

	// WHEN the route crosses onto the jammed road
	moved = moved.Advance(60)

	// THEN the spot carries the jammed length
	spot, ok := moved.Start.(RoadSpot)
	require.True(t, ok)
	assert.Equal(t, r23, spot.Road)
	assert.Equal(t, 10, spot.Position)
	assert.Equal(t, 150, spot.Length)
}
