package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalLineFormats(t *testing.T) {
	// GIVEN a journal writing into a buffer
	var buf bytes.Buffer
	j := New(&buf)

	// WHEN a run's worth of records is emitted
	j.Start()
	j.Tick(0, "EARLY")
	j.Assignment(1, 3, "[0-2-5]")
	j.Allocation(4, 1, 2)
	j.StaffAllocation("MS Bergmann", 7, 4, 1)
	j.Request(1, 2, 1)
	j.Arrival(4, 5)
	j.Return(4, 1)
	j.Rerouted(4, "[5-2-0]")
	j.EventTriggered(9)
	j.EventEnded(9)
	j.End()

	// THEN every line matches the record format
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"Simulation starts",
		"Simulation Tick: 0 EARLY shift",
		"Emergency Assignment: 1 assigned to 3 via [0-2-5]",
		"Asset Allocation: 4 allocated to 1; 2 ticks to arrive",
		"Staff Allocation: MS Bergmann(7) allocated to 4 for 1",
		"Asset Request: 1 sent to 2 for 1",
		"Asset Arrival: 4 arrived at 5",
		"Asset Return: 4 returns to base; 1 ticks to arrive",
		"Asset Rerouted: 4 rerouted to [5-2-0]",
		"Event Triggered: 9 triggered",
		"Event Ended: 9 ended",
		"Simulation End",
		"Simulation Statistics: 1 assets rerouted",
		"Simulation Statistics: 1 received emergencies",
		"Simulation Statistics: 1 ongoing emergencies",
		"Simulation Statistics: 0 failed emergencies",
		"Simulation Statistics: 0 resolved emergencies",
		"Simulation Statistics: 0 shifts worked",
		"Simulation Statistics: 0 ticks worked",
	}, lines)
}

func TestJournalStaffRecords(t *testing.T) {
	// GIVEN a journal
	var buf bytes.Buffer
	j := New(&buf)

	// WHEN staff lifecycle records are emitted
	j.ShiftEnd("FM Weber", 2, "EARLY")
	j.ShiftStart("FM Weber", 2, "NIGHT")
	j.StaffOnCall("FM Weber", 2)
	j.StaffNotOnCall("FM Weber", 2)
	j.StaffReturn("FM Weber", 2)
	j.StaffSick("FM Weber", 2, 5)
	j.StaffAvailable("FM Weber", 2)
	j.AllocationCanceled(4, 1, "FM Weber", 2)

	// THEN the lines carry name, id and shift in the record format
	assert.Equal(t, strings.Join([]string{
		"Shift End: FM Weber(2) EARLY shift ended",
		"Shift Start: FM Weber(2) NIGHT shift will start",
		"Staff On-Call: FM Weber(2) on-call",
		"Staff Not On-Call: FM Weber(2) not on-call anymore",
		"Staff Return: FM Weber(2) returned to base",
		"Staff Sick: FM Weber(2) sick for 5 ticks",
		"Staff Available: FM Weber(2) available again",
		"Asset Allocation Canceled: 4 allocated to 1 canceled because FM Weber(2) became sick",
	}, "\n")+"\n", buf.String())
}

func TestFlushEmergenciesOrdersGroupsByID(t *testing.T) {
	// GIVEN buffered emergency state changes recorded out of id order
	var buf bytes.Buffer
	j := New(&buf)
	j.Resolved(5)
	j.HandlingStarted(3)
	j.Failed(2)
	j.HandlingStarted(1)
	j.Resolved(4)

	// WHEN the buffers are flushed
	j.FlushEmergencies()

	// THEN started lines come first, then resolved, then failed, each sorted
	assert.Equal(t, strings.Join([]string{
		"Emergency Handling Start: 1 handling started",
		"Emergency Handling Start: 3 handling started",
		"Emergency Resolved: 4 resolved",
		"Emergency Resolved: 5 resolved",
		"Emergency Failed: 2 failed",
	}, "\n")+"\n", buf.String())

	// AND a second flush writes nothing
	buf.Reset()
	j.FlushEmergencies()
	assert.Empty(t, buf.String())
}

func TestStatsCounters(t *testing.T) {
	// GIVEN a journal accumulating counters
	j := New(&bytes.Buffer{})
	j.Assignment(1, 1, "[0]")
	j.Assignment(2, 1, "[0]")
	j.Assignment(3, 1, "[0]")
	j.Resolved(1)
	j.Failed(2)
	j.Rerouted(4, "[0-1]")
	j.AddTickWorked()
	j.AddTickWorked()
	j.RemoveTickWorked()
	j.AddShiftWorked()

	// WHEN the snapshot is taken
	s := j.Stats()

	// THEN the aggregates reflect every mutation
	assert.Equal(t, 3, s.ReceivedEmergencies)
	assert.Equal(t, 1, s.ResolvedEmergencies)
	assert.Equal(t, 1, s.FailedEmergencies)
	assert.Equal(t, 1, s.OngoingEmergencies())
	assert.Equal(t, 1, s.ReroutedAssets)
	assert.Equal(t, 1, s.TicksWorked)
	assert.Equal(t, 1, s.ShiftsWorked)
}

func TestRunIDIsStable(t *testing.T) {
	// GIVEN the same scenario bytes
	scenario := []byte("emergencies:\n  - id: 1\n")

	// WHEN the run id is derived twice
	a := RunID(scenario)
	b := RunID(scenario)

	// THEN it is identical, and differs for different scenarios
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, RunID([]byte("emergencies: []\n")))
}
