package journal

import (
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// Stats holds the aggregate counters of one simulation run.
type Stats struct {
	ReroutedAssets      int
	ReceivedEmergencies int
	ResolvedEmergencies int
	FailedEmergencies   int
	ShiftsWorked        int
	TicksWorked         int
}

// OngoingEmergencies returns the number of emergencies that neither resolved
// nor failed within the tick budget.
func (s Stats) OngoingEmergencies() int {
	return s.ReceivedEmergencies - s.FailedEmergencies - s.ResolvedEmergencies
}

// RunID derives a stable identifier for a run from the raw scenario bytes.
// The same scenario always yields the same id.
func RunID(scenario []byte) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, scenario)
}

// RenderSummary writes the statistics as a human-readable table. This is a
// presentation concern for the CLI; the journal stream itself carries the
// plain statistics lines.
func RenderSummary(w io.Writer, s Stats) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Metric", "Count"}),
	)
	rows := [][]string{
		{"Received emergencies", strconv.Itoa(s.ReceivedEmergencies)},
		{"Resolved emergencies", strconv.Itoa(s.ResolvedEmergencies)},
		{"Failed emergencies", strconv.Itoa(s.FailedEmergencies)},
		{"Ongoing emergencies", strconv.Itoa(s.OngoingEmergencies())},
		{"Assets rerouted", strconv.Itoa(s.ReroutedAssets)},
		{"Shifts worked", strconv.Itoa(s.ShiftsWorked)},
		{"Ticks worked", strconv.Itoa(s.TicksWorked)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
