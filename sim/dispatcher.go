package sim

import "sort"

// EventDispatcher owns the scenario's events and runs their lifecycle:
// trigger at the start tick, update while live, promote queued road events
// into freed slots.
type EventDispatcher struct {
	Events []Event
}

func NewEventDispatcher(events []Event) *EventDispatcher {
	sorted := append([]Event{}, events...)
	sort.Slice(sorted, func(i, k int) bool { return sorted[i].ID() < sorted[k].ID() })
	return &EventDispatcher{Events: sorted}
}

// ActivateEvents triggers every event whose start tick is now and reports
// whether any road event came alive. An event whose precondition fails has
// re-armed itself for a later tick and is retried then.
func (d *EventDispatcher) ActivateEvents(w *World) bool {
	roadEventStarted := false
	for _, e := range d.Events {
		if e.StartTick() != w.Tick {
			continue
		}
		if e.Trigger(w) {
			w.Journal.EventTriggered(e.ID())
			if _, ok := e.(RoadEvent); ok {
				roadEventStarted = true
			}
		}
	}
	return roadEventStarted
}

// Update advances every live event, moves queued road events into slots
// freed this tick, and reports whether a road event ended.
func (d *EventDispatcher) Update(w *World) bool {
	var live []Event
	for _, e := range d.Events {
		if w.Tick >= e.StartTick() && !e.Done() {
			live = append(live, e)
		}
	}
	for _, e := range live {
		e.Update(w)
	}
	for _, r := range w.Roads {
		if len(r.pending) > 0 && r.active == nil {
			r.active = r.pending[0]
			r.pending = r.pending[1:]
		}
	}
	roadEventEnded := false
	for _, e := range live {
		if e.Done() {
			w.Journal.EventEnded(e.ID())
			if _, ok := e.(RoadEvent); ok {
				roadEventEnded = true
			}
		}
	}
	return roadEventEnded
}
