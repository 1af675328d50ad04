package sim

import "sort"

// humanBusyThreshold is the human-queue depth above which an idle human
// comes back to the queue.
const humanBusyThreshold = 5

// A HumanState reports whether the human reviewer is present at a query
// time and which items currently sit in the human queue, in FIFO order.
type HumanState struct {
	Present bool
	Queue   []ScheduledItem
}

// StateAt reconstructs the human's state at the query time by replaying
// history, without any stored timeline. It is a pure function of its
// arguments: querying with time moving forward, backward, or jumping
// arbitrarily yields exactly the results of a continuous forward replay.
//
// Two machines run over the scheduled items. The absence windows (already
// derived once, see AbsenceWindows) answer whether the query time falls
// inside a step-back or fixed outage. A second machine replays the
// human-queue arrivals and service completions of the manual flow: the
// human leaves when a service completes against an empty queue and comes
// back once the queue grows past the busy threshold.
//
// Query times outside the scheduled range are not errors; they resolve to
// an empty queue and default presence.
func StateAt(
	items []ScheduledItem,
	windows []Window,
	t VTimeInMs,
) HumanState {
	state := HumanState{
		Present: replayPresenceFlag(items, t) && !inAnyWindow(windows, t),
	}

	for _, item := range items {
		if item.HasHumanQueue &&
			t >= item.TQueueEntry && t < item.TQueueExit {
			state.Queue = append(state.Queue, item)
		}
	}
	sort.SliceStable(state.Queue, func(a, b int) bool {
		return state.Queue[a].TQueueEntry < state.Queue[b].TQueueEntry
	})

	return state
}

func inAnyWindow(windows []Window, t VTimeInMs) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// A queueEvent is one human-queue transition during replay.
type queueEvent struct {
	time    VTimeInMs
	arrival bool
}

func replayPresenceFlag(items []ScheduledItem, t VTimeInMs) bool {
	var events []queueEvent
	for _, item := range items {
		if !item.HasHumanQueue {
			continue
		}
		events = append(events,
			queueEvent{time: item.TQueueEntry, arrival: true},
			queueEvent{time: item.TQueueExit, arrival: false},
		)
	}

	// Completions sort before same-time arrivals: the queue interval is
	// half-open, so an exit at time x no longer holds its slot at x.
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].time != events[b].time {
			return events[a].time < events[b].time
		}
		return !events[a].arrival && events[b].arrival
	})

	present := true
	depth := 0

	for _, e := range events {
		if e.time > t {
			break
		}

		if e.arrival {
			depth++
			if depth > humanBusyThreshold {
				present = true
			}
		} else {
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				present = false
			}
		}
	}

	return present
}
