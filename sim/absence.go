package sim

// Timing of a step-back sequence: the human pauses shortly after the
// triggering completion, stays away for the configured outage duration,
// and takes a transition delay to be back in service.
const (
	stepBackPause    VTimeInMs = 500
	humanReturnDelay VTimeInMs = 1000
)

// AbsenceWindows computes the intervals during which the human reviewer is
// away. It is the single source of truth for both the scheduler (which
// needs the windows to stretch affected service and supervision steps) and
// the presence replay (which reports whether the human is away at a query
// time); computing the windows twice, once per consumer, is how the two
// drift apart.
//
// With StepBackAfterItems configured, the windows are derived by replaying
// human-served completions in arrival order: every time the count of
// consecutively served items reaches the threshold, a window opens shortly
// after the triggering completion and the count resets. Without it, the
// result is the explicitly configured fixed outage window, or nothing.
//
// The replay approximates completion times from the items' intrinsic
// durations, serialized through the loop when MaxInFlight is 1. It is a
// fixed two-phase structure: the scheduler consumes these windows in its
// main pass, so the windows themselves cannot depend on final schedule
// times.
func AbsenceWindows(items []RawItem, cfg Config) []Window {
	if cfg.StepBackAfterItems <= 0 {
		if cfg.HasFixedOutage {
			return []Window{{
				Start: cfg.OutageStart,
				End:   cfg.OutageStart + cfg.OutageDuration,
			}}
		}
		return nil
	}

	var windows []Window
	var loopFreeAt VTimeInMs
	served := 0

	for _, item := range items {
		if item.Flow == FlowAuto {
			continue
		}

		eligible := item.SpawnTime + spawnStepDuration +
			travelToInputStepDur + cfg.AgentProcessingTime

		start := eligible
		if cfg.MaxInFlight == 1 && loopFreeAt > start {
			start = loopFreeAt
		}

		var completion VTimeInMs
		switch item.Flow {
		case FlowSupervised:
			supStart := start + TravelDuration +
				durationOfKindBefore(item.Steps, StepOrbit, StepSupervision)

			supDur := durationOfKind(item.Steps, StepSupervision)
			for _, w := range windows {
				if w.Overlaps(supStart, supStart+supDur) {
					supDur += cfg.OutageDuration
					break
				}
			}

			completion = supStart + supDur
			loopFreeAt = completion +
				durationOfKindAfter(item.Steps, StepOrbit, StepSupervision) +
				ExitDuration

		case FlowManual:
			toQueueEnd := start + TravelDuration +
				durationOfKindBefore(item.Steps, StepOrbit, StepToQueue) +
				TravelDuration
			completion = toQueueEnd + cfg.QueueTime
			loopFreeAt = toQueueEnd
		}

		served++
		if served >= cfg.StepBackAfterItems {
			windowStart := completion + stepBackPause
			windows = append(windows, Window{
				Start: windowStart,
				End:   windowStart + cfg.OutageDuration + humanReturnDelay,
			})
			served = 0
		}
	}

	return windows
}

// durationOfKind returns the nominal duration of the first step of the
// given kind.
func durationOfKind(steps []Step, kind StepKind) VTimeInMs {
	for _, s := range steps {
		if s.Kind == kind {
			return s.Duration
		}
	}
	return 0
}

// durationOfKindBefore returns the nominal duration of the first step of
// the given kind that appears before the marker kind.
func durationOfKindBefore(steps []Step, kind, marker StepKind) VTimeInMs {
	for _, s := range steps {
		if s.Kind == marker {
			return 0
		}
		if s.Kind == kind {
			return s.Duration
		}
	}
	return 0
}

// durationOfKindAfter returns the nominal duration of the first step of
// the given kind that appears after the marker kind.
func durationOfKindAfter(steps []Step, kind, marker StepKind) VTimeInMs {
	seen := false
	for _, s := range steps {
		if s.Kind == marker {
			seen = true
			continue
		}
		if seen && s.Kind == kind {
			return s.Duration
		}
	}
	return 0
}
