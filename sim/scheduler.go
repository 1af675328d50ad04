package sim

import "sort"

// CapacityReleaseDelayFactor delays re-admission after the admission queue
// has been at capacity: the blocked item is admitted this many input
// intervals after the earliest queue exit, not at the exact instant the
// slot frees. The overload state therefore clears visibly instead of
// flickering at the release boundary.
const CapacityReleaseDelayFactor = 3

// Schedule assigns absolute start and end times to every step of every
// item in a single greedy forward pass over the items in spawn order. The
// pass enforces the admission cadence, the admission-queue capacity bound,
// the processing-loop concurrency ceiling, and FIFO human service.
//
// The input items are not mutated. The configuration must have been
// resolved through WithDefaults and Validate first.
func Schedule(items []RawItem, cfg Config) []ScheduledItem {
	return scheduleWithWindows(items, cfg, nil)
}

// scheduleWithWindows runs the pass against pre-computed absence windows.
// The timeline computes the windows once and shares them between the
// scheduler and the presence replay; Schedule derives them on the spot.
func scheduleWithWindows(
	items []RawItem,
	cfg Config,
	windows []Window,
) []ScheduledItem {
	ordered := make([]RawItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].SpawnTime < ordered[b].SpawnTime
	})

	if windows == nil {
		windows = AbsenceWindows(ordered, cfg)
	}

	s := &scheduler{
		cfg:     cfg,
		absence: windows,
	}

	scheduled := make([]ScheduledItem, 0, len(ordered))
	for _, item := range ordered {
		scheduled = append(scheduled, s.scheduleItem(item))
	}

	return scheduled
}

// scheduler carries the running state of one forward pass.
type scheduler struct {
	cfg     Config
	absence []Window

	// nextAdmission is the earliest time the next item may enter the
	// admission pipeline. humanFreeAt is the earliest time the human can
	// start the next service. loopFreeAt serializes the loop when
	// MaxInFlight is 1; loopIntervals backs the slot search for finite
	// ceilings above 1.
	nextAdmission VTimeInMs
	humanFreeAt   VTimeInMs
	loopFreeAt    VTimeInMs
	loopIntervals []Window

	// queueExits holds the input-queue exit times of admitted items that
	// have not yet expired, for the capacity bound.
	queueExits []VTimeInMs
}

func (s *scheduler) scheduleItem(item RawItem) ScheduledItem {
	admit := item.SpawnTime + spawnStepDuration
	if s.nextAdmission > admit {
		admit = s.nextAdmission
	}
	admit = s.applyCapacityBackpressure(admit)

	queueEntry := admit + travelToInputStepDur
	eligible := queueEntry + s.cfg.AgentProcessingTime

	steps := make([]Step, len(item.Steps))
	copy(steps, item.Steps)

	loopDur := loopOccupancy(steps)
	queueExit := s.gateLoopEntry(eligible, loopDur)

	if item.Flow == FlowSupervised {
		queueExit, loopDur = s.stretchSupervision(
			steps, eligible, queueExit, loopDur)
	}

	s.reserveLoop(queueExit, loopDur)

	scheduled := s.stampSteps(item, steps, admit, queueEntry, queueExit)

	s.queueExits = append(s.queueExits, queueExit)
	s.nextAdmission = admit + s.cfg.InputInterval

	return scheduled
}

// applyCapacityBackpressure delays an admission while the admission queue
// is at capacity. The delayed admission lands a few intervals after the
// earliest queue exit (see CapacityReleaseDelayFactor).
func (s *scheduler) applyCapacityBackpressure(admit VTimeInMs) VTimeInMs {
	s.pruneQueueExits(admit)

	if len(s.queueExits) >= s.cfg.MaxInputQueueCapacity {
		earliest := s.popEarliestQueueExit()

		release := earliest +
			CapacityReleaseDelayFactor*s.cfg.InputInterval
		if release > admit {
			admit = release
		}

		s.pruneQueueExits(admit)
	}

	return admit
}

func (s *scheduler) pruneQueueExits(now VTimeInMs) {
	kept := s.queueExits[:0]
	for _, exit := range s.queueExits {
		if exit > now {
			kept = append(kept, exit)
		}
	}
	s.queueExits = kept
}

func (s *scheduler) popEarliestQueueExit() VTimeInMs {
	earliestIdx := 0
	for i, exit := range s.queueExits {
		if exit < s.queueExits[earliestIdx] {
			earliestIdx = i
		}
	}

	earliest := s.queueExits[earliestIdx]
	s.queueExits = append(
		s.queueExits[:earliestIdx], s.queueExits[earliestIdx+1:]...)

	return earliest
}

// stretchSupervision extends a supervision step that overlaps a human
// absence window by the outage duration, then re-gates the loop entry with
// the longer occupancy.
func (s *scheduler) stretchSupervision(
	steps []Step,
	eligible, queueExit, loopDur VTimeInMs,
) (VTimeInMs, VTimeInMs) {
	supIdx := -1
	supStart := queueExit
	for i, step := range steps {
		if step.Kind == StepSupervision {
			supIdx = i
			break
		}
		if i >= loopEntryIndex(steps) {
			supStart += step.Duration
		}
	}

	if supIdx < 0 {
		return queueExit, loopDur
	}

	for _, w := range s.absence {
		if w.Overlaps(supStart, supStart+steps[supIdx].Duration) {
			steps[supIdx].Duration += s.cfg.OutageDuration
			loopDur = loopOccupancy(steps)
			queueExit = s.gateLoopEntry(eligible, loopDur)
			break
		}
	}

	return queueExit, loopDur
}

// gateLoopEntry returns the earliest time at or after ready when an
// occupancy of the given duration may enter the processing loop.
func (s *scheduler) gateLoopEntry(ready, duration VTimeInMs) VTimeInMs {
	switch {
	case !s.cfg.loopBounded():
		return ready
	case s.cfg.MaxInFlight == 1:
		if s.loopFreeAt > ready {
			return s.loopFreeAt
		}
		return ready
	default:
		return s.findEarliestSlot(ready, duration)
	}
}

func (s *scheduler) reserveLoop(start, duration VTimeInMs) {
	switch {
	case !s.cfg.loopBounded():
	case s.cfg.MaxInFlight == 1:
		s.loopFreeAt = start + duration
	default:
		s.loopIntervals = append(s.loopIntervals,
			Window{Start: start, End: start + duration})
	}
}

// findEarliestSlot scans candidate entry times (the ready time and the end
// of every reserved interval) in ascending order and returns the first one
// at which the new occupancy fits under the concurrency ceiling.
func (s *scheduler) findEarliestSlot(ready, duration VTimeInMs) VTimeInMs {
	candidates := make([]VTimeInMs, 0, len(s.loopIntervals)+1)
	candidates = append(candidates, ready)
	for _, iv := range s.loopIntervals {
		if iv.End >= ready {
			candidates = append(candidates, iv.End)
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a] < candidates[b]
	})

	for _, t := range candidates {
		overlapCount := 0
		for _, iv := range s.loopIntervals {
			if iv.Overlaps(t, t+duration) {
				overlapCount++
			}
		}

		if overlapCount+1 <= s.cfg.MaxInFlight {
			return t
		}
	}

	return ready
}

// stampSteps walks the step list and assigns absolute times. The item's
// timeline starts so that the travel-to-input step begins exactly at the
// admission time; the queueing steps absorb all scheduling delay.
func (s *scheduler) stampSteps(
	item RawItem,
	steps []Step,
	admit, queueEntry, queueExit VTimeInMs,
) ScheduledItem {
	scheduled := ScheduledItem{
		ID:         item.ID,
		Flow:       item.Flow,
		IsReturned: item.IsReturned,
		Steps:      make([]ScheduledStep, 0, len(steps)),
	}

	now := admit - spawnStepDuration

	for i, step := range steps {
		duration := step.Duration

		switch step.Kind {
		case StepInputQueue:
			duration = queueExit - queueEntry
		case StepQueue:
			duration = s.humanServiceDuration(steps[i+1:], now)
		}

		stamped := step
		stamped.Duration = duration
		scheduled.Steps = append(scheduled.Steps, ScheduledStep{
			Step:      stamped,
			StartTime: now,
			EndTime:   now + duration,
		})

		now += duration
	}

	scheduled.EndTime = now
	s.projectTimestamps(&scheduled)

	return scheduled
}

// humanServiceDuration resolves how long a manual item stays in the human
// queue: FIFO behind the previous service, pushed out of any absence
// window, plus the fixed service time, plus any wait for a loop slot when
// the item returns to the loop afterwards.
func (s *scheduler) humanServiceDuration(
	rest []Step,
	arrival VTimeInMs,
) VTimeInMs {
	svcStart := arrival
	if s.humanFreeAt > svcStart {
		svcStart = s.humanFreeAt
	}

	for _, w := range s.absence {
		if w.Contains(svcStart) {
			svcStart = w.End
		}
	}

	svcEnd := svcStart + s.cfg.QueueTime
	s.humanFreeAt = svcEnd

	duration := svcEnd - arrival

	if len(rest) > 0 && rest[0].Kind == StepReturn {
		returnDur := totalDuration(rest)
		returnExit := s.gateLoopEntry(svcEnd, returnDur)

		duration += returnExit - svcEnd
		s.humanFreeAt = returnExit
		s.reserveLoop(returnExit, returnDur)
	}

	return duration
}

func (s *scheduler) projectTimestamps(item *ScheduledItem) {
	if step, ok := item.stepOfKind(StepTravelToInput); ok {
		item.TInputAdmission = step.StartTime
	}
	if step, ok := item.stepOfKind(StepInputQueue); ok {
		item.TInputQueueEntry = step.StartTime
		item.TInputQueueExit = step.EndTime
	}
	if step, ok := item.stepOfKind(StepQueue); ok {
		item.HasHumanQueue = true
		item.TQueueEntry = step.StartTime
		item.TQueueExit = step.EndTime
	}
}

// loopOccupancy sums the durations of the steps from travel-to-agent up to
// and including the first to-queue or final-exit step: the time the item
// holds a loop concurrency slot.
func loopOccupancy(steps []Step) VTimeInMs {
	var total VTimeInMs
	counting := false

	for _, s := range steps {
		if s.Kind == StepTravelToAgent {
			counting = true
		}
		if !counting {
			continue
		}

		total += s.Duration

		if s.Kind == StepToQueue || s.Kind == StepExitFinal {
			break
		}
	}

	return total
}

// loopEntryIndex returns the index of the travel-to-agent step.
func loopEntryIndex(steps []Step) int {
	for i, s := range steps {
		if s.Kind == StepTravelToAgent {
			return i
		}
	}
	return len(steps)
}

func totalDuration(steps []Step) VTimeInMs {
	var total VTimeInMs
	for _, s := range steps {
		total += s.Duration
	}
	return total
}
