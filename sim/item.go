package sim

// A FlowType classifies the path an item takes through the system.
type FlowType int

const (
	// FlowAuto items complete autonomously on the processing loop.
	FlowAuto FlowType = iota

	// FlowManual items are reviewed by the human and may return to the
	// loop afterwards.
	FlowManual

	// FlowSupervised items are watched by the human while on the loop.
	FlowSupervised
)

// String returns the name of the flow type.
func (f FlowType) String() string {
	switch f {
	case FlowAuto:
		return "auto"
	case FlowManual:
		return "manual"
	case FlowSupervised:
		return "supervised"
	default:
		return "unknown"
	}
}

// A RawItem is a work item as produced by the generator: an intrinsic step
// sequence and a natural spawn time, before any scheduling constraint is
// applied. RawItems are immutable after generation.
type RawItem struct {
	ID         string
	SpawnTime  VTimeInMs
	Flow       FlowType
	IsReturned bool
	Steps      []Step
}

// shiftedBy returns a copy of the item with its spawn time offset. The
// step sequence is shared; steps carry no absolute times.
func (r RawItem) shiftedBy(offset VTimeInMs, id string) RawItem {
	r.SpawnTime += offset
	r.ID = id
	return r
}

// A ScheduledItem is a work item with every step stamped with absolute
// start and end times. The T* fields are projections of specific step
// boundaries used by queue-occupancy and human-availability logic; the
// human-queue pair is only meaningful when HasHumanQueue is true.
type ScheduledItem struct {
	ID         string
	Flow       FlowType
	IsReturned bool
	Steps      []ScheduledStep
	EndTime    VTimeInMs

	TInputAdmission  VTimeInMs
	TInputQueueEntry VTimeInMs
	TInputQueueExit  VTimeInMs

	HasHumanQueue bool
	TQueueEntry   VTimeInMs
	TQueueExit    VTimeInMs
}

// StartTime returns the absolute time the item first becomes visible.
func (i ScheduledItem) StartTime() VTimeInMs {
	if len(i.Steps) == 0 {
		return 0
	}
	return i.Steps[0].StartTime
}

// LoopWindows returns the intervals during which the item occupies the
// concurrency-limited processing loop. An interval opens when the item
// starts traveling to the loop (or returning to it) and closes at the end
// of the first to-queue or final-exit step that follows.
func (i ScheduledItem) LoopWindows() []Window {
	var windows []Window
	var open bool
	var start VTimeInMs

	for _, s := range i.Steps {
		switch s.Kind {
		case StepTravelToAgent, StepReturn:
			if !open {
				open = true
				start = s.StartTime
			}
		case StepToQueue, StepExitFinal:
			if open {
				windows = append(windows, Window{Start: start, End: s.EndTime})
				open = false
			}
		}
	}

	return windows
}

// stepOfKind returns the first scheduled step of the given kind.
func (i ScheduledItem) stepOfKind(kind StepKind) (ScheduledStep, bool) {
	for _, s := range i.Steps {
		if s.Kind == kind {
			return s, true
		}
	}
	return ScheduledStep{}, false
}
