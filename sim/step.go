package sim

import "fmt"

// A StepKind identifies one segment of an item's journey through the
// system. The set is closed; both the scheduler and the projection logic
// switch exhaustively over it.
type StepKind int

// The step kinds, in the order they can appear in an item's journey.
const (
	StepSpawn StepKind = iota
	StepTravelToInput
	StepInputQueue
	StepTravelToAgent
	StepOrbit
	StepSupervision
	StepToQueue
	StepQueue
	StepReturn
	StepExit
	StepExitFinal

	numStepKinds
)

// String returns the name of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepSpawn:
		return "spawn"
	case StepTravelToInput:
		return "travel_to_input"
	case StepInputQueue:
		return "input_queue"
	case StepTravelToAgent:
		return "travel_to_agent"
	case StepOrbit:
		return "orbit"
	case StepSupervision:
		return "supervision"
	case StepToQueue:
		return "to_queue"
	case StepQueue:
		return "queue"
	case StepReturn:
		return "return"
	case StepExit:
		return "exit"
	case StepExitFinal:
		return "exit_final"
	default:
		panic(fmt.Sprintf("invalid step kind %d", int(k)))
	}
}

// A Step is a typed interval in an item's journey. Duration is the nominal
// length of the step before scheduling. The queueing kinds (StepInputQueue,
// StepQueue) carry a duration of 0, meaning the scheduler determines how
// long the item actually waits, not that the wait is instantaneous.
type Step struct {
	Kind     StepKind
	Duration VTimeInMs

	// StartAng and TargetAng are set for StepOrbit only.
	StartAng  float64
	TargetAng float64
}

// A ScheduledStep is a step with its absolute start and end time resolved.
type ScheduledStep struct {
	Step

	StartTime VTimeInMs
	EndTime   VTimeInMs
}

// Elapsed returns the fraction of the step completed at time t, in [0, 1].
func (s ScheduledStep) Elapsed(t VTimeInMs) float64 {
	if s.EndTime <= s.StartTime {
		return 1
	}

	p := float64((t - s.StartTime) / (s.EndTime - s.StartTime))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}

	return p
}
