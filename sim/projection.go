package sim

// A Phase names what an item is visually doing during a step. The
// rendering layer maps (phase, fraction, angle) to a position; that
// mapping lives outside this package.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseTravelingInput
	PhaseQueuedInput
	PhaseTravelingAgent
	PhaseOrbiting
	PhaseSupervised
	PhaseTravelingToHuman
	PhaseQueued
	PhaseReturning
	PhaseExiting
	PhaseExitingFinal
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseTravelingInput:
		return "traveling_input"
	case PhaseQueuedInput:
		return "queued_input"
	case PhaseTravelingAgent:
		return "traveling_agent"
	case PhaseOrbiting:
		return "orbiting"
	case PhaseSupervised:
		return "supervised"
	case PhaseTravelingToHuman:
		return "traveling_to"
	case PhaseQueued:
		return "queued"
	case PhaseReturning:
		return "returning"
	case PhaseExiting:
		return "exiting"
	case PhaseExitingFinal:
		return "exiting_final"
	default:
		return "unknown"
	}
}

// A Projection is the data the rendering layer needs to draw one item at
// one instant: the active step, how far through it the item is, the
// visual phase, and, while orbiting, the current angle on the loop.
type Projection struct {
	ItemID   string
	Flow     FlowType
	Step     ScheduledStep
	Fraction float64
	Phase    Phase
	Angle    float64
}

// Project returns the projection of an item at the query time. The second
// return value is false when the item is not visible at that time: before
// its spawn, after its exit, or at a zero-length boundary instant. An
// out-of-range query is not an error.
func Project(item ScheduledItem, t VTimeInMs) (Projection, bool) {
	if len(item.Steps) == 0 {
		return Projection{}, false
	}
	if t < item.StartTime() || t > item.EndTime {
		return Projection{}, false
	}

	for _, step := range item.Steps {
		if t < step.StartTime || t >= step.EndTime {
			continue
		}

		p := Projection{
			ItemID:   item.ID,
			Flow:     item.Flow,
			Step:     step,
			Fraction: step.Elapsed(t),
			Phase:    phaseOf(step.Kind),
		}

		if step.Kind == StepOrbit {
			p.Angle = step.StartAng +
				p.Fraction*float64(step.Duration)*Speed
		}

		return p, true
	}

	return Projection{}, false
}

func phaseOf(kind StepKind) Phase {
	switch kind {
	case StepSpawn:
		return PhaseSpawning
	case StepTravelToInput:
		return PhaseTravelingInput
	case StepInputQueue:
		return PhaseQueuedInput
	case StepTravelToAgent:
		return PhaseTravelingAgent
	case StepOrbit:
		return PhaseOrbiting
	case StepSupervision:
		return PhaseSupervised
	case StepToQueue:
		return PhaseTravelingToHuman
	case StepQueue:
		return PhaseQueued
	case StepReturn:
		return PhaseReturning
	case StepExit:
		return PhaseExiting
	case StepExitFinal:
		return PhaseExitingFinal
	default:
		panic("invalid step kind " + kind.String())
	}
}
