package sim

import (
	"math"
	"sort"
	"strconv"
)

// Supervision durations are Gaussian draws clamped to a floor so a lucky
// draw cannot make the review appear instantaneous.
const minSupervisionTime VTimeInMs = 200

// The return trip from the human queue always orbits from the bottom of
// the loop back to the apex with this minimum duration.
const (
	returnOrbitMinTime  VTimeInMs = 2000
	returnOrbitStartAng           = 2.5 * math.Pi
)

// Orbit landing angles. Items enter the loop at the left (pi) and leave
// from the apex (1.5 pi); the supervised flow parks at the right (2 pi)
// for review first.
const (
	orbitEntryAng       = math.Pi
	orbitApexAng        = 1.5 * math.Pi
	orbitRightAng       = 2 * math.Pi
	supervisedResumeAng = 0.0
)

// GenerateItems produces one cycle's worth of raw work items from the
// configuration. The output is ordered by spawn time. Generation is a pure
// function of the configuration: the same seed yields the same items.
//
// The configuration must have been resolved through WithDefaults and
// Validate first.
func GenerateItems(cfg Config) []RawItem {
	src := NewSource(cfg.Seed)
	interval := CycleDuration / VTimeInMs(cfg.ItemCount)

	items := make([]RawItem, 0, cfg.ItemCount)

	for i := 0; i < cfg.ItemCount; i++ {
		jitter := VTimeInMs(src.NextUniform()) * cfg.SpawnJitter

		var spawn VTimeInMs
		if cfg.RampingSpawn {
			// Cubic ease toward the end of the cycle: spawn gaps shrink
			// as the cycle progresses, modeling accelerating load. The
			// curve tops out where the drop rule would begin.
			v := 1 - float64(i)/float64(cfg.ItemCount)
			spawn = (CycleDuration-SpawnDuration)*VTimeInMs(1-v*v*v) +
				jitter
		} else {
			spawn = VTimeInMs(i)*interval + jitter
		}

		rollAuto := src.NextUniform()
		isAuto := rollAuto < cfg.AutoProcessRate

		orbitRaw := cfg.MinOrbitTime +
			VTimeInMs(src.NextUniform())*(cfg.MaxOrbitTime-cfg.MinOrbitTime)

		// Items spawning too close to the cycle boundary would not have
		// time to animate their spawn; they are dropped for this cycle.
		// The draws above are still consumed so later items keep their
		// positions in the stream.
		dropped := spawn >= CycleDuration-SpawnDuration

		var item RawItem
		switch {
		case cfg.SupervisionMean > 0:
			supDur := VTimeInMs(src.NextGaussian(
				float64(cfg.SupervisionMean), float64(cfg.SupervisionStdDev)))
			if supDur < minSupervisionTime {
				supDur = minSupervisionTime
			}
			item = supervisedItem(cfg, spawn, supDur)
		case isAuto:
			item = autoItem(spawn, orbitRaw)
		default:
			rollReturn := src.NextUniform()
			item = manualItem(spawn, orbitRaw,
				rollReturn < cfg.ReturnToAgentRate)
		}

		if dropped {
			continue
		}

		item.ID = strconv.Itoa(i + 1)
		items = append(items, item)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].SpawnTime < items[b].SpawnTime
	})

	return items
}

func commonIngressSteps() []Step {
	return []Step{
		{Kind: StepSpawn, Duration: spawnStepDuration},
		{Kind: StepTravelToInput, Duration: travelToInputStepDur},
		{Kind: StepInputQueue},
		{Kind: StepTravelToAgent, Duration: TravelDuration},
	}
}

func autoItem(spawn, orbitRaw VTimeInMs) RawItem {
	steps := commonIngressSteps()
	steps = append(steps,
		orbitStep(orbitRaw, orbitEntryAng, orbitApexAng),
		Step{Kind: StepExitFinal, Duration: ExitDuration},
	)

	return RawItem{SpawnTime: spawn, Flow: FlowAuto, Steps: steps}
}

func manualItem(spawn, orbitRaw VTimeInMs, returned bool) RawItem {
	steps := commonIngressSteps()
	steps = append(steps,
		orbitStep(orbitRaw, orbitEntryAng, orbitApexAng),
		Step{Kind: StepToQueue, Duration: TravelDuration},
		Step{Kind: StepQueue},
	)

	if returned {
		steps = append(steps,
			Step{Kind: StepReturn, Duration: TravelDuration},
			orbitStep(returnOrbitMinTime, returnOrbitStartAng, orbitApexAng),
			Step{Kind: StepExitFinal, Duration: ExitDuration},
		)
	} else {
		steps = append(steps, Step{Kind: StepExit, Duration: ExitDuration})
	}

	return RawItem{
		SpawnTime:  spawn,
		Flow:       FlowManual,
		IsReturned: returned,
		Steps:      steps,
	}
}

func supervisedItem(cfg Config, spawn, supDur VTimeInMs) RawItem {
	steps := commonIngressSteps()
	steps = append(steps,
		orbitStep(cfg.MinOrbitTime/2, orbitEntryAng, orbitRightAng),
		Step{Kind: StepSupervision, Duration: supDur},
		orbitStep(cfg.MinOrbitTime*0.75, supervisedResumeAng, orbitApexAng),
		Step{Kind: StepExitFinal, Duration: ExitDuration},
	)

	return RawItem{SpawnTime: spawn, Flow: FlowSupervised, Steps: steps}
}

func orbitStep(minDur VTimeInMs, startAng, targetAng float64) Step {
	return Step{
		Kind:      StepOrbit,
		Duration:  SnapOrbit(minDur, startAng, targetAng),
		StartAng:  startAng,
		TargetAng: targetAng,
	}
}
