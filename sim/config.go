package sim

import "fmt"

// Default configuration values. WithDefaults applies the ones whose zero
// value is never meaningful; SpawnJitter and QueueTime stay untouched
// because zero is a valid setting for both, and their defaults are only
// used where a configuration is built from nothing.
const (
	DefaultSeed                  uint32    = 123
	DefaultItemCount                       = 5
	DefaultSpawnJitter           VTimeInMs = 500
	DefaultMinOrbitTime          VTimeInMs = 1000
	DefaultMaxOrbitTime          VTimeInMs = 3000
	DefaultQueueTime             VTimeInMs = 1500
	DefaultAgentProcessingTime   VTimeInMs = 500
	DefaultSupervisionStdDev     VTimeInMs = 500
	DefaultMaxInputQueueCapacity           = 6

	// minInputInterval bounds the derived admission cadence from below
	// when the configuration does not set one explicitly.
	minInputInterval VTimeInMs = 50
)

// A Config describes one simulation scenario. The zero value is not
// usable directly; resolve it through WithDefaults and Validate (the
// scenario package does both).
type Config struct {
	// Seed drives all stochastic generation. A fixed seed produces a
	// byte-identical schedule on every run.
	Seed uint32

	// ItemCount is the number of items generated per cycle, before the
	// cycle-boundary drop rule is applied.
	ItemCount int

	// SpawnJitter is the maximum random offset added to each item's
	// evenly spaced spawn time.
	SpawnJitter VTimeInMs

	// RampingSpawn concentrates spawn times near the end of the cycle
	// under a cubic easing curve, modeling accelerating load.
	RampingSpawn bool

	// AutoProcessRate is the probability that an item completes
	// autonomously. ReturnToAgentRate is the probability that a
	// human-reviewed item returns to the loop afterwards.
	AutoProcessRate   float64
	ReturnToAgentRate float64

	// MinOrbitTime and MaxOrbitTime bound the sampled orbit duration.
	MinOrbitTime VTimeInMs
	MaxOrbitTime VTimeInMs

	// QueueTime is the human service duration per item.
	QueueTime VTimeInMs

	// AgentProcessingTime is the dwell in the admission queue before an
	// item may leave it.
	AgentProcessingTime VTimeInMs

	// InputInterval is the minimum spacing between successive admissions.
	// Zero derives max(50ms, CycleDuration/ItemCount).
	InputInterval VTimeInMs

	// MaxInputQueueCapacity is the backpressure threshold on the
	// admission queue. Zero applies the default of 6.
	MaxInputQueueCapacity int

	// MaxInFlight is the concurrency ceiling on the processing loop.
	// Zero means unbounded.
	MaxInFlight int

	// SupervisionMean, when positive, switches generation to the
	// closely-supervised flow with Gaussian supervision durations.
	SupervisionMean   VTimeInMs
	SupervisionStdDev VTimeInMs

	// HasFixedOutage places one explicit human-unavailability window at
	// OutageStart. StepBackAfterItems, when positive, instead derives
	// outage windows from the number of consecutively served items.
	// OutageDuration is the length of each window in both modes.
	HasFixedOutage     bool
	OutageStart        VTimeInMs
	StepBackAfterItems int
	OutageDuration     VTimeInMs
}

// WithDefaults returns the configuration with unset fields replaced by
// their default values.
func (c Config) WithDefaults() Config {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.ItemCount == 0 {
		c.ItemCount = DefaultItemCount
	}
	if c.MinOrbitTime == 0 {
		c.MinOrbitTime = DefaultMinOrbitTime
	}
	if c.MaxOrbitTime == 0 {
		c.MaxOrbitTime = DefaultMaxOrbitTime
	}
	if c.AgentProcessingTime == 0 {
		c.AgentProcessingTime = DefaultAgentProcessingTime
	}
	if c.SupervisionStdDev == 0 {
		c.SupervisionStdDev = DefaultSupervisionStdDev
	}
	if c.MaxInputQueueCapacity == 0 {
		c.MaxInputQueueCapacity = DefaultMaxInputQueueCapacity
	}
	if c.InputInterval == 0 {
		c.InputInterval = CycleDuration / VTimeInMs(c.ItemCount)
		if c.InputInterval < minInputInterval {
			c.InputInterval = minInputInterval
		}
	}

	return c
}

// Validate checks the configuration and returns a descriptive error for
// the first problem found. Scheduling never starts on an invalid
// configuration; there is no partial execution mode.
func (c Config) Validate() error {
	if c.ItemCount <= 0 {
		return fmt.Errorf("item count must be positive, got %d", c.ItemCount)
	}

	if c.AutoProcessRate < 0 || c.AutoProcessRate > 1 {
		return fmt.Errorf("auto-process rate must be in [0, 1], got %g",
			c.AutoProcessRate)
	}

	if c.ReturnToAgentRate < 0 || c.ReturnToAgentRate > 1 {
		return fmt.Errorf("return-to-agent rate must be in [0, 1], got %g",
			c.ReturnToAgentRate)
	}

	if c.SpawnJitter < 0 {
		return fmt.Errorf("spawn jitter must not be negative, got %g",
			float64(c.SpawnJitter))
	}

	if c.MinOrbitTime < 0 || c.MaxOrbitTime < c.MinOrbitTime {
		return fmt.Errorf(
			"orbit time bounds must satisfy 0 <= min <= max, got [%g, %g]",
			float64(c.MinOrbitTime), float64(c.MaxOrbitTime))
	}

	if c.QueueTime < 0 {
		return fmt.Errorf("queue time must not be negative, got %g",
			float64(c.QueueTime))
	}

	if c.AgentProcessingTime < 0 {
		return fmt.Errorf("agent processing time must not be negative, got %g",
			float64(c.AgentProcessingTime))
	}

	if c.InputInterval <= 0 {
		return fmt.Errorf(
			"input interval must be positive, got %g; "+
				"a zero interval would admit items without bound",
			float64(c.InputInterval))
	}

	if c.MaxInputQueueCapacity < 1 {
		return fmt.Errorf("input queue capacity must be at least 1, got %d",
			c.MaxInputQueueCapacity)
	}

	if c.MaxInFlight < 0 {
		return fmt.Errorf(
			"max in-flight must be 0 (unbounded) or at least 1, got %d",
			c.MaxInFlight)
	}

	if c.SupervisionMean < 0 || c.SupervisionStdDev < 0 {
		return fmt.Errorf(
			"supervision duration parameters must not be negative, "+
				"got mean %g, stddev %g",
			float64(c.SupervisionMean), float64(c.SupervisionStdDev))
	}

	if c.StepBackAfterItems < 0 {
		return fmt.Errorf("step-back item count must not be negative, got %d",
			c.StepBackAfterItems)
	}

	if c.OutageDuration < 0 {
		return fmt.Errorf("outage duration must not be negative, got %g",
			float64(c.OutageDuration))
	}

	return nil
}

// loopBounded reports whether the processing loop has a concurrency
// ceiling at all.
func (c Config) loopBounded() bool {
	return c.MaxInFlight > 0
}
