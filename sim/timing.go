package sim

// VTimeInMs defines the time in the simulated space in the unit of
// millisecond.
type VTimeInMs float64

// Speed is the angular speed of items on the processing loop, in rad/ms.
const Speed = 0.003

// Durations of the fixed-length animation segments.
const (
	SpawnDuration  VTimeInMs = 1000
	TravelDuration VTimeInMs = 1000
	ExitDuration   VTimeInMs = 1000

	// CycleDuration is the window over which one batch of items is
	// generated. The infinite timeline is tiled with copies of the batch
	// offset by multiples of this duration.
	CycleDuration VTimeInMs = 15000
)

// The spawn and the travel-to-input segments animate faster than the other
// fixed segments.
const (
	spawnStepDuration    VTimeInMs = 500
	travelToInputStepDur VTimeInMs = 500
)

// A Window is a half-open interval [Start, End) in simulated time.
type Window struct {
	Start VTimeInMs
	End   VTimeInMs
}

// Contains returns true if t falls within the window.
func (w Window) Contains(t VTimeInMs) bool {
	return t >= w.Start && t < w.End
}

// Overlaps returns true if the window intersects [start, end).
func (w Window) Overlaps(start, end VTimeInMs) bool {
	return start < w.End && w.Start < end
}
