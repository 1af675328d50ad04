package sim

import (
	"fmt"
	"math"
	"sync"
)

// Queries are served from a bounded window of cycles around the query
// time. Items from older cycles have long left the system; items from
// later cycles have not spawned.
const (
	LookbackCycles  = 6
	LookaheadCycles = 10
)

// A Timeline serves time queries over an effectively infinite horizon by
// tiling copies of the per-cycle item batch. Raw items are generated once;
// the scheduled window around a query time is memoized per cycle, so the
// per-frame cost of a query is the cheap replay, not a reschedule.
//
// A Timeline is safe for concurrent queries.
type Timeline struct {
	cfg Config
	raw []RawItem

	mu           sync.Mutex
	cacheValid   bool
	cacheCycle   int
	cacheItems   []ScheduledItem
	cacheWindows []Window
}

// NewTimeline resolves and validates the configuration, generates the
// cycle batch, and returns a ready-to-query timeline.
func NewTimeline(cfg Config) (*Timeline, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Timeline{cfg: cfg, raw: GenerateItems(cfg)}, nil
}

// Config returns the resolved configuration.
func (tl *Timeline) Config() Config {
	return tl.cfg
}

// RawItems returns the generated per-cycle batch.
func (tl *Timeline) RawItems() []RawItem {
	return tl.raw
}

// ItemsAt returns every scheduled item in the window around the query
// time. Items are in scheduling (spawn) order.
func (tl *Timeline) ItemsAt(t VTimeInMs) []ScheduledItem {
	items, _ := tl.windowAt(t)
	return items
}

// StateAt reconstructs the human reviewer's state at the query time.
func (tl *Timeline) StateAt(t VTimeInMs) HumanState {
	items, windows := tl.windowAt(t)
	return StateAt(items, windows, t)
}

// ProjectionsAt returns the render projection of every item visible at
// the query time.
func (tl *Timeline) ProjectionsAt(t VTimeInMs) []Projection {
	items, _ := tl.windowAt(t)

	var projections []Projection
	for _, item := range items {
		if p, ok := Project(item, t); ok {
			projections = append(projections, p)
		}
	}

	return projections
}

// AbsenceWindowsAt returns the human absence windows for the window
// around the query time.
func (tl *Timeline) AbsenceWindowsAt(t VTimeInMs) []Window {
	_, windows := tl.windowAt(t)
	return windows
}

func (tl *Timeline) windowAt(t VTimeInMs) ([]ScheduledItem, []Window) {
	cycle := int(math.Floor(float64(t) / float64(CycleDuration)))
	if cycle < 0 {
		cycle = 0
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.cacheValid && tl.cacheCycle == cycle {
		return tl.cacheItems, tl.cacheWindows
	}

	first := cycle - LookbackCycles
	if first < 0 {
		first = 0
	}
	last := cycle + LookaheadCycles

	batch := make([]RawItem, 0, (last-first+1)*len(tl.raw))
	for c := first; c <= last; c++ {
		offset := VTimeInMs(c) * CycleDuration
		for _, r := range tl.raw {
			batch = append(batch,
				r.shiftedBy(offset, fmt.Sprintf("c%d-%s", c, r.ID)))
		}
	}

	windows := AbsenceWindows(batch, tl.cfg)
	items := scheduleWithWindows(batch, tl.cfg, windows)

	tl.cacheValid = true
	tl.cacheCycle = cycle
	tl.cacheItems = items
	tl.cacheWindows = windows

	return items, windows
}
