// Package simulation wires a timeline, an optional schedule recorder, and
// an optional monitoring server into one runnable simulation.
package simulation

import (
	"github.com/sarchlab/hitlsim/monitoring"
	"github.com/sarchlab/hitlsim/sim"
)

// A Recorder persists a resolved schedule.
type Recorder interface {
	RecordConfig(cfg sim.Config)
	RecordItems(items []sim.ScheduledItem)
	Flush()
}

// A Simulation owns the timeline of one scenario and the services around
// it. It implements monitoring.SimulationView.
type Simulation struct {
	id           string
	scenarioName string

	timeline *sim.Timeline
	recorder Recorder
	monitor  *monitoring.Monitor
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// ScenarioName returns the name of the scenario the simulation runs.
func (s *Simulation) ScenarioName() string {
	return s.scenarioName
}

// Config returns the resolved configuration.
func (s *Simulation) Config() sim.Config {
	return s.timeline.Config()
}

// ItemsAt returns the scheduled items in the window around the query time.
func (s *Simulation) ItemsAt(t sim.VTimeInMs) []sim.ScheduledItem {
	return s.timeline.ItemsAt(t)
}

// StateAt reconstructs the human reviewer's state at the query time.
func (s *Simulation) StateAt(t sim.VTimeInMs) sim.HumanState {
	return s.timeline.StateAt(t)
}

// ProjectionsAt returns the render projections at the query time.
func (s *Simulation) ProjectionsAt(t sim.VTimeInMs) []sim.Projection {
	return s.timeline.ProjectionsAt(t)
}

// AbsenceWindowsAt returns the human absence windows for the window
// around the query time.
func (s *Simulation) AbsenceWindowsAt(t sim.VTimeInMs) []sim.Window {
	return s.timeline.AbsenceWindowsAt(t)
}

// GetTimeline returns the timeline of the simulation.
func (s *Simulation) GetTimeline() *sim.Timeline {
	return s.timeline
}

// GetMonitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetRecorder returns the recorder, or nil when recording is disabled.
func (s *Simulation) GetRecorder() Recorder {
	return s.recorder
}

// RecordSchedule writes the configuration and one cycle's schedule to the
// recorder. It panics when the simulation was built without one.
func (s *Simulation) RecordSchedule() {
	if s.recorder == nil {
		panic("simulation was built without a recorder")
	}

	cfg := s.timeline.Config()
	items := sim.Schedule(s.timeline.RawItems(), cfg)

	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar(
			"Recording schedule", uint64(len(items)))
		defer s.monitor.CompleteProgressBar(bar)
	}

	s.recorder.RecordConfig(cfg)

	for _, item := range items {
		s.recorder.RecordItems([]sim.ScheduledItem{item})
		if bar != nil {
			bar.IncrementFinished(1)
		}
	}

	s.recorder.Flush()
}

// Terminate flushes the recorder, if any.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Flush()
	}
}
