package datarecording

import (
	"os"
	"strings"
	"time"
)

const runInfoTable = "run_info"

type runInfoEntry struct {
	Property string
	Value    string
}

// A RunRecorder records metadata about the recording run itself: the
// command line, the scenario name, and the start and end times.
type RunRecorder struct {
	recorder DataRecorder
	entries  []runInfoEntry
}

// NewRunRecorder creates the run-info table on the recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(runInfoTable, runInfoEntry{})

	return &RunRecorder{recorder: recorder}
}

// Start buffers the start-of-run metadata.
func (r *RunRecorder) Start(scenarioName string) {
	now := time.Now().Format("2006-01-02 15:04:05.000000000")
	r.entries = append(r.entries,
		runInfoEntry{"Start Time", now},
		runInfoEntry{"Scenario", scenarioName},
		runInfoEntry{"Command", strings.Join(os.Args, " ")},
	)
}

// End writes the buffered metadata plus the end time and flushes.
func (r *RunRecorder) End() {
	for _, entry := range r.entries {
		r.recorder.InsertData(runInfoTable, entry)
	}
	r.entries = nil

	now := time.Now().Format("2006-01-02 15:04:05.000000000")
	r.recorder.InsertData(runInfoTable, runInfoEntry{"End Time", now})

	r.recorder.Flush()
}
