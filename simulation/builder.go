package simulation

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/sarchlab/hitlsim/datarecording"
	"github.com/sarchlab/hitlsim/monitoring"
	"github.com/sarchlab/hitlsim/scenario"
	"github.com/sarchlab/hitlsim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	scenarioName string
	overrides    map[string]any

	recorder       Recorder
	recordOn       bool
	outputFileName string

	monitorOn   bool
	monitorPort int
}

// MakeBuilder creates a builder with the default scenario and monitoring
// enabled.
func MakeBuilder() Builder {
	return Builder{
		scenarioName: "efficient",
		monitorOn:    true,
	}
}

// WithScenario sets the scenario preset to run.
func (b Builder) WithScenario(name string) Builder {
	b.scenarioName = name
	return b
}

// WithOverride overrides one configuration field of the scenario. The key
// follows the configuration field names in lowerCamelCase.
func (b Builder) WithOverride(key string, value any) Builder {
	overrides := make(map[string]any, len(b.overrides)+1)
	for k, v := range b.overrides {
		overrides[k] = v
	}
	overrides[key] = value

	b.overrides = overrides

	return b
}

// WithRecording sets the simulation to record its schedule into a SQLite
// database.
func (b Builder) WithRecording() Builder {
	b.recordOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the schedule
// recorder, without the .sqlite3 suffix.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithRecorder sets a custom recorder instead of the SQLite one.
func (b Builder) WithRecorder(recorder Recorder) Builder {
	b.recorder = recorder
	b.recordOn = true

	return b
}

// WithoutMonitoring sets the simulation to not start a monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation. It fails when the scenario name or an
// override is invalid.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	cfg, err := scenario.Resolve(b.scenarioName, b.overrides)
	if err != nil {
		return nil, err
	}

	timeline, err := sim.NewTimeline(cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", b.scenarioName, err)
	}

	s := &Simulation{
		id:           xid.New().String(),
		scenarioName: b.scenarioName,
		timeline:     timeline,
	}

	if b.recordOn {
		s.recorder = b.recorder
		if s.recorder == nil {
			outputPath := b.outputFileName
			if outputPath == "" {
				outputPath = "hitlsim_" + s.id
			}
			s.recorder = datarecording.NewScheduleRecorder(
				datarecording.New(outputPath))
		}
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterSimulation(s)
		s.monitor.StartServer()
	}

	return s, nil
}
