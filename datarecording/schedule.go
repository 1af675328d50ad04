package datarecording

import (
	"github.com/sarchlab/hitlsim/sim"
)

// Table names used by the schedule recorder.
const (
	ScenarioTable = "scenario"
	ItemTable     = "items"
	StepTable     = "steps"
)

// A ScenarioEntry is the one-row record of the configuration that
// produced a schedule.
type ScenarioEntry struct {
	Seed                  uint32
	ItemCount             int
	SpawnJitter           float64
	RampingSpawn          bool
	AutoProcessRate       float64
	ReturnToAgentRate     float64
	MinOrbitTime          float64
	MaxOrbitTime          float64
	QueueTime             float64
	AgentProcessingTime   float64
	InputInterval         float64
	MaxInputQueueCapacity int
	MaxInFlight           int
	SupervisionMean       float64
	SupervisionStdDev     float64
	HasFixedOutage        bool
	OutageStart           float64
	StepBackAfterItems    int
	OutageDuration        float64
}

// An ItemEntry is one scheduled item.
type ItemEntry struct {
	ID              string
	Flow            string
	IsReturned      bool
	StartTime       float64
	EndTime         float64
	InputAdmission  float64
	InputQueueEntry float64
	InputQueueExit  float64
	HasHumanQueue   bool
	QueueEntry      float64
	QueueExit       float64
}

// A StepEntry is one stamped step of one item.
type StepEntry struct {
	ItemID      string
	Position    int
	Kind        string
	StartTime   float64
	EndTime     float64
	StartAngle  float64
	TargetAngle float64
}

// A ScheduleRecorder writes a resolved schedule into a DataRecorder.
type ScheduleRecorder struct {
	recorder DataRecorder
}

// NewScheduleRecorder creates the schedule tables on the recorder.
func NewScheduleRecorder(recorder DataRecorder) *ScheduleRecorder {
	recorder.CreateTable(ScenarioTable, ScenarioEntry{})
	recorder.CreateTable(ItemTable, ItemEntry{})
	recorder.CreateTable(StepTable, StepEntry{})

	return &ScheduleRecorder{recorder: recorder}
}

// RecordConfig records the resolved configuration.
func (r *ScheduleRecorder) RecordConfig(cfg sim.Config) {
	r.recorder.InsertData(ScenarioTable, ScenarioEntry{
		Seed:                  cfg.Seed,
		ItemCount:             cfg.ItemCount,
		SpawnJitter:           float64(cfg.SpawnJitter),
		RampingSpawn:          cfg.RampingSpawn,
		AutoProcessRate:       cfg.AutoProcessRate,
		ReturnToAgentRate:     cfg.ReturnToAgentRate,
		MinOrbitTime:          float64(cfg.MinOrbitTime),
		MaxOrbitTime:          float64(cfg.MaxOrbitTime),
		QueueTime:             float64(cfg.QueueTime),
		AgentProcessingTime:   float64(cfg.AgentProcessingTime),
		InputInterval:         float64(cfg.InputInterval),
		MaxInputQueueCapacity: cfg.MaxInputQueueCapacity,
		MaxInFlight:           cfg.MaxInFlight,
		SupervisionMean:       float64(cfg.SupervisionMean),
		SupervisionStdDev:     float64(cfg.SupervisionStdDev),
		HasFixedOutage:        cfg.HasFixedOutage,
		OutageStart:           float64(cfg.OutageStart),
		StepBackAfterItems:    cfg.StepBackAfterItems,
		OutageDuration:        float64(cfg.OutageDuration),
	})
}

// RecordItems records the items and their stamped steps.
func (r *ScheduleRecorder) RecordItems(items []sim.ScheduledItem) {
	for _, item := range items {
		r.recorder.InsertData(ItemTable, ItemEntry{
			ID:              item.ID,
			Flow:            item.Flow.String(),
			IsReturned:      item.IsReturned,
			StartTime:       float64(item.StartTime()),
			EndTime:         float64(item.EndTime),
			InputAdmission:  float64(item.TInputAdmission),
			InputQueueEntry: float64(item.TInputQueueEntry),
			InputQueueExit:  float64(item.TInputQueueExit),
			HasHumanQueue:   item.HasHumanQueue,
			QueueEntry:      float64(item.TQueueEntry),
			QueueExit:       float64(item.TQueueExit),
		})

		for i, step := range item.Steps {
			r.recorder.InsertData(StepTable, StepEntry{
				ItemID:      item.ID,
				Position:    i,
				Kind:        step.Kind.String(),
				StartTime:   float64(step.StartTime),
				EndTime:     float64(step.EndTime),
				StartAngle:  step.StartAng,
				TargetAngle: step.TargetAng,
			})
		}
	}
}

// Flush forces the buffered rows into the database.
func (r *ScheduleRecorder) Flush() {
	r.recorder.Flush()
}
