// Package monitoring serves a running simulation over HTTP for external
// dashboards and rendering layers.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/hitlsim/scenario"
	"github.com/sarchlab/hitlsim/sim"
)

// A SimulationView is the read surface the monitor serves. The simulation
// package implements it.
type SimulationView interface {
	ID() string
	ScenarioName() string
	Config() sim.Config
	ItemsAt(t sim.VTimeInMs) []sim.ScheduledItem
	StateAt(t sim.VTimeInMs) sim.HumanState
	ProjectionsAt(t sim.VTimeInMs) []sim.Projection
	AbsenceWindowsAt(t sim.VTimeInMs) []sim.Window
}

// Monitor turns a simulation into a web server so that external tools can
// query its schedule, presence, and render state.
type Monitor struct {
	view       SimulationView
	portNumber int
	addr       string

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulation registers the simulation to serve.
func (m *Monitor) RegisterSimulation(view SimulationView) {
	m.view = view
}

// StartServer starts the monitor as a web server and returns the address
// it listens on.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()

	r.HandleFunc("/api/info", m.info)
	r.HandleFunc("/api/scenarios", m.listScenarios)
	r.HandleFunc("/api/schedule", m.schedule)
	r.HandleFunc("/api/state", m.renderState)
	r.HandleFunc("/api/presence", m.presence)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/api/inspect", m.inspect)
	r.HandleFunc("/", m.index)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	addr := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	m.addr = addr
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", addr)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()

	return addr
}

// Addr returns the address the server listens on, once started.
func (m *Monitor) Addr() string {
	return m.addr
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"endpoints": []string{
			"/api/info",
			"/api/scenarios",
			"/api/schedule?t=",
			"/api/state?t=",
			"/api/presence?t=",
			"/api/progress",
			"/api/resource",
			"/api/profile",
			"/api/inspect",
		},
	})
}

type infoRsp struct {
	ID       string     `json:"id"`
	Scenario string     `json:"scenario"`
	Config   sim.Config `json:"config"`
}

func (m *Monitor) info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, infoRsp{
		ID:       m.view.ID(),
		Scenario: m.view.ScenarioName(),
		Config:   m.view.Config(),
	})
}

func (m *Monitor) listScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, scenario.Names())
}

type stepRsp struct {
	Kind        string  `json:"kind"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	StartAngle  float64 `json:"start_angle,omitempty"`
	TargetAngle float64 `json:"target_angle,omitempty"`
}

type itemRsp struct {
	ID              string    `json:"id"`
	Flow            string    `json:"flow"`
	IsReturned      bool      `json:"is_returned"`
	StartTime       float64   `json:"start_time"`
	EndTime         float64   `json:"end_time"`
	InputAdmission  float64   `json:"input_admission"`
	InputQueueEntry float64   `json:"input_queue_entry"`
	InputQueueExit  float64   `json:"input_queue_exit"`
	HasHumanQueue   bool      `json:"has_human_queue"`
	QueueEntry      float64   `json:"queue_entry,omitempty"`
	QueueExit       float64   `json:"queue_exit,omitempty"`
	Steps           []stepRsp `json:"steps"`
}

func (m *Monitor) schedule(w http.ResponseWriter, r *http.Request) {
	t, ok := parseTime(w, r)
	if !ok {
		return
	}

	items := m.view.ItemsAt(t)
	rsp := make([]itemRsp, 0, len(items))
	for _, item := range items {
		rsp = append(rsp, itemToRsp(item))
	}

	writeJSON(w, rsp)
}

func itemToRsp(item sim.ScheduledItem) itemRsp {
	rsp := itemRsp{
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
		Steps:           make([]stepRsp, 0, len(item.Steps)),
	}

	for _, step := range item.Steps {
		rsp.Steps = append(rsp.Steps, stepRsp{
			Kind:        step.Kind.String(),
			StartTime:   float64(step.StartTime),
			EndTime:     float64(step.EndTime),
			StartAngle:  step.StartAng,
			TargetAngle: step.TargetAng,
		})
	}

	return rsp
}

type projectionRsp struct {
	ItemID   string  `json:"item_id"`
	Flow     string  `json:"flow"`
	Phase    string  `json:"phase"`
	Kind     string  `json:"kind"`
	Fraction float64 `json:"fraction"`
	Angle    float64 `json:"angle"`
}

func (m *Monitor) renderState(w http.ResponseWriter, r *http.Request) {
	t, ok := parseTime(w, r)
	if !ok {
		return
	}

	projections := m.view.ProjectionsAt(t)
	rsp := make([]projectionRsp, 0, len(projections))
	for _, p := range projections {
		rsp = append(rsp, projectionRsp{
			ItemID:   p.ItemID,
			Flow:     p.Flow.String(),
			Phase:    p.Phase.String(),
			Kind:     p.Step.Kind.String(),
			Fraction: p.Fraction,
			Angle:    p.Angle,
		})
	}

	writeJSON(w, rsp)
}

type windowRsp struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type presenceRsp struct {
	Present        bool        `json:"present"`
	Queue          []string    `json:"queue"`
	AbsenceWindows []windowRsp `json:"absence_windows"`
}

func (m *Monitor) presence(w http.ResponseWriter, r *http.Request) {
	t, ok := parseTime(w, r)
	if !ok {
		return
	}

	state := m.view.StateAt(t)
	rsp := presenceRsp{
		Present: state.Present,
		Queue:   make([]string, 0, len(state.Queue)),
	}
	for _, item := range state.Queue {
		rsp.Queue = append(rsp.Queue, item.ID)
	}
	for _, win := range m.view.AbsenceWindowsAt(t) {
		rsp.AbsenceWindows = append(rsp.AbsenceWindows, windowRsp{
			Start: float64(win.Start),
			End:   float64(win.End),
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func (m *Monitor) inspect(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.view)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

// parseTime reads the t query parameter in milliseconds. A missing
// parameter queries time zero; a malformed one is a client error.
func parseTime(w http.ResponseWriter, r *http.Request) (sim.VTimeInMs, bool) {
	raw := r.URL.Query().Get("t")
	if raw == "" {
		return 0, true
	}

	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "invalid time %q", raw)
		return 0, false
	}

	return sim.VTimeInMs(t), true
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
