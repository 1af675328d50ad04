package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hitlsim/sim"
)

type timelineView struct {
	timeline *sim.Timeline
}

func (v *timelineView) ID() string           { return "test-sim" }
func (v *timelineView) ScenarioName() string { return "efficient" }
func (v *timelineView) Config() sim.Config   { return v.timeline.Config() }

func (v *timelineView) ItemsAt(t sim.VTimeInMs) []sim.ScheduledItem {
	return v.timeline.ItemsAt(t)
}

func (v *timelineView) StateAt(t sim.VTimeInMs) sim.HumanState {
	return v.timeline.StateAt(t)
}

func (v *timelineView) ProjectionsAt(t sim.VTimeInMs) []sim.Projection {
	return v.timeline.ProjectionsAt(t)
}

func (v *timelineView) AbsenceWindowsAt(t sim.VTimeInMs) []sim.Window {
	return v.timeline.AbsenceWindowsAt(t)
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		timeline, err := sim.NewTimeline(sim.Config{
			ItemCount:         5,
			SpawnJitter:       500,
			AutoProcessRate:   0.4,
			ReturnToAgentRate: 0.5,
			QueueTime:         1000,
		})
		Expect(err).ToNot(HaveOccurred())

		m = NewMonitor()
		m.RegisterSimulation(&timelineView{timeline: timeline})
	})

	It("should refuse privileged port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should serve the simulation info", func() {
		w := httptest.NewRecorder()
		m.info(w, httptest.NewRequest("GET", "/api/info", nil))

		var rsp infoRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.ID).To(Equal("test-sim"))
		Expect(rsp.Scenario).To(Equal("efficient"))
		Expect(rsp.Config.ItemCount).To(Equal(5))
	})

	It("should list the available scenarios", func() {
		w := httptest.NewRecorder()
		m.listScenarios(w, httptest.NewRequest("GET", "/api/scenarios", nil))

		var names []string
		Expect(json.Unmarshal(w.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(ContainElement("efficient"))
	})

	It("should serve the schedule around a query time", func() {
		w := httptest.NewRecorder()
		m.schedule(w,
			httptest.NewRequest("GET", "/api/schedule?t=7500", nil))

		var items []itemRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &items)).To(Succeed())
		Expect(items).ToNot(BeEmpty())
		Expect(items[0].Steps).ToNot(BeEmpty())
	})

	It("should serve the human presence", func() {
		w := httptest.NewRecorder()
		m.presence(w, httptest.NewRequest("GET", "/api/presence?t=0", nil))

		var rsp presenceRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Present).To(BeTrue())
	})

	It("should serve render projections", func() {
		w := httptest.NewRecorder()
		m.renderState(w,
			httptest.NewRequest("GET", "/api/state?t=7500", nil))

		var rsp []projectionRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		for _, p := range rsp {
			Expect(p.Fraction).To(And(
				BeNumerically(">=", 0),
				BeNumerically("<=", 1),
			))
		}
	})

	It("should default a missing query time to zero", func() {
		w := httptest.NewRecorder()
		m.schedule(w, httptest.NewRequest("GET", "/api/schedule", nil))

		Expect(w.Code).To(Equal(200))
	})

	It("should reject a malformed query time", func() {
		w := httptest.NewRecorder()
		m.schedule(w,
			httptest.NewRequest("GET", "/api/schedule?t=later", nil))

		Expect(w.Code).To(Equal(400))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("recording", 10)
		bar.IncrementFinished(4)

		w := httptest.NewRecorder()
		m.listProgressBars(w,
			httptest.NewRequest("GET", "/api/progress", nil))

		var bars []*ProgressBar
		Expect(json.Unmarshal(w.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Finished).To(Equal(uint64(4)))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(BeEmpty())
	})
})
