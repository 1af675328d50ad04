package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/hitlsim/sim"
)

var _ = Describe("Simulation", func() {
	var (
		mockCtrl   *gomock.Controller
		simulation *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		var err error
		simulation, err = MakeBuilder().
			WithoutMonitoring().
			Build()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should resolve the default scenario", func() {
		Expect(simulation.ID()).ToNot(BeEmpty())
		Expect(simulation.ScenarioName()).To(Equal("efficient"))
		Expect(simulation.Config().ItemCount).To(Equal(5))
		Expect(simulation.GetMonitor()).To(BeNil())
		Expect(simulation.GetRecorder()).To(BeNil())
	})

	It("should apply scenario overrides", func() {
		s, err := MakeBuilder().
			WithoutMonitoring().
			WithScenario("backlog").
			WithOverride("itemCount", 7).
			WithOverride("seed", 9).
			Build()

		Expect(err).ToNot(HaveOccurred())
		Expect(s.Config().ItemCount).To(Equal(7))
		Expect(s.Config().Seed).To(Equal(uint32(9)))
	})

	It("should fail on an unknown scenario", func() {
		_, err := MakeBuilder().
			WithoutMonitoring().
			WithScenario("nope").
			Build()

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unknown scenario"))
	})

	It("should fail on an invalid override", func() {
		_, err := MakeBuilder().
			WithoutMonitoring().
			WithOverride("autoProcessRate", 2.0).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("should refuse a monitor port when monitoring is disabled", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})

	It("should refuse an output file name when recording is disabled", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithOutputFileName("out").
				Build()
		}).To(Panic())
	})

	It("should serve timeline queries", func() {
		Expect(simulation.ItemsAt(0)).ToNot(BeEmpty())
		Expect(simulation.StateAt(-1).Present).To(BeTrue())
		Expect(simulation.ProjectionsAt(7500)).ToNot(BeEmpty())
		Expect(simulation.AbsenceWindowsAt(0)).To(BeEmpty())
	})

	It("should record the schedule through the recorder", func() {
		recorder := NewMockRecorder(mockCtrl)

		s, err := MakeBuilder().
			WithoutMonitoring().
			WithRecorder(recorder).
			Build()
		Expect(err).ToNot(HaveOccurred())

		cfg := s.Config()
		items := sim.Schedule(s.GetTimeline().RawItems(), cfg)

		recorder.EXPECT().RecordConfig(cfg)
		recorder.EXPECT().RecordItems(gomock.Any()).Times(len(items))
		recorder.EXPECT().Flush()

		s.RecordSchedule()
	})

	It("should panic when recording without a recorder", func() {
		Expect(func() { simulation.RecordSchedule() }).To(Panic())
	})
})
