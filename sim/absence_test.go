package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AbsenceWindows", func() {
	It("should return nothing when no outage is configured", func() {
		cfg := scheduleConfig(nil)

		Expect(AbsenceWindows(GenerateItems(cfg), cfg)).To(BeEmpty())
	})

	It("should return the fixed outage window verbatim", func() {
		cfg := scheduleConfig(func(c *Config) {
			c.HasFixedOutage = true
			c.OutageStart = 4000
			c.OutageDuration = 2500
		})

		windows := AbsenceWindows(GenerateItems(cfg), cfg)

		Expect(windows).To(HaveLen(1))
		Expect(windows[0].Start).To(BeNumerically("==", 4000))
		Expect(windows[0].End).To(BeNumerically("==", 6500))
	})

	It("should open one window per threshold of served items", func() {
		cfg := scheduleConfig(func(c *Config) {
			c.ItemCount = 4
			c.SpawnJitter = 0
			c.AutoProcessRate = 0
			c.ReturnToAgentRate = 0
			c.StepBackAfterItems = 2
			c.OutageDuration = 3000
		})

		windows := AbsenceWindows(GenerateItems(cfg), cfg)

		// Four manual items with a threshold of two: the counter resets
		// after each window, so exactly two open.
		Expect(windows).To(HaveLen(2))
		Expect(windows[1].Start).To(BeNumerically(">", windows[0].End))

		for _, w := range windows {
			Expect(w.End - w.Start).To(BeNumerically(
				"==", cfg.OutageDuration+humanReturnDelay))
		}
	})

	It("should not count autonomous completions toward the threshold", func() {
		cfg := scheduleConfig(func(c *Config) {
			c.AutoProcessRate = 1.0
			c.StepBackAfterItems = 1
			c.OutageDuration = 3000
		})

		Expect(AbsenceWindows(GenerateItems(cfg), cfg)).To(BeEmpty())
	})

	It("should ignore the fixed outage once step-back is configured", func() {
		cfg := scheduleConfig(func(c *Config) {
			c.ItemCount = 4
			c.SpawnJitter = 0
			c.AutoProcessRate = 0
			c.ReturnToAgentRate = 0
			c.HasFixedOutage = true
			c.OutageStart = 1
			c.StepBackAfterItems = 2
			c.OutageDuration = 3000
		})

		windows := AbsenceWindows(GenerateItems(cfg), cfg)

		Expect(windows).To(HaveLen(2))
		Expect(windows[0].Start).To(BeNumerically(">", 1))
	})
})
