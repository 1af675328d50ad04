package sim

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func queueItem(id string, entry, exit VTimeInMs) ScheduledItem {
	return ScheduledItem{
		ID:            id,
		Flow:          FlowManual,
		HasHumanQueue: true,
		TQueueEntry:   entry,
		TQueueExit:    exit,
	}
}

var _ = Describe("StateAt", func() {
	It("should be a pure function of the query time", func() {
		cfg := scheduleConfig(nil)
		items := Schedule(GenerateItems(cfg), cfg)

		// Query out of order, then forward. A stateless replay must give
		// the same answer regardless of the query history.
		times := []VTimeInMs{12000, 300, 7500, 300, 20000, 7500}
		backward := make([]HumanState, len(times))
		for i, t := range times {
			backward[i] = StateAt(items, nil, t)
		}

		for i, t := range times {
			Expect(reflect.DeepEqual(
				StateAt(items, nil, t), backward[i])).To(BeTrue())
		}
	})

	It("should report an empty queue and a present human before any arrival", func() {
		items := []ScheduledItem{queueItem("1", 1000, 2000)}

		state := StateAt(items, nil, 0)

		Expect(state.Present).To(BeTrue())
		Expect(state.Queue).To(BeEmpty())
	})

	It("should list queued items in arrival order", func() {
		items := []ScheduledItem{
			queueItem("late", 300, 900),
			queueItem("early", 100, 900),
			queueItem("gone", 50, 200),
		}

		state := StateAt(items, nil, 500)

		Expect(state.Queue).To(HaveLen(2))
		Expect(state.Queue[0].ID).To(Equal("early"))
		Expect(state.Queue[1].ID).To(Equal("late"))
	})

	It("should step the human away when a service drains the queue", func() {
		items := []ScheduledItem{queueItem("1", 0, 1000)}

		Expect(StateAt(items, nil, 500).Present).To(BeTrue())
		Expect(StateAt(items, nil, 1000).Present).To(BeFalse())
		Expect(StateAt(items, nil, 5000).Present).To(BeFalse())
	})

	It("should bring the human back once the queue grows past the busy threshold", func() {
		items := []ScheduledItem{queueItem("drain", 0, 10)}
		for i := 0; i <= humanBusyThreshold; i++ {
			items = append(items, queueItem("b",
				100+VTimeInMs(i), 1000))
		}

		// Depth at the threshold is not enough; one past it is.
		atThreshold := 100 + VTimeInMs(humanBusyThreshold) - 1
		Expect(StateAt(items, nil, atThreshold).Present).To(BeFalse())
		Expect(StateAt(items, nil,
			100+VTimeInMs(humanBusyThreshold)).Present).To(BeTrue())
	})

	It("should apply same-time completions before arrivals", func() {
		items := []ScheduledItem{
			queueItem("leaving", 0, 300),
			queueItem("arriving", 300, 600),
		}

		state := StateAt(items, nil, 300)

		// The completion at 300 drains the queue first, so the human has
		// stepped away even though a new item arrives at the same instant.
		Expect(state.Present).To(BeFalse())
		Expect(state.Queue).To(HaveLen(1))
		Expect(state.Queue[0].ID).To(Equal("arriving"))
	})

	It("should report absence inside a window regardless of queue depth", func() {
		items := []ScheduledItem{queueItem("1", 0, 5000)}
		windows := []Window{{Start: 1000, End: 2000}}

		Expect(StateAt(items, windows, 1500).Present).To(BeFalse())
		Expect(StateAt(items, windows, 2000).Present).To(BeTrue())
	})

	It("should report absence during scheduled step-back windows", func() {
		cfg := scheduleConfig(func(c *Config) {
			c.AutoProcessRate = 0
			c.ReturnToAgentRate = 0
			c.StepBackAfterItems = 2
			c.OutageDuration = 3000
		})

		raw := GenerateItems(cfg)
		windows := AbsenceWindows(raw, cfg)
		items := Schedule(raw, cfg)

		Expect(windows).ToNot(BeEmpty())

		mid := (windows[0].Start + windows[0].End) / 2
		Expect(StateAt(items, windows, mid).Present).To(BeFalse())
	})
})
