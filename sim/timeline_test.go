package sim

import (
	"reflect"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newTestTimeline(mod func(*Config)) *Timeline {
	cfg := Config{
		Seed:              42,
		ItemCount:         6,
		SpawnJitter:       500,
		AutoProcessRate:   0.4,
		ReturnToAgentRate: 0.5,
		QueueTime:         1000,
	}
	if mod != nil {
		mod(&cfg)
	}

	tl, err := NewTimeline(cfg)
	Expect(err).ToNot(HaveOccurred())

	return tl
}

var _ = Describe("Timeline", func() {
	It("should reject an invalid configuration", func() {
		_, err := NewTimeline(Config{AutoProcessRate: 2})

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("auto-process rate"))
	})

	It("should answer identically across instances with the same configuration", func() {
		a := newTestTimeline(nil)
		b := newTestTimeline(nil)

		for _, t := range []VTimeInMs{0, 7500, 40000, 200000} {
			Expect(reflect.DeepEqual(a.ItemsAt(t), b.ItemsAt(t))).To(BeTrue())
			Expect(reflect.DeepEqual(a.StateAt(t), b.StateAt(t))).To(BeTrue())
		}
	})

	It("should prefix item identifiers with their cycle", func() {
		tl := newTestTimeline(nil)

		items := tl.ItemsAt(0)
		Expect(items).ToNot(BeEmpty())

		seen := map[string]bool{}
		for _, item := range items {
			Expect(item.ID).To(MatchRegexp(`^c\d+-\d+$`))
			seen[item.ID] = true
		}
		Expect(seen).To(HaveKey("c0-1"))
	})

	It("should tile lookback and lookahead cycles around the query", func() {
		tl := newTestTimeline(nil)

		hasCycle := func(items []ScheduledItem, prefix string) bool {
			for _, item := range items {
				if strings.HasPrefix(item.ID, prefix) {
					return true
				}
			}
			return false
		}

		early := tl.ItemsAt(5 * CycleDuration)
		Expect(hasCycle(early, "c0-")).To(BeTrue())
		Expect(hasCycle(early, "c15-")).To(BeTrue())
		Expect(hasCycle(early, "c16-")).To(BeFalse())

		late := tl.ItemsAt(20 * CycleDuration)
		Expect(hasCycle(late, "c14-")).To(BeTrue())
		Expect(hasCycle(late, "c0-")).To(BeFalse())
	})

	It("should reuse the scheduled window within a cycle", func() {
		tl := newTestTimeline(nil)

		a := tl.ItemsAt(1000)
		b := tl.ItemsAt(CycleDuration - 1)

		// Same cycle, same memoized slice.
		Expect(&a[0]).To(BeIdenticalTo(&b[0]))
	})

	It("should resolve queries before time zero to a quiet system", func() {
		tl := newTestTimeline(nil)

		state := tl.StateAt(-500)

		Expect(state.Present).To(BeTrue())
		Expect(state.Queue).To(BeEmpty())
		Expect(tl.ProjectionsAt(-500)).To(BeEmpty())
	})

	It("should project visible items with fractions in range", func() {
		tl := newTestTimeline(nil)

		projections := tl.ProjectionsAt(4 * CycleDuration)

		Expect(projections).ToNot(BeEmpty())
		for _, p := range projections {
			Expect(p.Fraction).To(And(
				BeNumerically(">=", 0),
				BeNumerically("<=", 1),
			))
		}
	})

	It("should serve concurrent queries", func() {
		tl := newTestTimeline(nil)
		want := tl.StateAt(7500)

		matched := make([]bool, 8)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(offset int) {
				defer wg.Done()
				tl.ItemsAt(VTimeInMs(offset) * CycleDuration)
				matched[offset] = reflect.DeepEqual(tl.StateAt(7500), want)
			}(i)
		}
		wg.Wait()

		for _, ok := range matched {
			Expect(ok).To(BeTrue())
		}
	})
})
