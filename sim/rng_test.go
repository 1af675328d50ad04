package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Source", func() {
	It("should produce identical streams for identical seeds", func() {
		a := NewSource(42)
		b := NewSource(42)

		for i := 0; i < 1000; i++ {
			Expect(a.NextUniform()).To(Equal(b.NextUniform()))
		}
	})

	It("should produce different streams for different seeds", func() {
		a := NewSource(1)
		b := NewSource(2)

		same := true
		for i := 0; i < 10; i++ {
			if a.NextUniform() != b.NextUniform() {
				same = false
			}
		}

		Expect(same).To(BeFalse())
	})

	It("should draw uniforms in [0, 1)", func() {
		src := NewSource(7)

		for i := 0; i < 10000; i++ {
			u := src.NextUniform()
			Expect(u).To(And(
				BeNumerically(">=", 0),
				BeNumerically("<", 1),
			))
		}
	})

	It("should never produce NaN from the Gaussian transform", func() {
		src := NewSource(99)

		for i := 0; i < 10000; i++ {
			g := src.NextGaussian(1500, 500)
			Expect(math.IsNaN(g)).To(BeFalse())
			Expect(math.IsInf(g, 0)).To(BeFalse())
		}
	})

	It("should reproduce the Gaussian stream for a fixed seed", func() {
		a := NewSource(123)
		b := NewSource(123)

		for i := 0; i < 100; i++ {
			Expect(a.NextGaussian(0, 1)).To(Equal(b.NextGaussian(0, 1)))
		}
	})
})
