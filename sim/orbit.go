package sim

import "math"

// SnapOrbit reconciles an orbit's minimum duration with its landing angle.
// It returns the duration of the smallest total rotation that is at least
// minDuration long and ends exactly on targetAngle: the angular gap from
// startAngle to targetAngle plus the smallest non-negative whole number of
// extra full rotations that satisfies the minimum. The extra rotation
// count always rounds up, so an item never stops mid-rotation.
func SnapOrbit(minDuration VTimeInMs, startAngle, targetAngle float64) VTimeInMs {
	target := targetAngle
	for target <= startAngle {
		target += 2 * math.Pi
	}

	minAngle := float64(minDuration) * Speed
	diff := target - startAngle

	n := math.Ceil((minAngle - diff) / (2 * math.Pi))
	if n < 0 {
		n = 0
	}

	totalAngle := diff + n*2*math.Pi

	return VTimeInMs(totalAngle / Speed)
}
