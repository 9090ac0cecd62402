package widget

import "math"

// EaseOutCubic maps linear progress t in [0, 1] onto a curve that starts fast and settles.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// CountUp returns the value shown at progress t of an animation from `from` to `to`.
// t is clamped to [0, 1].
func CountUp(from, to, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return from + (to-from)*EaseOutCubic(t)
}
