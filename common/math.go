package common

import "cmp"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// InverseLerp returns where v lies between a and b, clamped to [0, 1].
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp((v-a)/(b-a), 0, 1)
}
