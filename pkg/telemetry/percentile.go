package telemetry

import "math"

// PercentileIndex returns the zero-based rank used for percentile p over n
// sorted values: ceil(n*p/100)-1 clamped to [0, n-1].
func PercentileIndex(n int, p float64) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Ceil(float64(n)*p/100)) - 1
	return min(max(idx, 0), n-1)
}

// Percentile returns the p-th percentile of values using quickselect.
// It reorders values in place; pass a copy if the order matters.
// An empty slice yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	k := PercentileIndex(len(values), p)
	return quickselect(values, k)
}

// quickselect returns the k-th smallest element, partitioning only the side
// that holds k.
func quickselect(a []float64, k int) float64 {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := partition(a, lo, hi)
		switch {
		case k == p:
			return a[k]
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
	return a[k]
}

// partition uses a median-of-three pivot and returns the pivot's final index.
func partition(a []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if a[mid] < a[lo] {
		a[mid], a[lo] = a[lo], a[mid]
	}
	if a[hi] < a[lo] {
		a[hi], a[lo] = a[lo], a[hi]
	}
	if a[hi] < a[mid] {
		a[hi], a[mid] = a[mid], a[hi]
	}
	// median now at mid; park it at hi
	a[mid], a[hi] = a[hi], a[mid]
	pivot := a[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if a[j] < pivot {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}
