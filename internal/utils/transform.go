package utils

// Transform applies fn to each element of ts and returns the slice of
// results, preserving order.
func Transform[T, R any](ts []T, fn func(T) R) []R {
	result := make([]R, len(ts))
	for i, t := range ts {
		result[i] = fn(t)
	}
	return result
}
