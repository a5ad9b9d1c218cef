package utils

// Any returns true if any element in slice satisfies f
func Any[T any](slice []T, f func(T) bool) bool {
	for _, v := range slice {
		if f(v) {
			return true
		}
	}
	return false
}

// Min returns the smaller one
func Min[T int | int64 | float64](a, b T) T {
	if a < b {
		return a
	}
	return b
}
