package utils

// SafeSlice returns at most max leading elements; max <= 0 means all of them.
func SafeSlice[T any](slice []T, max int) []T {
	if max <= 0 || len(slice) < max {
		return slice
	}
	return slice[:max]
}
