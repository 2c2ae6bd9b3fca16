package timeline

// insertAt places v at index i, clamping i into [0, len(s)].
func insertAt[T any](s []T, i int, v T) ([]T, int) {
	if i < 0 || i > len(s) {
		i = len(s)
	}
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s, i
}

func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// move relocates the element at oldIndex to newIndex. It reports false and
// leaves s untouched when either index is out of range or they are equal.
func move[T any](s []T, oldIndex, newIndex int) bool {
	if oldIndex < 0 || oldIndex >= len(s) || newIndex < 0 || newIndex >= len(s) || oldIndex == newIndex {
		return false
	}
	v := s[oldIndex]
	if oldIndex < newIndex {
		copy(s[oldIndex:newIndex], s[oldIndex+1:newIndex+1])
	} else {
		copy(s[newIndex+1:oldIndex+1], s[newIndex:oldIndex])
	}
	s[newIndex] = v
	return true
}

func indexOf[T comparable](s []T, v T) int {
	for i, candidate := range s {
		if candidate == v {
			return i
		}
	}
	return -1
}
