package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// Pairs returns every adjacent pair of s, in order.
func Pairs[S ~[]E, E any](s S) [][2]E {
	if len(s) < 2 {
		return nil
	}

	out := make([][2]E, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		out = append(out, [2]E{s[i-1], s[i]})
	}

	return out
}
