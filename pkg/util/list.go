package util

// Clamp limits i to the range [lo, hi]
func Clamp(i, lo, hi int) int {
	return max(lo, min(i, hi))
}

// InRange returns true if i is a valid index of a list of length n
func InRange(i, n int) bool {
	return i >= 0 && i < n
}

// Append returns a new slice holding s followed by v
func Append[T any](s []T, v T) []T {
	res := make([]T, len(s), len(s)+1)
	copy(res, s)
	return append(res, v)
}

// RemoveAt returns a new slice without the element at index i, along with
// the removed element. An out-of-range index returns s unchanged and false
func RemoveAt[T any](s []T, i int) ([]T, T, bool) {
	var zero T
	if !InRange(i, len(s)) {
		return s, zero, false
	}
	res := make([]T, 0, len(s)-1)
	res = append(res, s[:i]...)
	res = append(res, s[i+1:]...)
	return res, s[i], true
}

// InsertAt returns a new slice with v inserted before index i. The index is
// clamped to [0, len(s)]
func InsertAt[T any](s []T, i int, v T) []T {
	i = Clamp(i, 0, len(s))
	res := make([]T, 0, len(s)+1)
	res = append(res, s[:i]...)
	res = append(res, v)
	return append(res, s[i:]...)
}

// ReplaceAt returns a new slice with the element at index i replaced by v
func ReplaceAt[T any](s []T, i int, v T) []T {
	res := make([]T, len(s))
	copy(res, s)
	res[i] = v
	return res
}

// Move returns a new slice with the element at from relocated to to, the
// other elements keeping their relative order. from must be a valid index;
// to is clamped into range. The bool reports whether anything moved
func Move[T any](s []T, from, to int) ([]T, bool) {
	if !InRange(from, len(s)) {
		return s, false
	}
	to = Clamp(to, 0, len(s)-1)
	if from == to {
		return s, false
	}
	rest, v, _ := RemoveAt(s, from)
	return InsertAt(rest, to, v), true
}
