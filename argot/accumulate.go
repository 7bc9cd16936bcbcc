package argot

// Accumulator merges a newly parsed occurrence of an argument into the value
// accumulated so far. It is invoked once per successful parse; prev is the
// holder's current value (the registered default before any occurrence, the
// zero value for mandatory definitions). All "first occurrence creates state,
// later occurrences merge" logic lives here.
type Accumulator[T, U any] func(value T, prev U) U

// KeepLast discards any previous occurrence; the last one wins.
func KeepLast[T any]() Accumulator[T, T] {
	return func(value T, _ T) T {
		return value
	}
}

// AppendTo collects every occurrence into a slice, in token order.
func AppendTo[T any]() Accumulator[T, []T] {
	return func(value T, prev []T) []T {
		return append(prev, value)
	}
}

// AppendUnique collects occurrences into a slice, dropping duplicates while
// preserving first-seen order.
func AppendUnique[T comparable]() Accumulator[T, []T] {
	return func(value T, prev []T) []T {
		for _, p := range prev {
			if p == value {
				return prev
			}
		}
		return append(prev, value)
	}
}

// CountSigned counts boolean occurrences: true adds one, false subtracts one.
// Pairing this with an inverse flag gives a counter the inverse decrements.
func CountSigned() Accumulator[bool, int] {
	return func(value bool, prev int) int {
		if value {
			return prev + 1
		}
		return prev - 1
	}
}
