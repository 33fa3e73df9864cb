package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the lesser of a and b, a is returned if they are equal.
func Min[T constraints.Ordered](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// Max returns the greater of a and b, a is returned if they are equal.
func Max[T constraints.Ordered](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

func Abs[T constraints.Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Mod returns the modulo of a by n. Unlike the % operator the result takes the sign of n,
// it is never negative if n is positive.
func Mod[T constraints.Integer](a, n T) T {
	r := a % n
	if (r < 0 && n > 0) || (r > 0 && n < 0) {
		r += n
	}
	return r
}

// Aligned reports whether addr is aligned on blocks of size bytes starting at offset.
func Aligned[T constraints.Integer](addr, size, offset T) bool {
	return Mod(addr-offset, size) == 0
}
