package listquery

import (
	"cmp"
	"strings"
	"time"
)

// By orders records by an ordered key. Strings compare byte-wise, so the
// order is case-sensitive and independent of locale.
func By[T any, K cmp.Ordered](key func(T) K) CompareFunc[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ByText is By for strings, spelled out for readability at call sites.
func ByText[T any](key func(T) string) CompareFunc[T] {
	return func(a, b T) int {
		return strings.Compare(key(a), key(b))
	}
}

func ByTime[T any](key func(T) time.Time) CompareFunc[T] {
	return func(a, b T) int {
		return key(a).Compare(key(b))
	}
}

// NullsFirst lifts a comparator over optional values: absent values sort
// before present ones.
func NullsFirst[T any, V any](key func(T) (V, bool), compare func(a, b V) int) CompareFunc[T] {
	return func(a, b T) int {
		av, aok := key(a)
		bv, bok := key(b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		return compare(av, bv)
	}
}
