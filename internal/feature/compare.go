// SPDX-License-Identifier: AGPL-3.0-or-later
package feature

import "strings"

// Comparator is a three-way ordering over features: negative when a sorts
// before b, zero when they are equivalent, positive otherwise. It must be a
// strict weak order; equivalent features are merged by OrderedList.
type Comparator func(a, b *Feature) int

// FromLess builds a Comparator from a strict "less" relation. Features for
// which neither a < b nor b < a holds compare equal.
func FromLess(less func(a, b *Feature) bool) Comparator {
	return func(a, b *Feature) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}

// DefaultCompare orders features by kind, then subtype, then parameters
// compared by sorted name, then axis. Geometry references do not take part,
// so two holes of the same size at different places are equivalent.
func DefaultCompare(a, b *Feature) int {
	if c := compareInts(int(a.Kind), int(b.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Subtype, b.Subtype); c != 0 {
		return c
	}
	if c := compareParams(a.Params, b.Params); c != 0 {
		return c
	}
	return compareAxis(a, b)
}

func compareParams(a, b Params) int {
	ak, bk := a.Keys(), b.Keys()
	for i := 0; i < len(ak) && i < len(bk); i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			// The side holding the smaller name has a parameter the
			// other lacks and sorts last.
			return -c
		}
		if c := compareFloats(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	return compareInts(len(ak), len(bk))
}

func compareAxis(a, b *Feature) int {
	switch {
	case a.Axis == nil && b.Axis == nil:
		return 0
	case a.Axis == nil:
		return -1
	case b.Axis == nil:
		return 1
	}
	for i := range a.Axis {
		if c := compareFloats(a.Axis[i], b.Axis[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
