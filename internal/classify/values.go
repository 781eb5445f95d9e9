// SPDX-License-Identifier: AGPL-3.0-or-later
package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB display color rendered as "(r, g, b)".
type Color struct {
	R, G, B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Pair is a two-component size such as length x width.
type Pair struct {
	First, Second float64
}

func (p Pair) String() string { return p.Format(2) }

// Format renders the pair with the given number of decimals.
func (p Pair) Format(prec int) string {
	return ff(p.First, prec) + " x " + ff(p.Second, prec)
}

// Dimension is a three-component size (length x width x height).
type Dimension struct {
	X, Y, Z float64
}

func (d Dimension) String() string { return d.Format(2) }

// Format renders the dimension with the given number of decimals.
func (d Dimension) Format(prec int) string {
	return ff(d.X, prec) + " x " + ff(d.Y, prec) + " x " + ff(d.Z, prec)
}

// Direction is a unit vector rendered as "(x, y, z)".
type Direction struct {
	X, Y, Z float64
}

func (d Direction) String() string {
	return "(" + ff(d.X, 2) + ", " + ff(d.Y, 2) + ", " + ff(d.Z, 2) + ")"
}

// Point is a location rendered as "(x, y, z)".
type Point struct {
	X, Y, Z float64
}

func (p Point) String() string {
	return "(" + ff(p.X, 2) + ", " + ff(p.Y, 2) + ", " + ff(p.Z, 2) + ")"
}

// FormatDecimal renders v the way console reports print measured values:
// the shortest exact decimal, always with a fractional part ("12.0"), and
// exponent notation below 1e-4 or from 1e16 on.
func FormatDecimal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func ff(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Param is one reported parameter of a feature.
type Param struct {
	Name  string
	Units string
	Value any
}
