// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feature holds the recognised manufacturing features and design
// issues of a part, together with the ordering used to group them.
package feature

import (
	"sort"

	"github.com/bartekus/dfmreport/internal/shape"
)

// Params holds the numeric parameters of a feature keyed by name
// (radius, depth, expected_min_diameter, ...). Lengths are millimetres,
// angles radians, fractions in [0, 1].
type Params map[string]float64

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Feature is one recognised feature or design issue.
//
// Shape is the geometry of a feature. Refs name the geometry an issue
// points at (hole, bend, flange, first_notch, ...). Children are only set
// on composite kinds.
type Feature struct {
	Kind     Kind                    `yaml:"kind"`
	Subtype  string                  `yaml:"subtype,omitempty"`
	Params   Params                  `yaml:"params,omitempty"`
	Axis     *shape.Vec3             `yaml:"axis,omitempty,flow"`
	Shape    *shape.Shape            `yaml:"shape,omitempty"`
	Refs     map[string]*shape.Shape `yaml:"refs,omitempty"`
	Children []*Feature              `yaml:"children,omitempty"`
}

// Param returns the named parameter, or 0 when absent.
func (f *Feature) Param(name string) float64 {
	return f.Params[name]
}

// HasParam reports whether the named parameter is present.
func (f *Feature) HasParam(name string) bool {
	_, ok := f.Params[name]
	return ok
}

// Ref returns the referenced geometry for role, or nil.
func (f *Feature) Ref(role string) *shape.Shape {
	return f.Refs[role]
}

// IsComposite reports whether f only groups other features.
func (f *Feature) IsComposite() bool {
	return f.Kind.IsComposite()
}

// Flatten expands composites recursively and returns the leaf features in
// encounter order.
func Flatten(list []*Feature) []*Feature {
	var out []*Feature
	var walk func(fs []*Feature)
	walk = func(fs []*Feature) {
		for _, f := range fs {
			if f == nil {
				continue
			}
			if f.IsComposite() {
				walk(f.Children)
				continue
			}
			out = append(out, f)
		}
	}
	walk(list)
	return out
}
