// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classify maps every feature kind to how it is reported: the group
// it falls into, the parameters shown for it and the geometry whose shape
// ids identify it.
package classify

import (
	"math"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Category tells which analysis produced a kind.
type Category int

const (
	CategoryFeature Category = iota
	CategoryDrillingIssue
	CategoryMillingIssue
	CategoryTurningIssue
	CategorySheetMetalIssue
)

// IsIssue reports whether the category holds design issues.
func (c Category) IsIssue() bool {
	return c != CategoryFeature
}

// Label is a group name and its display color.
type Label struct {
	Name  string
	Color Color
}

// Form selects how parameter values are derived from raw feature params.
type Form int

const (
	// FormScalar reports the value unchanged.
	FormScalar Form = iota
	// FormDegrees converts radians to degrees.
	FormDegrees
	// FormPercent converts a fraction to a percentage.
	FormPercent
	// FormPair combines two params into a Pair.
	FormPair
	// FormDimension combines three params into a Dimension.
	FormDimension
	// FormDirection reports the feature axis.
	FormDirection
)

// ParamSpec describes one reported parameter.
type ParamSpec struct {
	Name  string
	Units string
	Form  Form
	Keys  []string
}

// Value computes the reported value of the parameter for f.
func (s ParamSpec) Value(f *feature.Feature) any {
	key := func(i int) float64 {
		if i >= len(s.Keys) {
			return 0
		}
		return f.Param(s.Keys[i])
	}
	switch s.Form {
	case FormDegrees:
		return key(0) * 180 / math.Pi
	case FormPercent:
		return key(0) * 100
	case FormPair:
		return Pair{key(0), key(1)}
	case FormDimension:
		return Dimension{key(0), key(1), key(2)}
	case FormDirection:
		if f.Axis == nil {
			return Direction{}
		}
		return Direction{f.Axis.X(), f.Axis.Y(), f.Axis.Z()}
	default:
		return key(0)
	}
}

// ShapeRef names geometry contributing shape ids. An empty Role means the
// feature's own shape.
type ShapeRef struct {
	Role string
	Type shape.Type
}

// Descriptor is the reporting rule for one kind.
type Descriptor struct {
	Kind     feature.Kind
	Category Category
	// Label is used unless Subtypes holds an entry for the feature subtype.
	Label    Label
	Subtypes map[string]Label
	// Subgroup names one distinct feature in console summaries.
	Subgroup string
	Params   []ParamSpec
	Shapes   []ShapeRef

	// params overrides Params when the parameter set depends on the feature.
	params func(f *feature.Feature) []Param
}

// LabelFor returns the group label of f.
func (d *Descriptor) LabelFor(f *feature.Feature) Label {
	if l, ok := d.Subtypes[f.Subtype]; ok {
		return l
	}
	return d.Label
}

// HasParameters reports whether features of this kind report parameters.
func (d *Descriptor) HasParameters() bool {
	return d.params != nil || len(d.Params) > 0
}

// Parameters returns the reported parameters of f in display order.
func (d *Descriptor) Parameters(f *feature.Feature) []Param {
	if d.params != nil {
		return d.params(f)
	}
	out := make([]Param, 0, len(d.Params))
	for _, s := range d.Params {
		out = append(out, Param{Name: s.Name, Units: s.Units, Value: s.Value(f)})
	}
	return out
}

// ShapeIDs collects the ids of the sub-shapes f touches, reference by
// reference, using ids to resolve each shape.
func (d *Descriptor) ShapeIDs(f *feature.Feature, ids shape.IDMapper) []uint64 {
	out := []uint64{}
	for _, ref := range d.Shapes {
		root := f.Shape
		if ref.Role != "" {
			root = f.Ref(ref.Role)
		}
		shape.Iterate(root, ref.Type, func(s *shape.Shape) bool {
			out = append(out, ids.ShapeID(s))
			return true
		})
	}
	return out
}
