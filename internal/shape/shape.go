// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shape models the boundary-representation graph that analysis
// results point into. Shapes are identified by opaque numeric ids assigned
// by the exporting CAD toolkit.
package shape

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Type is the topological type of a shape.
type Type int

const (
	TypeUnknown Type = iota
	TypeCompound
	TypeSolid
	TypeShell
	TypeFace
	TypeWire
	TypeEdge
	TypeVertex
)

var typeNames = map[Type]string{
	TypeCompound: "compound",
	TypeSolid:    "solid",
	TypeShell:    "shell",
	TypeFace:     "face",
	TypeWire:     "wire",
	TypeEdge:     "edge",
	TypeVertex:   "vertex",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a type name to its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown shape type %q", name)
}

func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

// Vec3 is a point or direction in model space.
type Vec3 [3]float64

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

// Shape is a node of the boundary-representation graph.
type Shape struct {
	ID       uint64   `yaml:"id,omitempty"`
	Type     Type     `yaml:"type"`
	Children []*Shape `yaml:"children,omitempty"`
}

// IDMapper resolves the stable id of a shape.
type IDMapper interface {
	ShapeID(s *Shape) uint64
}

// Iterate calls fn for every distinct shape of type t reachable from root,
// root included. Shapes shared by several parents are visited once.
// Returning false from fn stops the walk.
func Iterate(root *Shape, t Type, fn func(*Shape) bool) {
	if root == nil {
		return
	}
	seen := make(map[uint64]struct{})
	var walk func(s *Shape) bool
	walk = func(s *Shape) bool {
		if s.Type == t {
			if s.ID != 0 {
				if _, dup := seen[s.ID]; dup {
					return true
				}
				seen[s.ID] = struct{}{}
			}
			if !fn(s) {
				return false
			}
		}
		for _, c := range s.Children {
			if c == nil {
				continue
			}
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
}

// Collect returns the shapes of type t under root in visit order.
func Collect(root *Shape, t Type) []*Shape {
	var out []*Shape
	Iterate(root, t, func(s *Shape) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Contains reports whether root holds at least one shape of type t.
func Contains(root *Shape, t Type) bool {
	found := false
	Iterate(root, t, func(*Shape) bool {
		found = true
		return false
	})
	return found
}
