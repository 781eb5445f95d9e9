// SPDX-License-Identifier: AGPL-3.0-or-later
package shape

// BRep is a boundary representation made of bodies. Each body is a shape
// whose direct children are the solids and shells it is built from.
type BRep struct {
	Bodies []*Shape `yaml:"bodies"`
}

// ShapeID returns the id stored on the shape. Shapes without an id map to 0.
func (b *BRep) ShapeID(s *Shape) uint64 {
	if s == nil {
		return 0
	}
	return s.ID
}

// HasShapes reports whether any body holds a shape of type t.
func (b *BRep) HasShapes(t Type) bool {
	if b == nil {
		return false
	}
	for _, body := range b.Bodies {
		if Contains(body, t) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the representation has no bodies.
func (b *BRep) IsEmpty() bool {
	return b == nil || len(b.Bodies) == 0
}

// Append adds a body wrapping the given shapes.
func (b *BRep) Append(shapes ...*Shape) {
	if len(shapes) == 0 {
		return
	}
	b.Bodies = append(b.Bodies, &Shape{Type: TypeCompound, Children: shapes})
}
