// SPDX-License-Identifier: AGPL-3.0-or-later
package process

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned for a process name that is not supported.
var ErrUnknownType = errors.New("unknown process")

// Type is a manufacturing process selected by name on the command line.
type Type int

const (
	TypeUndefined Type = iota
	TypeWallThickness
	TypeMachiningMilling
	TypeMachiningTurning
	TypeSheetMetal
)

var typeNames = map[Type]string{
	TypeWallThickness:    "wall_thickness",
	TypeMachiningMilling: "machining_milling",
	TypeMachiningTurning: "machining_turning",
	TypeSheetMetal:       "sheet_metal",
}

// Types returns the supported process types in declaration order.
func Types() []Type {
	return []Type{TypeWallThickness, TypeMachiningMilling, TypeMachiningTurning, TypeSheetMetal}
}

// TypeNames returns the names of the supported processes.
func TypeNames() []string {
	out := make([]string, 0, len(typeNames))
	for _, t := range Types() {
		out = append(out, t.String())
	}
	return out
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "undefined"
}

// ParseType resolves a process name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeUndefined, fmt.Errorf("%w %q (expected one of: %s)", ErrUnknownType, name, strings.Join(TypeNames(), ", "))
}

// Operation returns the machining operation of a machining process.
func (t Type) Operation() Operation {
	switch t {
	case TypeMachiningMilling:
		return OperationMilling
	case TypeMachiningTurning:
		return OperationLatheMilling
	default:
		return OperationUndefined
	}
}

// IsMachining reports whether t is one of the machining processes.
func (t Type) IsMachining() bool {
	return t == TypeMachiningMilling || t == TypeMachiningTurning
}
