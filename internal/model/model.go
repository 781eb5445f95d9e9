// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model holds an imported CAD model: its parts, their boundary and
// mesh representations, and the analysis results the exporting toolkit
// attached to each analysed solid, shell or mesh.
package model

import (
	"github.com/google/uuid"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Model is the root of an imported document.
type Model struct {
	Name  string  `yaml:"name"`
	Parts []*Part `yaml:"parts"`
}

// Part is one scene graph part. Analyses are keyed by the id of the solid or
// shell they were computed for.
type Part struct {
	ID       string      `yaml:"id,omitempty"`
	Name     string      `yaml:"name,omitempty"`
	BRep     *shape.BRep `yaml:"brep,omitempty"`
	Meshes   []*Mesh     `yaml:"meshes,omitempty"`
	Analyses []*Analysis `yaml:"analyses,omitempty"`
}

// Mesh is a polygonal representation of a part.
type Mesh struct {
	ID            uint64                 `yaml:"id,omitempty"`
	WallThickness *WallThicknessAnalysis `yaml:"wall_thickness,omitempty"`
}

// Analysis groups the results computed for one solid or shell. A nil
// section means the corresponding analysis produced nothing.
type Analysis struct {
	Shape         uint64                 `yaml:"shape"`
	Machining     *MachiningAnalysis     `yaml:"machining,omitempty"`
	SheetMetal    *SheetMetalAnalysis    `yaml:"sheet_metal,omitempty"`
	WallThickness *WallThicknessAnalysis `yaml:"wall_thickness,omitempty"`
}

// MachiningAnalysis is the CNC feature recognition and DFM result.
type MachiningAnalysis struct {
	Features       []*feature.Feature `yaml:"features,omitempty"`
	DrillingIssues []*feature.Feature `yaml:"drilling_issues,omitempty"`
	MillingIssues  []*feature.Feature `yaml:"milling_issues,omitempty"`
	TurningIssues  []*feature.Feature `yaml:"turning_issues,omitempty"`
}

// SheetMetalAnalysis is the sheet metal recognition, unfolding and DFM
// result.
type SheetMetalAnalysis struct {
	Features    []*feature.Feature `yaml:"features,omitempty"`
	Issues      []*feature.Feature `yaml:"issues,omitempty"`
	FlatPattern *FlatPattern       `yaml:"flat_pattern,omitempty"`
}

// FlatPattern is the unfolded form of a sheet metal part.
type FlatPattern struct {
	Length    float64      `yaml:"length"`
	Width     float64      `yaml:"width"`
	Thickness float64      `yaml:"thickness"`
	Perimeter float64      `yaml:"perimeter"`
	Unfolded  *shape.Shape `yaml:"unfolded,omitempty"`
}

// WallThicknessAnalysis holds the thickness extrema of a solid or mesh and
// the point pairs where they were measured.
type WallThicknessAnalysis struct {
	Min       float64       `yaml:"min"`
	Max       float64       `yaml:"max"`
	MinPoints [2]shape.Vec3 `yaml:"min_points,flow"`
	MaxPoints [2]shape.Vec3 `yaml:"max_points,flow"`
}

// AnalysisOf returns the analysis recorded for the shape with the given id,
// or nil.
func (p *Part) AnalysisOf(id uint64) *Analysis {
	for _, a := range p.Analyses {
		if a != nil && a.Shape == id {
			return a
		}
	}
	return nil
}

// DisplayName returns the part name or "noname".
func (p *Part) DisplayName() string {
	if p.Name == "" {
		return "noname"
	}
	return p.Name
}

// HasMeshes reports whether the part carries a polygonal representation.
func (p *Part) HasMeshes() bool {
	return len(p.Meshes) > 0
}

// AssignUUIDs gives every part without an id a random UUID.
func (m *Model) AssignUUIDs() {
	for _, p := range m.Parts {
		if p != nil && p.ID == "" {
			p.ID = uuid.NewString()
		}
	}
}

// IsEmpty reports whether the model holds no parts.
func (m *Model) IsEmpty() bool {
	return m == nil || len(m.Parts) == 0
}

// AddPart appends a part to the model.
func (m *Model) AddPart(p *Part) {
	m.Parts = append(m.Parts, p)
}
