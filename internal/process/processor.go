// SPDX-License-Identifier: AGPL-3.0-or-later

// Package process turns the analysis results attached to model parts into
// per-part report records, one processor per manufacturing process.
package process

import (
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Data is a per-part report record. Its concrete type selects the report
// layout: *MachiningData, *SheetMetalData or *WallThicknessData.
type Data interface {
	Part() *model.Part
}

// Processor visits the representations of each part and accumulates Data.
type Processor interface {
	ProcessSolid(p *model.Part, solid *shape.Shape)
	ProcessShell(p *model.Part, shell *shape.Shape)
	ProcessMesh(p *model.Part, mesh *model.Mesh)
	PostPartProcess(p *model.Part)

	// Empty returns the record reported for a part none of whose
	// representations produced one.
	Empty(p *model.Part) Data
	Data() []Data
}

// VoidProcessor implements every visit method as a no-op and stores
// records. Concrete processors embed it and override what they handle.
type VoidProcessor struct {
	data []Data
}

func (v *VoidProcessor) ProcessSolid(*model.Part, *shape.Shape) {}
func (v *VoidProcessor) ProcessShell(*model.Part, *shape.Shape) {}
func (v *VoidProcessor) ProcessMesh(*model.Part, *model.Mesh)   {}
func (v *VoidProcessor) PostPartProcess(*model.Part)            {}

// Data returns the records in the order they were added.
func (v *VoidProcessor) Data() []Data { return v.data }

func (v *VoidProcessor) add(d Data) { v.data = append(v.data, d) }

// Apply runs proc over every part of m exactly once. Parts with a boundary
// representation dispatch the solids and shells directly under each body;
// parts without one dispatch their meshes. It returns the records produced,
// with an Empty record standing in for each part that produced none.
func Apply(m *model.Model, proc Processor) []Data {
	var out []Data
	seen := make(map[*model.Part]struct{}, len(m.Parts))
	for _, p := range m.Parts {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		before := len(proc.Data())
		if p.BRep != nil {
			for _, body := range p.BRep.Bodies {
				visitBody(p, body, proc)
			}
		} else {
			for _, mesh := range p.Meshes {
				if mesh != nil {
					proc.ProcessMesh(p, mesh)
				}
			}
		}
		proc.PostPartProcess(p)

		produced := proc.Data()[before:]
		if len(produced) == 0 {
			if d := proc.Empty(p); d != nil {
				out = append(out, d)
			}
			continue
		}
		out = append(out, produced...)
	}
	return out
}

// visitBody dispatches the body itself when it is a solid or shell,
// otherwise its direct children.
func visitBody(p *model.Part, body *shape.Shape, proc Processor) {
	if body == nil {
		return
	}
	shapes := body.Children
	if body.Type == shape.TypeSolid || body.Type == shape.TypeShell {
		shapes = []*shape.Shape{body}
	}
	for _, s := range shapes {
		if s == nil {
			continue
		}
		switch s.Type {
		case shape.TypeSolid:
			proc.ProcessSolid(p, s)
		case shape.TypeShell:
			proc.ProcessShell(p, s)
		}
	}
}
