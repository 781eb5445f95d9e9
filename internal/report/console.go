// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"io"

	"github.com/bartekus/dfmreport/internal/classify"
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/group"
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Inspection selects what the console report prints for each entity.
type Inspection int

const (
	InspectFeatures Inspection = iota
	InspectIssues
	InspectWallThickness
	InspectFlatPattern
)

func (i Inspection) String() string {
	switch i {
	case InspectFeatures:
		return "features"
	case InspectIssues:
		return "issues"
	case InspectWallThickness:
		return "wall thickness"
	case InspectFlatPattern:
		return "flat pattern"
	default:
		return "unknown"
	}
}

// Console prints human readable per-entity summaries.
type Console struct {
	out io.Writer
	cmp feature.Comparator
}

// NewConsole returns a console printer writing to out. A nil cmp selects
// feature.DefaultCompare.
func NewConsole(out io.Writer, cmp feature.Comparator) *Console {
	if cmp == nil {
		cmp = feature.DefaultCompare
	}
	return &Console{out: out, cmp: cmp}
}

// PrintFeatures prints the features grouped by label with one block per
// distinct parameter set.
func (c *Console) PrintFeatures(features []*feature.Feature) {
	c.printGrouped(features, "features")
}

// PrintIssues prints DFM issues the same way as PrintFeatures.
func (c *Console) PrintIssues(issues []*feature.Feature) {
	c.printGrouped(issues, "issues")
}

func (c *Console) printGrouped(list []*feature.Feature, typeLabel string) {
	m := group.NewManager(c.cmp)
	for _, f := range feature.Flatten(list) {
		d, ok := classify.Lookup(f.Kind)
		if !ok {
			continue
		}
		m.AddFeature(d.LabelFor(f).Name, d.Subgroup, d.HasParameters(), f)
	}
	m.Print(c.out, typeLabel, classify.PrintParameters)
}

// PrintWallThickness prints the thickness extrema of one entity.
func (c *Console) PrintWallThickness(wt *model.WallThicknessAnalysis) {
	if wt == nil {
		fmt.Fprint(c.out, "    Failed to analyze the wall thickness of this entity.\n\n")
		return
	}
	fmt.Fprintf(c.out, "    Min thickness = %s mm\n", formatMM(wt.Min))
	fmt.Fprintf(c.out, "    Max thickness = %s mm\n\n", formatMM(wt.Max))
}

// PrintFlatPattern prints the dimensions of an unfolded part.
func (c *Console) PrintFlatPattern(fp *model.FlatPattern) {
	if fp == nil {
		fmt.Fprint(c.out, "    Failed to create flat pattern.\n\n")
		return
	}
	fmt.Fprintln(c.out, "    Flat Pattern with:")
	classify.PrintParameter(c.out, "length", fp.Length, "mm")
	classify.PrintParameter(c.out, "width", fp.Width, "mm")
	classify.PrintParameter(c.out, "thickness", fp.Thickness, "mm")
	classify.PrintParameter(c.out, "perimeter", fp.Perimeter, "mm")
	fmt.Fprintln(c.out)
}

func formatMM(v float64) string {
	return classify.FormatDecimal(v)
}

// Inspect prints the model name followed by the selected results of every
// entity of m analysed for typ.
func (c *Console) Inspect(m *model.Model, what Inspection, typ process.Type) error {
	switch what {
	case InspectFeatures, InspectIssues:
		if !typ.IsMachining() && typ != process.TypeSheetMetal {
			return fmt.Errorf("process %s does not report %s", typ, what)
		}
	case InspectFlatPattern:
		if typ != process.TypeSheetMetal {
			return fmt.Errorf("process %s does not report %s", typ, what)
		}
	case InspectWallThickness:
		typ = process.TypeWallThickness
	default:
		return fmt.Errorf("unsupported inspection %d", what)
	}

	fmt.Fprintf(c.out, "Model: %s\n\n", m.Name)
	process.Apply(m, &inspector{c: c, what: what, typ: typ})
	return nil
}

// inspector prints while the model is walked. It never produces records.
type inspector struct {
	process.VoidProcessor
	c    *Console
	what Inspection
	typ  process.Type

	partIndex int
	entity    int
}

func (in *inspector) header(p *model.Part, kind string) {
	fmt.Fprintf(in.c.out, "Part #%d [%q] - %s #%d has:\n", in.partIndex, p.DisplayName(), kind, in.entity)
	in.entity++
}

func (in *inspector) ProcessSolid(p *model.Part, s *shape.Shape) {
	in.header(p, "solid")
	in.print(p.AnalysisOf(s.ID))
}

func (in *inspector) ProcessShell(p *model.Part, s *shape.Shape) {
	if in.typ != process.TypeSheetMetal {
		return
	}
	in.header(p, "shell")
	in.print(p.AnalysisOf(s.ID))
}

func (in *inspector) ProcessMesh(p *model.Part, mesh *model.Mesh) {
	if in.typ != process.TypeWallThickness {
		return
	}
	in.header(p, "mesh")
	in.c.PrintWallThickness(mesh.WallThickness)
}

func (in *inspector) PostPartProcess(*model.Part) {
	in.partIndex++
	in.entity = 0
}

func (in *inspector) Empty(*model.Part) process.Data { return nil }

func (in *inspector) print(a *model.Analysis) {
	if a == nil {
		a = &model.Analysis{}
	}
	switch {
	case in.typ == process.TypeWallThickness:
		in.c.PrintWallThickness(a.WallThickness)
	case in.typ.IsMachining():
		var features []*feature.Feature
		if a.Machining != nil {
			features = a.Machining.Features
		}
		if in.what == InspectFeatures {
			in.c.PrintFeatures(features)
		} else {
			in.c.PrintIssues(process.MachiningIssues(a.Machining, in.typ.Operation()))
		}
	default:
		sm := a.SheetMetal
		if sm == nil {
			sm = &model.SheetMetalAnalysis{}
		}
		switch in.what {
		case InspectFeatures:
			in.c.PrintFeatures(sm.Features)
		case InspectIssues:
			in.c.PrintIssues(sm.Issues)
		case InspectFlatPattern:
			in.c.PrintFlatPattern(sm.FlatPattern)
		}
	}
}
