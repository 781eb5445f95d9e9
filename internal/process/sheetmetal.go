// SPDX-License-Identifier: AGPL-3.0-or-later
package process

import (
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/shape"
)

// UnfoldedPartData describes the flat pattern of a sheet metal record.
type UnfoldedPartData struct {
	Init      bool
	Length    float64
	Width     float64
	Thickness float64
	Perimeter float64
	Issues    []*feature.Feature
	// BRep holds the unfolded shells of the whole part.
	BRep *shape.BRep
}

// SheetMetalData is the record of one analysed solid or shell.
type SheetMetalData struct {
	part             *model.Part
	IsSheetMetalPart bool
	Features         []*feature.Feature
	Issues           []*feature.Feature
	Unfolded         UnfoldedPartData
}

func (d *SheetMetalData) Part() *model.Part { return d.part }

// SheetMetalProcessor reports sheet metal features, DFM issues and flat
// patterns. The unfolded shells of each part are collected into a separate
// model under the same part id.
type SheetMetalProcessor struct {
	VoidProcessor
	unfolded *model.Model
	current  *shape.BRep
}

// NewSheetMetalProcessor returns a processor adding unfolded parts to
// unfolded.
func NewSheetMetalProcessor(unfolded *model.Model) *SheetMetalProcessor {
	return &SheetMetalProcessor{unfolded: unfolded, current: &shape.BRep{}}
}

func (s *SheetMetalProcessor) ProcessSolid(p *model.Part, solid *shape.Shape) {
	s.update(p, solid)
}

func (s *SheetMetalProcessor) ProcessShell(p *model.Part, shell *shape.Shape) {
	s.update(p, shell)
}

// isFlatPatternIssue reports issues that concern the unfolded part.
func isFlatPatternIssue(k feature.Kind) bool {
	switch k {
	case feature.KindFlatPatternInterferenceIssue,
		feature.KindNonStandardSheetSizeIssue,
		feature.KindNonStandardSheetThicknessIssue:
		return true
	}
	return false
}

func (s *SheetMetalProcessor) update(p *model.Part, sh *shape.Shape) {
	d := &SheetMetalData{part: p, IsSheetMetalPart: true}
	s.add(d)

	a := p.AnalysisOf(sh.ID)
	if a == nil || a.SheetMetal == nil {
		d.IsSheetMetalPart = false
		return
	}
	sm := a.SheetMetal
	d.Features = append(d.Features, sm.Features...)

	if fp := sm.FlatPattern; fp != nil && fp.Unfolded != nil {
		s.current.Append(fp.Unfolded)
		d.Unfolded = UnfoldedPartData{
			Init:      true,
			Length:    fp.Length,
			Width:     fp.Width,
			Thickness: fp.Thickness,
			Perimeter: fp.Perimeter,
			BRep:      s.current,
		}
	}

	for _, issue := range sm.Issues {
		if d.Unfolded.Init && isFlatPatternIssue(issue.Kind) {
			d.Unfolded.Issues = append(d.Unfolded.Issues, issue)
			continue
		}
		d.Issues = append(d.Issues, issue)
	}
}

// PostPartProcess moves the unfolded shells gathered for p into the
// unfolded model.
func (s *SheetMetalProcessor) PostPartProcess(p *model.Part) {
	if s.current.IsEmpty() {
		return
	}
	if s.unfolded != nil {
		s.unfolded.AddPart(&model.Part{ID: p.ID, Name: p.Name, BRep: s.current})
	}
	s.current = &shape.BRep{}
}

// Empty returns a record for a part with no solids or shells.
func (s *SheetMetalProcessor) Empty(p *model.Part) Data {
	return &SheetMetalData{part: p}
}
