// SPDX-License-Identifier: AGPL-3.0-or-later
package process

import (
	"math"

	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/shape"
)

// WallThicknessData is the record of one analysed solid or mesh.
type WallThicknessData struct {
	part      *model.Part
	Init      bool
	Min       float64
	Max       float64
	MinPoints [2]shape.Vec3
	MaxPoints [2]shape.Vec3
}

func (d *WallThicknessData) Part() *model.Part { return d.part }

func newWallThicknessData(p *model.Part) *WallThicknessData {
	return &WallThicknessData{part: p, Min: math.MaxFloat64, Max: -math.MaxFloat64}
}

// WallThicknessProcessor reports the thickness extrema of solids and meshes.
type WallThicknessProcessor struct {
	VoidProcessor
}

// NewWallThicknessProcessor returns a wall thickness processor.
func NewWallThicknessProcessor() *WallThicknessProcessor {
	return &WallThicknessProcessor{}
}

func (w *WallThicknessProcessor) ProcessSolid(p *model.Part, solid *shape.Shape) {
	var wt *model.WallThicknessAnalysis
	if a := p.AnalysisOf(solid.ID); a != nil {
		wt = a.WallThickness
	}
	w.update(p, wt)
}

func (w *WallThicknessProcessor) ProcessMesh(p *model.Part, mesh *model.Mesh) {
	w.update(p, mesh.WallThickness)
}

func (w *WallThicknessProcessor) update(p *model.Part, wt *model.WallThicknessAnalysis) {
	d := newWallThicknessData(p)
	w.add(d)
	if wt == nil {
		return
	}

	d.Init = true
	if wt.Min < d.Min {
		d.Min = wt.Min
		d.MinPoints = wt.MinPoints
	}
	if wt.Max > d.Max {
		d.Max = wt.Max
		d.MaxPoints = wt.MaxPoints
	}
}

// Empty returns an uninitialised record.
func (w *WallThicknessProcessor) Empty(p *model.Part) Data {
	return newWallThicknessData(p)
}
