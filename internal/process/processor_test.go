package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/shape"
)

func solid(id uint64) *shape.Shape { return &shape.Shape{ID: id, Type: shape.TypeSolid} }
func shell(id uint64) *shape.Shape { return &shape.Shape{ID: id, Type: shape.TypeShell} }

func brep(shapes ...*shape.Shape) *shape.BRep {
	b := &shape.BRep{}
	b.Append(shapes...)
	return b
}

func issue(k feature.Kind) *feature.Feature { return &feature.Feature{Kind: k} }

type recorder struct {
	VoidProcessor
	visits []string
}

func (r *recorder) ProcessSolid(p *model.Part, s *shape.Shape) {
	r.visits = append(r.visits, p.Name+":solid")
	r.add(&MachiningData{part: p})
}

func (r *recorder) ProcessShell(p *model.Part, s *shape.Shape) {
	r.visits = append(r.visits, p.Name+":shell")
}

func (r *recorder) ProcessMesh(p *model.Part, m *model.Mesh) {
	r.visits = append(r.visits, p.Name+":mesh")
}

func (r *recorder) PostPartProcess(p *model.Part) {
	r.visits = append(r.visits, p.Name+":post")
}

func (r *recorder) Empty(p *model.Part) Data {
	return &WallThicknessData{part: p}
}

func TestApply_DispatchOrder(t *testing.T) {
	shared := &model.Part{Name: "a", BRep: brep(solid(1), shell(2), &shape.Shape{ID: 3, Type: shape.TypeFace})}
	m := &model.Model{Parts: []*model.Part{
		shared,
		{Name: "b", Meshes: []*model.Mesh{{ID: 9}}},
		shared,
		{Name: "c", BRep: &shape.BRep{Bodies: []*shape.Shape{solid(5)}}},
	}}

	r := &recorder{}
	data := Apply(m, r)

	assert.Equal(t, []string{"a:solid", "a:shell", "a:post", "b:mesh", "b:post", "c:solid", "c:post"}, r.visits)
	require.Len(t, data, 3)
	assert.IsType(t, &MachiningData{}, data[0])
	assert.IsType(t, &WallThicknessData{}, data[1], "part without records gets an empty record")
	assert.Equal(t, "b", data[1].Part().Name)
	assert.Equal(t, "c", data[2].Part().Name)
}

func TestApply_BRepWinsOverMeshes(t *testing.T) {
	p := &model.Part{Name: "p", BRep: &shape.BRep{}, Meshes: []*model.Mesh{{ID: 1}}}
	r := &recorder{}
	Apply(&model.Model{Parts: []*model.Part{p}}, r)
	assert.Equal(t, []string{"p:post"}, r.visits)
}

func machiningPart() *model.Part {
	return &model.Part{
		ID:   "m1",
		BRep: brep(solid(1), solid(2)),
		Analyses: []*model.Analysis{{
			Shape: 1,
			Machining: &model.MachiningAnalysis{
				Features:       []*feature.Feature{{Kind: feature.KindPocket}},
				DrillingIssues: []*feature.Feature{issue(feature.KindDeepHoleIssue)},
				MillingIssues: []*feature.Feature{
					issue(feature.KindHighBossIssue),
					issue(feature.KindDeepPocketIssue),
				},
				TurningIssues: []*feature.Feature{issue(feature.KindSquareEndKeywayIssue)},
			},
		}},
	}
}

func kinds(fs []*feature.Feature) []feature.Kind {
	out := make([]feature.Kind, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Kind)
	}
	return out
}

func TestMachiningProcessor(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want []feature.Kind
	}{
		{
			name: "milling",
			op:   OperationMilling,
			want: []feature.Kind{feature.KindDeepHoleIssue, feature.KindHighBossIssue, feature.KindDeepPocketIssue},
		},
		{
			name: "lathe milling",
			op:   OperationLatheMilling,
			want: []feature.Kind{feature.KindDeepHoleIssue, feature.KindDeepPocketIssue, feature.KindSquareEndKeywayIssue},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Apply(&model.Model{Parts: []*model.Part{machiningPart()}}, NewMachiningProcessor(tt.op))
			require.Len(t, data, 2)

			d := data[0].(*MachiningData)
			assert.True(t, d.Analyzed)
			assert.Equal(t, tt.op, d.Operation)
			assert.Equal(t, tt.want, kinds(d.Issues))
			assert.Len(t, d.Features, 1)

			unanalyzed := data[1].(*MachiningData)
			assert.False(t, unanalyzed.Analyzed)
			assert.Empty(t, unanalyzed.Issues)
		})
	}
}

func TestMachiningProcessor_EmptyPart(t *testing.T) {
	p := &model.Part{ID: "empty"}
	data := Apply(&model.Model{Parts: []*model.Part{p}}, NewMachiningProcessor(OperationMilling))
	require.Len(t, data, 1)
	d := data[0].(*MachiningData)
	assert.Same(t, p, d.Part())
	assert.False(t, d.Analyzed)
}

func TestOperation_ProcessName(t *testing.T) {
	assert.Equal(t, "CNC Machining Milling", OperationMilling.ProcessName())
	assert.Equal(t, "CNC Machining Lathe+Milling", OperationLatheMilling.ProcessName())
	assert.Equal(t, "CNC Machining", OperationUndefined.ProcessName())
}

func TestSheetMetalProcessor(t *testing.T) {
	unfoldedShell := &shape.Shape{ID: 100, Type: shape.TypeShell}
	p := &model.Part{
		ID:   "sm1",
		Name: "Plate",
		BRep: brep(solid(1), shell(2)),
		Analyses: []*model.Analysis{{
			Shape: 1,
			SheetMetal: &model.SheetMetalAnalysis{
				Features: []*feature.Feature{{Kind: feature.KindBend}},
				Issues: []*feature.Feature{
					issue(feature.KindSmallRadiusBendIssue),
					issue(feature.KindFlatPatternInterferenceIssue),
					issue(feature.KindNonStandardSheetSizeIssue),
				},
				FlatPattern: &model.FlatPattern{Length: 100, Width: 50, Thickness: 2, Perimeter: 300, Unfolded: unfoldedShell},
			},
		}},
	}
	unfolded := &model.Model{Name: "plate_unfolded"}
	data := Apply(&model.Model{Parts: []*model.Part{p}}, NewSheetMetalProcessor(unfolded))
	require.Len(t, data, 2)

	d := data[0].(*SheetMetalData)
	assert.True(t, d.IsSheetMetalPart)
	assert.Equal(t, []feature.Kind{feature.KindSmallRadiusBendIssue}, kinds(d.Issues))
	assert.True(t, d.Unfolded.Init)
	assert.Equal(t, 100.0, d.Unfolded.Length)
	assert.Equal(t, 300.0, d.Unfolded.Perimeter)
	assert.Equal(t,
		[]feature.Kind{feature.KindFlatPatternInterferenceIssue, feature.KindNonStandardSheetSizeIssue},
		kinds(d.Unfolded.Issues))
	require.NotNil(t, d.Unfolded.BRep)
	assert.True(t, d.Unfolded.BRep.HasShapes(shape.TypeShell))

	notSheetMetal := data[1].(*SheetMetalData)
	assert.False(t, notSheetMetal.IsSheetMetalPart)

	require.Len(t, unfolded.Parts, 1)
	assert.Equal(t, "sm1", unfolded.Parts[0].ID)
	assert.Equal(t, "Plate", unfolded.Parts[0].Name)
	assert.Same(t, d.Unfolded.BRep, unfolded.Parts[0].BRep)
}

func TestSheetMetalProcessor_NoFlatPatternKeepsIssues(t *testing.T) {
	p := &model.Part{
		BRep: brep(shell(1)),
		Analyses: []*model.Analysis{{
			Shape: 1,
			SheetMetal: &model.SheetMetalAnalysis{
				Issues: []*feature.Feature{issue(feature.KindNonStandardSheetThicknessIssue)},
			},
		}},
	}
	unfolded := &model.Model{}
	data := Apply(&model.Model{Parts: []*model.Part{p}}, NewSheetMetalProcessor(unfolded))
	require.Len(t, data, 1)

	d := data[0].(*SheetMetalData)
	assert.False(t, d.Unfolded.Init)
	assert.Equal(t, []feature.Kind{feature.KindNonStandardSheetThicknessIssue}, kinds(d.Issues))
	assert.True(t, unfolded.IsEmpty())
}

func TestWallThicknessProcessor(t *testing.T) {
	wt := &model.WallThicknessAnalysis{
		Min: 1, Max: 4,
		MinPoints: [2]shape.Vec3{{0, 0, 0}, {0, 0, 1}},
		MaxPoints: [2]shape.Vec3{{1, 0, 0}, {1, 0, 4}},
	}
	parts := []*model.Part{
		{ID: "solid", BRep: brep(solid(1), solid(2)), Analyses: []*model.Analysis{{Shape: 1, WallThickness: wt}}},
		{ID: "mesh", Meshes: []*model.Mesh{{ID: 7, WallThickness: wt}}},
		{ID: "shell", BRep: brep(shell(3))},
	}
	data := Apply(&model.Model{Parts: parts}, NewWallThicknessProcessor())
	require.Len(t, data, 4)

	first := data[0].(*WallThicknessData)
	assert.True(t, first.Init)
	assert.Equal(t, 1.0, first.Min)
	assert.Equal(t, 4.0, first.Max)
	assert.Equal(t, wt.MaxPoints, first.MaxPoints)

	assert.False(t, data[1].(*WallThicknessData).Init)
	assert.True(t, data[2].(*WallThicknessData).Init)

	shellOnly := data[3].(*WallThicknessData)
	assert.Equal(t, "shell", shellOnly.Part().ID)
	assert.False(t, shellOnly.Init)
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("casting")
	require.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "wall_thickness, machining_milling, machining_turning, sheet_metal")

	assert.Equal(t, OperationLatheMilling, TypeMachiningTurning.Operation())
	assert.Equal(t, OperationUndefined, TypeSheetMetal.Operation())
	assert.True(t, TypeMachiningMilling.IsMachining())
	assert.False(t, TypeWallThickness.IsMachining())
}

func TestMachiningIssues_Nil(t *testing.T) {
	assert.Nil(t, MachiningIssues(nil, OperationMilling))
}
