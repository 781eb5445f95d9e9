package classify

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/shape"
)

func face(id uint64) *shape.Shape { return &shape.Shape{ID: id, Type: shape.TypeFace} }
func edge(id uint64) *shape.Shape { return &shape.Shape{ID: id, Type: shape.TypeEdge} }

func shell(children ...*shape.Shape) *shape.Shape {
	return &shape.Shape{Type: shape.TypeShell, Children: children}
}

func TestLookup_EveryLeafKindHasDescriptor(t *testing.T) {
	for _, k := range feature.Kinds() {
		d, ok := Lookup(k)
		if k.IsComposite() {
			assert.False(t, ok, "composite %s must not be classified", k)
			continue
		}
		require.True(t, ok, "missing descriptor for %s", k)
		assert.Equal(t, k, d.Kind)
		assert.NotEmpty(t, d.Label.Name, k.String())
		if d.HasParameters() {
			assert.NotEmpty(t, d.Subgroup, "%s reports parameters without a subgroup", k)
		}
	}
}

func TestLookup_IssueCategories(t *testing.T) {
	tests := []struct {
		kind feature.Kind
		want Category
	}{
		{feature.KindMachiningHole, CategoryFeature},
		{feature.KindBend, CategoryFeature},
		{feature.KindDeepHoleIssue, CategoryDrillingIssue},
		{feature.KindDeepPocketIssue, CategoryMillingIssue},
		{feature.KindSquareEndKeywayIssue, CategoryTurningIssue},
		{feature.KindSmallDistanceBetweenTabsIssue, CategorySheetMetalIssue},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			d, ok := Lookup(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Category)
			assert.Equal(t, tt.want != CategoryFeature, d.Category.IsIssue())
		})
	}
}

func TestDescriptor_LabelFor(t *testing.T) {
	tests := []struct {
		name    string
		kind    feature.Kind
		subtype string
		want    Label
	}{
		{"through hole", feature.KindMachiningHole, "through", Label{"Through Hole(s)", Color{240, 135, 132}}},
		{"unknown hole type", feature.KindMachiningHole, "tapered", Label{"Hole(s)", Color{}}},
		{"turning face", feature.KindTurningFace, "turn_face", Label{"Turn Face Face(s)", Color{239, 136, 190}}},
		{"plain face", feature.KindMachiningFace, "", Label{"Face(s)", Color{}}},
		{"rolled hem", feature.KindHemBend, "rolled", Label{"Rolled Hem Bend(s)", Color{102, 145, 204}}},
		{"hem without type", feature.KindHemBend, "", Label{"Hem Bend(s)", Color{}}},
		{"curved bend", feature.KindCurvedBend, "", Label{"Curved Bend(s)", Color{255, 254, 145}}},
		{"complex hole", feature.KindComplexHole, "", Label{"Complex Hole(s)", Color{115, 43, 245}}},
		{"generic distance", feature.KindSmallDistanceBetweenFeaturesIssue, "", Label{"Small Distance Between Feature(s)", Color{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.LabelFor(&feature.Feature{Kind: tt.kind, Subtype: tt.subtype}))
		})
	}
}

func TestDescriptor_Parameters(t *testing.T) {
	axis := shape.Vec3{0, 0, 1}
	tests := []struct {
		name string
		f    *feature.Feature
		want []Param
	}{
		{
			name: "hole with axis",
			f: &feature.Feature{
				Kind:   feature.KindMachiningHole,
				Params: feature.Params{"radius": 2.5, "depth": 10},
				Axis:   &axis,
			},
			want: []Param{
				{"Radius", "mm", 2.5},
				{"Depth", "mm", 10.0},
				{"Axis", "", Direction{0, 0, 1}},
			},
		},
		{
			name: "bend angle in degrees",
			f: &feature.Feature{
				Kind:   feature.KindBend,
				Params: feature.Params{"radius": 1, "angle": math.Pi / 2, "length": 20, "width": 3},
			},
			want: []Param{
				{"Radius", "mm", 1.0},
				{"Angle", "deg", 90.0},
				{"Length", "mm", 20.0},
				{"Width", "mm", 3.0},
			},
		},
		{
			name: "partial hole percent",
			f: &feature.Feature{
				Kind:   feature.KindPartialHoleIssue,
				Params: feature.Params{"expected_min_material_percent": 0.5, "actual_material_percent": 0.25},
			},
			want: []Param{
				{"Expected Minimum Material Percent", "%", 50.0},
				{"Actual Material Percent", "%", 25.0},
			},
		},
		{
			name: "large milled part dimensions",
			f: &feature.Feature{
				Kind: feature.KindLargeMilledPartIssue,
				Params: feature.Params{
					"expected_max_length": 100, "expected_max_width": 50, "expected_max_height": 25,
					"actual_length": 120, "actual_width": 60, "actual_height": 30,
				},
			},
			want: []Param{
				{"Expected Maximum Size (LxWxH)", "mm", Dimension{100, 50, 25}},
				{"Actual Size (LxWxH)", "mm", Dimension{120, 60, 30}},
			},
		},
		{
			name: "large turned part pairs",
			f: &feature.Feature{
				Kind: feature.KindLargeTurnedPartIssue,
				Params: feature.Params{
					"expected_max_length": 100, "expected_max_radius": 20,
					"actual_length": 150, "actual_radius": 25,
				},
			},
			want: []Param{
				{"Expected Maximum Size (LxR)", "mm", Pair{100, 20}},
				{"Actual Size (LxR)", "mm", Pair{150, 25}},
			},
		},
		{
			name: "ratio without units",
			f: &feature.Feature{
				Kind: feature.KindLargeDifferenceRegionsSizeInPocketIssue,
				Params: feature.Params{
					"expected_max_regions_max_to_min_size_ratio": 3,
					"actual_max_regions_max_to_min_size_ratio":   5,
				},
			},
			want: []Param{
				{"Expected Regions Maximum To Minimum Size Ratio", "", 3.0},
				{"Actual Regions Maximum To Minimum Size Ratio", "", 5.0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.f.Kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Parameters(tt.f))
		})
	}
}

func TestDescriptor_BendReliefParameters(t *testing.T) {
	d, ok := Lookup(feature.KindIrregularSizeBendReliefIssue)
	require.True(t, ok)

	expected := Param{"Expected Minimum Relief Size (LxW)", "mm", Pair{2, 1}}
	base := func() feature.Params {
		return feature.Params{"expected_min_relief_length": 2, "expected_min_relief_width": 1}
	}

	t.Run("both reliefs", func(t *testing.T) {
		p := base()
		p["first_relief_length"], p["first_relief_width"] = 3, 4
		p["second_relief_length"], p["second_relief_width"] = 5, 6
		got := d.Parameters(&feature.Feature{Kind: d.Kind, Params: p})
		assert.Equal(t, []Param{
			expected,
			{"First Actual Relief Size (LxW)", "mm", Pair{3, 4}},
			{"Second Actual Relief Size (LxW)", "mm", Pair{5, 6}},
		}, got)
	})

	t.Run("first only", func(t *testing.T) {
		p := base()
		p["first_relief_length"], p["first_relief_width"] = 3, 4
		got := d.Parameters(&feature.Feature{Kind: d.Kind, Params: p})
		assert.Equal(t, []Param{expected, {"Actual Relief Size (LxW)", "mm", Pair{3, 4}}}, got)
	})

	t.Run("second only", func(t *testing.T) {
		p := base()
		p["second_relief_length"], p["second_relief_width"] = 5, 6
		got := d.Parameters(&feature.Feature{Kind: d.Kind, Params: p})
		assert.Equal(t, []Param{expected, {"Actual Relief Size (LxW)", "mm", Pair{5, 6}}}, got)
	})
}

func TestDescriptor_ShapeIDs(t *testing.T) {
	var ids shape.BRep

	t.Run("feature faces", func(t *testing.T) {
		d, _ := Lookup(feature.KindPocket)
		f := &feature.Feature{Kind: feature.KindPocket, Shape: shell(face(1), face(2), face(1))}
		assert.Equal(t, []uint64{1, 2}, d.ShapeIDs(f, &ids))
	})

	t.Run("sheet metal hole edges", func(t *testing.T) {
		d, _ := Lookup(feature.KindSheetMetalHole)
		f := &feature.Feature{
			Kind:  feature.KindSheetMetalHole,
			Shape: shell(&shape.Shape{ID: 9, Type: shape.TypeFace, Children: []*shape.Shape{edge(4), edge(5)}}),
		}
		assert.Equal(t, []uint64{4, 5}, d.ShapeIDs(f, &ids))
	})

	t.Run("mixed refs in role order", func(t *testing.T) {
		d, _ := Lookup(feature.KindSmallDistanceBetweenHoleAndBendIssue)
		f := &feature.Feature{
			Kind: d.Kind,
			Refs: map[string]*shape.Shape{
				"bend": shell(face(20)),
				"hole": shell(&shape.Shape{ID: 30, Type: shape.TypeWire, Children: []*shape.Shape{edge(31)}}),
			},
		}
		assert.Equal(t, []uint64{31, 20}, d.ShapeIDs(f, &ids))
	})

	t.Run("bend relief edges follow bend faces", func(t *testing.T) {
		d, _ := Lookup(feature.KindIrregularSizeBendReliefIssue)
		f := &feature.Feature{
			Kind: d.Kind,
			Refs: map[string]*shape.Shape{
				"bend":          shell(face(1)),
				"second_relief": shell(edge(7)),
			},
		}
		assert.Equal(t, []uint64{1, 7}, d.ShapeIDs(f, &ids))
	})

	t.Run("missing geometry yields empty non-nil", func(t *testing.T) {
		d, _ := Lookup(feature.KindLargeMilledPartIssue)
		got := d.ShapeIDs(&feature.Feature{Kind: d.Kind}, &ids)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestValues_String(t *testing.T) {
	assert.Equal(t, "(1, 2, 3)", Color{1, 2, 3}.String())
	assert.Equal(t, "1.50 x 2.00", Pair{1.5, 2}.String())
	assert.Equal(t, "1.50000 x 2.00000", Pair{1.5, 2}.Format(5))
	assert.Equal(t, "1.00 x 2.00 x 3.25", Dimension{1, 2, 3.25}.String())
	assert.Equal(t, "(0.00, -1.00, 0.50)", Direction{0, -1, 0.5}.String())
	assert.Equal(t, "(1.23, 4.57, 0.00)", Point{1.234, 4.567, 0}.String())
}

func TestPrintParameters(t *testing.T) {
	axis := shape.Vec3{1, 0, 0}
	f := &feature.Feature{
		Kind:   feature.KindCountersink,
		Params: feature.Params{"radius": 1.25, "depth": 3},
		Axis:   &axis,
	}
	var b strings.Builder
	PrintParameters(&b, f)
	assert.Equal(t,
		"          radius: 1.25 mm\n"+
			"          depth: 3.0 mm\n"+
			"          axis: (1.00, 0.00, 0.00) \n",
		b.String())

	b.Reset()
	PrintParameters(&b, &feature.Feature{
		Kind:   feature.KindIrregularSizeTabIssue,
		Params: feature.Params{"expected_length": 1, "expected_width": 2, "actual_length": 3, "actual_width": 4},
	})
	assert.Equal(t,
		"          expected size (lxw): 1.00000 x 2.00000 mm\n"+
			"          actual size (lxw): 3.00000 x 4.00000 mm\n",
		b.String())

	b.Reset()
	PrintParameters(&b, &feature.Feature{Kind: feature.KindComposite})
	assert.Empty(t, b.String())
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12.0"},
		{0, "0.0"},
		{-3, "-3.0"},
		{2.5, "2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{0.00001, "1e-05"},
		{1.5e16, "1.5e+16"},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDecimal(tt.in))
	}
}
