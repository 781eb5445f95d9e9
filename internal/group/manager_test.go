package group

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/jsonwriter"
)

func hole(r float64) *feature.Feature {
	return &feature.Feature{Kind: feature.KindMachiningHole, Params: feature.Params{"radius": r}}
}

func pocket(l float64) *feature.Feature {
	return &feature.Feature{Kind: feature.KindPocket, Params: feature.Params{"length": l}}
}

func printRadius(w io.Writer, f *feature.Feature) {
	for _, k := range f.Params.Keys() {
		fmt.Fprintf(w, "          %s: %v mm\n", k, f.Param(k))
	}
}

func TestManager_AddFeature_GroupsAndCounts(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddFeature("hole", "Hole(s)", true, hole(5))
	m.AddFeature("hole", "Hole(s)", true, hole(5))
	m.AddFeature("pocket", "Pocket(s)", true, pocket(10))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, m.TotalFeatureCount())

	var b strings.Builder
	m.Print(&b, "features", printRadius)

	want := "    hole: 2\n" +
		"        2 Hole(s) with\n" +
		"          radius: 5 mm\n" +
		"    pocket: 1\n" +
		"        1 Pocket(s) with\n" +
		"          length: 10 mm\n" +
		"\n    Total features: 3\n\n"
	assert.Equal(t, want, b.String())
}

func TestManager_Print_OrdersByFirstFeature(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	// Pocket kinds sort after holes even though the group is created first.
	m.AddFeature("a-pockets", "", false, pocket(1))
	m.AddFeature("z-holes", "", false, hole(1))
	m.AddFeature("z-holes", "", false, hole(2))

	var b strings.Builder
	m.Print(&b, "issues", nil)

	assert.Equal(t, "    z-holes: 2\n    a-pockets: 1\n\n    Total issues: 3\n\n", b.String())
}

func TestManager_Print_EquivalentGroupsKeepCreationOrder(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddFeature("b", "", false, hole(1))
	m.AddFeature("a", "", false, hole(1))

	var b strings.Builder
	m.Print(&b, "features", nil)
	assert.True(t, strings.HasPrefix(b.String(), "    b: 1\n    a: 1\n"))
}

func TestManager_Print_GroupsWithoutFeaturesByName(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddGroupData("b", "", "", 1)
	m.AddGroupData("a", "", "", 2)

	var b strings.Builder
	m.Print(&b, "features", nil)
	assert.Equal(t, "    a: 2\n    b: 1\n\n    Total features: 3\n\n", b.String())
}

func TestManager_Print_Empty(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	var b strings.Builder
	m.Print(&b, "features", nil)
	assert.Equal(t, "\n    Total features: 0\n\n", b.String())
}

func TestManager_AddGroupData_Totals(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddGroupData("Through Hole(s)", "(240, 135, 132)", "a", 2)
	m.AddGroupData("Pocket(s)", "(23, 63, 63)", "b", 1)
	m.AddGroupData("Through Hole(s)", "(1, 1, 1)", "c", 4)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 7, m.TotalFeatureCount())
}

func fragmentWithParams(t *testing.T, value float64, ids ...uint64) string {
	t.Helper()
	var b strings.Builder
	w := jsonwriter.NewAt(&b, 3)
	w.OpenSection("")
	w.WriteData("parametersCount", 1)
	w.OpenArraySection("parameters")
	w.OpenSection("")
	w.WriteData("name", "Radius")
	w.WriteData("units", "mm")
	w.WriteData("value", value)
	w.CloseSection()
	w.CloseArraySection()
	w.OpenArraySection("ids")
	for _, id := range ids {
		w.OpenSection("")
		w.WriteData("id", id)
		w.CloseSection()
	}
	w.CloseArraySection()
	w.CloseSection()
	return b.String()
}

func TestManager_Write(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddGroupData("Hole(s)", "(0, 0, 0)", fragmentWithParams(t, 5, 1, 2), 2)
	m.AddGroupData("Hole(s)", "(0, 0, 0)", fragmentWithParams(t, 6, 3), 1)

	var plain strings.Builder
	pw := jsonwriter.NewAt(&plain, 2)
	pw.WriteData("featureCount", 1)
	m.AddGroupData("Tab(s)", "(127, 130, 187)", plain.String(), 1)
	m.AddGroupData("Empty", "(0, 0, 0)", "", 0)

	var b strings.Builder
	w := jsonwriter.New(&b)
	w.OpenArraySection("")
	m.Write(w)
	w.CloseArraySection()
	require.NoError(t, w.Err())

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &got), b.String())
	require.Len(t, got, 3)

	assert.Equal(t, "Hole(s)", got[0]["name"])
	assert.Equal(t, "3", got[0]["totalGroupFeatureCount"])
	assert.Equal(t, "2", got[0]["subGroupCount"])
	sub := got[0]["subGroups"].([]any)
	require.Len(t, sub, 2)
	params := sub[1].(map[string]any)["parameters"].([]any)
	assert.Equal(t, "6.00", params[0].(map[string]any)["value"])

	assert.Equal(t, "Tab(s)", got[1]["name"])
	assert.Equal(t, "(127, 130, 187)", got[1]["color"])
	assert.Equal(t, "1", got[1]["featureCount"])
	assert.NotContains(t, got[1], "subGroups")

	assert.Equal(t, map[string]any{"name": "Empty", "color": "(0, 0, 0)", "totalGroupFeatureCount": "0"}, got[2])
}

func TestManager_Write_CountsConsoleFeatures(t *testing.T) {
	m := NewManager(feature.DefaultCompare)
	m.AddGroupData("Hole(s)", "(0, 0, 0)", "", 2)
	m.AddFeature("Hole(s)", "Hole(s)", true, hole(5))

	var b strings.Builder
	w := jsonwriter.New(&b)
	w.OpenArraySection("")
	m.Write(w)
	w.CloseArraySection()
	require.NoError(t, w.Err())

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &got), b.String())
	require.Len(t, got, 1)
	assert.Equal(t, fmt.Sprint(m.TotalFeatureCount()), got[0]["totalGroupFeatureCount"])
	assert.Equal(t, "3", got[0]["totalGroupFeatureCount"])
}
