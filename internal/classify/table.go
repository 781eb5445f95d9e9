// SPDX-License-Identifier: AGPL-3.0-or-later
package classify

import (
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/shape"
)

func mm(name, key string) ParamSpec {
	return ParamSpec{Name: name, Units: "mm", Form: FormScalar, Keys: []string{key}}
}

func deg(name, key string) ParamSpec {
	return ParamSpec{Name: name, Units: "deg", Form: FormDegrees, Keys: []string{key}}
}

func pct(name, key string) ParamSpec {
	return ParamSpec{Name: name, Units: "%", Form: FormPercent, Keys: []string{key}}
}

func ratio(name, key string) ParamSpec {
	return ParamSpec{Name: name, Form: FormScalar, Keys: []string{key}}
}

func pair(name, first, second string) ParamSpec {
	return ParamSpec{Name: name, Units: "mm", Form: FormPair, Keys: []string{first, second}}
}

func dim(name, x, y, z string) ParamSpec {
	return ParamSpec{Name: name, Units: "mm", Form: FormDimension, Keys: []string{x, y, z}}
}

var axis = ParamSpec{Name: "Axis", Form: FormDirection}

func faces(roles ...string) []ShapeRef {
	return refs(shape.TypeFace, roles)
}

func edges(roles ...string) []ShapeRef {
	return refs(shape.TypeEdge, roles)
}

func refs(t shape.Type, roles []string) []ShapeRef {
	if len(roles) == 0 {
		roles = []string{""}
	}
	out := make([]ShapeRef, 0, len(roles))
	for _, r := range roles {
		out = append(out, ShapeRef{Role: r, Type: t})
	}
	return out
}

func join(groups ...[]ShapeRef) []ShapeRef {
	var out []ShapeRef
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func rgb(r, g, b uint8) Color { return Color{r, g, b} }

var black = rgb(0, 0, 0)

var faceTypes = map[string]Label{
	"flat_face_milled":            {"Flat Face Milled Face(s)", rgb(115, 251, 253)},
	"flat_side_milled":            {"Flat Side Milled Face(s)", rgb(0, 35, 245)},
	"curved_milled":               {"Curved Milled Face(s)", rgb(22, 65, 124)},
	"circular_milled":             {"Circular Milled Face(s)", rgb(255, 254, 145)},
	"deburr":                      {"Deburr Face(s)", rgb(0, 0, 0)},
	"convex_profile_edge_milling": {"Convex Profile Edge Milling Face(s)", rgb(240, 155, 89)},
	"concave_fillet_edge_milling": {"Concave Fillet Edge Milling Face(s)", rgb(129, 127, 38)},
	"flat_milled":                 {"Flat Milled Face(s)", rgb(115, 43, 245)},
	"turn_diameter":               {"Turn Diameter Face(s)", rgb(88, 19, 94)},
	"turn_form":                   {"Turn Form Face(s)", rgb(161, 251, 142)},
	"turn_face":                   {"Turn Face Face(s)", rgb(239, 136, 190)},
	"bore":                        {"Bore Face(s)", rgb(127, 130, 187)},
}

var holeTypes = map[string]Label{
	"through":     {"Through Hole(s)", rgb(240, 135, 132)},
	"flat_bottom": {"Flat Bottom Hole(s)", rgb(235, 51, 36)},
	"blind":       {"Blind Hole(s)", rgb(142, 64, 58)},
	"partial":     {"Partial Hole(s)", rgb(58, 6, 3)},
}

var hemTypes = map[string]Label{
	"flattened": {"Flattened Hem Bend(s)", rgb(22, 65, 124)},
	"open":      {"Open Hem Bend(s)", rgb(42, 85, 144)},
	"teardrop":  {"Teardrop Hem Bend(s)", rgb(62, 105, 164)},
	"rope":      {"Rope Hem Bend(s)", rgb(82, 125, 184)},
	"rolled":    {"Rolled Hem Bend(s)", rgb(102, 145, 204)},
}

var bendParams = []ParamSpec{
	mm("Radius", "radius"),
	deg("Angle", "angle"),
	mm("Length", "length"),
	mm("Width", "width"),
}

var holeParams = []ParamSpec{mm("Radius", "radius"), mm("Depth", "depth"), axis}

var distanceParams = []ParamSpec{
	mm("Expected Minimum Distance", "expected_min_distance"),
	mm("Actual Distance", "actual_distance"),
}

var descriptors = []*Descriptor{
	// Machining features.
	{
		Kind: feature.KindTurningFace, Label: Label{"Face(s)", black}, Subtypes: faceTypes,
		Subgroup: "Turning Face(s)", Params: []ParamSpec{mm("Radius", "radius")}, Shapes: faces(),
	},
	{Kind: feature.KindMachiningFace, Label: Label{"Face(s)", black}, Subtypes: faceTypes, Shapes: faces()},
	{
		Kind: feature.KindCountersink, Label: Label{"Countersink(s)", rgb(55, 125, 34)},
		Subgroup: "Countersink(s)", Params: holeParams, Shapes: faces(),
	},
	{
		Kind: feature.KindMachiningHole, Label: Label{"Hole(s)", black}, Subtypes: holeTypes,
		Subgroup: "Hole(s)", Params: holeParams, Shapes: faces(),
	},
	{
		Kind: feature.KindPocket, Label: Label{"Pocket(s)", rgb(23, 63, 63)}, Subgroup: "Pocket(s)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width"), mm("Depth", "depth"), axis},
		Shapes: faces(),
	},
	{
		Kind: feature.KindBoss, Label: Label{"Boss(es)", rgb(56, 72, 13)}, Subgroup: "Boss(es)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width"), mm("Height", "height")},
		Shapes: faces(),
	},

	// Sheet metal features.
	{
		Kind: feature.KindBead, Label: Label{"Bead(s)", rgb(115, 251, 253)}, Subgroup: "Bead(s)",
		Params: []ParamSpec{mm("Depth", "depth")}, Shapes: faces(),
	},
	{Kind: feature.KindBend, Label: Label{"Bend(s)", rgb(0, 35, 245)}, Subgroup: "Bend(s)", Params: bendParams, Shapes: faces()},
	{
		Kind: feature.KindHemBend, Label: Label{"Hem Bend(s)", black}, Subtypes: hemTypes,
		Subgroup: "Bend(s)", Params: bendParams, Shapes: faces(),
	},
	{
		Kind: feature.KindCurvedBend, Label: Label{"Curved Bend(s)", rgb(255, 254, 145)},
		Subgroup: "Bend(s)", Params: bendParams, Shapes: faces(),
	},
	{
		Kind: feature.KindBridge, Label: Label{"Bridge(s)", rgb(240, 155, 89)}, Subgroup: "Bridge(s)",
		Params: []ParamSpec{mm("Length", "length"), mm("Depth", "depth")}, Shapes: faces(),
	},
	{
		Kind: feature.KindSheetMetalHole, Label: Label{"Hole(s)", rgb(129, 127, 38)},
		Subgroup: "Hole(s)", Params: holeParams, Shapes: edges(),
	},
	{
		Kind: feature.KindComplexHole, Label: Label{"Complex Hole(s)", rgb(115, 43, 245)},
		Subgroup: "Hole(s)", Params: holeParams, Shapes: faces(),
	},
	{
		Kind: feature.KindCutout, Label: Label{"Cutout(s)", rgb(88, 19, 94)}, Subgroup: "Cutout(s)",
		Params: []ParamSpec{mm("Perimeter", "perimeter")}, Shapes: edges(),
	},
	{
		Kind: feature.KindLouver, Label: Label{"Louver(s)", rgb(161, 251, 142)}, Subgroup: "Louver(s)",
		Params: []ParamSpec{mm("Depth", "depth")}, Shapes: faces(),
	},
	{
		Kind: feature.KindNotch, Label: Label{"Notch(es)", rgb(239, 136, 190)}, Subgroup: "Notch(es)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width")}, Shapes: edges(),
	},
	{
		Kind: feature.KindStraightNotch, Label: Label{"Straight Notch(es)", rgb(240, 135, 132)}, Subgroup: "Notch(es)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width"), mm("Corner Fillet Radius", "corner_fillet_radius")},
		Shapes: edges(),
	},
	{
		Kind: feature.KindVNotch, Label: Label{"V Notch(es)", rgb(235, 51, 36)}, Subgroup: "Notch(es)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width"), deg("Angle", "angle")},
		Shapes: edges(),
	},
	{
		Kind: feature.KindTab, Label: Label{"Tab(s)", rgb(127, 130, 187)}, Subgroup: "Tab(s)",
		Params: []ParamSpec{mm("Length", "length"), mm("Width", "width")}, Shapes: edges(),
	},

	// Drilling issues.
	{
		Kind: feature.KindSmallDiameterHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Small Diameter Hole(s)", rgb(115, 251, 253)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{mm("Expected Minimum Diameter", "expected_min_diameter"), mm("Actual Diameter", "actual_diameter")},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindDeepHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Deep Hole(s)", rgb(0, 35, 245)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{mm("Expected Maximum Depth", "expected_max_depth"), mm("Actual Depth", "actual_depth")},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindNonStandardDiameterHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Non Standard Diameter Hole(s)", rgb(22, 65, 124)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{mm("Nearest Standard Diameter", "nearest_standard_diameter"), mm("Actual Diameter", "actual_diameter")},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindNonStandardDrillPointAngleBlindHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Non Standard Drill Point Angle Blind Hole(s)", rgb(88, 13, 78)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{deg("Nearest Standard Angle", "nearest_standard_angle"), deg("Actual Angle", "actual_angle")},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindPartialHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Partial Hole(s)", rgb(255, 254, 145)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{
			pct("Expected Minimum Material Percent", "expected_min_material_percent"),
			pct("Actual Material Percent", "actual_material_percent"),
		},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindFlatBottomHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Flat Bottom Hole(s)", rgb(240, 155, 89)}, Shapes: faces("hole"),
	},
	{
		Kind: feature.KindNonPerpendicularHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Non Perpendicular Hole(s)", rgb(129, 127, 38)}, Shapes: faces("hole"),
	},
	{
		Kind: feature.KindIntersectingCavityHoleIssue, Category: CategoryDrillingIssue,
		Label: Label{"Intersecting Cavity Hole(s)", rgb(115, 43, 245)}, Shapes: faces("hole"),
	},

	// Milling issues.
	{
		Kind: feature.KindNonStandardRadiusMilledPartFloorFilletIssue, Category: CategoryMillingIssue,
		Label: Label{"Non Standard Radius Milled Part Floor Fillet Issue(s)", rgb(0, 215, 3)}, Subgroup: "Floor Fillet(s)",
		Params: []ParamSpec{mm("Nearest Standard Radius", "nearest_standard_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces("floor_fillet"),
	},
	{
		Kind: feature.KindDeepPocketIssue, Category: CategoryMillingIssue,
		Label: Label{"Deep Pocket Issue(s)", rgb(190, 10, 100)}, Subgroup: "Pocket(s)",
		Params: []ParamSpec{mm("Expected Maximum Depth", "expected_max_depth"), mm("Actual Depth", "actual_depth")},
		Shapes: faces("pocket"),
	},
	{
		Kind: feature.KindHighBossIssue, Category: CategoryMillingIssue,
		Label: Label{"High Boss Issue(s)", rgb(180, 100, 50)}, Subgroup: "Boss(es)",
		Params: []ParamSpec{mm("Expected Maximum Height", "expected_max_height"), mm("Actual Height", "actual_height")},
		Shapes: faces("boss"),
	},
	{
		Kind: feature.KindLargeMilledPartIssue, Category: CategoryMillingIssue,
		Label: Label{"Large Milled Part(s)", rgb(17, 37, 205)}, Subgroup: "Part(s)",
		Params: []ParamSpec{
			dim("Expected Maximum Size (LxWxH)", "expected_max_length", "expected_max_width", "expected_max_height"),
			dim("Actual Size (LxWxH)", "actual_length", "actual_width", "actual_height"),
		},
	},
	{
		Kind: feature.KindSmallRadiusMilledPartInternalCornerIssue, Category: CategoryMillingIssue,
		Label: Label{"Small Radius Milled Part Internal Corner(s)", rgb(10, 10, 200)}, Subgroup: "Internal Corner(s)",
		Params: []ParamSpec{mm("Expected Minimum Radius", "expected_min_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces(),
	},
	{
		Kind: feature.KindNonPerpendicularMilledPartShapeIssue, Category: CategoryMillingIssue,
		Label: Label{"Non Perpendicular Milled Part Shape(s)", rgb(129, 227, 138)}, Subgroup: "Shape(s)",
		Params: []ParamSpec{deg("Actual Angle", "actual_angle")},
		Shapes: faces(),
	},
	{
		Kind: feature.KindMilledPartExternalEdgeFilletIssue, Category: CategoryMillingIssue,
		Label: Label{"Milled Part External Edge Fillet(s)", rgb(201, 227, 13)}, Shapes: faces("fillet"),
	},
	{
		Kind: feature.KindInconsistentRadiusMilledPartFloorFilletIssue, Category: CategoryMillingIssue,
		Label: Label{"Inconsistent Radius Milled Part Floor Fillet Issue(s)", rgb(180, 15, 190)}, Subgroup: "Floor Fillet(s)",
		Params: []ParamSpec{mm("Expected Radius", "expected_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces("floor_fillet"),
	},
	{
		Kind: feature.KindNarrowRegionInPocketIssue, Category: CategoryMillingIssue,
		Label: Label{"Narrow Region In Pocket Issue(s)", rgb(70, 150, 150)}, Subgroup: "Region(s)",
		Params: []ParamSpec{mm("Expected Minimum Region Size", "expected_min_region_size"), mm("Actual Region Size", "actual_region_size")},
		Shapes: faces("inner_feature", "narrow_region_sidewall"),
	},
	{
		Kind: feature.KindLargeDifferenceRegionsSizeInPocketIssue, Category: CategoryMillingIssue,
		Label: Label{"Large Difference Regions Size In Pocket Issue(s)", rgb(100, 150, 150)}, Subgroup: "Region Size(s)",
		Params: []ParamSpec{
			ratio("Expected Regions Maximum To Minimum Size Ratio", "expected_max_regions_max_to_min_size_ratio"),
			ratio("Actual Regions Maximum To Minimum Size Ratio", "actual_max_regions_max_to_min_size_ratio"),
		},
		Shapes: faces("inner_feature", "min_region_pocket_sidewall", "max_region_pocket_sidewall"),
	},

	// Turning issues.
	{
		Kind: feature.KindLargeTurnedPartIssue, Category: CategoryTurningIssue,
		Label: Label{"Large Turned Part(s)", rgb(195, 195, 195)}, Subgroup: "Part(s)",
		Params: []ParamSpec{
			pair("Expected Maximum Size (LxR)", "expected_max_length", "expected_max_radius"),
			pair("Actual Size (LxR)", "actual_length", "actual_radius"),
		},
	},
	{
		Kind: feature.KindLongSlenderTurnedPartIssue, Category: CategoryTurningIssue,
		Label: Label{"Long-Slender Turned Part(s)", rgb(195, 195, 195)}, Subgroup: "Part(s)",
		Params: []ParamSpec{
			mm("Expected Maximum Length", "expected_max_length"),
			mm("Actual Length", "actual_length"),
			mm("Actual Minimum Diameter", "actual_min_diameter"),
		},
	},
	{
		Kind: feature.KindSmallDepthBlindBoredHoleReliefIssue, Category: CategoryTurningIssue,
		Label: Label{"Small Depth Blind Bored Hole Relief(s)", rgb(88, 19, 94)}, Subgroup: "Blind Bored Hole(s)",
		Params: []ParamSpec{
			mm("Expected Minimum Relief Depth", "expected_min_relief_depth"),
			mm("Actual Relief Depth", "actual_relief_depth"),
			mm("Actual Diameter", "actual_diameter"),
		},
		Shapes: faces("blind_bored_hole"),
	},
	{
		Kind: feature.KindDeepBoredHoleIssue, Category: CategoryTurningIssue,
		Label: Label{"Deep Bored Hole(s)", rgb(161, 251, 142)}, Subgroup: "Bored Hole(s)",
		Params: []ParamSpec{
			mm("Expected Maximum Depth", "expected_max_depth"),
			mm("Actual Depth", "actual_depth"),
			mm("Actual Diameter", "actual_diameter"),
		},
		Shapes: faces(),
	},
	{
		Kind: feature.KindIrregularTurnedPartOuterDiameterProfileReliefIssue, Category: CategoryTurningIssue,
		Label:    Label{"Irregular Turned Part Outer Diameter Profile Relief(s)", rgb(239, 136, 190)},
		Subgroup: "Outer Diameter Profile Relief(s)",
		Params: []ParamSpec{
			deg("Expected Maximum Face Incline Angle", "expected_max_face_incline_angle"),
			deg("Actual Face Incline Angle", "actual_face_incline_angle"),
		},
		Shapes: faces("face"),
	},
	{
		Kind: feature.KindSmallRadiusTurnedPartInternalCornerIssue, Category: CategoryTurningIssue,
		Label: Label{"Small Radius Turned Part Internal Corner(s)", rgb(127, 130, 187)}, Subgroup: "Internal Corner(s)",
		Params: []ParamSpec{mm("Expected Minimum Radius", "expected_min_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces(),
	},
	{
		Kind: feature.KindSquareEndKeywayIssue, Category: CategoryTurningIssue,
		Label: Label{"Square End Keyway(s)", rgb(157, 160, 207)}, Shapes: faces("keyway"),
	},
	{
		Kind: feature.KindNonSymmetricalAxialSlotIssue, Category: CategoryTurningIssue,
		Label: Label{"Non Symmetrical Axial Slot(s)", rgb(130, 170, 200)}, Shapes: faces("axial_slot"),
	},

	// Sheet metal issues.
	{
		Kind: feature.KindFlatPatternInterferenceIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Flat Pattern Interference(s)", rgb(115, 251, 253)}, Shapes: faces("first_face", "second_face"),
	},
	{
		Kind: feature.KindIrregularCornerFilletRadiusNotchIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Corner Fillet Radius Notch(es)", rgb(239, 136, 190)}, Subgroup: "Notch(es)",
		Params: []ParamSpec{
			mm("Expected Corner Fillet Radius", "expected_corner_fillet_radius"),
			mm("Actual Corner Fillet Radius", "actual_corner_fillet_radius"),
		},
		Shapes: edges("notch"),
	},
	{
		Kind: feature.KindIrregularDepthExtrudedHoleIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Depth Extruded Hole(s)", rgb(50, 120, 210)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{
			mm("Expected Minimum Extruded Height", "expected_min_extruded_height"),
			mm("Expected Maximum Extruded Height", "expected_max_extruded_height"),
			mm("Actual Extruded Height", "actual_extruded_height"),
		},
		Shapes: faces("hole"),
	},
	{
		Kind: feature.KindIrregularRadiusOpenHemBendIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Radius Open Hem Bend(s)", rgb(188, 121, 11)}, Subgroup: "Bend(s)",
		Params: []ParamSpec{mm("Expected Radius", "expected_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces("bend"),
	},
	{
		Kind: feature.KindInconsistentRadiusBendIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Inconsistent Radius Bend(s)", rgb(0, 35, 245)}, Subgroup: "Bend(s)",
		Params: []ParamSpec{mm("Expected Radius", "expected_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces("bend"),
	},
	{
		Kind: feature.KindIrregularSizeBendReliefIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Size Bend Relief(s)", rgb(22, 65, 124)}, Subgroup: "Bend(s)",
		Params: []ParamSpec{
			pair("Expected Minimum Relief Size (LxW)", "expected_min_relief_length", "expected_min_relief_width"),
		},
		Shapes: join(faces("bend"), edges("first_relief", "second_relief")),
		params: bendReliefParams,
	},
	{
		Kind: feature.KindIrregularSizeNotchIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Size Notch(s)", rgb(255, 254, 145)}, Subgroup: "Notch(s)",
		Params: []ParamSpec{
			pair("Expected Size (LxW)", "expected_length", "expected_width"),
			pair("Actual Size (LxW)", "actual_length", "actual_width"),
		},
		Shapes: edges("notch"),
	},
	{
		Kind: feature.KindIrregularSizeTabIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Irregular Size Tab(s)", rgb(240, 155, 89)}, Subgroup: "Tab(s)",
		Params: []ParamSpec{
			pair("Expected Size (LxW)", "expected_length", "expected_width"),
			pair("Actual Size (LxW)", "actual_length", "actual_width"),
		},
		Shapes: edges("tab"),
	},
	{
		Kind: feature.KindLargeDepthBeadIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Large Depth Bead(s)", rgb(129, 127, 38)}, Subgroup: "Bead(s)",
		Params: []ParamSpec{mm("Expected Maximum Depth", "expected_max_depth"), mm("Actual Depth", "actual_depth")},
		Shapes: faces("bead"),
	},
	{
		Kind: feature.KindSmallDepthLouverIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Small Depth Louver(s)", rgb(190, 127, 58)}, Subgroup: "Louver(s)",
		Params: []ParamSpec{mm("Expected Minimum Depth", "expected_min_depth"), mm("Actual Depth", "actual_depth")},
		Shapes: faces("louver"),
	},
	{
		Kind: feature.KindNonStandardSheetSizeIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Non Standard Sheet Size(s)", black}, Subgroup: "Sheet Size(s)",
		Params: []ParamSpec{
			pair("Nearest Standard Size (LxW)", "nearest_standard_length", "nearest_standard_width"),
			pair("Actual Size (LxW)", "actual_length", "actual_width"),
		},
	},
	{
		Kind: feature.KindNonStandardSheetThicknessIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Non Standard Sheet Thickness(s)", black}, Subgroup: "Sheet Thickness(s)",
		Params: []ParamSpec{mm("Nearest Standard Thickness", "nearest_standard_thickness"), mm("Actual Thickness", "actual_thickness")},
	},
	{
		Kind: feature.KindSheetMetalSmallDiameterHoleIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Small Diameter Hole(s)", rgb(115, 43, 245)}, Subgroup: "Hole(s)",
		Params: []ParamSpec{mm("Expected Minimum Diameter", "expected_min_diameter"), mm("Actual Diameter", "actual_diameter")},
		Shapes: edges("hole"),
	},
	{
		Kind: feature.KindSmallLengthFlangeIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Small Length Flange(s)", rgb(88, 19, 94)}, Subgroup: "Flange(s)",
		Params: []ParamSpec{mm("Expected Minimum Length", "expected_min_length"), mm("Actual Length", "actual_length")},
		Shapes: faces("flange"),
	},
	{
		Kind: feature.KindSmallLengthHemBendFlangeIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Small Length Hem Bend Flange(s)", rgb(70, 139, 51)}, Subgroup: "Flange(s)",
		Params: []ParamSpec{mm("Expected Minimum Length", "expected_min_length"), mm("Actual Length", "actual_length")},
		Shapes: faces("flange"),
	},
	{
		Kind: feature.KindSmallRadiusBendIssue, Category: CategorySheetMetalIssue,
		Label: Label{"Small Radius Bend(s)", rgb(161, 251, 142)}, Subgroup: "Bend(s)",
		Params: []ParamSpec{mm("Expected Minimum Radius", "expected_min_radius"), mm("Actual Radius", "actual_radius")},
		Shapes: faces("bend"),
	},
	smallDistance(feature.KindSmallDistanceBetweenBendAndLouverIssue,
		"Small Distance Between Bend And Louver Issue(s)", rgb(195, 56, 19), faces("bend", "louver")),
	smallDistance(feature.KindSmallDistanceBetweenExtrudedHoleAndBendIssue,
		"Small Distance Between Extruded Hole And Bend Issue(s)", rgb(212, 75, 90), faces("hole", "bend")),
	smallDistance(feature.KindSmallDistanceBetweenExtrudedHoleAndEdgeIssue,
		"Small Distance Between Extruded Hole And Edge Issue(s)", rgb(198, 75, 105), join(faces("hole"), edges("edge"))),
	smallDistance(feature.KindSmallDistanceBetweenExtrudedHolesIssue,
		"Small Distance Between Extruded Holes Issue(s)", rgb(170, 65, 120), faces("first_hole", "second_hole")),
	smallDistance(feature.KindSmallDistanceBetweenHoleAndBendIssue,
		"Small Distance Between Hole And Bend Issue(s)", rgb(239, 136, 190), join(edges("hole"), faces("bend"))),
	smallDistance(feature.KindSmallDistanceBetweenHoleAndCutoutIssue,
		"Small Distance Between Hole And Cutout Issue(s)", rgb(127, 130, 187), edges("hole", "cutout")),
	smallDistance(feature.KindSmallDistanceBetweenHoleAndEdgeIssue,
		"Small Distance Between Hole And Edge Issue(s)", rgb(240, 135, 132), edges("hole", "edge")),
	smallDistance(feature.KindSmallDistanceBetweenHoleAndLouverIssue,
		"Small Distance Between Hole And Louver Issue(s)", rgb(15, 5, 129), join(edges("hole"), faces("louver"))),
	smallDistance(feature.KindSmallDistanceBetweenHoleAndNotchIssue,
		"Small Distance Between Hole And Notch Issue(s)", rgb(235, 51, 36), edges("hole", "notch")),
	smallDistance(feature.KindSmallDistanceBetweenHolesIssue,
		"Small Distance Between Holes Issue(s)", rgb(142, 64, 58), edges("first_hole", "second_hole")),
	smallDistance(feature.KindSmallDistanceBetweenNotchAndBendIssue,
		"Small Distance Between Notch And Bend Issue(s)", rgb(58, 6, 3), join(edges("notch"), faces("bend"))),
	smallDistance(feature.KindSmallDistanceBetweenNotchesIssue,
		"Small Distance Between Notches Issue(s)", rgb(0, 215, 3), edges("first_notch", "second_notch")),
	smallDistance(feature.KindSmallDistanceBetweenTabsIssue,
		"Small Distance Between Tabs Issue(s)", rgb(157, 160, 207), edges("first_tab", "second_tab")),
	smallDistance(feature.KindSmallDistanceBetweenFeaturesIssue,
		"Small Distance Between Feature(s)", black, nil),
}

func smallDistance(k feature.Kind, name string, c Color, shapes []ShapeRef) *Descriptor {
	return &Descriptor{
		Kind:     k,
		Category: CategorySheetMetalIssue,
		Label:    Label{name, c},
		Subgroup: "Distance(s)",
		Params:   distanceParams,
		Shapes:   shapes,
	}
}

// bendReliefParams reports one actual relief size when only one side of the
// bend has a relief, two otherwise.
func bendReliefParams(f *feature.Feature) []Param {
	expected := Param{
		Name:  "Expected Minimum Relief Size (LxW)",
		Units: "mm",
		Value: Pair{f.Param("expected_min_relief_length"), f.Param("expected_min_relief_width")},
	}
	first := Pair{f.Param("first_relief_length"), f.Param("first_relief_width")}
	second := Pair{f.Param("second_relief_length"), f.Param("second_relief_width")}
	hasFirst := f.HasParam("first_relief_length") || f.Ref("first_relief") != nil
	hasSecond := f.HasParam("second_relief_length") || f.Ref("second_relief") != nil

	switch {
	case hasFirst && hasSecond:
		return []Param{
			expected,
			{Name: "First Actual Relief Size (LxW)", Units: "mm", Value: first},
			{Name: "Second Actual Relief Size (LxW)", Units: "mm", Value: second},
		}
	case hasFirst:
		return []Param{expected, {Name: "Actual Relief Size (LxW)", Units: "mm", Value: first}}
	default:
		return []Param{expected, {Name: "Actual Relief Size (LxW)", Units: "mm", Value: second}}
	}
}

var byKind = func() map[feature.Kind]*Descriptor {
	m := make(map[feature.Kind]*Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Kind] = d
	}
	return m
}()

// Lookup returns the descriptor of kind k. Composite kinds have none.
func Lookup(k feature.Kind) (*Descriptor, bool) {
	d, ok := byKind[k]
	return d, ok
}
