// SPDX-License-Identifier: AGPL-3.0-or-later
package feature

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the recognised feature and issue variants.
type Kind int

const (
	KindUnknown Kind = iota

	// Machining features.
	KindTurningFace
	KindMachiningFace
	KindCountersink
	KindMachiningHole
	KindPocket
	KindBoss

	// Sheet metal features.
	KindBead
	KindBend
	KindHemBend
	KindCurvedBend
	KindBridge
	KindSheetMetalHole
	KindComplexHole
	KindCutout
	KindLouver
	KindNotch
	KindStraightNotch
	KindVNotch
	KindTab

	// Composites.
	KindCompoundBend
	KindComposite

	// Drilling issues.
	KindSmallDiameterHoleIssue
	KindDeepHoleIssue
	KindNonStandardDiameterHoleIssue
	KindNonStandardDrillPointAngleBlindHoleIssue
	KindPartialHoleIssue
	KindFlatBottomHoleIssue
	KindNonPerpendicularHoleIssue
	KindIntersectingCavityHoleIssue

	// Milling issues.
	KindNonStandardRadiusMilledPartFloorFilletIssue
	KindDeepPocketIssue
	KindHighBossIssue
	KindLargeMilledPartIssue
	KindSmallRadiusMilledPartInternalCornerIssue
	KindNonPerpendicularMilledPartShapeIssue
	KindMilledPartExternalEdgeFilletIssue
	KindInconsistentRadiusMilledPartFloorFilletIssue
	KindNarrowRegionInPocketIssue
	KindLargeDifferenceRegionsSizeInPocketIssue

	// Turning issues.
	KindLargeTurnedPartIssue
	KindLongSlenderTurnedPartIssue
	KindSmallDepthBlindBoredHoleReliefIssue
	KindDeepBoredHoleIssue
	KindIrregularTurnedPartOuterDiameterProfileReliefIssue
	KindSmallRadiusTurnedPartInternalCornerIssue
	KindSquareEndKeywayIssue
	KindNonSymmetricalAxialSlotIssue

	// Sheet metal issues.
	KindFlatPatternInterferenceIssue
	KindIrregularCornerFilletRadiusNotchIssue
	KindIrregularDepthExtrudedHoleIssue
	KindIrregularRadiusOpenHemBendIssue
	KindInconsistentRadiusBendIssue
	KindIrregularSizeBendReliefIssue
	KindIrregularSizeNotchIssue
	KindIrregularSizeTabIssue
	KindLargeDepthBeadIssue
	KindSmallDepthLouverIssue
	KindNonStandardSheetSizeIssue
	KindNonStandardSheetThicknessIssue
	KindSheetMetalSmallDiameterHoleIssue
	KindSmallLengthFlangeIssue
	KindSmallLengthHemBendFlangeIssue
	KindSmallRadiusBendIssue
	KindSmallDistanceBetweenBendAndLouverIssue
	KindSmallDistanceBetweenExtrudedHoleAndBendIssue
	KindSmallDistanceBetweenExtrudedHoleAndEdgeIssue
	KindSmallDistanceBetweenExtrudedHolesIssue
	KindSmallDistanceBetweenHoleAndBendIssue
	KindSmallDistanceBetweenHoleAndCutoutIssue
	KindSmallDistanceBetweenHoleAndEdgeIssue
	KindSmallDistanceBetweenHoleAndLouverIssue
	KindSmallDistanceBetweenHoleAndNotchIssue
	KindSmallDistanceBetweenHolesIssue
	KindSmallDistanceBetweenNotchAndBendIssue
	KindSmallDistanceBetweenNotchesIssue
	KindSmallDistanceBetweenTabsIssue
	KindSmallDistanceBetweenFeaturesIssue

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown: "unknown",

	KindTurningFace:    "turning_face",
	KindMachiningFace:  "machining_face",
	KindCountersink:    "countersink",
	KindMachiningHole:  "machining_hole",
	KindPocket:         "pocket",
	KindBoss:           "boss",
	KindBead:           "bead",
	KindBend:           "bend",
	KindHemBend:        "hem_bend",
	KindCurvedBend:     "curved_bend",
	KindBridge:         "bridge",
	KindSheetMetalHole: "sheet_metal_hole",
	KindComplexHole:    "complex_hole",
	KindCutout:         "cutout",
	KindLouver:         "louver",
	KindNotch:          "notch",
	KindStraightNotch:  "straight_notch",
	KindVNotch:         "v_notch",
	KindTab:            "tab",
	KindCompoundBend:   "compound_bend",
	KindComposite:      "composite",

	KindSmallDiameterHoleIssue:                   "small_diameter_hole_issue",
	KindDeepHoleIssue:                            "deep_hole_issue",
	KindNonStandardDiameterHoleIssue:             "non_standard_diameter_hole_issue",
	KindNonStandardDrillPointAngleBlindHoleIssue: "non_standard_drill_point_angle_blind_hole_issue",
	KindPartialHoleIssue:                         "partial_hole_issue",
	KindFlatBottomHoleIssue:                      "flat_bottom_hole_issue",
	KindNonPerpendicularHoleIssue:                "non_perpendicular_hole_issue",
	KindIntersectingCavityHoleIssue:              "intersecting_cavity_hole_issue",

	KindNonStandardRadiusMilledPartFloorFilletIssue:  "non_standard_radius_milled_part_floor_fillet_issue",
	KindDeepPocketIssue:                              "deep_pocket_issue",
	KindHighBossIssue:                                "high_boss_issue",
	KindLargeMilledPartIssue:                         "large_milled_part_issue",
	KindSmallRadiusMilledPartInternalCornerIssue:     "small_radius_milled_part_internal_corner_issue",
	KindNonPerpendicularMilledPartShapeIssue:         "non_perpendicular_milled_part_shape_issue",
	KindMilledPartExternalEdgeFilletIssue:            "milled_part_external_edge_fillet_issue",
	KindInconsistentRadiusMilledPartFloorFilletIssue: "inconsistent_radius_milled_part_floor_fillet_issue",
	KindNarrowRegionInPocketIssue:                    "narrow_region_in_pocket_issue",
	KindLargeDifferenceRegionsSizeInPocketIssue:      "large_difference_regions_size_in_pocket_issue",

	KindLargeTurnedPartIssue:                               "large_turned_part_issue",
	KindLongSlenderTurnedPartIssue:                         "long_slender_turned_part_issue",
	KindSmallDepthBlindBoredHoleReliefIssue:                "small_depth_blind_bored_hole_relief_issue",
	KindDeepBoredHoleIssue:                                 "deep_bored_hole_issue",
	KindIrregularTurnedPartOuterDiameterProfileReliefIssue: "irregular_turned_part_outer_diameter_profile_relief_issue",
	KindSmallRadiusTurnedPartInternalCornerIssue:           "small_radius_turned_part_internal_corner_issue",
	KindSquareEndKeywayIssue:                               "square_end_keyway_issue",
	KindNonSymmetricalAxialSlotIssue:                       "non_symmetrical_axial_slot_issue",

	KindFlatPatternInterferenceIssue:                 "flat_pattern_interference_issue",
	KindIrregularCornerFilletRadiusNotchIssue:        "irregular_corner_fillet_radius_notch_issue",
	KindIrregularDepthExtrudedHoleIssue:              "irregular_depth_extruded_hole_issue",
	KindIrregularRadiusOpenHemBendIssue:              "irregular_radius_open_hem_bend_issue",
	KindInconsistentRadiusBendIssue:                  "inconsistent_radius_bend_issue",
	KindIrregularSizeBendReliefIssue:                 "irregular_size_bend_relief_issue",
	KindIrregularSizeNotchIssue:                      "irregular_size_notch_issue",
	KindIrregularSizeTabIssue:                        "irregular_size_tab_issue",
	KindLargeDepthBeadIssue:                          "large_depth_bead_issue",
	KindSmallDepthLouverIssue:                        "small_depth_louver_issue",
	KindNonStandardSheetSizeIssue:                    "non_standard_sheet_size_issue",
	KindNonStandardSheetThicknessIssue:               "non_standard_sheet_thickness_issue",
	KindSheetMetalSmallDiameterHoleIssue:             "sheet_metal_small_diameter_hole_issue",
	KindSmallLengthFlangeIssue:                       "small_length_flange_issue",
	KindSmallLengthHemBendFlangeIssue:                "small_length_hem_bend_flange_issue",
	KindSmallRadiusBendIssue:                         "small_radius_bend_issue",
	KindSmallDistanceBetweenBendAndLouverIssue:       "small_distance_between_bend_and_louver_issue",
	KindSmallDistanceBetweenExtrudedHoleAndBendIssue: "small_distance_between_extruded_hole_and_bend_issue",
	KindSmallDistanceBetweenExtrudedHoleAndEdgeIssue: "small_distance_between_extruded_hole_and_edge_issue",
	KindSmallDistanceBetweenExtrudedHolesIssue:       "small_distance_between_extruded_holes_issue",
	KindSmallDistanceBetweenHoleAndBendIssue:         "small_distance_between_hole_and_bend_issue",
	KindSmallDistanceBetweenHoleAndCutoutIssue:       "small_distance_between_hole_and_cutout_issue",
	KindSmallDistanceBetweenHoleAndEdgeIssue:         "small_distance_between_hole_and_edge_issue",
	KindSmallDistanceBetweenHoleAndLouverIssue:       "small_distance_between_hole_and_louver_issue",
	KindSmallDistanceBetweenHoleAndNotchIssue:        "small_distance_between_hole_and_notch_issue",
	KindSmallDistanceBetweenHolesIssue:               "small_distance_between_holes_issue",
	KindSmallDistanceBetweenNotchAndBendIssue:        "small_distance_between_notch_and_bend_issue",
	KindSmallDistanceBetweenNotchesIssue:             "small_distance_between_notches_issue",
	KindSmallDistanceBetweenTabsIssue:                "small_distance_between_tabs_issue",
	KindSmallDistanceBetweenFeaturesIssue:            "small_distance_between_features_issue",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is a known, non-zero kind.
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// IsComposite reports whether features of this kind only group other features.
func (k Kind) IsComposite() bool {
	return k == KindCompoundBend || k == KindComposite
}

// ParseKind maps a kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok || k == KindUnknown {
		return KindUnknown, fmt.Errorf("unknown feature kind %q", name)
	}
	return k, nil
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}
