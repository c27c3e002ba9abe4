// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
)

// IFC class names the merge policy cares about. The seven appearance
// classes below are copied ahead of everything else and, where noted,
// deduplicated against the base file.
const (
	ClassColourRGB                   = "IfcColourRgb"
	ClassPresentationStyleAssignment = "IfcPresentationStyleAssignment"
	ClassSurfaceStyle                = "IfcSurfaceStyle"
	ClassMaterial                    = "IfcMaterial"
	ClassStyledItem                  = "IfcStyledItem"
	ClassRelAssociatesMaterial       = "IfcRelAssociatesMaterial"
	ClassPresentationLayerAssignment = "IfcPresentationLayerAssignment"

	// ClassProduct is only used for diagnostic counts.
	ClassProduct = "IfcProduct"
)

// AppearanceClasses lists the seven appearance classes in the order the
// merge copies them: leaves first (colours), then the styles and materials
// referencing them, then items and relations referencing those.
var AppearanceClasses = []string{
	ClassColourRGB,
	ClassPresentationStyleAssignment,
	ClassSurfaceStyle,
	ClassMaterial,
	ClassStyledItem,
	ClassRelAssociatesMaterial,
	ClassPresentationLayerAssignment,
}

// IsAppearanceClass reports whether class is one of the seven appearance
// classes. The match is exact (no subtype walk), case-insensitive.
func IsAppearanceClass(class string) bool {
	for _, c := range AppearanceClasses {
		if strings.EqualFold(class, c) {
			return true
		}
	}
	return false
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AppearanceKey returns the cross-file identity key for a named appearance
// entity: the normalized name, or a placeholder built from the entity's
// per-file identifier when the name is empty. Unnamed entities from
// different files therefore never deduplicate against each other.
func AppearanceKey(name string, id int64) string {
	if name == "" {
		return fmt.Sprintf("unnamed_%d", id)
	}
	return NormalizeName(name)
}
