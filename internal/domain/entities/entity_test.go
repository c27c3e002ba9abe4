package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "concrete", NormalizeName("Concrete"))
	assert.Equal(t, "concrete", NormalizeName("CONCRETE"))
	assert.Equal(t, "concrete", NormalizeName("  Concrete "))
}

func TestAppearanceKey_Named(t *testing.T) {
	assert.Equal(t, "steel", AppearanceKey("Steel", 12))
	assert.Equal(t, AppearanceKey("CONCRETE", 1), AppearanceKey("concrete", 99))
}

func TestAppearanceKey_Unnamed(t *testing.T) {
	assert.Equal(t, "unnamed_12", AppearanceKey("", 12))

	// Unnamed entities with different per-file identifiers never share a key.
	assert.NotEqual(t, AppearanceKey("", 12), AppearanceKey("", 13))
}

func TestIsAppearanceClass(t *testing.T) {
	assert.True(t, IsAppearanceClass("IfcMaterial"))
	assert.True(t, IsAppearanceClass("IFCMATERIAL"))
	assert.True(t, IsAppearanceClass("IfcColourRgb"))
	assert.True(t, IsAppearanceClass("IfcPresentationLayerAssignment"))

	assert.False(t, IsAppearanceClass("IfcWall"))
	// The check is exact: subtypes of handled classes are not appearance
	// classes themselves.
	assert.False(t, IsAppearanceClass("IfcSurfaceStyleRendering"))
}
