package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irodionov/ifcmerge/internal/domain/entities"
	"github.com/irodionov/ifcmerge/internal/domain/mocks"
	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

func entityList(es ...*mocks.Entity) []ports.Entity {
	out := make([]ports.Entity, 0, len(es))
	for _, e := range es {
		out = append(out, e)
	}
	return out
}

// baseModel builds a source model with one full appearance subgraph and a
// wall associated with a material.
func baseModel() *mocks.Model {
	return &mocks.Model{
		ModelSchema: "IFC4",
		Entities: entityList(
			&mocks.Entity{EntityID: 1, EntityClass: "IfcColourRgb", Red: 0.8, Green: 0.1, Blue: 0.1, HasRGB: true},
			&mocks.Entity{EntityID: 3, EntityClass: "IfcSurfaceStyle", EntityName: "Concrete"},
			&mocks.Entity{EntityID: 4, EntityClass: "IfcPresentationStyleAssignment"},
			&mocks.Entity{EntityID: 5, EntityClass: "IfcStyledItem"},
			&mocks.Entity{EntityID: 6, EntityClass: "IfcMaterial", EntityName: "Concrete"},
			&mocks.Entity{EntityID: 7, EntityClass: "IfcWall", EntityName: "Base wall", EntityGlobalID: entities.NewGlobalID(), IsAlso: []string{"IfcProduct", "IfcRoot"}},
			&mocks.Entity{EntityID: 8, EntityClass: "IfcRelAssociatesMaterial", EntityGlobalID: entities.NewGlobalID(), IsAlso: []string{"IfcRoot"}},
		),
	}
}

func TestMergeSession_ImportBase(t *testing.T) {
	base := baseModel()
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)

	report, err := session.ImportBase(context.Background(), base, "base.ifc")

	require.NoError(t, err)
	assert.True(t, report.Base)
	assert.Equal(t, "base.ifc", report.Path)
	assert.Equal(t, 1, report.Products)
	assert.Equal(t, 7, report.Copied)
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, out.Added, 7)

	// The identity sets are seeded from the base model.
	assert.Contains(t, session.known.Materials, "concrete")
	assert.Contains(t, session.known.SurfaceStyles, "concrete")
	assert.Contains(t, session.known.Colours, int64(1))
	assert.Contains(t, session.known.StyledItems, int64(5))
	assert.Contains(t, session.known.PresentationStyles, int64(4))
}

func TestMergeSession_ImportBase_FailureDoesNotAbort(t *testing.T) {
	base := baseModel()
	out := &mocks.Model{
		AddErr: func(e ports.Entity) error {
			if e.ID() == 6 {
				return errors.New("schema conflict")
			}
			return nil
		},
	}
	session := NewMergeSession(out)

	report, err := session.ImportBase(context.Background(), base, "base.ifc")

	require.NoError(t, err)
	assert.Equal(t, 6, report.Copied)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "IfcMaterial", report.Warnings[0].Class)
	assert.Equal(t, "Concrete", report.Warnings[0].Name)
	assert.Equal(t, "schema conflict", report.Warnings[0].Reason)
}

func TestMergeSession_MergeFile_DeduplicatesByKey(t *testing.T) {
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)
	_, err := session.ImportBase(context.Background(), baseModel(), "base.ifc")
	require.NoError(t, err)

	second := &mocks.Model{
		Entities: entityList(
			// Same per-file identifier as a known base colour: skipped.
			&mocks.Entity{EntityID: 1, EntityClass: "IfcColourRgb", HasRGB: true},
			// Fresh identifier: copied.
			&mocks.Entity{EntityID: 21, EntityClass: "IfcColourRgb", HasRGB: true},
			// Case variant of a known material name: skipped.
			&mocks.Entity{EntityID: 25, EntityClass: "IfcMaterial", EntityName: "CONCRETE"},
			&mocks.Entity{EntityID: 26, EntityClass: "IfcMaterial", EntityName: "Steel"},
			&mocks.Entity{EntityID: 23, EntityClass: "IfcSurfaceStyle", EntityName: "Steel"},
		),
	}

	report, err := session.MergeFile(context.Background(), second, "second.ifc")

	require.NoError(t, err)
	assert.Equal(t, 2, report.SkippedKnown)
	assert.Equal(t, 1, report.Appearance.Colours)
	assert.Equal(t, 1, report.Appearance.Materials)
	assert.Equal(t, 1, report.Appearance.SurfaceStyles)
	assert.Equal(t, 0, report.Failed)
}

func TestMergeSession_MergeFile_PassOrder(t *testing.T) {
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)

	// Entities listed in scrambled order; the merge must still copy
	// colours first and structural entities last.
	m := &mocks.Model{
		Entities: entityList(
			&mocks.Entity{EntityID: 30, EntityClass: "IfcWall", IsAlso: []string{"IfcProduct", "IfcRoot"}},
			&mocks.Entity{EntityID: 31, EntityClass: "IfcPresentationLayerAssignment", EntityName: "Layer A"},
			&mocks.Entity{EntityID: 32, EntityClass: "IfcRelAssociatesMaterial", IsAlso: []string{"IfcRoot"}},
			&mocks.Entity{EntityID: 33, EntityClass: "IfcStyledItem"},
			&mocks.Entity{EntityID: 34, EntityClass: "IfcMaterial", EntityName: "Steel"},
			&mocks.Entity{EntityID: 35, EntityClass: "IfcSurfaceStyle", EntityName: "Steel"},
			&mocks.Entity{EntityID: 36, EntityClass: "IfcPresentationStyleAssignment"},
			&mocks.Entity{EntityID: 37, EntityClass: "IfcColourRgb", HasRGB: true},
		),
	}

	_, err := session.MergeFile(context.Background(), m, "m.ifc")
	require.NoError(t, err)

	classes := make([]string, 0, len(out.Added))
	for _, e := range out.Added {
		classes = append(classes, e.Class())
	}
	assert.Equal(t, []string{
		"IfcColourRgb",
		"IfcPresentationStyleAssignment",
		"IfcSurfaceStyle",
		"IfcMaterial",
		"IfcStyledItem",
		"IfcRelAssociatesMaterial",
		"IfcPresentationLayerAssignment",
		"IfcWall",
	}, classes)
}

func TestMergeSession_MergeFile_Idempotence(t *testing.T) {
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)
	_, err := session.ImportBase(context.Background(), baseModel(), "base.ifc")
	require.NoError(t, err)

	file := func() *mocks.Model {
		return &mocks.Model{
			Entities: entityList(
				&mocks.Entity{EntityID: 21, EntityClass: "IfcColourRgb", HasRGB: true},
				&mocks.Entity{EntityID: 22, EntityClass: "IfcMaterial", EntityName: "Steel"},
				&mocks.Entity{EntityID: 23, EntityClass: "IfcStyledItem"},
				&mocks.Entity{EntityID: 24, EntityClass: "IfcRelAssociatesMaterial", IsAlso: []string{"IfcRoot"}},
				&mocks.Entity{EntityID: 25, EntityClass: "IfcPresentationLayerAssignment"},
			),
		}
	}

	first, err := session.MergeFile(context.Background(), file(), "second.ifc")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Appearance.Colours)
	assert.Equal(t, 1, first.Appearance.Materials)
	assert.Equal(t, 1, first.Appearance.StyledItems)

	// Merging the same file again contributes zero new appearance
	// entities to the dedup-keyed categories...
	again, err := session.MergeFile(context.Background(), file(), "second.ifc")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Appearance.Colours)
	assert.Equal(t, 0, again.Appearance.Materials)
	assert.Equal(t, 0, again.Appearance.StyledItems)
	assert.Equal(t, 3, again.SkippedKnown)

	// ...while the unconditional categories are duplicated verbatim.
	// That is an accepted property, not a bug.
	assert.Equal(t, 1, again.Appearance.MaterialRelations)
	assert.Equal(t, 1, again.Appearance.LayerAssignments)
}

func TestMergeSession_MergeFile_UnnamedPlaceholders(t *testing.T) {
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)

	first := &mocks.Model{
		Entities: entityList(
			&mocks.Entity{EntityID: 11, EntityClass: "IfcMaterial"},
		),
	}
	second := &mocks.Model{
		Entities: entityList(
			// Different per-file identifier: its placeholder key does not
			// collide, so it is copied even if structurally identical.
			&mocks.Entity{EntityID: 12, EntityClass: "IfcMaterial"},
		),
	}

	r1, err := session.MergeFile(context.Background(), first, "a.ifc")
	require.NoError(t, err)
	r2, err := session.MergeFile(context.Background(), second, "b.ifc")
	require.NoError(t, err)

	assert.Equal(t, 1, r1.Appearance.Materials)
	assert.Equal(t, 1, r2.Appearance.Materials)
	assert.Contains(t, session.known.Materials, "unnamed_11")
	assert.Contains(t, session.known.Materials, "unnamed_12")
}

func TestMergeSession_MergeFile_FailedCopyNotRecordedAsKnown(t *testing.T) {
	out := &mocks.Model{
		AddErr: func(e ports.Entity) error {
			if e.ID() == 21 {
				return errors.New("unresolved reference")
			}
			return nil
		},
	}
	session := NewMergeSession(out)

	m := &mocks.Model{
		Entities: entityList(
			&mocks.Entity{EntityID: 21, EntityClass: "IfcMaterial", EntityName: "Steel"},
		),
	}

	report, err := session.MergeFile(context.Background(), m, "m.ifc")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.NotContains(t, session.known.Materials, "steel")
}

func TestMergeSession_MergeFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := NewMergeSession(&mocks.Model{})
	_, err := session.MergeFile(ctx, &mocks.Model{}, "m.ifc")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeSession_Summary(t *testing.T) {
	out := &mocks.Model{ModelSchema: "IFC4"}
	session := NewMergeSession(out)
	_, err := session.ImportBase(context.Background(), baseModel(), "base.ifc")
	require.NoError(t, err)

	summary := session.Summary()
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, 1, summary.Materials)
	assert.Equal(t, 1, summary.SurfaceStyles)
	assert.Equal(t, 1, summary.StyledItems)
}
