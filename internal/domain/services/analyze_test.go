package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irodionov/ifcmerge/internal/domain/entities"
	"github.com/irodionov/ifcmerge/internal/domain/mocks"
	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

func TestAnalyzeService_Report(t *testing.T) {
	var list []ports.Entity
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("Material %d", i)
		if i == 2 {
			name = ""
		}
		list = append(list, &mocks.Entity{EntityID: int64(i + 1), EntityClass: "IfcMaterial", EntityName: name})
	}
	for i := 0; i < 4; i++ {
		list = append(list, &mocks.Entity{
			EntityID:    int64(20 + i),
			EntityClass: "IfcColourRgb",
			Red:         0.1 * float64(i), Green: 0.5, Blue: 0.9,
			HasRGB: true,
		})
	}
	list = append(list,
		&mocks.Entity{EntityID: 30, EntityClass: "IfcSurfaceStyle", EntityName: "Concrete"},
		&mocks.Entity{EntityID: 31, EntityClass: "IfcStyledItem"},
		&mocks.Entity{EntityID: 32, EntityClass: "IfcRelAssociatesMaterial", IsAlso: []string{"IfcRoot"}},
		&mocks.Entity{EntityID: 40, EntityClass: "IfcWall", EntityGlobalID: entities.NewGlobalID(), IsAlso: []string{"IfcProduct", "IfcRoot"}},
	)
	m := &mocks.Model{ModelSchema: "IFC4", Entities: list}

	report := NewAnalyzeService().Report(m, "model.ifc")

	assert.Equal(t, "model.ifc", report.Path)
	assert.Equal(t, "IFC4", report.Schema)
	assert.Equal(t, 1, report.Products)
	assert.Equal(t, 6, report.Materials)
	assert.Equal(t, []string{"Material 0", "Material 1", "Unnamed", "Material 3", "Material 4"}, report.MaterialNames)
	assert.Equal(t, 1, report.SurfaceStyles)
	assert.Equal(t, []string{"Concrete"}, report.SurfaceStyleNames)
	assert.Equal(t, 1, report.StyledItems)
	assert.Equal(t, 4, report.Colours)
	assert.Len(t, report.ColourSamples, 3)
	assert.InDelta(t, 0.1, report.ColourSamples[1].R, 1e-9)
	assert.Equal(t, 1, report.MaterialRelations)
	assert.Equal(t, 0, report.MalformedGlobalIDs)
	assert.Equal(t, 0, report.DuplicateGlobalIDs)
}

func TestAnalyzeService_Report_GlobalIDDiagnostics(t *testing.T) {
	shared := entities.NewGlobalID()
	m := &mocks.Model{
		ModelSchema: "IFC4",
		Entities: entityList(
			&mocks.Entity{EntityID: 1, EntityClass: "IfcWall", EntityGlobalID: shared, IsAlso: []string{"IfcProduct", "IfcRoot"}},
			&mocks.Entity{EntityID: 2, EntityClass: "IfcDoor", EntityGlobalID: shared, IsAlso: []string{"IfcProduct", "IfcRoot"}},
			&mocks.Entity{EntityID: 3, EntityClass: "IfcSlab", EntityGlobalID: "bad", IsAlso: []string{"IfcProduct", "IfcRoot"}},
			&mocks.Entity{EntityID: 4, EntityClass: "IfcBeam", IsAlso: []string{"IfcProduct", "IfcRoot"}},
		),
	}

	report := NewAnalyzeService().Report(m, "model.ifc")

	assert.Equal(t, 4, report.Products)
	assert.Equal(t, 2, report.MalformedGlobalIDs)
	assert.Equal(t, 1, report.DuplicateGlobalIDs)
}

func TestAnalyzeService_Report_Empty(t *testing.T) {
	m := &mocks.Model{ModelSchema: "IFC2X3"}

	report := NewAnalyzeService().Report(m, "empty.ifc")

	assert.Equal(t, 0, report.Materials)
	assert.Empty(t, report.MaterialNames)
	assert.Empty(t, report.ColourSamples)
	assert.Equal(t, 0, report.Products)
}
