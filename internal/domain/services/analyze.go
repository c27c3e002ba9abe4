package services

import (
	"github.com/irodionov/ifcmerge/internal/domain/entities"
	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

const (
	maxNameSamples   = 5
	maxColourSamples = 3
)

// ColourSample is one sampled IfcColourRgb.
type ColourSample struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// AppearanceReport is a read-only diagnostic view of one model's
// appearance entities.
type AppearanceReport struct {
	Path               string         `yaml:"path"`
	Schema             string         `yaml:"schema"`
	Products           int            `yaml:"products"`
	Materials          int            `yaml:"materials"`
	MaterialNames      []string       `yaml:"material_names,omitempty"`
	SurfaceStyles      int            `yaml:"surface_styles"`
	SurfaceStyleNames  []string       `yaml:"surface_style_names,omitempty"`
	StyledItems        int            `yaml:"styled_items"`
	Colours            int            `yaml:"colours"`
	ColourSamples      []ColourSample `yaml:"colour_samples,omitempty"`
	MaterialRelations  int            `yaml:"material_relations"`
	MalformedGlobalIDs int            `yaml:"malformed_global_ids,omitempty"`
	DuplicateGlobalIDs int            `yaml:"duplicate_global_ids,omitempty"`
}

// AnalyzeService builds appearance reports. It never mutates a model.
type AnalyzeService struct{}

// NewAnalyzeService creates a new analyze service.
func NewAnalyzeService() *AnalyzeService {
	return &AnalyzeService{}
}

// Report summarizes the appearance entities of m: counts, a truncated
// sample of material and surface-style names, and the first few colours.
func (s *AnalyzeService) Report(m ports.Model, path string) *AppearanceReport {
	report := &AppearanceReport{
		Path:   path,
		Schema: m.Schema(),
	}

	materials := m.ByType(entities.ClassMaterial)
	report.Materials = len(materials)
	report.MaterialNames = sampleNames(materials)

	styles := m.ByType(entities.ClassSurfaceStyle)
	report.SurfaceStyles = len(styles)
	report.SurfaceStyleNames = sampleNames(styles)

	report.StyledItems = len(m.ByType(entities.ClassStyledItem))

	colours := m.ByType(entities.ClassColourRGB)
	report.Colours = len(colours)
	for _, e := range colours {
		if len(report.ColourSamples) == maxColourSamples {
			break
		}
		if r, g, b, ok := e.RGB(); ok {
			report.ColourSamples = append(report.ColourSamples, ColourSample{R: r, G: g, B: b})
		}
	}

	report.MaterialRelations = len(m.ByType(entities.ClassRelAssociatesMaterial))

	products := m.ByType(entities.ClassProduct)
	report.Products = len(products)
	seen := make(map[string]struct{}, len(products))
	for _, e := range products {
		gid, ok := e.GlobalID()
		if !ok {
			report.MalformedGlobalIDs++
			continue
		}
		if _, err := entities.ExpandGUID(gid); err != nil {
			report.MalformedGlobalIDs++
		}
		if _, dup := seen[gid]; dup {
			report.DuplicateGlobalIDs++
		}
		seen[gid] = struct{}{}
	}

	return report
}

// sampleNames returns up to maxNameSamples entity names, substituting
// "Unnamed" where the record carries none.
func sampleNames(list []ports.Entity) []string {
	var names []string
	for _, e := range list {
		if len(names) == maxNameSamples {
			break
		}
		if name, ok := e.Name(); ok {
			names = append(names, name)
		} else {
			names = append(names, "Unnamed")
		}
	}
	return names
}
