// Package services implements the merge and analysis policies.
package services

import (
	"context"

	"github.com/irodionov/ifcmerge/internal/domain/entities"
	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

// CopyWarning describes one entity whose copy into the output model
// failed. It identifies the entity as well as the source record allows.
type CopyWarning struct {
	Class    string `yaml:"class"`
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name,omitempty"`
	GlobalID string `yaml:"global_id,omitempty"`
	Reason   string `yaml:"reason"`
}

// AppearanceCounts breaks down the appearance entities copied from one
// file, per merge pass.
type AppearanceCounts struct {
	Colours            int `yaml:"colours"`
	PresentationStyles int `yaml:"presentation_styles"`
	SurfaceStyles      int `yaml:"surface_styles"`
	Materials          int `yaml:"materials"`
	StyledItems        int `yaml:"styled_items"`
	MaterialRelations  int `yaml:"material_relations"`
	LayerAssignments   int `yaml:"layer_assignments"`
}

// FileReport is the outcome of merging one input file.
type FileReport struct {
	Path         string           `yaml:"path"`
	Base         bool             `yaml:"base,omitempty"`
	Products     int              `yaml:"products"`
	Copied       int              `yaml:"copied"`
	SkippedKnown int              `yaml:"skipped_known"`
	Failed       int              `yaml:"failed"`
	Appearance   AppearanceCounts `yaml:"appearance"`
	Warnings     []CopyWarning    `yaml:"warnings,omitempty"`
}

// Summary counts the entity categories of the final model that operators
// care about.
type Summary struct {
	Products      int `yaml:"products"`
	Materials     int `yaml:"materials"`
	SurfaceStyles int `yaml:"surface_styles"`
	StyledItems   int `yaml:"styled_items"`
}

// MergeSession owns the output model and the identity sets for one merge
// run. The base file is imported first and wins every appearance
// conflict; later files contribute only appearance entities not already
// known, plus their structural entities.
type MergeSession struct {
	out   ports.Model
	known *KnownAppearance
}

// NewMergeSession creates a session writing into out.
func NewMergeSession(out ports.Model) *MergeSession {
	return &MergeSession{
		out:   out,
		known: NewKnownAppearance(),
	}
}

// ImportBase copies every entity of the base model in natural order, then
// seeds the identity sets from the base model. A per-entity copy failure
// is recorded in the report and does not abort the import.
func (s *MergeSession) ImportBase(ctx context.Context, base ports.Model, path string) (*FileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report := &FileReport{
		Path:     path,
		Base:     true,
		Products: len(base.ByType(entities.ClassProduct)),
	}
	for _, e := range base.All() {
		if _, err := s.out.Add(e); err != nil {
			report.Failed++
			report.Warnings = append(report.Warnings, warningFor(e, err))
			continue
		}
		report.Copied++
	}
	s.known.Seed(base)
	return report, nil
}

// MergeFile copies the appearance entities of m that are not already
// known, in a fixed order respecting the referential hierarchy (colours
// are leaves, styled items reference styles which reference colours),
// then sweeps up the remaining structural entities. Every copy is
// independently fault-tolerant.
func (s *MergeSession) MergeFile(ctx context.Context, m ports.Model, path string) (*FileReport, error) {
	report := &FileReport{
		Path:     path,
		Products: len(m.ByType(entities.ClassProduct)),
	}

	counts := &report.Appearance
	passes := []func(){
		func() { s.copyByID(m, entities.ClassColourRGB, s.known.Colours, &counts.Colours, report) },
		func() { s.copyByID(m, entities.ClassPresentationStyleAssignment, s.known.PresentationStyles, &counts.PresentationStyles, report) },
		func() { s.copyByName(m, entities.ClassSurfaceStyle, s.known.SurfaceStyles, &counts.SurfaceStyles, report) },
		func() { s.copyByName(m, entities.ClassMaterial, s.known.Materials, &counts.Materials, report) },
		func() { s.copyByID(m, entities.ClassStyledItem, s.known.StyledItems, &counts.StyledItems, report) },
		func() { s.copyAll(m, entities.ClassRelAssociatesMaterial, &counts.MaterialRelations, report) },
		func() { s.copyAll(m, entities.ClassPresentationLayerAssignment, &counts.LayerAssignments, report) },
		func() { s.sweep(m, report) },
	}
	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pass()
	}
	return report, nil
}

// Summary reports entity counts of the output model.
func (s *MergeSession) Summary() Summary {
	return Summary{
		Products:      len(s.out.ByType(entities.ClassProduct)),
		Materials:     len(s.out.ByType(entities.ClassMaterial)),
		SurfaceStyles: len(s.out.ByType(entities.ClassSurfaceStyle)),
		StyledItems:   len(s.out.ByType(entities.ClassStyledItem)),
	}
}

// copyByID copies entities of class whose per-file identifier is not yet
// known. Identifiers are recorded only on successful copy.
func (s *MergeSession) copyByID(m ports.Model, class string, seen map[int64]struct{}, count *int, report *FileReport) {
	for _, e := range m.ByType(class) {
		if _, known := seen[e.ID()]; known {
			report.SkippedKnown++
			continue
		}
		if _, err := s.out.Add(e); err != nil {
			report.Failed++
			report.Warnings = append(report.Warnings, warningFor(e, err))
			continue
		}
		seen[e.ID()] = struct{}{}
		*count++
		report.Copied++
	}
}

// copyByName copies entities of class whose name key is not yet known.
// Unnamed entities get a per-file placeholder key, so they never
// deduplicate against unnamed entities of other files.
func (s *MergeSession) copyByName(m ports.Model, class string, seen map[string]struct{}, count *int, report *FileReport) {
	for _, e := range m.ByType(class) {
		name, _ := e.Name()
		key := entities.AppearanceKey(name, e.ID())
		if _, known := seen[key]; known {
			report.SkippedKnown++
			continue
		}
		if _, err := s.out.Add(e); err != nil {
			report.Failed++
			report.Warnings = append(report.Warnings, warningFor(e, err))
			continue
		}
		seen[key] = struct{}{}
		*count++
		report.Copied++
	}
}

// copyAll copies every entity of class without deduplication. Duplicates
// of these relation categories are tolerated downstream.
func (s *MergeSession) copyAll(m ports.Model, class string, count *int, report *FileReport) {
	for _, e := range m.ByType(class) {
		if _, err := s.out.Add(e); err != nil {
			report.Failed++
			report.Warnings = append(report.Warnings, warningFor(e, err))
			continue
		}
		*count++
		report.Copied++
	}
}

// sweep copies every entity whose class is not one of the seven
// appearance categories already handled. The class check is exact, not
// subtype-aware, mirroring the per-pass selection.
func (s *MergeSession) sweep(m ports.Model, report *FileReport) {
	for _, e := range m.All() {
		if entities.IsAppearanceClass(e.Class()) {
			continue
		}
		if _, err := s.out.Add(e); err != nil {
			report.Failed++
			report.Warnings = append(report.Warnings, warningFor(e, err))
			continue
		}
		report.Copied++
	}
}

func warningFor(e ports.Entity, err error) CopyWarning {
	w := CopyWarning{
		Class:  e.Class(),
		ID:     e.ID(),
		Reason: err.Error(),
	}
	if name, ok := e.Name(); ok {
		w.Name = name
	}
	if gid, ok := e.GlobalID(); ok {
		w.GlobalID = gid
	}
	return w
}
