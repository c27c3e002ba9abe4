package services

import (
	"github.com/irodionov/ifcmerge/internal/domain/entities"
	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

// KnownAppearance holds the five identity sets that drive appearance
// deduplication. Materials and surface styles are keyed by normalized
// name; styled items, colours and presentation-style assignments by their
// per-file identifier. The identifier keys deliberately reuse each source
// file's own numbering, exactly as seeded from the base file: an entity
// in a later file whose identifier collides with a recorded one is
// treated as already known, which keeps the base file dominant.
type KnownAppearance struct {
	Materials          map[string]struct{}
	SurfaceStyles      map[string]struct{}
	StyledItems        map[int64]struct{}
	Colours            map[int64]struct{}
	PresentationStyles map[int64]struct{}
}

// NewKnownAppearance creates empty identity sets.
func NewKnownAppearance() *KnownAppearance {
	return &KnownAppearance{
		Materials:          make(map[string]struct{}),
		SurfaceStyles:      make(map[string]struct{}),
		StyledItems:        make(map[int64]struct{}),
		Colours:            make(map[int64]struct{}),
		PresentationStyles: make(map[int64]struct{}),
	}
}

// Seed records the appearance identities present in m. Unnamed materials
// and surface styles are not seeded; identifier-keyed categories are
// seeded unconditionally.
func (k *KnownAppearance) Seed(m ports.Model) {
	for _, e := range m.ByType(entities.ClassMaterial) {
		if name, ok := e.Name(); ok {
			k.Materials[entities.NormalizeName(name)] = struct{}{}
		}
	}
	for _, e := range m.ByType(entities.ClassSurfaceStyle) {
		if name, ok := e.Name(); ok {
			k.SurfaceStyles[entities.NormalizeName(name)] = struct{}{}
		}
	}
	for _, e := range m.ByType(entities.ClassStyledItem) {
		k.StyledItems[e.ID()] = struct{}{}
	}
	for _, e := range m.ByType(entities.ClassColourRGB) {
		k.Colours[e.ID()] = struct{}{}
	}
	for _, e := range m.ByType(entities.ClassPresentationStyleAssignment) {
		k.PresentationStyles[e.ID()] = struct{}{}
	}
}
