// Package mocks provides mock implementations for testing.
package mocks

import (
	"strings"

	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

// Entity is a mock implementation of ports.Entity.
type Entity struct {
	EntityID       int64
	EntityClass    string
	EntityName     string
	EntityGlobalID string
	Red            float64
	Green          float64
	Blue           float64
	HasRGB         bool

	// IsAlso lists additional classes Is answers true for, standing in
	// for supertype resolution.
	IsAlso []string
}

// ID returns the configured identifier.
func (m *Entity) ID() int64 {
	return m.EntityID
}

// Class returns the configured class name.
func (m *Entity) Class() string {
	return m.EntityClass
}

// Is matches the configured class and any listed supertypes.
func (m *Entity) Is(class string) bool {
	if strings.EqualFold(class, m.EntityClass) {
		return true
	}
	for _, c := range m.IsAlso {
		if strings.EqualFold(class, c) {
			return true
		}
	}
	return false
}

// Name returns the configured name, if non-empty.
func (m *Entity) Name() (string, bool) {
	return m.EntityName, m.EntityName != ""
}

// GlobalID returns the configured global id, if non-empty.
func (m *Entity) GlobalID() (string, bool) {
	return m.EntityGlobalID, m.EntityGlobalID != ""
}

// RGB returns the configured colour components.
func (m *Entity) RGB() (r, g, b float64, ok bool) {
	return m.Red, m.Green, m.Blue, m.HasRGB
}

// Model is a mock implementation of ports.Model.
type Model struct {
	ModelSchema string
	Entities    []ports.Entity

	// AddErr, when set, is consulted for every Add and may force a
	// failure for selected entities.
	AddErr func(e ports.Entity) error

	// Call tracking
	Added        []ports.Entity
	WriteErr     error
	WrittenPaths []string
}

// Schema returns the configured schema string.
func (m *Model) Schema() string {
	return m.ModelSchema
}

// Len returns the number of configured entities.
func (m *Model) Len() int {
	return len(m.Entities)
}

// All returns the configured entities in order.
func (m *Model) All() []ports.Entity {
	return m.Entities
}

// ByType filters the configured entities with Is.
func (m *Model) ByType(class string) []ports.Entity {
	var out []ports.Entity
	for _, e := range m.Entities {
		if e.Is(class) {
			out = append(out, e)
		}
	}
	return out
}

// Add records the entity, or fails when AddErr says so.
func (m *Model) Add(e ports.Entity) (ports.Entity, error) {
	if m.AddErr != nil {
		if err := m.AddErr(e); err != nil {
			return nil, err
		}
	}
	m.Added = append(m.Added, e)
	m.Entities = append(m.Entities, e)
	return e, nil
}

// Write records the path and returns the configured error.
func (m *Model) Write(path string) error {
	m.WrittenPaths = append(m.WrittenPaths, path)
	return m.WriteErr
}

// Store is a mock implementation of ports.ModelStore.
type Store struct {
	Models  map[string]*Model // by path
	OpenErr map[string]error  // by path
	News    []*Model
}

// Open returns the configured model or error for path.
func (s *Store) Open(path string) (ports.Model, error) {
	if err := s.OpenErr[path]; err != nil {
		return nil, err
	}
	if m, ok := s.Models[path]; ok {
		return m, nil
	}
	return nil, &PathError{Path: path}
}

// New returns a fresh empty mock model and tracks it.
func (s *Store) New(schema string) (ports.Model, error) {
	m := &Model{ModelSchema: schema}
	s.News = append(s.News, m)
	return m, nil
}

// PathError reports a path the mock store has no model for.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "no model configured for " + e.Path
}
