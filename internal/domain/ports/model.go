// Package ports defines the interfaces between the merge domain and the
// model library infrastructure.
package ports

// Entity is a single schema-tagged record of an IFC model. Entities are
// read-only once loaded; identity is per owning model and never stable
// across models.
type Entity interface {
	// ID returns the numeric identifier, unique within the owning model.
	ID() int64

	// Class returns the schema class name, e.g. "IfcMaterial".
	Class() string

	// Is reports whether the entity is of the given class or one of its
	// subtypes. Comparison is case-insensitive.
	Is(class string) bool

	// Name returns the entity's name attribute, if the class defines one
	// and it is set to a non-empty string.
	Name() (string, bool)

	// GlobalID returns the 22-character GlobalId for rooted entities.
	GlobalID() (string, bool)

	// RGB returns the colour components of an IfcColourRgb entity.
	RGB() (r, g, b float64, ok bool)
}

// Model is an in-memory IFC model.
type Model interface {
	// Schema returns the schema version string, e.g. "IFC4".
	Schema() string

	// Len returns the number of entities in the model.
	Len() int

	// All returns every entity in the model's natural order.
	All() []Entity

	// ByType returns all entities of the given class (including subtypes),
	// in the model's natural order.
	ByType(class string) []Entity

	// Add transplants an entity from another model, copying transitively
	// required references that are not yet present. It returns the possibly
	// renumbered copy, or an error if a reference cannot be resolved or the
	// transplant would violate model consistency.
	Add(e Entity) (Entity, error)

	// Write serializes the model to the step-file text form at path.
	Write(path string) error
}

// ModelStore opens existing models and creates new ones.
type ModelStore interface {
	// Open parses the file at path into a model.
	Open(path string) (Model, error)

	// New creates an empty model bound to a schema version.
	New(schema string) (Model, error)
}
