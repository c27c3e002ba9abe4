package step

import "strings"

// Entity is a single decoded record. Entities are immutable once their
// owning model has finished loading; transplanting into another model
// produces a renumbered copy.
type Entity struct {
	model *Model
	id    int64
	class string // as spelled in the source file
	args  []Value
}

// ID returns the identifier, unique within the owning model.
func (e *Entity) ID() int64 {
	return e.id
}

// Class returns the canonical class name.
func (e *Entity) Class() string {
	return canonicalClass(e.class)
}

// Is reports whether the entity is of the given class or a subtype of it.
func (e *Entity) Is(class string) bool {
	if strings.EqualFold(e.class, class) {
		return true
	}
	return isSubtypeOf(e.class, class)
}

// Name returns the entity's Name attribute when the class defines one and
// the record carries a non-empty string there.
func (e *Entity) Name() (string, bool) {
	idx := nameIndex(e.class)
	if idx < 0 || idx >= len(e.args) {
		return "", false
	}
	v := e.args[idx]
	if v.Kind != KindString || v.Text == "" {
		return "", false
	}
	return v.Text, true
}

// GlobalID returns the GlobalId of a rooted entity.
func (e *Entity) GlobalID() (string, bool) {
	if !isRooted(e.class) || len(e.args) == 0 {
		return "", false
	}
	if v := e.args[0]; v.Kind == KindString && v.Text != "" {
		return v.Text, true
	}
	return "", false
}

// RGB returns the Red, Green and Blue components of an IfcColourRgb.
func (e *Entity) RGB() (r, g, b float64, ok bool) {
	if !strings.EqualFold(e.class, "IFCCOLOURRGB") || len(e.args) < 4 {
		return 0, 0, 0, false
	}
	for i := 1; i <= 3; i++ {
		if e.args[i].Kind != KindNumber {
			return 0, 0, 0, false
		}
	}
	return e.args[1].Number, e.args[2].Number, e.args[3].Number, true
}
