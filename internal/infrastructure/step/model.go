package step

import (
	"errors"
	"fmt"

	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

// Model is an in-memory IFC model. It implements ports.Model.
type Model struct {
	schema   string
	entities map[int64]*Entity
	order    []*Entity
	nextID   int64

	// imported maps a source model's identifiers to the copies already
	// transplanted into this model, so that repeated adds of the same
	// source entity return the existing copy instead of duplicating it.
	// The map is keyed per source model: identifiers are never compared
	// across different source models.
	imported map[*Model]map[int64]*Entity
}

func newModel(schema string) *Model {
	return &Model{
		schema:   schema,
		entities: make(map[int64]*Entity),
		imported: make(map[*Model]map[int64]*Entity),
	}
}

// New creates an empty model bound to a schema version.
func New(schema string) *Model {
	return newModel(schema)
}

// put registers a decoded entity under its file identifier.
func (m *Model) put(id int64, class string, args []Value) error {
	if _, exists := m.entities[id]; exists {
		return fmt.Errorf("duplicate entity identifier #%d", id)
	}
	e := &Entity{model: m, id: id, class: class, args: args}
	m.entities[id] = e
	m.order = append(m.order, e)
	if id > m.nextID {
		m.nextID = id
	}
	return nil
}

// Schema returns the schema version string.
func (m *Model) Schema() string {
	return m.schema
}

// Len returns the number of entities.
func (m *Model) Len() int {
	return len(m.order)
}

// All returns every entity in natural (file or insertion) order.
func (m *Model) All() []ports.Entity {
	out := make([]ports.Entity, len(m.order))
	for i, e := range m.order {
		out[i] = e
	}
	return out
}

// ByType returns entities of the given class or its subtypes, in natural
// order.
func (m *Model) ByType(class string) []ports.Entity {
	var out []ports.Entity
	for _, e := range m.order {
		if e.Is(class) {
			out = append(out, e)
		}
	}
	return out
}

// Add transplants an entity from another model together with its forward
// references. Adding an entity that was already transplanted from the
// same source model returns the existing copy. The transplant fails,
// leaving the model unchanged, when a reference cannot be resolved.
func (m *Model) Add(e ports.Entity) (ports.Entity, error) {
	src, ok := e.(*Entity)
	if !ok {
		return nil, errors.New("entity does not originate from a step model")
	}
	if src.model == m {
		return src, nil
	}
	tx := &transplant{dst: m, src: src.model}
	dst, err := tx.add(src)
	if err != nil {
		tx.rollback()
		return nil, err
	}
	return dst, nil
}

// transplant tracks one Add operation so a failure midway can be undone.
type transplant struct {
	dst   *Model
	src   *Model
	added []transplantEntry
}

// transplantEntry journals one registered copy.
type transplantEntry struct {
	srcID int64
	ent   *Entity
}

func (t *transplant) add(e *Entity) (*Entity, error) {
	copies := t.dst.imported[t.src]
	if copies == nil {
		copies = make(map[int64]*Entity)
		t.dst.imported[t.src] = copies
	}
	if dst, ok := copies[e.id]; ok {
		return dst, nil
	}

	t.dst.nextID++
	dst := &Entity{model: t.dst, id: t.dst.nextID, class: e.class}

	// Register before rewriting arguments so reference cycles terminate.
	copies[e.id] = dst
	t.dst.entities[dst.id] = dst
	t.dst.order = append(t.dst.order, dst)
	t.added = append(t.added, transplantEntry{srcID: e.id, ent: dst})

	args, err := t.rewrite(e.args)
	if err != nil {
		return nil, err
	}
	dst.args = args
	return dst, nil
}

// rewrite deep-copies attribute values, transplanting referenced entities
// and renumbering the references.
func (t *transplant) rewrite(vals []Value) ([]Value, error) {
	out := make([]Value, len(vals))
	for i, v := range vals {
		switch v.Kind {
		case KindRef:
			target := t.src.entities[v.Ref]
			if target == nil {
				return nil, fmt.Errorf("unresolved reference #%d", v.Ref)
			}
			dst, err := t.add(target)
			if err != nil {
				return nil, err
			}
			out[i] = Value{Kind: KindRef, Ref: dst.id}
		case KindList, KindTyped:
			list, err := t.rewrite(v.List)
			if err != nil {
				return nil, err
			}
			out[i] = Value{Kind: v.Kind, Text: v.Text, List: list}
		default:
			out[i] = v
		}
	}
	return out, nil
}

// rollback removes every entity this transplant registered. The copies
// all sit at the tail of the order slice.
func (t *transplant) rollback() {
	if len(t.added) == 0 {
		return
	}
	copies := t.dst.imported[t.src]
	for _, entry := range t.added {
		delete(t.dst.entities, entry.ent.id)
		delete(copies, entry.srcID)
	}
	t.dst.order = t.dst.order[:len(t.dst.order)-len(t.added)]
	t.dst.nextID -= int64(len(t.added))
}
