// Package step implements the subset of the STEP physical file format
// (ISO 10303-21) that IFC models use: decoding, an in-memory model with
// transplanting adds, and serialization.
package step

// Kind discriminates attribute value variants.
type Kind int

const (
	// KindNull is the unset attribute marker ($).
	KindNull Kind = iota
	// KindDerived is the derived attribute marker (*).
	KindDerived
	// KindNumber is an integer or real literal.
	KindNumber
	// KindString is a quoted string.
	KindString
	// KindEnum is an enumeration literal (.NOTDEFINED.).
	KindEnum
	// KindRef is a reference to another entity (#12).
	KindRef
	// KindList is a parenthesized aggregate.
	KindList
	// KindTyped is an inline typed value (IFCLABEL('x')).
	KindTyped
)

// Value is one attribute of an entity record.
type Value struct {
	Kind   Kind
	Number float64 // parsed numeric value for KindNumber
	Text   string  // raw literal for KindNumber, content for KindString/KindEnum, class for KindTyped
	Ref    int64   // target identifier for KindRef
	List   []Value // elements for KindList, arguments for KindTyped
}
