package dump

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed JSON value.
type Value interface {
	value()
}

// Null is JSON null.
type Null struct{}

// String is a JSON string.
type String string

// Number is a JSON number held as its literal text. Integers keep full
// precision.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Array is an ordered JSON array.
type Array []Value

// Object is a JSON object. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Null) value()   {}
func (String) value() {}
func (Number) value() {}
func (Bool) value()   {}
func (Array) value()  {}
func (Object) value() {}

// SortedKeys returns keys ordered by UTF-16 code units, which differs from
// Go's byte-wise string order for characters outside the BMP.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
