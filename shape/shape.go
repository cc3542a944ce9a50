package shape

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"unsafe"
)

// Kind represents a value shape variant
type Kind int

const (
	Primitive Kind = iota
	Nullable
	Structure
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Nullable:
		return "nullable"
	case Structure:
		return "structure"
	case List:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type (
	// Shape describes how a Go type is walked by the codec
	Shape struct {
		Kind      Kind
		Type      reflect.Type
		Primitive PrimitiveKind
		//Elem is the wrapped shape of Nullable, the element of List and the value of Map
		Elem *Shape
		//Key is the key shape of Map
		Key    *Shape
		Fields []*Field
		byName map[string]*Field
	}

	// Field represents a structure member
	Field struct {
		Name       string
		Shape      *Shape
		Default    string
		HasDefault bool
		xField     *xunsafe.Field
	}
)

// Lookup returns a structure member by column name
func (s *Shape) Lookup(name string) *Field {
	return s.byName[name]
}

// IsComposite returns true for structure, list and map shapes
func (s *Shape) IsComposite() bool {
	switch s.Kind {
	case Structure, List, Map:
		return true
	}
	return false
}

// Unwrap returns the first non nullable shape
func (s *Shape) Unwrap() *Shape {
	result := s
	for result.Kind == Nullable {
		result = result.Elem
	}
	return result
}

// String returns shape description
func (s *Shape) String() string {
	switch s.Kind {
	case Primitive:
		return s.Primitive.String()
	case Nullable:
		return s.Elem.String() + "?"
	case List:
		return "[]" + s.Elem.String()
	case Map:
		return "map[" + s.Key.String() + "]" + s.Elem.String()
	}
	return s.Type.String()
}

// Value returns addressable field value of the owner struct; owner has to be addressable
func (f *Field) Value(owner reflect.Value) reflect.Value {
	ptr := f.xField.Pointer(unsafe.Pointer(owner.UnsafeAddr()))
	return reflect.NewAt(f.Shape.Type, ptr).Elem()
}
