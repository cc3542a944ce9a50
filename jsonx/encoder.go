package jsonx

import (
	"bytes"
	"fmt"
	"github.com/francoispqt/gojay"
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/shape"
	"math"
	"reflect"
	"sort"
)

var nullJSON = []byte("null")

type (
	member struct {
		key   string
		value gojay.EmbeddedJSON
	}

	objectEncoder struct {
		members []member
	}

	arrayEncoder struct {
		items []gojay.EmbeddedJSON
	}
)

func (o *objectEncoder) MarshalJSONObject(enc *gojay.Encoder) {
	for i := range o.members {
		enc.AddEmbeddedJSONKey(o.members[i].key, &o.members[i].value)
	}
}

func (o *objectEncoder) IsNil() bool { return o == nil }

func (a *arrayEncoder) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range a.items {
		enc.AddEmbeddedJSON(&a.items[i])
	}
}

func (a *arrayEncoder) IsNil() bool { return a == nil }

// Marshal encodes value described by aShape as JSON
func Marshal(value reflect.Value, aShape *shape.Shape) ([]byte, error) {
	switch aShape.Kind {
	case shape.Nullable:
		if value.IsNil() {
			return nullJSON, nil
		}
		return Marshal(value.Elem(), aShape.Elem)
	case shape.Primitive:
		return marshalPrimitive(value, aShape)
	case shape.Structure:
		return marshalStructure(value, aShape)
	case shape.List:
		return marshalList(value, aShape)
	case shape.Map:
		return marshalMap(value, aShape)
	}
	return nil, errx.ShapeMismatch("unsupported shape %v", aShape)
}

func marshalPrimitive(value reflect.Value, aShape *shape.Shape) ([]byte, error) {
	switch aShape.Primitive {
	case shape.Float:
		if f := value.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("unsupported float value: %v", f)
		}
	case shape.String:
		return gojay.Marshal(value.String())
	}
	text, err := aShape.Format(value)
	if err != nil {
		return nil, err
	}
	if aShape.Primitive == shape.Text {
		return gojay.Marshal(text)
	}
	return []byte(text), nil
}

func marshalStructure(value reflect.Value, aShape *shape.Shape) ([]byte, error) {
	value = addressable(value)
	object := &objectEncoder{members: make([]member, 0, len(aShape.Fields))}
	for _, field := range aShape.Fields {
		data, err := Marshal(field.Value(value), field.Shape)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", field.Name, err)
		}
		object.members = append(object.members, member{key: field.Name, value: data})
	}
	return gojay.MarshalJSONObject(object)
}

func marshalList(value reflect.Value, aShape *shape.Shape) ([]byte, error) {
	array := &arrayEncoder{items: make([]gojay.EmbeddedJSON, 0, value.Len())}
	for i := 0; i < value.Len(); i++ {
		data, err := Marshal(value.Index(i), aShape.Elem)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", i, err)
		}
		array.items = append(array.items, data)
	}
	return gojay.MarshalJSONArray(array)
}

type entry struct {
	key   []byte
	text  string
	value []byte
}

func marshalMap(value reflect.Value, aShape *shape.Shape) ([]byte, error) {
	keyShape := aShape.Key
	entries := make([]entry, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		key, err := Marshal(iter.Key(), keyShape)
		if err != nil {
			return nil, err
		}
		item, err := Marshal(iter.Value(), aShape.Elem)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		anEntry := entry{key: key, value: item}
		if keyShape.Kind == shape.Primitive {
			if anEntry.text, err = keyShape.Format(iter.Key()); err != nil {
				return nil, err
			}
		}
		entries = append(entries, anEntry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	if keyShape.Kind == shape.Primitive {
		object := &objectEncoder{members: make([]member, 0, len(entries))}
		for _, anEntry := range entries {
			object.members = append(object.members, member{key: anEntry.text, value: anEntry.value})
		}
		return gojay.MarshalJSONObject(object)
	}
	array := &arrayEncoder{items: make([]gojay.EmbeddedJSON, 0, 2*len(entries))}
	for _, anEntry := range entries {
		array.items = append(array.items, anEntry.key, anEntry.value)
	}
	return gojay.MarshalJSONArray(array)
}

func addressable(value reflect.Value) reflect.Value {
	if value.CanAddr() {
		return value
	}
	result := reflect.New(value.Type()).Elem()
	result.Set(value)
	return result
}
