package jsonx

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/francoispqt/gojay"
	"github.com/viant/csvx/shape"
	"reflect"
)

// ErrMissingMember reports an object member that is absent and has no usable default
var ErrMissingMember = errors.New("missing required member")

// Options controls decoding
type Options struct {
	//IgnoreUnknownKeys skips object members without a matching field
	IgnoreUnknownKeys bool
	//DefaultValue is parsed into an absent primitive member without a tagged default
	DefaultValue string
}

type (
	objectDecoder struct {
		options *Options
		shape   *shape.Shape
		dest    reflect.Value
		seen    map[string]bool
	}

	mapDecoder struct {
		options *Options
		shape   *shape.Shape
		dest    reflect.Value
	}

	arrayDecoder struct {
		items []gojay.EmbeddedJSON
	}
)

func (o *objectDecoder) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	field := o.shape.Lookup(key)
	if field == nil {
		if o.options.IgnoreUnknownKeys {
			return nil
		}
		return fmt.Errorf("unknown key %q for %v", key, o.shape.Type)
	}
	raw := gojay.EmbeddedJSON{}
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return err
	}
	o.seen[key] = true
	if err := Unmarshal(raw, field.Shape, field.Value(o.dest), o.options); err != nil {
		return fmt.Errorf("%v: %w", key, err)
	}
	return nil
}

func (o *objectDecoder) NKeys() int { return 0 }

func (m *mapDecoder) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	raw := gojay.EmbeddedJSON{}
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return err
	}
	keyValue := reflect.New(m.shape.Key.Type).Elem()
	if err := ParseText(key, m.shape.Key, keyValue); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	item := reflect.New(m.shape.Elem.Type).Elem()
	if err := Unmarshal(raw, m.shape.Elem, item, m.options); err != nil {
		return fmt.Errorf("%v: %w", key, err)
	}
	m.dest.SetMapIndex(keyValue, item)
	return nil
}

func (m *mapDecoder) NKeys() int { return 0 }

func (a *arrayDecoder) UnmarshalJSONArray(dec *gojay.Decoder) error {
	raw := gojay.EmbeddedJSON{}
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return err
	}
	a.items = append(a.items, raw)
	return nil
}

// Unmarshal decodes JSON data described by aShape into addressable dest; options can be nil
func Unmarshal(data []byte, aShape *shape.Shape, dest reflect.Value, options *Options) error {
	if options == nil {
		options = &Options{}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("unexpected end of JSON input for %v", aShape)
	}
	if bytes.Equal(data, nullJSON) {
		switch aShape.Kind {
		case shape.Nullable, shape.List, shape.Map:
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}
		return fmt.Errorf("unexpected null for %v", aShape)
	}
	switch aShape.Kind {
	case shape.Nullable:
		ptr := reflect.New(aShape.Elem.Type)
		if err := Unmarshal(data, aShape.Elem, ptr.Elem(), options); err != nil {
			return err
		}
		dest.Set(ptr)
		return nil
	case shape.Primitive:
		return unmarshalPrimitive(data, aShape, dest)
	case shape.Structure:
		if data[0] != '{' {
			return fmt.Errorf("expected object for %v, but had: %s", aShape.Type, data)
		}
		decoder := &objectDecoder{options: options, shape: aShape, dest: dest, seen: map[string]bool{}}
		if err := gojay.UnmarshalJSONObject(data, decoder); err != nil {
			return err
		}
		for _, field := range aShape.Fields {
			if decoder.seen[field.Name] {
				continue
			}
			if err := Absent(field, field.Value(dest), options); err != nil {
				return err
			}
		}
		return nil
	case shape.List:
		return unmarshalList(data, aShape, dest, options)
	case shape.Map:
		return unmarshalMap(data, aShape, dest, options)
	}
	return fmt.Errorf("unsupported shape %v", aShape)
}

func unmarshalPrimitive(data []byte, aShape *shape.Shape, dest reflect.Value) error {
	switch aShape.Primitive {
	case shape.String, shape.Text:
		if data[0] != '"' {
			return fmt.Errorf("expected string for %v, but had: %s", aShape.Type, data)
		}
		text := ""
		if err := gojay.Unmarshal(data, &text); err != nil {
			return err
		}
		return aShape.Parse(text, dest)
	}
	return aShape.Parse(string(data), dest)
}

func unmarshalList(data []byte, aShape *shape.Shape, dest reflect.Value, options *Options) error {
	if data[0] != '[' {
		return fmt.Errorf("expected array for %v, but had: %s", aShape.Type, data)
	}
	decoder := &arrayDecoder{}
	if err := gojay.UnmarshalJSONArray(data, decoder); err != nil {
		return err
	}
	if dest.Kind() == reflect.Array {
		dest.Set(reflect.Zero(dest.Type()))
		if len(decoder.items) > dest.Len() {
			return fmt.Errorf("expected at most %v elements for %v, but had %v", dest.Len(), aShape.Type, len(decoder.items))
		}
		for i, item := range decoder.items {
			if err := Unmarshal(item, aShape.Elem, dest.Index(i), options); err != nil {
				return fmt.Errorf("%v: %w", i, err)
			}
		}
		return nil
	}
	if len(decoder.items) == 0 {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	slice := reflect.MakeSlice(dest.Type(), len(decoder.items), len(decoder.items))
	for i, item := range decoder.items {
		if err := Unmarshal(item, aShape.Elem, slice.Index(i), options); err != nil {
			return fmt.Errorf("%v: %w", i, err)
		}
	}
	dest.Set(slice)
	return nil
}

func unmarshalMap(data []byte, aShape *shape.Shape, dest reflect.Value, options *Options) error {
	aMap := reflect.MakeMap(dest.Type())
	switch data[0] {
	case '{':
		if aShape.Key.Unwrap().Kind != shape.Primitive {
			return fmt.Errorf("expected array of key value pairs for %v, but had object", aShape.Type)
		}
		if err := gojay.UnmarshalJSONObject(data, &mapDecoder{options: options, shape: aShape, dest: aMap}); err != nil {
			return err
		}
	case '[':
		decoder := &arrayDecoder{}
		if err := gojay.UnmarshalJSONArray(data, decoder); err != nil {
			return err
		}
		if len(decoder.items)%2 != 0 {
			return fmt.Errorf("expected key value pairs for %v, but had %v elements", aShape.Type, len(decoder.items))
		}
		for i := 0; i < len(decoder.items); i += 2 {
			key := reflect.New(aShape.Key.Type).Elem()
			if err := Unmarshal(decoder.items[i], aShape.Key, key, options); err != nil {
				return fmt.Errorf("%v: %w", i, err)
			}
			item := reflect.New(aShape.Elem.Type).Elem()
			if err := Unmarshal(decoder.items[i+1], aShape.Elem, item, options); err != nil {
				return fmt.Errorf("%v: %w", i+1, err)
			}
			aMap.SetMapIndex(key, item)
		}
	default:
		return fmt.Errorf("expected object for %v, but had: %s", aShape.Type, data)
	}
	if aMap.Len() == 0 {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	dest.Set(aMap)
	return nil
}
