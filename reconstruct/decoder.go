package reconstruct

import (
	"fmt"
	"github.com/viant/csvx/config"
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/jsonx"
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/shape"
	"reflect"
	"strings"
)

// Decoder reconstructs values from records
type Decoder struct {
	config *config.Config
	json   *jsonx.Options
}

// New creates a decoder
func New(config *config.Config) *Decoder {
	return &Decoder{config: config, json: &jsonx.Options{
		IgnoreUnknownKeys: config.IgnoreUnknownKeys,
		DefaultValue:      config.DefaultValue,
	}}
}

type session struct {
	*Decoder
	record *record.Record
	index  int
}

// Reconstruct decodes rec into addressable dest; index is the 1-based record number reported by errors
func (d *Decoder) Reconstruct(rec *record.Record, aShape *shape.Shape, base path.Path, index int, dest reflect.Value) error {
	sess := &session{Decoder: d, record: rec, index: index}
	if !base.IsRoot() {
		if !rec.Exists(base.String()) {
			return sess.absent(aShape, base, dest)
		}
		return sess.decode(aShape, base, dest)
	}
	if aShape.Kind == shape.Nullable && rec.Len() == 0 {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	return sess.decode(aShape, base, dest)
}

func (s *session) decode(aShape *shape.Shape, at path.Path, dest reflect.Value) error {
	key := at.String()
	raw, has := s.record.Get(key)
	if !aShape.Unwrap().IsComposite() {
		if !has {
			return s.absent(aShape, at, dest)
		}
		if raw == s.config.NullMarker && aShape.Kind == shape.Nullable {
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}
		if err := jsonx.ParseText(raw, aShape, dest); err != nil {
			return errx.ValueMismatch(s.index, key, raw, err)
		}
		return nil
	}
	if has {
		switch {
		case raw == s.config.NullMarker:
			if aShape.Kind != shape.Nullable {
				return errx.ValueMismatch(s.index, key, raw, fmt.Errorf("%v is not nullable", aShape))
			}
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		case strings.HasPrefix(raw, s.config.DeferMarker):
			return s.decodeJSON(raw[len(s.config.DeferMarker):], raw, aShape, key, dest)
		case isJSON(raw):
			return s.decodeJSON(raw, raw, aShape, key, dest)
		}
		//any other value marks presence
	}
	switch aShape.Kind {
	case shape.Nullable:
		ptr := reflect.New(aShape.Elem.Type)
		if err := s.decode(aShape.Elem, at, ptr.Elem()); err != nil {
			return err
		}
		dest.Set(ptr)
		return nil
	case shape.Structure:
		for _, field := range aShape.Fields {
			fieldPath := at.Field(field.Name)
			fieldValue := field.Value(dest)
			var err error
			if s.record.Exists(fieldPath.String()) {
				err = s.decode(field.Shape, fieldPath, fieldValue)
			} else {
				err = s.absentField(field, fieldPath, fieldValue)
			}
			if err != nil {
				return err
			}
		}
		return nil
	case shape.List:
		return s.decodeList(aShape, at, dest)
	case shape.Map:
		return s.decodeMap(aShape, at, dest)
	}
	return errx.ShapeMismatch("unsupported shape %v at %v", aShape, key)
}

func (s *session) decodeJSON(data, raw string, aShape *shape.Shape, key string, dest reflect.Value) error {
	if err := jsonx.Unmarshal([]byte(data), aShape, dest, s.json); err != nil {
		return errx.DeferredDecode(s.index, key, raw, err)
	}
	return nil
}

func (s *session) decodeList(aShape *shape.Shape, at path.Path, dest reflect.Value) error {
	var items []reflect.Value
	for i := 0; s.record.Exists(at.Index(i).String()); i++ {
		item := reflect.New(aShape.Elem.Type).Elem()
		if err := s.decode(aShape.Elem, at.Index(i), item); err != nil {
			return err
		}
		items = append(items, item)
	}
	if dest.Kind() == reflect.Array {
		if len(items) > dest.Len() {
			key := at.Index(dest.Len()).String()
			raw, _ := s.record.Get(key)
			return errx.ValueMismatch(s.index, key, raw, fmt.Errorf("expected at most %v elements for %v, but had %v", dest.Len(), aShape.Type, len(items)))
		}
		dest.Set(reflect.Zero(dest.Type()))
		for i, item := range items {
			dest.Index(i).Set(item)
		}
		return nil
	}
	if len(items) == 0 {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	slice := reflect.MakeSlice(dest.Type(), len(items), len(items))
	for i, item := range items {
		slice.Index(i).Set(item)
	}
	dest.Set(slice)
	return nil
}

func (s *session) decodeMap(aShape *shape.Shape, at path.Path, dest reflect.Value) error {
	aMap := reflect.MakeMap(dest.Type())
	for k := 0; ; k++ {
		keyPath, valuePath := at.Index(2*k), at.Index(2*k+1)
		if !s.record.Exists(keyPath.String()) {
			break
		}
		key := reflect.New(aShape.Key.Type).Elem()
		if err := s.decode(aShape.Key, keyPath, key); err != nil {
			return err
		}
		value := reflect.New(aShape.Elem.Type).Elem()
		var err error
		if s.record.Exists(valuePath.String()) {
			err = s.decode(aShape.Elem, valuePath, value)
		} else {
			err = s.absent(aShape.Elem, valuePath, value)
		}
		if err != nil {
			return err
		}
		aMap.SetMapIndex(key, value)
	}
	if aMap.Len() == 0 {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	dest.Set(aMap)
	return nil
}

func (s *session) absentField(field *shape.Field, at path.Path, dest reflect.Value) error {
	if !field.HasDefault {
		return s.absent(field.Shape, at, dest)
	}
	if err := jsonx.Default(field, dest, s.json); err != nil {
		return errx.ValueMismatch(s.index, at.String(), field.Default, err)
	}
	return nil
}

// absent resolves a position without any column: nullable and collections become nil, primitives parse the
// configured default value, structures resolve every member
func (s *session) absent(aShape *shape.Shape, at path.Path, dest reflect.Value) error {
	switch aShape.Kind {
	case shape.Nullable, shape.List, shape.Map:
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	case shape.Primitive:
		if err := aShape.Parse(s.config.DefaultValue, dest); err != nil {
			return errx.MissingRequiredField(s.index, at.String())
		}
		return nil
	case shape.Structure:
		for _, field := range aShape.Fields {
			if err := s.absentField(field, at.Field(field.Name), field.Value(dest)); err != nil {
				return err
			}
		}
		return nil
	}
	return errx.ShapeMismatch("unsupported shape %v at %v", aShape, at.String())
}

func isJSON(raw string) bool {
	raw = strings.TrimSpace(raw)
	return len(raw) > 1 && (raw[0] == '{' || raw[0] == '[')
}
