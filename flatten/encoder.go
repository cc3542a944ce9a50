package flatten

import (
	"fmt"
	"github.com/viant/csvx/config"
	"github.com/viant/csvx/jsonx"
	"github.com/viant/csvx/option"
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/shape"
	"reflect"
	"sort"
)

// ValueColumn names the column of a value that is not a structure
const ValueColumn = "value"

// Encoder flattens values into records
type Encoder struct {
	config *config.Config
	layout option.Layout
}

// New creates an encoder
func New(config *config.Config, layout option.Layout) *Encoder {
	return &Encoder{config: config, layout: layout}
}

// Base returns the path a value of aShape is flattened at
func Base(aShape *shape.Shape) path.Path {
	if aShape.Unwrap().Kind == shape.Structure {
		return path.Root
	}
	return path.Root.Field(ValueColumn)
}

// Flatten flattens value into a new record
func (e *Encoder) Flatten(value reflect.Value, aShape *shape.Shape, base path.Path) (*record.Record, error) {
	rec := record.New()
	if err := e.flatten(value, aShape, base, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *Encoder) flatten(value reflect.Value, aShape *shape.Shape, at path.Path, rec *record.Record, ancestors []*shape.Shape) error {
	switch aShape.Kind {
	case shape.Primitive:
		text, err := aShape.Format(value)
		if err != nil {
			return fmt.Errorf("failed to format %v: %w", at.String(), err)
		}
		rec.Put(at.String(), text)
		return nil
	case shape.Nullable:
		if value.IsNil() {
			if !at.IsRoot() {
				rec.Put(at.String(), e.config.NullMarker)
			}
			return nil
		}
		elem := aShape.Elem
		if e.isRecursive(elem, ancestors) {
			return e.deferValue(value.Elem(), elem, at, rec)
		}
		if elem.Unwrap().Kind != shape.Structure || at.IsRoot() {
			return e.flatten(value.Elem(), elem, at, rec, ancestors)
		}
		member, readable, err := e.flattenMember(value.Elem(), elem, at, ancestors)
		if err != nil {
			return err
		}
		if !readable {
			//all cells blank would read back as nil
			return e.deferValue(value.Elem(), elem, at, rec)
		}
		if e.layout == option.Deferred {
			rec.Put(at.String(), e.config.DefaultValue)
		}
		e.merge(rec, member)
		return nil
	case shape.Structure:
		if e.isRecursive(aShape, ancestors) {
			return e.deferValue(value, aShape, at, rec)
		}
		value = addressable(value)
		ancestors = append(ancestors, aShape)
		for _, field := range aShape.Fields {
			if err := e.flatten(field.Value(value), field.Shape, at.Field(field.Name), rec, ancestors); err != nil {
				return err
			}
		}
		return nil
	case shape.List:
		if e.layout == option.Deferred || value.Len() == 0 {
			return e.deferValue(value, aShape, at, rec)
		}
		members := make([]*record.Record, 0, value.Len())
		for i := 0; i < value.Len(); i++ {
			member, readable, err := e.flattenMember(value.Index(i), aShape.Elem, at.Index(i), ancestors)
			if err != nil {
				return err
			}
			if !readable {
				//a blank element would end the list when read back
				return e.deferValue(value, aShape, at, rec)
			}
			members = append(members, member)
		}
		for _, member := range members {
			e.merge(rec, member)
		}
		return nil
	case shape.Map:
		if e.layout == option.Deferred || value.Len() == 0 {
			return e.deferValue(value, aShape, at, rec)
		}
		return e.flattenMap(value, aShape, at, rec, ancestors)
	}
	return fmt.Errorf("unsupported shape %v at %v", aShape, at.String())
}

type entry struct {
	sortKey string
	key     reflect.Value
	value   reflect.Value
}

func (e *Encoder) flattenMap(value reflect.Value, aShape *shape.Shape, at path.Path, rec *record.Record, ancestors []*shape.Shape) error {
	entries := make([]entry, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		sortKey, err := jsonx.Marshal(iter.Key(), aShape.Key)
		if err != nil {
			return err
		}
		entries = append(entries, entry{sortKey: string(sortKey), key: iter.Key(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sortKey < entries[j].sortKey
	})
	members := make([]*record.Record, 0, 2*len(entries))
	for i, anEntry := range entries {
		key, readable, err := e.flattenMember(anEntry.key, aShape.Key, at.Index(2*i), ancestors)
		if err != nil {
			return err
		}
		if !readable {
			return e.deferValue(value, aShape, at, rec)
		}
		item, readable, err := e.flattenMember(anEntry.value, aShape.Elem, at.Index(2*i+1), ancestors)
		if err != nil {
			return err
		}
		if !readable {
			return e.deferValue(value, aShape, at, rec)
		}
		members = append(members, key, item)
	}
	for _, member := range members {
		e.merge(rec, member)
	}
	return nil
}

// flattenMember flattens value into its own record; readable is false when every cell equals the
// default value, as the reader drops such cells and nothing beneath at would be found
func (e *Encoder) flattenMember(value reflect.Value, aShape *shape.Shape, at path.Path, ancestors []*shape.Shape) (*record.Record, bool, error) {
	member := record.New()
	if err := e.flatten(value, aShape, at, member, ancestors); err != nil {
		return nil, false, err
	}
	for _, key := range member.Keys() {
		if cell, _ := member.Get(key); cell != e.config.DefaultValue {
			return member, true, nil
		}
	}
	return member, false, nil
}

func (e *Encoder) merge(rec, member *record.Record) {
	for _, key := range member.Keys() {
		cell, _ := member.Get(key)
		rec.Put(key, cell)
	}
}

func (e *Encoder) deferValue(value reflect.Value, aShape *shape.Shape, at path.Path, rec *record.Record) error {
	data, err := jsonx.Marshal(value, aShape)
	if err != nil {
		return fmt.Errorf("failed to encode %v: %w", at.String(), err)
	}
	rec.Put(at.String(), e.config.DeferMarker+string(data))
	return nil
}

// isRecursive returns true for a structure that is already being flattened higher up, deferred layout only
func (e *Encoder) isRecursive(aShape *shape.Shape, ancestors []*shape.Shape) bool {
	if e.layout != option.Deferred || aShape.Kind != shape.Structure {
		return false
	}
	for _, ancestor := range ancestors {
		if ancestor == aShape {
			return true
		}
	}
	return false
}

func addressable(value reflect.Value) reflect.Value {
	if value.CanAddr() {
		return value
	}
	result := reflect.New(value.Type()).Elem()
	result.Set(value)
	return result
}
