package shape

import (
	"github.com/pkg/errors"
	"github.com/viant/csvx/errx"
	"github.com/viant/toolbox/format"
	"github.com/viant/xunsafe"
	"reflect"
	"sync"
)

// Registry caches shapes by type, it is safe for concurrent use
type Registry struct {
	mux        sync.RWMutex
	shapes     map[reflect.Type]*Shape
	caseFormat format.Case
}

var defaultRegistry = NewRegistry(format.CaseLowerCamel)

// NewRegistry creates a registry naming untagged fields with caseFormat
func NewRegistry(caseFormat format.Case) *Registry {
	return &Registry{shapes: map[reflect.Type]*Shape{}, caseFormat: caseFormat}
}

// Of returns shape of t from the default registry
func Of(t reflect.Type) (*Shape, error) {
	return defaultRegistry.Lookup(t)
}

// Lookup returns cached or newly built shape
func (r *Registry) Lookup(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, errx.ShapeMismatch("type was nil")
	}
	r.mux.RLock()
	shape, ok := r.shapes[t]
	r.mux.RUnlock()
	if ok {
		return shape, nil
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	building := map[reflect.Type]*Shape{}
	shape, err := r.build(t, building)
	if err != nil {
		return nil, err
	}
	for k, v := range building {
		r.shapes[k] = v
	}
	return shape, nil
}

func (r *Registry) build(t reflect.Type, building map[reflect.Type]*Shape) (*Shape, error) {
	if shape, ok := r.shapes[t]; ok {
		return shape, nil
	}
	if shape, ok := building[t]; ok {
		return shape, nil
	}
	shape := &Shape{Type: t}
	building[t] = shape
	if kind, ok := primitiveKind(t); ok {
		shape.Kind = Primitive
		shape.Primitive = kind
		return shape, nil
	}
	var err error
	switch t.Kind() {
	case reflect.Ptr:
		shape.Kind = Nullable
		shape.Elem, err = r.build(t.Elem(), building)
	case reflect.Slice, reflect.Array:
		shape.Kind = List
		shape.Elem, err = r.build(t.Elem(), building)
	case reflect.Map:
		shape.Kind = Map
		if shape.Key, err = r.build(t.Key(), building); err == nil {
			shape.Elem, err = r.build(t.Elem(), building)
		}
	case reflect.Struct:
		shape.Kind = Structure
		err = r.buildFields(shape, building)
	default:
		err = errx.ShapeMismatch("unsupported type %v", t)
	}
	if err != nil {
		delete(building, t)
		return nil, err
	}
	return shape, nil
}

func (r *Registry) buildFields(shape *Shape, building map[reflect.Type]*Shape) error {
	t := shape.Type
	shape.byName = map[string]*Field{}
	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		if structField.PkgPath != "" {
			continue
		}
		tag := ParseTag(structField.Tag.Get(TagName))
		if tag.Transient {
			continue
		}
		name := tag.Name
		if name == "" {
			name = format.CaseUpperCamel.Format(structField.Name, r.caseFormat)
		}
		if _, ok := shape.byName[name]; ok {
			return errx.ShapeMismatch("%v: duplicate column name %v", t, name)
		}
		fieldShape, err := r.build(structField.Type, building)
		if err != nil {
			return errors.Wrapf(err, "failed to build shape of %v.%v", t.Name(), structField.Name)
		}
		field := &Field{
			Name:       name,
			Shape:      fieldShape,
			Default:    tag.Default,
			HasDefault: tag.HasDefault,
			xField:     xunsafe.NewField(structField),
		}
		shape.Fields = append(shape.Fields, field)
		shape.byName[name] = field
	}
	return nil
}
