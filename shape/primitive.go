package shape

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// PrimitiveKind represents primitive variant, every variant has a single parse and format function
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota + 1
	Int
	Uint
	Float
	String
	//Text represents types implementing encoding.TextMarshaler and encoding.TextUnmarshaler (enums, time.Time)
	Text
)

var (
	textMarshaler   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	case Text:
		return "text"
	}
	return fmt.Sprintf("primitive(%d)", int(k))
}

func primitiveKind(t reflect.Type) (PrimitiveKind, bool) {
	if t.Kind() != reflect.Ptr && t.Implements(textMarshaler) && reflect.PtrTo(t).Implements(textUnmarshaler) {
		return Text, true
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint, true
	case reflect.Float32, reflect.Float64:
		return Float, true
	case reflect.String:
		return String, true
	}
	return 0, false
}

// Parse parses text into addressable primitive dest
func (s *Shape) Parse(text string, dest reflect.Value) error {
	switch s.Primitive {
	case Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		dest.SetBool(v)
	case Int:
		v, err := strconv.ParseInt(text, 10, s.Type.Bits())
		if err != nil {
			return err
		}
		dest.SetInt(v)
	case Uint:
		v, err := strconv.ParseUint(text, 10, s.Type.Bits())
		if err != nil {
			return err
		}
		dest.SetUint(v)
	case Float:
		v, err := strconv.ParseFloat(text, s.Type.Bits())
		if err != nil {
			return err
		}
		dest.SetFloat(v)
	case String:
		dest.SetString(text)
	case Text:
		return dest.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
	default:
		return fmt.Errorf("%v is not a primitive", s.Type)
	}
	return nil
}

// Format renders primitive value
func (s *Shape) Format(value reflect.Value) (string, error) {
	switch s.Primitive {
	case Bool:
		return strconv.FormatBool(value.Bool()), nil
	case Int:
		return strconv.FormatInt(value.Int(), 10), nil
	case Uint:
		return strconv.FormatUint(value.Uint(), 10), nil
	case Float:
		return strconv.FormatFloat(value.Float(), 'g', -1, s.Type.Bits()), nil
	case String:
		return value.String(), nil
	case Text:
		data, err := value.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%v is not a primitive", s.Type)
}
