package shape

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/csvx/errx"
	"reflect"
	"testing"
	"time"
)

type owner struct {
	Name  string `csv:"name"`
	Email string `csv:"email"`
}

type vehicle struct {
	Year     int
	Make     string
	Owner    *owner   `csv:"owner"`
	Packages []string `csv:"packages"`
	Codes    map[string]int
	Note     string `csv:"-"`
	internal string
	Rating   float32 `csv:"rating,default=1.5"`
	Tags     []int   `csv:"tags,default=[1,2]"`
}

type node struct {
	ID       int     `csv:"id"`
	Next     *node   `csv:"next"`
	Children []*node `csv:"children"`
}

type color int

func (c color) MarshalText() ([]byte, error) {
	if c == 1 {
		return []byte("red"), nil
	}
	return []byte("blue"), nil
}

func (c *color) UnmarshalText(text []byte) error {
	*c = 2
	if string(text) == "red" {
		*c = 1
	}
	return nil
}

func TestRegistry_Lookup(t *testing.T) {
	shape, err := Of(reflect.TypeOf(vehicle{}))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, Structure, shape.Kind)
	var names []string
	for _, field := range shape.Fields {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"year", "make", "owner", "packages", "codes", "rating", "tags"}, names)

	ownerField := shape.Lookup("owner")
	assert.Equal(t, Nullable, ownerField.Shape.Kind)
	assert.Equal(t, Structure, ownerField.Shape.Elem.Kind)
	assert.Equal(t, Structure, ownerField.Shape.Unwrap().Kind)
	assert.Equal(t, List, shape.Lookup("packages").Shape.Kind)
	codes := shape.Lookup("codes").Shape
	assert.Equal(t, Map, codes.Kind)
	assert.Equal(t, String, codes.Key.Primitive)
	assert.Equal(t, Int, codes.Elem.Primitive)

	rating := shape.Lookup("rating")
	assert.True(t, rating.HasDefault)
	assert.Equal(t, "1.5", rating.Default)
	assert.Equal(t, "[1,2]", shape.Lookup("tags").Default)
	assert.Nil(t, shape.Lookup("note"))

	again, err := Of(reflect.TypeOf(vehicle{}))
	assert.Nil(t, err)
	assert.True(t, shape == again)
}

func TestRegistry_Recursive(t *testing.T) {
	shape, err := Of(reflect.TypeOf(node{}))
	if !assert.Nil(t, err) {
		return
	}
	next := shape.Lookup("next").Shape
	assert.True(t, next.Elem == shape)
	children := shape.Lookup("children").Shape
	assert.True(t, children.Elem.Elem == shape)
}

func TestRegistry_Unsupported(t *testing.T) {
	type invalid struct {
		Fn func()
	}
	_, err := Of(reflect.TypeOf(invalid{}))
	assert.True(t, errx.IsShapeMismatch(err))

	type duplicate struct {
		A int `csv:"x"`
		B int `csv:"x"`
	}
	_, err = Of(reflect.TypeOf(duplicate{}))
	assert.True(t, errx.IsShapeMismatch(err))
}

func TestParseTag(t *testing.T) {
	testCases := []struct {
		description string
		tag         string
		expected    *Tag
	}{
		{description: "empty", tag: "", expected: &Tag{}},
		{description: "transient", tag: "-", expected: &Tag{Transient: true}},
		{description: "name", tag: "year", expected: &Tag{Name: "year"}},
		{description: "name key", tag: "name=year", expected: &Tag{Name: "year"}},
		{description: "default", tag: "y,default=asdf", expected: &Tag{Name: "y", Default: "asdf", HasDefault: true}},
		{description: "default with commas", tag: "b,default=[1,2,3]", expected: &Tag{Name: "b", Default: "[1,2,3]", HasDefault: true}},
		{description: "empty default", tag: "s,default=", expected: &Tag{Name: "s", HasDefault: true}},
		{description: "default only", tag: "default=0", expected: &Tag{Default: "0", HasDefault: true}},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, ParseTag(testCase.tag), testCase.description)
	}
}

func TestShape_ParseFormat(t *testing.T) {
	testCases := []struct {
		description string
		value       interface{}
		text        string
	}{
		{description: "bool", value: true, text: "true"},
		{description: "int", value: -42, text: "-42"},
		{description: "int8", value: int8(-8), text: "-8"},
		{description: "uint16", value: uint16(65535), text: "65535"},
		{description: "float64", value: 1.25, text: "1.25"},
		{description: "float32", value: float32(0.1), text: "0.1"},
		{description: "string", value: "te,st", text: "te,st"},
		{description: "text", value: color(1), text: "red"},
		{description: "time", value: time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC), text: "2024-03-18T10:00:00Z"},
	}
	for _, testCase := range testCases {
		rType := reflect.TypeOf(testCase.value)
		shape, err := Of(rType)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, Primitive, shape.Kind, testCase.description)
		text, err := shape.Format(reflect.ValueOf(testCase.value))
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.text, text, testCase.description)

		dest := reflect.New(rType).Elem()
		assert.Nil(t, shape.Parse(testCase.text, dest), testCase.description)
		assert.Equal(t, testCase.value, dest.Interface(), testCase.description)
	}
}

func TestShape_ParseError(t *testing.T) {
	shape, err := Of(reflect.TypeOf(0))
	assert.Nil(t, err)
	dest := reflect.New(shape.Type).Elem()
	assert.NotNil(t, shape.Parse("asdf", dest))
	uint8Shape, _ := Of(reflect.TypeOf(uint8(0)))
	assert.NotNil(t, uint8Shape.Parse("256", reflect.New(uint8Shape.Type).Elem()))
}

func TestField_Value(t *testing.T) {
	shape, err := Of(reflect.TypeOf(vehicle{}))
	assert.Nil(t, err)
	value := &vehicle{Year: 1990, Owner: &owner{Name: "Owner Man"}}
	owner := reflect.ValueOf(value).Elem()
	assert.EqualValues(t, 1990, shape.Lookup("year").Value(owner).Int())
	shape.Lookup("make").Value(owner).SetString("Saturn")
	assert.Equal(t, "Saturn", value.Make)
	assert.Equal(t, "Owner Man", shape.Lookup("owner").Value(owner).Elem().Field(0).String())
}
