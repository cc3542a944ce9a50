package reconstruct

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/csvx/config"
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/shape"
	"github.com/viant/toolbox"
	"reflect"
	"testing"
)

type testObj struct {
	X int            `csv:"x,default=0"`
	Y string         `csv:"y,default=asdf"`
	Z *string        `csv:"z"`
	A *testObj       `csv:"a"`
	B []int          `csv:"b"`
	C map[string]int `csv:"c"`
}

type owner struct {
	Name  string `csv:"name"`
	Email string `csv:"email"`
}

type account struct {
	ID    int       `csv:"id"`
	Owner owner     `csv:"owner"`
	Alias *owner    `csv:"alias"`
	Tags  [2]string `csv:"tags"`
}

type point struct {
	X int `csv:"x"`
	Y int `csv:"y"`
}

type weird struct {
	Title     string `csv:"title"`
	Blankable string `csv:"blankable"`
	Nullable  *int   `csv:"nullable"`
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func newRecord(pairs ...string) *record.Record {
	result := record.New()
	for i := 0; i < len(pairs); i += 2 {
		result.Put(pairs[i], pairs[i+1])
	}
	return result
}

var basis = &testObj{
	X: 1, Y: "fdsa", Z: stringPtr("notnull"),
	A: &testObj{X: 42, Y: "asdf", A: &testObj{X: -1, Y: "asdf"}},
	B: []int{1},
	C: map[string]int{"key": 1},
}

func TestDecoder_Reconstruct(t *testing.T) {
	basisButNull := *basis
	basisButNull.A = nil

	testCases := []struct {
		description string
		record      *record.Record
		newDest     func() interface{}
		expect      interface{}
	}{
		{
			description: "spread columns",
			record: newRecord("x", "1", "y", "fdsa", "z", "notnull", "a.x", "42", "a.z", "null",
				"a.a.x", "-1", "b.0", "1", "c.0", "key", "c.1", "1"),
			newDest: func() interface{} { return &testObj{} },
			expect:  basis,
		},
		{
			description: "explicit presence marker",
			record: newRecord("x", "1", "y", "fdsa", "z", "notnull", "a", "true", "a.x", "42", "a.z", "null",
				"a.a.x", "-1", "a.a.a", "null", "b.0", "1", "c.0", "key", "c.1", "1"),
			newDest: func() interface{} { return &testObj{} },
			expect:  basis,
		},
		{
			description: "explicit null wins over child columns",
			record: newRecord("x", "1", "y", "fdsa", "z", "notnull", "a", "true", "a.x", "42", "a.z", "null",
				"a.a.x", "-1", "a.a.a", "null", "a.a.a.x", "1", "b.0", "1", "c.0", "key", "c.1", "1"),
			newDest: func() interface{} { return &testObj{} },
			expect:  basis,
		},
		{
			description: "explicit null structure",
			record:      newRecord("x", "1", "y", "fdsa", "z", "notnull", "a", "null", "b.0", "1", "c.0", "key", "c.1", "1"),
			newDest:     func() interface{} { return &testObj{} },
			expect:      &basisButNull,
		},
		{
			description: "deferred columns",
			record: newRecord("x", "1", "y", "fdsa", "z", "notnull", "a", `%{"x": 42, "a":{"x":-1}}`,
				"b", "%[1]", "c", `%{"key":1}`),
			newDest: func() interface{} { return &testObj{} },
			expect:  basis,
		},
		{
			description: "json columns without marker",
			record: newRecord("x", "1", "y", "fdsa", "z", "notnull", "a", `{"x": 42, "a":{"x":-1}}`,
				"b", "[1]", "c", `{"key":1}`),
			newDest: func() interface{} { return &testObj{} },
			expect:  basis,
		},
		{
			description: "deferred wins over spread columns",
			record:      newRecord("x", "1", "y", "fdsa", "z", "notnull", "b", "%[1]", "b.0", "7", "b.1", "8", "c", `%{"key":1}`, "a", `%{"x": 42, "a":{"x":-1}}`),
			newDest:     func() interface{} { return &testObj{} },
			expect:      basis,
		},
		{
			description: "absent fields use defaults",
			record:      newRecord(),
			newDest:     func() interface{} { return &testObj{X: 5, B: []int{3}} },
			expect:      &testObj{Y: "asdf"},
		},
		{
			description: "blank and null alternatives",
			record:      newRecord("title", "BlankAndNull"),
			newDest:     func() interface{} { return &weird{} },
			expect:      &weird{Title: "BlankAndNull"},
		},
		{
			description: "nullable primitive",
			record:      newRecord("title", "Normal", "blankable", "asdf", "nullable", "1"),
			newDest:     func() interface{} { return &weird{} },
			expect:      &weird{Title: "Normal", Blankable: "asdf", Nullable: intPtr(1)},
		},
		{
			description: "null marker on non nullable string is literal",
			record:      newRecord("title", "null", "nullable", "null"),
			newDest:     func() interface{} { return &weird{} },
			expect:      &weird{Title: "null"},
		},
		{
			description: "absent non nullable structure resolves members",
			record:      newRecord("id", "3", "tags.0", "a"),
			newDest:     func() interface{} { return &account{} },
			expect:      &account{ID: 3, Tags: [2]string{"a", ""}},
		},
		{
			description: "nullable structure present through children",
			record:      newRecord("id", "3", "alias.name", "n"),
			newDest:     func() interface{} { return &account{} },
			expect:      &account{ID: 3, Alias: &owner{Name: "n"}},
		},
		{
			description: "composite map keys",
			record:      newRecord("value.0.x", "1", "value.0.y", "2", "value.1", "12", "value.2.x", "2", "value.2.y", "1", "value.3", "21"),
			newDest:     func() interface{} { return &map[point]int{} },
			expect:      &map[point]int{{X: 1, Y: 2}: 12, {X: 2, Y: 1}: 21},
		},
		{
			description: "list stops at first gap",
			record:      newRecord("value.0", "1", "value.1", "2", "value.3", "4"),
			newDest:     func() interface{} { return &[]int{} },
			expect:      &[]int{1, 2},
		},
		{
			description: "list of nullable",
			record:      newRecord("value.0", "null", "value.1", "2"),
			newDest:     func() interface{} { return &[]*int{} },
			expect:      &[]*int{nil, intPtr(2)},
		},
	}
	for _, testCase := range testCases {
		dest := testCase.newDest()
		destValue := reflect.ValueOf(dest).Elem()
		aShape, err := shape.Of(destValue.Type())
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		base := path.Root
		if aShape.Unwrap().Kind != shape.Structure {
			base = path.Root.Field("value")
		}
		err = New(config.Default()).Reconstruct(testCase.record, aShape, base, 1, destValue)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		if !assert.EqualValues(t, testCase.expect, dest, testCase.description) {
			toolbox.Dump(dest)
		}
	}
}

func TestDecoder_Errors(t *testing.T) {
	type required struct {
		Count int    `csv:"count"`
		Inner owner  `csv:"inner"`
		List  []int  `csv:"list"`
		Point *point `csv:"point"`
		Codes [2]int `csv:"codes"`
	}
	testCases := []struct {
		description string
		record      *record.Record
		assertErr   func(err error) bool
		contains    []string
	}{
		{
			description: "value mismatch",
			record:      newRecord("count", "asdf"),
			assertErr:   errx.IsValueMismatch,
			contains:    []string{"record 2", `"count"`, "asdf"},
		},
		{
			description: "deferred decode",
			record:      newRecord("count", "1", "list", "%[[1,2,3]"),
			assertErr:   errx.IsDeferredDecode,
			contains:    []string{"record 2", `"list"`},
		},
		{
			description: "missing required field",
			record:      newRecord("inner.name", "x"),
			assertErr:   errx.IsMissingRequiredField,
			contains:    []string{"record 2", `"count"`},
		},
		{
			description: "null on non nullable structure",
			record:      newRecord("count", "1", "inner", "null"),
			assertErr:   errx.IsValueMismatch,
			contains:    []string{`"inner"`},
		},
		{
			description: "deferred structure missing required member",
			record:      newRecord("count", "1", "point", `%{"x":1}`),
			assertErr:   errx.IsDeferredDecode,
			contains:    []string{"record 2", `"point"`, "y: missing required member"},
		},
		{
			description: "spread array longer than destination",
			record:      newRecord("count", "1", "codes.0", "1", "codes.1", "2", "codes.2", "3"),
			assertErr:   errx.IsValueMismatch,
			contains:    []string{"record 2", `"codes.2"`},
		},
		{
			description: "deferred array longer than destination",
			record:      newRecord("count", "1", "codes", "%[1,2,3]"),
			assertErr:   errx.IsDeferredDecode,
			contains:    []string{"record 2", `"codes"`},
		},
		{
			description: "nested value mismatch",
			record:      newRecord("count", "1", "point.x", "1.5"),
			assertErr:   errx.IsValueMismatch,
			contains:    []string{`"point.x"`},
		},
	}
	for _, testCase := range testCases {
		dest := &required{}
		aShape, err := shape.Of(reflect.TypeOf(dest).Elem())
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		err = New(config.Default()).Reconstruct(testCase.record, aShape, path.Root, 2, reflect.ValueOf(dest).Elem())
		if !assert.NotNil(t, err, testCase.description) {
			continue
		}
		assert.True(t, testCase.assertErr(err), testCase.description)
		for _, fragment := range testCase.contains {
			assert.Contains(t, err.Error(), fragment, testCase.description)
		}
	}
}

func TestDecoder_NullableRoot(t *testing.T) {
	aShape, err := shape.Of(reflect.TypeOf(&owner{}))
	assert.Nil(t, err)
	dest := &owner{Name: "x"}
	value := reflect.ValueOf(&dest).Elem()
	assert.Nil(t, New(config.Default()).Reconstruct(record.New(), aShape, path.Root, 1, value))
	assert.Nil(t, dest)

	assert.Nil(t, New(config.Default()).Reconstruct(newRecord("name", "n"), aShape, path.Root, 1, value))
	assert.Equal(t, &owner{Name: "n"}, dest)
}
