package record

import (
	"github.com/francoispqt/gojay"
	"github.com/viant/csvx/path"
)

// Record represents a flat record: path -> raw field value.
// Keys are unique, the first insertion position of a key is kept.
type Record struct {
	keys    []string
	values  map[string]string
	beneath map[string]bool
}

// New creates an empty record
func New() *Record {
	return &Record{values: map[string]string{}}
}

// Put sets key value, an existing key keeps its position
func (r *Record) Put(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
		r.beneath = nil
	}
	r.values[key] = value
}

// Get returns value for the key
func (r *Record) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Has returns true if key exists
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Exists returns true if key exists or any key is nested beneath it
func (r *Record) Exists(key string) bool {
	if _, ok := r.values[key]; ok {
		return true
	}
	if r.beneath == nil {
		r.index()
	}
	return r.beneath[key]
}

func (r *Record) index() {
	r.beneath = make(map[string]bool, len(r.keys))
	for _, key := range r.keys {
		for _, prefix := range path.Parse(key).Prefixes() {
			r.beneath[prefix] = true
		}
	}
}

// Keys returns keys in insertion order
func (r *Record) Keys() []string {
	result := make([]string, len(r.keys))
	copy(result, r.keys)
	return result
}

// Len returns number of keys
func (r *Record) Len() int {
	return len(r.keys)
}

// Row returns values ordered by header, defaultValue stands for a missing key
func (r *Record) Row(header []string, defaultValue string) []string {
	result := make([]string, len(header))
	for i, key := range header {
		value, ok := r.values[key]
		if !ok {
			value = defaultValue
		}
		result[i] = value
	}
	return result
}

// FromRow zips header with row cells; cells past the end of the shorter side, and cells equal to defaultValue, are dropped
func FromRow(header, row []string, defaultValue string) *Record {
	result := New()
	size := len(header)
	if len(row) < size {
		size = len(row)
	}
	for i := 0; i < size; i++ {
		if row[i] == defaultValue {
			continue
		}
		result.Put(header[i], row[i])
	}
	return result
}

// Union returns keys of all records in first seen order
func Union(records []*Record) []string {
	var result []string
	seen := map[string]bool{}
	for _, record := range records {
		for _, key := range record.keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, key)
		}
	}
	return result
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (r *Record) MarshalJSONObject(enc *gojay.Encoder) {
	for _, key := range r.keys {
		enc.StringKey(key, r.values[key])
	}
}

// IsNil implements gojay.MarshalerJSONObject
func (r *Record) IsNil() bool {
	return r == nil
}
