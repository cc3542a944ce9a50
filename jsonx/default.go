package jsonx

import (
	"fmt"
	"github.com/viant/csvx/shape"
	"reflect"
)

// ParseText parses a cell or object key text into dest, allocating nullable wrappers on the way
func ParseText(text string, aShape *shape.Shape, dest reflect.Value) error {
	for aShape.Kind == shape.Nullable {
		ptr := reflect.New(aShape.Elem.Type)
		dest.Set(ptr)
		dest = ptr.Elem()
		aShape = aShape.Elem
	}
	return aShape.Parse(text, dest)
}

// Default sets field tagged default: primitives parse the text as is, composites decode it as JSON
func Default(field *shape.Field, dest reflect.Value, options *Options) error {
	aShape := field.Shape
	if aShape.Kind == shape.Nullable && field.Default == string(nullJSON) {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	if aShape.Unwrap().Kind == shape.Primitive {
		return ParseText(field.Default, aShape, dest)
	}
	return Unmarshal([]byte(field.Default), aShape, dest, options)
}

// Absent resolves a missing object member: its tagged default, nil for nullable and collections,
// primitives parse the configured default value; a structure resolves each of its own members
func Absent(field *shape.Field, dest reflect.Value, options *Options) error {
	if field.HasDefault {
		return Default(field, dest, options)
	}
	switch field.Shape.Kind {
	case shape.Structure:
		for _, child := range field.Shape.Fields {
			if err := Absent(child, child.Value(dest), options); err != nil {
				return fmt.Errorf("%v.%w", field.Name, err)
			}
		}
		return nil
	case shape.Primitive:
		if err := field.Shape.Parse(options.DefaultValue, dest); err != nil {
			return fmt.Errorf("%v: %w", field.Name, ErrMissingMember)
		}
		return nil
	}
	dest.Set(reflect.Zero(dest.Type()))
	return nil
}
