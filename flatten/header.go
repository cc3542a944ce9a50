package flatten

import (
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/shape"
)

// Headers returns steady header of aShape; value dependent positions (lists, maps, self recursive structures)
// take a single deferred column
func Headers(aShape *shape.Shape, base path.Path) []string {
	var result []string
	headers(aShape, base, nil, &result)
	return result
}

func headers(aShape *shape.Shape, at path.Path, ancestors []*shape.Shape, result *[]string) {
	switch aShape.Kind {
	case shape.Nullable:
		elem := aShape.Elem
		if elem.Kind == shape.Nullable {
			headers(elem, at, ancestors, result)
			return
		}
		if !at.IsRoot() {
			*result = append(*result, at.String())
		}
		if elem.Kind == shape.Structure && !contains(ancestors, elem) {
			headers(elem, at, ancestors, result)
		}
	case shape.Structure:
		if contains(ancestors, aShape) {
			*result = append(*result, at.String())
			return
		}
		ancestors = append(ancestors, aShape)
		for _, field := range aShape.Fields {
			headers(field.Shape, at.Field(field.Name), ancestors, result)
		}
	default:
		*result = append(*result, at.String())
	}
}

func contains(ancestors []*shape.Shape, aShape *shape.Shape) bool {
	for _, ancestor := range ancestors {
		if ancestor == aShape {
			return true
		}
	}
	return false
}
