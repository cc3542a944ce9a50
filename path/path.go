package path

import (
	"strconv"
)

// Separator joins rendered segments
const Separator = "."

// Segment represents a single path step, either a field name or a list/map slot index
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// String renders the segment
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Name
}

// Path represents an immutable location in a nested value, two paths are equal when their rendered texts are equal
type Path struct {
	segments []Segment
	text     string
}

// Root represents the empty path
var Root = Path{}

// Field returns a child path with name segment
func (p Path) Field(name string) Path {
	return p.append(Segment{Name: name})
}

// Index returns a child path with index segment
func (p Path) Index(index int) Path {
	return p.append(Segment{Index: index, IsIndex: true})
}

func (p Path) append(segment Segment) Path {
	segments := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	segments = append(segments, segment)
	text := segment.String()
	if len(p.segments) > 0 {
		text = p.text + Separator + text
	}
	return Path{segments: segments, text: text}
}

// String returns rendered path
func (p Path) String() string {
	return p.text
}

// IsRoot returns true for the empty path
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Prefixes returns rendered proper ancestors from the shortest, root excluded
func (p Path) Prefixes() []string {
	if len(p.segments) < 2 {
		return nil
	}
	result := make([]string, 0, len(p.segments)-1)
	offset := 0
	for _, segment := range p.segments[:len(p.segments)-1] {
		offset += len(segment.String())
		result = append(result, p.text[:offset])
		offset += len(Separator)
	}
	return result
}
