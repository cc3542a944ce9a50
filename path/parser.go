package path

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	segmentCode = iota + 1
	separatorCode
)

var segmentToken = parsly.NewToken(segmentCode, "segment", &segmentMatcher{})
var separatorToken = parsly.NewToken(separatorCode, Separator, matcher.NewByte('.'))

type segmentMatcher struct{}

// Match matches everything up to the next separator
func (m *segmentMatcher) Match(cursor *parsly.Cursor) (matched int) {
	input := cursor.Input
	for i := cursor.Pos; i < len(input); i++ {
		if input[i] == '.' {
			return matched
		}
		matched++
	}
	return matched
}

// Parse parses rendered path, every segment is returned as a name; whether a segment
// is an index is decided by whoever walks the path against a shape
func Parse(text string) Path {
	if text == "" {
		return Root
	}
	cursor := parsly.NewCursor("", []byte(text), 0)
	result := Root
	for {
		name := ""
		match := cursor.MatchOne(segmentToken)
		if match.Code == segmentCode {
			name = match.Text(cursor)
		}
		result = result.Field(name)
		match = cursor.MatchOne(separatorToken)
		if match.Code != separatorCode {
			return result
		}
	}
}
