package row

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBuffer(t *testing.T) {
	testCases := []struct {
		description string
		initialSize int
		runes       []rune
		strings     []string
		expected    string
	}{
		{
			description: "buffer size greater than data size",
			initialSize: 1024,
			strings:     []string{"foo name", ",", "123"},
			expected:    "foo name,123",
		},
		{
			description: "buffer size lower than data size",
			initialSize: 1,
			strings:     []string{"foo name", ",", "123"},
			expected:    "foo name,123",
		},
		{
			description: "multi byte runes",
			initialSize: 2,
			runes:       []rune{'z', 'ż', 'ó', 'ł', 'w', '€'},
			expected:    "zżółw€",
		},
		{
			description: "invalid rune is replaced",
			initialSize: 4,
			runes:       []rune{'a', -1},
			expected:    "a\uFFFD",
		},
		{
			description: "empty buffer",
			initialSize: 0,
			expected:    "",
		},
	}

	for _, testCase := range testCases {
		buffer := NewBuffer(testCase.initialSize)
		for _, value := range testCase.strings {
			for _, r := range value {
				buffer.WriteRune(r)
			}
		}
		for _, r := range testCase.runes {
			buffer.WriteRune(r)
		}
		assert.Equal(t, testCase.expected, buffer.String(), testCase.description)
		buffer.Reset()
		assert.Equal(t, "", buffer.String(), testCase.description)
	}
}
