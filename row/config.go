package row

import "fmt"

// Config represents the characters used to tokenize and write rows.
// A Config is never modified once handed to a Reader or Writer.
type Config struct {
	FieldSeparator  rune
	RecordSeparator rune
	//RecordSeparatorPrefix is absorbed when immediately followed by RecordSeparator, otherwise it is literal text, zero disables it
	RecordSeparatorPrefix rune
	Quote                 rune
	//DefaultValue stands for an absent cell
	DefaultValue   string
	TrimWhitespace bool
}

// DefaultConfig returns comma separated, new line terminated, double quoted config
func DefaultConfig() *Config {
	return &Config{
		FieldSeparator:        ',',
		RecordSeparator:       '\n',
		RecordSeparatorPrefix: '\r',
		Quote:                 '"',
		TrimWhitespace:        true,
	}
}

// Validate checks that all required characters are set and distinct
func (c *Config) Validate() error {
	chars := []struct {
		name  string
		value rune
	}{
		{"field separator", c.FieldSeparator},
		{"record separator", c.RecordSeparator},
		{"record separator prefix", c.RecordSeparatorPrefix},
		{"quote", c.Quote},
	}
	seen := map[rune]string{}
	for _, char := range chars {
		if char.value == 0 {
			if char.name == "record separator prefix" {
				continue
			}
			return fmt.Errorf("%v was empty", char.name)
		}
		if prev, ok := seen[char.value]; ok {
			return fmt.Errorf("%v and %v share the same character %q", prev, char.name, char.value)
		}
		seen[char.value] = char.name
	}
	return nil
}
