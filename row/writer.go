package row

import (
	"bufio"
	"io"
	"strings"
)

// Writer writes rows with configured separators, escaping fields when needed
type Writer struct {
	dst    *bufio.Writer
	config *Config
	err    error
}

// NewWriter creates a Writer, it panics if w is nil
func NewWriter(w io.Writer, config *Config) *Writer {
	if w == nil {
		panic("csvx: row writer destination cannot be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Writer{dst: bufio.NewWriter(w), config: config}
}

// Write writes fields joined by the field separator and terminated by the record separator
func (w *Writer) Write(fields []string) error {
	if w.err != nil {
		return w.err
	}
	if len(fields) == 1 && fields[0] == "" {
		//a lone empty field is quoted, otherwise the row would read back as a blank line
		quote := string(w.config.Quote)
		if _, w.err = w.dst.WriteString(quote + quote); w.err != nil {
			return w.err
		}
		_, w.err = w.dst.WriteRune(w.config.RecordSeparator)
		return w.err
	}
	for i, field := range fields {
		if i > 0 {
			if _, w.err = w.dst.WriteRune(w.config.FieldSeparator); w.err != nil {
				return w.err
			}
		}
		if _, w.err = w.dst.WriteString(Escape(field, w.config)); w.err != nil {
			return w.err
		}
	}
	_, w.err = w.dst.WriteRune(w.config.RecordSeparator)
	return w.err
}

// WriteAll writes multiple rows, stopping at the first error
func (w *Writer) WriteAll(rows [][]string) error {
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.dst.Flush()
	return w.err
}

// Escape quotes value when it contains a separator, the record separator prefix or the quote character,
// embedded quote characters are doubled
func Escape(value string, config *Config) string {
	if !needsQuote(value, config) {
		return value
	}
	quote := string(config.Quote)
	sb := strings.Builder{}
	sb.Grow(len(value) + 2)
	sb.WriteString(quote)
	sb.WriteString(strings.ReplaceAll(value, quote, quote+quote))
	sb.WriteString(quote)
	return sb.String()
}

func needsQuote(value string, config *Config) bool {
	for _, c := range value {
		switch c {
		case config.FieldSeparator, config.RecordSeparator, config.Quote:
			return true
		case config.RecordSeparatorPrefix:
			if c != 0 {
				return true
			}
		}
	}
	return false
}
