package row

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Reader tokenizes a rune stream into rows.
//
// Reader is forward only: every Read consumes the underlying source, a fresh
// source is needed to read the same data again. Tokenizing never fails on
// malformed input, an unterminated quote simply closes at the end of input;
// only errors of the underlying source are reported.
type Reader struct {
	src    io.RuneReader
	config *Config
	field  *Buffer
	fields []string
	err    error
	done   bool
}

// NewReader creates a Reader over r, it panics if r is nil
func NewReader(r io.Reader, config *Config) *Reader {
	if r == nil {
		panic("csvx: row reader source cannot be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}
	src, ok := r.(io.RuneReader)
	if !ok {
		src = bufio.NewReader(r)
	}
	return &Reader{
		src:    src,
		config: config,
		field:  NewBuffer(256),
	}
}

// Read returns the next row, io.EOF signals that no more rows remain
func (r *Reader) Read() ([]string, error) {
	if r.done {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	var (
		cfg           = r.config
		inQuotes      bool
		closingQuote  bool //quote seen inside quotes, next rune decides between escape and close
		pendingPrefix bool
		started       bool
	)
	r.fields = make([]string, 0, cap(r.fields))
	r.field.Reset()

	for {
		c, _, err := r.src.ReadRune()
		if err != nil {
			r.done = true
			if err != io.EOF {
				r.err = err
				return nil, err
			}
			if pendingPrefix {
				r.field.WriteRune(cfg.RecordSeparatorPrefix)
				started = true
			}
			if !started {
				return nil, io.EOF
			}
			r.flushField()
			return r.fields, nil
		}

		if pendingPrefix {
			pendingPrefix = false
			if c != cfg.RecordSeparator {
				r.field.WriteRune(cfg.RecordSeparatorPrefix)
				started = true
			}
		}

		if closingQuote {
			closingQuote = false
			if c == cfg.Quote {
				r.field.WriteRune(cfg.Quote)
				continue
			}
			inQuotes = false
		}

		if inQuotes {
			if c == cfg.Quote {
				closingQuote = true
				continue
			}
			r.field.WriteRune(c)
			continue
		}

		switch c {
		case cfg.Quote:
			inQuotes = true
			started = true
		case cfg.FieldSeparator:
			r.flushField()
			started = true
		case cfg.RecordSeparatorPrefix:
			if cfg.RecordSeparatorPrefix == 0 {
				r.field.WriteRune(c)
				started = true
				continue
			}
			pendingPrefix = true
		case cfg.RecordSeparator:
			if !started {
				continue //blank line
			}
			r.flushField()
			return r.fields, nil
		default:
			r.field.WriteRune(c)
			started = true
		}
	}
}

// ReadAll exhausts the reader and returns all rows
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// Rows returns a single pass sequence of rows
func (r *Reader) Rows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) flushField() {
	value := r.field.String()
	if r.config.TrimWhitespace {
		value = strings.TrimSpace(value)
	}
	r.fields = append(r.fields, value)
	r.field.Reset()
}
