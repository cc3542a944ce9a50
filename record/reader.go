package record

import (
	"github.com/viant/csvx/row"
	"io"
	"iter"
	"strings"
)

// Reader zips data rows with the header row into records
type Reader struct {
	rows         *row.Reader
	defaultValue string
	header       []string
	headerErr    error
	index        int
	headerRead   bool
}

// NewReader creates a record reader
func NewReader(rows *row.Reader, defaultValue string) *Reader {
	return &Reader{rows: rows, defaultValue: defaultValue}
}

// Header returns trimmed header cells, reading the first row when needed; io.EOF means empty input
func (r *Reader) Header() ([]string, error) {
	if r.headerRead {
		return r.header, r.headerErr
	}
	r.headerRead = true
	cells, err := r.rows.Read()
	if err != nil {
		r.headerErr = err
		return nil, err
	}
	r.header = make([]string, len(cells))
	for i, cell := range cells {
		r.header[i] = strings.TrimSpace(cell)
	}
	return r.header, nil
}

// Read returns the next record, io.EOF signals no more records
func (r *Reader) Read() (*Record, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}
	cells, err := r.rows.Read()
	if err != nil {
		return nil, err
	}
	r.index++
	return FromRow(header, cells, r.defaultValue), nil
}

// Index returns 1-based number of the last record read
func (r *Reader) Index() int {
	return r.index
}

// Records returns single pass record sequence
func (r *Reader) Records() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}
