package csvx

import (
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/flatten"
	"github.com/viant/csvx/option"
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/row"
	"github.com/viant/csvx/shape"
	"io"
	"reflect"
)

// Encoder writes one row per value.
//
// In steady mode the header is derived from the shape and written before the first value,
// lists, maps and self recursive structures always take a deferred column.
// In ad hoc mode records are buffered and the union of their keys is written on Close.
type Encoder struct {
	format   *Format
	w        io.Writer
	writer   *row.Writer
	encoder  *flatten.Encoder
	mode     option.Mode
	shape    *shape.Shape
	elemType reflect.Type
	base     path.Path
	header   []string
	records  []*record.Record
	count    int
	closed   bool
}

// NewEncoder creates a streaming encoder of elemType values
func (f *Format) NewEncoder(w io.Writer, elemType reflect.Type, options ...option.Option) (*Encoder, error) {
	aShape, err := shape.Of(elemType)
	if err != nil {
		return nil, err
	}
	opts := f.options.Apply(options...)
	mode := opts.GetMode()
	layout := option.Deferred
	if mode == option.AdHoc {
		layout = opts.GetLayout(option.Deferred)
	}
	result := &Encoder{
		format:   f,
		w:        w,
		writer:   row.NewWriter(w, f.config.Row()),
		encoder:  flatten.New(f.config, layout),
		mode:     mode,
		shape:    aShape,
		elemType: elemType,
		base:     flatten.Base(aShape),
	}
	if mode == option.Steady {
		result.header = flatten.Headers(aShape, result.base)
		if err = result.writer.Write(result.header); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Encode encodes value of the encoder type
func (e *Encoder) Encode(value interface{}) error {
	if e.closed {
		return errx.ShapeMismatch("encoder was closed")
	}
	rValue := reflect.ValueOf(value)
	if !rValue.IsValid() || rValue.Type() != e.elemType {
		return errx.ShapeMismatch("expected %v, but had %T", e.elemType, value)
	}
	rec, err := e.encoder.Flatten(rValue, e.shape, e.base)
	if err != nil {
		return err
	}
	e.count++
	if e.mode == option.AdHoc {
		e.records = append(e.records, rec)
		return nil
	}
	return e.writer.Write(rec.Row(e.header, e.format.config.DefaultValue))
}

// Flush flushes written rows, ad hoc rows are only written on Close
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

// Close writes buffered ad hoc records and flushes output
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var err error
	if e.mode == option.AdHoc {
		fallback := flatten.Headers(e.shape, e.base)
		err = e.format.WriteRecords(e.w, e.records, fallback)
		e.header = record.Union(e.records)
		if len(e.header) == 0 {
			e.header = fallback
		}
		e.records = nil
	} else {
		err = e.writer.Flush()
	}
	e.format.logger.LogEncode(e.mode.String(), e.count, len(e.header), err)
	return err
}

// Header returns the written header, ad hoc header is known only after Close
func (e *Encoder) Header() []string {
	return e.header
}
