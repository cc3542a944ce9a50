package csvx

import (
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/flatten"
	"github.com/viant/csvx/path"
	"github.com/viant/csvx/reconstruct"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/shape"
	"io"
	"iter"
	"reflect"
)

// Decoder lazily decodes one value per data row.
// It consumes its source once, decoding again requires a new source.
type Decoder struct {
	format   *Format
	records  *record.Reader
	decoder  *reconstruct.Decoder
	shape    *shape.Shape
	elemType reflect.Type
	base     path.Path
	err      error
}

// NewDecoder creates a decoder of elemType values
func (f *Format) NewDecoder(r io.Reader, elemType reflect.Type) (*Decoder, error) {
	aShape, err := shape.Of(elemType)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		format:   f,
		records:  f.NewRecordReader(r),
		decoder:  reconstruct.New(f.config),
		shape:    aShape,
		elemType: elemType,
		base:     flatten.Base(aShape),
	}, nil
}

// Header returns the header row
func (d *Decoder) Header() ([]string, error) {
	return d.records.Header()
}

// Decode decodes the next value into dest pointer, io.EOF signals no more values;
// after a failure every call returns the same error
func (d *Decoder) Decode(dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if !destValue.IsValid() || destValue.Kind() != reflect.Ptr || destValue.IsNil() || destValue.Type().Elem() != d.elemType {
		return errx.ShapeMismatch("expected *%v, but had %T", d.elemType, dest)
	}
	return d.decode(destValue.Elem())
}

func (d *Decoder) decode(dest reflect.Value) error {
	if d.err != nil {
		return d.err
	}
	rec, err := d.records.Read()
	if err == nil {
		err = d.decoder.Reconstruct(rec, d.shape, d.base, d.records.Index(), dest)
	}
	if err != nil {
		d.err = err
		if err == io.EOF {
			d.format.logger.LogDecode(d.records.Index(), nil)
		} else {
			d.format.logger.LogDecode(d.records.Index(), err)
		}
	}
	return err
}

// Values returns single pass sequence of decoded values, the sequence ends after the first error
func Values[T any](d *Decoder) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			var item T
			err := d.Decode(&item)
			if err == io.EOF {
				return
			}
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}
