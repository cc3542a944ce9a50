package csvx

import (
	"bytes"
	"github.com/pkg/errors"
	"github.com/viant/csvx/config"
	"github.com/viant/csvx/errx"
	"github.com/viant/csvx/flatten"
	"github.com/viant/csvx/option"
	"github.com/viant/csvx/reconstruct"
	"github.com/viant/csvx/record"
	"github.com/viant/csvx/row"
	"github.com/viant/csvx/shape"
	"io"
	"log/slog"
	"reflect"
)

// Format encodes and decodes values; it is safe for concurrent use
type Format struct {
	options *option.Options
	config  *config.Config
	logger  *Logger
}

// New creates a Format
func New(options ...option.Option) (*Format, error) {
	opts := option.NewOptions(options...)
	cfg := opts.GetConfig().Clone()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger := &Logger{Logger: slog.New(discard{})}
	if opts.GetLogger() != nil {
		logger = &Logger{Logger: opts.GetLogger()}
	}
	return &Format{options: opts, config: cfg, logger: logger}, nil
}

// Config returns format config
func (f *Format) Config() *config.Config {
	return f.config
}

// Marshal encodes value, a slice or array produces one row per element, any other value a single row
func (f *Format) Marshal(value interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Encode(buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes value to w
func (f *Format) Encode(w io.Writer, value interface{}) error {
	records, elemShape, err := f.flattenAll(value)
	columns := 0
	if err == nil {
		fallback := flatten.Headers(elemShape, flatten.Base(elemShape))
		columns = len(record.Union(records))
		err = f.WriteRecords(w, records, fallback)
	}
	f.logger.LogEncode("oneshot", len(records), columns, err)
	return err
}

func (f *Format) flattenAll(value interface{}) ([]*record.Record, *shape.Shape, error) {
	rValue := reflect.ValueOf(value)
	if !rValue.IsValid() {
		return nil, nil, errx.ShapeMismatch("value was nil")
	}
	aShape, err := shape.Of(rValue.Type())
	if err != nil {
		return nil, nil, err
	}
	for aShape.Kind == shape.Nullable && aShape.Unwrap().Kind == shape.List {
		if rValue.IsNil() {
			rValue = reflect.Zero(aShape.Elem.Type)
		} else {
			rValue = rValue.Elem()
		}
		aShape = aShape.Elem
	}
	encoder := flatten.New(f.config, f.options.GetLayout(option.Spread))
	if aShape.Kind != shape.List {
		rec, err := encoder.Flatten(rValue, aShape, flatten.Base(aShape))
		if err != nil {
			return nil, nil, err
		}
		return []*record.Record{rec}, aShape, nil
	}
	elemShape := aShape.Elem
	base := flatten.Base(elemShape)
	records := make([]*record.Record, 0, rValue.Len())
	for i := 0; i < rValue.Len(); i++ {
		rec, err := encoder.Flatten(rValue.Index(i), elemShape, base)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to encode element %v", i)
		}
		records = append(records, rec)
	}
	return records, elemShape, nil
}

// WriteRecords writes the union header of records followed by one row per record; fallback is used as header
// when records have no keys at all
func (f *Format) WriteRecords(w io.Writer, records []*record.Record, fallback []string) error {
	header := record.Union(records)
	if len(header) == 0 {
		header = fallback
	}
	writer := row.NewWriter(w, f.config.Row())
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(rec.Row(header, f.config.DefaultValue)); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// Unmarshal decodes data into dest pointer
func (f *Format) Unmarshal(data []byte, dest interface{}) error {
	return f.Decode(bytes.NewReader(data), dest)
}

// Decode decodes r into dest pointer; a slice dest takes one element per data row, any other exactly one data row
func (f *Format) Decode(r io.Reader, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if !destValue.IsValid() || destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return errx.ShapeMismatch("expected non nil pointer, but had %T", dest)
	}
	target := destValue.Elem()
	aShape, err := shape.Of(target.Type())
	if err != nil {
		return err
	}
	if aShape.Kind == shape.Nullable && aShape.Unwrap().Kind == shape.List {
		ptr := reflect.New(aShape.Elem.Type)
		if err = f.Decode(r, ptr.Interface()); err != nil {
			return err
		}
		target.Set(ptr)
		return nil
	}
	if aShape.Kind != shape.List {
		return f.decodeSingle(r, aShape, target)
	}
	decoder, err := f.NewDecoder(r, target.Type().Elem())
	if err != nil {
		return err
	}
	isArray := target.Kind() == reflect.Array
	result := target
	if isArray {
		target.Set(reflect.Zero(target.Type()))
	} else {
		result = reflect.MakeSlice(target.Type(), 0, 0)
	}
	for i := 0; ; i++ {
		item := reflect.New(decoder.elemType).Elem()
		if err = decoder.decode(item); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if !isArray {
			result = reflect.Append(result, item)
			continue
		}
		if i >= target.Len() {
			return errx.WithRecord(errx.ShapeMismatch("expected at most %v records for %v", target.Len(), target.Type()), i+1)
		}
		target.Index(i).Set(item)
	}
	if !isArray {
		target.Set(result)
	}
	return nil
}

func (f *Format) decodeSingle(r io.Reader, aShape *shape.Shape, target reflect.Value) error {
	reader := f.NewRecordReader(r)
	rec, err := reader.Read()
	switch err {
	case nil:
	case io.EOF:
		rec = record.New()
	default:
		return err
	}
	if _, err = reader.Read(); err != io.EOF {
		if err == nil {
			err = errx.WithRecord(errx.ShapeMismatch("expected a single record for %v, but had more", aShape.Type), 2)
		}
		return err
	}
	err = reconstruct.New(f.config).Reconstruct(rec, aShape, flatten.Base(aShape), 1, target)
	f.logger.LogDecode(1, err)
	return err
}

// NewRecordReader returns header zipped records of r
func (f *Format) NewRecordReader(r io.Reader) *record.Reader {
	return record.NewReader(row.NewReader(r, f.config.Row()), f.config.DefaultValue)
}

// Headers returns steady header of elemType
func (f *Format) Headers(elemType reflect.Type) ([]string, error) {
	aShape, err := shape.Of(elemType)
	if err != nil {
		return nil, err
	}
	return flatten.Headers(aShape, flatten.Base(aShape)), nil
}
