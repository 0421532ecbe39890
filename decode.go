package tableopts

import (
	"log/slog"
	"strings"
)

// FieldListDecoder turns the array under the "fields" key into column
// descriptors. The Decoder returns its errors unchanged.
type FieldListDecoder func(array Node) ([]Field, error)

// Decoder decodes options documents into TableReaderOptions. A Decoder holds
// no mutable state and is safe for concurrent use.
type Decoder struct {
	fields FieldListDecoder
	logger *slog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithFieldListDecoder replaces the default field-list decoder.
func WithFieldListDecoder(f FieldListDecoder) DecoderOption {
	return func(d *Decoder) {
		if f != nil {
			d.fields = f
		}
	}
}

// WithLogger makes the decoder report skipped keys at debug level.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDecoder returns a Decoder using DecodeFields unless overridden.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{fields: DecodeFields, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes doc with the default decoder.
func Decode(doc Node) (TableReaderOptions, error) { return defaultDecoder.Decode(doc) }

// Decode walks the members of doc in order. A document that is not an object
// carries no options and yields the zero record. Unknown keys are skipped,
// a repeated key overwrites the earlier value, and the first failure aborts
// decoding.
func (d *Decoder) Decode(doc Node) (TableReaderOptions, error) {
	var out TableReaderOptions
	if kindOf(doc) != KindObject {
		return out, nil
	}
	root := rootPath()
	for _, m := range doc.Members() {
		tag, ok := LookupFieldTag(m.Key)
		if !ok {
			d.logger.Debug("skipping unknown options key", "key", m.Key)
			continue
		}
		p := root.Field(m.Key)
		switch tag {
		case TagSchema:
			if err := requireType(m.Value, KindString, p); err != nil {
				return TableReaderOptions{}, err
			}
			s := strings.Clone(m.Value.Text())
			out.SchemaName = &s
		case TagName:
			if err := requireType(m.Value, KindString, p); err != nil {
				return TableReaderOptions{}, err
			}
			s := strings.Clone(m.Value.Text())
			out.TableName = &s
		case TagFields:
			if err := requireType(m.Value, KindArray, p); err != nil {
				return TableReaderOptions{}, err
			}
			fields, err := d.fields(m.Value)
			if err != nil {
				return TableReaderOptions{}, err
			}
			out.Fields = fields
		}
	}
	return out, nil
}
