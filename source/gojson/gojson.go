// Package gojson provides a tableopts JSON driver backed by goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/tableopts"
	eng "github.com/reoring/tableopts/internal/engine"
)

// Driver returns a tableopts.JSONDriver backed by goccy/go-json.
func Driver() tableopts.JSONDriver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) tableopts.Source {
	return tableopts.SourceFromEngine(NewReader(r))
}
func (driver) NewBytes(b []byte) tableopts.Source {
	return tableopts.SourceFromEngine(NewBytes(b))
}
func (driver) Name() string { return "go-json" }

type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
// go-json does not expose input offsets, so Location reports -1.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	t := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		t.Kind = s.keys.Delim(rune(v))
	case string:
		// go-json may hand out strings backed by its read buffer.
		t.String = strings.Clone(v)
		t.Kind = s.keys.Str()
	case bool:
		t.Kind, t.Bool = eng.KindBool, v
		s.keys.Scalar()
	case j.Number:
		t.Kind, t.Number = eng.KindNumber, strings.Clone(string(v))
		s.keys.Scalar()
	case float64:
		t.Kind, t.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
		s.keys.Scalar()
	default:
		t.Kind = eng.KindNull
		s.keys.Scalar()
	}
	return t, nil
}

func (s *source) Location() int64 { return -1 }
