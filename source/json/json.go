// Package json adapts encoding/json's streaming tokenizer to the engine token
// interface. It is the built-in default driver of tableopts.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	eng "github.com/reoring/tableopts/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	keys       eng.KeyTracker
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	t := eng.Token{Offset: s.lastOffset}
	switch v := tok.(type) {
	case json.Delim:
		t.Kind = s.keys.Delim(rune(v))
	case string:
		t.String = v
		t.Kind = s.keys.Str()
	case bool:
		t.Kind, t.Bool = eng.KindBool, v
		s.keys.Scalar()
	case json.Number:
		t.Kind, t.Number = eng.KindNumber, string(v)
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

func (s *jsonSource) Location() int64 { return s.lastOffset }
