package tableopts

import (
	"bytes"
	"errors"
	"io"

	eng "github.com/reoring/tableopts/internal/engine"
)

// ParseDocument builds a document tree from src, keeping member order and
// duplicate keys. Enforcement options are applied while tokens stream in.
func ParseDocument(src Source, opts ...ParseOpt) (*Value, error) {
	return ParseDocumentWith(src, lastOpt(opts), nil)
}

// ParseDocumentWith is ParseDocument with a sink receiving non-fatal issues
// such as duplicate keys under Warn strictness.
func ParseDocumentWith(src Source, opt ParseOpt, sink func(Issue)) (*Value, error) {
	var forward func(eng.SimpleIssue)
	if sink != nil {
		forward = func(si eng.SimpleIssue) {
			sink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	ts := eng.WrapWithEnforcement(engineView(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   forward,
	})

	tok, err := ts.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newIssue(CodeParseError, "/", "empty document")
		}
		return nil, toIssue(err, ts.Location())
	}
	v, err := buildValue(ts, tok)
	if err != nil {
		return nil, toIssue(err, ts.Location())
	}
	if _, err := ts.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, toIssue(err, ts.Location())
		}
		is := newIssue(CodeParseError, "/", "unexpected content after document")
		is.Offset = ts.Location()
		return nil, is
	}
	return v, nil
}

// DecodeFrom parses src and decodes the resulting document with the default
// decoder.
func DecodeFrom(src Source, opts ...ParseOpt) (TableReaderOptions, error) {
	return defaultDecoder.DecodeFrom(src, opts...)
}

// DecodeBytes decodes a JSON options document.
func DecodeBytes(data []byte, opts ...ParseOpt) (TableReaderOptions, error) {
	return defaultDecoder.DecodeFrom(JSONBytes(data), opts...)
}

// DecodeReader decodes a JSON options document from r. When MaxBytes is set
// the input is capped before tokenizing.
func DecodeReader(r io.Reader, opts ...ParseOpt) (TableReaderOptions, error) {
	return defaultDecoder.DecodeReader(r, opts...)
}

// DecodeFrom parses src and decodes the resulting document.
func (d *Decoder) DecodeFrom(src Source, opts ...ParseOpt) (TableReaderOptions, error) {
	doc, err := ParseDocument(src, opts...)
	if err != nil {
		return TableReaderOptions{}, err
	}
	return d.Decode(doc)
}

// DecodeReader reads a JSON options document from r and decodes it.
func (d *Decoder) DecodeReader(r io.Reader, opts ...ParseOpt) (TableReaderOptions, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes <= 0 {
		return d.DecodeFrom(JSONReader(r), opts...)
	}
	data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
	if err != nil {
		is := newIssue(CodeParseError, "/", err.Error())
		is.Cause = err
		return TableReaderOptions{}, is
	}
	if int64(len(data)) > opt.MaxBytes {
		return TableReaderOptions{}, newIssue(CodeTruncated, "/", "max bytes exceeded")
	}
	return d.DecodeFrom(JSONReader(bytes.NewReader(data)), opts...)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func buildValue(src eng.TokenSource, tok eng.Token) (*Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return buildObject(src)
	case eng.KindBeginArray:
		return buildArray(src)
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(tok.Number), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func buildObject(src eng.TokenSource) (*Value, error) {
	var members []Member
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == eng.KindEndObject {
			return Object(members...), nil
		}
		if tok.Kind != eng.KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: tok.String, Value: v})
	}
}

func buildArray(src eng.TokenSource) (*Value, error) {
	var elems []Node
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == eng.KindEndArray {
			return Array(elems...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

func eofAsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssue(err error, offset int64) error {
	if _, ok := AsIssue(err); ok {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		is := newIssue(ie.Code, ie.Path, ie.Message)
		is.Offset = offset
		return is
	}
	is := newIssue(CodeParseError, "/", err.Error())
	is.Offset = offset
	is.Cause = err
	return is
}
