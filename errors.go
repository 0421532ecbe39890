package tableopts

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeInvalidEnum  = "invalid_enum"
	CodeInvalidValue = "invalid_value"
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue is a single decoding failure. It implements error; Error returns
// Message unchanged so callers can match on the exact text.
type Issue struct {
	Path    string // JSON Pointer of the offending value (for example: /fields/2/type).
	Code    string
	Message string
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters such as {"expected":"string","received":"number"}.
	Params map[string]any
	Cause  error
}

func (i *Issue) Error() string { return i.Message }

func (i *Issue) Unwrap() error { return i.Cause }

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// AsIssue extracts an *Issue from err.
func AsIssue(err error) (*Issue, bool) {
	if err == nil {
		return nil, false
	}
	var is *Issue
	if errors.As(err, &is) {
		return is, true
	}
	return nil, false
}

// AsIssues extracts Issues from err. A lone *Issue is returned as a
// one-element collection.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	if is, ok := AsIssue(err); ok {
		return Issues{*is}, true
	}
	return nil, false
}

// IsTypeMismatch reports whether err is a type mismatch on a recognized field.
func IsTypeMismatch(err error) bool {
	is, ok := AsIssue(err)
	return ok && is.Code == CodeInvalidType
}

func newIssue(code, path, msg string) *Issue {
	return &Issue{Path: path, Code: code, Message: msg, Offset: -1}
}
