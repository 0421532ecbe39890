package tableopts

import (
	"errors"
	"io"

	eng "github.com/reoring/tableopts/internal/engine"
)

// FindDuplicateKeys scans a document and reports every repeated object key
// without building a tree. maxIssues <= 0 reports all of them.
func FindDuplicateKeys(src Source, maxIssues int) (Issues, error) {
	var iss Issues
	ts := eng.WrapWithEnforcement(engineView(src), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink: func(si eng.SimpleIssue) {
			if maxIssues > 0 && len(iss) >= maxIssues {
				return
			}
			is := newIssue(si.Code, si.Path, si.Message)
			is.Offset = src.Location()
			iss = append(iss, *is)
		},
	})
	depth, seen := 0, false
	for {
		tok, err := ts.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !seen {
					return nil, newIssue(CodeParseError, "/", "empty document")
				}
				if depth == 0 {
					return iss, nil
				}
			}
			return nil, toIssue(eofAsUnexpected(err), ts.Location())
		}
		seen = true
		switch tok.Kind {
		case eng.KindBeginObject, eng.KindBeginArray:
			depth++
		case eng.KindEndObject, eng.KindEndArray:
			depth--
		}
		if maxIssues > 0 && len(iss) >= maxIssues {
			return iss, nil
		}
	}
}

// FindDuplicateKeysBytes is FindDuplicateKeys over JSON bytes.
func FindDuplicateKeysBytes(data []byte, maxIssues int) (Issues, error) {
	return FindDuplicateKeys(JSONBytes(data), maxIssues)
}
