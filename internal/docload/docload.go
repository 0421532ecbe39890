// Package docload decodes raw JSON or YAML option documents for the
// tableopts binaries.
package docload

import (
	"fmt"
	"mime"
	"strings"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/source/yamldoc"
)

// Format is the syntax of an options document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// FormatFromContentType maps a Content-Type header to a Format. ok is false
// for media types that name neither.
func FormatFromContentType(ct string) (Format, bool) {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", false
	}
	switch mt {
	case "application/json", "text/json":
		return JSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return YAML, true
	}
	return "", false
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return YAML, true
	case strings.HasSuffix(path, ".json"):
		return JSON, true
	}
	return "", false
}

// Result is a decoded document plus the non-fatal issues found while
// parsing it.
type Result struct {
	Options  tableopts.TableReaderOptions
	Warnings tableopts.Issues
}

// Decode parses data in the given format under opt and decodes it with dec.
func Decode(dec *tableopts.Decoder, data []byte, format Format, opt tableopts.ParseOpt) (Result, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Result{}, &tableopts.Issue{Path: "/", Code: tableopts.CodeTruncated, Message: "max bytes exceeded", Offset: -1}
	}
	var (
		res Result
		doc tableopts.Node
		err error
	)
	switch format {
	case YAML:
		yopts := []yamldoc.Option{yamldoc.MaxDepth(opt.MaxDepth)}
		switch opt.Strictness.OnDuplicateKey {
		case tableopts.Error:
			yopts = append(yopts, yamldoc.Strict())
		case tableopts.Warn:
			yopts = append(yopts, yamldoc.WarnDuplicates(func(is tableopts.Issue) {
				res.Warnings = append(res.Warnings, is)
			}))
		}
		doc, err = yamldoc.Parse(data, yopts...)
	default:
		doc, err = tableopts.ParseDocumentWith(tableopts.JSONBytes(data), opt, func(is tableopts.Issue) {
			res.Warnings = append(res.Warnings, is)
		})
	}
	if err != nil {
		return Result{}, err
	}
	res.Options, err = dec.Decode(doc)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
