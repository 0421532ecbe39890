// Package yamldoc reads YAML documents into tableopts document trees. Mapping
// order and repeated keys are kept, so YAML options decode exactly like the
// equivalent JSON.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/tableopts"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Option configures a Reader.
type Option func(*Reader)

// Strict rejects mappings that repeat a key.
func Strict() Option { return func(r *Reader) { r.strict = true } }

// WarnDuplicates keeps repeated keys and reports each repeat to fn.
// It has no effect together with Strict.
func WarnDuplicates(fn func(tableopts.Issue)) Option {
	return func(r *Reader) { r.warn = fn }
}

// MaxDepth limits mapping and sequence nesting; 0 disables the check.
func MaxDepth(n int) Option { return func(r *Reader) { r.maxDepth = n } }

// MaxAliasNodes caps the number of nodes that alias expansion may add to
// one document. Without it the cap is four times the document's own node
// count, and never below 1024.
func MaxAliasNodes(n int) Option { return func(r *Reader) { r.maxAliasNodes = n } }

const minAliasBudget = 1024

// Reader decodes a multi-document YAML stream. It is not safe for
// concurrent use.
type Reader struct {
	dec           *yaml.Decoder
	strict        bool
	warn          func(tableopts.Issue)
	maxDepth      int
	maxAliasNodes int

	// per-document state
	active      map[*yaml.Node]bool
	aliasDepth  int
	aliasBudget int
}

// NewReader constructs a Reader over r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{dec: yaml.NewDecoder(r)}
	for _, o := range opts {
		o(rd)
	}
	return rd
}

// Next returns the next document. It returns (nil, io.EOF) when the stream
// is exhausted.
func (r *Reader) Next() (*tableopts.Value, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, parseIssue(err)
	}
	r.active = make(map[*yaml.Node]bool)
	r.aliasDepth = 0
	r.aliasBudget = r.maxAliasNodes
	if r.aliasBudget <= 0 {
		r.aliasBudget = max(minAliasBudget, 4*countNodes(&root))
	}
	return r.convert(&root, "", 0)
}

// countNodes counts the nodes written in the document, without following
// aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, k := range n.Content {
		c += countNodes(k)
	}
	return c
}

// ReadAll reads every document from the stream.
func (r *Reader) ReadAll() ([]*tableopts.Value, error) {
	var out []*tableopts.Value
	for {
		v, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Parse reads the first document of data.
func Parse(data []byte, opts ...Option) (*tableopts.Value, error) {
	v, err := NewReader(bytes.NewReader(data), opts...).Next()
	if errors.Is(err, io.EOF) {
		return nil, &tableopts.Issue{Path: "/", Code: tableopts.CodeParseError, Message: "empty document", Offset: -1}
	}
	return v, err
}

// Decode parses the first document of data and decodes it with d, or with
// the default decoder when d is nil.
func Decode(d *tableopts.Decoder, data []byte, opts ...Option) (tableopts.TableReaderOptions, error) {
	doc, err := Parse(data, opts...)
	if err != nil {
		return tableopts.TableReaderOptions{}, err
	}
	if d == nil {
		return tableopts.Decode(doc)
	}
	return d.Decode(doc)
}

func (r *Reader) convert(n *yaml.Node, path string, depth int) (*tableopts.Value, error) {
	if r.aliasDepth > 0 {
		r.aliasBudget--
		if r.aliasBudget < 0 {
			return nil, errorAt(path, "alias expansion limit exceeded")
		}
	}
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		depth++
		if r.maxDepth > 0 && depth > r.maxDepth {
			return nil, errorAt(path, "max depth exceeded")
		}
		r.active[n] = true
		defer delete(r.active, n)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tableopts.Null(), nil
		}
		return r.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return tableopts.Null(), nil
		}
		if r.active[n.Alias] {
			return nil, errorAt(path, fmt.Sprintf("recursive alias *%s at %d:%d", n.Value, n.Line, n.Column))
		}
		r.aliasDepth++
		defer func() { r.aliasDepth-- }()
		return r.convert(n.Alias, path, depth)
	case yaml.MappingNode:
		members := make([]tableopts.Member, 0, len(n.Content)/2)
		var first map[string][2]int
		if r.strict || r.warn != nil {
			first = make(map[string][2]int, len(n.Content)/2)
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, errorAt(path, fmt.Sprintf("non-scalar mapping key at %d:%d", k.Line, k.Column))
			}
			key := k.Value
			if first != nil {
				if pos, dup := first[key]; dup {
					de := &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
					is := &tableopts.Issue{
						Path:    join(path, key),
						Code:    tableopts.CodeDuplicateKey,
						Message: de.Error(),
						Offset:  -1,
						Cause:   de,
					}
					if r.strict {
						return nil, is
					}
					r.warn(*is)
				} else {
					first[key] = [2]int{k.Line, k.Column}
				}
			}
			val, err := r.convert(v, join(path, key), depth)
			if err != nil {
				return nil, err
			}
			members = append(members, tableopts.Member{Key: key, Value: val})
		}
		return tableopts.Object(members...), nil
	case yaml.SequenceNode:
		elems := make([]tableopts.Node, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := r.convert(c, fmt.Sprintf("%s/%d", path, i), depth)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return tableopts.Array(elems...), nil
	case yaml.ScalarNode:
		return scalar(n, path)
	default:
		return tableopts.Null(), nil
	}
}

func scalar(n *yaml.Node, path string) (*tableopts.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return tableopts.Null(), nil
	case "!!bool":
		b, ok := parseBool(n.Value)
		if !ok {
			return nil, errorAt(path, fmt.Sprintf("invalid !!bool value %q at %d:%d", n.Value, n.Line, n.Column))
		}
		return tableopts.Bool(b), nil
	case "!!int", "!!float":
		return tableopts.Number(n.Value), nil
	default:
		return tableopts.String(n.Value), nil
	}
}

// parseBool accepts the YAML 1.2 booleans and, for explicitly tagged
// scalars, the YAML 1.1 spellings.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "on":
		return true, true
	case "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

func errorAt(path, msg string) *tableopts.Issue {
	return &tableopts.Issue{Path: pointer(path), Code: tableopts.CodeParseError, Message: msg, Offset: -1}
}

func parseIssue(err error) error {
	return &tableopts.Issue{Path: "/", Code: tableopts.CodeParseError, Message: err.Error(), Offset: -1, Cause: err}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func join(base, key string) string { return base + "/" + pointerEscaper.Replace(key) }

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
