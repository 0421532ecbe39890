package tableopts

import (
	"strconv"
	"strings"
)

// fieldPath locates a value inside an options document. It renders both the
// human label used in messages (fields[0].type) and the JSON Pointer stored
// in Issue.Path (/fields/0/type).
type fieldPath struct {
	parts []pathPart
}

type pathPart struct {
	name  string
	index int
	isIdx bool
}

func rootPath() fieldPath { return fieldPath{} }

func (p fieldPath) Field(name string) fieldPath {
	return fieldPath{parts: append(append([]pathPart(nil), p.parts...), pathPart{name: name})}
}

func (p fieldPath) Index(i int) fieldPath {
	return fieldPath{parts: append(append([]pathPart(nil), p.parts...), pathPart{index: i, isIdx: true})}
}

// Label renders the path for messages.
func (p fieldPath) Label() string {
	var b strings.Builder
	for i, part := range p.parts {
		if part.isIdx {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part.name)
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p fieldPath) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p.parts {
		b.WriteByte('/')
		if part.isIdx {
			b.WriteString(strconv.Itoa(part.index))
		} else {
			b.WriteString(pointerEscaper.Replace(part.name))
		}
	}
	return b.String()
}
