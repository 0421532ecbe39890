package tableopts

import (
	"fmt"
	"strings"
)

// DecodeFields is the default FieldListDecoder. Each element must be an
// object with a string "name" and "type"; "nullable" defaults to true and
// "children" describes the element type of a list or the members of a
// struct. Unknown members are ignored.
func DecodeFields(array Node) ([]Field, error) {
	return decodeFieldList(array, rootPath().Field("fields"))
}

func decodeFieldList(array Node, p fieldPath) ([]Field, error) {
	if err := requireType(array, KindArray, p); err != nil {
		return nil, err
	}
	elems := array.Elements()
	out := make([]Field, 0, len(elems))
	for i, el := range elems {
		f, err := decodeField(el, p.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeField(n Node, p fieldPath) (Field, error) {
	if err := requireType(n, KindObject, p); err != nil {
		return Field{}, err
	}
	f := Field{Nullable: true}
	var (
		haveName, haveType bool
		children           Node
	)
	for _, m := range n.Members() {
		mp := p.Field(m.Key)
		switch m.Key {
		case "name":
			if err := requireType(m.Value, KindString, mp); err != nil {
				return Field{}, err
			}
			f.Name = strings.Clone(m.Value.Text())
			haveName = true
		case "type":
			if err := requireType(m.Value, KindString, mp); err != nil {
				return Field{}, err
			}
			t, ok := ParseDataType(m.Value.Text())
			if !ok {
				is := newIssue(CodeInvalidEnum, mp.Pointer(),
					fmt.Sprintf("unknown data type '%s' for field '%s'", m.Value.Text(), mp.Label()))
				is.Params = map[string]any{"field": mp.Label(), "got": m.Value.Text()}
				return Field{}, is
			}
			f.Type = t
			haveType = true
		case "nullable":
			switch kindOf(m.Value) {
			case KindTrue:
				f.Nullable = true
			case KindFalse:
				f.Nullable = false
			default:
				return Field{}, requireType(m.Value, KindTrue, mp)
			}
		case "children":
			if err := requireType(m.Value, KindArray, mp); err != nil {
				return Field{}, err
			}
			children = m.Value
		}
	}
	if !haveName {
		return Field{}, missing(p.Field("name"))
	}
	if !haveType {
		return Field{}, missing(p.Field("type"))
	}
	if children != nil {
		if !f.Type.Nested() {
			cp := p.Field("children")
			return Field{}, newIssue(CodeInvalidValue, cp.Pointer(),
				fmt.Sprintf("field '%s' is only allowed for list and struct types, got %s", cp.Label(), f.Type))
		}
		kids, err := decodeFieldList(children, p.Field("children"))
		if err != nil {
			return Field{}, err
		}
		f.Children = kids
	}
	if err := checkArity(f, p); err != nil {
		return Field{}, err
	}
	return f, nil
}

func checkArity(f Field, p fieldPath) error {
	cp := p.Field("children")
	switch {
	case f.Type == TypeList && len(f.Children) != 1:
		return newIssue(CodeInvalidValue, cp.Pointer(),
			fmt.Sprintf("field '%s' of a list must hold exactly one element type, got %d", cp.Label(), len(f.Children)))
	case f.Type == TypeStruct && len(f.Children) == 0:
		return newIssue(CodeInvalidValue, cp.Pointer(),
			fmt.Sprintf("field '%s' of a struct must hold at least one member", cp.Label()))
	}
	return nil
}

func missing(p fieldPath) *Issue {
	return newIssue(CodeRequired, p.Pointer(), fmt.Sprintf("missing required field '%s'", p.Label()))
}
