package tableopts

import "fmt"

// RequireType checks that n has the expected kind. On mismatch it returns an
// *Issue with code invalid_type whose message names field and both types.
func RequireType(n Node, expected Kind, field string) error {
	return requireAt(n, expected, field, "/"+pointerEscaper.Replace(field))
}

func requireType(n Node, expected Kind, p fieldPath) error {
	return requireAt(n, expected, p.Label(), p.Pointer())
}

func requireAt(n Node, expected Kind, label, pointer string) error {
	got := kindOf(n)
	if got == expected {
		return nil
	}
	is := newIssue(CodeInvalidType, pointer,
		fmt.Sprintf("type mismatch for field '%s': expected %s, received %s", label, TypeName(expected), TypeName(got)))
	is.Params = map[string]any{"field": label, "expected": TypeName(expected), "received": TypeName(got)}
	return is
}

// kindOf treats a nil Node as null.
func kindOf(n Node) Kind {
	if n == nil {
		return KindNull
	}
	return n.Kind()
}
