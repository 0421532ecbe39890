package tableopts

// Kind is the runtime type tag of a document node.
type Kind int

const (
	KindNull Kind = iota
	KindFalse
	KindTrue
	KindObject
	KindArray
	KindString
	KindNumber
)

// String returns the diagnostic type name of k.
func (k Kind) String() string { return TypeName(k) }

// Node is one node of a parsed document tree. Accessors are only meaningful
// for the matching Kind and return zero values otherwise, so callers check
// Kind first.
type Node interface {
	Kind() Kind
	// Members returns object members in document order. Duplicate keys are
	// kept as separate entries.
	Members() []Member
	// Elements returns array elements in order.
	Elements() []Node
	// Text returns string contents, or the literal text of a number.
	Text() string
}

// Member is a single key/value pair of an object node.
type Member struct {
	Key   string
	Value Node
}

// Value is the package's Node implementation. A nil *Value is a null node.
// Values are never mutated after construction.
type Value struct {
	kind    Kind
	text    string
	members []Member
	elems   []Node
}

var _ Node = (*Value)(nil)

func Null() *Value { return &Value{kind: KindNull} }

func Bool(b bool) *Value {
	if b {
		return &Value{kind: KindTrue}
	}
	return &Value{kind: KindFalse}
}

// Number builds a number node from its literal text (e.g. "42", "1.5e3").
func Number(text string) *Value { return &Value{kind: KindNumber, text: text} }

func String(s string) *Value { return &Value{kind: KindString, text: s} }

func Object(members ...Member) *Value { return &Value{kind: KindObject, members: members} }

func Array(elems ...Node) *Value { return &Value{kind: KindArray, elems: elems} }

func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) Members() []Member {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.members
}

func (v *Value) Elements() []Node {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.elems
}

func (v *Value) Text() string {
	if v == nil || (v.kind != KindString && v.kind != KindNumber) {
		return ""
	}
	return v.text
}

// Get returns the value of the last member named key, mirroring the
// last-occurrence-wins rule of the decoder.
func (v *Value) Get(key string) (Node, bool) {
	ms := v.Members()
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i].Key == key {
			return ms[i].Value, true
		}
	}
	return nil, false
}
