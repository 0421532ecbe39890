package engine

// KeyTracker tells object keys apart from string values for tokenizers that
// report both as plain strings. The zero value is ready to use.
type KeyTracker struct {
	stack []keyFrame
}

type keyFrame struct {
	object       bool
	expectingKey bool
}

// Delim records a structural delimiter ('{', '}', '[' or ']') and returns
// its kind.
func (k *KeyTracker) Delim(d rune) Kind {
	switch d {
	case '{':
		k.stack = append(k.stack, keyFrame{object: true, expectingKey: true})
		return KindBeginObject
	case '[':
		k.stack = append(k.stack, keyFrame{})
		return KindBeginArray
	case '}':
		k.pop()
		return KindEndObject
	default:
		k.pop()
		return KindEndArray
	}
}

// Str classifies a string token as a key or a value.
func (k *KeyTracker) Str() Kind {
	if n := len(k.stack); n > 0 {
		top := &k.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	k.Scalar()
	return KindString
}

// Scalar records that a member value ended.
func (k *KeyTracker) Scalar() {
	if n := len(k.stack); n > 0 && k.stack[n-1].object {
		k.stack[n-1].expectingKey = true
	}
}

func (k *KeyTracker) pop() {
	if n := len(k.stack); n > 0 {
		k.stack = k.stack[:n-1]
	}
	k.Scalar()
}
