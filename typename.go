package tableopts

// TypeName maps a node kind to the name used in diagnostics. It is total:
// unknown kinds map to "?".
func TypeName(k Kind) string {
	switch k {
	case KindArray:
		return "array"
	case KindTrue, KindFalse:
		return "boolean"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	default:
		return "?"
	}
}
