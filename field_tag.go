package tableopts

// FieldTag identifies a recognized top-level options key.
type FieldTag int

const (
	TagSchema FieldTag = iota
	TagName
	TagFields
)

func (t FieldTag) String() string {
	switch t {
	case TagSchema:
		return "schema"
	case TagName:
		return "name"
	case TagFields:
		return "fields"
	default:
		return "?"
	}
}

// fieldTags is read-only after package initialization.
var fieldTags = map[string]FieldTag{
	"schema": TagSchema,
	"name":   TagName,
	"fields": TagFields,
}

// LookupFieldTag matches key exactly (case-sensitive) against the recognized
// options keys.
func LookupFieldTag(key string) (FieldTag, bool) {
	t, ok := fieldTags[key]
	return t, ok
}
