package tableopts

import "strings"

// DataType is the declared type of a column.
type DataType string

const (
	TypeBool      DataType = "bool"
	TypeInt8      DataType = "int8"
	TypeInt16     DataType = "int16"
	TypeInt32     DataType = "int32"
	TypeInt64     DataType = "int64"
	TypeUint8     DataType = "uint8"
	TypeUint16    DataType = "uint16"
	TypeUint32    DataType = "uint32"
	TypeUint64    DataType = "uint64"
	TypeFloat32   DataType = "float32"
	TypeFloat64   DataType = "float64"
	TypeUtf8      DataType = "utf8"
	TypeBinary    DataType = "binary"
	TypeDate32    DataType = "date32"
	TypeDate64    DataType = "date64"
	TypeTime32    DataType = "time32"
	TypeTime64    DataType = "time64"
	TypeTimestamp DataType = "timestamp"
	TypeList      DataType = "list"
	TypeStruct    DataType = "struct"
)

var dataTypes = map[string]DataType{
	"bool":      TypeBool,
	"boolean":   TypeBool,
	"int8":      TypeInt8,
	"int16":     TypeInt16,
	"int32":     TypeInt32,
	"integer":   TypeInt32,
	"int64":     TypeInt64,
	"bigint":    TypeInt64,
	"uint8":     TypeUint8,
	"uint16":    TypeUint16,
	"uint32":    TypeUint32,
	"uint64":    TypeUint64,
	"float32":   TypeFloat32,
	"float":     TypeFloat32,
	"float64":   TypeFloat64,
	"double":    TypeFloat64,
	"utf8":      TypeUtf8,
	"string":    TypeUtf8,
	"text":      TypeUtf8,
	"binary":    TypeBinary,
	"date32":    TypeDate32,
	"date64":    TypeDate64,
	"time32":    TypeTime32,
	"time64":    TypeTime64,
	"timestamp": TypeTimestamp,
	"list":      TypeList,
	"struct":    TypeStruct,
}

// ParseDataType resolves a type name or alias, ignoring case.
func ParseDataType(s string) (DataType, bool) {
	t, ok := dataTypes[strings.ToLower(s)]
	return t, ok
}

// Nested reports whether the type carries child fields.
func (t DataType) Nested() bool { return t == TypeList || t == TypeStruct }
